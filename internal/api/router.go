package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ppiankov/multisell/internal/model"
)

// Lookuper resolves an identifier and lists the account's containers
type Lookuper interface {
	Lookup(ctx context.Context, input string) (*model.LookupResult, error)
}

// Default request limits
const (
	DefaultMaxLinkUnits = 5000
	DefaultMaxBodyBytes = 1 << 20
)

// Server holds the HTTP server dependencies
type Server struct {
	lookup         Lookuper
	allowedOrigins []string
	maxLinkUnits   int
	maxBodyBytes   int64
	router         chi.Router
}

// Option configures a Server
type Option func(*Server)

// WithMaxLinkUnits caps the units a built link may carry. n <= 0 keeps the
// default.
func WithMaxLinkUnits(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLinkUnits = n
		}
	}
}

// WithMaxBodyBytes caps request bodies. n <= 0 keeps the default.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// New creates a new API server
func New(lookup Lookuper, allowedOrigins []string, opts ...Option) *Server {
	s := &Server{
		lookup:         lookup,
		allowedOrigins: allowedOrigins,
		maxLinkUnits:   DefaultMaxLinkUnits,
		maxBodyBytes:   DefaultMaxBodyBytes,
		router:         chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/inventory", s.handleGetInventory)
		r.Get("/containers", s.handleGetContainers)
		r.Get("/suggest", s.handleSuggest)
		r.Post("/link", s.handleBuildLink)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// ServeStatic serves a built frontend from root for every path the API does
// not claim
func (s *Server) ServeStatic(root http.FileSystem) {
	FileServer(s.router, "/", root)
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return json.NewDecoder(r.Body).Decode(v)
}
