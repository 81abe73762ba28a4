package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/multisell/internal/api"
	"github.com/ppiankov/multisell/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveStatic string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes the lookup and link builder over HTTP:

  GET  /api/inventory?steamid=<id|profile-url|alias>
  GET  /api/containers
  GET  /api/suggest?name=<text>
  POST /api/link      {"items":[{"name":"...","quantity":1,"max":1}]}
  GET  /health

Example:
  multisell serve --addr :8080
  multisell serve --static ./frontend/dist`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "directory of frontend files to serve at /")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	handler := api.New(pipeline.NewPipeline(cfg), cfg.Server.AllowedOrigins,
		api.WithMaxLinkUnits(cfg.Server.MaxLinkUnits),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	)
	if serveStatic != "" {
		if _, err := os.Stat(serveStatic); err != nil {
			return fmt.Errorf("static directory: %w", err)
		}
		handler.ServeStatic(http.Dir(serveStatic))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTP.Timeout*2 + 10*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("multisell API listening on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
