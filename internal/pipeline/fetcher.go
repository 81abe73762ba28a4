package pipeline

import (
	"compress/gzip"
	"compress/zlib"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/ppiankov/multisell/internal/model"
	"github.com/ppiankov/multisell/internal/util"
)

// Throttle paces outbound requests
type Throttle interface {
	Wait(ctx context.Context, rawURL string) error
}

// Fetcher performs browser-like GET requests against the community site
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	throttle   Throttle
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 16 << 20
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in flag
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
	}
}

// FetchMeta contains HTTP metadata from a fetch
type FetchMeta struct {
	StatusCode      int
	ContentType     string
	ContentEncoding string
	Elapsed         time.Duration
}

// FetchResult contains the fetched body and metadata
type FetchResult struct {
	Body     []byte
	Meta     FetchMeta
	FinalURL string
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.StatusCode, e.Status)
}

// SetThrottle makes every Fetch wait on t first. Redirect hops are not
// throttled.
func (f *Fetcher) SetThrottle(t Throttle) {
	f.throttle = t
}

// Fetch retrieves rawURL. Non-2xx responses return a *StatusError and no body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, accept string) (*FetchResult, error) {
	if f.throttle != nil {
		if err := f.throttle.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("throttle: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if accept == "" {
		accept = "*/*"
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	meta := FetchMeta{
		StatusCode:      resp.StatusCode,
		ContentType:     resp.Header.Get("Content-Type"),
		ContentEncoding: resp.Header.Get("Content-Encoding"),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	bodyReader, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	defer func() { _ = bodyReader.Close() }()

	// Read body with size limit
	body, err := io.ReadAll(io.LimitReader(bodyReader, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	meta.Elapsed = time.Since(start)

	return &FetchResult{
		Body:     body,
		Meta:     meta,
		FinalURL: resp.Request.URL.String(),
	}, nil
}

// FetchPage returns an HTML page as text
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	result, err := f.Fetch(ctx, rawURL, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	return string(result.Body), nil
}

// decodeBody unwraps the Content-Encoding we advertised
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return zlib.NewReader(resp.Body)
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "zstd":
		decoder, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}
