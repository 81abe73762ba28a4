package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/multisell/internal/cache"
	"github.com/ppiankov/multisell/internal/extract"
	"github.com/ppiankov/multisell/internal/model"
	"github.com/ppiankov/multisell/internal/steamid"
)

// Pipeline orchestrates a lookup: resolve the account, fetch its inventory,
// extract containers. Each step waits for the previous one.
type Pipeline struct {
	resolver  *steamid.Resolver
	inventory *InventoryClient
	extractor *extract.CaseExtractor
	config    *model.Config
}

// Option configures a Pipeline
type Option func(*Fetcher)

// WithThrottle paces every outbound request, profile pages and inventories
// alike
func WithThrottle(t Throttle) Option {
	return func(f *Fetcher) {
		f.SetThrottle(t)
	}
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) *Pipeline {
	fetcher := NewFetcher(cfg.HTTP)
	for _, opt := range opts {
		opt(fetcher)
	}

	resolverOpts := []steamid.Option{steamid.WithVerbose(cfg.Output.Verbose)}
	if ttl := cfg.Resolver.AliasCacheTTL; ttl > 0 {
		resolverOpts = append(resolverOpts, steamid.WithAliasCache(cache.NewMemoryCache(ttl, 0), ttl))
	}

	return &Pipeline{
		resolver:  steamid.NewResolver(cfg.Steam.CommunityURL, fetcher, resolverOpts...),
		inventory: NewInventoryClient(fetcher, cfg.Steam),
		extractor: extract.NewCaseExtractor(),
		config:    cfg,
	}
}

// Resolver exposes the identifier resolver
func (p *Pipeline) Resolver() *steamid.Resolver {
	return p.resolver
}

// Resolve maps user input to a canonical account id
func (p *Pipeline) Resolve(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrMissingInput
	}

	id, err := p.resolver.Resolve(ctx, input)
	if err != nil {
		if errors.Is(err, steamid.ErrEmptyInput) {
			return "", ErrMissingInput
		}
		return "", ErrInvalidIdentifier
	}
	return id, nil
}

// Lookup resolves input and returns the account's containers
func (p *Pipeline) Lookup(ctx context.Context, input string) (*model.LookupResult, error) {
	start := time.Now()

	// 1. Resolve identifier
	id, err := p.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	// 2. Fetch inventory
	inv, err := p.inventory.Fetch(ctx, id)
	if err != nil {
		p.logf("inventory %s: %v", id, err)
		return nil, err
	}

	// 3. Extract containers
	cases := p.extractor.Extract(inv)
	p.logf("inventory %s: %d assets, %d containers (%v)", id, len(inv.Assets), len(cases), time.Since(start).Round(time.Millisecond))

	return &model.LookupResult{
		Cases:     cases,
		AccountID: id,
	}, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
