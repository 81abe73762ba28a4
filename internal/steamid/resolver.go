package steamid

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/multisell/internal/cache"
)

var (
	// ErrEmptyInput is returned for blank input; no lookup is attempted
	ErrEmptyInput = errors.New("empty identifier")

	// ErrUnresolved is returned when the input cannot be mapped to an account id
	ErrUnresolved = errors.New("could not resolve identifier")
)

var (
	canonicalRE = regexp.MustCompile(`^\d{17}$`)
	profileRE   = regexp.MustCompile(`/profiles/(\d{17})`)
	vanityRE    = regexp.MustCompile(`/id/([A-Za-z0-9_-]+)`)
	aliasRE     = regexp.MustCompile(`^[A-Za-z0-9_-]{2,32}$`)
)

// PageFetcher fetches a profile page body. Any error, including a non-2xx
// status, means the alias could not be resolved.
type PageFetcher interface {
	FetchPage(ctx context.Context, rawURL string) (string, error)
}

// Resolver maps free-form user input to a canonical 64-bit account id
type Resolver struct {
	communityURL string
	fetcher      PageFetcher
	matchers     []DocumentMatcher
	aliases      cache.Cache
	aliasTTL     time.Duration
	verbose      bool
}

// Option configures a Resolver
type Option func(*Resolver)

// WithMatchers replaces the profile page matcher chain
func WithMatchers(matchers ...DocumentMatcher) Option {
	return func(r *Resolver) {
		r.matchers = matchers
	}
}

// WithAliasCache memoises alias lookups for ttl
func WithAliasCache(c cache.Cache, ttl time.Duration) Option {
	return func(r *Resolver) {
		r.aliases = c
		r.aliasTTL = ttl
	}
}

// WithVerbose logs resolution failures to stderr
func WithVerbose(verbose bool) Option {
	return func(r *Resolver) {
		r.verbose = verbose
	}
}

// NewResolver creates a resolver that looks up aliases under communityURL
func NewResolver(communityURL string, fetcher PageFetcher, opts ...Option) *Resolver {
	r := &Resolver{
		communityURL: strings.TrimSuffix(communityURL, "/"),
		fetcher:      fetcher,
		matchers:     DefaultMatchers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsCanonical reports whether s is already a 17-digit account id
func IsCanonical(s string) bool {
	return canonicalRE.MatchString(s)
}

// Resolve returns the canonical id for input. Only alias inputs touch the
// network, with a single page fetch.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}

	// 1. Already canonical
	if IsCanonical(input) {
		return input, nil
	}

	// 2. Profile URL with embedded id
	if m := profileRE.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}

	// 3. Vanity URL
	if m := vanityRE.FindStringSubmatch(input); m != nil {
		if id, ok := r.resolveAlias(ctx, m[1]); ok {
			return id, nil
		}
		return "", ErrUnresolved
	}

	// 4. Bare alias
	if aliasRE.MatchString(input) {
		if id, ok := r.resolveAlias(ctx, input); ok {
			return id, nil
		}
	}

	return "", ErrUnresolved
}

// ProfileURL returns the public profile page for alias
func (r *Resolver) ProfileURL(alias string) string {
	return ProfileURL(r.communityURL, alias)
}

// ProfileURL returns the profile page for alias under communityURL
func ProfileURL(communityURL, alias string) string {
	return fmt.Sprintf("%s/id/%s", communityURL, url.PathEscape(alias))
}

// AliasOf returns the alias Resolve would look up for input. It reports false
// for inputs that resolve without a page fetch or cannot resolve at all.
func AliasOf(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" || IsCanonical(input) || profileRE.MatchString(input) {
		return "", false
	}
	if m := vanityRE.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	if aliasRE.MatchString(input) {
		return input, true
	}
	return "", false
}

// resolveAlias fetches the alias profile page once and scrapes the id from it
func (r *Resolver) resolveAlias(ctx context.Context, alias string) (string, bool) {
	key := cache.CacheKey("alias:" + alias)
	if r.aliases != nil {
		if val, found := r.aliases.Get(key); found {
			return string(val), true
		}
	}

	if r.fetcher == nil {
		return "", false
	}

	doc, err := r.fetcher.FetchPage(ctx, r.ProfileURL(alias))
	if err != nil {
		r.logf("resolve alias %q: %v", alias, err)
		return "", false
	}

	id, ok := ExtractID(doc, r.matchers...)
	if !ok {
		r.logf("resolve alias %q: no account id in profile page", alias)
		return "", false
	}

	if r.aliases != nil {
		_ = r.aliases.Set(key, []byte(id), r.aliasTTL)
	}
	return id, true
}

func (r *Resolver) logf(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// FetchFunc adapts a plain function to PageFetcher
type FetchFunc func(ctx context.Context, rawURL string) (string, error)

// FetchPage calls f
func (f FetchFunc) FetchPage(ctx context.Context, rawURL string) (string, error) {
	return f(ctx, rawURL)
}
