package model

import "time"

// Config holds the complete multisell configuration
type Config struct {
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Steam        SteamConfig       `yaml:"steam" mapstructure:"steam"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
	Resolver     ResolverConfig    `yaml:"resolver" mapstructure:"resolver"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound requests
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// SteamConfig describes the upstream community site and the inventory to read
type SteamConfig struct {
	CommunityURL string `yaml:"community_url" mapstructure:"community_url"`
	AppID        int    `yaml:"app_id" mapstructure:"app_id"`
	ContextID    int    `yaml:"context_id" mapstructure:"context_id"`
	Language     string `yaml:"language" mapstructure:"language"`
	Count        int    `yaml:"count" mapstructure:"count"`
}

// ServerConfig controls the HTTP API. MaxLinkUnits caps the units one
// multi-sell link may carry.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	MaxLinkUnits   int      `yaml:"max_link_units" mapstructure:"max_link_units"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ResolverConfig controls vanity-name resolution
type ResolverConfig struct {
	// AliasCacheTTL memoises alias lookups when > 0. Inventories are never cached.
	AliasCacheTTL time.Duration `yaml:"alias_cache_ttl" mapstructure:"alias_cache_ttl"`
}

// RateLimitConfig spaces outbound requests during batch lookups
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
	RespectRobots     bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ConcurrencyConfig controls the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultUserAgent mimics a desktop browser; the community site rejects bare clients
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    DefaultUserAgent,
			MaxBodyBytes: 16 << 20,
		},
		Steam: SteamConfig{
			CommunityURL: "https://steamcommunity.com",
			AppID:        730,
			ContextID:    2,
			Language:     "english",
			Count:        5000,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:*"},
			MaxLinkUnits:   5000,
			MaxBodyBytes:   1 << 20,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 0.5,
			BurstSize:         1,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 2,
		},
	}
}
