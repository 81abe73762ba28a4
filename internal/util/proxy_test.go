package util

import (
	"net/http"
	"testing"
)

func clearProxyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HTTP_PROXY", "http_proxy", "HTTPS_PROXY", "https_proxy", "NO_PROXY", "no_proxy", "REQUEST_METHOD"} {
		t.Setenv(key, "")
	}
}

func resolveProxy(t *testing.T, httpProxy, httpsProxy, noProxy, target string) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	u, err := NewProxyFunc(httpProxy, httpsProxy, noProxy)(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil {
		return ""
	}
	return u.String()
}

func TestNewProxyFunc(t *testing.T) {
	clearProxyEnv(t)

	tests := []struct {
		name       string
		httpProxy  string
		httpsProxy string
		noProxy    string
		target     string
		expected   string
	}{
		{"http proxy for http", "http://proxy:3128", "", "", "http://steamcommunity.com/id/x", "http://proxy:3128"},
		{"http proxy reused for https", "http://proxy:3128", "", "", "https://steamcommunity.com/id/x", "http://proxy:3128"},
		{"https proxy for https", "http://proxy:3128", "http://secure:3129", "", "https://steamcommunity.com/id/x", "http://secure:3129"},
		{"no proxy host", "http://proxy:3128", "", "steamcommunity.com", "https://steamcommunity.com/id/x", ""},
		{"nothing configured", "", "", "", "https://steamcommunity.com/id/x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveProxy(t, tt.httpProxy, tt.httpsProxy, tt.noProxy, tt.target)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNewProxyFunc_EnvironmentFallback(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("HTTPS_PROXY", "http://env-proxy:8080")

	got := resolveProxy(t, "", "", "internal.example", "https://steamcommunity.com/inventory/1/730/2")
	if got != "http://env-proxy:8080" {
		t.Errorf("expected environment proxy, got %q", got)
	}

	got = resolveProxy(t, "", "", "internal.example", "https://internal.example/inventory/1/730/2")
	if got != "" {
		t.Errorf("expected no proxy for excluded host, got %q", got)
	}
}
