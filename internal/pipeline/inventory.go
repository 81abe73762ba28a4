package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ppiankov/multisell/internal/model"
)

// InventoryClient reads a single account inventory from the community site
type InventoryClient struct {
	fetcher *Fetcher
	steam   model.SteamConfig
}

// NewInventoryClient creates a client for the configured app and context
func NewInventoryClient(fetcher *Fetcher, steam model.SteamConfig) *InventoryClient {
	return &InventoryClient{
		fetcher: fetcher,
		steam:   steam,
	}
}

// InventoryURL builds the inventory endpoint for steamID
func (c *InventoryClient) InventoryURL(steamID string) string {
	q := url.Values{}
	q.Set("l", c.steam.Language)
	q.Set("count", fmt.Sprintf("%d", c.steam.Count))

	return fmt.Sprintf("%s/inventory/%s/%d/%d?%s",
		strings.TrimSuffix(c.steam.CommunityURL, "/"),
		url.PathEscape(steamID), c.steam.AppID, c.steam.ContextID, q.Encode())
}

// Fetch performs exactly one request and maps failures to the package errors
func (c *InventoryClient) Fetch(ctx context.Context, steamID string) (*model.Inventory, error) {
	result, err := c.fetcher.Fetch(ctx, c.InventoryURL(steamID), "application/json")
	if err != nil {
		return nil, mapFetchError(err)
	}

	return decodeInventory(result.Body)
}

// mapFetchError translates transport-level failures
func mapFetchError(err error) error {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	switch {
	case statusErr.StatusCode == http.StatusForbidden:
		return ErrPrivateInventory
	case statusErr.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case statusErr.StatusCode >= 500:
		return ErrUpstreamUnavailable
	default:
		return &UpstreamStatusError{StatusCode: statusErr.StatusCode}
	}
}

// decodeInventory parses a successful body
func decodeInventory(body []byte) (*model.Inventory, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, ErrEmptyInventory
	}

	var inv model.Inventory
	if err := json.Unmarshal(trimmed, &inv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if inv.Error != "" {
		return nil, &UpstreamMessageError{Message: inv.Error}
	}

	return &inv, nil
}
