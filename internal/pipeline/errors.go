package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput is returned when no identifier was supplied
	ErrMissingInput = errors.New("missing steamid parameter")

	// ErrInvalidIdentifier is returned when the identifier cannot be resolved
	ErrInvalidIdentifier = errors.New("invalid Steam ID format")

	// ErrPrivateInventory maps an upstream 403
	ErrPrivateInventory = errors.New("inventory is private")

	// ErrRateLimited maps an upstream 429
	ErrRateLimited = errors.New("rate limited, try again later")

	// ErrUpstreamUnavailable maps upstream 5xx and transport failures
	ErrUpstreamUnavailable = errors.New("steam is unavailable, try again later")

	// ErrEmptyInventory is returned for an empty or null inventory body
	ErrEmptyInventory = errors.New("inventory empty or private")

	// ErrInvalidResponse is returned when a successful body fails to decode
	ErrInvalidResponse = errors.New("invalid response from steam")
)

// UpstreamStatusError carries a non-success status with no dedicated mapping
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("failed to fetch inventory (status %d)", e.StatusCode)
}

// UpstreamMessageError carries an error reported inside a decoded payload
type UpstreamMessageError struct {
	Message string
}

func (e *UpstreamMessageError) Error() string {
	return e.Message
}
