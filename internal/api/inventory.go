package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/ppiankov/multisell/internal/pipeline"
)

// handleGetInventory resolves ?steamid= and returns the account's containers
func (s *Server) handleGetInventory(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("steamid")

	result, err := s.lookup.Lookup(r.Context(), input)
	if err != nil {
		status, message := errorResponse(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[%s] inventory lookup failed: %v", middleware.GetReqID(r.Context()), err)
		}
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// errorResponse maps lookup failures to a status code and user-facing message
func errorResponse(err error) (int, string) {
	var upstreamStatus *pipeline.UpstreamStatusError
	var upstreamMessage *pipeline.UpstreamMessageError

	switch {
	case errors.Is(err, pipeline.ErrMissingInput):
		return http.StatusBadRequest, "Missing steamid parameter"
	case errors.Is(err, pipeline.ErrInvalidIdentifier):
		return http.StatusBadRequest, "Invalid Steam ID format"
	case errors.Is(err, pipeline.ErrPrivateInventory):
		return http.StatusForbidden, "Inventory is private"
	case errors.Is(err, pipeline.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limited, try again later"
	case errors.Is(err, pipeline.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "Steam is unavailable, try again later"
	case errors.Is(err, pipeline.ErrEmptyInventory):
		return http.StatusNotFound, "Inventory empty or private"
	case errors.Is(err, pipeline.ErrInvalidResponse):
		return http.StatusBadGateway, "Invalid response from Steam"
	case errors.As(err, &upstreamMessage):
		return http.StatusBadRequest, upstreamMessage.Message
	case errors.As(err, &upstreamStatus):
		return upstreamStatus.StatusCode, "Failed to fetch inventory"
	default:
		return http.StatusInternalServerError, "Failed to fetch inventory"
	}
}
