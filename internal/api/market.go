package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ppiankov/multisell/internal/market"
)

type linkRequest struct {
	Items []market.SelectionEntry `json:"items"`
}

type linkResponse struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// handleGetContainers returns the manual catalog of known containers
func (s *Server) handleGetContainers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cases": market.ManualCatalog(),
	})
}

// handleSuggest returns the closest known container name
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "Missing name parameter")
		return
	}

	suggestion, ok := market.Suggest(name)
	if !ok {
		respondError(w, http.StatusNotFound, "No matching container")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":  suggestion,
		"exact": suggestion == name,
	})
}

// handleBuildLink turns a selection into a multi-sell URL
func (s *Server) handleBuildLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decodeJSON(w, r, s.maxBodyBytes, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sel := market.NewSelection()
	for _, item := range req.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		sel.Add(name, item.Max)
		sel.SetQuantity(name, item.Quantity)
	}

	if count := sel.Count(); count > s.maxLinkUnits {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Too many items: %d units, at most %d per link", count, s.maxLinkUnits))
		return
	}

	units := sel.Units()
	respondJSON(w, http.StatusOK, linkResponse{
		URL:   market.MultisellURL(units),
		Count: len(units),
	})
}
