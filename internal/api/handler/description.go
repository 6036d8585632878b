package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/EnduringBeta/fraction.work/internal/api/respond"
	"github.com/EnduringBeta/fraction.work/internal/cache"
	"github.com/EnduringBeta/fraction.work/internal/db"
	"github.com/EnduringBeta/fraction.work/internal/external"
)

// DescriptionResponse wraps generated text.
type DescriptionResponse struct {
	Message string `json:"message"`
}

// GetDescription returns an announcer-style description of a player.
// @Summary Describe player
// @Description Generates a short narrative of the player's season with a chat completion model. Responses are cached until the player changes.
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} DescriptionResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 429 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /players/description/{id} [get]
func (h *Handler) GetDescription(w http.ResponseWriter, r *http.Request) {
	if h.describer == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "DESCRIPTIONS_DISABLED",
			"Descriptions are not configured (set OPENAI_API_KEY)")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	key := cache.KeyDescription + strconv.FormatInt(id, 10)
	if h.serveCached(w, r, key, cache.TTLDescription) {
		return
	}

	player, err := h.store.GetPlayer(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	if err != nil {
		h.internalError(w, "Failed to get player", err)
		return
	}

	text, err := h.describer.Describe(r.Context(), player)
	if errors.Is(err, external.ErrThrottled) {
		w.Header().Set("Retry-After", "1")
		respond.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many description requests")
		return
	}
	if err != nil {
		h.internalError(w, "Failed to generate description", err)
		return
	}
	h.writeCached(w, key, DescriptionResponse{Message: text}, cache.TTLDescription)
}
