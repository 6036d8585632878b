package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/EnduringBeta/fraction.work/internal/api/respond"
	"github.com/EnduringBeta/fraction.work/internal/cache"
	"github.com/EnduringBeta/fraction.work/internal/db"
	"github.com/EnduringBeta/fraction.work/internal/provider"
	"github.com/EnduringBeta/fraction.work/internal/stats"
	"github.com/EnduringBeta/fraction.work/internal/validate"
)

// ListPlayers returns every player ordered by id.
// @Summary List players
// @Description Returns all players with canonical derived stats.
// @Tags players
// @Produce json
// @Success 200 {array} provider.Player
// @Failure 500 {object} respond.ErrorResponse
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	if h.serveCached(w, r, cache.KeyPlayerList, cache.TTLPlayers) {
		return
	}

	players, err := h.store.ListPlayers(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list players", err)
		return
	}
	if players == nil {
		players = []provider.Player{}
	}
	h.writeCached(w, cache.KeyPlayerList, players, cache.TTLPlayers)
}

// GetPlayer returns one player.
// @Summary Get player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} provider.Player
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{id} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	key := cache.KeyPlayer + strconv.FormatInt(id, 10)
	if h.serveCached(w, r, key, cache.TTLPlayers) {
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
	h.writeCached(w, key, player, cache.TTLPlayers)
}

// CreatePlayer adds a player. Derived stats are recomputed from the
// counting stats regardless of what the body supplies.
// @Summary Create player
// @Tags players
// @Accept json
// @Produce json
// @Param player body playerRequest true "Player"
// @Success 201 {object} provider.Player
// @Failure 400 {object} respond.ErrorResponse
// @Failure 415 {object} respond.ErrorResponse
// @Router /players [post]
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePlayer(w, r)
	if !ok {
		return
	}
	player, ok := h.reconcile(w, req.toPlayer())
	if !ok {
		return
	}

	created, err := h.store.CreatePlayer(r.Context(), player)
	if err != nil {
		h.internalError(w, "Failed to create player", err)
		return
	}
	h.cache.Purge()
	respond.WriteJSONObject(w, http.StatusCreated, created)
}

// UpdatePlayer replaces the player identified by the body's id.
// @Summary Replace player
// @Tags players
// @Accept json
// @Produce json
// @Param player body playerRequest true "Player, including id"
// @Success 200 {object} provider.Player
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 415 {object} respond.ErrorResponse
// @Router /players [put]
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePlayer(w, r)
	if !ok {
		return
	}
	if req.ID == nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid player fields", "id is required")
		return
	}
	player, ok := h.reconcile(w, req.toPlayer())
	if !ok {
		return
	}

	err := h.store.UpdatePlayer(r.Context(), player)
	if errors.Is(err, db.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	if err != nil {
		h.internalError(w, "Failed to update player", err)
		return
	}
	h.cache.Purge()
	respond.WriteJSONObject(w, http.StatusOK, player)
}

// DeletePlayer removes a player.
// @Summary Delete player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{id} [delete]
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	err := h.store.DeletePlayer(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	if err != nil {
		h.internalError(w, "Failed to delete player", err)
		return
	}
	h.cache.Purge()
	respond.WriteMessage(w, http.StatusOK, "Player deleted successfully!")
}

// reconcile applies the canonical formulas to p. On failure it has already
// written the error response and returns false.
func (h *Handler) reconcile(w http.ResponseWriter, p provider.Player) (provider.Player, bool) {
	ledger := validate.NewLedger()
	err := validate.Reconcile(&p, ledger)

	var undefined *stats.DefinedMetricError
	var malformed *validate.MalformedRecordError
	switch {
	case errors.As(err, &undefined):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "UNDEFINED_METRIC",
			"Derived stats are undefined for this record", err.Error())
		return p, false
	case errors.As(err, &malformed):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "VALIDATION_FAILED",
			"Invalid player fields", err.Error())
		return p, false
	case err != nil:
		h.internalError(w, "Failed to reconcile player", err)
		return p, false
	}

	if report := ledger.Report(); report.Total() > 0 {
		h.logger.Debug("Recomputed derived stats on write",
			"player", p.PlayerName, "corrections", report)
	}
	return p, true
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// serveCached writes a cached response (or 304) for key if present.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, ttl, true)
	return true
}

// writeCached marshals v, stores it under key, and writes it.
func (h *Handler) writeCached(w http.ResponseWriter, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		h.internalError(w, "Failed to encode response", fmt.Errorf("marshal %s: %w", key, err))
		return
	}
	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
