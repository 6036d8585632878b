// Package handler provides HTTP handlers for all API endpoints.
// Handlers call the player store directly; there is no service layer.
// Writes go through the same reconciliation the seeder applies, so every
// persisted record carries canonical derived stats.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/EnduringBeta/fraction.work/internal/api/respond"
	"github.com/EnduringBeta/fraction.work/internal/cache"
	"github.com/EnduringBeta/fraction.work/internal/config"
	"github.com/EnduringBeta/fraction.work/internal/provider"
)

// PlayerStore is the persistence the handlers need. *db.Pool satisfies it.
type PlayerStore interface {
	HealthCheck(ctx context.Context) error
	ListPlayers(ctx context.Context) ([]provider.Player, error)
	GetPlayer(ctx context.Context, id int64) (provider.Player, error)
	CreatePlayer(ctx context.Context, p provider.Player) (provider.Player, error)
	UpdatePlayer(ctx context.Context, p provider.Player) error
	DeletePlayer(ctx context.Context, id int64) error
}

// Describer generates player descriptions. *external.Describer satisfies it.
type Describer interface {
	Describe(ctx context.Context, p provider.Player) (string, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store     PlayerStore
	describer Describer // nil when no API key is configured
	cache     *cache.Cache
	cfg       *config.Config
	bodyCheck *validator.Validate
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies. describer may be nil.
func New(store PlayerStore, describer Describer, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:     store,
		describer: describer,
		cache:     c,
		cfg:       cfg,
		bodyCheck: newValidator(),
		logger:    logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns a hint pointing at the players resource.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Players API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"message": `No players here... Try "/players" or port 3000!`,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// internalError logs err and writes a 500, exposing the error text only
// outside production.
func (h *Handler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	if h.cfg.IsProduction() {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", msg)
		return
	}
	respond.WriteErrorDetail(w, http.StatusInternalServerError, "INTERNAL", msg, err.Error())
}
