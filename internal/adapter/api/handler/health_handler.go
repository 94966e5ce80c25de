package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gamecatalog/internal/store"
)

type HealthHandler struct {
	store *store.Store
}

var healthHandler *HealthHandler

func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{
		store: st,
	}
}

func SetupHealthHandler(st *store.Store) {
	healthHandler = NewHealthHandler(st)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	state := h.store.State()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":            "Server is running",
		"time":              time.Now().Format(time.RFC3339),
		"auth":              state.Auth.Status,
		"catalog_games":     len(state.Catalog.Games),
		"catalog_loaded_at": state.Catalog.LoadedAt,
	})
}

// CheckReady reports 503 until the catalog has been loaded and the session
// check has finished.
func (h *HealthHandler) CheckReady(c echo.Context) error {
	state := h.store.State()
	if state.Catalog.LoadedAt.IsZero() || !state.Auth.Initialized {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "Starting",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Ready",
	})
}
