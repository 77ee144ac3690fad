package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayizan-labs/mythos/backend/internal/storage"
	"github.com/ayizan-labs/mythos/backend/pkg/utils"
)

const (
	themeKey     = "theme"
	defaultTheme = "dark"
)

// Handler persists small UI preferences. Today that is only the theme.
type Handler struct {
	storage *storage.Store
}

func New(st *storage.Store) *Handler {
	return &Handler{storage: st}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings/theme", h.handleGetTheme)
	r.Put("/settings/theme", h.handleSetTheme)
}

func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme := defaultTheme
	if raw, err := h.storage.Get(r.Context(), themeKey); err == nil {
		theme = string(raw)
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Theme != "light" && payload.Theme != "dark" {
		utils.RespondError(w, http.StatusBadRequest, "theme must be \"light\" or \"dark\"")
		return
	}

	if err := h.storage.Set(r.Context(), themeKey, []byte(payload.Theme)); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to persist theme")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"theme": payload.Theme})
}
