package history

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	historyservice "github.com/ayizan-labs/mythos/backend/internal/service/history"
	"github.com/ayizan-labs/mythos/backend/pkg/utils"
)

// Handler exposes the history window over HTTP.
type Handler struct {
	store *historyservice.Store
}

func New(store *historyservice.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the history routes. Clearing carries no confirmation
// step here; the UI is expected to ask the user first.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/history", h.handleList)
	r.Delete("/history", h.handleClear)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
