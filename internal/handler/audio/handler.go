package audio

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayizan-labs/mythos/backend/internal/service/speech"
	"github.com/ayizan-labs/mythos/backend/pkg/utils"
)

// Handler serves synthesized audio clips back to the player. Clips only live
// in memory, so a URL from a previous process answers 404.
type Handler struct {
	clips *speech.ClipStore
}

func New(clips *speech.ClipStore) *Handler {
	return &Handler{clips: clips}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audio/{clipID}", h.handleClip)
}

func (h *Handler) handleClip(w http.ResponseWriter, r *http.Request) {
	clipID := chi.URLParam(r, "clipID")
	clip, ok := h.clips.Get(clipID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "audio clip not found")
		return
	}

	w.Header().Set("Content-Type", clip.MIME)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(clip.Data); err != nil {
		// The player went away mid-download; nothing to clean up.
		return
	}
}
