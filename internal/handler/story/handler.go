package story

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	storymodel "github.com/ayizan-labs/mythos/backend/internal/model/story"
	"github.com/ayizan-labs/mythos/backend/internal/service/generation"
	"github.com/ayizan-labs/mythos/backend/internal/service/imageurl"
	"github.com/ayizan-labs/mythos/backend/pkg/utils"
)

// Handler exposes the generation pipeline over HTTP.
type Handler struct {
	orchestrator *generation.Orchestrator
	images       *imageurl.Synthesizer
	prompter     imageurl.Prompter
}

// New creates the story handler. The orchestrator and prompter may be nil
// when the text-generation credential is absent; affected routes then answer
// 503 instead of disappearing.
func New(orchestrator *generation.Orchestrator, images *imageurl.Synthesizer, prompter imageurl.Prompter) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		images:       images,
		prompter:     prompter,
	}
}

// RegisterRoutes mounts the story routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/stories", h.handleGenerate)
	r.Get("/stories/stream", h.handleGenerateStream)
	r.Get("/stories/state", h.handleState)
	r.Delete("/stories/state", h.handleReset)
	r.Post("/images/regenerate", h.handleRegenerateImage)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if h.orchestrator == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "génération indisponible: clé Gemini absente")
		return
	}

	var req storymodel.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.orchestrator.Generate(r.Context(), req, nil)
	if err != nil {
		status, message := statusForGenerationError(err)
		utils.RespondError(w, status, message)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleGenerateStream runs one generation while streaming stage progress as
// Server-Sent Events, then emits the story (or the error) as the final event.
func (h *Handler) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	if h.orchestrator == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "génération indisponible: clé Gemini absente")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	req := requestFromQuery(r)
	req.Normalize()
	if err := req.Validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.SetupSSEHeaders(w)

	progress := func(stage generation.Stage) {
		utils.SendSSEEvent(w, flusher, "stage", map[string]string{"stage": string(stage)})
	}

	result, err := h.orchestrator.Generate(r.Context(), req, progress)
	if err != nil {
		_, message := statusForGenerationError(err)
		utils.SendSSEEvent(w, flusher, "error", map[string]string{"message": message})
		return
	}

	utils.SendSSEEvent(w, flusher, "story", result)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	if h.orchestrator == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "génération indisponible: clé Gemini absente")
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.orchestrator.Snapshot())
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if h.orchestrator == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "génération indisponible: clé Gemini absente")
		return
	}
	h.orchestrator.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// handleRegenerateImage is the repair path: it always answers 200, serving
// the fallback image URL when no fresh prompt can be derived.
func (h *Handler) handleRegenerateImage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	imageURL := h.images.Regenerate(r.Context(), h.prompter, payload.Context)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}

func statusForGenerationError(err error) (int, string) {
	switch {
	case errors.Is(err, generation.ErrTopicRequired):
		return http.StatusBadRequest, generation.ValidationMessage
	case errors.Is(err, generation.ErrSuperseded):
		return http.StatusConflict, err.Error()
	default:
		message := err.Error()
		if message == "" {
			message = generation.GenericFailureMessage
		}
		return http.StatusBadGateway, message
	}
}

// requestFromQuery builds a generation request from EventSource-friendly
// query parameters.
func requestFromQuery(r *http.Request) storymodel.Request {
	q := r.URL.Query()
	haitianSoul, _ := strconv.ParseBool(q.Get("haitianSoul"))
	return storymodel.Request{
		Topic:       q.Get("topic"),
		Genre:       storymodel.Genre(q.Get("genre")),
		AgeGroup:    storymodel.AgeGroup(q.Get("ageGroup")),
		ImageStyle:  storymodel.ImageStyle(q.Get("imageStyle")),
		Language:    q.Get("language"),
		MediaType:   storymodel.MediaType(q.Get("mediaType")),
		VideoFormat: storymodel.VideoFormat(q.Get("videoFormat")),
		HaitianSoul: haitianSoul,
	}
}
