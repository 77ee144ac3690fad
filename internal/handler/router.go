package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	audioHandler "github.com/ayizan-labs/mythos/backend/internal/handler/audio"
	authHandler "github.com/ayizan-labs/mythos/backend/internal/handler/auth"
	historyHandler "github.com/ayizan-labs/mythos/backend/internal/handler/history"
	settingsHandler "github.com/ayizan-labs/mythos/backend/internal/handler/settings"
	storyHandler "github.com/ayizan-labs/mythos/backend/internal/handler/story"
	middlewarePkg "github.com/ayizan-labs/mythos/backend/internal/middleware"
	authService "github.com/ayizan-labs/mythos/backend/internal/service/auth"
	"github.com/ayizan-labs/mythos/backend/internal/service/generation"
	historyService "github.com/ayizan-labs/mythos/backend/internal/service/history"
	"github.com/ayizan-labs/mythos/backend/internal/service/imageurl"
	"github.com/ayizan-labs/mythos/backend/internal/service/speech"
	"github.com/ayizan-labs/mythos/backend/internal/storage"
)

// Deps groups the services the router wires to HTTP routes. Orchestrator and
// Prompter are nil when text generation is not configured; the story handler
// answers 503 for the affected routes in that case.
type Deps struct {
	Orchestrator *generation.Orchestrator
	Images       *imageurl.Synthesizer
	Prompter     imageurl.Prompter
	History      *historyService.Store
	Auth         *authService.Service
	Clips        *speech.ClipStore
	Storage      *storage.Store
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		storyHandler.New(deps.Orchestrator, deps.Images, deps.Prompter).RegisterRoutes(api)
		historyHandler.New(deps.History).RegisterRoutes(api)
		authHandler.New(deps.Auth).RegisterRoutes(api)
		audioHandler.New(deps.Clips).RegisterRoutes(api)
		settingsHandler.New(deps.Storage).RegisterRoutes(api)
	})

	return r
}
