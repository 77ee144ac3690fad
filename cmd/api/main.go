package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ayizan-labs/mythos/backend/internal/config"
	"github.com/ayizan-labs/mythos/backend/internal/handler"
	"github.com/ayizan-labs/mythos/backend/internal/service/auth"
	"github.com/ayizan-labs/mythos/backend/internal/service/generation"
	"github.com/ayizan-labs/mythos/backend/internal/service/history"
	"github.com/ayizan-labs/mythos/backend/internal/service/imageurl"
	"github.com/ayizan-labs/mythos/backend/internal/service/narrative"
	"github.com/ayizan-labs/mythos/backend/internal/service/speech"
	"github.com/ayizan-labs/mythos/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Local key/value storage backs history, session and theme.
	store, err := storage.Open(cfg.Storage.Path, cfg.Storage.QuotaBytes)
	if err != nil {
		log.Fatalf("failed to open local storage: %v", err)
	}
	defer store.Close()

	historyStore := history.NewStore(ctx, store)
	authService := auth.NewService(store)
	clips := speech.NewClipStore()
	images := imageurl.NewSynthesizer(nil)

	// Audio is best-effort: the synthesizer degrades to "no audio" on its
	// own when the ElevenLabs credential is absent.
	synthesizer := speech.NewSynthesizer(cfg.Speech, clips)
	if !cfg.Speech.Enabled() {
		log.Println("clé ElevenLabs absente, la synthèse audio restera désactivée")
	}

	// Text generation is the one hard dependency of the pipeline; without a
	// credential the story routes answer 503 but everything else still runs.
	var orchestrator *generation.Orchestrator
	var prompter imageurl.Prompter
	if cfg.Gemini.Enabled() {
		generator, err := narrative.NewGenerator(ctx, cfg.Gemini, cfg.DefaultLanguage)
		if err != nil {
			log.Fatalf("failed to initialize narrative generator: %v", err)
		}
		defer generator.Close()

		prompter = generator
		orchestrator = generation.NewOrchestrator(generator, images, synthesizer, historyStore)
		log.Println("narrative generator initialized successfully")
	} else {
		log.Println("clé Gemini absente, la génération d'histoires est désactivée")
	}

	router := handler.NewRouter(handler.Deps{
		Orchestrator: orchestrator,
		Images:       images,
		Prompter:     prompter,
		History:      historyStore,
		Auth:         authService,
		Clips:        clips,
		Storage:      store,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Mythos backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
