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

	"github.com/wellchemy/wellchemy/backend/internal/analysis/frequency"
	"github.com/wellchemy/wellchemy/backend/internal/config"
	"github.com/wellchemy/wellchemy/backend/internal/handler"
	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	"github.com/wellchemy/wellchemy/backend/internal/service/ai"
	"github.com/wellchemy/wellchemy/backend/internal/service/engine"
	"github.com/wellchemy/wellchemy/backend/internal/service/session"
	"github.com/wellchemy/wellchemy/backend/internal/store"
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

	definitions := assessment.NewMemoryStore(assessment.Seed())

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open result store: %v", err)
	}
	defer db.Close()

	var phraser engine.Phraser
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing with direct question text only")
		} else {
			log.Println("AI phrasing service initialized successfully")
			phraser = aiService
		}
	} else {
		log.Println("Ark credentials not configured, questions will use direct text")
	}

	eng := engine.New(
		definitions,
		session.NewMemoryStore(),
		frequency.New(cfg.Engine.StrictNormalizer),
		phraser,
		db,
		db,
		engine.Options{
			PhraseTimeout: cfg.Engine.PhraseTimeout,
			SaveTimeout:   cfg.Engine.SaveTimeout,
		},
	)

	router := handler.NewRouter(definitions, eng, db)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Wellchemy backend listening on %s", addr)
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
