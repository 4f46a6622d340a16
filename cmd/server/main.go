package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/draft-advisor/internal/api"
	"github.com/dom/draft-advisor/internal/api/handlers"
	"github.com/dom/draft-advisor/internal/config"
	"github.com/dom/draft-advisor/internal/recommender"
	"github.com/dom/draft-advisor/internal/repository"
	"github.com/dom/draft-advisor/internal/repository/postgres"
	"github.com/dom/draft-advisor/internal/room"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The advisory log (component H) is pure best-effort telemetry, so a
	// database is optional — the handler is wired with a nil repository
	// when DATABASE_URL is unset, and repository.WriteAsync no-ops on it.
	var advisoryRepo repository.AdvisoryLogRepository
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		advisoryRepo = postgres.NewAdvisoryLogRepository(db)
	}

	hub := room.NewHub()

	params := recommender.Params{
		BeamWidth:     cfg.DefaultBeamWidth,
		EnemyTopN:     cfg.DefaultEnemyTopN,
		PenaltyFactor: cfg.DefaultPenaltyFactor,
	}

	h := handlers.New(cfg.AdvisorConfigDir, params, hub, advisoryRepo)
	router := api.NewRouter(h, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("draft-advisor starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped")
}
