package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studyflowhq/studyflow/internal/api"
	"github.com/studyflowhq/studyflow/internal/config"
	"github.com/studyflowhq/studyflow/internal/db"
	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/repository/sqlite"
	"github.com/studyflowhq/studyflow/internal/services"
	"github.com/studyflowhq/studyflow/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("studyflow server starting")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("suggestion_limit=%d", cfg.SuggestionLimit)
	log.Debug("review_log_worker_count=%d", cfg.ReviewLogWorkerCount)
	log.Debug("review_log_queue_size=%d", cfg.ReviewLogQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	cardRepo := sqlite.NewCardRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	taskRepo := sqlite.NewTaskRepository(database.DB)

	reviewLogPool := worker.NewPool(cfg.ReviewLogWorkerCount, cfg.ReviewLogQueueSize)

	deckService := services.NewDeckService(deckRepo, cardRepo)
	reviewService := services.NewReviewService(cardRepo, reviewLogPool)
	suggestionService := services.NewSuggestionService(cardRepo, taskRepo)
	sessionService := services.NewSessionService(deckRepo, cardRepo)

	srv := api.NewServer(deckService, reviewService, suggestionService, sessionService, cfg.SuggestionLimit)

	ctx, cancel := context.WithCancel(context.Background())
	reviewLogPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping review log pool")
	cancel()
	reviewLogPool.Stop()

	log.Info("studyflow server stopped")
}
