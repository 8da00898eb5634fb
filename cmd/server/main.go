package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qsimlab/spindle/internal/config"
	"github.com/qsimlab/spindle/internal/events"
	"github.com/qsimlab/spindle/internal/modules/runs"
	"github.com/qsimlab/spindle/internal/scheduler"
	"github.com/qsimlab/spindle/internal/server"
	"github.com/qsimlab/spindle/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Spindle server")

	// Event sink shared by services and the websocket stream
	eventManager := events.NewManager(log)

	// Run registry and service
	registry := runs.NewRegistry(cfg.RunTTL, log)
	runService := runs.NewService(registry, eventManager, cfg.MaxSize, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	// Evict expired runs periodically
	if err := sched.AddJob("@every 5m", runs.NewPruneJob(registry, eventManager, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register prune job")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		Runs:    runService,
		Events:  eventManager,
		Config:  cfg,
		DevMode: cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
