package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/app"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/config"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/db"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/logger"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.New("scheduler", false).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New("scheduler", !cfg.IsProduction)

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	container := app.NewContainer(cfg, pool, log)
	defer container.Dispatcher.Close()

	// Background calendar sync worker. It stops when the signal
	// context is cancelled.
	if cfg.GoogleClientID != "" {
		go container.Syncer.Run(ctx)
	} else {
		log.Info("calendar sync disabled, no provider credentials configured")
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		log.Info("server running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited gracefully")
}
