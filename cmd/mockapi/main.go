// Package main is the development backend: the feedme REST API over in-memory storage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"feedme/internal/config"
	v1 "feedme/internal/infrastructure/http/v1"
	"feedme/internal/infrastructure/storage/memory"
	"feedme/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/feedme.yaml", "config file")
	seed := flag.String("seed", "", "YAML fixture to seed the store with (overrides mockapi.seed)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Server logs go to stderr at info unless configured otherwise
	logCfg := cfg.LoggerConfig()
	if logCfg.Level == "warn" {
		logCfg.Level = "info"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// --- Storage ---
	store := memory.NewStore()
	if *seed == "" {
		*seed = cfg.MockAPI.Seed
	}
	if *seed != "" {
		fixture, err := memory.LoadFixture(*seed)
		if err != nil {
			log.Fatalw("failed to load fixture", "error", err)
		}
		if err := store.Seed(fixture); err != nil {
			log.Fatalw("failed to seed store", "path", *seed, "error", err)
		}
		log.Infow("store seeded", "path", *seed)
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Store:    store,
		Logger:   log,
		Registry: registry,
		BasePath: cfg.MockAPI.BasePath,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.MockAPI.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr, "base_path", cfg.MockAPI.BasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
