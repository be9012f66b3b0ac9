// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Command server runs the skill classification and recommendation HTTP
// service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avoronov/skillserve/internal/api"
	"github.com/avoronov/skillserve/internal/catalog"
	"github.com/avoronov/skillserve/internal/classifier"
	"github.com/avoronov/skillserve/internal/config"
	"github.com/avoronov/skillserve/internal/logging"
	"github.com/avoronov/skillserve/internal/recommend"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("artifacts_dir", cfg.Artifacts.Dir).
		Msg("Starting skillserve")

	// Artifacts load before the listener starts, so a broken deployment
	// fails here instead of on the first request.
	artifact, err := classifier.Load(cfg.Artifacts.Dir, cfg.Artifacts.DefaultThreshold)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load classifier artifacts")
	}
	cls := classifier.NewService(artifact)
	logging.Info().Int("labels", len(cls.Labels())).Msg("Classifier artifacts loaded")

	var fetcher catalog.Fetcher = catalog.NewClient(
		cfg.Catalog.BaseURL,
		cfg.Catalog.Token,
		cfg.Catalog.PageLimit,
		cfg.Catalog.Timeout,
	)
	if cfg.Catalog.BreakerEnabled {
		fetcher = catalog.NewBreakerClient(fetcher)
	}
	cache := catalog.NewCache(fetcher, cfg.Catalog.CacheTTL)
	engine := recommend.NewEngine(cache)

	handler := api.NewHandler(cls, engine)
	router := api.NewRouter(handler, api.NewChiMiddleware(cfg.Security))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logging.Error().Err(err).Msg("Forced close failed")
		}
	}

	logging.Info().Msg("Server stopped")
}
