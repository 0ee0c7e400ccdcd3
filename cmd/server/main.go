// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/playnext/docs"
	"github.com/tomtom215/playnext/internal/api"
	"github.com/tomtom215/playnext/internal/auth"
	"github.com/tomtom215/playnext/internal/authz"
	"github.com/tomtom215/playnext/internal/cache"
	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/dataset"
	"github.com/tomtom215/playnext/internal/hltb"
	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/recommender"
	"github.com/tomtom215/playnext/internal/steam"
	"github.com/tomtom215/playnext/internal/store"
	"github.com/tomtom215/playnext/internal/supervisor"
	"github.com/tomtom215/playnext/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("app_url", cfg.Server.AppURL).
		Str("provider", cfg.Recommender.Provider).
		Msg("Starting Playnext")

	db, err := store.Open(&cfg.Storage)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close storage")
		}
	}()
	exclusions := store.NewExclusionStore(db)

	steamClient := steam.NewClient(&cfg.Steam)
	assembler := dataset.NewAssembler(
		steamClient,
		steam.NewStoreClient(&cfg.Steam),
		hltb.NewClient(&cfg.HLTB),
		exclusions,
		cache.NewTables(cfg.Cache.TTL),
	)

	rec, err := recommender.New(&cfg.Recommender)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommender")
	}

	sessions, err := auth.NewSessionManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create session manager")
	}

	enforcer, err := authz.NewEnforcer("")
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load authorization policy")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Games:        assembler,
		Exclusions:   exclusions,
		Recommender:  rec,
		Login:        steam.NewOpenID(&cfg.Steam, cfg.Server.AppURL),
		Profiles:     steamClient,
		Sessions:     sessions,
		DefaultModel: cfg.Recommender.DefaultModel,
		PromptPath:   cfg.Recommender.SystemPromptPath,
	})
	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, chiMW, sessions, enforcer)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if !cfg.Storage.InMemory {
		tree.AddDataService(services.NewBadgerGCService(db, cfg.Storage.GCInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Playnext stopped")
}
