// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Command propkeep runs the maintenance-ticketing API server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/propkeep/propkeep/internal/api"
	"github.com/propkeep/propkeep/internal/auth"
	"github.com/propkeep/propkeep/internal/config"
	"github.com/propkeep/propkeep/internal/logging"
	"github.com/propkeep/propkeep/internal/notify"
	"github.com/propkeep/propkeep/internal/seed"
	"github.com/propkeep/propkeep/internal/store"
	"github.com/propkeep/propkeep/internal/ticket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("loading configuration failed")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Caller: cfg.Log.Caller,
	})
	logging.Info().Str("addr", cfg.Server.Addr()).Msg("propkeep starting")

	st, err := store.Open(cfg.Database, logging.WithComponent("store"))
	if err != nil {
		logging.Fatal().Err(err).Msg("opening store failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Err(err).Msg("closing store failed")
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := seed.DefaultAdmin(ctx, cfg.Seed, st, logging.WithComponent("seed")); err != nil {
		logging.Fatal().Err(err).Msg("seeding default admin failed")
	}

	jwtManager, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("creating token manager failed")
	}

	channels := notify.BuildChannels(cfg.Notify, logging.WithComponent("notify"))
	dispatcher := notify.NewDispatcher(channels, logging.WithComponent("notify"))
	logging.Info().Strs("channels", dispatcher.ChannelNames()).Msg("notification channels configured")

	manager := ticket.NewManager(st, logging.WithComponent("ticket"))
	handler := api.NewHandler(cfg, st, manager, dispatcher, jwtManager, logging.WithComponent("api"))
	server := api.NewServer(cfg.Server, handler.Router())

	// Supervision: the HTTP server and the store GC loop restart on
	// failure; SIGINT/SIGTERM cancels the whole tree.
	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook()
	supervisor := suture.New("propkeep", suture.Spec{EventHook: hook})
	supervisor.Add(server)
	supervisor.Add(st)

	if err := supervisor.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("supervisor exited")
	}
	logging.Info().Msg("propkeep stopped")
}
