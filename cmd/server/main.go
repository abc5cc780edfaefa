// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shahir-47/Peer-to-Playlist/internal/api"
	"github.com/Shahir-47/Peer-to-Playlist/internal/auth"
	"github.com/Shahir-47/Peer-to-Playlist/internal/config"
	"github.com/Shahir-47/Peer-to-Playlist/internal/database"
	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/notify"
	"github.com/Shahir-47/Peer-to-Playlist/internal/presence"
	"github.com/Shahir-47/Peer-to-Playlist/internal/supervisor"
	"github.com/Shahir-47/Peer-to-Playlist/internal/supervisor/services"
	ws "github.com/Shahir-47/Peer-to-Playlist/internal/websocket"
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
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("database", cfg.Mongo.Database).
		Str("handshake_mode", cfg.Realtime.HandshakeMode).
		Bool("redis", cfg.Redis.Enabled()).
		Msg("Starting Peer-to-Playlist")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, &cfg.Mongo)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := db.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	revoker, redisClient, err := newRevoker(ctx, cfg, tree)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token revocation")
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing Redis client")
			}
		}()
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create JWT manager")
	}
	sessions := auth.NewMiddleware(jwtManager, revoker, &cfg.Security)

	// The registry is owned here and injected into the hub and the notifier.
	registry := presence.NewRegistry()
	hub := ws.NewHub(registry, ws.Options{
		SendBuffer:      cfg.Realtime.SendBuffer,
		CloseSuperseded: cfg.Realtime.CloseSuperseded,
		InboundRate:     cfg.Realtime.InboundRate,
		InboundBurst:    cfg.Realtime.InboundBurst,
	})
	notifier := notify.New(registry, hub, notify.Config{
		QueueSize: cfg.Realtime.NotifyQueueSize,
		Workers:   cfg.Realtime.NotifyWorkers,
	})
	endpoint := ws.NewEndpoint(hub, realtimeAuthenticator(cfg, sessions), cfg.Realtime.AllowedOrigins)

	handler := api.NewHandler(db, notifier, jwtManager, sessions, &cfg.Security)
	router := api.NewRouter(handler, sessions, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)), endpoint)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddRealtimeService(services.NewWebSocketHubService(hub))
	tree.AddRealtimeService(services.NewNotifierService(notifier))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newRevoker returns the Redis-backed revocation list when Redis is
// configured, otherwise an in-memory list whose cleanup runs under tree.
func newRevoker(ctx context.Context, cfg *config.Config, tree *supervisor.SupervisorTree) (auth.Revoker, *redis.Client, error) {
	if cfg.Redis.Enabled() {
		client, err := auth.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logging.Info().Str("addr", cfg.Redis.Addr).Msg("Token revocation backed by Redis")
		return auth.NewRedisRevoker(client), client, nil
	}

	revoker := auth.NewMemoryRevoker()
	tree.AddMaintenanceService(services.NewRevocationCleanupService(revoker, 10*time.Minute, logging.Logger()))
	logging.Warn().Msg("REDIS_ADDR not set; revoked sessions are kept in memory and lost on restart")
	return revoker, nil, nil
}

func realtimeAuthenticator(cfg *config.Config, sessions *auth.Middleware) ws.Authenticator {
	if cfg.Realtime.HandshakeMode == config.HandshakeModeSession {
		return ws.SessionAuthenticator{Sessions: sessions}
	}
	logging.Warn().Msg("Realtime handshake trusts the client-supplied userId; set REALTIME_HANDSHAKE_MODE=session to bind it to the session cookie")
	return ws.ClientIDAuthenticator{}
}
