// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shahir-47/Peer-to-Playlist/internal/auth"
	"github.com/Shahir-47/Peer-to-Playlist/internal/notify"
	"github.com/Shahir-47/Peer-to-Playlist/internal/presence"
	"github.com/Shahir-47/Peer-to-Playlist/internal/supervisor/services"
	"github.com/Shahir-47/Peer-to-Playlist/internal/websocket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// waitFor polls cond until it holds or a second passes.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("root supervisor should not be nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want defaults %+v", tree.config, DefaultTreeConfig())
	}

	custom, _ := NewSupervisorTree(testLogger(), TreeConfig{FailureThreshold: 2, ShutdownTimeout: time.Second})
	if custom.config.FailureThreshold != 2 || custom.config.ShutdownTimeout != time.Second {
		t.Errorf("explicit values overwritten: %+v", custom.config)
	}
	if custom.config.FailureDecay != 30 {
		t.Errorf("FailureDecay = %v, want default 30", custom.config.FailureDecay)
	}
}

func TestSupervisorTree_StartsEveryLayer(t *testing.T) {
	tree, _ := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})

	realtime := newMockService("realtime", 0)
	maintenance := newMockService("maintenance", 0)
	api := newMockService("api", 0)
	tree.AddRealtimeService(realtime)
	tree.AddMaintenanceService(maintenance)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	for _, svc := range []*mockService{realtime, maintenance, api} {
		if !waitFor(func() bool { return svc.StartCount() >= 1 }) {
			t.Errorf("%s was not started", svc)
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	tree, _ := NewSupervisorTree(testLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	failing := newMockService("failing", 2)
	stable := newMockService("stable", 0)
	tree.AddRealtimeService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go tree.Serve(ctx)

	if !waitFor(func() bool { return failing.StartCount() >= 3 }) {
		t.Errorf("failing service started %d times, want at least 3", failing.StartCount())
	}
	if stable.StartCount() != 1 {
		t.Errorf("stable service started %d times, want 1", stable.StartCount())
	}
}

func TestSupervisorTree_RemoveRealtimeService(t *testing.T) {
	tree, _ := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})
	svc := newMockService("removable", 0)
	token := tree.AddRealtimeService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tree.Serve(ctx)

	if !waitFor(func() bool { return svc.StartCount() >= 1 }) {
		t.Fatal("service was not started")
	}
	if err := tree.RemoveRealtimeService(token); err != nil {
		t.Errorf("RemoveRealtimeService: %v", err)
	}
}

func TestSupervisorTree_ApplicationServices(t *testing.T) {
	tree, _ := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})

	registry := presence.NewRegistry()
	hub := websocket.NewHub(registry, websocket.DefaultOptions())
	notifier := notify.New(registry, hub, notify.DefaultConfig())

	tree.AddRealtimeService(services.NewWebSocketHubService(hub))
	tree.AddRealtimeService(services.NewNotifierService(notifier))
	tree.AddMaintenanceService(services.NewRevocationCleanupService(auth.NewMemoryRevoker(), time.Minute, zerolog.Nop()))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	select {
	case err := <-tree.ServeBackground(ctx):
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport: %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}
