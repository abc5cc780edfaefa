// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/notify"
	"github.com/Shahir-47/Peer-to-Playlist/internal/presence"
	"github.com/Shahir-47/Peer-to-Playlist/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "info", Format: "console", Output: io.Discard})
}

type failingRunner struct{ err error }

func (f failingRunner) RunWithContext(context.Context) error { return f.err }

func TestRealtimeServices_Interface(t *testing.T) {
	var _ suture.Service = (*RunnerService)(nil)
	var _ Runner = (*websocket.Hub)(nil)
	var _ Runner = (*notify.Notifier)(nil)
}

func TestRealtimeServices_Serve(t *testing.T) {
	registry := presence.NewRegistry()
	hub := websocket.NewHub(registry, websocket.DefaultOptions())
	notifier := notify.New(registry, hub, notify.DefaultConfig())

	tests := []struct {
		name string
		svc  suture.Service
		want string
	}{
		{"hub", NewWebSocketHubService(hub), "websocket-hub"},
		{"notifier", NewNotifierService(notifier), "notifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.svc.(interface{ String() string }).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() { errCh <- tt.svc.Serve(ctx) }()

			time.Sleep(20 * time.Millisecond)
			cancel()

			select {
			case err := <-errCh:
				if !errors.Is(err, context.Canceled) {
					t.Errorf("expected context.Canceled, got %v", err)
				}
			case <-time.After(time.Second):
				t.Error("Serve did not return after context cancellation")
			}
		})
	}
}

func TestNotifierService_DrainsOnShutdown(t *testing.T) {
	registry := presence.NewRegistry()
	hub := websocket.NewHub(registry, websocket.DefaultOptions())
	notifier := notify.New(registry, hub, notify.Config{QueueSize: 8, Workers: 1})

	notifier.NotifyNewProfile()
	notifier.NotifyNewProfile()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = NewNotifierService(notifier).Serve(ctx)

	if n := notifier.Pending(); n != 0 {
		t.Errorf("pending = %d after shutdown, want 0", n)
	}
}

func TestRealtimeServices_PropagateErrors(t *testing.T) {
	want := errors.New("startup error")
	if err := NewWebSocketHubService(failingRunner{want}).Serve(context.Background()); !errors.Is(err, want) {
		t.Errorf("hub: expected %v, got %v", want, err)
	}
	if err := NewNotifierService(failingRunner{want}).Serve(context.Background()); !errors.Is(err, want) {
		t.Errorf("notifier: expected %v, got %v", want, err)
	}
}

func TestWebSocketHubService_WithSupervisor(t *testing.T) {
	registry := presence.NewRegistry()
	hub := websocket.NewHub(registry, websocket.DefaultOptions())

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          100 * time.Millisecond,
	})
	sup.Add(NewWebSocketHubService(hub))
	sup.Add(NewNotifierService(notify.New(registry, hub, notify.DefaultConfig())))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	select {
	case err := <-sup.ServeBackground(ctx):
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("supervisor did not stop")
	}
}
