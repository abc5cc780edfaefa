// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
	"github.com/Shahir-47/Peer-to-Playlist/internal/presence"
	realtime "github.com/Shahir-47/Peer-to-Playlist/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "info", Format: "console", Output: io.Discard})
}

type testServer struct {
	hub      *realtime.Hub
	registry *presence.Registry
	url      string
	stop     context.CancelFunc
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	registry := presence.NewRegistry()
	hub := realtime.NewHub(registry, realtime.DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.RunWithContext(ctx)
	}()

	server := httptest.NewServer(realtime.NewEndpoint(hub, nil, []string{"*"}))
	t.Cleanup(func() {
		cancel()
		<-done
		server.Close()
	})
	return &testServer{hub: hub, registry: registry, url: server.URL, stop: cancel}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func receive(t *testing.T, ch <-chan json.RawMessage) json.RawMessage {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func subscribeChan(ctrl *Controller, event string) <-chan json.RawMessage {
	ch := make(chan json.RawMessage, 8)
	ctrl.Subscribe(event, func(data json.RawMessage) { ch <- data })
	return ch
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateDisconnected: "disconnected",
		StateConnecting:   "connecting",
		StateConnected:    "connected",
		State(9):          "state(9)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int32(s), got, want)
		}
	}
}

func TestController_DialURL(t *testing.T) {
	ctrl := New("https://app.example.com/ws", Options{})
	got, err := ctrl.dialURL("u 1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "wss://app.example.com/ws?userId=u+1" {
		t.Errorf("dialURL = %q", got)
	}
}

func TestController_ConnectLifecycle(t *testing.T) {
	srv := setupServer(t)
	ctrl := New(srv.url, Options{})

	var (
		mu          sync.Mutex
		transitions []State
	)
	ctrl.OnStateChange(func(s State) {
		mu.Lock()
		transitions = append(transitions, s)
		mu.Unlock()
	})

	if ctrl.State() != StateDisconnected {
		t.Fatalf("initial state = %v", ctrl.State())
	}
	if err := ctrl.Connect(context.Background(), "alice"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if ctrl.State() != StateConnected {
		t.Errorf("state = %v, want connected", ctrl.State())
	}
	waitFor(t, "registration", func() bool { return srv.registry.IsOnline("alice") })

	ctrl.Disconnect()
	if ctrl.State() != StateDisconnected {
		t.Errorf("state = %v, want disconnected", ctrl.State())
	}
	waitFor(t, "unregistration", func() bool { return !srv.registry.IsOnline("alice") })

	ctrl.Disconnect()

	mu.Lock()
	defer mu.Unlock()
	want := []State{StateConnecting, StateConnected, StateDisconnected}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transitions = %v, want %v", transitions, want)
			break
		}
	}
}

func TestController_ReceivesSubscribedEvents(t *testing.T) {
	srv := setupServer(t)
	ctrl := New(srv.url, Options{})
	matches := subscribeChan(ctrl, models.EventNewMatch)

	if err := ctrl.Connect(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	defer ctrl.Disconnect()
	waitFor(t, "registration", func() bool { return srv.registry.IsOnline("alice") })

	srv.hub.SendToUser("alice", models.EventNewMatch, models.MatchPayload{ID: "bob", Name: "Bob", Image: "b.png"})

	var got models.MatchPayload
	if err := json.Unmarshal(receive(t, matches), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "bob" || got.Name != "Bob" {
		t.Errorf("payload = %+v", got)
	}
}

func TestController_SubscribeReplaces(t *testing.T) {
	srv := setupServer(t)
	ctrl := New(srv.url, Options{})

	first := subscribeChan(ctrl, models.EventNewMessage)
	second := subscribeChan(ctrl, models.EventNewMessage)

	if err := ctrl.Connect(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	defer ctrl.Disconnect()
	waitFor(t, "registration", func() bool { return srv.registry.IsOnline("alice") })

	srv.hub.SendToUser("alice", models.EventNewMessage, map[string]string{"content": "hi"})
	receive(t, second)

	select {
	case <-first:
		t.Error("replaced handler still received the event")
	default:
	}
}

func TestController_Unsubscribe(t *testing.T) {
	srv := setupServer(t)
	ctrl := New(srv.url, Options{})

	messages := subscribeChan(ctrl, models.EventNewMessage)
	profiles := subscribeChan(ctrl, models.EventNewUserProfile)
	ctrl.Unsubscribe(models.EventNewMessage)

	if err := ctrl.Connect(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	defer ctrl.Disconnect()
	waitFor(t, "registration", func() bool { return srv.registry.IsOnline("alice") })

	srv.hub.SendToUser("alice", models.EventNewMessage, map[string]string{"content": "hi"})
	srv.hub.SendToUser("alice", models.EventNewUserProfile, models.NewUserProfilePayload{})

	// Events arrive in order, so the profile event marks that the message
	// event was already dispatched.
	receive(t, profiles)
	select {
	case <-messages:
		t.Error("unsubscribed handler received the event")
	default:
	}
}

func TestController_ReconnectClosesPrevious(t *testing.T) {
	srv := setupServer(t)
	ctrl := New(srv.url, Options{})

	if err := ctrl.Connect(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "alice online", func() bool { return srv.registry.IsOnline("alice") })

	if err := ctrl.Connect(context.Background(), "bob"); err != nil {
		t.Fatal(err)
	}
	defer ctrl.Disconnect()

	waitFor(t, "bob online", func() bool { return srv.registry.IsOnline("bob") })
	waitFor(t, "alice offline", func() bool { return !srv.registry.IsOnline("alice") })
	waitFor(t, "one server connection", func() bool { return srv.hub.ClientCount() == 1 })

	if ctrl.State() != StateConnected {
		t.Errorf("state = %v, want connected", ctrl.State())
	}
}

func TestController_ServerCloseNoReconnect(t *testing.T) {
	srv := setupServer(t)
	ctrl := New(srv.url, Options{})

	if err := ctrl.Connect(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "registration", func() bool { return srv.registry.IsOnline("alice") })

	srv.stop()
	waitFor(t, "disconnected", func() bool { return ctrl.State() == StateDisconnected })

	time.Sleep(50 * time.Millisecond)
	if ctrl.State() != StateDisconnected {
		t.Errorf("state = %v, want to stay disconnected", ctrl.State())
	}
	if err := ctrl.Send(models.EventPing, nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send after close err = %v, want ErrNotConnected", err)
	}
	ctrl.Disconnect()
}

func TestController_Send(t *testing.T) {
	srv := setupServer(t)
	ctrl := New(srv.url, Options{})
	pongs := subscribeChan(ctrl, models.EventPong)

	if err := ctrl.Send(models.EventPing, nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send before Connect err = %v, want ErrNotConnected", err)
	}

	if err := ctrl.Connect(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	defer ctrl.Disconnect()

	if err := ctrl.Send(models.EventPing, nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	receive(t, pongs)
}

func TestController_ConnectRejected(t *testing.T) {
	srv := setupServer(t)
	ctrl := New(srv.url, Options{})

	if err := ctrl.Connect(context.Background(), "  "); !errors.Is(err, ErrMissingUserID) {
		t.Errorf("blank user err = %v, want ErrMissingUserID", err)
	}

	// Origin is checked before the upgrade.
	strict := httptest.NewServer(realtime.NewEndpoint(srv.hub, nil, []string{"https://app.example.com"}))
	defer strict.Close()

	rejected := New(strict.URL, Options{Header: map[string][]string{"Origin": {"https://evil.example.com"}}})
	err := rejected.Connect(context.Background(), "alice")
	if err == nil {
		rejected.Disconnect()
		t.Fatal("expected dial error")
	}
	if !strings.Contains(err.Error(), "status 403") {
		t.Errorf("err = %v, want status 403", err)
	}
	if rejected.State() != StateDisconnected {
		t.Errorf("state = %v, want disconnected", rejected.State())
	}
	if srv.registry.IsOnline("alice") {
		t.Error("rejected connection must not register")
	}
}

func TestController_OriginOption(t *testing.T) {
	srv := setupServer(t)
	strict := httptest.NewServer(realtime.NewEndpoint(srv.hub, nil, []string{"https://app.example.com"}))
	defer strict.Close()

	bare := New(strict.URL, Options{})
	if err := bare.Connect(context.Background(), "alice"); err == nil {
		bare.Disconnect()
		t.Fatal("connect without Origin succeeded against a strict allow list")
	} else if !strings.Contains(err.Error(), "status 403") {
		t.Errorf("err = %v, want status 403", err)
	}

	ctrl := New(strict.URL, Options{
		Header: http.Header{"Origin": {"https://evil.example.com"}},
		Origin: "https://app.example.com",
	})
	if err := ctrl.Connect(context.Background(), "alice"); err != nil {
		t.Fatalf("Connect with allowed Origin: %v", err)
	}
	defer ctrl.Disconnect()
	waitFor(t, "alice online", func() bool { return srv.registry.IsOnline("alice") })
}
