// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/Shahir-47/Peer-to-Playlist/internal/auth"
)

func TestRevocationCleanupService(t *testing.T) {
	var _ suture.Service = (*RevocationCleanupService)(nil)

	revoker := auth.NewMemoryRevoker()
	ctx := context.Background()
	if err := revoker.Revoke(ctx, "short", time.Now().Add(20*time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	if err := revoker.Revoke(ctx, "long", time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	svc := NewRevocationCleanupService(revoker, 10*time.Millisecond, zerolog.Nop())
	if svc.String() != "revocation-cleanup" {
		t.Errorf("String() = %q", svc.String())
	}

	runCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(runCtx) }()

	deadline := time.Now().Add(time.Second)
	for revoker.Len() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	if n := revoker.Len(); n != 1 {
		t.Errorf("entries = %d, want only the unexpired one", n)
	}
	if revoked, _ := revoker.IsRevoked(ctx, "long"); !revoked {
		t.Error("unexpired revocation was removed")
	}
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewRevocationCleanupService_DefaultInterval(t *testing.T) {
	svc := NewRevocationCleanupService(auth.NewMemoryRevoker(), 0, zerolog.Nop())
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", svc.interval)
	}
}
