// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package auth

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()

	if err := r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, _ := r.IsRevoked(ctx, "jti-1"); !revoked {
		t.Error("jti-1 should be revoked")
	}
	if revoked, _ := r.IsRevoked(ctx, "jti-2"); revoked {
		t.Error("jti-2 was never revoked")
	}
}

func TestMemoryRevoker_IgnoresExpiredAndEmpty(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()

	_ = r.Revoke(ctx, "", time.Now().Add(time.Hour))
	_ = r.Revoke(ctx, "old", time.Now().Add(-time.Second))

	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestMemoryRevoker_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()
	_ = r.Revoke(ctx, "short", time.Now().Add(10*time.Millisecond))
	_ = r.Revoke(ctx, "long", time.Now().Add(time.Hour))

	time.Sleep(20 * time.Millisecond)

	if revoked, _ := r.IsRevoked(ctx, "short"); revoked {
		t.Error("expired entry still reported revoked")
	}
	if removed := r.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired removed %d, want 1", removed)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}
