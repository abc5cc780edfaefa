// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

//go:build integration

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Shahir-47/Peer-to-Playlist/internal/config"
	"github.com/Shahir-47/Peer-to-Playlist/internal/testinfra"
)

func TestRedisRevoker_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	container, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container)

	client, err := NewRedisClient(ctx, config.RedisConfig{Addr: container.Addr})
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer client.Close()

	r := NewRedisRevoker(client)

	if err := r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err := r.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Errorf("IsRevoked(jti-1) = %v, %v; want true", revoked, err)
	}

	ttl, err := client.TTL(ctx, revokedKey("jti-1")).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want within the token lifetime", ttl)
	}

	if revoked, _ := r.IsRevoked(ctx, "jti-2"); revoked {
		t.Error("jti-2 was never revoked")
	}
}
