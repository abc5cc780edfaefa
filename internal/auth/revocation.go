// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shahir-47/Peer-to-Playlist/internal/config"
	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
)

// ErrTokenRevoked is returned for a token that was logged out.
var ErrTokenRevoked = errors.New("token revoked")

// Revoker records logged-out token IDs until their natural expiry.
type Revoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryRevoker keeps revoked token IDs in process memory. Entries are lost
// on restart.
type MemoryRevoker struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryRevoker creates an empty in-memory revocation list.
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{entries: make(map[string]time.Time)}
}

// Revoke marks jti revoked until the given time.
func (r *MemoryRevoker) Revoke(_ context.Context, jti string, until time.Time) error {
	if jti == "" || !until.After(time.Now()) {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[jti] = until
	return nil
}

// IsRevoked reports whether jti is revoked and not yet expired.
func (r *MemoryRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	until, ok := r.entries[jti]
	return ok && time.Now().Before(until), nil
}

// CleanupExpired drops entries whose tokens have expired and returns how many
// were removed.
func (r *MemoryRevoker) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	removed := 0
	for jti, until := range r.entries {
		if !now.Before(until) {
			delete(r.entries, jti)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries.
func (r *MemoryRevoker) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

const revokedKeyPrefix = "p2p:revoked:"

// RedisRevoker stores revoked token IDs in Redis with a TTL matching the
// token's remaining lifetime, so every server instance sees the same list.
type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker wraps an existing client.
func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logging.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("connected to redis")
	return client, nil
}

func revokedKey(jti string) string { return revokedKeyPrefix + jti }

// Revoke marks jti revoked until the given time.
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti is present in the revocation list.
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
