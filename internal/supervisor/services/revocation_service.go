// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ExpiredCleaner matches *auth.MemoryRevoker's CleanupExpired method.
type ExpiredCleaner interface {
	CleanupExpired() int
}

// RevocationCleanupService periodically forgets revoked session tokens
// that have expired anyway. Only the in-memory revoker needs it; Redis keys
// carry their own TTL.
type RevocationCleanupService struct {
	cleaner  ExpiredCleaner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewRevocationCleanupService creates the cleanup service. A non-positive
// interval defaults to ten minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRevocationCleanupService(cleaner ExpiredCleaner, interval time.Duration, logger zerolog.Logger) *RevocationCleanupService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &RevocationCleanupService{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger.With().Str("service", "revocation-cleanup").Logger(),
		name:     "revocation-cleanup",
	}
}

// Serve implements suture.Service.
func (s *RevocationCleanupService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.cleaner.CleanupExpired(); n > 0 {
				s.logger.Debug().Int("removed", n).Msg("expired revocations removed")
			}
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *RevocationCleanupService) String() string {
	return s.name
}
