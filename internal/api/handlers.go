// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"context"
	"time"

	"github.com/Shahir-47/Peer-to-Playlist/internal/auth"
	"github.com/Shahir-47/Peer-to-Playlist/internal/config"
	"github.com/Shahir-47/Peer-to-Playlist/internal/database"
	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

// Store is the persistence the handlers need. *database.DB implements it.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error)
	Like(ctx context.Context, userID, targetID string) (*database.LikeResult, error)
	Dislike(ctx context.Context, userID, targetID string) (*models.User, error)
	FindMatches(ctx context.Context, userID string) ([]models.MatchPayload, error)
	FindCandidates(ctx context.Context, userID string) ([]models.User, error)
	CreateMessage(ctx context.Context, m *models.Message) error
	FindMessagesBetween(ctx context.Context, a, b string) ([]models.Message, error)
	Ping(ctx context.Context) error
}

// Notifier pushes realtime events after a mutation is stored. Calls must
// return without waiting for delivery.
type Notifier interface {
	NotifyMatch(a, b *models.User)
	NotifyMessage(msg *models.Message)
	NotifyNewProfile()
}

// Handler contains dependencies for API handlers.
type Handler struct {
	store      Store
	notifier   Notifier
	jwtManager *auth.JWTManager
	sessions   *auth.Middleware
	security   *logging.SecurityLogger
	bcryptCost int
	startTime  time.Time
}

// NewHandler creates the API handler. notifier may be nil, in which case no
// events are pushed.
func NewHandler(store Store, notifier Notifier, jwtManager *auth.JWTManager, sessions *auth.Middleware, cfg *config.SecurityConfig) *Handler {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Handler{
		store:      store,
		notifier:   notifier,
		jwtManager: jwtManager,
		sessions:   sessions,
		security:   logging.NewSecurityLogger(),
		bcryptCost: cfg.BcryptCost,
		startTime:  time.Now(),
	}
}

type nopNotifier struct{}

func (nopNotifier) NotifyMatch(_, _ *models.User)   {}
func (nopNotifier) NotifyMessage(_ *models.Message) {}
func (nopNotifier) NotifyNewProfile()               {}
