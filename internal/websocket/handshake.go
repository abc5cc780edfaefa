// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package websocket

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/metrics"
)

// UserIDParam is the query parameter carrying the claimed user ID.
const UserIDParam = "userId"

// RejectionMessage is the error text returned for every refused handshake.
const RejectionMessage = "Invalid user ID"

var (
	// ErrMissingUserID is returned when the handshake carries no user ID.
	ErrMissingUserID = errors.New("missing user id")

	// ErrIdentityMismatch is returned when the claimed user ID differs from
	// the session's user.
	ErrIdentityMismatch = errors.New("claimed user id does not match session")

	// ErrUnauthenticated is returned when session mode finds no valid session.
	ErrUnauthenticated = errors.New("no valid session")
)

// Authenticator resolves the user a handshake request belongs to.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// ClientIDAuthenticator accepts whatever user ID the client claims. It only
// checks that one is present, so any client can impersonate any user.
type ClientIDAuthenticator struct{}

// Authenticate returns the userId query parameter exactly as sent. A blank
// value is rejected.
func (ClientIDAuthenticator) Authenticate(r *http.Request) (string, error) {
	userID := r.URL.Query().Get(UserIDParam)
	if strings.TrimSpace(userID) == "" {
		return "", ErrMissingUserID
	}
	return userID, nil
}

// SessionResolver extracts the authenticated user ID from a request's
// session credentials.
type SessionResolver interface {
	ResolveUserID(r *http.Request) (string, error)
}

// SessionAuthenticator binds the connection to the session's user. A userId
// parameter, when present, must name the same user.
type SessionAuthenticator struct {
	Sessions SessionResolver
}

// Authenticate returns the session user ID.
func (a SessionAuthenticator) Authenticate(r *http.Request) (string, error) {
	userID, err := a.Sessions.ResolveUserID(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if userID == "" {
		return "", ErrMissingUserID
	}
	claimed := strings.TrimSpace(r.URL.Query().Get(UserIDParam))
	if claimed != "" && claimed != userID {
		return "", ErrIdentityMismatch
	}
	return userID, nil
}

// rejectionReason maps an authentication error to a metric label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingUserID):
		return "missing_user_id"
	case errors.Is(err, ErrIdentityMismatch):
		return "identity_mismatch"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "error"
	}
}

// Endpoint is the HTTP handler for the realtime connection.
type Endpoint struct {
	hub            *Hub
	auth           Authenticator
	upgrader       websocket.Upgrader
	allowedOrigins []string
	security       *logging.SecurityLogger
}

// NewEndpoint creates the handshake handler. A nil auth falls back to
// ClientIDAuthenticator.
func NewEndpoint(hub *Hub, auth Authenticator, allowedOrigins []string) *Endpoint {
	if auth == nil {
		auth = ClientIDAuthenticator{}
	}
	e := &Endpoint{
		hub:            hub,
		auth:           auth,
		allowedOrigins: allowedOrigins,
		security:       logging.NewSecurityLogger(),
	}
	e.upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      e.checkOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
	return e
}

// ServeHTTP authenticates, upgrades and registers the connection.
// Authentication happens before the upgrade so a refused client gets a
// plain HTTP 401.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := e.auth.Authenticate(r)
	if err != nil {
		reason := rejectionReason(err)
		metrics.RecordHandshakeRejected(reason)
		e.security.LogHandshakeRejected(r.URL.Query().Get(UserIDParam), r.RemoteAddr, reason)
		writeRejection(w)
		return
	}

	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		logging.Warn().Err(err).Str("user_id", userID).Msg("websocket upgrade error")
		return
	}

	client := NewClient(e.hub, conn, userID)
	e.hub.Connect(client)
	client.Start()
}

func (e *Endpoint) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	for _, allowed := range e.allowedOrigins {
		if allowed == "*" || (origin != "" && allowed == origin) {
			return true
		}
	}
	if origin == "" {
		logging.Warn().Msg("websocket connection rejected: missing Origin header")
		return false
	}
	logging.Warn().Str("origin", origin).Msg("websocket connection rejected from unauthorized origin")
	return false
}

func writeRejection(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": RejectionMessage})
}
