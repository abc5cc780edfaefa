// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Shahir-47/Peer-to-Playlist/internal/config"
	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the *Claims of an authenticated request.
const ClaimsContextKey contextKey = "claims"

var (
	// ErrMissingToken is returned when a request carries no session token.
	ErrMissingToken = errors.New("no token provided")

	// ErrMalformedHeader is returned for an Authorization header that is not
	// a Bearer token.
	ErrMalformedHeader = errors.New("invalid authorization header")
)

// UnauthorizedFunc writes the response for a request that failed
// authentication.
type UnauthorizedFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware authenticates requests from the session cookie or a Bearer
// token.
type Middleware struct {
	jwtManager   *JWTManager
	revoker      Revoker
	cookieName   string
	cookieSecure bool

	// Unauthorized replaces the default plain-text 401 response.
	Unauthorized UnauthorizedFunc
}

// NewMiddleware creates the session middleware. revoker may be nil.
func NewMiddleware(jwtManager *JWTManager, revoker Revoker, cfg *config.SecurityConfig) *Middleware {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "jwt"
	}
	return &Middleware{
		jwtManager:   jwtManager,
		revoker:      revoker,
		cookieName:   cookieName,
		cookieSecure: cfg.CookieSecure,
	}
}

// Authenticate rejects requests without a valid, unrevoked session and puts
// the claims into the request context.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.Identify(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("request authentication failed")
			m.unauthorized(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	if m.Unauthorized != nil {
		m.Unauthorized(w, r, err)
		return
	}
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// Identify validates the request's session token.
func (m *Middleware) Identify(r *http.Request) (*Claims, error) {
	token, err := m.extractToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	if m.revoker != nil && claims.ID != "" {
		revoked, err := m.revoker.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			return nil, fmt.Errorf("revocation check failed: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// ResolveUserID returns the session's user ID.
func (m *Middleware) ResolveUserID(r *http.Request) (string, error) {
	claims, err := m.Identify(r)
	if err != nil {
		return "", err
	}
	return claims.UserID(), nil
}

// extractToken prefers the Authorization header and falls back to the cookie.
func (m *Middleware) extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return "", ErrMissingToken
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMalformedHeader
	}
	return parts[1], nil
}

// Revoke ends the session described by claims.
func (m *Middleware) Revoke(ctx context.Context, claims *Claims) error {
	if m.revoker == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return m.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// SetSessionCookie writes the session token cookie.
func (m *Middleware) SetSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the session token cookie.
func (m *Middleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns the authenticated user ID, or "".
func UserIDFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID()
	}
	return ""
}

// ContextWithClaims stores claims in ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}
