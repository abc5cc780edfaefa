// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Shahir-47/Peer-to-Playlist/internal/auth"
	"github.com/Shahir-47/Peer-to-Playlist/internal/database"
	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

const invalidCredentials = "Invalid email or password"

// Signup creates an account, starts its session, and announces the new
// profile to connected clients.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.SignupRequest
	if !bindJSON(rw, w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to hash password")
		rw.InternalError("Failed to create account")
		return
	}

	user := &models.User{
		Name:             req.Name,
		Email:            req.Email,
		Password:         hash,
		Age:              req.Age,
		Gender:           req.Gender,
		GenderPreference: req.GenderPreference,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		respondStoreError(rw, err, "User not found")
		return
	}

	if !h.startSession(rw, w, r, user) {
		return
	}
	h.security.LogSignup(user.HexID(), user.Email, clientIP(r))

	rw.Created(user)
	h.notifier.NotifyNewProfile()
}

// Login verifies credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.LoginRequest
	if !bindJSON(rw, w, r, &req) {
		return
	}

	user, err := h.store.FindUserByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		respondStoreError(rw, err, invalidCredentials)
		return
	}
	if user == nil || auth.CheckPassword(user.Password, req.Password) != nil {
		h.security.LogLoginFailure(req.Email, clientIP(r), auth.ErrInvalidCredentials.Error())
		rw.Unauthorized(invalidCredentials)
		return
	}

	if !h.startSession(rw, w, r, user) {
		return
	}
	h.security.LogLoginSuccess(user.HexID(), user.Email, clientIP(r))
	rw.Success(user)
}

// Logout revokes the current session token, if any, and clears the cookie.
// It succeeds without a valid session so a stale cookie can always be
// cleared.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if claims, err := h.sessions.Identify(r); err == nil {
		if err := h.sessions.Revoke(r.Context(), claims); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("failed to revoke session token")
		}
		h.security.LogLogout(claims.UserID(), claims.ID, clientIP(r))
	}

	h.sessions.ClearSessionCookie(w)
	rw.Success(map[string]string{"message": "Logged out successfully"})
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	user, err := h.store.FindUserByID(r.Context(), currentUserID(r))
	if err != nil {
		respondStoreError(rw, err, "User not found")
		return
	}
	rw.Success(user)
}

func (h *Handler) startSession(rw *ResponseWriter, w http.ResponseWriter, r *http.Request, user *models.User) bool {
	token, claims, err := h.jwtManager.GenerateToken(user.HexID())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to issue session token")
		rw.InternalError("Failed to start session")
		return false
	}

	expires := time.Now().Add(h.jwtManager.Timeout())
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	h.sessions.SetSessionCookie(w, token, expires)
	return true
}
