// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
)

// SwipeRight likes the target. When the like completes a mutual match both
// users are notified after the match is stored.
func (h *Handler) SwipeRight(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	res, err := h.store.Like(r.Context(), currentUserID(r), chi.URLParam(r, "likedUserId"))
	if err != nil {
		respondStoreError(rw, err, "User not found")
		return
	}

	rw.Success(res.User)
	if res.Matched {
		logging.Ctx(r.Context()).Debug().
			Str("user_id", res.User.HexID()).
			Str("match_id", res.Target.HexID()).
			Msg("mutual match formed")
		h.notifier.NotifyMatch(res.User, res.Target)
	}
}

// SwipeLeft passes on the target.
func (h *Handler) SwipeLeft(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	user, err := h.store.Dislike(r.Context(), currentUserID(r), chi.URLParam(r, "dislikedUserId"))
	if err != nil {
		respondStoreError(rw, err, "User not found")
		return
	}
	rw.Success(user)
}

// GetMatches lists the caller's matches.
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	matches, err := h.store.FindMatches(r.Context(), currentUserID(r))
	if err != nil {
		respondStoreError(rw, err, "User not found")
		return
	}
	rw.Success(matches)
}

// GetUserProfiles returns the caller's discovery feed.
func (h *Handler) GetUserProfiles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	users, err := h.store.FindCandidates(r.Context(), currentUserID(r))
	if err != nil {
		respondStoreError(rw, err, "User not found")
		return
	}
	rw.Success(users)
}
