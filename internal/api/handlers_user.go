// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"net/http"

	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

// UpdateProfile applies the supplied profile fields.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.UpdateProfileRequest
	if !bindJSON(rw, w, r, &req) {
		return
	}
	if req.Empty() {
		rw.BadRequest("No profile fields to update")
		return
	}

	user, err := h.store.UpdateProfile(r.Context(), currentUserID(r), &req)
	if err != nil {
		respondStoreError(rw, err, "User not found")
		return
	}
	rw.Success(user)
}
