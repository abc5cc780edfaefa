// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

// SendMessage stores a message and pushes it to the receiver only.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.SendMessageRequest
	if !bindJSON(rw, w, r, &req) {
		return
	}

	sender, err := primitive.ObjectIDFromHex(currentUserID(r))
	if err != nil {
		rw.Unauthorized("Invalid session")
		return
	}

	receiver, err := h.store.FindUserByID(r.Context(), req.ReceiverID)
	if err != nil {
		respondStoreError(rw, err, "Receiver not found")
		return
	}
	// Hex ids are case-insensitive, so compare the resolved ids.
	if receiver.ID == sender {
		rw.BadRequest("You cannot message yourself")
		return
	}

	msg := &models.Message{
		Sender:      sender,
		Receiver:    receiver.ID,
		Content:     req.Content,
		Attachments: req.Attachments,
	}
	if err := h.store.CreateMessage(r.Context(), msg); err != nil {
		respondStoreError(rw, err, "Receiver not found")
		return
	}

	rw.Created(msg)
	h.notifier.NotifyMessage(msg)
}

// GetConversation returns the messages between the caller and userId,
// oldest first.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	messages, err := h.store.FindMessagesBetween(r.Context(), currentUserID(r), chi.URLParam(r, "userId"))
	if err != nil {
		respondStoreError(rw, err, "User not found")
		return
	}
	rw.Success(messages)
}
