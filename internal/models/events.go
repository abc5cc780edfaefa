// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package models

// Realtime event names pushed from server to client.
const (
	EventNewMatch       = "newMatch"
	EventNewMessage     = "newMessage"
	EventNewUserProfile = "newUserProfile"
)

// Inbound control frames.
const (
	EventPing = "ping"
	EventPong = "pong"
)

// MatchPayload describes the other party of a new mutual match.
type MatchPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// NewUserProfilePayload is the empty body of a newUserProfile broadcast.
type NewUserProfilePayload struct{}
