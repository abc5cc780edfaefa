// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

// Package notify pushes realtime events after a mutation has been committed:
// newMatch to both parties of a mutual like, newMessage to the receiver of a
// message, and newUserProfile to everyone when an account is created.
//
// Dispatch is fire-and-forget. Notify methods enqueue and return at once so an
// HTTP handler never waits on a socket. Offline recipients are skipped without
// retry; they see the change the next time they load the data.
package notify
