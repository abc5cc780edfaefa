// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

// Package models defines the documents stored in MongoDB and the payloads
// pushed over the realtime channel.
//
// Documents carry both bson and json tags. JSON keeps the "_id" key used by
// the browser client; the realtime newMatch payload uses "id".
package models
