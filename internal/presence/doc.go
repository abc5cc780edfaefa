// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

// Package presence tracks which users currently hold a live realtime connection.
//
// A Registry maps a user id to at most one connection handle. It is an
// ordinary value: main constructs one and hands it to the websocket hub and
// to the notifier, and tests construct their own.
//
// # Semantics
//
//   - Register overwrites. The most recent handle for a user wins and the
//     registry does not close the one it replaced.
//   - Unregister is idempotent and never fails.
//   - UnregisterHandle removes the entry only if it still points at the given
//     handle, so a late disconnect from a superseded connection cannot evict
//     its replacement.
//   - Lookup is a read under a shared lock. It never blocks on I/O.
//
// Entries are never persisted. A restart begins with nobody online.
package presence
