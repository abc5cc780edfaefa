// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package database stores users and messages in MongoDB.

Collections:

  - users: profile, bcrypt password hash, and the likes, dislikes and matches
    ID arrays; unique index on email
  - messages: sender, receiver, content and attachments; compound index on
    (sender, receiver, createdAt) for conversation reads

Every call runs under a per-operation timeout and through a circuit breaker
(sony/gobreaker). Expected outcomes such as ErrNotFound and ErrDuplicateEmail
do not count as breaker failures. While the breaker is open calls fail fast
with ErrUnavailable.

Swipes are idempotent: liking or passing on the same user twice changes
nothing. A like that closes the loop adds each user to the other's matches
and reports Matched so the caller can notify both parties.
*/
package database
