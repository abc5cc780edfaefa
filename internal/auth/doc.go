// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package auth provides session authentication for the HTTP API.

Sessions are HS256 JWTs whose subject is the user's ID. Signup and login set the
token in an httpOnly, SameSite=Strict cookie; API clients may send it as a
Bearer token instead. Passwords are stored as bcrypt hashes.

Logout revokes the token's ID (jti) until the token would have expired. The
revocation list lives in Redis when configured (RedisRevoker) and in process
memory otherwise (MemoryRevoker).

The Middleware also implements websocket.SessionResolver so the realtime
handshake can bind a connection to the session's user.
*/
package auth
