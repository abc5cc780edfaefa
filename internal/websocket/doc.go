// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package websocket is the server-side event channel for real-time presence.

Each authenticated browser session holds one WebSocket connection. When the
connection is established the hub records it in the presence registry under
the user's ID, and when it closes the hub removes it again. Server code pushes
named events either to one connection (SendTo) or to every connected client
(BroadcastAll).

Key Components:

  - Hub: binds connections to a presence.Registry and fans out broadcasts
  - Client: one WebSocket connection with its read and write goroutines
  - Endpoint: the HTTP handler that authenticates the handshake and upgrades
  - Authenticator: decides which user a handshake belongs to

Wire Format:

Every frame is a JSON object with an event name and a payload:

	{"type": "newMatch", "data": {"id": "...", "name": "...", "image": "..."}}

Clients may send {"type": "ping"} and receive {"type": "pong"}; all other
inbound frames are ignored.

Delivery Semantics:

Sends never block the caller. A send to a connection that has gone away, or
whose outbound buffer is full, is dropped and counted in the
events_dropped_total metric. There is no queueing for offline users and no
acknowledgement of delivery.

Handshake Identity:

The default ClientIDAuthenticator trusts the userId query parameter supplied
by the client. Any client can claim any user ID this way. SessionAuthenticator
binds the connection to the user in the session cookie instead and should be
used wherever impersonation matters (realtime.handshake_mode: session).

Thread Safety:

All exported Hub and Client methods are safe for concurrent use.
*/
package websocket
