// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package client is the consumer side of the realtime event channel.

A Controller owns at most one connection to the server's /ws endpoint.
Connect opens it for a signed-in user, closing any connection that is
already open, and Disconnect closes it on logout. UI-facing stores register
one handler per event name with Subscribe; a second Subscribe for the same
name replaces the first.

State machine:

	disconnected -> connecting -> connected -> disconnected

A transport-level close moves the controller to disconnected. It does not
reconnect on its own; callers decide when to call Connect again.

Usage:

	ctrl := client.New("wss://app.example.com/ws", client.Options{
		Header: http.Header{"Cookie": {"jwt=" + token}},
		Origin: "https://app.example.com",
	})
	ctrl.Subscribe(models.EventNewMatch, func(data json.RawMessage) { ... })
	if err := ctrl.Connect(ctx, userID); err != nil { ... }
	defer ctrl.Disconnect()
*/
package client
