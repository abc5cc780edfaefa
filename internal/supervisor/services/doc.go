// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package services provides suture.Service wrappers for Peer-to-Playlist
components.

Each wrapper translates a component's lifecycle into suture's Serve pattern
and names itself through fmt.Stringer for the supervisor's event log.

# Available Services

  - HTTPServerService: ListenAndServe and graceful Shutdown of the API server
  - NewWebSocketHubService: the realtime hub's RunWithContext loop
  - NewNotifierService: the notification workers, which drain on shutdown
  - RevocationCleanupService: periodic pruning of the in-memory revocation list

# Return Values

	nil         -> stopped cleanly, not restarted
	error       -> crashed, the supervisor restarts it
	ctx.Err()   -> shutdown requested
*/
package services
