// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package supervisor runs the long-lived parts of Peer-to-Playlist under a
suture v4 supervisor tree.

	RootSupervisor ("peer-to-playlist")
	├── RealtimeSupervisor ("realtime-layer")
	│   ├── websocket-hub
	│   └── notifier
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── revocation-cleanup (in-memory revocation only)
	└── APISupervisor ("api-layer")
	    └── http-server

A crashed service is restarted by its layer without touching the others.
Supervisor events are written through sutureslog to the slog adapter of the
logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddRealtimeService(services.NewWebSocketHubService(hub))
	tree.AddRealtimeService(services.NewNotifierService(notifier))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

MongoDB and Redis clients are not supervised; their drivers manage their own
connection pools.
*/
package supervisor
