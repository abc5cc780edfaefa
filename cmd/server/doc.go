// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package main is the entry point for the Peer-to-Playlist server.

The server exposes the account, profile, matching and messaging REST API and
the realtime endpoint that pushes newMatch, newMessage and newUserProfile
events to connected clients.

# Application Architecture

	RootSupervisor ("peer-to-playlist")
	├── RealtimeSupervisor ("realtime-layer")
	│   ├── WebSocket hub
	│   └── Notifier workers
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Revocation cleanup (without Redis)
	└── APISupervisor ("api-layer")
	    └── HTTP server (REST API, /ws, /metrics)

Component initialization order:

 1. Configuration: koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog with JSON or console output
 3. Database: MongoDB with indexes and a circuit breaker
 4. Sessions: JWT cookies with Redis or in-memory revocation
 5. Realtime: presence registry, hub and notifier
 6. HTTP: Chi router with CORS, rate limiting and Prometheus metrics
 7. Supervisor tree: suture v4

# Configuration

	MONGO_URI=mongodb://localhost:27017
	JWT_SECRET=$(openssl rand -base64 32)
	REDIS_ADDR=localhost:6379             # optional
	REALTIME_HANDSHAKE_MODE=client_id     # or session
	CORS_ORIGINS=https://app.example.com

REALTIME_HANDSHAKE_MODE=client_id accepts the userId query parameter as the
caller's identity without verification. Use session mode wherever the
session cookie reaches the realtime endpoint.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains open
requests, the hub closes every connection, the notifier delivers what is
already queued, and the database client disconnects.
*/
package main
