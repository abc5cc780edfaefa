// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package api serves the HTTP API and mounts the realtime endpoint.

Routes (all JSON, wrapped in APIResponse):

	POST /api/v1/auth/signup                       create account, start session
	POST /api/v1/auth/login                        start session
	POST /api/v1/auth/logout                       revoke session
	GET  /api/v1/auth/me                           current user
	PUT  /api/v1/users/update                      edit profile
	POST /api/v1/matches/swipe-right/{likedUserId} like, possibly forming a match
	POST /api/v1/matches/swipe-left/{dislikedUserId}
	GET  /api/v1/matches                           matched users
	GET  /api/v1/matches/user-profiles             discovery feed
	POST /api/v1/messages/send
	GET  /api/v1/messages/conversation/{userId}
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics
	GET  /ws                                       realtime event channel

Handlers depend on the Store and Notifier interfaces, not on concrete
types, so tests run against in-memory fakes. Notifications are dispatched
only after the mutation they describe has been written, and a handler's
response never waits for them.
*/
package api
