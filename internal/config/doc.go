// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

// Package config loads Peer-to-Playlist configuration.
//
// Sources are layered with koanf, later layers winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file (CONFIG_PATH, else config.yaml in the working directory)
//  3. Environment variables listed in envTransformFunc
//
// The result is validated before it is returned. A missing JWT_SECRET or
// MONGO_URI is a startup error.
//
// # Realtime handshake
//
// REALTIME_HANDSHAKE_MODE selects how the /ws endpoint establishes identity:
//
//   - client_id (default): the userId query parameter is trusted as given.
//   - session: identity comes from the verified session token; a supplied
//     userId that differs is rejected.
package config
