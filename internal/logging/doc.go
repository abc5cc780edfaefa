// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

// Package logging provides the zerolog-backed process logger for Peer-to-Playlist.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("user_id", id).Msg("Client connected")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Swipe failed")
//
// # Context
//
// HTTP middleware stores a request ID and a correlation ID on the request
// context. Ctx(ctx) returns a logger carrying both fields so handler logs can
// be joined with the access log.
//
// # Adapters
//
// NewSlogLogger exposes the same sink as a *slog.Logger for libraries that
// only speak log/slog (the supervisor event hook).
//
// SecurityLogger records authentication events with sanitized identifiers.
package logging
