// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package services

import (
	"context"
)

// Runner is implemented by *websocket.Hub and *notify.Notifier. Both run
// until ctx is done and clean up before returning ctx.Err().
type Runner interface {
	RunWithContext(ctx context.Context) error
}

// RunnerService supervises a Runner under a fixed name.
type RunnerService struct {
	runner Runner
	name   string
}

// NewWebSocketHubService supervises the realtime hub, which closes every
// connection on shutdown.
func NewWebSocketHubService(hub Runner) *RunnerService {
	return &RunnerService{runner: hub, name: "websocket-hub"}
}

// NewNotifierService supervises the notification workers, which deliver
// what is already queued before stopping.
func NewNotifierService(notifier Runner) *RunnerService {
	return &RunnerService{runner: notifier, name: "notifier"}
}

// Serve implements suture.Service.
func (s *RunnerService) Serve(ctx context.Context) error {
	return s.runner.RunWithContext(ctx)
}

// String implements fmt.Stringer for logging.
func (s *RunnerService) String() string {
	return s.name
}
