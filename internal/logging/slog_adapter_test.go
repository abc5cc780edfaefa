// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.With("service", "websocket-hub").WithGroup("restart").Warn("service restarted",
		"attempt", 3,
		"backoff", 15*time.Second,
	)

	out := buf.String()
	for _, want := range []string{
		`"service":"websocket-hub"`,
		`"restart.attempt":3`,
		"service restarted",
		`"level":"warn"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output: %s", want, out)
		}
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	levels := map[slog.Level]string{
		slog.LevelDebug: "debug",
		slog.LevelInfo:  "info",
		slog.LevelWarn:  "warn",
		slog.LevelError: "error",
	}
	for in, want := range levels {
		if got := slogToZerologLevel(in).String(); got != want {
			t.Errorf("slogToZerologLevel(%v) = %s, want %s", in, got, want)
		}
	}
}
