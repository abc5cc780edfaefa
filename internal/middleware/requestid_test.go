// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
)

func serveRequestID(t *testing.T, header string) (responseID, ctxID, correlationID string) {
	t.Helper()
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		ctxID = logging.RequestIDFromContext(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec.Header().Get(RequestIDHeader), ctxID, correlationID
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	responseID, ctxID, correlationID := serveRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("response id %q is not a UUID: %v", responseID, err)
	}
	if ctxID != responseID {
		t.Errorf("context id %q != response id %q", ctxID, responseID)
	}
	if correlationID == "" {
		t.Error("expected a correlation id in context")
	}
}

func TestRequestID_PreservesExistingID(t *testing.T) {
	responseID, ctxID, _ := serveRequestID(t, "upstream-req-42")
	if responseID != "upstream-req-42" || ctxID != "upstream-req-42" {
		t.Errorf("got response %q context %q, want upstream id", responseID, ctxID)
	}
}

func TestRequestID_ReplacesMalformedID(t *testing.T) {
	tests := map[string]string{
		"control chars": "abc\ndef",
		"spaces":        "abc def",
		"too long":      strings.Repeat("a", maxRequestIDLength+1),
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			responseID, _, _ := serveRequestID(t, header)
			if responseID == header {
				t.Errorf("malformed id %q was echoed", header)
			}
			if _, err := uuid.Parse(responseID); err != nil {
				t.Errorf("replacement %q is not a UUID", responseID)
			}
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, _, _ := serveRequestID(t, "")
		if seen[id] {
			t.Fatalf("duplicate request id %s", id)
		}
		seen[id] = true
	}
}
