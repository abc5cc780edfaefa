// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Shahir-47/Peer-to-Playlist/internal/config"
)

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	tests := []struct {
		name            string
		cfg             config.SecurityConfig
		wantCredentials bool
		wantRequests    int
		wantLogin       int
	}{
		{
			name:            "explicit origins keep credentials",
			cfg:             config.SecurityConfig{CORSOrigins: []string{"https://app.example.com"}, RateLimitReqs: 50, LoginRateLimit: 3},
			wantCredentials: true,
			wantRequests:    50,
			wantLogin:       3,
		},
		{
			name:            "wildcard drops credentials",
			cfg:             config.SecurityConfig{CORSOrigins: []string{"*"}},
			wantCredentials: false,
			wantRequests:    100,
			wantLogin:       RateLimitLogin.Requests,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChiMiddlewareConfigFromSecurity(&tt.cfg)
			if got.CORSAllowCredentials != tt.wantCredentials {
				t.Errorf("CORSAllowCredentials = %v, want %v", got.CORSAllowCredentials, tt.wantCredentials)
			}
			if got.RateLimitRequests != tt.wantRequests {
				t.Errorf("RateLimitRequests = %d, want %d", got.RateLimitRequests, tt.wantRequests)
			}
			if got.LoginRateLimit != tt.wantLogin {
				t.Errorf("LoginRateLimit = %d, want %d", got.LoginRateLimit, tt.wantLogin)
			}
			if got.RateLimitWindow != time.Minute {
				t.Errorf("RateLimitWindow = %v, want default", got.RateLimitWindow)
			}
		})
	}
}

func TestRateLimitCustom(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	hit := func(h http.Handler) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	limited := NewChiMiddleware(&ChiMiddlewareConfig{}).RateLimitCustom(RateLimitConfig{Requests: 2, Window: time.Minute})(ok)
	codes := []int{hit(limited), hit(limited), hit(limited)}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want 200 200 429", codes)
	}

	open := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true}).RateLimitCustom(RateLimitConfig{Requests: 1, Window: time.Minute})(ok)
	for i := 0; i < 5; i++ {
		if code := hit(open); code != http.StatusOK {
			t.Fatalf("disabled limiter returned %d", code)
		}
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	h := APISecurityHeaders()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	h.ServeHTTP(rec, req)

	for _, header := range []string{"X-Content-Type-Options", "X-Frame-Options", "Cache-Control", "Strict-Transport-Security"} {
		if rec.Header().Get(header) == "" {
			t.Errorf("missing %s", header)
		}
	}
}
