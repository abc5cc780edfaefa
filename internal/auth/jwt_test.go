// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shahir-47/Peer-to-Playlist/internal/config"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

func newTestJWTManager(t *testing.T, timeout time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: timeout})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{"valid secret", &config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour}, false},
		{"empty secret", &config.SecurityConfig{SessionTimeout: time.Hour}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewJWTManager(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && m.Timeout() != tt.cfg.SessionTimeout {
				t.Errorf("Timeout = %v, want %v", m.Timeout(), tt.cfg.SessionTimeout)
			}
		})
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newTestJWTManager(t, 7*24*time.Hour)

	token, issued, err := m.GenerateToken("64b7f0c2e4b0a1a2b3c4d5e6")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if issued.ID == "" {
		t.Error("token has no jti")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID() != "64b7f0c2e4b0a1a2b3c4d5e6" {
		t.Errorf("UserID = %q", claims.UserID())
	}
	if claims.ID != issued.ID {
		t.Errorf("jti = %q, want %q", claims.ID, issued.ID)
	}
	if ttl := time.Until(claims.ExpiresAt.Time); ttl < 6*24*time.Hour {
		t.Errorf("token expires in %v, want about 7 days", ttl)
	}
}

func TestJWTManager_UniqueTokenIDs(t *testing.T) {
	m := newTestJWTManager(t, time.Hour)
	_, a, _ := m.GenerateToken("u1")
	_, b, _ := m.GenerateToken("u1")
	if a.ID == b.ID {
		t.Error("two tokens share a jti")
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m := newTestJWTManager(t, time.Hour)
	other, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret + "-other", SessionTimeout: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	expired := newTestJWTManager(t, -time.Minute)

	foreign, _, _ := other.GenerateToken("u1")
	stale, _, _ := expired.GenerateToken("u1")
	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{})
	anonymous, _ := noSubject.SignedString([]byte(testSecret))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"alg none", unsigned},
		{"missing subject", anonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
