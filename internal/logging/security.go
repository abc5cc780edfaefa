// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityLogger records authentication and handshake events.
// Identifiers are masked before they reach the sink.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger returns a SecurityLogger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("security")}
}

// NewSecurityLoggerWithLogger returns a SecurityLogger on logger.
//
//nolint:gocritic // zerolog.Logger is passed by value by design of the library
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "security").Logger()}
}

// LogSignup records a new account.
func (l *SecurityLogger) LogSignup(userID, email, ip string) {
	l.logger.Info().
		Str("event", "signup").
		Str("user_id", userID).
		Str("email", SanitizeEmail(email)).
		Str("ip", ip).
		Msg("Account created")
}

// LogLoginSuccess records a successful login.
func (l *SecurityLogger) LogLoginSuccess(userID, email, ip string) {
	l.logger.Info().
		Str("event", "login_success").
		Str("user_id", userID).
		Str("email", SanitizeEmail(email)).
		Str("ip", ip).
		Msg("Login succeeded")
}

// LogLoginFailure records a rejected login.
func (l *SecurityLogger) LogLoginFailure(email, ip, reason string) {
	l.logger.Warn().
		Str("event", "login_failure").
		Str("email", SanitizeEmail(email)).
		Str("ip", ip).
		Str("reason", SanitizeError(reason)).
		Msg("Login failed")
}

// LogLogout records a logout and the revoked token id.
func (l *SecurityLogger) LogLogout(userID, tokenID, ip string) {
	l.logger.Info().
		Str("event", "logout").
		Str("user_id", userID).
		Str("token_id", SanitizeToken(tokenID)).
		Str("ip", ip).
		Msg("Logged out")
}

// LogHandshakeRejected records a refused realtime connection.
func (l *SecurityLogger) LogHandshakeRejected(claimedUserID, ip, reason string) {
	l.logger.Warn().
		Str("event", "handshake_rejected").
		Str("claimed_user_id", SanitizeUserID(claimedUserID)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Realtime handshake rejected")
}

// SanitizeToken keeps the first and last four characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeUserID keeps the first and last four characters.
func SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}
	if len(userID) <= 8 {
		return "***"
	}
	return userID[:4] + "..." + userID[len(userID)-4:]
}

// SanitizeEmail keeps two characters of the local part and the whole domain.
//
//	"jane.doe@example.com" -> "ja***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

var sensitiveErrorWords = []string{"password", "secret", "token", "bearer", "cookie"}

// SanitizeError collapses messages that mention credentials and truncates the rest.
func SanitizeError(msg string) string {
	lower := strings.ToLower(msg)
	for _, w := range sensitiveErrorWords {
		if strings.Contains(lower, w) {
			return "authentication error"
		}
	}
	if len(msg) > 200 {
		return msg[:200] + "..."
	}
	return msg
}
