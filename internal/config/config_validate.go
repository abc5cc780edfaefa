// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// minJWTSecretLength matches the HS256 key size.
const minJWTSecretLength = 32

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateMongo(); err != nil {
		return err
	}
	if err := c.validateRedis(); err != nil {
		return err
	}
	if err := c.validateRealtime(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if c.Security.SessionTimeout < time.Minute {
		return fmt.Errorf("SESSION_TIMEOUT must be at least 1m, got %s", c.Security.SessionTimeout)
	}
	if c.Security.CookieName == "" {
		return fmt.Errorf("COOKIE_NAME must not be empty")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" && c.IsProduction() {
			return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
		}
	}
	return nil
}

func (c *Config) validateMongo() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	u, err := url.Parse(c.Mongo.URI)
	if err != nil {
		return fmt.Errorf("MONGO_URI is invalid: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("MONGO_URI must use mongodb:// or mongodb+srv://, got %q", u.Scheme)
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE must not be empty")
	}
	if c.Mongo.MaxRetry < 0 {
		return fmt.Errorf("MONGO_MAX_RETRY must not be negative")
	}
	if c.Mongo.Timeout <= 0 {
		return fmt.Errorf("MONGO_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateRedis() error {
	if !c.Redis.Enabled() {
		return nil
	}
	if !strings.Contains(c.Redis.Addr, ":") {
		return fmt.Errorf("REDIS_ADDR must be host:port, got %q", c.Redis.Addr)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}
	return nil
}

func (c *Config) validateRealtime() error {
	switch c.Realtime.HandshakeMode {
	case HandshakeModeClientID, HandshakeModeSession:
	default:
		return fmt.Errorf("REALTIME_HANDSHAKE_MODE must be %q or %q, got %q",
			HandshakeModeClientID, HandshakeModeSession, c.Realtime.HandshakeMode)
	}
	if c.Realtime.SendBuffer <= 0 {
		return fmt.Errorf("REALTIME_SEND_BUFFER must be positive")
	}
	if c.Realtime.InboundRate <= 0 || c.Realtime.InboundBurst <= 0 {
		return fmt.Errorf("REALTIME_INBOUND_RATE and REALTIME_INBOUND_BURST must be positive")
	}
	if c.Realtime.NotifyQueueSize <= 0 {
		return fmt.Errorf("REALTIME_NOTIFY_QUEUE_SIZE must be positive")
	}
	if c.Realtime.NotifyWorkers < 1 {
		return fmt.Errorf("REALTIME_NOTIFY_WORKERS must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
