// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package config

import "time"

// Handshake modes for the realtime endpoint.
const (
	HandshakeModeClientID = "client_id"
	HandshakeModeSession  = "session"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Mongo    MongoConfig    `koanf:"mongo"`
	Redis    RedisConfig    `koanf:"redis"`
	Realtime RealtimeConfig `koanf:"realtime"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SecurityConfig holds session and HTTP hardening settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	CookieName        string        `koanf:"cookie_name"`
	CookieSecure      bool          `koanf:"cookie_secure"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	LoginRateLimit    int           `koanf:"login_rate_limit"`
}

// MongoConfig holds document database settings.
type MongoConfig struct {
	URI         string        `koanf:"uri"`
	Database    string        `koanf:"database"`
	MaxPoolSize uint64        `koanf:"max_pool_size"`
	MaxRetry    int           `koanf:"max_retry"`
	Timeout     time.Duration `koanf:"timeout"`
}

// RedisConfig holds the optional token revocation store. Empty Addr disables it.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// RealtimeConfig holds websocket and notification settings.
type RealtimeConfig struct {
	HandshakeMode   string   `koanf:"handshake_mode"`
	CloseSuperseded bool     `koanf:"close_superseded"`
	AllowedOrigins  []string `koanf:"allowed_origins"`
	SendBuffer      int      `koanf:"send_buffer"`
	InboundRate     float64  `koanf:"inbound_rate"`
	InboundBurst    int      `koanf:"inbound_burst"`
	NotifyQueueSize int      `koanf:"notify_queue_size"`
	NotifyWorkers   int      `koanf:"notify_workers"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional file, and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
