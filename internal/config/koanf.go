// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/peer-to-playlist/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			SessionTimeout:  7 * 24 * time.Hour,
			CookieName:      "jwt",
			BcryptCost:      10,
			CORSOrigins:     []string{"http://localhost:5173"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			LoginRateLimit:  10,
		},
		Mongo: MongoConfig{
			Database:    "peer_to_playlist",
			MaxPoolSize: 100,
			MaxRetry:    3,
			Timeout:     10 * time.Second,
		},
		Realtime: RealtimeConfig{
			HandshakeMode:   HandshakeModeClientID,
			AllowedOrigins:  []string{"http://localhost:5173"},
			SendBuffer:      256,
			InboundRate:     5,
			InboundBurst:    20,
			NotifyQueueSize: 1024,
			NotifyWorkers:   2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf layers defaults, the config file and environment variables, then validates.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
	"realtime.allowed_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",
	"node_env":     "server.environment",

	"jwt_secret":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"cookie_name":         "security.cookie_name",
	"cookie_secure":       "security.cookie_secure",
	"bcrypt_cost":         "security.bcrypt_cost",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"login_rate_limit":    "security.login_rate_limit",

	"mongo_uri":           "mongo.uri",
	"mongo_database":      "mongo.database",
	"mongo_max_pool_size": "mongo.max_pool_size",
	"mongo_max_retry":     "mongo.max_retry",
	"mongo_timeout":       "mongo.timeout",

	"redis_addr":     "redis.addr",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",

	"realtime_handshake_mode":    "realtime.handshake_mode",
	"realtime_close_superseded":  "realtime.close_superseded",
	"realtime_allowed_origins":   "realtime.allowed_origins",
	"realtime_send_buffer":       "realtime.send_buffer",
	"realtime_inbound_rate":      "realtime.inbound_rate",
	"realtime_inbound_burst":     "realtime.inbound_burst",
	"realtime_notify_queue_size": "realtime.notify_queue_size",
	"realtime_notify_workers":    "realtime.notify_workers",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps known environment variables to koanf paths.
// Unknown variables map to "" and are ignored.
//
//   - HTTP_PORT -> server.port
//   - MONGO_URI -> mongo.uri
//   - REALTIME_HANDSHAKE_MODE -> realtime.handshake_mode
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
