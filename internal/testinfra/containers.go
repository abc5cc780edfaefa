// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultMongoImage = "mongo:7.0"
	DefaultRedisImage = "redis:7-alpine"

	mongoPort = "27017/tcp"
	redisPort = "6379/tcp"
)

// SkipIfNoDocker skips the test when no Docker daemon is reachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable runs `docker info` with a short timeout.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// CleanupContainer terminates c and logs, rather than fails, on error.
func CleanupContainer(t *testing.T, ctx context.Context, c testcontainers.Container) {
	t.Helper()
	if c == nil {
		return
	}
	if err := c.Terminate(ctx); err != nil {
		t.Logf("Warning: failed to terminate container: %v", err)
	}
}

// MongoContainer is a running single-node MongoDB.
type MongoContainer struct {
	testcontainers.Container
	URI string
}

// RedisContainer is a running Redis server.
type RedisContainer struct {
	testcontainers.Container
	Addr string
}

// NewMongoContainer starts MongoDB and returns its connection URI.
func NewMongoContainer(ctx context.Context) (*MongoContainer, error) {
	c, endpoint, err := startContainer(ctx, testcontainers.ContainerRequest{
		Image:        DefaultMongoImage,
		ExposedPorts: []string{mongoPort},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(mongoPort),
			wait.ForLog("Waiting for connections"),
		).WithStartupTimeout(90 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("start mongo container: %w", err)
	}
	return &MongoContainer{Container: c, URI: "mongodb://" + endpoint}, nil
}

// NewRedisContainer starts Redis and returns its address.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	c, endpoint, err := startContainer(ctx, testcontainers.ContainerRequest{
		Image:        DefaultRedisImage,
		ExposedPorts: []string{redisPort},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(redisPort),
			wait.ForLog("Ready to accept connections"),
		).WithStartupTimeout(60 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("start redis container: %w", err)
	}
	return &RedisContainer{Container: c, Addr: endpoint}, nil
}

// startContainer runs req and resolves host:port of its single exposed port.
func startContainer(ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, string, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	endpoint, err := c.Endpoint(ctx, "")
	if err != nil {
		c.Terminate(ctx) //nolint:errcheck
		return nil, "", fmt.Errorf("get container endpoint: %w", err)
	}
	return c, endpoint, nil
}
