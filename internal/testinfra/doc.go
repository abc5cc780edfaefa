// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

// Package testinfra starts throwaway MongoDB and Redis containers for
// integration tests.
//
// Everything here is built only with the integration tag:
//
//	go test -tags integration ./...
//
// Typical use:
//
//	func TestStore_Integration(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo)
//
//	    db, err := database.New(ctx, &config.MongoConfig{URI: mongo.URI, Database: "test"})
//	    ...
//	}
//
// Tests call SkipIfNoDocker first so they skip cleanly on machines without a
// Docker daemon.
package testinfra
