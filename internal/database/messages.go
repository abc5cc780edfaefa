// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

const messagesCollection = "messages"

// CreateMessage persists m and sets its ID and timestamps.
func (d *DB) CreateMessage(ctx context.Context, m *models.Message) error {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt, m.UpdatedAt = now, now

	return d.do(ctx, "insert", messagesCollection, func(ctx context.Context) error {
		if _, err := d.messages.InsertOne(ctx, m); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		return nil
	})
}

// FindMessagesBetween returns the conversation between a and b, oldest first.
func (d *DB) FindMessagesBetween(ctx context.Context, a, b string) ([]models.Message, error) {
	aID, err := parseID(a)
	if err != nil {
		return nil, err
	}
	bID, err := parseID(b)
	if err != nil {
		return nil, err
	}

	messages := []models.Message{}
	err = d.do(ctx, "find_conversation", messagesCollection, func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
		cur, err := d.messages.Find(ctx, conversationFilter(aID, bID), opts)
		if err != nil {
			return fmt.Errorf("failed to query conversation: %w", err)
		}
		return cur.All(ctx, &messages)
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
