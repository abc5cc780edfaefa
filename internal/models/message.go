// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment categories.
const (
	CategoryImage        = "image"
	CategoryVideo        = "video"
	CategoryAudio        = "audio"
	CategoryPDF          = "pdf"
	CategorySpreadsheet  = "spreadsheet"
	CategoryPresentation = "presentation"
	CategoryWord         = "word"
	CategoryArchive      = "archive"
	CategoryOther        = "other"
)

// Attachment is file metadata stored alongside a message. The file itself
// lives in object storage under Key.
type Attachment struct {
	URL      string `bson:"url" json:"url" validate:"required,url"`
	Key      string `bson:"key" json:"key" validate:"required"`
	Name     string `bson:"name" json:"name" validate:"required,max=255"`
	Ext      string `bson:"ext" json:"ext" validate:"required,max=16"`
	Category string `bson:"category" json:"category" validate:"required,oneof=image video audio pdf spreadsheet presentation word archive other"`
}

// Message is one chat message between two users.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Sender      primitive.ObjectID `bson:"sender" json:"sender"`
	Receiver    primitive.ObjectID `bson:"receiver" json:"receiver"`
	Content     string             `bson:"content" json:"content"`
	Attachments []Attachment       `bson:"attachments,omitempty" json:"attachments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Collection returns the MongoDB collection name.
func (Message) Collection() string {
	return "messages"
}
