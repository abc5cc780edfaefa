// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values.
const (
	GenderMale   = "male"
	GenderFemale = "female"

	// PreferenceBoth is only valid as a gender preference.
	PreferenceBoth = "both"
)

// User is a member profile together with its swipe state.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name             string               `bson:"name" json:"name"`
	Email            string               `bson:"email" json:"email"`
	Password         string               `bson:"password" json:"-"`
	Age              int                  `bson:"age" json:"age"`
	Gender           string               `bson:"gender" json:"gender"`
	GenderPreference string               `bson:"genderPreference" json:"genderPreference"`
	Bio              string               `bson:"bio" json:"bio"`
	Image            string               `bson:"image" json:"image"`
	Likes            []primitive.ObjectID `bson:"likes" json:"likes"`
	Dislikes         []primitive.ObjectID `bson:"dislikes" json:"dislikes"`
	Matches          []primitive.ObjectID `bson:"matches" json:"matches"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Collection returns the MongoDB collection name.
func (User) Collection() string {
	return "users"
}

// HexID returns the id as the string used for presence lookups.
func (u *User) HexID() string {
	return u.ID.Hex()
}

// HasLiked reports whether u already liked id.
func (u *User) HasLiked(id primitive.ObjectID) bool {
	return slices.Contains(u.Likes, id)
}

// HasDisliked reports whether u already passed on id.
func (u *User) HasDisliked(id primitive.ObjectID) bool {
	return slices.Contains(u.Dislikes, id)
}

// IsMatchedWith reports whether id is in u's matches.
func (u *User) IsMatchedWith(id primitive.ObjectID) bool {
	return slices.Contains(u.Matches, id)
}

// Counterpart is the newMatch payload describing u to the other party.
func (u *User) Counterpart() MatchPayload {
	return MatchPayload{ID: u.HexID(), Name: u.Name, Image: u.Image}
}

// PreferredGenders expands a gender preference into the genders it accepts.
func PreferredGenders(preference string) []string {
	if preference == PreferenceBoth {
		return []string{GenderMale, GenderFemale}
	}
	return []string{preference}
}

// Compatible reports whether candidate belongs in viewer's discovery feed
// by gender: each must fit the other's preference.
func Compatible(viewer, candidate *User) bool {
	if !slices.Contains(PreferredGenders(viewer.GenderPreference), candidate.Gender) {
		return false
	}
	return candidate.GenderPreference == viewer.Gender || candidate.GenderPreference == PreferenceBoth
}
