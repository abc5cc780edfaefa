// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

// parseID converts a hex ID. Malformed IDs cannot exist in the store, so they
// are reported as ErrNotFound.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// idsOrEmpty keeps $nin and $in from receiving a BSON null.
func idsOrEmpty(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}

// candidatesFilter selects the discovery feed for viewer: not viewer, not
// already liked, passed or matched, and gender-compatible in both
// directions.
func candidatesFilter(viewer *models.User) bson.M {
	return bson.M{
		"$and": bson.A{
			bson.M{"_id": bson.M{"$ne": viewer.ID}},
			bson.M{"_id": bson.M{"$nin": idsOrEmpty(viewer.Likes)}},
			bson.M{"_id": bson.M{"$nin": idsOrEmpty(viewer.Dislikes)}},
			bson.M{"_id": bson.M{"$nin": idsOrEmpty(viewer.Matches)}},
			bson.M{"gender": bson.M{"$in": models.PreferredGenders(viewer.GenderPreference)}},
			bson.M{"genderPreference": bson.M{"$in": bson.A{viewer.Gender, models.PreferenceBoth}}},
		},
	}
}

// conversationFilter selects messages exchanged between a and b in either
// direction.
func conversationFilter(a, b primitive.ObjectID) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"sender": a, "receiver": b},
			bson.M{"sender": b, "receiver": a},
		},
	}
}

// addToSetUpdate adds id to the array field once.
func addToSetUpdate(field string, id primitive.ObjectID, now time.Time) bson.M {
	return bson.M{
		"$addToSet": bson.M{field: id},
		"$set":      bson.M{"updatedAt": now},
	}
}

// profileUpdate builds the $set document for the non-nil request fields.
func profileUpdate(req *models.UpdateProfileRequest, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Age != nil {
		set["age"] = *req.Age
	}
	if req.Gender != nil {
		set["gender"] = *req.Gender
	}
	if req.GenderPreference != nil {
		set["genderPreference"] = *req.GenderPreference
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	return bson.M{"$set": set}
}

// publicProfile excludes the password hash from user reads.
var publicProfile = bson.M{"password": 0}

// matchCard projects the fields shown in the matches list.
var matchCard = bson.M{"name": 1, "image": 1}
