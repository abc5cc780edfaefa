// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

const usersCollection = "users"

// ErrSelfSwipe is returned when a user swipes on themselves.
var ErrSelfSwipe = errors.New("cannot swipe on yourself")

// LikeResult is the outcome of a right swipe.
type LikeResult struct {
	// User is the swiping user after the update.
	User *models.User
	// Target is the liked user after the update.
	Target *models.User
	// Matched is true only when this like created the match.
	Matched bool
}

// CreateUser inserts u and sets its ID and timestamps.
func (d *DB) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Likes == nil {
		u.Likes = []primitive.ObjectID{}
	}
	if u.Dislikes == nil {
		u.Dislikes = []primitive.ObjectID{}
	}
	if u.Matches == nil {
		u.Matches = []primitive.ObjectID{}
	}

	return d.do(ctx, "insert", usersCollection, func(ctx context.Context) error {
		_, err := d.users.InsertOne(ctx, u)
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
}

// FindUserByID returns the user without the password hash.
func (d *DB) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return d.findUser(ctx, "find_by_id", bson.M{"_id": oid}, options.FindOne().SetProjection(publicProfile))
}

// FindUserByEmail returns the user including the password hash, for login.
func (d *DB) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.findUser(ctx, "find_by_email", bson.M{"email": email}, options.FindOne())
}

func (d *DB) findUser(ctx context.Context, op string, filter bson.M, opts *options.FindOneOptions) (*models.User, error) {
	var u models.User
	err := d.do(ctx, op, usersCollection, func(ctx context.Context) error {
		err := d.users.FindOne(ctx, filter, opts).Decode(&u)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile applies the non-nil fields of req and returns the updated
// user.
func (d *DB) UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var u models.User
	err = d.do(ctx, "update_profile", usersCollection, func(ctx context.Context) error {
		opts := options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(publicProfile)
		err := d.users.FindOneAndUpdate(ctx, bson.M{"_id": oid}, profileUpdate(req, time.Now().UTC()), opts).Decode(&u)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Like records userID liking targetID. Liking twice is a no-op unless an
// earlier match write was left incomplete, in which case it is finished and
// reported as a new match. When the target already liked userID, both users
// gain each other as a match.
func (d *DB) Like(ctx context.Context, userID, targetID string) (*LikeResult, error) {
	me, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	targetOID, err := parseID(targetID)
	if err != nil {
		return nil, err
	}
	if me == targetOID {
		return nil, ErrSelfSwipe
	}
	target, err := d.FindUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	var added bool
	err = d.do(ctx, "like", usersCollection, func(ctx context.Context) error {
		res, err := d.users.UpdateOne(ctx,
			bson.M{"_id": me, "likes": bson.M{"$ne": target.ID}},
			addToSetUpdate("likes", target.ID, time.Now().UTC()),
		)
		if err != nil {
			return fmt.Errorf("failed to record like: %w", err)
		}
		added = res.ModifiedCount > 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	mutual, err := d.hasLiked(ctx, target.ID, me)
	if err != nil {
		return nil, err
	}
	matched := false
	switch {
	case mutual && added:
		matched, err = d.claimMatch(ctx, me, target.ID)
	case mutual:
		matched, err = d.repairMatch(ctx, me, target.ID)
	}
	if err != nil {
		return nil, err
	}

	user, err := d.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if matched {
		if target, err = d.FindUserByID(ctx, targetID); err != nil {
			return nil, err
		}
	}
	return &LikeResult{User: user, Target: target, Matched: matched}, nil
}

// hasLiked reports whether userID's likes contain targetID, read fresh.
func (d *DB) hasLiked(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error) {
	var n int64
	err := d.do(ctx, "has_liked", usersCollection, func(ctx context.Context) error {
		var err error
		n, err = d.users.CountDocuments(ctx, bson.M{"_id": userID, "likes": targetID})
		if err != nil {
			return fmt.Errorf("failed to check like: %w", err)
		}
		return nil
	})
	return n > 0, err
}

// claimMatch records the match between a and b. The conditional write on the
// lower ID's document succeeds for exactly one caller, so two simultaneous
// mutual likes produce one match, not two.
func (d *DB) claimMatch(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	first, second := a, b
	if second.Hex() < first.Hex() {
		first, second = second, first
	}

	var claimed bool
	err := d.do(ctx, "claim_match", usersCollection, func(ctx context.Context) error {
		res, err := d.users.UpdateOne(ctx,
			bson.M{"_id": first, "matches": bson.M{"$ne": second}},
			addToSetUpdate("matches", second, time.Now().UTC()),
		)
		if err != nil {
			return fmt.Errorf("failed to record match: %w", err)
		}
		claimed = res.ModifiedCount > 0
		return nil
	})
	if err != nil || !claimed {
		return false, err
	}

	err = d.do(ctx, "add_match", usersCollection, func(ctx context.Context) error {
		_, err := d.users.UpdateOne(ctx, bson.M{"_id": second}, addToSetUpdate("matches", first, time.Now().UTC()))
		if err != nil {
			return fmt.Errorf("failed to record match: %w", err)
		}
		return nil
	})
	return err == nil, err
}

// repairMatch completes a match whose earlier write reached only one side, or
// none. It reports true when either document changed, meaning the match was
// never announced.
func (d *DB) repairMatch(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	repaired := false
	for _, pair := range [][2]primitive.ObjectID{{a, b}, {b, a}} {
		owner, other := pair[0], pair[1]
		err := d.do(ctx, "repair_match", usersCollection, func(ctx context.Context) error {
			res, err := d.users.UpdateOne(ctx,
				bson.M{"_id": owner, "matches": bson.M{"$ne": other}},
				addToSetUpdate("matches", other, time.Now().UTC()),
			)
			if err != nil {
				return fmt.Errorf("failed to repair match: %w", err)
			}
			if res.ModifiedCount > 0 {
				repaired = true
			}
			return nil
		})
		if err != nil {
			return false, err
		}
	}
	if repaired {
		logging.Warn().Str("user_id", a.Hex()).Str("match_id", b.Hex()).Msg("repaired partially recorded match")
	}
	return repaired, nil
}

// Dislike records userID passing on targetID and returns the updated user.
func (d *DB) Dislike(ctx context.Context, userID, targetID string) (*models.User, error) {
	me, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	target, err := parseID(targetID)
	if err != nil {
		return nil, err
	}
	if me == target {
		return nil, ErrSelfSwipe
	}

	err = d.do(ctx, "dislike", usersCollection, func(ctx context.Context) error {
		res, err := d.users.UpdateOne(ctx, bson.M{"_id": me}, addToSetUpdate("dislikes", target, time.Now().UTC()))
		if err != nil {
			return fmt.Errorf("failed to record dislike: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d.FindUserByID(ctx, userID)
}

// FindMatches returns the id, name and image of each of the user's matches.
func (d *DB) FindMatches(ctx context.Context, userID string) ([]models.MatchPayload, error) {
	user, err := d.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Matches) == 0 {
		return []models.MatchPayload{}, nil
	}

	var found []models.User
	err = d.do(ctx, "find_matches", usersCollection, func(ctx context.Context) error {
		cur, err := d.users.Find(ctx, bson.M{"_id": bson.M{"$in": user.Matches}}, options.Find().SetProjection(matchCard))
		if err != nil {
			return fmt.Errorf("failed to query matches: %w", err)
		}
		return cur.All(ctx, &found)
	})
	if err != nil {
		return nil, err
	}

	cards := make([]models.MatchPayload, 0, len(found))
	for i := range found {
		cards = append(cards, found[i].Counterpart())
	}
	return cards, nil
}

// FindCandidates returns the discovery feed for userID.
func (d *DB) FindCandidates(ctx context.Context, userID string) ([]models.User, error) {
	viewer, err := d.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	err = d.do(ctx, "find_candidates", usersCollection, func(ctx context.Context) error {
		cur, err := d.users.Find(ctx, candidatesFilter(viewer), options.Find().SetProjection(publicProfile))
		if err != nil {
			return fmt.Errorf("failed to query candidates: %w", err)
		}
		return cur.All(ctx, &users)
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
