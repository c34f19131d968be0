package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User is one identity-provider account synced on login.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UID         string             `bson:"uid" json:"uid"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName" json:"displayName"`
}

// EnsureUser inserts u unless a user with the same uid already exists.
// A repeat call with the same uid is a no-op: changed email or displayName
// values are dropped, never merged.
//
// The upsert is a single atomic operation, so concurrent syncs for the same
// uid produce exactly one document. $setOnInsert only fires on the inserting
// write; a match leaves the existing document untouched. The unique index on
// uid (see connect) backs the same guarantee at the database level.
func (s *Store) EnsureUser(ctx context.Context, u User) error {
	coll, err := s.collection(collUsers)
	if err != nil {
		return err
	}

	_, err = coll.UpdateOne(ctx,
		bson.M{"uid": u.UID},
		bson.M{"$setOnInsert": bson.M{
			"email":       u.Email,
			"displayName": u.DisplayName,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("sync user %q: %w", u.UID, err)
	}
	return nil
}

// UserExists reports whether a user with the given uid is registered.
func (s *Store) UserExists(ctx context.Context, uid string) (bool, error) {
	coll, err := s.collection(collUsers)
	if err != nil {
		return false, err
	}

	err = coll.FindOne(ctx, bson.M{"uid": uid}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, fmt.Errorf("lookup user %q: %w", uid, err)
}
