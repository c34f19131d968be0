package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Task is a to-do item owned by a user.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	UID         string             `bson:"uid" json:"uid"`
	Order       int64              `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ListTasks returns all tasks owned by uid, sorted by the order field
// ascending.
func (s *Store) ListTasks(ctx context.Context, uid string) ([]Task, error) {
	coll, err := s.collection(collTasks)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := coll.Find(ctx, bson.M{"uid": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks for %q: %w", uid, err)
	}
	defer cur.Close(ctx)

	tasks := make([]Task, 0)
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks for %q: %w", uid, err)
	}
	return tasks, nil
}

// ListAllTasks returns every task in the collection. No order is defined.
func (s *Store) ListAllTasks(ctx context.Context) ([]Task, error) {
	coll, err := s.collection(collTasks)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	defer cur.Close(ctx)

	tasks := make([]Task, 0)
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts t and returns the assigned id as a hex string. The
// store assigns the id; t.ID is overwritten with it.
func (s *Store) CreateTask(ctx context.Context, t *Task) (string, error) {
	coll, err := s.collection(collTasks)
	if err != nil {
		return "", err
	}

	res, err := coll.InsertOne(ctx, t)
	if err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert task: unexpected id type %T", res.InsertedID)
	}
	t.ID = oid
	return oid.Hex(), nil
}

// UpdateTask applies updates to the task with the given id as a partial
// $set merge — only the supplied fields change. Returns ErrInvalidID for a
// malformed id and ErrTaskNotFound when no document matches.
func (s *Store) UpdateTask(ctx context.Context, id string, updates map[string]any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	coll, err := s.collection(collTasks)
	if err != nil {
		return err
	}

	res, err := coll.UpdateByID(ctx, oid, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes the task with the given id. Returns ErrInvalidID for a
// malformed id and ErrTaskNotFound when no document matches.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	coll, err := s.collection(collTasks)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}
