package store

import "errors"

var (
	// ErrNotReady is returned by every operation attempted before the
	// connection handshake has completed.
	ErrNotReady = errors.New("store: database not connected")

	// ErrTaskNotFound is returned when no task matches the given id.
	ErrTaskNotFound = errors.New("store: task not found")

	// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("store: invalid task id")
)
