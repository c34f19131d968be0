// Package store is the MongoDB accessor for the task service.
//
// Store wraps the driver client behind a lifecycle-managed handle. The
// connection handshake is asynchronous: New returns immediately, Run(ctx)
// keeps attempting the handshake on a fixed interval until it succeeds or
// ctx is cancelled, and every operation called before the handshake
// completes fails fast with ErrNotReady instead of blocking.
//
// All operations are single-document (insert-one, find-one, update-one with
// $set semantics, delete-one) or a filtered find-many against two named
// collections, "tasks" and "users". There are no transactions and no
// aggregation pipelines.
package store
