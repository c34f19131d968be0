// Package api implements the HTTP surface of the task service.
//
// New(tasks, users, ready, publishers...) returns a Handler that serves:
//
//	GET    /            — plain-text liveness line
//	GET    /healthz     — service status + store readiness
//	POST   /users       — sync a user identity; insert-if-absent by uid
//	GET    /tasks       — all tasks (no defined order)
//	GET    /tasks/{uid} — one owner's tasks, sorted by order ascending;
//	                      404 only when the owner has no tasks and is unknown
//	POST   /tasks       — create; title, category and uid required
//	PUT    /tasks/{id}  — partial field merge; 400 bad id/empty body, 404 no match
//	DELETE /tasks/{id}  — delete; 400 bad id, 404 no match
//
// Every successful mutation is published to the configured Publishers as a
// typed event (taskCreated, taskUpdated, taskDeleted) before the response is
// written. Validation failures are rejected before any store call; store
// errors are logged and mapped to 500 with the detail in the JSON body.
package api
