package api

// createUserRequest is the body of POST /users.
type createUserRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// createTaskRequest is the body of POST /tasks.
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UID         string `json:"uid"`
	Order       int64  `json:"order"`
}

// messageResponse is the generic success body for mutations.
type messageResponse struct {
	Message string `json:"message"`
}

// createTaskResponse is the 201 body of POST /tasks.
type createTaskResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"taskId"`
}

// healthResponse is the payload for GET /healthz.
type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"` // "ready" | "connecting"
}

// taskUpdatedEvent is the payload of the taskUpdated broadcast: the id and
// the merge payload, not the full resulting document.
type taskUpdatedEvent struct {
	ID      string         `json:"id"`
	Updates map[string]any `json:"updates"`
}

// taskDeletedEvent is the payload of the taskDeleted broadcast.
type taskDeletedEvent struct {
	ID string `json:"id"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
