package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhub/taskhub/internal/store"
)

// Event names broadcast on successful mutations.
const (
	EventTaskCreated = "taskCreated"
	EventTaskUpdated = "taskUpdated"
	EventTaskDeleted = "taskDeleted"
)

// TaskStore is the subset of store operations the task handlers need.
type TaskStore interface {
	ListTasks(ctx context.Context, uid string) ([]store.Task, error)
	ListAllTasks(ctx context.Context) ([]store.Task, error)
	CreateTask(ctx context.Context, t *store.Task) (string, error)
	UpdateTask(ctx context.Context, id string, updates map[string]any) error
	DeleteTask(ctx context.Context, id string) error
}

// UserStore is the subset of store operations the user handlers need.
type UserStore interface {
	EnsureUser(ctx context.Context, u store.User) error
	UserExists(ctx context.Context, uid string) (bool, error)
}

// Publisher receives one typed event per successful mutation. Implementations
// must not block: delivery is best-effort and fully decoupled from the
// request path.
type Publisher interface {
	Publish(event string, data any)
}

// Handler is the HTTP handler for the whole service surface.
type Handler struct {
	tasks TaskStore
	users UserStore
	ready func() bool
	pubs  []Publisher
	mux   *chi.Mux

	now func() time.Time // injectable for deterministic tests
}

// New creates a Handler wired to the given stores and registers all routes.
// ready reports store readiness for /healthz; publishers receive mutation
// events.
func New(tasks TaskStore, users UserStore, ready func() bool, pubs ...Publisher) *Handler {
	h := &Handler{
		tasks: tasks,
		users: users,
		ready: ready,
		pubs:  pubs,
		now:   time.Now,
	}

	r := chi.NewRouter()
	r.Get("/", h.root)
	r.Get("/healthz", h.healthz)
	r.Post("/users", h.createUser)
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.listAllTasks)
		r.Post("/", h.createTask)
		r.Get("/{uid}", h.listTasks)
		r.Put("/{id}", h.updateTask)
		r.Delete("/{id}", h.deleteTask)
	})
	h.mux = r

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// root returns GET / — a plain-text liveness line.
func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Task Manager API Running")) //nolint:errcheck
}

// healthz returns GET /healthz — service status with store readiness.
func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok", Store: "connecting"}
	if h.ready() {
		resp.Store = "ready"
	}
	jsonResp(w, http.StatusOK, resp)
}

// createUser handles POST /users — sync a user identity on login.
// Insert-if-absent by uid: a repeat call succeeds but changes nothing.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UID == "" {
		jsonErr(w, http.StatusBadRequest, "uid is required")
		return
	}

	u := store.User{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	}
	if err := h.users.EnsureUser(r.Context(), u); err != nil {
		h.storeErr(w, "store user", err)
		return
	}

	jsonResp(w, http.StatusOK, messageResponse{Message: "User stored successfully"})
}

// listAllTasks handles GET /tasks — every task, no defined order.
func (h *Handler) listAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListAllTasks(r.Context())
	if err != nil {
		h.storeErr(w, "list tasks", err)
		return
	}
	jsonResp(w, http.StatusOK, tasks)
}

// listTasks handles GET /tasks/{uid} — one owner's tasks sorted by order.
//
// 404 is reserved for a truly unknown owner: a registered user with zero
// tasks gets 200 and an empty array.
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	tasks, err := h.tasks.ListTasks(r.Context(), uid)
	if err != nil {
		h.storeErr(w, "list tasks", err)
		return
	}

	if len(tasks) == 0 {
		known, err := h.users.UserExists(r.Context(), uid)
		if err != nil {
			h.storeErr(w, "lookup user", err)
			return
		}
		if !known {
			jsonErr(w, http.StatusNotFound, "no tasks found for this user")
			return
		}
	}

	jsonResp(w, http.StatusOK, tasks)
}

// createTask handles POST /tasks.
func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" || req.Category == "" || req.UID == "" {
		jsonErr(w, http.StatusBadRequest, "missing required fields")
		return
	}

	now := h.now()
	t := store.Task{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		UID:         req.UID,
		Order:       req.Order,
		CreatedAt:   now,
	}
	if t.Order == 0 {
		t.Order = now.UnixMilli()
	}

	id, err := h.tasks.CreateTask(r.Context(), &t)
	if err != nil {
		h.storeErr(w, "create task", err)
		return
	}

	h.publish(EventTaskCreated, t)
	jsonResp(w, http.StatusCreated, createTaskResponse{Message: "Task added", TaskID: id})
}

// updateTask handles PUT /tasks/{id} — a partial field merge.
func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(updates) == 0 {
		jsonErr(w, http.StatusBadRequest, "no updates provided")
		return
	}

	if err := h.tasks.UpdateTask(r.Context(), id, updates); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			jsonErr(w, http.StatusNotFound, "task not found")
			return
		}
		h.storeErr(w, "update task", err)
		return
	}

	h.publish(EventTaskUpdated, taskUpdatedEvent{ID: id, Updates: updates})
	jsonResp(w, http.StatusOK, messageResponse{Message: "Task updated successfully"})
}

// deleteTask handles DELETE /tasks/{id}.
func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			jsonErr(w, http.StatusNotFound, "task not found")
			return
		}
		h.storeErr(w, "delete task", err)
		return
	}

	h.publish(EventTaskDeleted, taskDeletedEvent{ID: id})
	jsonResp(w, http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}

// --- helpers ----------------------------------------------------------------

// publish fans one event out to every configured publisher.
func (h *Handler) publish(event string, data any) {
	for _, p := range h.pubs {
		p.Publish(event, data)
	}
}

// storeErr maps a store failure to a 500 response. The unready condition gets
// its own message so callers can tell a cold start from a genuine failure.
func (h *Handler) storeErr(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotReady) {
		jsonErr(w, http.StatusInternalServerError, "database not connected")
		return
	}
	slog.Error("api: "+op+" failed", "err", err)
	jsonErr(w, http.StatusInternalServerError, err.Error())
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
