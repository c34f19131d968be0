package api_test

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhub/taskhub/internal/store"
)

// fakeStore is an in-memory stand-in for the Mongo store, with error
// injection per operation.
type fakeStore struct {
	mu    sync.Mutex
	tasks map[string]store.Task // hex id -> task
	users map[string]store.User // uid -> user

	// Error injection for testing.
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
	EnsureErr error
	ExistsErr error

	// TaskCalls counts every task-collection operation, so tests can assert
	// that early validation never touched the store.
	TaskCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tasks: make(map[string]store.Task),
		users: make(map[string]store.User),
	}
}

func (f *fakeStore) ListTasks(_ context.Context, uid string) ([]store.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TaskCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]store.Task, 0)
	for _, t := range f.tasks {
		if t.UID == uid {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeStore) ListAllTasks(_ context.Context) ([]store.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TaskCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]store.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) CreateTask(_ context.Context, t *store.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TaskCalls++
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	t.ID = primitive.NewObjectID()
	f.tasks[t.ID.Hex()] = *t
	return t.ID.Hex(), nil
}

func (f *fakeStore) UpdateTask(_ context.Context, id string, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TaskCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	t, ok := f.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	for k, v := range updates {
		s, _ := v.(string)
		switch k {
		case "title":
			t.Title = s
		case "description":
			t.Description = s
		case "category":
			t.Category = s
		}
	}
	f.tasks[id] = t
	return nil
}

func (f *fakeStore) DeleteTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TaskCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, ok := f.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeStore) EnsureUser(_ context.Context, u store.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.EnsureErr != nil {
		return f.EnsureErr
	}
	if _, ok := f.users[u.UID]; ok {
		return nil // insert-if-absent: repeat syncs drop field changes
	}
	f.users[u.UID] = u
	return nil
}

func (f *fakeStore) UserExists(_ context.Context, uid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ExistsErr != nil {
		return false, f.ExistsErr
	}
	_, ok := f.users[uid]
	return ok, nil
}

// task returns a stored task by hex id.
func (f *fakeStore) task(id string) (store.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	return t, ok
}

// user returns a stored user by uid.
func (f *fakeStore) user(uid string) (store.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	return u, ok
}

func (f *fakeStore) userCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeStore) taskCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// fakePublisher records published events in order.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Event string
	Data  any
}

func (p *fakePublisher) Publish(event string, data any) {
	p.mu.Lock()
	p.events = append(p.events, publishedEvent{Event: event, Data: data})
	p.mu.Unlock()
}

func (p *fakePublisher) all() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, len(p.events))
	copy(out, p.events)
	return out
}
