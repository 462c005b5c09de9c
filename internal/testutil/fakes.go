// Package testutil holds in-memory doubles for the client workflows.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"jobboard/internal/domain"
)

// ErrNetwork simulates a transport failure.
var ErrNetwork = errors.New("simulated network error")

// Call is one recorded JobAPI invocation.
type Call struct {
	Method string // POST, PUT, DELETE, GET
	ID     string
	Body   *domain.JobRecord
}

// FakeJobAPI records calls and answers from its fields.
// When Gate is non-nil every mutation blocks until a value is received on it.
type FakeJobAPI struct {
	mu    sync.Mutex
	calls []Call

	NextID string
	Err    error
	Jobs   map[string]*domain.JobRecord
	Gate   chan struct{}
	// Entered receives once per mutation before it waits on Gate.
	Entered chan struct{}
}

func (f *FakeJobAPI) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *FakeJobAPI) wait(ctx context.Context) error {
	if f.Entered != nil {
		f.Entered <- struct{}{}
	}
	if f.Gate == nil {
		return nil
	}
	select {
	case <-f.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Calls returns a copy of the recorded calls.
func (f *FakeJobAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many calls used method.
func (f *FakeJobAPI) Count(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *FakeJobAPI) List(ctx context.Context) ([]*domain.JobRecord, error) {
	f.record(Call{Method: "GET"})
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]*domain.JobRecord, 0, len(f.Jobs))
	for _, j := range f.Jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *FakeJobAPI) Get(ctx context.Context, id string) (*domain.JobRecord, error) {
	f.record(Call{Method: "GET", ID: id})
	if f.Err != nil {
		return nil, f.Err
	}
	j, ok := f.Jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	cp := *j
	return &cp, nil
}

func (f *FakeJobAPI) Create(ctx context.Context, job *domain.JobRecord) (*domain.JobRecord, error) {
	body := *job
	f.record(Call{Method: "POST", Body: &body})
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMutationFailed, f.Err)
	}
	out := body
	out.ID = f.NextID
	return &out, nil
}

func (f *FakeJobAPI) Update(ctx context.Context, job *domain.JobRecord) (*domain.JobRecord, error) {
	body := *job
	f.record(Call{Method: "PUT", ID: job.ID, Body: &body})
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMutationFailed, f.Err)
	}
	out := body
	return &out, nil
}

func (f *FakeJobAPI) Delete(ctx context.Context, id string) error {
	f.record(Call{Method: "DELETE", ID: id})
	if err := f.wait(ctx); err != nil {
		return err
	}
	if f.Err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMutationFailed, f.Err)
	}
	return nil
}

// Notifier records notifications.
type Notifier struct {
	mu    sync.Mutex
	Items []domain.Notification
}

func (n *Notifier) Notify(level domain.NotificationLevel, message string) {
	n.mu.Lock()
	n.Items = append(n.Items, domain.Notification{Level: level, Message: message})
	n.mu.Unlock()
}

// All returns a copy of the recorded notifications.
func (n *Notifier) All() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.Items...)
}

// Navigator records navigations.
type Navigator struct {
	mu    sync.Mutex
	Paths []string
}

func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	n.Paths = append(n.Paths, path)
	n.mu.Unlock()
}

// All returns a copy of the recorded paths.
func (n *Navigator) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Paths...)
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
