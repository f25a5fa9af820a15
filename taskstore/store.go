// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskstore persists A2A tasks and their push notification
// configurations.
//
// Every Store refuses to persist a task whose state cannot be reached from the
// state already stored under the same ID, so the lifecycle rules of
// [a2a.ValidateTransition] hold across process boundaries.
package taskstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/a2a-types"
)

// Store defines the interface for persisting and retrieving tasks.
type Store interface {
	// Save persists a task. The task must be valid, and when a task with the
	// same ID is already stored its state must be able to move to the new one.
	// A stored task in a terminal state only accepts metadata changes.
	Save(ctx context.Context, task *a2a.Task) error

	// Get retrieves a task by its ID.
	// Returns *a2a.TaskNotFoundError if the task doesn't exist.
	Get(ctx context.Context, taskID string) (*a2a.Task, error)

	// UpdateStatus moves a stored task to state to and returns the updated task.
	// msg is recorded as the status message and may be nil.
	UpdateStatus(ctx context.Context, taskID string, to a2a.TaskState, msg *a2a.Message) (*a2a.Task, error)

	// Delete removes a task.
	// Returns *a2a.TaskNotFoundError if the task doesn't exist.
	Delete(ctx context.Context, taskID string) error

	// List retrieves the tasks matching f ordered by ID.
	// A limit of zero means no limit.
	List(ctx context.Context, f Filter, limit, offset int) ([]*a2a.Task, error)

	// Count returns the number of tasks matching f.
	Count(ctx context.Context, f Filter) (int64, error)

	// Close releases the resources held by the store.
	Close(ctx context.Context) error
}

// Filter narrows List and Count. Zero fields match everything.
type Filter struct {
	ContextID string
	State     a2a.TaskState
}

func (f Filter) match(t *a2a.Task) bool {
	if f.ContextID != "" && t.ContextID != f.ContextID {
		return false
	}
	if f.State != "" && t.Status.State != f.State {
		return false
	}
	return true
}

type options struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*options)

// WithLogger sets the logger used to report persisted transitions.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClock sets the clock used to timestamp status updates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// checkSave validates task and, when stored is not nil, the move from the
// stored task to the new one. A task in a terminal state keeps its state and
// may only change its metadata and update time.
func checkSave(stored, task *a2a.Task) error {
	if task == nil {
		return ErrNilTask
	}
	if err := task.Validate(); err != nil {
		return &StoreError{Op: "save", TaskID: task.ID, Err: err}
	}
	if stored == nil {
		return nil
	}

	prev := stored.Status.State
	if prev != task.Status.State {
		if err := a2a.ValidateTransition(prev, task.Status.State); err != nil {
			return &StoreError{Op: "save", TaskID: task.ID, Err: err}
		}
		return nil
	}
	if !prev.Terminal() {
		return nil
	}

	same, err := sameFrozenFields(stored, task)
	if err != nil {
		return &StoreError{Op: "save", TaskID: task.ID, Err: err}
	}
	if !same {
		return &StoreError{Op: "save", TaskID: task.ID, Err: fmt.Errorf("%w: %s", ErrTerminalTask, prev)}
	}
	return nil
}

// sameFrozenFields reports whether a and b agree on everything but metadata
// and update time.
func sameFrozenFields(a, b *a2a.Task) (bool, error) {
	ab, err := frozenView(a)
	if err != nil {
		return false, err
	}
	bb, err := frozenView(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ab, bb), nil
}

func frozenView(t *a2a.Task) ([]byte, error) {
	v := *t
	v.Metadata = nil
	v.UpdatedAt = ""
	if len(v.Artifacts) == 0 {
		v.Artifacts = nil
	}
	if len(v.History) == 0 {
		v.History = nil
	}
	if len(v.StatusHistory) == 0 {
		v.StatusHistory = nil
	}
	return json.Marshal(v, json.Deterministic(true))
}

func logTransition(ctx context.Context, l *slog.Logger, taskID string, from, to a2a.TaskState) {
	if from == to {
		return
	}
	l.DebugContext(ctx, "task state changed",
		slog.String("task_id", taskID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
}
