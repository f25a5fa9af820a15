// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/go-a2a/a2a-types"
)

// MemoryStore is an in-memory implementation of Store.
// Task data is lost when the process stops.
//
// Tasks are cloned with [a2a.Task.Clone] on the way in and on the way out.
type MemoryStore struct {
	opts options

	mu    sync.RWMutex
	tasks map[string]*a2a.Task
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		opts:  newOptions(opts),
		tasks: make(map[string]*a2a.Task),
	}
}

// Save implements [Store].
func (s *MemoryStore) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return ErrNilTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.tasks[task.ID]
	if err := checkSave(stored, task); err != nil {
		return err
	}
	if stored != nil {
		logTransition(ctx, s.opts.logger, task.ID, stored.Status.State, task.Status.State)
	}
	s.tasks[task.ID] = task.Clone()

	return nil
}

// Get implements [Store].
func (s *MemoryStore) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	if err := a2a.ValidateTaskID(taskID); err != nil {
		return nil, &StoreError{Op: "get", TaskID: taskID, Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, notFound(taskID)
	}
	return task.Clone(), nil
}

// UpdateStatus implements [Store].
func (s *MemoryStore) UpdateStatus(ctx context.Context, taskID string, to a2a.TaskState, msg *a2a.Message) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, notFound(taskID)
	}
	next, err := task.Transition(to, msg, s.opts.now())
	if err != nil {
		return nil, &StoreError{Op: "update_status", TaskID: taskID, Err: err}
	}
	logTransition(ctx, s.opts.logger, taskID, task.Status.State, to)
	s.tasks[taskID] = next

	return next.Clone(), nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return notFound(taskID)
	}
	delete(s.tasks, taskID)

	return nil
}

// List implements [Store].
func (s *MemoryStore) List(ctx context.Context, f Filter, limit, offset int) ([]*a2a.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []*a2a.Task
	skipped := 0
	for _, id := range slices.Sorted(maps.Keys(s.tasks)) {
		task := s.tasks[id]
		if !f.match(task) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(tasks) >= limit {
			break
		}
		tasks = append(tasks, task.Clone())
	}

	return tasks, nil
}

// Count implements [Store].
func (s *MemoryStore) Count(ctx context.Context, f Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, task := range s.tasks {
		if f.match(task) {
			n++
		}
	}
	return n, nil
}

// Close implements [Store]. It drops every stored task.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.tasks)
	return nil
}

// Len returns the number of stored tasks.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}
