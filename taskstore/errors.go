// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"errors"
	"fmt"

	"github.com/go-a2a/a2a-types"
)

var (
	// ErrNilTask is returned when a nil task is passed to Save.
	ErrNilTask = errors.New("task cannot be nil")

	// ErrTerminalTask is returned when a save would change more than the
	// metadata of a task in a terminal state.
	ErrTerminalTask = errors.New("task is in a terminal state, only its metadata can change")

	// ErrNilConfig is returned when a nil push notification config is passed to Set.
	ErrNilConfig = errors.New("push notification config cannot be nil")
)

// StoreError represents a failed store operation.
type StoreError struct {
	Op     string
	TaskID string
	Err    error
}

func (e *StoreError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("task store %s operation failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("task store %s operation failed for task %s: %v", e.Op, e.TaskID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func notFound(taskID string) error {
	return &a2a.TaskNotFoundError{
		Msg:  "Task not found",
		Data: map[string]any{"taskId": taskID},
	}
}

// IsNotFound reports whether err reports a missing task or push notification config.
func IsNotFound(err error) bool {
	var nf *a2a.TaskNotFoundError
	return errors.As(err, &nf)
}
