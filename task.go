// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-json-experiment/json"
)

// TaskState represents the lifecycle state of a task.
type TaskState string

// TaskState constants.
const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateInputRequired TaskState = "input-required"
	TaskStateCompleted     TaskState = "completed"
	TaskStateCanceled      TaskState = "canceled"
	TaskStateFailed        TaskState = "failed"
	TaskStateRejected      TaskState = "rejected"
	TaskStateAuthRequired  TaskState = "auth-required"
	TaskStateUnknown       TaskState = "unknown"
)

// transitions is the directed edge set of the task lifecycle.
// Terminal states have no entry.
var transitions = map[TaskState][]TaskState{
	TaskStateSubmitted:     {TaskStateWorking, TaskStateRejected, TaskStateCanceled, TaskStateAuthRequired},
	TaskStateWorking:       {TaskStateCompleted, TaskStateFailed, TaskStateCanceled, TaskStateInputRequired},
	TaskStateInputRequired: {TaskStateWorking, TaskStateCanceled, TaskStateFailed},
	TaskStateAuthRequired:  {TaskStateWorking, TaskStateRejected, TaskStateCanceled},
	// unknown is a recovery state for desynchronised peers.
	TaskStateUnknown: {
		TaskStateSubmitted, TaskStateWorking, TaskStateCompleted, TaskStateFailed,
		TaskStateCanceled, TaskStateRejected, TaskStateAuthRequired, TaskStateInputRequired,
	},
}

// Valid reports whether s is one of the nine defined states.
func (s TaskState) Valid() bool {
	switch s {
	case TaskStateSubmitted, TaskStateWorking, TaskStateInputRequired, TaskStateCompleted,
		TaskStateCanceled, TaskStateFailed, TaskStateRejected, TaskStateAuthRequired, TaskStateUnknown:
		return true
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled, TaskStateRejected:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (s TaskState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid task state %q", string(s))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TaskState) UnmarshalText(text []byte) error {
	state := TaskState(text)
	if !state.Valid() {
		return &DecodeError{Type: "TaskState", Err: fmt.Errorf("unknown task state %q", string(text))}
	}
	*s = state
	return nil
}

// AllowedTransitions returns the states reachable from from in one step.
func AllowedTransitions(from TaskState) []TaskState {
	return slices.Clone(transitions[from])
}

// InvalidTransitionError reports a task state change that the lifecycle forbids.
type InvalidTransitionError struct {
	From TaskState
	To   TaskState
}

// Error implements error.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid task state transition from %s to %s", e.From, e.To)
}

// ValidateTransition reports whether a task may move from from to to.
func ValidateTransition(from, to TaskState) error {
	if !slices.Contains(transitions[from], to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// TaskStatus represents the status of a task at a specific point in time.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitzero"`
	Timestamp string    `json:"timestamp,omitzero"`
}

type taskStatus TaskStatus

// UnmarshalJSON implements json.Unmarshaler.
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "TaskStatus", "state"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*taskStatus)(s))
}

// ParseTimestamp parses an ISO 8601 date-time such as a status timestamp.
// A timestamp without a zone offset is taken to be UTC.
func ParseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err == nil {
		return t, nil
	}
	if t, lerr := time.Parse("2006-01-02T15:04:05", ts); lerr == nil {
		return t, nil
	}
	return time.Time{}, invalidf("timestamp must be ISO 8601: %v", err)
}

// Validate checks the embedded message and timestamp, when present.
func (s *TaskStatus) Validate() error {
	if !s.State.Valid() {
		return invalidf("invalid task state: %q", string(s.State))
	}
	if s.Timestamp != "" {
		if _, err := ParseTimestamp(s.Timestamp); err != nil {
			return fmt.Errorf("task status: %w", err)
		}
	}
	if s.Message != nil {
		if err := s.Message.Validate(); err != nil {
			return fmt.Errorf("status message: %w", err)
		}
	}
	return nil
}

// Task represents a single stateful operation between a client and an agent.
type Task struct {
	ID            string         `json:"id"`
	ContextID     string         `json:"contextId"`
	Status        TaskStatus     `json:"status"`
	Artifacts     []*Artifact    `json:"artifacts,omitzero"`
	History       []*Message     `json:"history,omitzero"`
	Metadata      map[string]any `json:"metadata,omitzero"`
	Result        any            `json:"result,omitzero"`
	Error         *ErrorObject   `json:"error,omitzero"`
	CreatedAt     string         `json:"createdAt,omitzero"`
	UpdatedAt     string         `json:"updatedAt,omitzero"`
	StatusHistory []TaskStatus   `json:"statusHistory,omitzero"`
}

type task Task

// MarshalJSON implements json.Marshaler. The constant "kind" member is always emitted.
func (t Task) MarshalJSON() ([]byte, error) {
	return marshalWithKind(KindTask, task(t))
}

// UnmarshalJSON implements json.Unmarshaler. A "kind" member other than
// "task" is rejected.
func (t *Task) UnmarshalJSON(data []byte) error {
	if err := checkKind(data, "Task", KindTask); err != nil {
		return err
	}
	if err := requireMembers(data, "Task", "id", "contextId", "status"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*task)(t))
}

// Validate checks the task identifier, status, artifacts and history.
func (t *Task) Validate() error {
	if err := ValidateTaskID(t.ID); err != nil {
		return err
	}
	if t.ContextID == "" {
		return invalidf("context ID cannot be empty")
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	for i, a := range t.Artifacts {
		if a == nil {
			return invalidf("artifact %d cannot be nil", i)
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("artifact %d: %w", i, err)
		}
	}
	for i, m := range t.History {
		if m == nil {
			return invalidf("history message %d cannot be nil", i)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("history message %d: %w", i, err)
		}
	}
	if t.Error != nil && !t.Error.Code.Known() {
		return invalidf("task error has unknown code %d", int(t.Error.Code))
	}

	return nil
}

// Transition returns a copy of t moved to state to. The current status is
// pushed onto StatusHistory and UpdatedAt is set to now. t is left untouched.
func (t *Task) Transition(to TaskState, msg *Message, now time.Time) (*Task, error) {
	if err := ValidateTransition(t.Status.State, to); err != nil {
		return nil, err
	}

	ts := now.UTC().Format(time.RFC3339Nano)
	next := t.Clone()
	next.StatusHistory = append(next.StatusHistory, t.Status)
	next.Status = TaskStatus{State: to, Message: msg, Timestamp: ts}
	next.UpdatedAt = ts

	return next, nil
}
