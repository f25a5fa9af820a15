// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Event is an item delivered on a message stream. The set of
// implementations is closed: *Message, *Task, *TaskStatusUpdateEvent and
// *TaskArtifactUpdateEvent.
type Event interface {
	// EventKind returns the "kind" discriminator of the event.
	EventKind() string
	isEvent()
}

var (
	_ Event = (*Message)(nil)
	_ Event = (*Task)(nil)
	_ Event = (*TaskStatusUpdateEvent)(nil)
	_ Event = (*TaskArtifactUpdateEvent)(nil)
)

// EventKind implements Event.
func (*Message) EventKind() string { return KindMessage }
func (*Message) isEvent()          {}

// EventKind implements Event.
func (*Task) EventKind() string { return KindTask }
func (*Task) isEvent()          {}

// TaskStatusUpdateEvent is sent by the agent to notify the client of a change in task status.
type TaskStatusUpdateEvent struct {
	TaskID    string         `json:"taskId"`
	ContextID string         `json:"contextId"`
	Status    TaskStatus     `json:"status"`
	Final     bool           `json:"final"`
	Metadata  map[string]any `json:"metadata,omitzero"`
}

// NewTaskStatusUpdateEvent returns a status update for the given task.
func NewTaskStatusUpdateEvent(taskID, contextID string, status TaskStatus, final bool) *TaskStatusUpdateEvent {
	return &TaskStatusUpdateEvent{
		TaskID:    taskID,
		ContextID: contextID,
		Status:    status,
		Final:     final,
	}
}

// EventKind implements Event.
func (*TaskStatusUpdateEvent) EventKind() string { return KindStatusUpdate }
func (*TaskStatusUpdateEvent) isEvent()          {}

type taskStatusUpdateEvent TaskStatusUpdateEvent

// MarshalJSON implements json.Marshaler.
func (e TaskStatusUpdateEvent) MarshalJSON() ([]byte, error) {
	return marshalWithKind(KindStatusUpdate, taskStatusUpdateEvent(e))
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *TaskStatusUpdateEvent) UnmarshalJSON(data []byte) error {
	if err := checkKind(data, "TaskStatusUpdateEvent", KindStatusUpdate); err != nil {
		return err
	}
	if err := requireMembers(data, "TaskStatusUpdateEvent", "taskId", "contextId", "status", "final"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*taskStatusUpdateEvent)(e))
}

// Validate checks identifiers and that a final event carries a terminal state.
func (e *TaskStatusUpdateEvent) Validate() error {
	if err := ValidateTaskID(e.TaskID); err != nil {
		return err
	}
	if e.ContextID == "" {
		return invalidf("context ID cannot be empty")
	}
	if e.Final && !e.Status.State.Terminal() {
		return invalidf("final status update events must have terminal task states")
	}
	return nil
}

// IsTerminalState reports whether the event carries a terminal task state.
func (e *TaskStatusUpdateEvent) IsTerminalState() bool {
	return e.Status.State.Terminal()
}

// IsFinal reports whether the event ends the stream.
func (e *TaskStatusUpdateEvent) IsFinal() bool {
	return e.Final
}

// TaskArtifactUpdateEvent is sent by the agent to deliver an artifact, or a chunk of one.
type TaskArtifactUpdateEvent struct {
	TaskID    string         `json:"taskId"`
	ContextID string         `json:"contextId"`
	Artifact  Artifact       `json:"artifact"`
	Append    bool           `json:"append,omitzero"`
	LastChunk bool           `json:"lastChunk,omitzero"`
	Metadata  map[string]any `json:"metadata,omitzero"`
}

// NewTaskArtifactUpdateEvent returns an artifact update for the given task.
func NewTaskArtifactUpdateEvent(taskID, contextID string, artifact Artifact) *TaskArtifactUpdateEvent {
	return &TaskArtifactUpdateEvent{
		TaskID:    taskID,
		ContextID: contextID,
		Artifact:  artifact,
	}
}

// EventKind implements Event.
func (*TaskArtifactUpdateEvent) EventKind() string { return KindArtifactUpdate }
func (*TaskArtifactUpdateEvent) isEvent()          {}

type taskArtifactUpdateEvent TaskArtifactUpdateEvent

// MarshalJSON implements json.Marshaler.
func (e TaskArtifactUpdateEvent) MarshalJSON() ([]byte, error) {
	return marshalWithKind(KindArtifactUpdate, taskArtifactUpdateEvent(e))
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *TaskArtifactUpdateEvent) UnmarshalJSON(data []byte) error {
	if err := checkKind(data, "TaskArtifactUpdateEvent", KindArtifactUpdate); err != nil {
		return err
	}
	if err := requireMembers(data, "TaskArtifactUpdateEvent", "taskId", "contextId", "artifact"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*taskArtifactUpdateEvent)(e))
}

// Validate checks identifiers, the artifact and chunk flag consistency.
func (e *TaskArtifactUpdateEvent) Validate() error {
	if err := ValidateTaskID(e.TaskID); err != nil {
		return err
	}
	if e.ContextID == "" {
		return invalidf("context ID cannot be empty")
	}
	if len(e.Artifact.Parts) == 0 {
		return invalidf("artifact must contain at least one part")
	}
	if e.Append && e.LastChunk {
		return invalidf("artifact cannot both append and be the last chunk")
	}
	return nil
}

// IsStreamingChunk reports whether the event is part of a chunked artifact.
func (e *TaskArtifactUpdateEvent) IsStreamingChunk() bool {
	return e.Append || e.LastChunk
}

// IsFinalChunk reports whether the event carries the last chunk of its artifact.
func (e *TaskArtifactUpdateEvent) IsFinalChunk() bool {
	return e.LastChunk
}

// UnmarshalEvent decodes a stream item, selecting the variant by its required "kind" member.
func UnmarshalEvent(data []byte) (Event, error) {
	kind, ok, err := discriminator(data, "kind")
	if err != nil {
		return nil, &DecodeError{Type: "Event", Err: err}
	}
	if !ok {
		return nil, &DecodeError{Type: "Event", Err: fmt.Errorf("missing field kind")}
	}

	var ev Event
	switch kind {
	case KindMessage:
		ev = new(Message)
	case KindTask:
		ev = new(Task)
	case KindStatusUpdate:
		ev = new(TaskStatusUpdateEvent)
	case KindArtifactUpdate:
		ev = new(TaskArtifactUpdateEvent)
	default:
		return nil, &DecodeError{Type: "Event", Err: fmt.Errorf("unknown event kind %q", kind)}
	}
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, err
	}

	return ev, nil
}
