// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"errors"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTaskStatusUpdateEventValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		event   *TaskStatusUpdateEvent
		wantErr string
	}{
		"working not final": {
			event: NewTaskStatusUpdateEvent("task-1", "ctx-1", TaskStatus{State: TaskStateWorking}, false),
		},
		"completed final": {
			event: NewTaskStatusUpdateEvent("task-1", "ctx-1", TaskStatus{State: TaskStateCompleted}, true),
		},
		"rejected final": {
			event: NewTaskStatusUpdateEvent("task-1", "ctx-1", TaskStatus{State: TaskStateRejected}, true),
		},
		"working final": {
			event:   NewTaskStatusUpdateEvent("task-1", "ctx-1", TaskStatus{State: TaskStateWorking}, true),
			wantErr: "final status update events must have terminal task states",
		},
		"input required final": {
			event:   NewTaskStatusUpdateEvent("task-1", "ctx-1", TaskStatus{State: TaskStateInputRequired}, true),
			wantErr: "final status update events must have terminal task states",
		},
		"empty context": {
			event:   NewTaskStatusUpdateEvent("task-1", "", TaskStatus{State: TaskStateCompleted}, true),
			wantErr: "context ID cannot be empty",
		},
		"bad task id before context": {
			event:   NewTaskStatusUpdateEvent("", "", TaskStatus{State: TaskStateWorking}, true),
			wantErr: "task ID cannot be empty",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			checkValidation(t, "TaskStatusUpdateEvent.Validate", tt.event.Validate(), tt.wantErr)
		})
	}
}

func TestTaskArtifactUpdateEventValidate(t *testing.T) {
	t.Parallel()

	artifact := Artifact{ArtifactID: "a-1", Parts: Parts{NewTextPart("chunk")}}

	tests := map[string]struct {
		mutate  func(*TaskArtifactUpdateEvent)
		wantErr string
	}{
		"whole artifact": {mutate: func(*TaskArtifactUpdateEvent) {}},
		"append chunk":   {mutate: func(e *TaskArtifactUpdateEvent) { e.Append = true }},
		"last chunk":     {mutate: func(e *TaskArtifactUpdateEvent) { e.LastChunk = true }},
		"append and last": {
			mutate:  func(e *TaskArtifactUpdateEvent) { e.Append, e.LastChunk = true, true },
			wantErr: "artifact cannot both append and be the last chunk",
		},
		"no parts": {
			mutate:  func(e *TaskArtifactUpdateEvent) { e.Artifact.Parts = nil },
			wantErr: "artifact must contain at least one part",
		},
		"empty context": {
			mutate:  func(e *TaskArtifactUpdateEvent) { e.ContextID = "" },
			wantErr: "context ID cannot be empty",
		},
		"bad task id": {
			mutate:  func(e *TaskArtifactUpdateEvent) { e.TaskID = "task#1" },
			wantErr: "task ID can only contain",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			event := NewTaskArtifactUpdateEvent("task-1", "ctx-1", *artifact.clone())
			tt.mutate(event)
			checkValidation(t, "TaskArtifactUpdateEvent.Validate", event.Validate(), tt.wantErr)
		})
	}
}

func TestTaskArtifactUpdateEventChunks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		append, last   bool
		wantChunk      bool
		wantFinalChunk bool
	}{
		"whole":  {},
		"append": {append: true, wantChunk: true},
		"last":   {last: true, wantChunk: true, wantFinalChunk: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e := &TaskArtifactUpdateEvent{Append: tt.append, LastChunk: tt.last}
			if got := e.IsStreamingChunk(); got != tt.wantChunk {
				t.Errorf("IsStreamingChunk() = %t, want %t", got, tt.wantChunk)
			}
			if got := e.IsFinalChunk(); got != tt.wantFinalChunk {
				t.Errorf("IsFinalChunk() = %t, want %t", got, tt.wantFinalChunk)
			}
		})
	}
}

func TestUnmarshalEvent(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  Event
	}{
		"message": {
			input: `{"kind":"message","messageId":"m-1","role":"agent","parts":[{"kind":"text","text":"hi"}]}`,
			want:  &Message{MessageID: "m-1", Role: RoleAgent, Parts: Parts{NewTextPart("hi")}},
		},
		"task": {
			input: `{"kind":"task","id":"t-1","contextId":"c-1","status":{"state":"submitted"}}`,
			want:  &Task{ID: "t-1", ContextID: "c-1", Status: TaskStatus{State: TaskStateSubmitted}},
		},
		"status update": {
			input: `{"kind":"status-update","taskId":"t-1","contextId":"c-1","status":{"state":"completed"},"final":true}`,
			want:  NewTaskStatusUpdateEvent("t-1", "c-1", TaskStatus{State: TaskStateCompleted}, true),
		},
		"artifact update": {
			input: `{"kind":"artifact-update","taskId":"t-1","contextId":"c-1","artifact":{"artifactId":"a-1","parts":[{"kind":"data","data":{"n":1}}]},"append":true}`,
			want: &TaskArtifactUpdateEvent{
				TaskID:    "t-1",
				ContextID: "c-1",
				Artifact:  Artifact{ArtifactID: "a-1", Parts: Parts{NewDataPart(map[string]any{"n": float64(1)})}},
				Append:    true,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := UnmarshalEvent([]byte(tt.input))
			if err != nil {
				t.Fatalf("UnmarshalEvent() error = %v", err)
			}
			if diff := cmp.Diff(got, tt.want, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("UnmarshalEvent() mismatch (-got +want):\n%s", diff)
			}

			data, err := json.Marshal(got)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			again, err := UnmarshalEvent(data)
			if err != nil {
				t.Fatalf("UnmarshalEvent(re-encoded) error = %v", err)
			}
			if again.EventKind() != got.EventKind() {
				t.Errorf("re-encoded kind = %q, want %q", again.EventKind(), got.EventKind())
			}
		})
	}
}

func TestUnmarshalEventRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"missing kind":           `{"taskId":"t-1","contextId":"c-1","status":{"state":"completed"},"final":true}`,
		"unknown kind":           `{"kind":"heartbeat"}`,
		"not an object":          `["status-update"]`,
		"status missing final":   `{"kind":"status-update","taskId":"t-1","contextId":"c-1","status":{"state":"completed"}}`,
		"artifact missing parts": `{"kind":"artifact-update","taskId":"t-1","contextId":"c-1","artifact":{"artifactId":"a-1"}}`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := UnmarshalEvent([]byte(input))
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Errorf("UnmarshalEvent(%s) error = %v, want *DecodeError", input, err)
			}
		})
	}
}
