// Copyright 2025 The Go A2A Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NewMessageID returns a random message identifier.
func NewMessageID() string { return uuid.NewString() }

// NewTaskID returns a random task identifier.
func NewTaskID() string { return uuid.NewString() }

// NewContextID returns a random context identifier.
func NewContextID() string { return uuid.NewString() }

// NewArtifactID returns a random artifact identifier.
func NewArtifactID() string { return uuid.NewString() }

// NewTask creates a task in the submitted state from message send params.
//
// The task reuses the message's task and context IDs when present and
// generates them otherwise. The message, stamped with both IDs, becomes the
// first history entry. params is not modified.
func NewTask(params *MessageSendParams, now time.Time) (*Task, error) {
	if params == nil {
		return nil, fmt.Errorf("message send params cannot be nil")
	}
	if err := params.Message.Validate(); err != nil {
		return nil, fmt.Errorf("initial message: %w", err)
	}

	msg := params.Message
	if msg.ContextID == "" {
		msg.ContextID = NewContextID()
	}
	if msg.TaskID == "" {
		msg.TaskID = NewTaskID()
	}

	ts := now.UTC().Format(time.RFC3339Nano)
	return &Task{
		ID:        msg.TaskID,
		ContextID: msg.ContextID,
		Status: TaskStatus{
			State:     TaskStateSubmitted,
			Timestamp: ts,
		},
		History:   []*Message{&msg},
		Metadata:  params.Metadata,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// AppendArtifact returns a copy of task updated with the artifact carried by event.
//
// An artifact with a new ID is added. Without the append flag an existing
// artifact with the same ID is replaced; with it, the event's parts are
// appended to the existing artifact. An append for an unknown artifact is
// ignored. task is not modified.
func AppendArtifact(ctx context.Context, task *Task, event *TaskArtifactUpdateEvent) (*Task, error) {
	if task == nil || event == nil {
		return nil, fmt.Errorf("task and event cannot be nil")
	}
	if event.TaskID != task.ID {
		return nil, fmt.Errorf("artifact event for task %s applied to task %s", event.TaskID, task.ID)
	}

	logger := slog.Default()
	next := task.Clone()
	artifactID := event.Artifact.ArtifactID

	idx := -1
	for i, a := range next.Artifacts {
		if a != nil && a.ArtifactID == artifactID {
			idx = i
			break
		}
	}

	switch {
	case !event.Append && idx == -1:
		logger.DebugContext(ctx, "adding new artifact", slog.String("artifact_id", artifactID), slog.String("task_id", task.ID))
		next.Artifacts = append(next.Artifacts, event.Artifact.clone())
	case !event.Append:
		logger.DebugContext(ctx, "replacing artifact", slog.String("artifact_id", artifactID), slog.String("task_id", task.ID))
		next.Artifacts[idx] = event.Artifact.clone()
	case idx != -1:
		logger.DebugContext(ctx, "appending parts to artifact",
			slog.String("artifact_id", artifactID),
			slog.String("task_id", task.ID),
			slog.Int("parts", len(event.Artifact.Parts)),
			slog.Bool("last_chunk", event.LastChunk),
		)
		next.Artifacts[idx].Parts = append(next.Artifacts[idx].Parts, event.Artifact.Parts...)
	default:
		logger.WarnContext(ctx, "received append for unknown artifact, ignoring chunk", slog.String("artifact_id", artifactID), slog.String("task_id", task.ID))
	}

	return next, nil
}
