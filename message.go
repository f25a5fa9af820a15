// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
)

// Role represents the role of a message sender.
type Role string

// Role constants for message senders.
const (
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleAgent || r == RoleUser
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %q", string(r))
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	role := Role(text)
	if !role.Valid() {
		return &DecodeError{Type: "Role", Err: fmt.Errorf("unknown role %q", string(text))}
	}
	*r = role
	return nil
}

// Message represents a single exchange between a user and an agent.
type Message struct {
	MessageID        string         `json:"messageId"`
	Role             Role           `json:"role"`
	Parts            Parts          `json:"parts"`
	ContextID        string         `json:"contextId,omitzero"`
	TaskID           string         `json:"taskId,omitzero"`
	ReferenceTaskIDs []string       `json:"referenceTaskIds,omitzero"`
	Extensions       []string       `json:"extensions,omitzero"`
	Metadata         map[string]any `json:"metadata,omitzero"`
}

type message Message

// MarshalJSON implements json.Marshaler. The constant "kind" member is always emitted.
func (m Message) MarshalJSON() ([]byte, error) {
	return marshalWithKind(KindMessage, message(m))
}

// UnmarshalJSON implements json.Unmarshaler. A "kind" member other than
// "message" is rejected.
func (m *Message) UnmarshalJSON(data []byte) error {
	if err := checkKind(data, "Message", KindMessage); err != nil {
		return err
	}
	if err := requireMembers(data, "Message", "messageId", "role", "parts"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*message)(m))
}

// Validate checks the message identifiers, role and parts.
func (m *Message) Validate() error {
	if err := ValidateMessageID(m.MessageID); err != nil {
		return err
	}
	if !m.Role.Valid() {
		return invalidf("invalid message role: %q", string(m.Role))
	}
	if m.TaskID != "" {
		if err := ValidateTaskID(m.TaskID); err != nil {
			return err
		}
	}
	for i, id := range m.ReferenceTaskIDs {
		if err := ValidateTaskID(id); err != nil {
			return fmt.Errorf("reference task %d: %w", i, err)
		}
	}
	for i, p := range m.Parts {
		if err := validatePart(p); err != nil {
			return fmt.Errorf("message part %d: %w", i, err)
		}
	}

	return nil
}

// Text joins the text of all TextParts of m with delimiter.
func (m *Message) Text(delimiter string) string {
	return strings.Join(m.Parts.Texts(), delimiter)
}

// NewUserTextMessage returns a user message with a single TextPart and a fresh message ID.
func NewUserTextMessage(text string) *Message {
	return &Message{
		MessageID: NewMessageID(),
		Role:      RoleUser,
		Parts:     Parts{NewTextPart(text)},
	}
}

// NewAgentTextMessage returns an agent message with a single TextPart,
// optionally bound to a context and task.
func NewAgentTextMessage(text, contextID, taskID string) *Message {
	return NewAgentPartsMessage(Parts{NewTextPart(text)}, contextID, taskID)
}

// NewAgentPartsMessage returns an agent message carrying parts.
func NewAgentPartsMessage(parts Parts, contextID, taskID string) *Message {
	return &Message{
		MessageID: NewMessageID(),
		Role:      RoleAgent,
		Parts:     parts,
		ContextID: contextID,
		TaskID:    taskID,
	}
}
