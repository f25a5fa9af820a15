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

func TestUnmarshalPart(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  Part
	}{
		"text": {
			input: `{"kind":"text","text":"hello","metadata":{"lang":"en"}}`,
			want:  &TextPart{Text: "hello", Metadata: map[string]any{"lang": "en"}},
		},
		"data": {
			input: `{"kind":"data","data":{"city":"Tokyo"}}`,
			want:  NewDataPart(map[string]any{"city": "Tokyo"}),
		},
		"file with bytes": {
			input: `{"kind":"file","file":{"bytes":"aGVsbG8=","name":"hello.txt","mimeType":"text/plain"}}`,
			want:  NewFilePart(&FileWithBytes{Bytes: "aGVsbG8=", Name: "hello.txt", MimeType: "text/plain"}),
		},
		"file with uri": {
			input: `{"kind":"file","file":{"uri":"https://example.com/report.pdf"}}`,
			want:  NewFilePart(&FileWithURI{URI: "https://example.com/report.pdf"}),
		},
		"file with both prefers bytes": {
			input: `{"kind":"file","file":{"bytes":"AA==","uri":"https://example.com/x"}}`,
			want:  NewFilePart(&FileWithBytes{Bytes: "AA=="}),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := UnmarshalPart([]byte(tt.input))
			if err != nil {
				t.Fatalf("UnmarshalPart() error = %v", err)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("UnmarshalPart() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalPartRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"missing kind":      `{"text":"hello"}`,
		"unknown kind":      `{"kind":"video","url":"x"}`,
		"text without text": `{"kind":"text"}`,
		"data not object":   `{"kind":"data","data":[1,2]}`,
		"file neither":      `{"kind":"file","file":{"name":"x.txt"}}`,
		"file not object":   `{"kind":"file","file":"aGVsbG8="}`,
		"not an object":     `"text"`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := UnmarshalPart([]byte(input)); err == nil {
				t.Errorf("UnmarshalPart(%s) succeeded, want error", input)
			}
		})
	}
}

func TestPartKindMismatch(t *testing.T) {
	t.Parallel()

	var p TextPart
	err := json.Unmarshal([]byte(`{"kind":"data","text":"x"}`), &p)
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("json.Unmarshal() error = %v, want *DecodeError", err)
	}
	if derr.Type != "TextPart" {
		t.Errorf("DecodeError.Type = %q, want %q", derr.Type, "TextPart")
	}
}

func TestPartsJSON(t *testing.T) {
	t.Parallel()

	parts := Parts{
		NewTextPart("look at this"),
		NewFilePart(&FileWithURI{URI: "https://example.com/cat.png", MimeType: "image/png"}),
		NewDataPart(map[string]any{"score": 0.5}),
	}

	data, err := json.Marshal(parts)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var kinds []struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &kinds); err != nil {
		t.Fatalf("json.Unmarshal(kinds) error = %v", err)
	}
	var gotKinds []string
	for _, k := range kinds {
		gotKinds = append(gotKinds, k.Kind)
	}
	if diff := cmp.Diff(gotKinds, []string{"text", "file", "data"}); diff != "" {
		t.Errorf("kinds mismatch (-got +want):\n%s", diff)
	}

	var got Parts
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(got, parts); diff != "" {
		t.Errorf("round trip mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(got.Texts(), []string{"look at this"}); diff != "" {
		t.Errorf("Texts() mismatch (-got +want):\n%s", diff)
	}
}

func TestPartsUnmarshalReportsIndex(t *testing.T) {
	t.Parallel()

	var got Parts
	err := json.Unmarshal([]byte(`[{"kind":"text","text":"ok"},{"kind":"audio"}]`), &got)
	if err == nil {
		t.Fatal("json.Unmarshal() succeeded, want error")
	}
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Type != "Part" {
		t.Errorf("json.Unmarshal() error = %v, want *DecodeError for Part", err)
	}
}

func TestFilePartMarshalNilContent(t *testing.T) {
	t.Parallel()

	if _, err := json.Marshal(&FilePart{}); err == nil {
		t.Error("json.Marshal(FilePart{}) succeeded, want error")
	}
}

func TestRoleJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Role
		wantErr bool
	}{
		"user":      {input: `"user"`, want: RoleUser},
		"agent":     {input: `"agent"`, want: RoleAgent},
		"system":    {input: `"system"`, wantErr: true},
		"uppercase": {input: `"USER"`, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got Role
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("json.Unmarshal(%s) error = %v, wantErr %t", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("json.Unmarshal(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Message {
		return &Message{
			MessageID:        "msg-1",
			Role:             RoleUser,
			Parts:            Parts{NewTextPart("hi"), NewFilePart(&FileWithBytes{Bytes: "AA==", MimeType: "application/pdf"})},
			ContextID:        "ctx-1",
			TaskID:           "task-1",
			ReferenceTaskIDs: []string{"task-0"},
		}
	}

	tests := map[string]struct {
		mutate  func(*Message)
		wantErr string
	}{
		"valid":                {mutate: func(*Message) {}},
		"no parts":             {mutate: func(m *Message) { m.Parts = nil }},
		"empty id":             {mutate: func(m *Message) { m.MessageID = "" }, wantErr: "message ID cannot be empty"},
		"bad role":             {mutate: func(m *Message) { m.Role = "assistant" }, wantErr: "invalid message role"},
		"bad task id":          {mutate: func(m *Message) { m.TaskID = "task 1" }, wantErr: "task ID can only contain"},
		"bad reference":        {mutate: func(m *Message) { m.ReferenceTaskIDs = []string{"ok", ""} }, wantErr: "reference task 1"},
		"nil part":             {mutate: func(m *Message) { m.Parts[0] = nil }, wantErr: "part cannot be nil"},
		"file without content": {mutate: func(m *Message) { m.Parts[1] = &FilePart{} }, wantErr: "file part must carry file content"},
		"bad mime type": {
			mutate:  func(m *Message) { m.Parts[1] = NewFilePart(&FileWithURI{URI: "https://x.example/a", MimeType: "pdf"}) },
			wantErr: "media type must be in format 'type/subtype'",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := valid()
			tt.mutate(m)
			checkValidation(t, "Message.Validate", m.Validate(), tt.wantErr)
		})
	}
}

func TestMessageJSON(t *testing.T) {
	t.Parallel()

	msg := Message{
		MessageID:  "msg-1",
		Role:       RoleAgent,
		Parts:      Parts{NewTextPart("done"), NewDataPart(map[string]any{"ok": true})},
		ContextID:  "ctx-1",
		TaskID:     "task-1",
		Extensions: []string{"https://example.com/ext/v1"},
		Metadata:   map[string]any{"trace": "abc"},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var shape map[string]any
	if err := json.Unmarshal(data, &shape); err != nil {
		t.Fatalf("json.Unmarshal(shape) error = %v", err)
	}
	if shape["kind"] != "message" {
		t.Errorf(`kind = %v, want "message"`, shape["kind"])
	}
	if _, ok := shape["referenceTaskIds"]; ok {
		t.Error("empty referenceTaskIds was emitted")
	}

	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(got, msg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-got +want):\n%s", diff)
	}
}

func TestMessageUnmarshalRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"wrong kind":    `{"kind":"task","messageId":"m","role":"user","parts":[]}`,
		"missing role":  `{"messageId":"m","parts":[]}`,
		"missing parts": `{"messageId":"m","role":"user"}`,
		"null id":       `{"messageId":null,"role":"user","parts":[]}`,
		"bad role":      `{"messageId":"m","role":"robot","parts":[]}`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got Message
			if err := json.Unmarshal([]byte(input), &got); err == nil {
				t.Errorf("json.Unmarshal(%s) succeeded, want error", input)
			}
		})
	}
}

func TestMessageConstructors(t *testing.T) {
	t.Parallel()

	user := NewUserTextMessage("hello")
	if user.Role != RoleUser || user.MessageID == "" {
		t.Errorf("NewUserTextMessage() = %+v, want user role and an ID", user)
	}
	if err := user.Validate(); err != nil {
		t.Errorf("NewUserTextMessage().Validate() error = %v", err)
	}

	agent := NewAgentTextMessage("hi", "ctx-1", "task-1")
	want := &Message{
		MessageID: agent.MessageID,
		Role:      RoleAgent,
		Parts:     Parts{NewTextPart("hi")},
		ContextID: "ctx-1",
		TaskID:    "task-1",
	}
	if diff := cmp.Diff(agent, want); diff != "" {
		t.Errorf("NewAgentTextMessage() mismatch (-got +want):\n%s", diff)
	}
	if user.MessageID == agent.MessageID {
		t.Error("message IDs are not unique")
	}

	multi := NewAgentPartsMessage(Parts{NewTextPart("a"), NewDataPart(nil), NewTextPart("b")}, "", "")
	if got := multi.Text("\n"); got != "a\nb" {
		t.Errorf("Text() = %q, want %q", got, "a\nb")
	}
}
