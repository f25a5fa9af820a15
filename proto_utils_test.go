// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestProtoMetadata(t *testing.T) {
	t.Parallel()

	md := map[string]any{
		"priority": "high",
		"retries":  float64(3),
		"tags":     []any{"a", "b"},
		"nested":   map[string]any{"ok": true},
	}

	s, err := ToProtoMetadata(md)
	if err != nil {
		t.Fatalf("ToProtoMetadata() error = %v", err)
	}
	want := &structpb.Struct{Fields: map[string]*structpb.Value{
		"priority": structpb.NewStringValue("high"),
		"retries":  structpb.NewNumberValue(3),
		"tags": structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewStringValue("a"),
			structpb.NewStringValue("b"),
		}}),
		"nested": structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"ok": structpb.NewBoolValue(true),
		}}),
	}}
	if diff := cmp.Diff(s, want, protocmp.Transform()); diff != "" {
		t.Errorf("ToProtoMetadata() mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(FromProtoMetadata(s), md); diff != "" {
		t.Errorf("FromProtoMetadata() mismatch (-got +want):\n%s", diff)
	}

	if s, err := ToProtoMetadata(nil); s != nil || err != nil {
		t.Errorf("ToProtoMetadata(nil) = %v, %v, want nil, nil", s, err)
	}
	if _, err := ToProtoMetadata(map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("ToProtoMetadata(chan) succeeded, want error")
	}
}

func TestProtoData(t *testing.T) {
	t.Parallel()

	part := NewDataPart(map[string]any{"city": "Lisbon", "days": float64(5)})
	s, err := ToProtoData(part)
	if err != nil {
		t.Fatalf("ToProtoData() error = %v", err)
	}
	if diff := cmp.Diff(FromProtoData(s), part); diff != "" {
		t.Errorf("FromProtoData() mismatch (-got +want):\n%s", diff)
	}
	if _, err := ToProtoData(nil); err == nil {
		t.Error("ToProtoData(nil) succeeded, want error")
	}
}

func TestProtoTimestamp(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    *timestamppb.Timestamp
		wantErr bool
	}{
		"utc":                 {input: "2025-06-01T12:00:00Z", want: timestamppb.New(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))},
		"offset":              {input: "2025-06-01T14:00:00+02:00", want: timestamppb.New(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))},
		"fractional":          {input: "2025-06-01T12:00:00.25Z", want: timestamppb.New(time.Date(2025, 6, 1, 12, 0, 0, 250_000_000, time.UTC))},
		"zoneless":            {input: "2025-06-01T10:00:00", want: timestamppb.New(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))},
		"zoneless fractional": {input: "2025-06-01T10:00:00.123456", want: timestamppb.New(time.Date(2025, 6, 1, 10, 0, 0, 123_456_000, time.UTC))},
		"empty":               {input: ""},
		"garbage":             {input: "June 1st", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ToProtoTimestamp(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToProtoTimestamp(%q) error = %v, wantErr %t", tt.input, err, tt.wantErr)
			}
			if diff := cmp.Diff(got, tt.want, protocmp.Transform()); diff != "" {
				t.Errorf("ToProtoTimestamp(%q) mismatch (-got +want):\n%s", tt.input, diff)
			}
		})
	}

	s, err := FromProtoTimestamp(timestamppb.New(time.Date(2025, 6, 1, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600))))
	if err != nil {
		t.Fatalf("FromProtoTimestamp() error = %v", err)
	}
	if s != "2025-06-01T12:00:00Z" {
		t.Errorf("FromProtoTimestamp() = %q, want UTC", s)
	}
}

func TestProtoStructRoundTrip(t *testing.T) {
	t.Parallel()

	task := &Task{
		ID:        "task-1",
		ContextID: "ctx-1",
		Status:    TaskStatus{State: TaskStateCompleted, Timestamp: "2025-06-01T12:00:00Z"},
		Artifacts: []*Artifact{NewDataArtifact("out", "", map[string]any{"answer": float64(42)})},
	}

	s, err := ToProtoStruct(task)
	if err != nil {
		t.Fatalf("ToProtoStruct() error = %v", err)
	}
	if got := s.GetFields()["kind"].GetStringValue(); got != KindTask {
		t.Errorf("struct kind = %q, want %q", got, KindTask)
	}

	var got Task
	if err := FromProtoStruct(s, &got); err != nil {
		t.Fatalf("FromProtoStruct() error = %v", err)
	}
	if diff := cmp.Diff(&got, task, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-got +want):\n%s", diff)
	}

	v, err := ToProtoResult([]any{"x", float64(1)})
	if err != nil {
		t.Fatalf("ToProtoResult() error = %v", err)
	}
	if diff := cmp.Diff(v.AsInterface(), []any{"x", float64(1)}); diff != "" {
		t.Errorf("ToProtoResult() mismatch (-got +want):\n%s", diff)
	}
}
