// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"time"

	"github.com/go-json-experiment/json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ToProtoMetadata converts opaque metadata into a protobuf Struct. A nil map yields nil.
func ToProtoMetadata(metadata map[string]any) (*structpb.Struct, error) {
	if metadata == nil {
		return nil, nil
	}
	s, err := structpb.NewStruct(metadata)
	if err != nil {
		return nil, fmt.Errorf("convert metadata to proto struct: %w", err)
	}
	return s, nil
}

// FromProtoMetadata converts a protobuf Struct back into opaque metadata.
func FromProtoMetadata(s *structpb.Struct) map[string]any {
	if s == nil {
		return nil
	}
	return s.AsMap()
}

// ToProtoData converts the payload of a data part into a protobuf Struct.
func ToProtoData(p *DataPart) (*structpb.Struct, error) {
	if p == nil {
		return nil, fmt.Errorf("data part cannot be nil")
	}
	s, err := structpb.NewStruct(p.Data)
	if err != nil {
		return nil, fmt.Errorf("convert data part to proto struct: %w", err)
	}
	return s, nil
}

// FromProtoData returns a data part holding the contents of s.
func FromProtoData(s *structpb.Struct) *DataPart {
	return &DataPart{Data: s.AsMap()}
}

// ToProtoResult converts an opaque task result into a protobuf Value.
func ToProtoResult(result any) (*structpb.Value, error) {
	v, err := structpb.NewValue(result)
	if err != nil {
		return nil, fmt.Errorf("convert task result to proto value: %w", err)
	}
	return v, nil
}

// ToProtoTimestamp parses an ISO 8601 status timestamp into a protobuf Timestamp.
// An empty string yields nil.
func ToProtoTimestamp(ts string) (*timestamppb.Timestamp, error) {
	if ts == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(ts)
	if err != nil {
		return nil, err
	}
	return timestamppb.New(t), nil
}

// FromProtoTimestamp formats a protobuf Timestamp as an ISO 8601 string in UTC.
func FromProtoTimestamp(ts *timestamppb.Timestamp) (string, error) {
	if ts == nil {
		return "", nil
	}
	if err := ts.CheckValid(); err != nil {
		return "", fmt.Errorf("invalid proto timestamp: %w", err)
	}
	return ts.AsTime().UTC().Format(time.RFC3339Nano), nil
}

// ToProtoStruct converts any protocol record into its JSON shape held in a
// protobuf Struct, for transports that carry A2A payloads as google.protobuf.Struct.
func ToProtoStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("convert %T to proto struct: %w", v, err)
	}
	return s, nil
}

// FromProtoStruct decodes the JSON shape held in s into v, running v's own decoder.
func FromProtoStruct(s *structpb.Struct, v any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal proto struct: %w", err)
	}
	return json.Unmarshal(data, v)
}
