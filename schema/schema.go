// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema validates A2A documents against JSON Schema and generates
// JSON Schema documents from the Go types.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"github.com/go-a2a/a2a-types"
)

// AgentCardSchema is the JSON Schema for an agent card document.
//
//go:embed agent_card.schema.json
var AgentCardSchema []byte

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(AgentCardSchema))
	})
	return compiledSchema, compileErr
}

// Violation is a single schema violation.
type Violation struct {
	// Field is the dotted path of the offending member, "(root)" for the document.
	Field       string
	Description string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Description
}

// ValidateAgentCard validates raw JSON bytes against AgentCardSchema.
// It returns the violations found and an error if the document is not JSON
// or the schema fails to compile.
func ValidateAgentCard(data []byte) ([]Violation, error) {
	s, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling agent card schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validating agent card: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	vs := make([]Violation, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		vs = append(vs, Violation{Field: e.Field(), Description: e.Description()})
	}
	return vs, nil
}

// Types lists the document types Reflect knows by name.
var Types = map[string]any{
	"agent-card":   &a2a.AgentCard{},
	"task":         &a2a.Task{},
	"message":      &a2a.Message{},
	"artifact":     &a2a.Artifact{},
	"push-config":  &a2a.TaskPushNotificationConfig{},
	"error-object": &a2a.ErrorObject{},
}

// Reflect generates a JSON Schema for v from its Go type.
//
// Members are not marked as required and additional members are allowed: the
// result describes shape, the Validate methods of the a2a package remain the
// authority on semantics.
func Reflect(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
	}
	s := r.Reflect(v)
	s.Version = "http://json-schema.org/draft-07/schema#"
	return s
}

// ReflectNamed reflects the type registered under name in Types and returns
// the schema as indented JSON.
func ReflectNamed(name string) ([]byte, error) {
	v, ok := Types[name]
	if !ok {
		return nil, fmt.Errorf("unknown document type %q", name)
	}
	return json.Marshal(Reflect(v), jsontext.WithIndent("  "))
}
