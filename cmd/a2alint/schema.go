// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/go-a2a/a2a-types/schema"
)

// SchemaCmd prints the JSON Schema reflected from a document type.
type SchemaCmd struct {
	Type     string `arg:"" optional:"" help:"Document type (agent-card, task, message, artifact, push-config, error-object)." enum:"agent-card,task,message,artifact,push-config,error-object" default:"agent-card"`
	Embedded bool   `help:"Print the schema check --schema validates agent cards against."`
}

func (c *SchemaCmd) Run(e *env) error {
	if c.Embedded {
		_, err := e.stdout.Write(schema.AgentCardSchema)
		return err
	}

	b, err := schema.ReflectNamed(c.Type)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = e.stdout.Write(b)
	return err
}
