// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Artifact represents a generated output from a task, which can contain multiple parts.
type Artifact struct {
	ArtifactID  string         `json:"artifactId"`
	Parts       Parts          `json:"parts"`
	Name        string         `json:"name,omitzero"`
	Description string         `json:"description,omitzero"`
	Extensions  []string       `json:"extensions,omitzero"`
	Metadata    map[string]any `json:"metadata,omitzero"`
}

type artifact Artifact

// UnmarshalJSON implements json.Unmarshaler.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "Artifact", "artifactId", "parts"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*artifact)(a))
}

// Validate ensures the artifact has an identifier and at least one well formed part.
func (a *Artifact) Validate() error {
	if a.ArtifactID == "" {
		return invalidf("artifact ID cannot be empty")
	}
	if len(a.Parts) == 0 {
		return invalidf("artifact must contain at least one part")
	}
	for i, p := range a.Parts {
		if err := validatePart(p); err != nil {
			return fmt.Errorf("artifact part %d: %w", i, err)
		}
	}

	return nil
}

// NewTextArtifact returns an artifact with a single TextPart and a fresh artifact ID.
func NewTextArtifact(name, description, text string) *Artifact {
	return &Artifact{
		ArtifactID:  NewArtifactID(),
		Name:        name,
		Description: description,
		Parts:       Parts{NewTextPart(text)},
	}
}

// NewDataArtifact returns an artifact with a single DataPart and a fresh artifact ID.
func NewDataArtifact(name, description string, data map[string]any) *Artifact {
	return &Artifact{
		ArtifactID:  NewArtifactID(),
		Name:        name,
		Description: description,
		Parts:       Parts{NewDataPart(data)},
	}
}
