// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

// readDocument reads path, or stdin when path is "-". Files with a .yaml or
// .yml extension are converted to JSON.
func readDocument(stdin io.Reader, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlToJSON(data)
	}
	return data, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return json.Marshal(normalizeYAML(v))
}

// normalizeYAML rewrites the map[any]any values yaml.v3 produces for
// non-string keys into JSON objects.
func normalizeYAML(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = normalizeYAML(e)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return m
	case []any:
		for i, e := range v {
			v[i] = normalizeYAML(e)
		}
		return v
	}
	return v
}

// members decodes the top-level members of a JSON object without decoding
// their values.
func members(data []byte) (map[string]jsontext.Value, error) {
	if k := jsontext.Value(data).Kind(); k != '{' {
		return nil, fmt.Errorf("document is not a JSON object")
	}
	var m map[string]jsontext.Value
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// detectType guesses the document type from its members.
func detectType(data []byte) (string, error) {
	m, err := members(data)
	if err != nil {
		return "", err
	}
	has := func(name string) bool {
		_, ok := m[name]
		return ok
	}

	switch {
	case has("jsonrpc") && has("method"):
		return "request", nil
	case has("jsonrpc"):
		return "response", nil
	case has("kind"):
		var kind string
		if err := json.Unmarshal(m["kind"], &kind); err != nil {
			return "", fmt.Errorf("member kind: %w", err)
		}
		switch kind {
		case "task", "message":
			return kind, nil
		case "status-update", "artifact-update":
			return "event", nil
		}
		return "", fmt.Errorf("unknown kind %q", kind)
	case has("protocolVersion") || has("skills"):
		return "agent-card", nil
	case has("pushNotificationConfig"):
		return "push-config", nil
	case has("artifactId"):
		return "artifact", nil
	case has("code") && has("message"):
		return "error", nil
	}
	return "", fmt.Errorf("cannot detect document type, use --type")
}
