// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		url     string
		wantErr string
	}{
		"https":           {url: "https://example.com/api"},
		"http":            {url: "http://localhost:8080"},
		"empty":           {url: "", wantErr: "URL cannot be empty"},
		"ftp":             {url: "ftp://x", wantErr: "URL must start with http:// or https://"},
		"scheme only":     {url: "http://", wantErr: "URL appears to be too short"},
		"ten characters":  {url: "http://a.b"},
		"short host":      {url: "https://a", wantErr: "URL appears to be too short"},
		"contains space":  {url: "https://example.com/a b", wantErr: "URL cannot contain spaces"},
		"leading space":   {url: " https://example.com", wantErr: "URL must start with http:// or https://"},
		"no scheme":       {url: "example.com/api", wantErr: "URL must start with http:// or https://"},
		"uppercase proto": {url: "HTTPS://example.com", wantErr: "URL must start with http:// or https://"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := ValidateURL(tt.url)
			checkValidation(t, "ValidateURL", err, tt.wantErr)
		})
	}
}

func TestValidateMediaType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mediaType string
		wantErr   string
	}{
		"text/plain":       {mediaType: "text/plain"},
		"application/json": {mediaType: "application/json"},
		"image/png":        {mediaType: "image/png"},
		"custom main type": {mediaType: "x-custom/thing"},
		"empty":            {mediaType: "", wantErr: "media type cannot be empty"},
		"no slash":         {mediaType: "text", wantErr: "media type must be in format 'type/subtype'"},
		"two slashes":      {mediaType: "text/plain/extra", wantErr: "media type must be in format 'type/subtype'"},
		"empty subtype":    {mediaType: "text/", wantErr: "media type parts cannot be empty"},
		"empty main":       {mediaType: "/plain", wantErr: "media type parts cannot be empty"},
		"unknown main":     {mediaType: "font/woff", wantErr: "unknown media type: font"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			checkValidation(t, "ValidateMediaType", ValidateMediaType(tt.mediaType), tt.wantErr)
		})
	}
}

func TestValidateIdentifiers(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fn      func(string) error
		id      string
		wantErr string
	}{
		"task id":                {fn: ValidateTaskID, id: "task-123_abc"},
		"task id uuid":           {fn: ValidateTaskID, id: "0b8f5b9e-5f1c-4a9a-9d55-0a4f5e5f1c4a"},
		"task id empty":          {fn: ValidateTaskID, id: "", wantErr: "task ID cannot be empty"},
		"task id dot":            {fn: ValidateTaskID, id: "task.1", wantErr: "task ID can only contain"},
		"task id too long":       {fn: ValidateTaskID, id: strings.Repeat("a", 256), wantErr: "task ID is too long (max 255 characters)"},
		"task id max length":     {fn: ValidateTaskID, id: strings.Repeat("a", 255)},
		"message id":             {fn: ValidateMessageID, id: "msg_1"},
		"message id slash":       {fn: ValidateMessageID, id: "msg/1", wantErr: "message ID can only contain"},
		"skill id with dot":      {fn: ValidateSkillID, id: "weather.forecast"},
		"skill id too long":      {fn: ValidateSkillID, id: strings.Repeat("s", 101), wantErr: "skill ID is too long (max 100 characters)"},
		"skill id space":         {fn: ValidateSkillID, id: "weather forecast", wantErr: "skill ID can only contain"},
		"skill id empty":         {fn: ValidateSkillID, id: "", wantErr: "skill ID cannot be empty"},
		"agent name":             {fn: ValidateAgentName, id: "Weather Agent"},
		"agent name padded":      {fn: ValidateAgentName, id: " Weather Agent", wantErr: "agent name cannot start or end with whitespace"},
		"agent name trailing":    {fn: ValidateAgentName, id: "Weather Agent\t", wantErr: "agent name cannot start or end with whitespace"},
		"agent name too long":    {fn: ValidateAgentName, id: strings.Repeat("n", 101), wantErr: "agent name is too long (max 100 characters)"},
		"version semver":         {fn: ValidateVersion, id: "1.0.0"},
		"version four parts":     {fn: ValidateVersion, id: "1.2.3.4"},
		"version non numeric":    {fn: ValidateVersion, id: "v1.beta"},
		"version five parts":     {fn: ValidateVersion, id: "1.2.3.4.5", wantErr: "version should have 1-4 dot-separated parts"},
		"version empty part":     {fn: ValidateVersion, id: "1..0", wantErr: "version parts cannot be empty"},
		"version trailing dot":   {fn: ValidateVersion, id: "1.0.", wantErr: "version parts cannot be empty"},
		"version empty":          {fn: ValidateVersion, id: "", wantErr: "version cannot be empty"},
		"version too long":       {fn: ValidateVersion, id: strings.Repeat("9", 51), wantErr: "version is too long (max 50 characters)"},
		"unicode letters in id":  {fn: ValidateTaskID, id: "tâche-1"},
		"unicode symbol rejects": {fn: ValidateTaskID, id: "task→1", wantErr: "task ID can only contain"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			checkValidation(t, name, tt.fn(tt.id), tt.wantErr)
		})
	}
}

// checkValidation fails t unless err matches wantErr: nil when wantErr is
// empty, otherwise a *ValidationError whose message contains wantErr.
func checkValidation(t *testing.T, fn string, err error, wantErr string) {
	t.Helper()

	if wantErr == "" {
		if err != nil {
			t.Errorf("%s() error = %v, want nil", fn, err)
		}
		return
	}
	if err == nil {
		t.Fatalf("%s() error = nil, want %q", fn, wantErr)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("%s() error = %T, want *ValidationError", fn, err)
	}
	if !strings.Contains(err.Error(), wantErr) {
		t.Errorf("%s() error = %q, want it to contain %q", fn, err.Error(), wantErr)
	}
}
