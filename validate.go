// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"strings"
	"unicode"
)

// Validator is implemented by every record that carries semantic invariants.
type Validator interface {
	Validate() error
}

// ValidationError reports the first semantic rule violated by a decoded record.
type ValidationError struct {
	Msg string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return e.Msg
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// DecodeError reports a JSON document that cannot be mapped onto a protocol type:
// a missing or unknown discriminant, or a value of the wrong JSON kind.
type DecodeError struct {
	Type string
	Err  error
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

const (
	maxIdentifierLen = 255
	maxSkillIDLen    = 100
	maxAgentNameLen  = 100
	maxVersionLen    = 50
	maxVersionParts  = 4
	minURLLen        = 10
)

var knownMainMediaTypes = map[string]bool{
	"text":        true,
	"image":       true,
	"audio":       true,
	"video":       true,
	"application": true,
	"multipart":   true,
	"message":     true,
}

// ValidateURL checks that s is a plausible http or https URL.
func ValidateURL(s string) error {
	if s == "" {
		return invalidf("URL cannot be empty")
	}

	var host string
	switch {
	case strings.HasPrefix(s, "https://"):
		host = s[len("https://"):]
	case strings.HasPrefix(s, "http://"):
		host = s[len("http://"):]
	default:
		return invalidf("URL must start with http:// or https://")
	}

	if len(s) < minURLLen {
		return invalidf("URL appears to be too short")
	}
	if host == "" {
		return invalidf("URL must contain a domain")
	}
	if strings.Contains(s, " ") {
		return invalidf("URL cannot contain spaces")
	}

	return nil
}

// ValidateMediaType checks that s has the form type/subtype with a known main type
// or an "x-" prefixed one.
func ValidateMediaType(s string) error {
	if s == "" {
		return invalidf("media type cannot be empty")
	}

	mainType, subType, ok := strings.Cut(s, "/")
	if !ok || strings.Contains(subType, "/") {
		return invalidf("media type must be in format 'type/subtype'")
	}
	if mainType == "" || subType == "" {
		return invalidf("media type parts cannot be empty")
	}
	if !knownMainMediaTypes[mainType] && !strings.HasPrefix(mainType, "x-") {
		return invalidf("unknown media type: %s", mainType)
	}

	return nil
}

// ValidateTaskID checks the format of a task identifier.
func ValidateTaskID(id string) error {
	return validateIdentifier("task ID", id, maxIdentifierLen, false)
}

// ValidateMessageID checks the format of a message identifier.
func ValidateMessageID(id string) error {
	return validateIdentifier("message ID", id, maxIdentifierLen, false)
}

// ValidateSkillID checks the format of a skill identifier. Unlike task and message
// identifiers, skill identifiers may contain dots.
func ValidateSkillID(id string) error {
	return validateIdentifier("skill ID", id, maxSkillIDLen, true)
}

func validateIdentifier(what, id string, maxLen int, allowDot bool) error {
	if id == "" {
		return invalidf("%s cannot be empty", what)
	}
	if len(id) > maxLen {
		return invalidf("%s is too long (max %d characters)", what, maxLen)
	}

	for _, r := range id {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
		case allowDot && r == '.':
		default:
			if allowDot {
				return invalidf("%s can only contain alphanumeric characters, hyphens, underscores, and dots", what)
			}
			return invalidf("%s can only contain alphanumeric characters, hyphens, and underscores", what)
		}
	}

	return nil
}

// ValidateAgentName checks an agent's human readable name.
func ValidateAgentName(name string) error {
	if name == "" {
		return invalidf("agent name cannot be empty")
	}
	if len(name) > maxAgentNameLen {
		return invalidf("agent name is too long (max %d characters)", maxAgentNameLen)
	}
	if strings.TrimSpace(name) != name {
		return invalidf("agent name cannot start or end with whitespace")
	}

	return nil
}

// ValidateVersion checks a loosely semantic version string: one to four
// non-empty dot-separated parts. The parts are not required to be numeric.
func ValidateVersion(version string) error {
	if version == "" {
		return invalidf("version cannot be empty")
	}
	if len(version) > maxVersionLen {
		return invalidf("version is too long (max %d characters)", maxVersionLen)
	}

	parts := strings.Split(version, ".")
	if len(parts) > maxVersionParts {
		return invalidf("version should have 1-4 dot-separated parts")
	}
	for _, part := range parts {
		if part == "" {
			return invalidf("version parts cannot be empty")
		}
	}

	return nil
}

func validateDescription(what, desc string, maxLen int) error {
	if len(desc) > maxLen {
		return invalidf("%s description is too long (max %d characters)", what, maxLen)
	}
	return nil
}
