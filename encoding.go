// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/a2a-types/internal/pool"
)

// marshalWithKind marshals v and prepends the "kind" member to the resulting object.
// v must not implement json.Marshaler itself, callers pass an alias type.
// Map members are written in sorted order.
func marshalWithKind(kind string, v any) ([]byte, error) {
	body, err := json.Marshal(v, json.Deterministic(true))
	if err != nil {
		return nil, err
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("marshal %s: expected JSON object, got %s", kind, jsontext.Value(body).Kind())
	}

	buf := pool.Bytes.Get()
	defer pool.Bytes.Put(buf)
	buf.Grow(len(body) + len(kind) + 12)
	buf.WriteString(`{"kind":`)
	quoted, err := jsontext.AppendQuote(nil, kind)
	if err != nil {
		return nil, err
	}
	buf.Write(quoted)
	if rest := bytes.TrimSpace(body[1:]); len(rest) > 0 && rest[0] != '}' {
		buf.WriteByte(',')
	}
	buf.Write(body[1:])

	return bytes.Clone(buf.Bytes()), nil
}

// discriminator peeks the string member name of a JSON object without decoding the rest.
// It reports whether the member was present.
func discriminator(data []byte, name string) (string, bool, error) {
	if k := jsontext.Value(data).Kind(); k != '{' {
		return "", false, fmt.Errorf("expected JSON object, got %s", kindName(k))
	}

	var members map[string]jsontext.Value
	if err := json.Unmarshal(data, &members); err != nil {
		return "", false, err
	}
	raw, ok := members[name]
	if !ok || raw.Kind() == 'n' {
		return "", false, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", true, fmt.Errorf("member %q: %w", name, err)
	}

	return s, true, nil
}

// checkKind verifies that an optional "kind" member, when present, equals want.
func checkKind(data []byte, typ, want string) error {
	kind, ok, err := discriminator(data, "kind")
	if err != nil {
		return &DecodeError{Type: typ, Err: err}
	}
	if ok && kind != want {
		return &DecodeError{Type: typ, Err: fmt.Errorf("kind must be %q, got %q", want, kind)}
	}
	return nil
}

// requireMembers reports a *DecodeError naming the first of names absent from the object.
func requireMembers(data []byte, typ string, names ...string) error {
	if k := jsontext.Value(data).Kind(); k != '{' {
		return &DecodeError{Type: typ, Err: fmt.Errorf("expected JSON object, got %s", kindName(k))}
	}

	var members map[string]jsontext.Value
	if err := json.Unmarshal(data, &members); err != nil {
		return &DecodeError{Type: typ, Err: err}
	}
	for _, name := range names {
		if raw, ok := members[name]; !ok || raw.Kind() == 'n' {
			return &DecodeError{Type: typ, Err: fmt.Errorf("missing field %s", name)}
		}
	}

	return nil
}

func kindName(k jsontext.Kind) string {
	switch k {
	case 'n':
		return "null"
	case 'f', 't':
		return "boolean"
	case '"':
		return "string"
	case '0':
		return "number"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "invalid JSON"
	}
}
