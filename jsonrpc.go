// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ID represents the unique identifier for JSON-RPC messages: a string, an
// integer, or null when zero.
type ID struct {
	any
}

// NewID returns an ID holding v.
func NewID[T string | int | int32 | int64](v T) ID {
	switch v := any(v).(type) {
	case string:
		return ID{v}
	case int:
		return ID{int64(v)}
	case int32:
		return ID{int64(v)}
	case int64:
		return ID{v}
	}
	panic("unreachable")
}

// IsZero reports whether the ID is null.
func (id ID) IsZero() bool {
	return id.any == nil
}

// Equal reports whether id and other hold the same value.
func (id ID) Equal(other ID) bool {
	return id.any == other.any
}

func (id ID) String() string {
	switch v := id.any.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return "null"
	}
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.any == nil {
		return []byte("null"), nil
	}
	return json.Marshal(id.any)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	switch k := jsontext.Value(data).Kind(); k {
	case 'n':
		*id = ID{}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &DecodeError{Type: "ID", Err: err}
		}
		*id = ID{s}
	case '0':
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return &DecodeError{Type: "ID", Err: fmt.Errorf("id must be an integer: %s", data)}
		}
		*id = ID{n}
	default:
		return &DecodeError{Type: "ID", Err: fmt.Errorf("id must be a string, number or null, got %s", kindName(k))}
	}
	return nil
}

// JSONRPCMessage is the base structure for all JSON-RPC 2.0 messages.
type JSONRPCMessage struct {
	// JSONRPC version, always "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is a unique identifier for the request/response correlation.
	ID ID `json:"id"`
}

// NewJSONRPCMessage creates a new [JSONRPCMessage] with the given id.
func NewJSONRPCMessage(id ID) JSONRPCMessage {
	return JSONRPCMessage{
		JSONRPC: JSONRPCVersion,
		ID:      id,
	}
}

// RequestID returns the correlation identifier of the message.
func (m JSONRPCMessage) RequestID() ID {
	return m.ID
}

// ErrorResponse is the JSON-RPC response returned when a request fails.
type ErrorResponse struct {
	JSONRPCMessage

	// Error is the protocol error reported by the agent.
	Error Error
}

// NewErrorResponse creates a new [ErrorResponse].
func NewErrorResponse(id ID, err Error) *ErrorResponse {
	return &ErrorResponse{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Error:          err,
	}
}

type errorResponseWire struct {
	JSONRPCMessage
	Error jsontext.Value `json:"error"`
}

// MarshalJSON implements json.Marshaler.
func (r ErrorResponse) MarshalJSON() ([]byte, error) {
	if r.Error == nil {
		return nil, fmt.Errorf("marshal ErrorResponse: error is nil")
	}
	e, err := MarshalError(r.Error)
	if err != nil {
		return nil, err
	}
	return json.Marshal(errorResponseWire{JSONRPCMessage: r.JSONRPCMessage, Error: e})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ErrorResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "ErrorResponse", "jsonrpc", "error"); err != nil {
		return err
	}

	var wire errorResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return &DecodeError{Type: "ErrorResponse", Err: err}
	}
	e, err := UnmarshalError(wire.Error)
	if err != nil {
		return err
	}

	*r = ErrorResponse{JSONRPCMessage: wire.JSONRPCMessage, Error: e}
	return nil
}

// UnmarshalRequest decodes a request envelope, selecting the request record by
// its "method" member. Legacy method aliases are accepted and normalised.
// An unknown method yields a *MethodNotFoundError, any other failure a *DecodeError.
func UnmarshalRequest(data []byte) (Request, error) {
	name, ok, err := discriminator(data, "method")
	if err != nil {
		return nil, &DecodeError{Type: "Request", Err: err}
	}
	if !ok {
		return nil, &DecodeError{Type: "Request", Err: fmt.Errorf("missing field method")}
	}
	method, err := ParseMethod(name)
	if err != nil {
		return nil, err
	}

	var env JSONRPCMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DecodeError{Type: "Request", Err: err}
	}
	if env.JSONRPC != JSONRPCVersion {
		return nil, &DecodeError{Type: "Request", Err: fmt.Errorf("jsonrpc must be %q, got %q", JSONRPCVersion, env.JSONRPC)}
	}
	if err := requireMembers(data, string(method), "params"); err != nil {
		return nil, err
	}

	req := newRequest(method)
	if err := json.Unmarshal(data, req); err != nil {
		return nil, &DecodeError{Type: string(method), Err: err}
	}

	return req, nil
}

// ParseRequest decodes a request and maps every failure onto the protocol
// error that should be returned to the caller:
//
//   - malformed JSON: *JSONParseError
//   - unknown method: *MethodNotFoundError
//   - envelope shape: *InvalidRequestError
//   - params shape: *InvalidParamsError
func ParseRequest(data []byte) (Request, Error) {
	if !jsontext.Value(data).IsValid() {
		var v any
		err := json.Unmarshal(data, &v)
		return nil, &JSONParseError{Msg: fmt.Sprintf("Invalid JSON payload: %v", err)}
	}

	req, err := UnmarshalRequest(data)
	if err == nil {
		return req, nil
	}

	var protoErr Error
	if errors.As(err, &protoErr) {
		return nil, protoErr
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) && decodeErr.Type != "Request" {
		return nil, &InvalidParamsError{Msg: err.Error()}
	}
	return nil, &InvalidRequestError{Msg: err.Error()}
}

// SerializeResponse encodes a response record. Encoding failures are
// reported as an *InternalError.
func SerializeResponse(v any) ([]byte, Error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &InternalError{Msg: fmt.Sprintf("Internal error: %v", err)}
	}
	return data, nil
}
