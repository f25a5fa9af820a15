// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ErrorCode is the numeric discriminant of a protocol error.
type ErrorCode int

// JSON-RPC standard error codes and A2A specific extensions.
const (
	ErrorCodeJSONParse                    ErrorCode = -32700
	ErrorCodeInvalidRequest               ErrorCode = -32600
	ErrorCodeMethodNotFound               ErrorCode = -32601
	ErrorCodeInvalidParams                ErrorCode = -32602
	ErrorCodeInternal                     ErrorCode = -32603
	ErrorCodeTaskNotFound                 ErrorCode = -32001
	ErrorCodeTaskNotCancelable            ErrorCode = -32002
	ErrorCodePushNotificationNotSupported ErrorCode = -32003
	ErrorCodeUnsupportedOperation         ErrorCode = -32004
	ErrorCodeContentTypeNotSupported      ErrorCode = -32005
	ErrorCodeInvalidAgentResponse         ErrorCode = -32006
)

// errorKind describes one member of the closed error taxonomy.
type errorKind struct {
	label string
	// defaultMessage is used by constructors when no message is supplied.
	defaultMessage string
	build          func(msg string, data any) Error
}

var errorKinds = map[ErrorCode]errorKind{
	ErrorCodeJSONParse: {"JSON parse error", "Invalid JSON payload", func(m string, d any) Error {
		return &JSONParseError{Msg: m, Data: d}
	}},
	ErrorCodeInvalidRequest: {"Invalid request", "Request payload validation error", func(m string, d any) Error {
		return &InvalidRequestError{Msg: m, Data: d}
	}},
	ErrorCodeMethodNotFound: {"Method not found", "Method not found", func(m string, d any) Error {
		return &MethodNotFoundError{Msg: m, Data: d}
	}},
	ErrorCodeInvalidParams: {"Invalid parameters", "Invalid parameters", func(m string, d any) Error {
		return &InvalidParamsError{Msg: m, Data: d}
	}},
	ErrorCodeInternal: {"Internal error", "Internal error", func(m string, d any) Error {
		return &InternalError{Msg: m, Data: d}
	}},
	ErrorCodeTaskNotFound: {"Task not found", "Task not found", func(m string, d any) Error {
		return &TaskNotFoundError{Msg: m, Data: d}
	}},
	ErrorCodeTaskNotCancelable: {"Task not cancelable", "Task cannot be canceled", func(m string, d any) Error {
		return &TaskNotCancelableError{Msg: m, Data: d}
	}},
	ErrorCodePushNotificationNotSupported: {"Push notification not supported", "Push Notification is not supported", func(m string, d any) Error {
		return &PushNotificationNotSupportedError{Msg: m, Data: d}
	}},
	ErrorCodeUnsupportedOperation: {"Unsupported operation", "This operation is not supported", func(m string, d any) Error {
		return &UnsupportedOperationError{Msg: m, Data: d}
	}},
	ErrorCodeContentTypeNotSupported: {"Content type not supported", "Incompatible content types", func(m string, d any) Error {
		return &ContentTypeNotSupportedError{Msg: m, Data: d}
	}},
	ErrorCodeInvalidAgentResponse: {"Invalid agent response", "Invalid agent response", func(m string, d any) Error {
		return &InvalidAgentResponseError{Msg: m, Data: d}
	}},
}

// Known reports whether c is one of the eleven protocol error codes.
func (c ErrorCode) Known() bool {
	_, ok := errorKinds[c]
	return ok
}

// String returns the human readable label of the error kind.
func (c ErrorCode) String() string {
	if k, ok := errorKinds[c]; ok {
		return k.label
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is an agent-reported protocol failure. It is a payload value exchanged
// between client and agent, not a failure of this package.
type Error interface {
	error
	Code() ErrorCode
	Message() string
	ErrorData() any
}

// NewError returns the error kind registered for code.
func NewError(code ErrorCode, msg string, data any) (Error, error) {
	k, ok := errorKinds[code]
	if !ok {
		return nil, &DecodeError{Type: "error", Err: fmt.Errorf("unknown error code: %d", int(code))}
	}
	if msg == "" {
		msg = k.defaultMessage
	}
	return k.build(msg, data), nil
}

func formatError(e Error) string {
	return fmt.Sprintf("%s: %s", e.Code(), e.Message())
}

// ErrorObject is the wire form shared by every error kind.
type ErrorObject struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitzero"`
}

// AsError converts the wire form into its typed error kind.
func (o ErrorObject) AsError() (Error, error) {
	k, ok := errorKinds[o.Code]
	if !ok {
		return nil, &DecodeError{Type: "error", Err: fmt.Errorf("unknown error code: %d", int(o.Code))}
	}
	return k.build(o.Message, o.Data), nil
}

// ToErrorObject returns the wire form of e.
func ToErrorObject(e Error) ErrorObject {
	return ErrorObject{Code: e.Code(), Message: e.Message(), Data: e.ErrorData()}
}

// MarshalError encodes e as a flat {code, message, data} object.
func MarshalError(e Error) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("cannot marshal nil error")
	}
	return json.Marshal(ToErrorObject(e))
}

// UnmarshalError decodes a protocol error, selecting the kind by its code.
// A missing or unrecognised code and a missing message are reported as a
// *DecodeError.
func UnmarshalError(data []byte) (Error, error) {
	if k := jsontext.Value(data).Kind(); k != '{' {
		return nil, &DecodeError{Type: "error", Err: fmt.Errorf("expected JSON object, got %s", kindName(k))}
	}

	var head struct {
		Code *ErrorCode `json:"code"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &DecodeError{Type: "error", Err: err}
	}
	if head.Code == nil {
		return nil, &DecodeError{Type: "error", Err: fmt.Errorf("missing field code")}
	}
	if !head.Code.Known() {
		return nil, &DecodeError{Type: "error", Err: fmt.Errorf("unknown error code: %d", int(*head.Code))}
	}
	if err := requireMembers(data, head.Code.String(), "message"); err != nil {
		return nil, err
	}

	var obj ErrorObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &DecodeError{Type: head.Code.String(), Err: err}
	}

	return obj.AsError()
}

// JSONParseError indicates invalid JSON was received.
type JSONParseError struct {
	Msg  string
	Data any
}

var _ Error = (*JSONParseError)(nil)

func (e *JSONParseError) Error() string   { return formatError(e) }
func (e *JSONParseError) Code() ErrorCode { return ErrorCodeJSONParse }
func (e *JSONParseError) Message() string { return e.Msg }
func (e *JSONParseError) ErrorData() any  { return e.Data }
func (e *JSONParseError) Is(t error) bool { return isSameKind(e, t) }

func (e JSONParseError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// InvalidRequestError indicates the JSON sent is not a valid request object.
type InvalidRequestError struct {
	Msg  string
	Data any
}

var _ Error = (*InvalidRequestError)(nil)

func (e *InvalidRequestError) Error() string   { return formatError(e) }
func (e *InvalidRequestError) Code() ErrorCode { return ErrorCodeInvalidRequest }
func (e *InvalidRequestError) Message() string { return e.Msg }
func (e *InvalidRequestError) ErrorData() any  { return e.Data }
func (e *InvalidRequestError) Is(t error) bool { return isSameKind(e, t) }

func (e InvalidRequestError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// MethodNotFoundError indicates the method does not exist or is not available.
type MethodNotFoundError struct {
	Msg  string
	Data any
}

var _ Error = (*MethodNotFoundError)(nil)

func (e *MethodNotFoundError) Error() string   { return formatError(e) }
func (e *MethodNotFoundError) Code() ErrorCode { return ErrorCodeMethodNotFound }
func (e *MethodNotFoundError) Message() string { return e.Msg }
func (e *MethodNotFoundError) ErrorData() any  { return e.Data }
func (e *MethodNotFoundError) Is(t error) bool { return isSameKind(e, t) }

func (e MethodNotFoundError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// InvalidParamsError indicates invalid method parameters.
type InvalidParamsError struct {
	Msg  string
	Data any
}

var _ Error = (*InvalidParamsError)(nil)

func (e *InvalidParamsError) Error() string   { return formatError(e) }
func (e *InvalidParamsError) Code() ErrorCode { return ErrorCodeInvalidParams }
func (e *InvalidParamsError) Message() string { return e.Msg }
func (e *InvalidParamsError) ErrorData() any  { return e.Data }
func (e *InvalidParamsError) Is(t error) bool { return isSameKind(e, t) }

func (e InvalidParamsError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// InternalError indicates an internal error on the agent.
type InternalError struct {
	Msg  string
	Data any
}

var _ Error = (*InternalError)(nil)

func (e *InternalError) Error() string   { return formatError(e) }
func (e *InternalError) Code() ErrorCode { return ErrorCodeInternal }
func (e *InternalError) Message() string { return e.Msg }
func (e *InternalError) ErrorData() any  { return e.Data }
func (e *InternalError) Is(t error) bool { return isSameKind(e, t) }

func (e InternalError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// TaskNotFoundError indicates the requested task ID was not found.
type TaskNotFoundError struct {
	Msg  string
	Data any
}

var _ Error = (*TaskNotFoundError)(nil)

func (e *TaskNotFoundError) Error() string   { return formatError(e) }
func (e *TaskNotFoundError) Code() ErrorCode { return ErrorCodeTaskNotFound }
func (e *TaskNotFoundError) Message() string { return e.Msg }
func (e *TaskNotFoundError) ErrorData() any  { return e.Data }
func (e *TaskNotFoundError) Is(t error) bool { return isSameKind(e, t) }

func (e TaskNotFoundError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// TaskNotCancelableError indicates the task is in a state where it cannot be canceled.
type TaskNotCancelableError struct {
	Msg  string
	Data any
}

var _ Error = (*TaskNotCancelableError)(nil)

func (e *TaskNotCancelableError) Error() string   { return formatError(e) }
func (e *TaskNotCancelableError) Code() ErrorCode { return ErrorCodeTaskNotCancelable }
func (e *TaskNotCancelableError) Message() string { return e.Msg }
func (e *TaskNotCancelableError) ErrorData() any  { return e.Data }
func (e *TaskNotCancelableError) Is(t error) bool { return isSameKind(e, t) }

func (e TaskNotCancelableError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// PushNotificationNotSupportedError indicates the agent does not support push notifications.
type PushNotificationNotSupportedError struct {
	Msg  string
	Data any
}

var _ Error = (*PushNotificationNotSupportedError)(nil)

func (e *PushNotificationNotSupportedError) Error() string   { return formatError(e) }
func (e *PushNotificationNotSupportedError) Code() ErrorCode { return ErrorCodePushNotificationNotSupported }
func (e *PushNotificationNotSupportedError) Message() string { return e.Msg }
func (e *PushNotificationNotSupportedError) ErrorData() any  { return e.Data }
func (e *PushNotificationNotSupportedError) Is(t error) bool { return isSameKind(e, t) }

func (e PushNotificationNotSupportedError) MarshalJSON() ([]byte, error) {
	return MarshalError(&e)
}

// UnsupportedOperationError indicates the requested operation is not supported by the agent.
type UnsupportedOperationError struct {
	Msg  string
	Data any
}

var _ Error = (*UnsupportedOperationError)(nil)

func (e *UnsupportedOperationError) Error() string   { return formatError(e) }
func (e *UnsupportedOperationError) Code() ErrorCode { return ErrorCodeUnsupportedOperation }
func (e *UnsupportedOperationError) Message() string { return e.Msg }
func (e *UnsupportedOperationError) ErrorData() any  { return e.Data }
func (e *UnsupportedOperationError) Is(t error) bool { return isSameKind(e, t) }

func (e UnsupportedOperationError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// ContentTypeNotSupportedError indicates incompatible content types between request and agent.
type ContentTypeNotSupportedError struct {
	Msg  string
	Data any
}

var _ Error = (*ContentTypeNotSupportedError)(nil)

func (e *ContentTypeNotSupportedError) Error() string   { return formatError(e) }
func (e *ContentTypeNotSupportedError) Code() ErrorCode { return ErrorCodeContentTypeNotSupported }
func (e *ContentTypeNotSupportedError) Message() string { return e.Msg }
func (e *ContentTypeNotSupportedError) ErrorData() any  { return e.Data }
func (e *ContentTypeNotSupportedError) Is(t error) bool { return isSameKind(e, t) }

func (e ContentTypeNotSupportedError) MarshalJSON() ([]byte, error) {
	return MarshalError(&e)
}

// InvalidAgentResponseError indicates the agent returned an invalid response for the current method.
type InvalidAgentResponseError struct {
	Msg  string
	Data any
}

var _ Error = (*InvalidAgentResponseError)(nil)

func (e *InvalidAgentResponseError) Error() string   { return formatError(e) }
func (e *InvalidAgentResponseError) Code() ErrorCode { return ErrorCodeInvalidAgentResponse }
func (e *InvalidAgentResponseError) Message() string { return e.Msg }
func (e *InvalidAgentResponseError) ErrorData() any  { return e.Data }
func (e *InvalidAgentResponseError) Is(t error) bool { return isSameKind(e, t) }

func (e InvalidAgentResponseError) MarshalJSON() ([]byte, error) { return MarshalError(&e) }

// isSameKind lets errors.Is match any two errors of the same kind, regardless of message.
func isSameKind(e Error, target error) bool {
	t, ok := target.(Error)
	return ok && t != nil && t.Code() == e.Code()
}
