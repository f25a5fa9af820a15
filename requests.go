// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Request is a decoded JSON-RPC request of the A2A protocol.
type Request interface {
	// RequestID returns the correlation identifier.
	RequestID() ID
	// RequestMethod returns the canonical method name.
	RequestMethod() Method
	// RequestParams returns the method parameters.
	RequestParams() any
}

func newRequest(m Method) Request {
	switch m {
	case MethodMessageSend:
		return new(SendMessageRequest)
	case MethodMessageStream:
		return new(SendStreamingMessageRequest)
	case MethodTasksGet:
		return new(GetTaskRequest)
	case MethodTasksCancel:
		return new(CancelTaskRequest)
	case MethodTasksPushNotificationConfigSet:
		return new(SetTaskPushNotificationConfigRequest)
	case MethodTasksPushNotificationConfigGet:
		return new(GetTaskPushNotificationConfigRequest)
	case MethodTasksPushNotificationConfigList:
		return new(ListTaskPushNotificationConfigRequest)
	case MethodTasksPushNotificationConfigDelete:
		return new(DeleteTaskPushNotificationConfigRequest)
	case MethodTasksResubscribe:
		return new(TaskResubscriptionRequest)
	}
	panic(fmt.Sprintf("a2a: no request record for method %q", m))
}

// MessageSendConfiguration configures how the agent handles a sent message.
type MessageSendConfiguration struct {
	AcceptedOutputModes    []string                `json:"acceptedOutputModes"`
	Blocking               bool                    `json:"blocking,omitzero"`
	HistoryLength          *int                    `json:"historyLength,omitzero"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig,omitzero"`
}

// Validate checks the accepted output modes and push notification configuration.
func (c *MessageSendConfiguration) Validate() error {
	if err := validateModes("accepted output mode", c.AcceptedOutputModes); err != nil {
		return err
	}
	if c.HistoryLength != nil && *c.HistoryLength < 0 {
		return invalidf("history length cannot be negative")
	}
	if c.PushNotificationConfig != nil {
		return c.PushNotificationConfig.Validate()
	}
	return nil
}

// MessageSendParams are the parameters of message/send and message/stream.
type MessageSendParams struct {
	Message       Message                   `json:"message"`
	Configuration *MessageSendConfiguration `json:"configuration,omitzero"`
	Metadata      map[string]any            `json:"metadata,omitzero"`
}

// Validate checks the message and configuration.
func (p *MessageSendParams) Validate() error {
	if err := p.Message.Validate(); err != nil {
		return err
	}
	if p.Configuration != nil {
		return p.Configuration.Validate()
	}
	return nil
}

// TaskIDParams identify a task.
type TaskIDParams struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// Validate checks the task identifier.
func (p *TaskIDParams) Validate() error {
	return ValidateTaskID(p.ID)
}

// TaskQueryParams identify a task and bound the returned history.
type TaskQueryParams struct {
	ID            string         `json:"id"`
	HistoryLength *int           `json:"historyLength,omitzero"`
	Metadata      map[string]any `json:"metadata,omitzero"`
}

// Validate checks the task identifier and history bound.
func (p *TaskQueryParams) Validate() error {
	if err := ValidateTaskID(p.ID); err != nil {
		return err
	}
	if p.HistoryLength != nil && *p.HistoryLength < 0 {
		return invalidf("history length cannot be negative")
	}
	return nil
}

// GetTaskPushNotificationConfigParams identify a push notification configuration of a task.
type GetTaskPushNotificationConfigParams struct {
	ID                       string         `json:"id"`
	PushNotificationConfigID string         `json:"pushNotificationConfigId,omitzero"`
	Metadata                 map[string]any `json:"metadata,omitzero"`
}

// ListTaskPushNotificationConfigParams identify the task whose configurations are listed.
type ListTaskPushNotificationConfigParams struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// DeleteTaskPushNotificationConfigParams identify the configuration to delete.
type DeleteTaskPushNotificationConfigParams struct {
	ID                       string         `json:"id"`
	PushNotificationConfigID string         `json:"pushNotificationConfigId"`
	Metadata                 map[string]any `json:"metadata,omitzero"`
}

// SendMessageRequest is a message/send request.
type SendMessageRequest struct {
	JSONRPCMessage

	Method Method            `json:"method"`
	Params MessageSendParams `json:"params"`
}

// NewSendMessageRequest returns a message/send request carrying a single text
// part from role.
func NewSendMessageRequest(id ID, messageID, text string, role Role, configuration *MessageSendConfiguration, metadata map[string]any) *SendMessageRequest {
	return &SendMessageRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodMessageSend,
		Params: MessageSendParams{
			Message: Message{
				MessageID: messageID,
				Role:      role,
				Parts:     Parts{NewTextPart(text)},
			},
			Configuration: configuration,
			Metadata:      metadata,
		},
	}
}

func (r *SendMessageRequest) RequestMethod() Method { return MethodMessageSend }
func (r *SendMessageRequest) RequestParams() any    { return &r.Params }

// SendStreamingMessageRequest is a message/stream request.
type SendStreamingMessageRequest struct {
	JSONRPCMessage

	Method Method            `json:"method"`
	Params MessageSendParams `json:"params"`
}

// NewSendStreamingMessageRequest creates a new [SendStreamingMessageRequest].
func NewSendStreamingMessageRequest(id ID, params MessageSendParams) *SendStreamingMessageRequest {
	return &SendStreamingMessageRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodMessageStream,
		Params:         params,
	}
}

func (r *SendStreamingMessageRequest) RequestMethod() Method { return MethodMessageStream }
func (r *SendStreamingMessageRequest) RequestParams() any    { return &r.Params }

// GetTaskRequest is a tasks/get request.
type GetTaskRequest struct {
	JSONRPCMessage

	Method Method          `json:"method"`
	Params TaskQueryParams `json:"params"`
}

// NewGetTaskRequest creates a new [GetTaskRequest].
func NewGetTaskRequest(id ID, taskID string) *GetTaskRequest {
	return &GetTaskRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodTasksGet,
		Params:         TaskQueryParams{ID: taskID},
	}
}

func (r *GetTaskRequest) RequestMethod() Method { return MethodTasksGet }
func (r *GetTaskRequest) RequestParams() any    { return &r.Params }

// CancelTaskRequest is a tasks/cancel request.
type CancelTaskRequest struct {
	JSONRPCMessage

	Method Method       `json:"method"`
	Params TaskIDParams `json:"params"`
}

// NewCancelTaskRequest creates a new [CancelTaskRequest].
func NewCancelTaskRequest(id ID, taskID string) *CancelTaskRequest {
	return &CancelTaskRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodTasksCancel,
		Params:         TaskIDParams{ID: taskID},
	}
}

func (r *CancelTaskRequest) RequestMethod() Method { return MethodTasksCancel }
func (r *CancelTaskRequest) RequestParams() any    { return &r.Params }

// SetTaskPushNotificationConfigRequest is a tasks/pushNotificationConfig/set request.
type SetTaskPushNotificationConfigRequest struct {
	JSONRPCMessage

	Method Method                     `json:"method"`
	Params TaskPushNotificationConfig `json:"params"`
}

// NewSetTaskPushNotificationConfigRequest creates a new [SetTaskPushNotificationConfigRequest].
func NewSetTaskPushNotificationConfigRequest(id ID, params TaskPushNotificationConfig) *SetTaskPushNotificationConfigRequest {
	return &SetTaskPushNotificationConfigRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodTasksPushNotificationConfigSet,
		Params:         params,
	}
}

func (r *SetTaskPushNotificationConfigRequest) RequestMethod() Method {
	return MethodTasksPushNotificationConfigSet
}
func (r *SetTaskPushNotificationConfigRequest) RequestParams() any { return &r.Params }

// GetTaskPushNotificationConfigRequest is a tasks/pushNotificationConfig/get request.
type GetTaskPushNotificationConfigRequest struct {
	JSONRPCMessage

	Method Method                              `json:"method"`
	Params GetTaskPushNotificationConfigParams `json:"params"`
}

func (r *GetTaskPushNotificationConfigRequest) RequestMethod() Method {
	return MethodTasksPushNotificationConfigGet
}
func (r *GetTaskPushNotificationConfigRequest) RequestParams() any { return &r.Params }

// ListTaskPushNotificationConfigRequest is a tasks/pushNotificationConfig/list request.
type ListTaskPushNotificationConfigRequest struct {
	JSONRPCMessage

	Method Method                               `json:"method"`
	Params ListTaskPushNotificationConfigParams `json:"params"`
}

func (r *ListTaskPushNotificationConfigRequest) RequestMethod() Method {
	return MethodTasksPushNotificationConfigList
}
func (r *ListTaskPushNotificationConfigRequest) RequestParams() any { return &r.Params }

// DeleteTaskPushNotificationConfigRequest is a tasks/pushNotificationConfig/delete request.
type DeleteTaskPushNotificationConfigRequest struct {
	JSONRPCMessage

	Method Method                                 `json:"method"`
	Params DeleteTaskPushNotificationConfigParams `json:"params"`
}

func (r *DeleteTaskPushNotificationConfigRequest) RequestMethod() Method {
	return MethodTasksPushNotificationConfigDelete
}
func (r *DeleteTaskPushNotificationConfigRequest) RequestParams() any { return &r.Params }

// TaskResubscriptionRequest is a tasks/resubscribe request.
type TaskResubscriptionRequest struct {
	JSONRPCMessage

	Method Method       `json:"method"`
	Params TaskIDParams `json:"params"`
}

// NewTaskResubscriptionRequest creates a new [TaskResubscriptionRequest].
func NewTaskResubscriptionRequest(id ID, taskID string) *TaskResubscriptionRequest {
	return &TaskResubscriptionRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodTasksResubscribe,
		Params:         TaskIDParams{ID: taskID},
	}
}

func (r *TaskResubscriptionRequest) RequestMethod() Method { return MethodTasksResubscribe }
func (r *TaskResubscriptionRequest) RequestParams() any    { return &r.Params }

// SendMessageResult is the result of message/send: a *Task or a *Message.
type SendMessageResult interface {
	Event
	isSendMessageResult()
}

func (*Task) isSendMessageResult()    {}
func (*Message) isSendMessageResult() {}

// SendMessageResponse is the successful response to message/send.
type SendMessageResponse struct {
	JSONRPCMessage

	Result SendMessageResult `json:"result"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *SendMessageResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		JSONRPCMessage
		Result jsontext.Value `json:"result"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return &DecodeError{Type: "SendMessageResponse", Err: err}
	}
	ev, err := UnmarshalEvent(wire.Result)
	if err != nil {
		return err
	}
	result, ok := ev.(SendMessageResult)
	if !ok {
		return &DecodeError{Type: "SendMessageResponse", Err: fmt.Errorf("result must be a task or message, got %s", ev.EventKind())}
	}

	*r = SendMessageResponse{JSONRPCMessage: wire.JSONRPCMessage, Result: result}
	return nil
}

// SendStreamingMessageResponse carries one event of a message/stream or tasks/resubscribe stream.
type SendStreamingMessageResponse struct {
	JSONRPCMessage

	Result Event `json:"result"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *SendStreamingMessageResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		JSONRPCMessage
		Result jsontext.Value `json:"result"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return &DecodeError{Type: "SendStreamingMessageResponse", Err: err}
	}
	ev, err := UnmarshalEvent(wire.Result)
	if err != nil {
		return err
	}

	*r = SendStreamingMessageResponse{JSONRPCMessage: wire.JSONRPCMessage, Result: ev}
	return nil
}

// GetTaskResponse is the successful response to tasks/get.
type GetTaskResponse struct {
	JSONRPCMessage

	Result *Task `json:"result"`
}

// CancelTaskResponse is the successful response to tasks/cancel.
type CancelTaskResponse struct {
	JSONRPCMessage

	Result *Task `json:"result"`
}

// SetTaskPushNotificationConfigResponse is the successful response to tasks/pushNotificationConfig/set.
type SetTaskPushNotificationConfigResponse struct {
	JSONRPCMessage

	Result *TaskPushNotificationConfig `json:"result"`
}

// GetTaskPushNotificationConfigResponse is the successful response to tasks/pushNotificationConfig/get.
type GetTaskPushNotificationConfigResponse struct {
	JSONRPCMessage

	Result *TaskPushNotificationConfig `json:"result"`
}

// ListTaskPushNotificationConfigResponse is the successful response to tasks/pushNotificationConfig/list.
type ListTaskPushNotificationConfigResponse struct {
	JSONRPCMessage

	Result []TaskPushNotificationConfig `json:"result"`
}

// DeleteTaskPushNotificationConfigResponse is the successful response to tasks/pushNotificationConfig/delete.
type DeleteTaskPushNotificationConfigResponse struct {
	JSONRPCMessage

	Result bool `json:"result"`
}
