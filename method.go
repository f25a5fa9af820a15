// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
)

// Method is a JSON-RPC method name of the A2A protocol.
type Method string

// A2A RPC method names.
const (
	MethodMessageSend                       Method = "message/send"
	MethodMessageStream                     Method = "message/stream"
	MethodTasksGet                          Method = "tasks/get"
	MethodTasksCancel                       Method = "tasks/cancel"
	MethodTasksPushNotificationConfigSet    Method = "tasks/pushNotificationConfig/set"
	MethodTasksPushNotificationConfigGet    Method = "tasks/pushNotificationConfig/get"
	MethodTasksPushNotificationConfigList   Method = "tasks/pushNotificationConfig/list"
	MethodTasksPushNotificationConfigDelete Method = "tasks/pushNotificationConfig/delete"
	MethodTasksResubscribe                  Method = "tasks/resubscribe"
)

var canonicalMethods = map[Method]bool{
	MethodMessageSend:                       true,
	MethodMessageStream:                     true,
	MethodTasksGet:                          true,
	MethodTasksCancel:                       true,
	MethodTasksPushNotificationConfigSet:    true,
	MethodTasksPushNotificationConfigGet:    true,
	MethodTasksPushNotificationConfigList:   true,
	MethodTasksPushNotificationConfigDelete: true,
	MethodTasksResubscribe:                  true,
}

// methodAliases are legacy names accepted on decode only. Encoding always
// produces the canonical name.
var methodAliases = map[string]Method{
	"sendMessage": MethodMessageSend,
	"getTask":     MethodTasksGet,
	"cancelTask":  MethodTasksCancel,
}

// ParseMethod resolves s, which may be a canonical name or a legacy alias,
// to its canonical Method. Unknown names yield a *MethodNotFoundError.
func ParseMethod(s string) (Method, error) {
	if m := Method(s); canonicalMethods[m] {
		return m, nil
	}
	if m, ok := methodAliases[s]; ok {
		return m, nil
	}
	return "", &MethodNotFoundError{Msg: fmt.Sprintf("Method not found: %s", s)}
}

// String returns the canonical method name.
func (m Method) String() string {
	return string(m)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !canonicalMethods[m] {
		return nil, &MethodNotFoundError{Msg: fmt.Sprintf("Method not found: %s", string(m))}
	}
	return []byte(m), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Aliases are normalised
// to the canonical name.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
