// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a provides the data model and validation rules of the Agent-to-Agent (A2A) protocol for Go.
//
// The package decodes protocol payloads (messages, tasks, streaming events, agent cards and
// security schemes) from JSON into typed records, encodes them back into the wire shape, and
// validates the semantic invariants the protocol places on them. It performs no transport,
// authentication or persistence of its own.
package a2a

// ProtocolVersion is the version of the A2A protocol implemented by this package.
const ProtocolVersion = "0.2.5"

// JSONRPCVersion is the JSON-RPC version carried by every envelope.
const JSONRPCVersion = "2.0"

// Kind discriminators used on the wire.
const (
	KindMessage        = "message"
	KindTask           = "task"
	KindStatusUpdate   = "status-update"
	KindArtifactUpdate = "artifact-update"

	KindText = "text"
	KindFile = "file"
	KindData = "data"
)
