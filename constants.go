// Copyright 2025 The Go A2A Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package a2a

import "strings"

// A2A protocol path constants.
const (
	// AgentCardWellKnownPath is the standard path for retrieving an agent's public AgentCard.
	//
	// Example usage: https://agent.example.com/.well-known/agent.json
	AgentCardWellKnownPath = "/.well-known/agent.json"

	// ExtendedAgentCardPath is the path for an authenticated extended agent card,
	// served when AgentCard.SupportsAuthenticatedExtendedCard is set.
	ExtendedAgentCardPath = "/agent/authenticatedExtendedCard"
)

// Transport protocol names used by AgentCard.PreferredTransport and AgentInterface.Transport.
const (
	TransportJSONRPC  = "JSONRPC"
	TransportGRPC     = "GRPC"
	TransportHTTPJSON = "HTTP+JSON"
)

// AgentCardURL returns the well-known agent card location for an agent served at baseURL.
func AgentCardURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + AgentCardWellKnownPath
}

// ExtendedAgentCardURL returns the authenticated extended card location for an
// agent served at baseURL.
func ExtendedAgentCardURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + ExtendedAgentCardPath
}
