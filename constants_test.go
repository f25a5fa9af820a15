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

import (
	"strings"
	"testing"
)

func TestAgentCardURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		baseURL      string
		wantCard     string
		wantExtended string
	}{
		"bare host": {
			baseURL:      "https://agent.example.com",
			wantCard:     "https://agent.example.com/.well-known/agent.json",
			wantExtended: "https://agent.example.com/agent/authenticatedExtendedCard",
		},
		"trailing slash": {
			baseURL:      "https://agent.example.com/",
			wantCard:     "https://agent.example.com/.well-known/agent.json",
			wantExtended: "https://agent.example.com/agent/authenticatedExtendedCard",
		},
		"with path": {
			baseURL:      "http://localhost:8080/agents/weather",
			wantCard:     "http://localhost:8080/agents/weather/.well-known/agent.json",
			wantExtended: "http://localhost:8080/agents/weather/agent/authenticatedExtendedCard",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := AgentCardURL(tt.baseURL); got != tt.wantCard {
				t.Errorf("AgentCardURL(%q) = %q, want %q", tt.baseURL, got, tt.wantCard)
			}
			if got := ExtendedAgentCardURL(tt.baseURL); got != tt.wantExtended {
				t.Errorf("ExtendedAgentCardURL(%q) = %q, want %q", tt.baseURL, got, tt.wantExtended)
			}
			if err := ValidateURL(AgentCardURL(tt.baseURL)); err != nil {
				t.Errorf("AgentCardURL(%q) is not a valid URL: %v", tt.baseURL, err)
			}
		})
	}
}

func TestConstantsFormat(t *testing.T) {
	t.Parallel()

	for _, path := range []string{AgentCardWellKnownPath, ExtendedAgentCardPath} {
		if !strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") || strings.Contains(path, " ") {
			t.Errorf("path %q must start with a single slash, not end with one and contain no spaces", path)
		}
	}
	if ProtocolVersion != "0.2.5" || JSONRPCVersion != "2.0" {
		t.Errorf("versions = %q/%q", ProtocolVersion, JSONRPCVersion)
	}
	if err := ValidateVersion(ProtocolVersion); err != nil {
		t.Errorf("ProtocolVersion is not a valid version: %v", err)
	}
}
