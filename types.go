// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

const (
	maxExtensionDescriptionLen = 1000
	maxSkillNameLen            = 100
)

// AgentCard conveys key information about an agent: identity, endpoint,
// capabilities, skills and how to authenticate.
type AgentCard struct {
	Name                              string                `json:"name"`
	Description                       string                `json:"description"`
	URL                               string                `json:"url"`
	Version                           string                `json:"version"`
	ProtocolVersion                   string                `json:"protocolVersion"`
	PreferredTransport                string                `json:"preferredTransport,omitzero"`
	Capabilities                      AgentCapabilities     `json:"capabilities"`
	DefaultInputModes                 []string              `json:"defaultInputModes"`
	DefaultOutputModes                []string              `json:"defaultOutputModes"`
	Skills                            []AgentSkill          `json:"skills"`
	Provider                          *AgentProvider        `json:"provider,omitzero"`
	DocumentationURL                  string                `json:"documentationUrl,omitzero"`
	IconURL                           string                `json:"iconUrl,omitzero"`
	SupportsAuthenticatedExtendedCard bool                  `json:"supportsAuthenticatedExtendedCard,omitzero"`
	AdditionalInterfaces              []AgentInterface      `json:"additionalInterfaces,omitzero"`
	Security                          []map[string][]string `json:"security,omitzero"`
	SecuritySchemes                   SecuritySchemes       `json:"securitySchemes,omitzero"`
}

// NewAgentCard returns a card for the current ProtocolVersion.
func NewAgentCard(name, description, version, url string, capabilities AgentCapabilities, inputModes, outputModes []string, skills []AgentSkill) *AgentCard {
	return &AgentCard{
		Name:               name,
		Description:        description,
		Version:            version,
		ProtocolVersion:    ProtocolVersion,
		URL:                url,
		Capabilities:       capabilities,
		DefaultInputModes:  inputModes,
		DefaultOutputModes: outputModes,
		Skills:             skills,
	}
}

type agentCard AgentCard

// UnmarshalJSON implements json.Unmarshaler.
func (c *AgentCard) UnmarshalJSON(data []byte) error {
	err := requireMembers(data, "AgentCard",
		"name", "description", "url", "version", "capabilities",
		"defaultInputModes", "defaultOutputModes", "skills")
	if err != nil {
		return err
	}
	return json.Unmarshal(data, (*agentCard)(c))
}

// Validate checks the card and everything nested in it, stopping at the first violation.
func (c *AgentCard) Validate() error {
	if err := ValidateAgentName(c.Name); err != nil {
		return err
	}
	if err := ValidateVersion(c.Version); err != nil {
		return err
	}
	if err := ValidateURL(c.URL); err != nil {
		return fmt.Errorf("agent URL: %w", err)
	}
	if c.Provider != nil {
		if err := c.Provider.Validate(); err != nil {
			return err
		}
	}
	if c.DocumentationURL != "" {
		if err := ValidateURL(c.DocumentationURL); err != nil {
			return fmt.Errorf("documentation URL: %w", err)
		}
	}
	if c.IconURL != "" {
		if err := ValidateURL(c.IconURL); err != nil {
			return fmt.Errorf("icon URL: %w", err)
		}
	}
	if err := validateModes("default input mode", c.DefaultInputModes); err != nil {
		return err
	}
	if err := validateModes("default output mode", c.DefaultOutputModes); err != nil {
		return err
	}
	for i := range c.Skills {
		if err := c.Skills[i].Validate(); err != nil {
			return fmt.Errorf("skill %d: %w", i, err)
		}
	}
	if err := c.Capabilities.Validate(); err != nil {
		return err
	}
	for i := range c.AdditionalInterfaces {
		if err := c.AdditionalInterfaces[i].Validate(); err != nil {
			return fmt.Errorf("additional interface %d: %w", i, err)
		}
	}
	if err := c.SecuritySchemes.Validate(); err != nil {
		return err
	}
	for i, requirement := range c.Security {
		for name := range requirement {
			if _, ok := c.SecuritySchemes[name]; !ok {
				return invalidf("security requirement %d references undeclared scheme %q", i, name)
			}
		}
	}

	return nil
}

func validateModes(what string, modes []string) error {
	for _, m := range modes {
		if err := ValidateMediaType(m); err != nil {
			return fmt.Errorf("%s %q: %w", what, m, err)
		}
	}
	return nil
}

// AgentCapabilities defines optional protocol features supported by an agent.
type AgentCapabilities struct {
	Extensions             []AgentExtension `json:"extensions,omitzero"`
	PushNotifications      bool             `json:"pushNotifications,omitzero"`
	StateTransitionHistory bool             `json:"stateTransitionHistory,omitzero"`
	Streaming              bool             `json:"streaming,omitzero"`
}

// Validate checks each declared extension.
func (c *AgentCapabilities) Validate() error {
	for i := range c.Extensions {
		if err := c.Extensions[i].Validate(); err != nil {
			return fmt.Errorf("extension %d: %w", i, err)
		}
	}
	return nil
}

// AgentExtension declares a protocol extension supported by an agent.
type AgentExtension struct {
	URI         string `json:"uri"`
	Description string `json:"description,omitzero"`
	Required    bool   `json:"required,omitzero"`
	Params      any    `json:"params,omitzero"`
}

// Validate checks the extension URI, its params and description length.
//
// Params are linted against a loose sub-schema chosen by substring match on
// the URI: auth extensions ("oauth" or "auth") and webhook extensions
// ("webhook" or "notification"). URIs matching neither only require params
// to be a JSON object.
func (e *AgentExtension) Validate() error {
	if err := e.validateURI(); err != nil {
		return err
	}
	if err := e.validateParams(); err != nil {
		return err
	}
	return validateDescription("Extension", e.Description, maxExtensionDescriptionLen)
}

func (e *AgentExtension) validateURI() error {
	if e.URI == "" {
		return invalidf("extension URI cannot be empty")
	}
	if err := ValidateURL(e.URI); err != nil {
		return fmt.Errorf("extension URI must be a valid HTTP or HTTPS URL: %w", err)
	}
	return nil
}

func (e *AgentExtension) validateParams() error {
	if e.Params == nil {
		return nil
	}
	params, ok := objectParams(e.Params)
	if !ok {
		return invalidf("extension params must be a JSON object")
	}

	switch {
	case strings.Contains(e.URI, "oauth"), strings.Contains(e.URI, "auth"):
		return validateAuthExtensionParams(params)
	case strings.Contains(e.URI, "webhook"), strings.Contains(e.URI, "notification"):
		return validateWebhookExtensionParams(params)
	}
	return nil
}

// objectParams returns v as a decoded JSON object. Values of other Go types
// are accepted when they encode as one.
func objectParams(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	b, err := json.Marshal(v)
	if err != nil || jsontext.Value(b).Kind() != '{' {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}

func validateAuthExtensionParams(params map[string]any) error {
	if v, ok := params["clientId"]; ok {
		if s, isString := v.(string); !isString || s == "" {
			return invalidf("auth extension clientId must be a non-empty string")
		}
	}
	if v, ok := params["scopes"]; ok {
		if _, isArray := v.([]any); !isArray {
			return invalidf("auth extension scopes must be an array")
		}
	}
	if v, ok := params["redirectUri"]; ok {
		s, isString := v.(string)
		if !isString {
			return invalidf("auth extension redirectUri must be a string")
		}
		if !hasHTTPScheme(s) {
			return invalidf("auth extension redirectUri must be a valid URL")
		}
	}
	return nil
}

func validateWebhookExtensionParams(params map[string]any) error {
	if v, ok := params["url"]; ok {
		s, isString := v.(string)
		if !isString || s == "" {
			return invalidf("webhook extension url must be a non-empty string")
		}
		if !hasHTTPScheme(s) {
			return invalidf("webhook extension url must be a valid HTTP or HTTPS URL")
		}
	}
	if v, ok := params["secret"]; ok {
		if _, isString := v.(string); !isString {
			return invalidf("webhook extension secret must be a string")
		}
	}
	if v, ok := params["events"]; ok {
		if _, isArray := v.([]any); !isArray {
			return invalidf("webhook extension events must be an array")
		}
	}
	return nil
}

func hasHTTPScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// AgentProvider represents the service provider of an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url"`
}

// Validate ensures the AgentProvider is valid.
func (p *AgentProvider) Validate() error {
	if p.Organization == "" {
		return invalidf("agent provider organization cannot be empty")
	}
	if err := ValidateURL(p.URL); err != nil {
		return fmt.Errorf("agent provider URL: %w", err)
	}
	return nil
}

// AgentSkill describes a unit of capability an agent can perform.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitzero"`
	Examples    []string `json:"examples,omitzero"`
	InputModes  []string `json:"inputModes,omitzero"`
	OutputModes []string `json:"outputModes,omitzero"`
}

// Validate ensures the AgentSkill is valid.
func (s *AgentSkill) Validate() error {
	if err := ValidateSkillID(s.ID); err != nil {
		return err
	}
	if s.Name == "" {
		return invalidf("agent skill name cannot be empty")
	}
	if len(s.Name) > maxSkillNameLen {
		return invalidf("agent skill name is too long (max %d characters)", maxSkillNameLen)
	}
	if err := validateModes("skill input mode", s.InputModes); err != nil {
		return err
	}
	return validateModes("skill output mode", s.OutputModes)
}

// AgentInterface declares an additional URL and transport at which the agent is reachable.
type AgentInterface struct {
	URL       string `json:"url"`
	Transport string `json:"transport"`
}

// Validate ensures the AgentInterface is valid.
func (i *AgentInterface) Validate() error {
	if err := ValidateURL(i.URL); err != nil {
		return err
	}
	if i.Transport == "" {
		return invalidf("agent interface transport cannot be empty")
	}
	return nil
}
