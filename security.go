// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Security scheme "type" discriminators.
const (
	SchemeTypeAPIKey        = "apiKey"
	SchemeTypeHTTP          = "http"
	SchemeTypeOAuth2        = "oauth2"
	SchemeTypeOpenIDConnect = "openIdConnect"
)

const maxSchemeDescriptionLen = 500

// SecurityScheme describes how a client must authenticate to an agent. The set of
// implementations is closed: *APIKeySecurityScheme, *HTTPAuthSecurityScheme,
// *OAuth2SecurityScheme and *OpenIDConnectSecurityScheme.
type SecurityScheme interface {
	Validator
	// SchemeType returns the "type" discriminator of the scheme.
	SchemeType() string
	// RequiresUserInteraction reports whether obtaining credentials involves the end user.
	RequiresUserInteraction() bool
	isSecurityScheme()
}

var (
	_ SecurityScheme = (*APIKeySecurityScheme)(nil)
	_ SecurityScheme = (*HTTPAuthSecurityScheme)(nil)
	_ SecurityScheme = (*OAuth2SecurityScheme)(nil)
	_ SecurityScheme = (*OpenIDConnectSecurityScheme)(nil)
)

// APIKeyLocation is where an API key is carried in a request.
type APIKeyLocation string

// Valid locations for API keys.
const (
	APIKeyInCookie APIKeyLocation = "cookie"
	APIKeyInHeader APIKeyLocation = "header"
	APIKeyInQuery  APIKeyLocation = "query"
)

// MarshalText implements encoding.TextMarshaler.
func (l APIKeyLocation) MarshalText() ([]byte, error) {
	switch l {
	case APIKeyInCookie, APIKeyInHeader, APIKeyInQuery:
		return []byte(l), nil
	}
	return nil, fmt.Errorf("invalid API key location %q", string(l))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *APIKeyLocation) UnmarshalText(text []byte) error {
	switch loc := APIKeyLocation(text); loc {
	case APIKeyInCookie, APIKeyInHeader, APIKeyInQuery:
		*l = loc
		return nil
	}
	return &DecodeError{Type: "APIKeyLocation", Err: fmt.Errorf("unknown location %q", string(text))}
}

// APIKeySecurityScheme defines an API key carried in a header, query parameter or cookie.
type APIKeySecurityScheme struct {
	Type        string         `json:"type"`
	In          APIKeyLocation `json:"in"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitzero"`
}

// NewAPIKeySecurityScheme returns an API key scheme named name, carried in in.
func NewAPIKeySecurityScheme(in APIKeyLocation, name string) *APIKeySecurityScheme {
	return &APIKeySecurityScheme{Type: SchemeTypeAPIKey, In: in, Name: name}
}

func (*APIKeySecurityScheme) SchemeType() string            { return SchemeTypeAPIKey }
func (*APIKeySecurityScheme) RequiresUserInteraction() bool { return false }
func (*APIKeySecurityScheme) isSecurityScheme()             {}

// Validate implements Validator.
func (s *APIKeySecurityScheme) Validate() error {
	if s.Type != SchemeTypeAPIKey {
		return invalidf("API Key security scheme type must be 'apiKey'")
	}
	if s.Name == "" {
		return invalidf("API Key parameter name cannot be empty")
	}

	switch s.In {
	case APIKeyInHeader:
		if strings.Contains(s.Name, " ") {
			return invalidf("header names cannot contain spaces")
		}
		if strings.EqualFold(s.Name, "authorization") {
			return invalidf("use HTTP security scheme for Authorization header")
		}
	case APIKeyInQuery:
		if strings.ContainsAny(s.Name, " &=") {
			return invalidf("query parameter names cannot contain spaces, &, or =")
		}
	case APIKeyInCookie:
		if strings.ContainsAny(s.Name, " ;=") {
			return invalidf("cookie names cannot contain spaces, ;, or =")
		}
	default:
		return invalidf("invalid API key location: %q", string(s.In))
	}

	return validateDescription("Security scheme", s.Description, maxSchemeDescriptionLen)
}

var knownHTTPAuthSchemes = []string{"basic", "bearer", "digest", "negotiate", "ntlm"}

// HTTPAuthSecurityScheme defines an HTTP Authorization header scheme such as Basic or Bearer.
type HTTPAuthSecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme"`
	BearerFormat string `json:"bearerFormat,omitzero"`
	Description  string `json:"description,omitzero"`
}

// NewHTTPAuthSecurityScheme returns an HTTP scheme using the named authorization scheme.
func NewHTTPAuthSecurityScheme(scheme string) *HTTPAuthSecurityScheme {
	return &HTTPAuthSecurityScheme{Type: SchemeTypeHTTP, Scheme: scheme}
}

// NewBearerSecurityScheme returns an HTTP bearer scheme. bearerFormat may be empty.
func NewBearerSecurityScheme(bearerFormat string) *HTTPAuthSecurityScheme {
	return &HTTPAuthSecurityScheme{Type: SchemeTypeHTTP, Scheme: "bearer", BearerFormat: bearerFormat}
}

func (*HTTPAuthSecurityScheme) SchemeType() string            { return SchemeTypeHTTP }
func (*HTTPAuthSecurityScheme) RequiresUserInteraction() bool { return false }
func (*HTTPAuthSecurityScheme) isSecurityScheme()             {}

// Validate implements Validator.
func (s *HTTPAuthSecurityScheme) Validate() error {
	if s.Type != SchemeTypeHTTP {
		return invalidf("HTTP security scheme type must be 'http'")
	}
	if s.Scheme == "" {
		return invalidf("HTTP scheme name cannot be empty")
	}

	scheme := strings.ToLower(s.Scheme)
	if !slices.Contains(knownHTTPAuthSchemes, scheme) && !strings.HasPrefix(scheme, "x-") {
		return invalidf("unknown HTTP authentication scheme: %s", s.Scheme)
	}
	// An empty BearerFormat is indistinguishable from an absent one.
	if s.BearerFormat != "" && scheme != "bearer" {
		return invalidf("bearer format can only be specified for bearer scheme")
	}

	return validateDescription("Security scheme", s.Description, maxSchemeDescriptionLen)
}

// OAuth2SecurityScheme defines an OAuth 2.0 scheme with one or more flows.
type OAuth2SecurityScheme struct {
	Type        string     `json:"type"`
	Flows       OAuthFlows `json:"flows"`
	Description string     `json:"description,omitzero"`
}

// NewOAuth2SecurityScheme returns an OAuth2 scheme with flows.
func NewOAuth2SecurityScheme(flows OAuthFlows) *OAuth2SecurityScheme {
	return &OAuth2SecurityScheme{Type: SchemeTypeOAuth2, Flows: flows}
}

func (*OAuth2SecurityScheme) SchemeType() string { return SchemeTypeOAuth2 }
func (*OAuth2SecurityScheme) isSecurityScheme()  {}

// RequiresUserInteraction reports whether an implicit or authorization code flow is offered.
func (s *OAuth2SecurityScheme) RequiresUserInteraction() bool {
	return s.Flows.Implicit != nil || s.Flows.AuthorizationCode != nil
}

// SupportsClientOnlyFlows reports whether the client credentials flow is offered.
func (s *OAuth2SecurityScheme) SupportsClientOnlyFlows() bool {
	return s.Flows.ClientCredentials != nil
}

// Validate implements Validator.
func (s *OAuth2SecurityScheme) Validate() error {
	if s.Type != SchemeTypeOAuth2 {
		return invalidf("OAuth2 security scheme type must be 'oauth2'")
	}

	f := s.Flows
	if f.Implicit == nil && f.Password == nil && f.ClientCredentials == nil && f.AuthorizationCode == nil {
		return invalidf("OAuth2 security scheme must define at least one flow")
	}
	if f.Implicit != nil {
		if err := f.Implicit.Validate(); err != nil {
			return fmt.Errorf("invalid implicit flow: %w", err)
		}
	}
	if f.Password != nil {
		if err := f.Password.Validate(); err != nil {
			return fmt.Errorf("invalid password flow: %w", err)
		}
	}
	if f.ClientCredentials != nil {
		if err := f.ClientCredentials.Validate(); err != nil {
			return fmt.Errorf("invalid client credentials flow: %w", err)
		}
	}
	if f.AuthorizationCode != nil {
		if err := f.AuthorizationCode.Validate(); err != nil {
			return fmt.Errorf("invalid authorization code flow: %w", err)
		}
	}

	return validateDescription("Security scheme", s.Description, maxSchemeDescriptionLen)
}

// OAuthFlows holds the configuration of each supported OAuth2 flow.
type OAuthFlows struct {
	AuthorizationCode *AuthorizationCodeOAuthFlow `json:"authorizationCode,omitzero"`
	ClientCredentials *ClientCredentialsOAuthFlow `json:"clientCredentials,omitzero"`
	Implicit          *ImplicitOAuthFlow          `json:"implicit,omitzero"`
	Password          *PasswordOAuthFlow          `json:"password,omitzero"`
}

// AuthorizationCodeOAuthFlow configures the OAuth2 authorization code flow.
type AuthorizationCodeOAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl"`
	TokenURL         string            `json:"tokenUrl"`
	RefreshURL       string            `json:"refreshUrl,omitzero"`
	Scopes           map[string]string `json:"scopes"`
}

// Validate implements Validator.
func (f *AuthorizationCodeOAuthFlow) Validate() error {
	if err := ValidateURL(f.AuthorizationURL); err != nil {
		return fmt.Errorf("invalid authorization URL: %w", err)
	}
	if err := ValidateURL(f.TokenURL); err != nil {
		return fmt.Errorf("invalid token URL: %w", err)
	}
	return validateFlowTail(f.RefreshURL, f.Scopes)
}

// ClientCredentialsOAuthFlow configures the OAuth2 client credentials flow.
type ClientCredentialsOAuthFlow struct {
	TokenURL   string            `json:"tokenUrl"`
	RefreshURL string            `json:"refreshUrl,omitzero"`
	Scopes     map[string]string `json:"scopes"`
}

// Validate implements Validator.
func (f *ClientCredentialsOAuthFlow) Validate() error {
	if err := ValidateURL(f.TokenURL); err != nil {
		return fmt.Errorf("invalid token URL: %w", err)
	}
	return validateFlowTail(f.RefreshURL, f.Scopes)
}

// ImplicitOAuthFlow configures the OAuth2 implicit flow.
type ImplicitOAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl"`
	RefreshURL       string            `json:"refreshUrl,omitzero"`
	Scopes           map[string]string `json:"scopes"`
}

// Validate implements Validator.
func (f *ImplicitOAuthFlow) Validate() error {
	if err := ValidateURL(f.AuthorizationURL); err != nil {
		return fmt.Errorf("invalid authorization URL: %w", err)
	}
	return validateFlowTail(f.RefreshURL, f.Scopes)
}

// PasswordOAuthFlow configures the OAuth2 resource owner password flow.
type PasswordOAuthFlow struct {
	TokenURL   string            `json:"tokenUrl"`
	RefreshURL string            `json:"refreshUrl,omitzero"`
	Scopes     map[string]string `json:"scopes"`
}

// Validate implements Validator.
func (f *PasswordOAuthFlow) Validate() error {
	if err := ValidateURL(f.TokenURL); err != nil {
		return fmt.Errorf("invalid token URL: %w", err)
	}
	return validateFlowTail(f.RefreshURL, f.Scopes)
}

// validateFlowTail checks the optional refresh URL and the scope map shared by all flows.
// Scopes are visited in sorted order so the reported violation is stable.
func validateFlowTail(refreshURL string, scopes map[string]string) error {
	if refreshURL != "" {
		if err := ValidateURL(refreshURL); err != nil {
			return fmt.Errorf("invalid refresh URL: %w", err)
		}
	}
	if len(scopes) == 0 {
		return invalidf("OAuth2 flow must define at least one scope")
	}

	for _, name := range slices.Sorted(maps.Keys(scopes)) {
		switch {
		case name == "":
			return invalidf("OAuth2 scope name cannot be empty")
		case scopes[name] == "":
			return invalidf("OAuth2 scope description cannot be empty")
		case strings.Contains(name, " "):
			return invalidf("OAuth2 scope names cannot contain spaces")
		}
	}

	return nil
}

// OpenIDConnectSecurityScheme defines authentication through an OpenID Connect provider.
type OpenIDConnectSecurityScheme struct {
	Type             string `json:"type"`
	OpenIDConnectURL string `json:"openIdConnectUrl"`
	Description      string `json:"description,omitzero"`
}

// NewOpenIDConnectSecurityScheme returns an OpenID Connect scheme discovered at url.
func NewOpenIDConnectSecurityScheme(url string) *OpenIDConnectSecurityScheme {
	return &OpenIDConnectSecurityScheme{Type: SchemeTypeOpenIDConnect, OpenIDConnectURL: url}
}

func (*OpenIDConnectSecurityScheme) SchemeType() string            { return SchemeTypeOpenIDConnect }
func (*OpenIDConnectSecurityScheme) RequiresUserInteraction() bool { return true }
func (*OpenIDConnectSecurityScheme) isSecurityScheme()             {}

// Validate implements Validator.
func (s *OpenIDConnectSecurityScheme) Validate() error {
	if s.Type != SchemeTypeOpenIDConnect {
		return invalidf("OpenID Connect security scheme type must be 'openIdConnect'")
	}
	if err := ValidateURL(s.OpenIDConnectURL); err != nil {
		return fmt.Errorf("invalid OpenID Connect URL: %w", err)
	}
	if !strings.HasPrefix(s.OpenIDConnectURL, "https://") {
		return invalidf("OpenID Connect URL must use HTTPS")
	}
	if !strings.Contains(s.OpenIDConnectURL, "/.well-known/openid_configuration") &&
		!strings.Contains(s.OpenIDConnectURL, "/.well-known/openid-configuration") {
		return invalidf("OpenID Connect URL should point to a well-known configuration endpoint")
	}

	return validateDescription("Security scheme", s.Description, maxSchemeDescriptionLen)
}

// ProviderBaseURL returns the discovery URL up to, but excluding, "/.well-known/".
// The URL is returned unchanged when it has no such segment.
func (s *OpenIDConnectSecurityScheme) ProviderBaseURL() string {
	if base, _, ok := strings.Cut(s.OpenIDConnectURL, "/.well-known/"); ok {
		return base
	}
	return s.OpenIDConnectURL
}

// UnmarshalSecurityScheme decodes a security scheme, selecting the variant by its "type" member.
func UnmarshalSecurityScheme(data []byte) (SecurityScheme, error) {
	typ, ok, err := discriminator(data, "type")
	if err != nil {
		return nil, &DecodeError{Type: "SecurityScheme", Err: err}
	}
	if !ok {
		return nil, &DecodeError{Type: "SecurityScheme", Err: fmt.Errorf("missing field type")}
	}

	var (
		s        SecurityScheme
		required []string
	)
	switch typ {
	case SchemeTypeAPIKey:
		s, required = new(APIKeySecurityScheme), []string{"in", "name"}
	case SchemeTypeHTTP:
		s, required = new(HTTPAuthSecurityScheme), []string{"scheme"}
	case SchemeTypeOAuth2:
		s, required = new(OAuth2SecurityScheme), []string{"flows"}
	case SchemeTypeOpenIDConnect:
		s, required = new(OpenIDConnectSecurityScheme), []string{"openIdConnectUrl"}
	default:
		return nil, &DecodeError{Type: "SecurityScheme", Err: fmt.Errorf("unknown security scheme type %q", typ)}
	}
	if err := requireMembers(data, typ, required...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, &DecodeError{Type: typ, Err: err}
	}

	return s, nil
}

// SecuritySchemes maps scheme names, as referenced by security requirements, to schemes.
type SecuritySchemes map[string]SecurityScheme

// UnmarshalJSON implements json.Unmarshaler.
func (ss *SecuritySchemes) UnmarshalJSON(data []byte) error {
	var raws map[string]jsontext.Value
	if err := json.Unmarshal(data, &raws); err != nil {
		return &DecodeError{Type: "SecuritySchemes", Err: err}
	}

	out := make(SecuritySchemes, len(raws))
	for name, raw := range raws {
		s, err := UnmarshalSecurityScheme(raw)
		if err != nil {
			return fmt.Errorf("security scheme %q: %w", name, err)
		}
		out[name] = s
	}

	*ss = out
	return nil
}

// Validate checks every scheme in name order and reports the first violation.
func (ss SecuritySchemes) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(ss)) {
		s := ss[name]
		if s == nil {
			return invalidf("security scheme %q cannot be null", name)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("security scheme %q: %w", name, err)
		}
	}
	return nil
}
