// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

// PushNotificationConfig describes where and how an agent delivers task updates
// out of band.
type PushNotificationConfig struct {
	URL            string                              `json:"url"`
	ID             string                              `json:"id,omitzero"`
	Token          string                              `json:"token,omitzero"`
	Authentication *PushNotificationAuthenticationInfo `json:"authentication,omitzero"`
}

// PushNotificationAuthenticationInfo declares how the agent authenticates to the
// push notification endpoint.
type PushNotificationAuthenticationInfo struct {
	Schemes     []string `json:"schemes"`
	Credentials string   `json:"credentials,omitzero"`
}

// Validate checks the endpoint URL and authentication declaration.
//
// Bearer credentials shaped like a compact JWS must parse as a JWT. The
// signature is not verified: this is a structural check only.
func (c *PushNotificationConfig) Validate() error {
	if err := ValidateURL(c.URL); err != nil {
		return fmt.Errorf("push notification URL: %w", err)
	}
	if c.Authentication == nil {
		return nil
	}

	auth := c.Authentication
	if len(auth.Schemes) == 0 {
		return invalidf("push notification authentication must declare at least one scheme")
	}
	for _, scheme := range auth.Schemes {
		if scheme == "" {
			return invalidf("push notification authentication scheme cannot be empty")
		}
		if strings.EqualFold(scheme, "bearer") && looksLikeJWT(auth.Credentials) {
			if _, err := jwt.ParseInsecure([]byte(auth.Credentials)); err != nil {
				return invalidf("push notification bearer credentials are not a valid JWT: %v", err)
			}
		}
	}

	return nil
}

func looksLikeJWT(s string) bool {
	return s != "" && strings.Count(s, ".") == 2
}

// TaskPushNotificationConfig binds a push notification configuration to a task.
type TaskPushNotificationConfig struct {
	TaskID                 string                 `json:"taskId"`
	PushNotificationConfig PushNotificationConfig `json:"pushNotificationConfig"`
}

// Validate checks the task identifier and the configuration.
func (c *TaskPushNotificationConfig) Validate() error {
	if err := ValidateTaskID(c.TaskID); err != nil {
		return err
	}
	return c.PushNotificationConfig.Validate()
}
