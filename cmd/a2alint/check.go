// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/a2a-types"
	"github.com/go-a2a/a2a-types/schema"
)

// documentTypes lists the keys of checkers for flag help and validation.
const documentTypes = "agent-card,task,message,artifact,push-config,event,request,response,error"

// checkers decode and validate one document type each.
var checkers = map[string]func(data []byte) error{
	"agent-card":  decodeAndValidate[a2a.AgentCard, *a2a.AgentCard],
	"task":        decodeAndValidate[a2a.Task, *a2a.Task],
	"message":     decodeAndValidate[a2a.Message, *a2a.Message],
	"artifact":    decodeAndValidate[a2a.Artifact, *a2a.Artifact],
	"push-config": decodeAndValidate[a2a.TaskPushNotificationConfig, *a2a.TaskPushNotificationConfig],
	"event":       checkEvent,
	"request":     checkRequest,
	"response":    checkResponse,
	"error":       checkError,
}

func decodeAndValidate[T any, PT interface {
	*T
	a2a.Validator
}](data []byte) error {
	v := PT(new(T))
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	return v.Validate()
}

func validate(v any) error {
	if v, ok := v.(a2a.Validator); ok {
		return v.Validate()
	}
	return nil
}

func checkEvent(data []byte) error {
	ev, err := a2a.UnmarshalEvent(data)
	if err != nil {
		return err
	}
	return validate(ev)
}

func checkRequest(data []byte) error {
	req, perr := a2a.ParseRequest(data)
	if perr != nil {
		return perr
	}
	return validate(req.RequestParams())
}

// checkResponse accepts error responses and responses whose result is a task,
// message or streaming event.
func checkResponse(data []byte) error {
	m, err := members(data)
	if err != nil {
		return err
	}
	if _, ok := m["error"]; ok {
		var r a2a.ErrorResponse
		return json.Unmarshal(data, &r)
	}

	var r a2a.SendStreamingMessageResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	return validate(r.Result)
}

func checkError(data []byte) error {
	_, err := a2a.UnmarshalError(data)
	return err
}

// CheckCmd decodes and validates documents.
type CheckCmd struct {
	Type   string   `short:"t" help:"Document type (auto, ${types})." enum:"auto,${types}" default:"auto" env:"A2ALINT_TYPE"`
	Schema bool     `help:"Also validate agent cards against the JSON Schema." env:"A2ALINT_SCHEMA"`
	Files  []string `arg:"" name:"file" help:"Documents to check, - reads stdin. YAML files are converted to JSON."`
}

func (c *CheckCmd) Run(e *env) error {
	failed := 0
	for _, path := range c.Files {
		if !c.checkFile(e, path) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(c.Files))
	}
	return nil
}

func (c *CheckCmd) checkFile(e *env, path string) bool {
	data, err := readDocument(e.stdin, path)
	if err != nil {
		fmt.Fprintf(e.stdout, "%s: %v\n", path, err)
		return false
	}

	typ := c.Type
	if typ == "auto" {
		if typ, err = detectType(data); err != nil {
			fmt.Fprintf(e.stdout, "%s: %v\n", path, err)
			return false
		}
		e.logger.DebugContext(e.ctx, "detected document type", slog.String("file", path), slog.String("type", typ))
	}

	if err := checkers[typ](data); err != nil {
		fmt.Fprintf(e.stdout, "%s: %s: %v\n", path, typ, err)
		return false
	}

	if c.Schema && typ == "agent-card" {
		vs, err := schema.ValidateAgentCard(data)
		if err != nil {
			fmt.Fprintf(e.stdout, "%s: schema: %v\n", path, err)
			return false
		}
		for _, v := range vs {
			fmt.Fprintf(e.stdout, "%s: schema: %s\n", path, v)
		}
		if len(vs) > 0 {
			return false
		}
	}

	fmt.Fprintf(e.stdout, "%s: ok (%s)\n", path, typ)
	return true
}
