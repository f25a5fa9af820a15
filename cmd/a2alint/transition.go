// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/go-a2a/a2a-types"
)

// TransitionCmd checks whether a task may move between two states. Without a
// target state it lists the states reachable from the source.
type TransitionCmd struct {
	From string `arg:"" help:"Current task state."`
	To   string `arg:"" optional:"" help:"Requested task state."`
}

func parseState(s string) (a2a.TaskState, error) {
	var state a2a.TaskState
	if err := state.UnmarshalText([]byte(s)); err != nil {
		return "", err
	}
	return state, nil
}

func formatStates(states []a2a.TaskState) string {
	if len(states) == 0 {
		return "none"
	}
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func (c *TransitionCmd) Run(e *env) error {
	from, err := parseState(c.From)
	if err != nil {
		return err
	}
	allowed := a2a.AllowedTransitions(from)

	if c.To == "" {
		fmt.Fprintf(e.stdout, "%s -> %s\n", from, formatStates(allowed))
		return nil
	}

	to, err := parseState(c.To)
	if err != nil {
		return err
	}
	if err := a2a.ValidateTransition(from, to); err != nil {
		if from.Terminal() {
			return fmt.Errorf("%w: %s is terminal", err, from)
		}
		return fmt.Errorf("%w: allowed targets are %s", err, formatStates(allowed))
	}
	fmt.Fprintf(e.stdout, "%s -> %s: allowed\n", from, to)
	return nil
}
