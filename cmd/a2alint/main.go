// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command a2alint decodes and validates A2A protocol documents.
//
// Usage:
//
//	a2alint check card.json task.yaml
//	a2alint check --type request - < request.json
//	a2alint transition completed working
//	a2alint schema agent-card
//	a2alint replay --db tasks.db stream.jsonl
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/go-a2a/a2a-types"
	"github.com/go-a2a/a2a-types/internal/logging"
	"github.com/go-a2a/a2a-types/taskstore"
)

// CLI defines the command-line interface.
type CLI struct {
	Check      CheckCmd      `cmd:"" help:"Decode and validate A2A documents."`
	Transition TransitionCmd `cmd:"" help:"Check a task state transition."`
	Schema     SchemaCmd     `cmd:"" help:"Print the JSON Schema of a document type."`
	Replay     ReplayCmd     `cmd:"" help:"Apply a recorded event stream to a task store."`
	Version    VersionCmd    `cmd:"" help:"Show version information."`

	LogLevel  string         `help:"Log level (debug, info, warn, error)." default:"warn" env:"A2ALINT_LOG_LEVEL"`
	LogFormat logging.Format `help:"Log format (text, json)." default:"text" enum:"text,json" env:"A2ALINT_LOG_FORMAT"`
}

// env is bound into every command's Run method.
type env struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Fprintf(e.stdout, "a2alint %s (A2A protocol %s)\n", version, a2a.ProtocolVersion)
	return nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("a2alint"),
		kong.Description("Decode and validate A2A protocol documents."),
		kong.UsageOnError(),
		kong.Vars{
			"types": documentTypes,
			"table": taskstore.DefaultTableName,
		},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "a2alint: %v\n", err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "a2alint: error: %v\n", err)
		return 2
	}

	logger, err := logging.New(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "a2alint: %v\n", err)
		return 2
	}

	e := &env{ctx: ctx, stdin: stdin, stdout: stdout, logger: logger}
	if err := kctx.Run(e); err != nil {
		fmt.Fprintf(stderr, "a2alint: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
