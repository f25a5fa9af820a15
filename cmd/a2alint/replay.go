// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/go-a2a/a2a-types"
	"github.com/go-a2a/a2a-types/taskstore"
)

// ReplayCmd applies a recorded event stream to a task store and prints the
// resulting tasks.
type ReplayCmd struct {
	File  string `arg:"" help:"Recorded stream: a JSON array or a sequence of JSON values, - reads stdin. Elements are events or JSON-RPC streaming responses."`
	DB    string `help:"SQLite database to persist tasks in. Tasks are kept in memory when empty." env:"A2ALINT_DB" type:"path"`
	Table string `help:"Task table name." default:"${table}" env:"A2ALINT_TABLE"`
}

func (c *ReplayCmd) Run(e *env) error {
	data, err := readDocument(e.stdin, c.File)
	if err != nil {
		return err
	}
	values, err := splitStream(data)
	if err != nil {
		return err
	}

	store, closeStore, err := c.openStore(e)
	if err != nil {
		return err
	}
	defer closeStore()

	var touched []string
	seen := make(map[string]bool)
	for i, raw := range values {
		ev, err := decodeStreamValue(raw)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		taskID, err := applyEvent(e.ctx, e.logger, store, ev)
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.EventKind(), err)
		}
		if taskID != "" && !seen[taskID] {
			seen[taskID] = true
			touched = append(touched, taskID)
		}
	}

	for _, id := range touched {
		task, err := store.Get(e.ctx, id)
		if err != nil {
			return err
		}
		b, err := json.Marshal(task, jsontext.WithIndent("  "))
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "%s\n", b)
	}
	return nil
}

func (c *ReplayCmd) openStore(e *env) (taskstore.Store, func(), error) {
	opts := []taskstore.Option{taskstore.WithLogger(e.logger)}
	if c.DB == "" {
		s := taskstore.NewMemoryStore(opts...)
		return s, func() { s.Close(e.ctx) }, nil
	}

	db, err := gorm.Open(sqlite.Open(c.DB), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	// SQLite allows one writer at a time.
	sqlDB.SetMaxOpenConns(1)

	s, err := taskstore.NewDBStore(taskstore.DBConfig{DB: db, TableName: c.Table, CreateTable: true}, opts...)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	if err := s.Initialize(e.ctx); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return s, func() { sqlDB.Close() }, nil
}

// splitStream returns the elements of a JSON array, or each value of a
// whitespace separated sequence of JSON values.
func splitStream(data []byte) ([]jsontext.Value, error) {
	if jsontext.Value(data).Kind() == '[' {
		var values []jsontext.Value
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, err
		}
		return values, nil
	}

	var values []jsontext.Value
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	for {
		v, err := dec.ReadValue()
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v.Clone())
	}
}

func decodeStreamValue(raw jsontext.Value) (a2a.Event, error) {
	m, err := members(raw)
	if err != nil {
		return nil, err
	}
	if _, ok := m["jsonrpc"]; !ok {
		return a2a.UnmarshalEvent(raw)
	}
	if _, ok := m["error"]; ok {
		var r a2a.ErrorResponse
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("stream reported an error: %w", r.Error)
	}

	var r a2a.SendStreamingMessageResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return r.Result, nil
}

// applyEvent folds ev into the stored task it refers to and returns that
// task's ID. Message events do not change task state and are skipped.
func applyEvent(ctx context.Context, l *slog.Logger, store taskstore.Store, ev a2a.Event) (string, error) {
	if err := validate(ev); err != nil {
		return "", err
	}

	switch ev := ev.(type) {
	case *a2a.Task:
		return ev.ID, store.Save(ctx, ev)

	case *a2a.TaskStatusUpdateEvent:
		task, err := store.Get(ctx, ev.TaskID)
		if err != nil {
			return "", err
		}
		var next *a2a.Task
		if ev.Status.State == task.Status.State {
			next = task.Clone()
			next.Status = ev.Status
		} else {
			now := time.Now()
			if ts := ev.Status.Timestamp; ts != "" {
				if now, err = a2a.ParseTimestamp(ts); err != nil {
					return "", err
				}
			}
			if next, err = task.Transition(ev.Status.State, ev.Status.Message, now); err != nil {
				return "", err
			}
		}
		return ev.TaskID, store.Save(ctx, next)

	case *a2a.TaskArtifactUpdateEvent:
		task, err := store.Get(ctx, ev.TaskID)
		if err != nil {
			return "", err
		}
		next, err := a2a.AppendArtifact(ctx, task, ev)
		if err != nil {
			return "", err
		}
		return ev.TaskID, store.Save(ctx, next)

	case *a2a.Message:
		l.DebugContext(ctx, "skipping message event", slog.String("message_id", ev.MessageID))
	}
	return "", nil
}
