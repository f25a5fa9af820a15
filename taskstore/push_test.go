// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-a2a/a2a-types"
)

func pushStores() map[string]func(t *testing.T) PushConfigStore {
	return map[string]func(t *testing.T) PushConfigStore{
		"memory": func(t *testing.T) PushConfigStore {
			return NewMemoryPushConfigStore()
		},
		"gorm": func(t *testing.T) PushConfigStore {
			s, err := NewDBPushConfigStore(DBConfig{DB: openTestDB(t), CreateTable: true})
			if err != nil {
				t.Fatalf("NewDBPushConfigStore() error = %v", err)
			}
			if err := s.Initialize(t.Context()); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			return s
		},
	}
}

func TestPushConfigStore(t *testing.T) {
	t.Parallel()

	for name, newStore := range pushStores() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := t.Context()
			s := newStore(t)

			unnamed := &a2a.TaskPushNotificationConfig{
				TaskID: "task-1",
				PushNotificationConfig: a2a.PushNotificationConfig{
					URL:            "https://client.example.com/hook",
					Authentication: &a2a.PushNotificationAuthenticationInfo{Schemes: []string{"basic"}, Credentials: "dXNlcjpwYXNz"},
				},
			}
			got, err := s.Set(ctx, unnamed)
			if err != nil {
				t.Fatalf("Set(unnamed) error = %v", err)
			}
			if got.PushNotificationConfig.ID != "task-1" {
				t.Errorf("Set(unnamed) ID = %q, want the task ID", got.PushNotificationConfig.ID)
			}
			if unnamed.PushNotificationConfig.ID != "" {
				t.Error("Set() modified its argument")
			}

			named := &a2a.TaskPushNotificationConfig{
				TaskID:                 "task-1",
				PushNotificationConfig: a2a.PushNotificationConfig{ID: "audit", URL: "https://audit.example.com/hook"},
			}
			if _, err := s.Set(ctx, named); err != nil {
				t.Fatalf("Set(named) error = %v", err)
			}

			gotDefault, err := s.Get(ctx, "task-1", "")
			if err != nil {
				t.Fatalf("Get(default) error = %v", err)
			}
			if diff := cmp.Diff(gotDefault, got); diff != "" {
				t.Errorf("Get(default) mismatch (-got +want):\n%s", diff)
			}

			list, err := s.List(ctx, "task-1")
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if diff := cmp.Diff(list, []*a2a.TaskPushNotificationConfig{named, got}, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("List() mismatch (-got +want):\n%s", diff)
			}

			replaced := &a2a.TaskPushNotificationConfig{
				TaskID:                 "task-1",
				PushNotificationConfig: a2a.PushNotificationConfig{ID: "audit", URL: "https://audit.example.com/v2"},
			}
			if _, err := s.Set(ctx, replaced); err != nil {
				t.Fatalf("Set(replaced) error = %v", err)
			}
			gotAudit, err := s.Get(ctx, "task-1", "audit")
			if err != nil {
				t.Fatalf("Get(audit) error = %v", err)
			}
			if gotAudit.PushNotificationConfig.URL != "https://audit.example.com/v2" {
				t.Errorf("Get(audit) URL = %q, want the replaced one", gotAudit.PushNotificationConfig.URL)
			}

			if err := s.Delete(ctx, "task-1", "audit"); err != nil {
				t.Fatalf("Delete(audit) error = %v", err)
			}
			if err := s.Delete(ctx, "task-1", "audit"); !IsNotFound(err) {
				t.Errorf("Delete(audit) twice error = %v, want not found", err)
			}
			if _, err := s.Get(ctx, "task-2", ""); !IsNotFound(err) {
				t.Errorf("Get(other task) error = %v, want not found", err)
			}

			empty, err := s.List(ctx, "task-2")
			if err != nil {
				t.Fatalf("List(other task) error = %v", err)
			}
			if empty == nil || len(empty) != 0 {
				t.Errorf("List(other task) = %v, want empty non-nil slice", empty)
			}
		})
	}
}

func TestPushConfigStoreSetRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg     *a2a.TaskPushNotificationConfig
		wantNil bool
	}{
		"nil config": {wantNil: true},
		"missing task id": {
			cfg: &a2a.TaskPushNotificationConfig{PushNotificationConfig: a2a.PushNotificationConfig{URL: "https://client.example.com/hook"}},
		},
		"bad url": {
			cfg: &a2a.TaskPushNotificationConfig{TaskID: "task-1", PushNotificationConfig: a2a.PushNotificationConfig{URL: "ftp://client.example.com"}},
		},
		"malformed bearer jwt": {
			cfg: &a2a.TaskPushNotificationConfig{
				TaskID: "task-1",
				PushNotificationConfig: a2a.PushNotificationConfig{
					URL:            "https://client.example.com/hook",
					Authentication: &a2a.PushNotificationAuthenticationInfo{Schemes: []string{"Bearer"}, Credentials: "not.a.jwt"},
				},
			},
		},
	}

	for storeName, newStore := range pushStores() {
		for name, tt := range tests {
			t.Run(storeName+"/"+name, func(t *testing.T) {
				t.Parallel()

				_, err := newStore(t).Set(t.Context(), tt.cfg)
				if tt.wantNil {
					if !errors.Is(err, ErrNilConfig) {
						t.Errorf("Set(nil) error = %v, want %v", err, ErrNilConfig)
					}
					return
				}
				var ve *a2a.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("Set() error = %v, want *a2a.ValidationError", err)
				}
			})
		}
	}
}
