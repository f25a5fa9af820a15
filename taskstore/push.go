// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"gorm.io/gorm"

	"github.com/go-a2a/a2a-types"
)

// PushConfigStore stores the push notification configurations registered for
// tasks. A task may hold several configurations told apart by their ID; a
// configuration saved without an ID is stored under the task ID.
type PushConfigStore interface {
	// Set validates cfg and stores it, replacing any configuration with the
	// same task and config ID. The stored configuration is returned.
	Set(ctx context.Context, cfg *a2a.TaskPushNotificationConfig) (*a2a.TaskPushNotificationConfig, error)

	// Get retrieves one configuration. An empty configID selects the
	// configuration stored under the task ID.
	Get(ctx context.Context, taskID, configID string) (*a2a.TaskPushNotificationConfig, error)

	// List returns every configuration of a task ordered by config ID.
	// It returns an empty slice when the task has none.
	List(ctx context.Context, taskID string) ([]*a2a.TaskPushNotificationConfig, error)

	// Delete removes one configuration. An empty configID selects the
	// configuration stored under the task ID.
	Delete(ctx context.Context, taskID, configID string) error
}

func prepareConfig(cfg *a2a.TaskPushNotificationConfig) (*a2a.TaskPushNotificationConfig, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, &StoreError{Op: "set_push_config", TaskID: cfg.TaskID, Err: err}
	}

	c := copyConfig(cfg)
	if c.PushNotificationConfig.ID == "" {
		c.PushNotificationConfig.ID = c.TaskID
	}
	return c, nil
}

func copyConfig(cfg *a2a.TaskPushNotificationConfig) *a2a.TaskPushNotificationConfig {
	c := *cfg
	if auth := cfg.PushNotificationConfig.Authentication; auth != nil {
		a := *auth
		a.Schemes = slices.Clone(auth.Schemes)
		c.PushNotificationConfig.Authentication = &a
	}
	return &c
}

func configID(taskID, id string) string {
	if id == "" {
		return taskID
	}
	return id
}

// MemoryPushConfigStore is an in-memory implementation of PushConfigStore.
type MemoryPushConfigStore struct {
	mu      sync.RWMutex
	configs map[string]map[string]*a2a.TaskPushNotificationConfig
}

var _ PushConfigStore = (*MemoryPushConfigStore)(nil)

// NewMemoryPushConfigStore creates a new MemoryPushConfigStore.
func NewMemoryPushConfigStore() *MemoryPushConfigStore {
	return &MemoryPushConfigStore{
		configs: make(map[string]map[string]*a2a.TaskPushNotificationConfig),
	}
}

// Set implements [PushConfigStore].
func (s *MemoryPushConfigStore) Set(ctx context.Context, cfg *a2a.TaskPushNotificationConfig) (*a2a.TaskPushNotificationConfig, error) {
	c, err := prepareConfig(cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.configs[c.TaskID]
	if !ok {
		byID = make(map[string]*a2a.TaskPushNotificationConfig)
		s.configs[c.TaskID] = byID
	}
	byID[c.PushNotificationConfig.ID] = c

	return copyConfig(c), nil
}

// Get implements [PushConfigStore].
func (s *MemoryPushConfigStore) Get(ctx context.Context, taskID, id string) (*a2a.TaskPushNotificationConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.configs[taskID][configID(taskID, id)]
	if !ok {
		return nil, notFound(taskID)
	}
	return copyConfig(c), nil
}

// List implements [PushConfigStore].
func (s *MemoryPushConfigStore) List(ctx context.Context, taskID string) ([]*a2a.TaskPushNotificationConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.configs[taskID]
	out := make([]*a2a.TaskPushNotificationConfig, 0, len(byID))
	for _, id := range slices.Sorted(maps.Keys(byID)) {
		out = append(out, copyConfig(byID[id]))
	}
	return out, nil
}

// Delete implements [PushConfigStore].
func (s *MemoryPushConfigStore) Delete(ctx context.Context, taskID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := s.configs[taskID]
	id = configID(taskID, id)
	if _, ok := byID[id]; !ok {
		return notFound(taskID)
	}
	delete(byID, id)
	if len(byID) == 0 {
		delete(s.configs, taskID)
	}
	return nil
}

// DefaultPushConfigTableName is the table used by DBPushConfigStore when none
// is configured.
const DefaultPushConfigTableName = "a2a_push_configs"

type pushConfigRecord struct {
	TaskID   string                                 `gorm:"primaryKey;size:255"`
	ConfigID string                                 `gorm:"primaryKey;size:255"`
	Config   jsonColumn[a2a.PushNotificationConfig] `gorm:"type:text;not null"`
}

func (r *pushConfigRecord) config() *a2a.TaskPushNotificationConfig {
	return &a2a.TaskPushNotificationConfig{TaskID: r.TaskID, PushNotificationConfig: r.Config.V}
}

// DBPushConfigStore is a database implementation of PushConfigStore using GORM.
type DBPushConfigStore struct {
	db          *gorm.DB
	table       string
	createTable bool
}

var _ PushConfigStore = (*DBPushConfigStore)(nil)

// NewDBPushConfigStore creates a new DBPushConfigStore. cfg.TableName defaults
// to DefaultPushConfigTableName.
func NewDBPushConfigStore(cfg DBConfig) (*DBPushConfigStore, error) {
	if cfg.DB == nil {
		return nil, errors.New("database connection cannot be nil")
	}

	table := cfg.TableName
	if table == "" {
		table = DefaultPushConfigTableName
	}
	return &DBPushConfigStore{db: cfg.DB, table: table, createTable: cfg.CreateTable}, nil
}

func (s *DBPushConfigStore) configs(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table)
}

// Initialize creates or migrates the configuration table when the store was
// configured with CreateTable.
func (s *DBPushConfigStore) Initialize(ctx context.Context) error {
	if !s.createTable {
		return nil
	}
	if err := s.configs(ctx).AutoMigrate(&pushConfigRecord{}); err != nil {
		return &StoreError{Op: "initialize", Err: err}
	}
	return nil
}

// Set implements [PushConfigStore].
func (s *DBPushConfigStore) Set(ctx context.Context, cfg *a2a.TaskPushNotificationConfig) (*a2a.TaskPushNotificationConfig, error) {
	c, err := prepareConfig(cfg)
	if err != nil {
		return nil, err
	}

	rec := &pushConfigRecord{
		TaskID:   c.TaskID,
		ConfigID: c.PushNotificationConfig.ID,
		Config:   jsonColumn[a2a.PushNotificationConfig]{c.PushNotificationConfig},
	}
	if err := s.configs(ctx).Save(rec).Error; err != nil {
		return nil, &StoreError{Op: "set_push_config", TaskID: c.TaskID, Err: err}
	}
	return c, nil
}

// Get implements [PushConfigStore].
func (s *DBPushConfigStore) Get(ctx context.Context, taskID, id string) (*a2a.TaskPushNotificationConfig, error) {
	var rec pushConfigRecord
	err := s.configs(ctx).
		Where("task_id = ? AND config_id = ?", taskID, configID(taskID, id)).
		Take(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound(taskID)
	case err != nil:
		return nil, &StoreError{Op: "get_push_config", TaskID: taskID, Err: err}
	}
	return rec.config(), nil
}

// List implements [PushConfigStore].
func (s *DBPushConfigStore) List(ctx context.Context, taskID string) ([]*a2a.TaskPushNotificationConfig, error) {
	var recs []pushConfigRecord
	if err := s.configs(ctx).Where("task_id = ?", taskID).Order("config_id").Find(&recs).Error; err != nil {
		return nil, &StoreError{Op: "list_push_configs", TaskID: taskID, Err: err}
	}

	out := make([]*a2a.TaskPushNotificationConfig, len(recs))
	for i := range recs {
		out[i] = recs[i].config()
	}
	return out, nil
}

// Delete implements [PushConfigStore].
func (s *DBPushConfigStore) Delete(ctx context.Context, taskID, id string) error {
	result := s.configs(ctx).
		Where("task_id = ? AND config_id = ?", taskID, configID(taskID, id)).
		Delete(&pushConfigRecord{})
	if result.Error != nil {
		return &StoreError{Op: "delete_push_config", TaskID: taskID, Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return notFound(taskID)
	}
	return nil
}
