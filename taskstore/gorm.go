// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"
	"gorm.io/gorm"

	"github.com/go-a2a/a2a-types"
)

// DefaultTableName is the table used by DBStore when none is configured.
const DefaultTableName = "a2a_tasks"

// jsonColumn stores a value of type T as a JSON document in a single column.
type jsonColumn[T any] struct {
	V T
}

// Value implements the driver.Valuer interface for database storage.
func (c jsonColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(c.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database retrieval.
func (c *jsonColumn[T]) Scan(value any) error {
	var zero T
	c.V = zero

	var b []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into a JSON column", value)
	}
	if err := json.Unmarshal(b, &c.V); err != nil {
		return fmt.Errorf("cannot unmarshal JSON column: %w", err)
	}
	return nil
}

// taskRecord is the row layout of a persisted task. State is duplicated out
// of Status so that it can be filtered and indexed.
type taskRecord struct {
	ID            string                       `gorm:"primaryKey;size:255"`
	ContextID     string                       `gorm:"size:255;not null;index"`
	State         string                       `gorm:"size:32;not null;index"`
	Status        jsonColumn[a2a.TaskStatus]   `gorm:"type:text;not null"`
	Artifacts     jsonColumn[[]*a2a.Artifact]  `gorm:"type:text"`
	History       jsonColumn[[]*a2a.Message]   `gorm:"type:text"`
	StatusHistory jsonColumn[[]a2a.TaskStatus] `gorm:"type:text"`
	Metadata      jsonColumn[map[string]any]   `gorm:"type:text"`
	Result        jsonColumn[any]              `gorm:"type:text"`
	Error         jsonColumn[*a2a.ErrorObject] `gorm:"type:text"`
	Created       string                       `gorm:"column:created_at;size:64"`
	Updated       string                       `gorm:"column:updated_at;size:64"`
}

func newTaskRecord(t *a2a.Task) *taskRecord {
	return &taskRecord{
		ID:            t.ID,
		ContextID:     t.ContextID,
		State:         string(t.Status.State),
		Status:        jsonColumn[a2a.TaskStatus]{t.Status},
		Artifacts:     jsonColumn[[]*a2a.Artifact]{t.Artifacts},
		History:       jsonColumn[[]*a2a.Message]{t.History},
		StatusHistory: jsonColumn[[]a2a.TaskStatus]{t.StatusHistory},
		Metadata:      jsonColumn[map[string]any]{t.Metadata},
		Result:        jsonColumn[any]{t.Result},
		Error:         jsonColumn[*a2a.ErrorObject]{t.Error},
		Created:       t.CreatedAt,
		Updated:       t.UpdatedAt,
	}
}

func (r *taskRecord) task() *a2a.Task {
	return &a2a.Task{
		ID:            r.ID,
		ContextID:     r.ContextID,
		Status:        r.Status.V,
		Artifacts:     r.Artifacts.V,
		History:       r.History.V,
		StatusHistory: r.StatusHistory.V,
		Metadata:      r.Metadata.V,
		Result:        r.Result.V,
		Error:         r.Error.V,
		CreatedAt:     r.Created,
		UpdatedAt:     r.Updated,
	}
}

// DBConfig holds configuration for DBStore.
type DBConfig struct {
	DB          *gorm.DB
	TableName   string // Optional, defaults to DefaultTableName
	CreateTable bool   // Whether Initialize creates the table
}

// DBStore is a database implementation of Store using GORM.
type DBStore struct {
	db          *gorm.DB
	table       string
	createTable bool
	opts        options
}

var _ Store = (*DBStore)(nil)

// NewDBStore creates a new DBStore.
func NewDBStore(cfg DBConfig, opts ...Option) (*DBStore, error) {
	if cfg.DB == nil {
		return nil, errors.New("database connection cannot be nil")
	}

	table := cfg.TableName
	if table == "" {
		table = DefaultTableName
	}

	return &DBStore{
		db:          cfg.DB,
		table:       table,
		createTable: cfg.CreateTable,
		opts:        newOptions(opts),
	}, nil
}

func (s *DBStore) tasks(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table)
}

// Initialize creates or migrates the task table when the store was configured
// with CreateTable.
func (s *DBStore) Initialize(ctx context.Context) error {
	if !s.createTable {
		return nil
	}
	if err := s.tasks(ctx).AutoMigrate(&taskRecord{}); err != nil {
		return &StoreError{Op: "initialize", Err: err}
	}
	return nil
}

// Save implements [Store]. The stored state is read and replaced in one
// transaction.
func (s *DBStore) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return ErrNilTask
	}

	return s.transaction(ctx, func(tx *DBStore) error {
		stored, err := tx.stored(ctx, task.ID)
		if err != nil {
			return err
		}
		if err := checkSave(stored, task); err != nil {
			return err
		}
		if err := tx.tasks(ctx).Save(newTaskRecord(task)).Error; err != nil {
			return &StoreError{Op: "save", TaskID: task.ID, Err: err}
		}
		if stored != nil {
			logTransition(ctx, s.opts.logger, task.ID, stored.Status.State, task.Status.State)
		}
		return nil
	})
}

// stored returns the task stored under taskID, or nil when there is none.
func (s *DBStore) stored(ctx context.Context, taskID string) (*a2a.Task, error) {
	var rec taskRecord
	err := s.tasks(ctx).Where("id = ?", taskID).Take(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, &StoreError{Op: "save", TaskID: taskID, Err: err}
	}
	return rec.task(), nil
}

// Get implements [Store].
func (s *DBStore) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	if err := a2a.ValidateTaskID(taskID); err != nil {
		return nil, &StoreError{Op: "get", TaskID: taskID, Err: err}
	}

	var rec taskRecord
	if err := s.tasks(ctx).Where("id = ?", taskID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(taskID)
		}
		return nil, &StoreError{Op: "get", TaskID: taskID, Err: err}
	}
	return rec.task(), nil
}

// UpdateStatus implements [Store].
func (s *DBStore) UpdateStatus(ctx context.Context, taskID string, to a2a.TaskState, msg *a2a.Message) (*a2a.Task, error) {
	var next *a2a.Task
	err := s.transaction(ctx, func(tx *DBStore) error {
		task, err := tx.Get(ctx, taskID)
		if err != nil {
			return err
		}
		if next, err = task.Transition(to, msg, s.opts.now()); err != nil {
			return &StoreError{Op: "update_status", TaskID: taskID, Err: err}
		}
		if err := tx.tasks(ctx).Save(newTaskRecord(next)).Error; err != nil {
			return &StoreError{Op: "update_status", TaskID: taskID, Err: err}
		}
		logTransition(ctx, s.opts.logger, taskID, task.Status.State, to)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Delete implements [Store].
func (s *DBStore) Delete(ctx context.Context, taskID string) error {
	result := s.tasks(ctx).Where("id = ?", taskID).Delete(&taskRecord{})
	if result.Error != nil {
		return &StoreError{Op: "delete", TaskID: taskID, Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return notFound(taskID)
	}
	return nil
}

func (s *DBStore) filter(ctx context.Context, f Filter) *gorm.DB {
	db := s.tasks(ctx)
	if f.ContextID != "" {
		db = db.Where("context_id = ?", f.ContextID)
	}
	if f.State != "" {
		db = db.Where("state = ?", string(f.State))
	}
	return db
}

// List implements [Store].
func (s *DBStore) List(ctx context.Context, f Filter, limit, offset int) ([]*a2a.Task, error) {
	db := s.filter(ctx, f).Order("id")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}

	var recs []taskRecord
	if err := db.Find(&recs).Error; err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}

	tasks := make([]*a2a.Task, len(recs))
	for i := range recs {
		tasks[i] = recs[i].task()
	}
	return tasks, nil
}

// Count implements [Store].
func (s *DBStore) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	if err := s.filter(ctx, f).Count(&n).Error; err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return n, nil
}

// Close implements [Store]. The connection pool belongs to the caller and is
// left open.
func (s *DBStore) Close(ctx context.Context) error {
	return nil
}

// Transaction executes fn within a database transaction. The Store passed to
// fn shares the transaction.
func (s *DBStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.transaction(ctx, func(tx *DBStore) error {
		return fn(tx)
	})
}

func (s *DBStore) transaction(ctx context.Context, fn func(*DBStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DBStore{
			db:          tx,
			table:       s.table,
			createTable: s.createTable,
			opts:        s.opts,
		})
	})
}
