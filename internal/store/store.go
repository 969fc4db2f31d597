package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"unitflow/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Logical keys mirroring the original localStorage layout.
const (
	logsKey   = "unitflow_logs_v1"
	authorKey = "unitflow_author_v1"
)

// Store persists the record list and the author preference as two
// string-valued entries in a device-local key-value table. It is the single
// owner of the record list; callers always read the full list and write the
// full list back.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&model.KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	return &Store{db: db}, nil
}

// LoadLogs returns the stored record list in insertion order. Absent or
// corrupt data reads as an empty list; storage problems are logged, never
// surfaced.
func (s *Store) LoadLogs(ctx context.Context) []model.LogRecord {
	raw, ok := s.get(ctx, logsKey)
	if !ok || raw == "" {
		return []model.LogRecord{}
	}
	var logs []model.LogRecord
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		slog.Warn("stored log list unreadable, treating as empty", "err", err)
		return []model.LogRecord{}
	}
	if logs == nil {
		logs = []model.LogRecord{}
	}
	return logs
}

// SaveLogs overwrites the entire persisted list.
func (s *Store) SaveLogs(ctx context.Context, logs []model.LogRecord) error {
	if logs == nil {
		logs = []model.LogRecord{}
	}
	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encode log list: %w", err)
	}
	return s.set(ctx, logsKey, string(data))
}

// LoadAuthor returns the saved author preference, empty if unset.
func (s *Store) LoadAuthor(ctx context.Context) string {
	raw, _ := s.get(ctx, authorKey)
	return raw
}

func (s *Store) SaveAuthor(ctx context.Context, name string) error {
	return s.set(ctx, authorKey, strings.TrimSpace(name))
}

// PurgeLogs removes the record list key, leaving the author preference
// untouched.
func (s *Store) PurgeLogs(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&model.KVEntry{}, "k = ?", logsKey).Error
	if err != nil {
		return fmt.Errorf("purge logs: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, bool) {
	var row model.KVEntry
	err := s.db.WithContext(ctx).Where("k = ?", key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return "", false
	}
	if err != nil {
		slog.Warn("kv read failed", "key", key, "err", err)
		return "", false
	}
	return row.Value, true
}

func (s *Store) set(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "k"}},
			DoUpdates: clause.AssignmentColumns([]string{"v"}),
		}).
		Create(&model.KVEntry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("kv write %s: %w", key, err)
	}
	return nil
}
