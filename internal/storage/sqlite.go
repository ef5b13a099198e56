package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one row of the kv_entries table.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     []byte
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// SQLite stores the blob in a local database file through gorm.
type SQLite struct {
	db  *gorm.DB
	key string
}

func NewSQLite(db *gorm.DB, key string) *SQLite {
	if key == "" {
		key = DefaultKey
	}
	return &SQLite{db: db, key: key}
}

func (s *SQLite) Read(ctx context.Context) ([]byte, bool, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where(&KVEntry{Key: s.key}).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("sqlite read %q: %w", s.key, err)
	}
	return entry.Value, true, nil
}

func (s *SQLite) Write(ctx context.Context, data []byte) error {
	entry := KVEntry{Key: s.key, Value: data, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("sqlite write %q: %w", s.key, err)
	}
	return nil
}
