package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct{ db *gorm.DB }

// NewGormStore stores entries as rows of the kv_entries table.
func NewGormStore(db *gorm.DB) KVStore { return &gormStore{db: db} }

func (s *gormStore) Get(ctx context.Context, key string) (string, error) {
	var e model.KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *gormStore) Set(ctx context.Context, key, value string) error {
	e := model.KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KVEntry{}).Error
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
