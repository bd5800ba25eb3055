package model

import "time"

// KVEntry is a row of the key-value table used by the PostgreSQL store backend.
type KVEntry struct {
	Key       string `gorm:"primaryKey;type:varchar(128)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (kv_entries is already plural).
func (KVEntry) TableName() string { return "kv_entries" }
