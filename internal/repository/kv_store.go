package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get for keys that were never written.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the flat string key-value contract every persistence backend
// implements. Services never see it; StateRepository maps it onto AppState.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
