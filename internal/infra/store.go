package infra

import (
	"context"
	"fmt"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/config"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/repository"

	"github.com/rs/zerolog/log"
)

// OpenStore connects the KV backend named by cfg.StoreDriver. The returned
// close func releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.KVStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		rdb, err := NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info().Msg("state store: redis")
		return repository.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil

	case config.StorePostgres:
		db, err := NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info().Msg("state store: postgres")
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewGormStore(db), closeFn, nil

	case config.StoreMemory:
		log.Warn().Msg("state store: memory, data is lost on restart")
		return repository.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
