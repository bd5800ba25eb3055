//go:build integration

package repository_test

// Backend tests against real Redis and PostgreSQL via testcontainers.
// Run with: go test -tags integration ./internal/repository/... -v

import (
	"context"
	"testing"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/infra"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/repository"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func redisStore(t *testing.T) repository.KVStore {
	t.Helper()
	ctx := context.Background()

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return repository.NewRedisStore(rdb)
}

func postgresStore(t *testing.T) repository.KVStore {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("soleerp_test"),
		tcPostgres.WithUsername("soleerp"),
		tcPostgres.WithPassword("soleerp"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)

	return repository.NewGormStore(db)
}

func exerciseStore(t *testing.T, store repository.KVStore) {
	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	_, err := store.Get(ctx, "soleerp_missing")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "soleerp_app_name", "SoleERP"))
	require.NoError(t, store.Set(ctx, "soleerp_app_name", "Sole Street"))
	v, err := store.Get(ctx, "soleerp_app_name")
	require.NoError(t, err)
	assert.Equal(t, "Sole Street", v, "second write overwrites the first")

	require.NoError(t, store.Delete(ctx, "soleerp_app_name"))
	_, err = store.Get(ctx, "soleerp_app_name")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	// Full state round trip through the entry mapping.
	repo := repository.NewStateRepository(store, repository.DefaultPrefix)
	st, err := repo.Reset(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Ledger.ApplyTransfer("p1", "wh", "dhk-1", 30))
	require.NoError(t, repo.Save(ctx, st, state.EntryStock))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 70, got.Ledger.Quantity("p1", "wh"))
	assert.Equal(t, 30, got.Ledger.Quantity("p1", "dhk-1"))
	assert.Len(t, got.Ledger.Sales, 2)
}

func TestRedisStore(t *testing.T) {
	exerciseStore(t, redisStore(t))
}

func TestGormStore(t *testing.T) {
	exerciseStore(t, postgresStore(t))
}
