//go:build integration

package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/bokdeok/internal/storage"
)

func setupPostgres(t *testing.T) *storage.Postgres {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bokdeok_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := storage.OpenPostgres(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestPostgres_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgres_KV(t *testing.T) {
	exerciseKV(t, setupPostgres(t))
}

func TestPostgres_MigrationsIdempotent(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "scraps_1", `["1"]`))

	// Reapplying must not drop existing rows.
	require.NoError(t, s.Migrate(ctx))

	v, ok, err := s.Get(ctx, "scraps_1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `["1"]`, v)
}
