// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/menagerie/internal/config"
)

// PostgresContainer wraps a throwaway PostgreSQL container for tests.
type PostgresContainer struct {
	container *postgres.PostgresContainer
	Config    config.DatabaseConfig
}

// NewPostgresContainer starts a PostgreSQL container and returns its
// connection configuration. The container is terminated via t.Cleanup.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("menagerie_test"),
		postgres.WithUsername("menagerie"),
		postgres.WithPassword("menagerie"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("resolving container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("resolving container port: %v", err)
	}

	return &PostgresContainer{
		container: container,
		Config: config.DatabaseConfig{
			Host:            host,
			Port:            port.Int(),
			User:            "menagerie",
			Password:        "menagerie",
			Name:            "menagerie_test",
			SSLMode:         "disable",
			MaxConns:        5,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
		},
	}
}

// Schema holds the DDL applied before each integration test run. It mirrors
// the migrations in migrations/.
const Schema = `
CREATE TABLE IF NOT EXISTS players (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS player_progress (
	player_id UUID PRIMARY KEY REFERENCES players(id) ON DELETE CASCADE,
	story_flags TEXT[] NOT NULL DEFAULT '{}',
	level INTEGER NOT NULL DEFAULT 1 CHECK (level >= 1),
	inventory TEXT[] NOT NULL DEFAULT '{}',
	class TEXT NOT NULL DEFAULT '',
	defeated_bosses TEXT[] NOT NULL DEFAULT '{}',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// ApplyMigrations creates the service schema in the container database.
func ApplyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), Schema); err != nil {
		t.Fatalf("applying schema: %v", err)
	}
}
