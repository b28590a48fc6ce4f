// Package testhelper provides a migrated PostgreSQL database and seed
// helpers for repository and service integration tests.
package testhelper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/quizforge-backend/migrations"
)

// DSNEnv points the integration tests at an existing database instead of
// a throwaway container. Migrations are still applied to it.
const DSNEnv = "TEST_DATABASE_DSN"

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupTestDB returns a pool on a migrated database shared by the whole
// test run. The pool is closed via t.Cleanup. Tests run in parallel against
// the same schema, so each one seeds its own accounts.
// Skipped under -short.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: integration test skipped in -short mode")
	}

	once.Do(func() {
		sharedDSN, initErr = prepare()
	})
	if initErr != nil {
		t.Fatalf("testhelper: setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(sharedDSN)
	if err != nil {
		t.Fatalf("testhelper: parse DSN: %v", err)
	}
	cfg.MaxConns = 4
	cfg.ConnConfig.RuntimeParams["application_name"] = "quizforge-test:" + t.Name()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("testhelper: create pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func prepare() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		var err error
		if dsn, err = startContainer(ctx); err != nil {
			return "", err
		}
	}

	if err := migrate(ctx, dsn); err != nil {
		return "", err
	}
	return dsn, nil
}

// startContainer runs postgres:17-alpine; the container lives until the
// test process exits.
func startContainer(ctx context.Context) (string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "quizforge",
				"POSTGRES_PASSWORD": "quizforge",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}

	return fmt.Sprintf("postgres://quizforge:quizforge@%s:%s/testdb?sslmode=disable", host, port.Port()), nil
}

// migrate applies every pending migration. goose needs a *sql.DB, hence the
// pgx stdlib driver.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", redactDSN(dsn), err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// redactDSN keeps host and database but drops credentials from error text.
func redactDSN(dsn string) string {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return "<invalid dsn>"
	}
	return fmt.Sprintf("%s:%d/%s", cfg.ConnConfig.Host, cfg.ConnConfig.Port, cfg.ConnConfig.Database)
}
