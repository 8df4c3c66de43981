package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
)

// MigrationPath is relative to this package directory, which is the working directory under go test.
var MigrationPath = filepath.Join("..", "..", "..", "..", "migrations", "0001_clock_engine.sql")

// referenceSchema stands in for the organisation and rota tables the engine only reads.
const referenceSchema = `
CREATE TABLE IF NOT EXISTS users (
    id        UUID PRIMARY KEY,
    full_name TEXT,
    phone     TEXT
);

CREATE TABLE IF NOT EXISTS job_roles (
    id         UUID PRIMARY KEY,
    company_id UUID        NOT NULL,
    name       TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    deleted_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS shift_roles (
    id          UUID PRIMARY KEY,
    company_id  UUID        NOT NULL,
    job_role_id UUID        NOT NULL REFERENCES job_roles (id),
    name        TEXT        NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    deleted_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS provisional_shifts (
    id                  UUID PRIMARY KEY,
    company_id          UUID          NOT NULL,
    user_id             UUID          NOT NULL,
    shift_date          DATE          NOT NULL,
    start_time          TIME          NOT NULL,
    hours               NUMERIC(5, 2) NOT NULL,
    shift_leave_type_id UUID,
    job_role_id         UUID          NOT NULL,
    shift_role_id       UUID          NOT NULL,
    department_id       UUID,
    location_id         UUID
);
`

// TestDatabaseSetup owns the connection used by the repository integration tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL. ok is false when the variable is unset.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 10, MinConns: 1})
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// ApplySchema creates the reference tables and runs the engine migration. Both are idempotent.
func (t *TestDatabaseSetup) ApplySchema(ctx context.Context) error {
	if _, err := t.DB.Exec(ctx, referenceSchema); err != nil {
		return fmt.Errorf("failed to create reference tables: %w", err)
	}

	migration, err := os.ReadFile(MigrationPath)
	if err != nil {
		return fmt.Errorf("failed to read migration: %w", err)
	}
	if _, err := t.DB.Exec(ctx, string(migration)); err != nil {
		return fmt.Errorf("failed to apply migration: %w", err)
	}
	return nil
}

// TruncateAllTables removes every row the tests may have written.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"clock_session_corrections",
		"clock_sessions",
		"holiday_entitlements",
		"holiday_years",
		"attendance_settings",
		"provisional_shifts",
		"shift_roles",
		"job_roles",
		"users",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
