package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_test_applications",
		SQL: `CREATE TABLE IF NOT EXISTS test_applications (
  id                 UUID        PRIMARY KEY,
  applicant_name     TEXT        NOT NULL,
  email              TEXT        NOT NULL,
  loan_amount        TEXT        NOT NULL,
  fields             JSONB       NOT NULL,
  documents_uploaded INTEGER     NOT NULL CHECK (documents_uploaded >= 0),
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_test_applications_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_test_applications_email ON test_applications (email);`,
	},
	{
		Name: "create_index_test_applications_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_test_applications_created_at ON test_applications (created_at);`,
	},
}

// EnsureMigrated creates the schema unless the test_applications table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"))

	var exists bool
	query := "SELECT to_regclass('public.test_applications') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", zap.String("reason", "schema already exists"))
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("step_duration", time.Since(stepStart)))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration", time.Since(stepStart)))
	}

	log.Info("db_migration_success", zap.Duration("duration", time.Since(start)))
	return nil
}
