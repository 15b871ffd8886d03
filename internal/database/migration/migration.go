package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Execer is satisfied by *sql.DB, *sql.Conn and database.Session.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type migrationStep struct {
	Name string
	SQL  string
}

// Every step must be idempotent; EnsureSchema runs them all on each startup.
var steps = []migrationStep{
	{
		Name: "create_table_entries",
		SQL: `CREATE TABLE IF NOT EXISTS entries (
  id      SERIAL       PRIMARY KEY,
  content VARCHAR(255) NOT NULL
);`,
	},
}

// EnsureSchema creates the entries table when it does not exist yet.
func EnsureSchema(ctx context.Context, db Execer, log *charmlog.Logger) error {
	start := time.Now()
	log = log.With("component", "database")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
