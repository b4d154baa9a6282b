package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/DIMO-Network/shared/pkg/db"
	_ "github.com/lib/pq" // postgres driver
	"github.com/pressly/goose/v3"
)

// SchemaName is the name of the schema to use for the database.
const SchemaName = "maintenance_bot"

//go:embed *.sql
var baseFS embed.FS

var migrationLock sync.Mutex

// RunGoose runs the goose command with the provided arguments.
// args should be the command and the arguments to pass to goose.
// eg RunGoose(ctx, []string{"up", "-v"}, db).
func RunGoose(ctx context.Context, gooseArgs []string, settings db.Settings) error {
	if len(gooseArgs) == 0 {
		return errors.New("command not provided")
	}
	conn, err := Open(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	if _, err := conn.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+SchemaName+";"); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}

	migrationLock.Lock()
	defer migrationLock.Unlock()
	cmd := gooseArgs[0]
	args := gooseArgs[1:]
	setMigrations(baseFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	goose.SetTableName(SchemaName + ".migrations")
	if err := goose.RunContext(ctx, cmd, conn, ".", args...); err != nil {
		return fmt.Errorf("failed to run goose command: %w", err)
	}
	return nil
}

// Open connects to postgres and verifies the connection.
func Open(ctx context.Context, settings db.Settings) (*sql.DB, error) {
	conn, err := sql.Open("postgres", settings.BuildConnectionString(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return conn, nil
}

// setMigrations sets the migrations for the goose tool.
// this will reset the global migrations and FS to avoid any unwanted migrations registers.
func setMigrations(baseFS embed.FS) {
	goose.SetBaseFS(baseFS)
	goose.ResetGlobalMigrations()
}
