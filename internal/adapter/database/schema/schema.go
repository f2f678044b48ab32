package schema

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"todolists/pkg/config"
)

//go:embed migrations
var migrations embed.FS

// Bootstrap creates the lists and todos tables when they are missing. It is
// safe to run on every start: an up-to-date schema is not an error, and the
// statements themselves only create what is absent.
//
// The migrate instance is never closed here because closing it would close db.
func Bootstrap(ctx context.Context, db *sql.DB, dialect string) error {
	source, err := iofs.New(migrations, "migrations/"+dialect)

	if err != nil {
		return fmt.Errorf("load %s migrations: %w", dialect, err)
	}

	var driver migratedb.Driver

	switch dialect {
	case config.DialectSQLite:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case config.DialectPostgres:
		conn, connErr := db.Conn(ctx)

		if connErr != nil {
			return fmt.Errorf("acquire migration connection: %w", connErr)
		}

		defer conn.Close()

		driver, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
	default:
		return fmt.Errorf("unknown database dialect %q", dialect)
	}

	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)

	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
