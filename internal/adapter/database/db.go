package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	"todolists/pkg/config"
)

type DB struct {
	*sql.DB
	Dialect      string
	QueryBuilder sq.StatementBuilderType
}

// Open connects to the relational store described by cfg. The driver is
// instrumented with otelsql; with LogStatements set every statement is also
// logged through zerolog.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	driverName, dsn, placeholder, err := driverFor(cfg)

	if err != nil {
		return nil, err
	}

	sqlDB, err := otelsql.Open(driverName, dsn,
		otelsql.WithDBSystem(cfg.Dialect),
		otelsql.WithDBName("todolists"),
	)

	if err != nil {
		return nil, classify(err)
	}

	if cfg.LogStatements {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logged := sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger))

		// only the instrumented driver is kept
		sqlDB.Close()
		sqlDB = logged
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return &DB{
		DB:           sqlDB,
		Dialect:      cfg.Dialect,
		QueryBuilder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

func driverFor(cfg config.DatabaseConfig) (string, string, sq.PlaceholderFormat, error) {
	switch cfg.Dialect {
	case config.DialectSQLite:
		return "sqlite3", sqliteDSN(cfg.Path), sq.Question, nil
	case config.DialectPostgres:
		return "pgx", cfg.URL, sq.Dollar, nil
	default:
		return "", "", nil, fmt.Errorf("unknown database dialect %q", cfg.Dialect)
	}
}

// sqliteDSN turns foreign keys on for every connection; ON DELETE CASCADE
// depends on it.
func sqliteDSN(path string) string {
	separator := "?"

	if strings.Contains(path, "?") {
		separator = "&"
	}

	return path + separator + "_foreign_keys=on&_busy_timeout=5000"
}
