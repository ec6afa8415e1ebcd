package database

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// NormalizeDriver maps the configured driver name to a registered driver.
func NormalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "pgx", "postgres", "postgresql":
		return DriverPostgres, nil
	}
	return "", errors.Errorf("unsupported database driver %q", driver)
}

// Open connects to the configured store and verifies the connection.
func Open(driver, dsn string) (*sql.DB, error) {
	driver, err := NormalizeDriver(driver)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", driver)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s database", driver)
	}
	return db, nil
}

// sqliteDSN adds a busy timeout so concurrent writers wait on the file lock
// instead of failing immediately.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_busy_timeout=5000"
}

// Migrate creates the schema when absent and seeds the catalog tables that are
// still empty. It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB, driver string, log *zap.Logger) error {
	driver, err := NormalizeDriver(driver)
	if err != nil {
		return err
	}

	for _, stmt := range schema(driver) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "create schema")
		}
	}

	for _, s := range seeds() {
		inserted, err := s.apply(ctx, db)
		if err != nil {
			return errors.Wrapf(err, "seed %s", s.table)
		}
		if inserted > 0 {
			log.Info("seeded table", zap.String("table", s.table), zap.Int("rows", inserted))
		}
	}
	return nil
}

func schema(driver string) []string {
	ts := "DATETIME"
	if driver == DriverPostgres {
		ts = "TIMESTAMPTZ"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price TEXT,
			image_url TEXT,
			category TEXT,
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			image_url TEXT,
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			message TEXT,
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			tag TEXT,
			icon_name TEXT,
			image_url TEXT,
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}
