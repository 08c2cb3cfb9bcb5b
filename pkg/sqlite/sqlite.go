package sqlite

import (
	"context"
	"embed"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const (
	driverName   = "sqlite"
	migrationDir = "sqlite"
	// InMemory keeps the whole database inside a single connection.
	InMemory = ":memory:"
)

type DB struct {
	Path string `yaml:"path" envconfig:"SQLITE_PATH"`
}

// NewSQLiteDB opens the database file and applies the embedded migrations
// found under the "sqlite" directory of fs.
func NewSQLiteDB(ctx context.Context, cfg *DB, fs embed.FS) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "sqlx.Connect")
	}
	// sqlite serialises writers anyway, and an in-memory database
	// only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{`PRAGMA journal_mode=WAL;`, `PRAGMA foreign_keys=ON;`} {
		if _, err = db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errors.Wrap(err, pragma)
		}
	}

	goose.SetBaseFS(fs)
	if err = goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "goose.SetDialect")
	}
	if err = goose.Up(db.DB, migrationDir); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "goose.Up")
	}
	return db, nil
}
