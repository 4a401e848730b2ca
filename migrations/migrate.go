// Package migrations embeds the build history schema for every supported
// dialect and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// ErrNilDB is returned when Migrate is called without a connection.
var ErrNilDB = errors.New("migration error: db is nil")

// dialect maps a store dialect to its goose dialect and migration dir.
type dialect struct {
	goose string
	dir   string
}

var dialects = map[string]dialect{
	"sqlite3":  {goose: "sqlite3", dir: "sqlite"},
	"postgres": {goose: "pgx", dir: "postgres"},
}

// goose keeps its dialect and base FS in package state.
var mu sync.Mutex

// Migrate applies every pending migration for dialectName ("sqlite3" or
// "postgres") to db.
func Migrate(db *sql.DB, dialectName string) error {
	if db == nil {
		return ErrNilDB
	}
	d, ok := dialects[dialectName]
	if !ok {
		return fmt.Errorf("migration error: unknown dialect %q", dialectName)
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
