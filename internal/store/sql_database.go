package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/migrations"
)

// Dialect names the SQL flavour behind a [DB].
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

const (
	// DisabledDSN turns the build history off.
	DisabledDSN = "off"
	// HistoryFile is the default SQLite file inside the cache dir.
	HistoryFile = "history.db"
)

// DB is a database handle that knows its dialect.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Dialect returns the SQL flavour of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// StatementBuilder returns a squirrel builder with the dialect's placeholders.
func (db *DB) StatementBuilder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Classify reports whether err is worth retrying.
func (db *DB) Classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// DialectOf picks the dialect for dsn: postgres:// and postgresql:// URLs are
// PostgreSQL, everything else is a SQLite file path.
func DialectOf(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects to the history database and migrates it.
//
// An empty dsn means the SQLite file [HistoryFile] inside cacheDir, and
// [DisabledDSN] returns [ErrHistoryDisabled].
func Open(ctx context.Context, dsn, cacheDir string, log *logger.Logger) (*DB, error) {
	if strings.EqualFold(strings.TrimSpace(dsn), DisabledDSN) {
		return nil, ErrHistoryDisabled
	}

	var (
		db  *DB
		err error
	)
	switch DialectOf(dsn) {
	case DialectPostgres:
		db, err = NewConnectPostgres(ctx, dsn, log)
	default:
		if dsn == "" {
			dsn = filepath.Join(cacheDir, HistoryFile)
		}
		db, err = NewConnectSQLite(ctx, dsn, log)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "store.Open").Msg("error migrating history database")
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Repositories groups the repositories served by one connection.
type Repositories struct {
	BuildRepository BuildRepository
	db              *DB
}

// NewRepositories opens the database behind dsn and builds the repositories.
func NewRepositories(ctx context.Context, dsn, cacheDir string, log *logger.Logger) (*Repositories, error) {
	db, err := Open(ctx, dsn, cacheDir, log)
	if err != nil {
		return nil, fmt.Errorf("open build history: %w", err)
	}
	return &Repositories{
		BuildRepository: NewBuildRepository(db, log),
		db:              db,
	}, nil
}

// Close closes the underlying connection.
func (r *Repositories) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
