package store

import "errors"

var (
	// ErrHistoryDisabled is returned by [Open] when the DSN is [DisabledDSN].
	ErrHistoryDisabled = errors.New("build history is disabled")

	// ErrUnsupportedDialect is returned for a DSN scheme no driver is wired for.
	ErrUnsupportedDialect = errors.New("unsupported database dialect")

	// ErrBuildAlreadyExists is returned when a record with the same ID is
	// already stored.
	ErrBuildAlreadyExists = errors.New("build record already exists")

	// ErrBuildNotSaved is returned when an INSERT succeeds but affects no rows.
	ErrBuildNotSaved = errors.New("build record was not saved")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when reading a result row fails.
	ErrScanningRows = errors.New("failed to scan build rows")
)
