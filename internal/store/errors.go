package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoteNotFound is returned when a read, update or delete targets a
	// note id that does not exist.
	ErrNoteNotFound = errors.New("note not found")

	// ErrStore wraps every persistence failure that is not a missing note:
	// an unreachable or corrupt database, a constraint failure, or a busy
	// database after all retries.
	ErrStore = errors.New("vault store error")
)

// Low-level database operation errors. These are wrapped together with
// [ErrStore] when a SQL-level operation fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan note rows")
)
