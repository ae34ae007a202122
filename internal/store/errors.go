package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// Sentinel errors returned by Store operations, wrapped with context at the
// call site. Callers match with errors.Is.
var (
	// ErrNotFound is returned when no row matches the given identifier.
	ErrNotFound = fmt.Errorf("not found")

	// ErrConflict is returned when an insert collides with a unique key.
	ErrConflict = fmt.Errorf("already exists")

	// ErrUnauthorized is returned on credential failures. The message is
	// deliberately uniform for unknown users and wrong passwords.
	ErrUnauthorized = fmt.Errorf("invalid credentials")
)

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// ─── Constraint decoding ─────────────────────────────────────────────────────

// Postgres error codes the store decodes into its own error kinds. Anything
// else propagates as an opaque failure.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
