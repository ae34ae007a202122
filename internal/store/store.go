// Package store contains the data access logic of the board service.
// It is transport-agnostic: operations take plain model structs and return
// plain model structs, leaving JSON encoding and status codes to the caller.
package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// ─── Store ───────────────────────────────────────────────────────────────────

// DB is the subset of pgxpool.Pool the store issues statements through.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store encapsulates all board data access. Every operation is one or two
// sequential statements; uniqueness and foreign-key races resolve at the
// database constraints and are translated to the error kinds in errors.go.
type Store struct {
	db         DB
	rdb        *redis.Client
	bcryptCost int
}

// New returns a configured Store. bcryptCost 0 selects the bcrypt default.
func New(db DB, rdb *redis.Client, bcryptCost int) *Store {
	return &Store{db: db, rdb: rdb, bcryptCost: bcryptCost}
}

// ─── Change events ───────────────────────────────────────────────────────────

// Redis channels mutations publish to. The payload "type" field matches the
// channel name.
const (
	eventCompanyChanged = "EVENT_COMPANY_CHANGED"
	eventJobChanged     = "EVENT_JOB_CHANGED"
)

// publish emits a change event. Failures are logged and never fail the
// operation that triggered them.
func (s *Store) publish(ctx context.Context, channel string, payload map[string]string) {
	event, _ := json.Marshal(payload)
	if err := s.rdb.Publish(ctx, channel, event).Err(); err != nil {
		slog.Warn("publish failed", "channel", channel, "err", err)
	}
}
