package store_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hireloop/board-service/internal/store"
)

// newTestStore returns a Store wired to a pgxmock pool and a miniredis
// instance, plus the mock for setting statement expectations.
func newTestStore(t *testing.T) (*store.Store, pgxmock.PgxPoolIface) {
	st, mock, _ := newTestStoreWithRedis(t)
	return st, mock
}

// newTestStoreWithRedis additionally exposes the Redis client so tests can
// subscribe to the change-event channels.
func newTestStoreWithRedis(t *testing.T) (*store.Store, pgxmock.PgxPoolIface, *redis.Client) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return store.New(mock, rdb, bcrypt.MinCost), mock, rdb
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
