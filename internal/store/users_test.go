package store_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hireloop/board-service/internal/model"
	"hireloop/board-service/internal/store"
)

var userCols = []string{"username", "first_name", "last_name", "email", "is_admin"}

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ── RegisterUser ───────────────────────────────────────────────────────────

func TestRegisterUser_HashesPasswordBeforeInsert(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", pgxmock.AnyArg(), "Alice", "Smith", "alice@example.com", false).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("alice", "Alice", "Smith", "alice@example.com", false))

	got, err := st.RegisterUser(context.Background(), model.NewUser{
		Username:  "alice",
		Password:  "secret",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Empty(t, got.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUser_RejectsInvalidEmail(t *testing.T) {
	st, mock := newTestStore(t)

	_, err := st.RegisterUser(context.Background(), model.NewUser{
		Username:  "alice",
		Password:  "secret",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "not-an-email",
	})

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUser_DuplicateUsernameIsConflict(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", pgxmock.AnyArg(), "Alice", "Smith", "alice@example.com", false).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

	_, err := st.RegisterUser(context.Background(), model.NewUser{
		Username:  "alice",
		Password:  "secret",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
	})
	assert.ErrorIs(t, err, store.ErrConflict)
}

// ── AuthenticateUser ───────────────────────────────────────────────────────

func TestAuthenticateUser_ValidCredentials(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("FROM users").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"username", "password_hash", "first_name", "last_name", "email", "is_admin"}).
			AddRow("alice", testHash(t, "secret"), "Alice", "Smith", "alice@example.com", true))

	got, err := st.AuthenticateUser(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
	assert.Empty(t, got.PasswordHash)
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("FROM users").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"username", "password_hash", "first_name", "last_name", "email", "is_admin"}).
			AddRow("alice", testHash(t, "secret"), "Alice", "Smith", "alice@example.com", false))

	_, err := st.AuthenticateUser(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, store.ErrUnauthorized)
}

func TestAuthenticateUser_UnknownUserSameError(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("FROM users").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := st.AuthenticateUser(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, store.ErrUnauthorized)
}

// ── ListUsers / GetUser ────────────────────────────────────────────────────

func TestListUsers(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("FROM users").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("alice", "Alice", "Smith", "alice@example.com", true).
			AddRow("bob", "Bob", "Jones", "bob@example.com", false))

	got, err := st.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Username)
}

func TestGetUser_IncludesApplications(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("FROM users").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("alice", "Alice", "Smith", "alice@example.com", false))

	mock.ExpectQuery("FROM applications").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"job_id"}).
			AddRow(int64(3)).
			AddRow(int64(7)))

	got, err := st.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, got.Applications)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NoApplicationsGivesEmptyList(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("FROM users").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("alice", "Alice", "Smith", "alice@example.com", false))

	mock.ExpectQuery("FROM applications").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"job_id"}))

	got, err := st.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, got.Applications)
	assert.Empty(t, got.Applications)
}

func TestGetUser_UnknownUsernameNotFound(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery("FROM users").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := st.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// ── UpdateUser ─────────────────────────────────────────────────────────────

func TestUpdateUser_RehashesNewPassword(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE users SET first_name = $1, password_hash = $2 WHERE username = $3")).
		WithArgs("Alicia", pgxmock.AnyArg(), "alice").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("alice", "Alicia", "Smith", "alice@example.com", false))

	got, err := st.UpdateUser(context.Background(), "alice", model.UserUpdate{
		FirstName: strPtr("Alicia"),
		Password:  strPtr("newsecret"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_EmptyPatchRejected(t *testing.T) {
	st, mock := newTestStore(t)

	_, err := st.UpdateUser(context.Background(), "alice", model.UserUpdate{})

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "no data to update", verr.Msg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── DeleteUser ─────────────────────────────────────────────────────────────

func TestDeleteUser_RemovesRow(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, st.DeleteUser(context.Background(), "alice"))
}

func TestDeleteUser_UnknownUsernameNotFound(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := st.DeleteUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// ── ApplyToJob ─────────────────────────────────────────────────────────────

func TestApplyToJob_RecordsApplication(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectExec("INSERT INTO applications").
		WithArgs("alice", int64(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.ApplyToJob(context.Background(), "alice", 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyToJob_TwiceIsConflict(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectExec("INSERT INTO applications").
		WithArgs("alice", int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "applications_pkey"})

	err := st.ApplyToJob(context.Background(), "alice", 7)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestApplyToJob_UnknownJobIsValidationError(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectExec("INSERT INTO applications").
		WithArgs("alice", int64(99)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "applications_job_id_fkey"})

	err := st.ApplyToJob(context.Background(), "alice", 99)

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "no such job: 99", verr.Msg)
}

func TestApplyToJob_UnknownUserIsValidationError(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectExec("INSERT INTO applications").
		WithArgs("ghost", int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "applications_username_fkey"})

	err := st.ApplyToJob(context.Background(), "ghost", 7)

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "no such user: ghost", verr.Msg)
}
