package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"hireloop/board-service/internal/model"
)

// ─── User operations ─────────────────────────────────────────────────────────

// RegisterUser creates a new user with a bcrypt-hashed password and returns
// the stored row. The plaintext password never leaves this function.
func (s *Store) RegisterUser(ctx context.Context, nu model.NewUser) (*model.User, error) {
	switch {
	case nu.Username == "":
		return nil, &ValidationError{Msg: "username is required"}
	case nu.Password == "":
		return nil, &ValidationError{Msg: "password is required"}
	case nu.FirstName == "":
		return nil, &ValidationError{Msg: "firstName is required"}
	case nu.LastName == "":
		return nil, &ValidationError{Msg: "lastName is required"}
	case !strings.Contains(nu.Email, "@"):
		return nil, &ValidationError{Msg: "email is invalid"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var out model.User
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, first_name, last_name, email, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING username, first_name, last_name, email, is_admin`,
		nu.Username, string(hash), nu.FirstName, nu.LastName, nu.Email, nu.IsAdmin,
	).Scan(&out.Username, &out.FirstName, &out.LastName, &out.Email, &out.IsAdmin)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, fmt.Errorf("duplicate user %q: %w", nu.Username, ErrConflict)
		}
		return nil, fmt.Errorf("registerUser: %w", err)
	}
	return &out, nil
}

// AuthenticateUser checks a username/password pair. Unknown users and wrong
// passwords both come back as ErrUnauthorized so callers cannot probe which
// usernames exist.
func (s *Store) AuthenticateUser(ctx context.Context, username, password string) (*model.User, error) {
	var (
		u    model.User
		hash string
	)
	err := s.db.QueryRow(ctx,
		`SELECT username, password_hash, first_name, last_name, email, is_admin
		 FROM users
		 WHERE username = $1`,
		username,
	).Scan(&u.Username, &hash, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("authenticateUser: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}
	return &u, nil
}

// ListUsers returns all users ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT username, first_name, last_name, email, is_admin
		 FROM users
		 ORDER BY username`,
	)
	if err != nil {
		return nil, fmt.Errorf("listUsers query: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("listUsers scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUser returns a single user with the ids of the jobs they applied to.
func (s *Store) GetUser(ctx context.Context, username string) (*model.UserDetail, error) {
	var d model.UserDetail
	err := s.db.QueryRow(ctx,
		`SELECT username, first_name, last_name, email, is_admin
		 FROM users
		 WHERE username = $1`,
		username,
	).Scan(&d.Username, &d.FirstName, &d.LastName, &d.Email, &d.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getUser: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("getUser applications query: %w", err)
	}
	defer rows.Close()

	d.Applications = make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("getUser applications scan: %w", err)
		}
		d.Applications = append(d.Applications, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("getUser applications: %w", err)
	}
	return &d, nil
}

// UpdateUser applies a partial update and returns the stored row. A new
// password is rehashed before it is written; the admin flag and username
// are never updatable here.
func (s *Store) UpdateUser(ctx context.Context, username string, u model.UserUpdate) (*model.User, error) {
	var b setBuilder
	if u.FirstName != nil {
		b.Set("first_name", *u.FirstName)
	}
	if u.LastName != nil {
		b.Set("last_name", *u.LastName)
	}
	if u.Email != nil {
		if !strings.Contains(*u.Email, "@") {
			return nil, &ValidationError{Msg: "email is invalid"}
		}
		b.Set("email", *u.Email)
	}
	if u.Password != nil {
		if *u.Password == "" {
			return nil, &ValidationError{Msg: "password cannot be empty"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*u.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		b.Set("password_hash", string(hash))
	}
	if b.Empty() {
		return nil, &ValidationError{Msg: "no data to update"}
	}

	q := fmt.Sprintf(
		`UPDATE users SET %s WHERE username = $%d
		 RETURNING username, first_name, last_name, email, is_admin`,
		b.Clause(), b.Next(),
	)

	var out model.User
	err := s.db.QueryRow(ctx, q, append(b.Args(), username)...).
		Scan(&out.Username, &out.FirstName, &out.LastName, &out.Email, &out.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updateUser: %w", err)
	}
	return &out, nil
}

// DeleteUser removes a user. Their applications are removed by the schema's
// ON DELETE CASCADE.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("deleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return nil
}

// ApplyToJob records that a user applied to a job. Applying twice is a
// conflict; a missing user or job surfaces from the foreign keys as a
// validation error.
func (s *Store) ApplyToJob(ctx context.Context, username string, jobID int64) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO applications (username, job_id) VALUES ($1, $2)`,
		username, jobID,
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("already applied to job %d: %w", jobID, ErrConflict)
		case pgForeignKeyViolation:
			if strings.Contains(pgErr.ConstraintName, "job") {
				return &ValidationError{Msg: fmt.Sprintf("no such job: %d", jobID)}
			}
			return &ValidationError{Msg: fmt.Sprintf("no such user: %s", username)}
		}
	}
	return fmt.Errorf("applyToJob: %w", err)
}
