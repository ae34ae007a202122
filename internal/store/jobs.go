package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"hireloop/board-service/internal/model"
)

// ─── Job operations ──────────────────────────────────────────────────────────

// CreateJob inserts a new job and returns the stored row. A missing company
// surfaces from the foreign key as a validation error rather than a 500.
func (s *Store) CreateJob(ctx context.Context, j model.Job) (*model.Job, error) {
	switch {
	case j.Title == "":
		return nil, &ValidationError{Msg: "title is required"}
	case j.CompanyHandle == "":
		return nil, &ValidationError{Msg: "companyHandle is required"}
	case j.Salary != nil && *j.Salary < 0:
		return nil, &ValidationError{Msg: "salary cannot be negative"}
	case j.Equity.Valid && equityOutOfRange(j.Equity.Decimal):
		return nil, &ValidationError{Msg: "equity must be between 0 and 1"}
	}

	var out model.Job
	err := s.db.QueryRow(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, salary, equity, company_handle`,
		j.Title, j.Salary, j.Equity, j.CompanyHandle,
	).Scan(&out.ID, &out.Title, &out.Salary, &out.Equity, &out.CompanyHandle)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return nil, &ValidationError{Msg: fmt.Sprintf("no such company: %s", j.CompanyHandle)}
		}
		return nil, fmt.Errorf("createJob: %w", err)
	}

	s.publish(ctx, eventJobChanged, map[string]string{
		"type":   eventJobChanged,
		"action": "created",
		"id":     strconv.FormatInt(out.ID, 10),
	})
	return &out, nil
}

// FindJobs returns jobs matching the filter, ordered by title. Each listing
// carries the owning company's display name. Predicates are composed in a
// fixed order (equity flag, title substring, salary minimum).
func (s *Store) FindJobs(ctx context.Context, f model.JobFilter) ([]model.JobListing, error) {
	var b condBuilder
	if f.HasEquity {
		b.AddExpr("j.equity > 0")
	}
	if f.Title != "" {
		b.Add("j.title ILIKE $%d", "%"+escapeLike(f.Title)+"%")
	}
	if f.MinSalary != nil {
		b.Add("j.salary >= $%d", *f.MinSalary)
	}

	rows, err := s.db.Query(ctx,
		`SELECT j.id, j.title, j.salary, j.equity, j.company_handle, c.name
		 FROM jobs j
		 JOIN companies c ON c.handle = j.company_handle`+b.Where()+` ORDER BY j.title`,
		b.Args()...,
	)
	if err != nil {
		return nil, fmt.Errorf("findJobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.JobListing, 0)
	for rows.Next() {
		var l model.JobListing
		if err := rows.Scan(&l.ID, &l.Title, &l.Salary, &l.Equity, &l.CompanyHandle, &l.CompanyName); err != nil {
			return nil, fmt.Errorf("findJobs scan: %w", err)
		}
		jobs = append(jobs, l)
	}
	return jobs, rows.Err()
}

// GetJob returns a single job with the full owning company nested in place
// of the bare handle. The two reads are sequential and not transactional.
func (s *Store) GetJob(ctx context.Context, id int64) (*model.JobDetail, error) {
	var (
		d      model.JobDetail
		handle string
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, title, salary, equity, company_handle
		 FROM jobs
		 WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.Title, &d.Salary, &d.Equity, &handle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getJob: %w", err)
	}

	var c model.Company
	err = s.db.QueryRow(ctx,
		`SELECT handle, name, description, num_employees, logo_url
		 FROM companies
		 WHERE handle = $1`,
		handle,
	).Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("getJob company: %w", err)
	}
	if err == nil {
		d.Company = &c
	}
	return &d, nil
}

// UpdateJob applies a partial update and returns the stored row. Only
// present fields are written; the id and owning company never change.
func (s *Store) UpdateJob(ctx context.Context, id int64, u model.JobUpdate) (*model.Job, error) {
	var b setBuilder
	if u.Title != nil {
		if *u.Title == "" {
			return nil, &ValidationError{Msg: "title cannot be empty"}
		}
		b.Set("title", *u.Title)
	}
	if u.Salary != nil {
		if *u.Salary < 0 {
			return nil, &ValidationError{Msg: "salary cannot be negative"}
		}
		b.Set("salary", *u.Salary)
	}
	if u.Equity != nil {
		if equityOutOfRange(*u.Equity) {
			return nil, &ValidationError{Msg: "equity must be between 0 and 1"}
		}
		b.Set("equity", *u.Equity)
	}
	if b.Empty() {
		return nil, &ValidationError{Msg: "no data to update"}
	}

	q := fmt.Sprintf(
		`UPDATE jobs SET %s WHERE id = $%d
		 RETURNING id, title, salary, equity, company_handle`,
		b.Clause(), b.Next(),
	)

	var out model.Job
	err := s.db.QueryRow(ctx, q, append(b.Args(), id)...).
		Scan(&out.ID, &out.Title, &out.Salary, &out.Equity, &out.CompanyHandle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updateJob: %w", err)
	}

	s.publish(ctx, eventJobChanged, map[string]string{
		"type":   eventJobChanged,
		"action": "updated",
		"id":     strconv.FormatInt(out.ID, 10),
	})
	return &out, nil
}

// DeleteJob removes a job by id.
func (s *Store) DeleteJob(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleteJob: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %d: %w", id, ErrNotFound)
	}

	s.publish(ctx, eventJobChanged, map[string]string{
		"type":   eventJobChanged,
		"action": "deleted",
		"id":     strconv.FormatInt(id, 10),
	})
	return nil
}

// IngestJob inserts a feed job unless one with the same title already
// exists for the company. It reports whether a row was inserted, so the
// ingest worker can count duplicates without a separate lookup.
func (s *Store) IngestJob(ctx context.Context, j model.Job) (bool, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 SELECT $1, $2, $3, $4
		 WHERE NOT EXISTS (
		   SELECT 1 FROM jobs WHERE title = $1 AND company_handle = $4
		 )
		 RETURNING id`,
		j.Title, j.Salary, j.Equity, j.CompanyHandle,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return false, &ValidationError{Msg: fmt.Sprintf("no such company: %s", j.CompanyHandle)}
		}
		return false, fmt.Errorf("ingestJob: %w", err)
	}

	s.publish(ctx, eventJobChanged, map[string]string{
		"type":   eventJobChanged,
		"action": "created",
		"id":     strconv.FormatInt(id, 10),
	})
	return true, nil
}

func equityOutOfRange(d decimal.Decimal) bool {
	return d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1))
}
