package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"hireloop/board-service/internal/model"
)

// ─── Company operations ──────────────────────────────────────────────────────

// CreateCompany inserts a new company and returns the stored row. A handle
// or name collision surfaces from the unique constraints as ErrConflict, so
// concurrent creates race safely without a pre-check query.
func (s *Store) CreateCompany(ctx context.Context, c model.Company) (*model.Company, error) {
	switch {
	case c.Handle == "":
		return nil, &ValidationError{Msg: "handle is required"}
	case c.Handle != strings.ToLower(c.Handle):
		return nil, &ValidationError{Msg: "handle must be lowercase"}
	case c.Name == "":
		return nil, &ValidationError{Msg: "name is required"}
	case c.NumEmployees != nil && *c.NumEmployees < 0:
		return nil, &ValidationError{Msg: "numEmployees cannot be negative"}
	}

	var out model.Company
	err := s.db.QueryRow(ctx,
		`INSERT INTO companies (handle, name, description, num_employees, logo_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING handle, name, description, num_employees, logo_url`,
		c.Handle, c.Name, c.Description, c.NumEmployees, c.LogoURL,
	).Scan(&out.Handle, &out.Name, &out.Description, &out.NumEmployees, &out.LogoURL)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, fmt.Errorf("duplicate company %q: %w", c.Handle, ErrConflict)
		}
		return nil, fmt.Errorf("createCompany: %w", err)
	}

	s.publish(ctx, eventCompanyChanged, map[string]string{
		"type":   eventCompanyChanged,
		"action": "created",
		"handle": out.Handle,
	})
	return &out, nil
}

// FindCompanies returns companies matching the filter, ordered by name.
// Predicates are composed in a fixed order (employee minimum, employee
// maximum, name substring) so placeholder positions stay stable.
func (s *Store) FindCompanies(ctx context.Context, f model.CompanyFilter) ([]model.Company, error) {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return nil, &ValidationError{Msg: "minEmployees cannot be greater than maxEmployees"}
	}

	var b condBuilder
	if f.MinEmployees != nil {
		b.Add("num_employees >= $%d", *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		b.Add("num_employees <= $%d", *f.MaxEmployees)
	}
	if f.Name != "" {
		b.Add("name ILIKE $%d", "%"+escapeLike(f.Name)+"%")
	}

	rows, err := s.db.Query(ctx,
		`SELECT handle, name, description, num_employees, logo_url
		 FROM companies`+b.Where()+` ORDER BY name`,
		b.Args()...,
	)
	if err != nil {
		return nil, fmt.Errorf("findCompanies query: %w", err)
	}
	defer rows.Close()

	companies := make([]model.Company, 0)
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL); err != nil {
			return nil, fmt.Errorf("findCompanies scan: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// GetCompany returns a single company with flat summaries of its jobs.
// The two reads are sequential and not transactional.
func (s *Store) GetCompany(ctx context.Context, handle string) (*model.CompanyDetail, error) {
	var d model.CompanyDetail
	err := s.db.QueryRow(ctx,
		`SELECT handle, name, description, num_employees, logo_url
		 FROM companies
		 WHERE handle = $1`,
		handle,
	).Scan(&d.Handle, &d.Name, &d.Description, &d.NumEmployees, &d.LogoURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("company %q: %w", handle, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getCompany: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, title, salary, equity, company_handle
		 FROM jobs
		 WHERE company_handle = $1
		 ORDER BY id`,
		handle,
	)
	if err != nil {
		return nil, fmt.Errorf("getCompany jobs query: %w", err)
	}
	defer rows.Close()

	d.Jobs = make([]model.Job, 0)
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
			return nil, fmt.Errorf("getCompany jobs scan: %w", err)
		}
		d.Jobs = append(d.Jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("getCompany jobs: %w", err)
	}
	return &d, nil
}

// UpdateCompany applies a partial update and returns the stored row.
// Only present fields are written; the handle itself is never updatable.
func (s *Store) UpdateCompany(ctx context.Context, handle string, u model.CompanyUpdate) (*model.Company, error) {
	var b setBuilder
	if u.Name != nil {
		b.Set("name", *u.Name)
	}
	if u.Description != nil {
		b.Set("description", *u.Description)
	}
	if u.NumEmployees != nil {
		if *u.NumEmployees < 0 {
			return nil, &ValidationError{Msg: "numEmployees cannot be negative"}
		}
		b.Set("num_employees", *u.NumEmployees)
	}
	if u.LogoURL != nil {
		b.Set("logo_url", *u.LogoURL)
	}
	if b.Empty() {
		return nil, &ValidationError{Msg: "no data to update"}
	}

	q := fmt.Sprintf(
		`UPDATE companies SET %s WHERE handle = $%d
		 RETURNING handle, name, description, num_employees, logo_url`,
		b.Clause(), b.Next(),
	)

	var out model.Company
	err := s.db.QueryRow(ctx, q, append(b.Args(), handle)...).
		Scan(&out.Handle, &out.Name, &out.Description, &out.NumEmployees, &out.LogoURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("company %q: %w", handle, ErrNotFound)
	}
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, fmt.Errorf("duplicate company name: %w", ErrConflict)
		}
		return nil, fmt.Errorf("updateCompany: %w", err)
	}

	s.publish(ctx, eventCompanyChanged, map[string]string{
		"type":   eventCompanyChanged,
		"action": "updated",
		"handle": out.Handle,
	})
	return &out, nil
}

// DeleteCompany removes a company. Jobs referencing it are removed by the
// schema's ON DELETE CASCADE.
func (s *Store) DeleteCompany(ctx context.Context, handle string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return fmt.Errorf("deleteCompany: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("company %q: %w", handle, ErrNotFound)
	}

	s.publish(ctx, eventCompanyChanged, map[string]string{
		"type":   eventCompanyChanged,
		"action": "deleted",
		"handle": handle,
	})
	return nil
}

// CompanyExists reports whether a company with the given handle exists.
func (s *Store) CompanyExists(ctx context.Context, handle string) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx, `SELECT 1 FROM companies WHERE handle = $1`, handle).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("companyExists: %w", err)
	}
	return true, nil
}
