// Package model defines the shared data structures of the board service.
package model

import "github.com/shopspring/decimal"

// Company mirrors a companies table row. NumEmployees and LogoURL are
// nullable columns.
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// CompanyDetail is the single-company read shape: the company plus flat
// summaries of its jobs. List results never carry jobs.
type CompanyDetail struct {
	Company
	Jobs []Job `json:"jobs"`
}

// Job mirrors a jobs table row. Equity is stored as NUMERIC and serialized
// as a decimal string or null.
type Job struct {
	ID            int64               `json:"id"`
	Title         string              `json:"title"`
	Salary        *int                `json:"salary"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle"`
}

// JobListing is a search-result row: the job plus the denormalised company
// name from the join.
type JobListing struct {
	Job
	CompanyName string `json:"companyName"`
}

// JobDetail is the single-job read shape. The referenced company's full
// record replaces the flat handle string under the same key; it is null when
// the company vanished between the two reads.
type JobDetail struct {
	ID      int64               `json:"id"`
	Title   string              `json:"title"`
	Salary  *int                `json:"salary"`
	Equity  decimal.NullDecimal `json:"equity"`
	Company *Company            `json:"companyHandle"`
}

// User mirrors a users table row. The password hash never leaves the server.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"isAdmin"`
}

// UserDetail is the single-user read shape: the user plus the ids of the
// jobs they applied to.
type UserDetail struct {
	User
	Applications []int64 `json:"applications"`
}

// NewUser carries registration input. Password is plaintext on the way in
// and is hashed before it reaches the store.
type NewUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// CompanyUpdate is a partial update: nil fields are left untouched.
// Handle is never updatable.
type CompanyUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// JobUpdate is a partial update: nil fields are left untouched.
// ID and CompanyHandle are never updatable.
type JobUpdate struct {
	Title  *string          `json:"title"`
	Salary *int             `json:"salary"`
	Equity *decimal.Decimal `json:"equity"`
}

// UserUpdate is a partial update: nil fields are left untouched. A present
// Password is re-hashed. Username and IsAdmin are never updatable.
type UserUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// CompanyFilter holds the optional company search predicates. An empty Name
// and nil bounds mean an unfiltered listing.
type CompanyFilter struct {
	Name         string
	MinEmployees *int
	MaxEmployees *int
}

// JobFilter holds the optional job search predicates. HasEquity true means
// equity strictly greater than zero; false means no equity predicate at all.
type JobFilter struct {
	Title     string
	MinSalary *int
	HasEquity bool
}
