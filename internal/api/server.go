// Package api implements the HTTP layer of the board service.
//
// Reads are public; company and job writes require an admin token; user
// routes require an admin token or the user's own.
//
// Routes:
//
//	POST   /auth/token                  → exchange credentials for a token
//	POST   /auth/register               → create an account, returns a token
//	POST   /companies                   → create company
//	GET    /companies                   → list companies (name, minEmployees, maxEmployees)
//	GET    /companies/{handle}          → company with its jobs
//	PATCH  /companies/{handle}          → partial update
//	DELETE /companies/{handle}          → delete company
//	POST   /jobs                        → create job
//	GET    /jobs                        → list jobs (title, minSalary, hasEquity)
//	GET    /jobs/{id}                   → job with its company
//	PATCH  /jobs/{id}                   → partial update
//	DELETE /jobs/{id}                   → delete job
//	POST   /users                       → create user
//	GET    /users                       → list users
//	GET    /users/{username}            → user with their applications
//	PATCH  /users/{username}            → partial update
//	DELETE /users/{username}            → delete user
//	POST   /users/{username}/jobs/{id}  → apply to job
package api

import (
	"net/http"

	"hireloop/board-service/internal/auth"
	"hireloop/board-service/internal/store"
)

// Server holds shared dependencies for the HTTP handlers.
type Server struct {
	store *store.Store
	auth  *auth.Auth
}

// NewServer returns a configured Server.
func NewServer(st *store.Store, a *auth.Auth) *Server {
	return &Server{store: st, auth: a}
}

// RegisterRoutes mounts all board-service routes on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/token", s.login)
	mux.HandleFunc("POST /auth/register", s.register)

	mux.HandleFunc("POST /companies", s.auth.RequireAdmin(s.createCompany))
	mux.HandleFunc("GET /companies", s.listCompanies)
	mux.HandleFunc("GET /companies/{handle}", s.getCompany)
	mux.HandleFunc("PATCH /companies/{handle}", s.auth.RequireAdmin(s.updateCompany))
	mux.HandleFunc("DELETE /companies/{handle}", s.auth.RequireAdmin(s.deleteCompany))

	mux.HandleFunc("POST /jobs", s.auth.RequireAdmin(s.createJob))
	mux.HandleFunc("GET /jobs", s.listJobs)
	mux.HandleFunc("GET /jobs/{id}", s.getJob)
	mux.HandleFunc("PATCH /jobs/{id}", s.auth.RequireAdmin(s.updateJob))
	mux.HandleFunc("DELETE /jobs/{id}", s.auth.RequireAdmin(s.deleteJob))

	mux.HandleFunc("POST /users", s.auth.RequireAdmin(s.createUser))
	mux.HandleFunc("GET /users", s.auth.RequireAdmin(s.listUsers))
	mux.HandleFunc("GET /users/{username}", s.auth.RequireAdminOrSelf("username", s.getUser))
	mux.HandleFunc("PATCH /users/{username}", s.auth.RequireAdminOrSelf("username", s.updateUser))
	mux.HandleFunc("DELETE /users/{username}", s.auth.RequireAdminOrSelf("username", s.deleteUser))
	mux.HandleFunc("POST /users/{username}/jobs/{id}", s.auth.RequireAdminOrSelf("username", s.applyToJob))
}
