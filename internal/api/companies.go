package api

import (
	"encoding/json"
	"net/http"

	"hireloop/board-service/internal/model"
)

// ─── Company handlers ────────────────────────────────────────────────────────

// createCompany handles POST /companies.
func (s *Server) createCompany(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Handle       string  `json:"handle"`
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		NumEmployees *int    `json:"numEmployees"`
		LogoURL      *string `json:"logoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	company, err := s.store.CreateCompany(r.Context(), model.Company{
		Handle:       body.Handle,
		Name:         body.Name,
		Description:  body.Description,
		NumEmployees: body.NumEmployees,
		LogoURL:      body.LogoURL,
	})
	if err != nil {
		writeStoreError(w, "createCompany", err)
		return
	}
	jsonCreated(w, map[string]any{"company": company})
}

// listCompanies handles GET /companies with optional filters.
func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minEmployees, err := intQuery(q, "minEmployees")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	maxEmployees, err := intQuery(q, "maxEmployees")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	companies, err := s.store.FindCompanies(r.Context(), model.CompanyFilter{
		Name:         q.Get("name"),
		MinEmployees: minEmployees,
		MaxEmployees: maxEmployees,
	})
	if err != nil {
		writeStoreError(w, "listCompanies", err)
		return
	}
	jsonOK(w, map[string]any{"companies": companies})
}

// getCompany handles GET /companies/{handle}.
func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.store.GetCompany(r.Context(), r.PathValue("handle"))
	if err != nil {
		writeStoreError(w, "getCompany", err)
		return
	}
	jsonOK(w, map[string]any{"company": company})
}

// updateCompany handles PATCH /companies/{handle}. Unknown fields are
// rejected so the set of updatable columns stays closed.
func (s *Server) updateCompany(w http.ResponseWriter, r *http.Request) {
	var u model.CompanyUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	company, err := s.store.UpdateCompany(r.Context(), r.PathValue("handle"), u)
	if err != nil {
		writeStoreError(w, "updateCompany", err)
		return
	}
	jsonOK(w, map[string]any{"company": company})
}

// deleteCompany handles DELETE /companies/{handle}.
func (s *Server) deleteCompany(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if err := s.store.DeleteCompany(r.Context(), handle); err != nil {
		writeStoreError(w, "deleteCompany", err)
		return
	}
	jsonOK(w, map[string]any{"deleted": handle})
}
