package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"hireloop/board-service/internal/model"
)

// ─── Job handlers ────────────────────────────────────────────────────────────

// createJob handles POST /jobs.
func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title         string              `json:"title"`
		Salary        *int                `json:"salary"`
		Equity        decimal.NullDecimal `json:"equity"`
		CompanyHandle string              `json:"companyHandle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	job, err := s.store.CreateJob(r.Context(), model.Job{
		Title:         body.Title,
		Salary:        body.Salary,
		Equity:        body.Equity,
		CompanyHandle: body.CompanyHandle,
	})
	if err != nil {
		writeStoreError(w, "createJob", err)
		return
	}
	jsonCreated(w, map[string]any{"job": job})
}

// listJobs handles GET /jobs with optional filters.
func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minSalary, err := intQuery(q, "minSalary")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	hasEquity, err := boolQuery(q, "hasEquity")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	jobs, err := s.store.FindJobs(r.Context(), model.JobFilter{
		Title:     q.Get("title"),
		MinSalary: minSalary,
		HasEquity: hasEquity,
	})
	if err != nil {
		writeStoreError(w, "listJobs", err)
		return
	}
	jsonOK(w, map[string]any{"jobs": jobs})
}

// getJob handles GET /jobs/{id}.
func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		writeStoreError(w, "getJob", err)
		return
	}
	jsonOK(w, map[string]any{"job": job})
}

// updateJob handles PATCH /jobs/{id}. Unknown fields are rejected so the
// set of updatable columns stays closed.
func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var u model.JobUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	job, err := s.store.UpdateJob(r.Context(), id, u)
	if err != nil {
		writeStoreError(w, "updateJob", err)
		return
	}
	jsonOK(w, map[string]any{"job": job})
}

// deleteJob handles DELETE /jobs/{id}.
func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteJob(r.Context(), id); err != nil {
		writeStoreError(w, "deleteJob", err)
		return
	}
	jsonOK(w, map[string]any{"deleted": id})
}

// jobID parses the {id} path value.
func jobID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer")
	}
	return id, nil
}
