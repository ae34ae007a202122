package api

import (
	"encoding/json"
	"net/http"

	"hireloop/board-service/internal/model"
)

// ─── User handlers ───────────────────────────────────────────────────────────

// createUser handles POST /users. Unlike /auth/register this is an admin
// route and may create other admins.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var nu model.NewUser
	if err := json.NewDecoder(r.Body).Decode(&nu); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := s.store.RegisterUser(r.Context(), nu)
	if err != nil {
		writeStoreError(w, "createUser", err)
		return
	}
	jsonCreated(w, map[string]any{"user": user})
}

// listUsers handles GET /users.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, "listUsers", err)
		return
	}
	jsonOK(w, map[string]any{"users": users})
}

// getUser handles GET /users/{username}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUser(r.Context(), r.PathValue("username"))
	if err != nil {
		writeStoreError(w, "getUser", err)
		return
	}
	jsonOK(w, map[string]any{"user": user})
}

// updateUser handles PATCH /users/{username}. Unknown fields are rejected
// so the set of updatable columns stays closed.
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var u model.UserUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := s.store.UpdateUser(r.Context(), r.PathValue("username"), u)
	if err != nil {
		writeStoreError(w, "updateUser", err)
		return
	}
	jsonOK(w, map[string]any{"user": user})
}

// deleteUser handles DELETE /users/{username}.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if err := s.store.DeleteUser(r.Context(), username); err != nil {
		writeStoreError(w, "deleteUser", err)
		return
	}
	jsonOK(w, map[string]any{"deleted": username})
}

// applyToJob handles POST /users/{username}/jobs/{id}.
func (s *Server) applyToJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.ApplyToJob(r.Context(), r.PathValue("username"), id); err != nil {
		writeStoreError(w, "applyToJob", err)
		return
	}
	jsonOK(w, map[string]any{"applied": id})
}
