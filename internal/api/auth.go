package api

import (
	"encoding/json"
	"log"
	"net/http"

	"hireloop/board-service/internal/model"
)

// ─── Auth handlers ───────────────────────────────────────────────────────────

// login handles POST /auth/token.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Password == "" {
		jsonError(w, "body must contain username and password", http.StatusBadRequest)
		return
	}

	user, err := s.store.AuthenticateUser(r.Context(), body.Username, body.Password)
	if err != nil {
		writeStoreError(w, "login", err)
		return
	}

	token, err := s.auth.CreateToken(user.Username, user.IsAdmin)
	if err != nil {
		log.Printf("[board] login sign token error: %v", err)
		jsonError(w, "could not create token", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]string{"token": token})
}

// register handles POST /auth/register. Self-registered accounts are never
// admins; the admin flag can only be set through POST /users.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := s.store.RegisterUser(r.Context(), model.NewUser{
		Username:  body.Username,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
	})
	if err != nil {
		writeStoreError(w, "register", err)
		return
	}

	token, err := s.auth.CreateToken(user.Username, user.IsAdmin)
	if err != nil {
		log.Printf("[board] register sign token error: %v", err)
		jsonError(w, "could not create token", http.StatusInternalServerError)
		return
	}

	jsonCreated(w, map[string]string{"token": token})
}
