package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// RequireAdmin wraps a handler so only authenticated admins reach it.
// A missing or invalid token is a 401; a valid non-admin token is a 403.
func (a *Auth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.bearerClaims(r)
		if err != nil {
			jsonError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !claims.IsAdmin {
			jsonError(w, "admin privileges required", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// RequireAdminOrSelf wraps a handler so only admins, or the user whose
// username fills the named path parameter, reach it.
func (a *Auth) RequireAdminOrSelf(param string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.bearerClaims(r)
		if err != nil {
			jsonError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !claims.IsAdmin && claims.Username != r.PathValue(param) {
			jsonError(w, "insufficient privileges", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// bearerClaims extracts and verifies the Authorization bearer token.
func (a *Auth) bearerClaims(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, errMissingToken
	}
	return a.VerifyToken(token)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

var errMissingToken = fmt.Errorf("missing bearer token")
