package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"hireloop/board-service/internal/store"
)

// ─── Response helpers ────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonCreated(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeStoreError maps a store error onto an HTTP status. Anything without
// a known kind is logged server-side and reported as an opaque 500.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(w, verr.Msg, http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrConflict):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrUnauthorized):
		jsonError(w, "invalid credentials", http.StatusUnauthorized)
	default:
		log.Printf("[board] %s error: %v", op, err)
		jsonError(w, "database error", http.StatusInternalServerError)
	}
}

// ─── Query parameter helpers ─────────────────────────────────────────────────

// intQuery parses an optional integer query parameter. Absent means nil.
func intQuery(q url.Values, key string) (*int, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

// boolQuery parses an optional boolean query parameter. Absent means false.
func boolQuery(q url.Values, key string) (bool, error) {
	s := q.Get(key)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return v, nil
}
