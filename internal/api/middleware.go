package api

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// logWriter captures the status code written by the wrapped handler.
type logWriter struct {
	http.ResponseWriter
	status int
}

func (w *logWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLog tags every request with an id, echoes it back in X-Request-Id
// and logs method, path, status and duration.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)

		lw := &logWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(lw, r)

		log.Printf("[board] %s %s %s %d (%s)", id, r.Method, r.URL.Path, lw.status, time.Since(start))
	})
}
