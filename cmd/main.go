// board-service
//
// Job board API: companies, jobs, users and applications over PostgreSQL.
// Exposes a REST API implementing:
//   - company CRUD with filtered search (name, employee bounds)
//   - job CRUD with filtered search (title, salary, equity)
//   - user accounts, bearer tokens and job applications
//
// Publishes EVENT_COMPANY_CHANGED / EVENT_JOB_CHANGED to Redis on writes.
// When FEED_URL is set, ingests an external postings feed on a cron cycle.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hireloop/board-service/internal/api"
	"hireloop/board-service/internal/auth"
	"hireloop/board-service/internal/config"
	"hireloop/board-service/internal/db"
	"hireloop/board-service/internal/ingest"
	"hireloop/board-service/internal/scheduler"
	"hireloop/board-service/internal/store"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("[board-service] loaded .env")
	}

	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[board-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[board-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[board-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[board-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[board-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[board-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[board-service] Redis connected ✓")

	// ── Services ─────────────────────────────────────────────────────────────
	st := store.New(pool, rdb, cfg.BcryptCost)
	a := auth.New(cfg.SecretKey, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	s := api.NewServer(st, a)
	s.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.RequestLog(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[board-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[board-service] HTTP server error: %v", err)
		}
	}()

	// ── Feed ingest ──────────────────────────────────────────────────────────
	var sched *scheduler.Scheduler
	if cfg.FeedURL != "" {
		worker := ingest.NewWorker(st, ingest.NewFeedFetcher(cfg.FeedURL), cfg.IngestBlocklist)
		sched = scheduler.New(worker, cfg.IngestIntervalHours)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("[board-service] Scheduler: %v", err)
		}
	}

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[board-service] Shutting down…")
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[board-service] Shutdown error: %v", err)
	}
	log.Println("[board-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "board-service",
		"version": version,
	})
}
