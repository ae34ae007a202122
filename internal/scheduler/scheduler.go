// Package scheduler wires up the cron job that periodically ingests the
// external postings feed.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"hireloop/board-service/internal/ingest"
)

// Scheduler wraps robfig/cron and manages the ingest loop.
type Scheduler struct {
	cron   *cron.Cron
	worker *ingest.Worker
	spec   string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(worker *ingest.Worker, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		worker: worker,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one ingest
// immediately so the board is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runIngest(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] cron started, spec %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runIngest(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] cron stopped")
}

func (s *Scheduler) runIngest(ctx context.Context) {
	log.Println("[scheduler] ingest cycle started")
	if err := s.worker.Run(ctx); err != nil {
		log.Printf("[scheduler] worker error: %v", err)
		return
	}
	log.Println("[scheduler] ingest cycle complete")
}
