package ingest

import (
	"context"
	"fmt"
	"log"

	"hireloop/board-service/internal/model"
	"hireloop/board-service/internal/store"
)

// Worker runs one full ingest cycle over the external feed. Postings that
// survive the blocklist and reference a known company are dedup-inserted
// as jobs.
type Worker struct {
	store     *store.Store
	fetcher   *FeedFetcher
	blocklist []string
}

// NewWorker constructs a Worker. Extra blocklist terms are applied on top
// of the built-in list.
func NewWorker(st *store.Store, fetcher *FeedFetcher, extraBlocked []string) *Worker {
	blocklist := make([]string, 0, len(defaultBlocklist)+len(extraBlocked))
	blocklist = append(blocklist, defaultBlocklist...)
	blocklist = append(blocklist, extraBlocked...)
	return &Worker{store: st, fetcher: fetcher, blocklist: blocklist}
}

// Run executes one ingest cycle. Per-posting failures are logged and
// counted, never fatal for the cycle.
func (w *Worker) Run(ctx context.Context) error {
	postings, err := w.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if len(postings) == 0 {
		log.Println("[worker] feed empty, nothing to ingest")
		return nil
	}

	var inserted, filtered, unknown, dupes int

	for _, p := range postings {
		if p.Title == "" || p.CompanyHandle == "" {
			unknown++
			continue
		}
		if ContainsBlockedTerm(p.Title, p.CompanyName, w.blocklist) {
			filtered++
			continue
		}

		// Feed postings reference companies by handle; only known ones
		// are ingested.
		exists, err := w.store.CompanyExists(ctx, p.CompanyHandle)
		if err != nil {
			log.Printf("[worker] company lookup error for %q: %v", p.CompanyHandle, err)
			continue
		}
		if !exists {
			unknown++
			continue
		}

		ok, err := w.store.IngestJob(ctx, model.Job{
			Title:         p.Title,
			Salary:        p.Salary,
			Equity:        p.Equity,
			CompanyHandle: p.CompanyHandle,
		})
		if err != nil {
			log.Printf("[worker] insert error for %q at %q: %v", p.Title, p.CompanyHandle, err)
			continue
		}
		if ok {
			inserted++
		} else {
			dupes++
		}
	}

	log.Printf("[worker] ingest done: inserted=%d filtered=%d unknown=%d duplicates=%d",
		inserted, filtered, unknown, dupes)
	return nil
}
