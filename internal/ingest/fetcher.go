package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	feedPageSize = 50
	feedMaxPages = 3 // at most 150 postings per cycle
	httpTimeout  = 15 * time.Second
)

// Posting mirrors a single entry of the external postings feed.
type Posting struct {
	Title         string              `json:"title"`
	CompanyHandle string              `json:"companyHandle"`
	CompanyName   string              `json:"companyName"`
	Salary        *int                `json:"salary"`
	Equity        decimal.NullDecimal `json:"equity"`
}

// FeedFetcher fetches postings from an external JSON feed. If the feed URL
// is empty, Fetch returns (nil, nil) gracefully and the worker skips the
// cycle with a log line.
type FeedFetcher struct {
	baseURL string
	client  *http.Client
}

// NewFeedFetcher constructs a fetcher with a shared HTTP client.
func NewFeedFetcher(baseURL string) *FeedFetcher {
	return &FeedFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// Fetch retrieves all available postings, iterating through pages until a
// short or empty page or feedMaxPages is reached.
func (f *FeedFetcher) Fetch(ctx context.Context) ([]Posting, error) {
	if f.baseURL == "" {
		log.Println("[fetcher] FEED_URL not set, skipping ingest")
		return nil, nil
	}

	var postings []Posting

	for page := 1; page <= feedMaxPages; page++ {
		batch, err := f.fetchPage(ctx, page)
		if err != nil {
			return postings, fmt.Errorf("page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}
		postings = append(postings, batch...)
		if len(batch) < feedPageSize {
			break // last page
		}
	}

	return postings, nil
}

func (f *FeedFetcher) fetchPage(ctx context.Context, page int) ([]Posting, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(feedPageSize))

	reqURL := f.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %d: %s", resp.StatusCode, string(body))
	}

	var batch []Posting
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	return batch, nil
}
