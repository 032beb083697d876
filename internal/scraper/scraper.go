package scraper

import (
	"context"
	"time"

	"github.com/bilgisen/ainews/internal/models"
	"github.com/go-resty/resty/v2"
)

const userAgent = "AI-News-Aggregator/1.0.0"

// Store is the persistence surface the scrapers need. SaveNew reports
// whether the article was inserted; false means the URL was already
// known and the item was skipped.
type Store interface {
	SaveNew(ctx context.Context, article *models.Article) (bool, error)
}

// Relevance gates scraped items to on-topic content and assigns
// category slugs.
type Relevance interface {
	IsRelevant(text string) bool
	Categorize(text string) []string
}

// Result summarizes one scrape run of a single source.
type Result struct {
	Source string `json:"source"`
	Found  int    `json:"found"`
	Saved  int    `json:"saved"`
}

// Scraper is one content source. Scrape fetches, filters, categorizes
// and persists; per-item failures are logged and skipped so one bad
// document never aborts a run.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) (Result, error)
}

func newClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
}

// sleep pauses between requests, aborting early on context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
