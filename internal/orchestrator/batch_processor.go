package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/utils"
)

// ProfileScraper turns one URL into a record
type ProfileScraper interface {
	Scrape(ctx context.Context, url string) (models.ProfileRecord, error)
}

// BatchProcessor scrapes a list of URLs one after another
type BatchProcessor struct {
	scraper           ProfileScraper
	stateManager      *StateManager
	delay             time.Duration
	shutdownRequested *int32
	out               io.Writer
}

// NewBatchProcessor creates a new BatchProcessor instance. state may be
// nil when no ledger is kept.
func NewBatchProcessor(scraper ProfileScraper, state *StateManager, delay time.Duration) *BatchProcessor {
	var flag int32
	return &BatchProcessor{
		scraper:           scraper,
		stateManager:      state,
		delay:             delay,
		shutdownRequested: &flag,
		out:               os.Stdout,
	}
}

// SetShutdownFlag shares the flag set by the signal handler
func (bp *BatchProcessor) SetShutdownFlag(flag *int32) {
	bp.shutdownRequested = flag
}

// SetOutput redirects progress lines
func (bp *BatchProcessor) SetOutput(w io.Writer) {
	bp.out = w
}

func (bp *BatchProcessor) stopping(ctx context.Context) bool {
	return ctx.Err() != nil || atomic.LoadInt32(bp.shutdownRequested) == 1
}

// Run scrapes urls in order. A failed URL is logged, recorded and
// skipped; an interrupt stops before the next URL and leaves the rest
// pending.
func (bp *BatchProcessor) Run(ctx context.Context, urls []string) *models.BatchResult {
	res := &models.BatchResult{
		Records: []models.ProfileRecord{},
		Stats:   models.BatchStats{StartTime: time.Now()},
	}
	if bp.stateManager != nil {
		res.RunID = bp.stateManager.RunID()
	}

	for i, url := range urls {
		if bp.stopping(ctx) {
			res.Interrupted = true
			break
		}
		if i > 0 && bp.delay > 0 {
			if err := utils.Sleep(ctx, bp.delay); err != nil {
				res.Interrupted = true
				break
			}
		}

		fmt.Fprintf(bp.out, "🔍 [%d/%d] %s\n", i+1, len(urls), url)
		rec, err := bp.scraper.Scrape(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				// stays pending for the next resume
				res.Interrupted = true
				break
			}
			bp.recordFailure(res, url, err)
			continue
		}

		res.Records = append(res.Records, rec)
		res.Stats.AddSuccess()
		if bp.stateManager != nil {
			bp.stateManager.MarkSuccess(rec)
		}
		fmt.Fprintf(bp.out, "✅ %s (%d experience, %d education, %d skills)\n",
			displayName(rec), len(rec.Experience), len(rec.Education), len(rec.Skills))
	}

	if res.Interrupted {
		fmt.Fprintln(bp.out, "⚠️ Batch interrupted, remaining URLs left pending")
	}
	return res
}

func (bp *BatchProcessor) recordFailure(res *models.BatchResult, url string, err error) {
	logging.WithFields(logrus.Fields{"url": url, "run_id": res.RunID}).Errorf("scrape failed: %v", err)
	res.Failures = append(res.Failures, models.Failure{URL: url, Err: err})
	res.Stats.AddFailure()
	if bp.stateManager != nil {
		bp.stateManager.MarkFailed(url, err)
	}
	fmt.Fprintf(bp.out, "❌ %s: %v\n", url, err)
}

func displayName(rec models.ProfileRecord) string {
	if rec.Name != "" {
		return rec.Name
	}
	return rec.URL
}
