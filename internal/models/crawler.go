package models

import (
	"sync/atomic"
	"time"
)

// URLStatus is the ledger state of one URL inside a batch run
type URLStatus string

const (
	URLStatusPending URLStatus = "pending"
	URLStatusSuccess URLStatus = "success"
	URLStatusFailed  URLStatus = "failed"
)

// Failure records a URL that produced no record
type Failure struct {
	URL string
	Err error
}

// BatchStats counts outcomes of a batch run
type BatchStats struct {
	Processed int32
	Success   int32
	Failed    int32
	StartTime time.Time
}

// AddSuccess counts one scraped record
func (s *BatchStats) AddSuccess() {
	atomic.AddInt32(&s.Processed, 1)
	atomic.AddInt32(&s.Success, 1)
}

// AddFailure counts one failed URL
func (s *BatchStats) AddFailure() {
	atomic.AddInt32(&s.Processed, 1)
	atomic.AddInt32(&s.Failed, 1)
}

// BatchResult is what a batch run hands back to its caller
type BatchResult struct {
	RunID       string
	Records     []ProfileRecord
	Failures    []Failure
	Stats       BatchStats
	Interrupted bool
}

// RunStatus is the state of a whole batch run
type RunStatus string

const (
	RunStatusRunning     RunStatus = "running"
	RunStatusCompleted   RunStatus = "completed"
	RunStatusInterrupted RunStatus = "interrupted"
)

// Run is one batch invocation as stored in the ledger
type Run struct {
	ID         string
	Source     string
	Status     RunStatus
	OutputPath string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
