package migrator

import (
	"time"

	"github.com/google/uuid"
)

// MaxReportedFailures bounds the failure list kept in a Summary; the
// Failed counter keeps counting past it.
const MaxReportedFailures = 1000

type Failure struct {
	TaskID string `json:"taskId,omitempty"`
	UserID string `json:"userId,omitempty"`
	Reason string `json:"reason"`
}

// Summary describes one run. Scanned == Migrated + Skipped + Failed.
type Summary struct {
	RunID      string    `json:"runId"`
	Database   string    `json:"database"`
	Collection string    `json:"collection"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	Scanned  int `json:"scanned"`
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`

	Failures          []Failure `json:"failures"`
	FailuresTruncated bool      `json:"failuresTruncated,omitempty"`

	// Aborted holds the cursor error that stopped the scan early.
	Aborted string `json:"aborted,omitempty"`
}

func newSummary(database, collection string, now time.Time) *Summary {
	return &Summary{
		RunID:      uuid.NewString(),
		Database:   database,
		Collection: collection,
		StartedAt:  now.UTC(),
		Failures:   []Failure{},
	}
}

func (s *Summary) recordFailure(f Failure) {
	s.Failed++
	if len(s.Failures) >= MaxReportedFailures {
		s.FailuresTruncated = true
		return
	}
	s.Failures = append(s.Failures, f)
}

// LogArgs returns the counters as logger key/value pairs.
func (s *Summary) LogArgs() []any {
	return []any{
		"run_id", s.RunID,
		"scanned", s.Scanned,
		"migrated", s.Migrated,
		"skipped", s.Skipped,
		"failed", s.Failed,
	}
}
