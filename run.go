package diraudit

import (
	"context"
	"time"
)

// Run is an archived audit run.
type Run struct {
	ID         string `json:"id"`
	RosterPath string `json:"rosterPath"`
	Doctors    int    `json:"doctors"`
	Records    int    `json:"records"`

	// Fingerprint is a hash of every scraped value in the run. Two runs of
	// the same roster with equal fingerprints found identical directory data.
	Fingerprint string `json:"fingerprint"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.RosterPath == "" {
		return Errorf(EINVALID, "run roster path required")
	}
	if r.StartedAt.IsZero() {
		return Errorf(EINVALID, "run start time required")
	}
	if r.FinishedAt.Before(r.StartedAt) {
		return Errorf(EINVALID, "run cannot finish before it starts")
	}
	return nil
}

// RunService archives completed audit runs for later presentation.
// The audit pipeline only writes to it; it is never consulted during a run.
type RunService interface {
	// CreateRun stores a run with its records. The run ID, record count
	// and fingerprint are assigned.
	CreateRun(ctx context.Context, run *Run, records []*ComparisonRecord) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRecords retrieves the records of a run in their original order.
	// Returns ENOTFOUND if the run does not exist.
	FindRecords(ctx context.Context, runID string) ([]*ComparisonRecord, error)

	// DeleteRun removes a run and its records.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID         *string `json:"id"`
	RosterPath *string `json:"rosterPath"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
