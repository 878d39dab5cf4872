package hastitle

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Document is a page source to be checked.
type Document struct {
	Path        string `json:"path"`
	Content     string `json:"-"`
	ContentHash string `json:"contentHash"`
}

// ComputeHash returns the xxhash64 of content as a hex string.
func ComputeHash(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

// DocumentSource produces the documents for a lint run.
type DocumentSource interface {
	// Documents returns all documents, ordered by path.
	// Returns ENOTFOUND if a configured root does not exist.
	Documents(ctx context.Context) ([]*Document, error)
}

// Run is a single lint invocation recorded in history.
type Run struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	StartedAt time.Time `json:"startedAt"`
	Total     int       `json:"total"`
	Missing   int       `json:"missing"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Root == "" {
		return Errorf(EINVALID, "run root required")
	}
	if r.Total < 0 || r.Missing < 0 {
		return Errorf(EINVALID, "run totals must not be negative")
	}
	if r.Missing > r.Total {
		return Errorf(EINVALID, "run missing count exceeds total")
	}
	return nil
}

// Finding is the verdict for one document within a run.
type Finding struct {
	ID          string    `json:"id,omitempty"`
	RunID       string    `json:"runId,omitempty"`
	Path        string    `json:"path"`
	ContentHash string    `json:"contentHash"`
	Strategy    string    `json:"strategy,omitempty"`
	Title       string    `json:"title"`
	HasTitle    bool      `json:"hasTitle"`
	CheckedAt   time.Time `json:"checkedAt"`
}

// Validate returns an error if the finding contains invalid fields.
func (f *Finding) Validate() error {
	if f.RunID == "" {
		return Errorf(EINVALID, "finding run ID required")
	}
	if f.Path == "" {
		return Errorf(EINVALID, "finding path required")
	}
	return nil
}

// RunUpdate holds the totals written back once a run completes.
type RunUpdate struct {
	Total   *int
	Missing *int
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// FindingFilter represents a filter for FindFindings.
type FindingFilter struct {
	RunID    *string `json:"runId"`
	Path     *string `json:"path"`
	HasTitle *bool   `json:"hasTitle"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// FindingService records lint runs and their findings.
type FindingService interface {
	// CreateRun creates a new run and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// UpdateRun updates the totals of a run.
	// Returns ENOTFOUND if the run does not exist.
	UpdateRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// CreateFinding stores a finding and assigns its ID.
	CreateFinding(ctx context.Context, finding *Finding) error

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindFindings retrieves findings matching the filter, ordered by path.
	FindFindings(ctx context.Context, filter FindingFilter) ([]*Finding, error)

	// DeleteRun removes a run and its findings.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}
