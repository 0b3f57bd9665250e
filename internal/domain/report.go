package domain

import "time"

// RowError records a per-row create/update failure that did not stop the run.
type RowError struct {
	HeadlineID string
	Title      string
	Err        error
}

// Report summarizes a single transfer run for console output and auditing.
type Report struct {
	RunID      string
	DryRun     bool
	StartedAt  time.Time
	Approved   int
	Created    []CreatedArticle
	Skipped    int
	Reconciled int
	Errors     []RowError
	// Planned holds headline titles that would transfer; filled in dry-run only.
	Planned []string
}

// Transferred is the number of rows fully moved during the run.
func (r Report) Transferred() int {
	return len(r.Created)
}
