package scan

import (
	"time"

	sharedErrors "github.com/dorkx-sec/dorkx-cli/internal/shared/errors"
)

// QueryStatus is the execution state of one dork query.
type QueryStatus string

const (
	QueryStatusPending   QueryStatus = "pending"
	QueryStatusExecuting QueryStatus = "executing"
	QueryStatusCompleted QueryStatus = "completed"
	QueryStatusFailed    QueryStatus = "failed"
)

// Query is one generated dork owned by a scan. Queries are created in bulk
// when the scan starts and processed in stored order.
type Query struct {
	id           string
	scanID       string
	text         string
	category     string
	priority     int
	status       QueryStatus
	executedAt   time.Time
	resultCount  int
	errorMessage string
}

// NewQuery creates a pending query for a scan.
func NewQuery(scanID, text, category string, priority int) (*Query, error) {
	if text == "" {
		return nil, sharedErrors.ErrEmptyQueryText
	}

	return &Query{
		id:       generateID("qry"),
		scanID:   scanID,
		text:     text,
		category: category,
		priority: priority,
		status:   QueryStatusPending,
	}, nil
}

// ReconstructQuery rebuilds a query from persisted data.
func ReconstructQuery(id, scanID, text, category string, priority int,
	status QueryStatus, executedAt time.Time, resultCount int, errorMessage string) *Query {
	return &Query{
		id:           id,
		scanID:       scanID,
		text:         text,
		category:     category,
		priority:     priority,
		status:       status,
		executedAt:   executedAt,
		resultCount:  resultCount,
		errorMessage: errorMessage,
	}
}

// MarkExecuting flags the query as in flight.
func (q *Query) MarkExecuting() error {
	if q.status == QueryStatusCompleted || q.status == QueryStatusFailed {
		return sharedErrors.ErrQueryFinished
	}
	q.status = QueryStatusExecuting
	return nil
}

// MarkCompleted records a successful execution with its result count.
func (q *Query) MarkCompleted(resultCount int, executedAt time.Time) {
	q.status = QueryStatusCompleted
	q.resultCount = resultCount
	q.executedAt = executedAt
	q.errorMessage = ""
}

// MarkFailed records a failed execution. The scan continues with the next
// query; a failed query never fails the scan.
func (q *Query) MarkFailed(message string, executedAt time.Time) {
	q.status = QueryStatusFailed
	q.errorMessage = message
	q.executedAt = executedAt
}

// Getters

func (q *Query) ID() string            { return q.id }
func (q *Query) ScanID() string        { return q.scanID }
func (q *Query) Text() string          { return q.text }
func (q *Query) Category() string      { return q.category }
func (q *Query) Priority() int         { return q.priority }
func (q *Query) Status() QueryStatus   { return q.status }
func (q *Query) ExecutedAt() time.Time { return q.executedAt }
func (q *Query) ResultCount() int      { return q.resultCount }
func (q *Query) ErrorMessage() string  { return q.errorMessage }
