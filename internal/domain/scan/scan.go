// Package scan holds the aggregate root of one reconnaissance session and
// the Query and Finding entities it owns. Status transitions are
// one-directional; a scan that reached completed, failed or aborted is
// terminal and can only be removed, which cascades to its queries and
// findings.
package scan

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	sharedErrors "github.com/dorkx-sec/dorkx-cli/internal/shared/errors"
)

// Status is the lifecycle state of a scan.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusAborted   Status = "aborted"
)

// Terminal reports whether the status allows no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusAborted
}

// Scan is the aggregate root for one reconnaissance session.
type Scan struct {
	id                string
	targetDomain      string
	profile           string
	status            Status
	userID            string
	consentAcceptedAt time.Time
	startedAt         time.Time
	completedAt       time.Time
	totalQueries      int
	totalFindings     int
	errorMessage      string
}

// NewScan creates a pending scan. Consent must already be recorded; a scan
// without a consent timestamp is refused.
func NewScan(targetDomain, profile, userID string, consentAcceptedAt time.Time) (*Scan, error) {
	if targetDomain == "" {
		return nil, sharedErrors.ErrEmptyTargetDomain
	}
	if consentAcceptedAt.IsZero() {
		return nil, sharedErrors.ErrConsentRequired
	}

	return &Scan{
		id:                generateID("scan"),
		targetDomain:      targetDomain,
		profile:           profile,
		status:            StatusPending,
		userID:            userID,
		consentAcceptedAt: consentAcceptedAt,
		startedAt:         time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a scan from persisted data.
func Reconstruct(id, targetDomain, profile, userID string, status Status,
	consentAcceptedAt, startedAt, completedAt time.Time,
	totalQueries, totalFindings int, errorMessage string) *Scan {
	return &Scan{
		id:                id,
		targetDomain:      targetDomain,
		profile:           profile,
		status:            status,
		userID:            userID,
		consentAcceptedAt: consentAcceptedAt,
		startedAt:         startedAt,
		completedAt:       completedAt,
		totalQueries:      totalQueries,
		totalFindings:     totalFindings,
		errorMessage:      errorMessage,
	}
}

// Business methods

// Start marks the scan as running.
func (s *Scan) Start() error {
	if s.status != StatusPending {
		return fmt.Errorf("scan can only start from pending status, got %s", s.status)
	}
	s.status = StatusRunning
	s.startedAt = time.Now().UTC()
	return nil
}

// Complete marks the scan as completed.
func (s *Scan) Complete() error {
	if s.status != StatusRunning {
		return sharedErrors.ErrScanNotRunning
	}
	s.status = StatusCompleted
	s.completedAt = time.Now().UTC()
	return nil
}

// Fail marks the scan as failed with the given message.
func (s *Scan) Fail(message string) error {
	if s.status.Terminal() {
		return sharedErrors.ErrScanFinished
	}
	s.status = StatusFailed
	s.errorMessage = message
	s.completedAt = time.Now().UTC()
	return nil
}

// Abort marks the scan as aborted.
func (s *Scan) Abort() error {
	if s.status.Terminal() {
		return sharedErrors.ErrScanFinished
	}
	s.status = StatusAborted
	s.completedAt = time.Now().UTC()
	return nil
}

// SetTotalQueries records how many queries were generated for this scan.
func (s *Scan) SetTotalQueries(n int) {
	s.totalQueries = n
}

// SetTotalFindings records the final finding count at completion.
func (s *Scan) SetTotalFindings(n int) {
	s.totalFindings = n
}

// Getters

func (s *Scan) ID() string                   { return s.id }
func (s *Scan) TargetDomain() string         { return s.targetDomain }
func (s *Scan) Profile() string              { return s.profile }
func (s *Scan) Status() Status               { return s.status }
func (s *Scan) UserID() string               { return s.userID }
func (s *Scan) ConsentAcceptedAt() time.Time { return s.consentAcceptedAt }
func (s *Scan) StartedAt() time.Time         { return s.startedAt }
func (s *Scan) CompletedAt() time.Time       { return s.completedAt }
func (s *Scan) TotalQueries() int            { return s.totalQueries }
func (s *Scan) TotalFindings() int           { return s.totalFindings }
func (s *Scan) ErrorMessage() string         { return s.errorMessage }

// generateID returns a prefixed random identifier. Random IDs keep scan
// URLs non-enumerable when served over the API.
func generateID(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b))
}
