package scan

import (
	"context"

	"github.com/dorkx-sec/dorkx-cli/internal/risk"
)

// Repository defines persistence for scans and their owned queries and
// findings. Implementations must cascade DeleteScan to the scan's queries
// and findings so no orphaned rows survive.
type Repository interface {
	// SaveScan inserts or updates a scan record.
	SaveScan(ctx context.Context, s *Scan) error

	// FindScanByID retrieves a scan. Returns ErrScanNotFound when absent.
	FindScanByID(ctx context.Context, id string) (*Scan, error)

	// ListScans returns one page of scans ordered by start time descending,
	// plus the total scan count.
	ListScans(ctx context.Context, page, pageSize int) ([]*Scan, int, error)

	// DeleteScan removes a scan and cascades to its queries and findings.
	DeleteScan(ctx context.Context, id string) error

	// SaveQueries persists the generated query set for a scan in order.
	SaveQueries(ctx context.Context, scanID string, queries []*Query) error

	// UpdateQuery persists a single query's status mutation.
	UpdateQuery(ctx context.Context, q *Query) error

	// FindQueriesByScanID returns a scan's queries in stored order.
	FindQueriesByScanID(ctx context.Context, scanID string) ([]*Query, error)

	// SaveFinding appends one finding to a scan.
	SaveFinding(ctx context.Context, f *Finding) error

	// FindFindingsByScanID returns a scan's findings in discovery order.
	FindFindingsByScanID(ctx context.Context, scanID string) ([]*Finding, error)

	// FindFindingsByTier filters a scan's findings by risk tier.
	FindFindingsByTier(ctx context.Context, scanID string, tier risk.Tier) ([]*Finding, error)

	// FindFindingsByCategory filters a scan's findings by category key.
	FindFindingsByCategory(ctx context.Context, scanID, category string) ([]*Finding, error)

	// CountFindingsByTier returns the per-tier finding distribution.
	CountFindingsByTier(ctx context.Context, scanID string) (map[risk.Tier]int, error)

	// SetFindingFalsePositive updates the triage flag on one finding.
	SetFindingFalsePositive(ctx context.Context, scanID, findingID string, value bool) error
}
