// Package scan drives a reconnaissance scan from running to a terminal
// state: it walks the scan's queries in stored order, calls the search
// provider, classifies every hit and persists findings as it goes. Failure
// is contained at the single-query level; only failing to load the scan
// itself aborts the run.
package scan

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dorkx-sec/dorkx-cli/internal/domain/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
	"github.com/dorkx-sec/dorkx-cli/internal/search"
	"github.com/dorkx-sec/dorkx-cli/internal/shared/constants"
)

// Provider is the slice of the search provider the executor needs.
type Provider interface {
	Configured() bool
	Search(ctx context.Context, query string, maxResults int) ([]search.RawResult, error)
}

// queryResult is the tagged outcome of one query: either a finding payload
// or a failure message. Making the outcome a value keeps the
// continue-to-next-query policy an explicit branch instead of an exception
// scope side effect.
type queryResult struct {
	findings []*scan.Finding
	failure  string
}

func (r queryResult) failed() bool { return r.failure != "" }

// ProgressFunc is invoked after each query reaches a terminal status.
type ProgressFunc func(q *scan.Query, findings int, failed bool)

// Executor processes one scan's queries sequentially. A scan's executor is
// the only writer of that scan's rows while it runs, so no locking beyond
// the repository's own is needed.
type Executor struct {
	repo       scan.Repository
	provider   Provider
	maxResults int
	logger     *zap.SugaredLogger
	progress   ProgressFunc
}

// NewExecutor wires an executor. maxResults values outside the provider
// ceiling are clamped to it.
func NewExecutor(repo scan.Repository, provider Provider, maxResults int, logger *zap.SugaredLogger) *Executor {
	if maxResults <= 0 || maxResults > constants.MaxResultsPerQuery {
		maxResults = constants.MaxResultsPerQuery
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Executor{
		repo:       repo,
		provider:   provider,
		maxResults: maxResults,
		logger:     logger,
	}
}

// SetProgress registers a per-query progress callback (used by the CLI).
func (e *Executor) SetProgress(fn ProgressFunc) {
	e.progress = fn
}

// ExecuteScan runs every query of the scan in stored order and records the
// final finding total. The caller owns the scan's terminal status: only a
// failure to load the scan or its queries is returned as an error.
func (e *Executor) ExecuteScan(ctx context.Context, scanID string) error {
	s, err := e.repo.FindScanByID(ctx, scanID)
	if err != nil {
		return fmt.Errorf("load scan %s: %w", scanID, err)
	}

	queries, err := e.repo.FindQueriesByScanID(ctx, scanID)
	if err != nil {
		return fmt.Errorf("load queries for scan %s: %w", scanID, err)
	}

	e.logger.Infow("executing scan",
		"scan_id", scanID,
		"target", s.TargetDomain(),
		"queries", len(queries),
		"provider_configured", e.provider.Configured(),
	)

	totalFindings := 0
	for _, q := range queries {
		if q.Status() == scan.QueryStatusCompleted || q.Status() == scan.QueryStatusFailed {
			totalFindings += q.ResultCount()
			continue
		}

		_ = q.MarkExecuting()
		res := e.runQuery(ctx, s, q)

		now := time.Now().UTC()
		if res.failed() {
			q.MarkFailed(res.failure, now)
			e.logger.Warnw("query failed",
				"scan_id", scanID, "query_id", q.ID(), "category", q.Category(), "error", res.failure)
		} else {
			q.MarkCompleted(len(res.findings), now)
			totalFindings += len(res.findings)
		}

		if err := e.repo.UpdateQuery(ctx, q); err != nil {
			// The query record must carry a terminal status before we move
			// on; a persistence failure here is logged, not fatal.
			e.logger.Errorw("failed to persist query status",
				"scan_id", scanID, "query_id", q.ID(), "error", err)
		}

		if e.progress != nil {
			e.progress(q, len(res.findings), res.failed())
		}
	}

	s.SetTotalFindings(totalFindings)
	if err := e.repo.SaveScan(ctx, s); err != nil {
		return fmt.Errorf("persist scan totals: %w", err)
	}

	e.logger.Infow("scan execution finished", "scan_id", scanID, "total_findings", totalFindings)
	return nil
}

// runQuery produces the tagged outcome for a single query. Findings are
// persisted here so that the query's terminal status is never ahead of its
// findings on disk.
func (e *Executor) runQuery(ctx context.Context, s *scan.Scan, q *scan.Query) queryResult {
	var raw []search.RawResult

	if e.provider.Configured() {
		results, err := e.provider.Search(ctx, q.Text(), e.maxResults)
		if err != nil {
			return queryResult{failure: err.Error()}
		}
		raw = results
	} else {
		raw = syntheticResults(q.Category(), s.TargetDomain())
	}

	findings := make([]*scan.Finding, 0, len(raw))
	for _, r := range raw {
		assessment := risk.Classify(r.URL, q.Category())
		f, err := scan.NewFinding(scan.FindingParams{
			ScanID:     s.ID(),
			QueryID:    q.ID(),
			URL:        r.URL,
			Title:      r.Title,
			Snippet:    r.Snippet,
			FileType:   r.FileType,
			Category:   q.Category(),
			Assessment: assessment,
		})
		if err != nil {
			return queryResult{failure: fmt.Sprintf("build finding: %v", err)}
		}
		if err := e.repo.SaveFinding(ctx, f); err != nil {
			return queryResult{failure: fmt.Sprintf("persist finding: %v", err)}
		}
		findings = append(findings, f)
	}

	return queryResult{findings: findings}
}
