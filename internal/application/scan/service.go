package scan

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dorkx-sec/dorkx-cli/internal/domain/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/dork"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
	sharedErrors "github.com/dorkx-sec/dorkx-cli/internal/shared/errors"
	"github.com/dorkx-sec/dorkx-cli/internal/target"
)

// Service owns the scan lifecycle around the executor: creation with
// validation and query generation, finalization, queries/findings access
// and aggregate statistics.
type Service struct {
	repo      scan.Repository
	validator *target.Validator
	executor  *Executor
	logger    *zap.SugaredLogger
}

// NewService wires the scan service.
func NewService(repo scan.Repository, validator *target.Validator, executor *Executor, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		repo:      repo,
		validator: validator,
		executor:  executor,
		logger:    logger,
	}
}

// CreateScan validates the target, records consent, persists the scan and
// its generated query set, and returns the pending scan. Execution is the
// caller's concern (CLI runs inline, the API submits a job).
func (s *Service) CreateScan(ctx context.Context, rawTarget, profile, userID string, consent bool) (*scan.Scan, error) {
	if !consent {
		return nil, sharedErrors.ErrConsentRequired
	}

	res := s.validator.Validate(rawTarget)
	if !res.Valid {
		return nil, fmt.Errorf("%w: %s", sharedErrors.ErrInvalidDomain, res.Reason)
	}

	p := dork.ParseProfile(profile)
	sc, err := scan.NewScan(res.Normalized, string(p), userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveScan(ctx, sc); err != nil {
		return nil, fmt.Errorf("persist scan: %w", err)
	}

	generated := dork.Generate(res.Normalized, p)
	queries := make([]*scan.Query, 0, len(generated))
	for _, g := range generated {
		q, err := scan.NewQuery(sc.ID(), g.Text, g.Category, g.Priority)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}

	if err := s.repo.SaveQueries(ctx, sc.ID(), queries); err != nil {
		return nil, fmt.Errorf("persist queries: %w", err)
	}

	sc.SetTotalQueries(len(queries))
	if err := s.repo.SaveScan(ctx, sc); err != nil {
		return nil, fmt.Errorf("persist scan totals: %w", err)
	}

	s.logger.Infow("scan created",
		"scan_id", sc.ID(), "target", sc.TargetDomain(), "profile", sc.Profile(), "queries", len(queries))
	return sc, nil
}

// Run drives a pending scan to a terminal status: running, then completed,
// or failed when the executor itself cannot proceed (scan or queries
// unloadable). Per-query failures never fail the scan.
func (s *Service) Run(ctx context.Context, scanID string) error {
	sc, err := s.repo.FindScanByID(ctx, scanID)
	if err != nil {
		return err
	}

	if err := sc.Start(); err != nil {
		return err
	}
	if err := s.repo.SaveScan(ctx, sc); err != nil {
		return fmt.Errorf("persist running status: %w", err)
	}

	if execErr := s.executor.ExecuteScan(ctx, scanID); execErr != nil {
		// Re-read: the executor may have persisted partial totals.
		if current, err := s.repo.FindScanByID(ctx, scanID); err == nil {
			sc = current
		}
		if err := sc.Fail(execErr.Error()); err == nil {
			if err := s.repo.SaveScan(ctx, sc); err != nil {
				s.logger.Errorw("failed to persist failed status", "scan_id", scanID, "error", err)
			}
		}
		return execErr
	}

	// Totals were updated by the executor; reload before completing.
	sc, err = s.repo.FindScanByID(ctx, scanID)
	if err != nil {
		return err
	}
	if err := sc.Complete(); err != nil {
		return err
	}
	if err := s.repo.SaveScan(ctx, sc); err != nil {
		return fmt.Errorf("persist completed status: %w", err)
	}

	s.logger.Infow("scan completed", "scan_id", scanID, "findings", sc.TotalFindings())
	return nil
}

// GetScan retrieves one scan.
func (s *Service) GetScan(ctx context.Context, scanID string) (*scan.Scan, error) {
	return s.repo.FindScanByID(ctx, scanID)
}

// ListScans pages through scans, newest first.
func (s *Service) ListScans(ctx context.Context, page, pageSize int) ([]*scan.Scan, int, error) {
	return s.repo.ListScans(ctx, page, pageSize)
}

// DeleteScan removes a scan with all of its queries and findings.
func (s *Service) DeleteScan(ctx context.Context, scanID string) error {
	return s.repo.DeleteScan(ctx, scanID)
}

// Queries returns a scan's queries in stored order.
func (s *Service) Queries(ctx context.Context, scanID string) ([]*scan.Query, error) {
	return s.repo.FindQueriesByScanID(ctx, scanID)
}

// Findings returns a scan's findings with the per-tier distribution.
func (s *Service) Findings(ctx context.Context, scanID string) ([]*scan.Finding, map[risk.Tier]int, error) {
	if _, err := s.repo.FindScanByID(ctx, scanID); err != nil {
		return nil, nil, err
	}
	findings, err := s.repo.FindFindingsByScanID(ctx, scanID)
	if err != nil {
		return nil, nil, err
	}
	distribution, err := s.repo.CountFindingsByTier(ctx, scanID)
	if err != nil {
		return nil, nil, err
	}
	return findings, distribution, nil
}

// MarkFalsePositive flips the triage flag on one finding.
func (s *Service) MarkFalsePositive(ctx context.Context, scanID, findingID string, value bool) error {
	return s.repo.SetFindingFalsePositive(ctx, scanID, findingID, value)
}

// TopRisk is one entry of the statistics top-risk list.
type TopRisk struct {
	URL      string
	Tier     risk.Tier
	Category string
	Title    string
}

// Statistics aggregates one scan's findings.
type Statistics struct {
	TotalFindings    int
	RiskDistribution map[risk.Tier]int
	Categories       map[string]int
	TopRisks         []TopRisk
}

// GetStatistics computes the aggregate view of a scan's findings: tier
// distribution, category distribution and the first five critical or high
// findings in discovery order.
func (s *Service) GetStatistics(ctx context.Context, scanID string) (*Statistics, error) {
	sc, err := s.repo.FindScanByID(ctx, scanID)
	if err != nil {
		return nil, err
	}

	findings, err := s.repo.FindFindingsByScanID(ctx, scanID)
	if err != nil {
		return nil, err
	}

	distribution, err := s.repo.CountFindingsByTier(ctx, scanID)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalFindings:    sc.TotalFindings(),
		RiskDistribution: distribution,
		Categories:       make(map[string]int),
	}

	for _, f := range findings {
		stats.Categories[f.Category()]++
		if len(stats.TopRisks) < 5 && (f.RiskTier() == risk.TierCritical || f.RiskTier() == risk.TierHigh) {
			stats.TopRisks = append(stats.TopRisks, TopRisk{
				URL:      f.URL(),
				Tier:     f.RiskTier(),
				Category: f.Category(),
				Title:    f.Title(),
			})
		}
	}

	return stats, nil
}
