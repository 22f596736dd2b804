// Package json implements scan persistence as one JSON document per scan
// under a data directory. The document owns the scan row plus its queries
// and findings, so removing the scan directory is the cascade delete.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dorkx-sec/dorkx-cli/internal/domain/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
	"github.com/dorkx-sec/dorkx-cli/internal/shared/constants"
	sharedErrors "github.com/dorkx-sec/dorkx-cli/internal/shared/errors"
	"github.com/dorkx-sec/dorkx-cli/internal/shared/security"
)

const scanFileName = "scan.json"

// scanDocument is the on-disk form of a scan with its owned records.
type scanDocument struct {
	Scan     scanDTO      `json:"scan"`
	Queries  []queryDTO   `json:"queries"`
	Findings []findingDTO `json:"findings"`
}

type scanDTO struct {
	ID                string `json:"id"`
	TargetDomain      string `json:"target_domain"`
	Profile           string `json:"scan_profile"`
	Status            string `json:"status"`
	UserID            string `json:"user_id,omitempty"`
	ConsentAcceptedAt string `json:"consent_accepted_at"`
	StartedAt         string `json:"started_at"`
	CompletedAt       string `json:"completed_at,omitempty"`
	TotalQueries      int    `json:"total_queries"`
	TotalFindings     int    `json:"total_findings"`
	ErrorMessage      string `json:"error_message,omitempty"`
}

type queryDTO struct {
	ID           string `json:"id"`
	ScanID       string `json:"scan_id"`
	Text         string `json:"query_text"`
	Category     string `json:"category"`
	Priority     int    `json:"priority"`
	Status       string `json:"status"`
	ExecutedAt   string `json:"executed_at,omitempty"`
	ResultCount  int    `json:"result_count"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type findingDTO struct {
	ID              string `json:"id"`
	ScanID          string `json:"scan_id"`
	QueryID         string `json:"query_id,omitempty"`
	URL             string `json:"url"`
	Title           string `json:"title,omitempty"`
	Snippet         string `json:"snippet,omitempty"`
	FileType        string `json:"file_type,omitempty"`
	Category        string `json:"category"`
	RiskTier        string `json:"risk_level"`
	RiskRationale   string `json:"risk_rationale,omitempty"`
	Compliance      string `json:"compliance_mapping,omitempty"`
	Remediation     string `json:"remediation,omitempty"`
	DiscoveredAt    string `json:"discovered_at"`
	IsFalsePositive bool   `json:"is_false_positive"`
}

// ScanRepository implements scan.Repository on top of per-scan JSON files.
type ScanRepository struct {
	dataDir string
	mu      sync.RWMutex
}

// NewScanRepository creates the repository and its data directory.
func NewScanRepository(dataDir string) (*ScanRepository, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}

	if err := os.MkdirAll(dataDir, constants.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &ScanRepository{dataDir: dataDir}, nil
}

// SaveScan inserts or updates the scan row, preserving its queries and
// findings when the document already exists.
func (r *ScanRepository) SaveScan(ctx context.Context, s *scan.Scan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadDocument(s.ID())
	if err != nil {
		doc = &scanDocument{Queries: []queryDTO{}, Findings: []findingDTO{}}
	}
	doc.Scan = scanToDTO(s)

	return r.writeDocument(s.ID(), doc)
}

// FindScanByID retrieves a scan row.
func (r *ScanRepository) FindScanByID(ctx context.Context, id string) (*scan.Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.loadDocument(id)
	if err != nil {
		return nil, sharedErrors.ErrScanNotFound
	}

	return scanFromDTO(doc.Scan)
}

// ListScans pages through all scans, newest first.
func (r *ScanRepository) ListScans(ctx context.Context, page, pageSize int) ([]*scan.Scan, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read data directory: %w", err)
	}

	var scans []*scan.Scan
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		doc, err := r.loadDocument(entry.Name())
		if err != nil {
			continue
		}
		s, err := scanFromDTO(doc.Scan)
		if err != nil {
			continue
		}
		scans = append(scans, s)
	}

	sort.Slice(scans, func(i, j int) bool {
		return scans[i].StartedAt().After(scans[j].StartedAt())
	})

	total := len(scans)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []*scan.Scan{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return scans[start:end], total, nil
}

// DeleteScan removes the scan directory, cascading to queries and findings.
func (r *ScanRepository) DeleteScan(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir, err := security.ResolveWithin(r.dataDir, id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return sharedErrors.ErrScanNotFound
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete scan: %w", err)
	}
	return nil
}

// SaveQueries replaces the scan's query set.
func (r *ScanRepository) SaveQueries(ctx context.Context, scanID string, queries []*scan.Query) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadDocument(scanID)
	if err != nil {
		return sharedErrors.ErrScanNotFound
	}

	doc.Queries = make([]queryDTO, 0, len(queries))
	for _, q := range queries {
		doc.Queries = append(doc.Queries, queryToDTO(q))
	}

	return r.writeDocument(scanID, doc)
}

// UpdateQuery persists one query's mutation in place.
func (r *ScanRepository) UpdateQuery(ctx context.Context, q *scan.Query) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadDocument(q.ScanID())
	if err != nil {
		return sharedErrors.ErrScanNotFound
	}

	for i := range doc.Queries {
		if doc.Queries[i].ID == q.ID() {
			doc.Queries[i] = queryToDTO(q)
			return r.writeDocument(q.ScanID(), doc)
		}
	}
	return sharedErrors.ErrQueryNotFound
}

// FindQueriesByScanID returns the stored query order.
func (r *ScanRepository) FindQueriesByScanID(ctx context.Context, scanID string) ([]*scan.Query, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.loadDocument(scanID)
	if err != nil {
		return nil, sharedErrors.ErrScanNotFound
	}

	queries := make([]*scan.Query, 0, len(doc.Queries))
	for _, dto := range doc.Queries {
		q, err := queryFromDTO(dto)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// SaveFinding appends one finding to the scan document.
func (r *ScanRepository) SaveFinding(ctx context.Context, f *scan.Finding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadDocument(f.ScanID())
	if err != nil {
		return sharedErrors.ErrScanNotFound
	}

	doc.Findings = append(doc.Findings, findingToDTO(f))
	return r.writeDocument(f.ScanID(), doc)
}

// FindFindingsByScanID returns findings in discovery order.
func (r *ScanRepository) FindFindingsByScanID(ctx context.Context, scanID string) ([]*scan.Finding, error) {
	return r.filterFindings(scanID, func(findingDTO) bool { return true })
}

// FindFindingsByTier filters findings by risk tier.
func (r *ScanRepository) FindFindingsByTier(ctx context.Context, scanID string, tier risk.Tier) ([]*scan.Finding, error) {
	return r.filterFindings(scanID, func(dto findingDTO) bool {
		return dto.RiskTier == string(tier)
	})
}

// FindFindingsByCategory filters findings by category key.
func (r *ScanRepository) FindFindingsByCategory(ctx context.Context, scanID, category string) ([]*scan.Finding, error) {
	return r.filterFindings(scanID, func(dto findingDTO) bool {
		return dto.Category == category
	})
}

// CountFindingsByTier computes the per-tier distribution.
func (r *ScanRepository) CountFindingsByTier(ctx context.Context, scanID string) (map[risk.Tier]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.loadDocument(scanID)
	if err != nil {
		return nil, sharedErrors.ErrScanNotFound
	}

	counts := map[risk.Tier]int{
		risk.TierCritical: 0,
		risk.TierHigh:     0,
		risk.TierMedium:   0,
		risk.TierLow:      0,
		risk.TierInfo:     0,
	}
	for _, dto := range doc.Findings {
		counts[risk.Tier(dto.RiskTier)]++
	}
	return counts, nil
}

// SetFindingFalsePositive updates the triage flag on one finding.
func (r *ScanRepository) SetFindingFalsePositive(ctx context.Context, scanID, findingID string, value bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadDocument(scanID)
	if err != nil {
		return sharedErrors.ErrScanNotFound
	}

	for i := range doc.Findings {
		if doc.Findings[i].ID == findingID {
			doc.Findings[i].IsFalsePositive = value
			return r.writeDocument(scanID, doc)
		}
	}
	return sharedErrors.ErrFindingNotFound
}

// Helper methods

func (r *ScanRepository) loadDocument(scanID string) (*scanDocument, error) {
	path, err := security.ResolveWithin(r.dataDir, scanID, scanFileName)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc scanDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrDeserializationFailed, err)
	}
	return &doc, nil
}

func (r *ScanRepository) writeDocument(scanID string, doc *scanDocument) error {
	dir, err := security.ResolveWithin(r.dataDir, scanID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, constants.DefaultDirPerm); err != nil {
		return fmt.Errorf("failed to create scan directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
	}

	path := filepath.Join(dir, scanFileName)
	if err := os.WriteFile(path, data, constants.DefaultFilePerm); err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	return nil
}

func (r *ScanRepository) filterFindings(scanID string, keep func(findingDTO) bool) ([]*scan.Finding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.loadDocument(scanID)
	if err != nil {
		return nil, sharedErrors.ErrScanNotFound
	}

	findings := make([]*scan.Finding, 0, len(doc.Findings))
	for _, dto := range doc.Findings {
		if !keep(dto) {
			continue
		}
		f, err := findingFromDTO(dto)
		if err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	return findings, nil
}

// DTO conversions

func scanToDTO(s *scan.Scan) scanDTO {
	dto := scanDTO{
		ID:                s.ID(),
		TargetDomain:      s.TargetDomain(),
		Profile:           s.Profile(),
		Status:            string(s.Status()),
		UserID:            s.UserID(),
		ConsentAcceptedAt: s.ConsentAcceptedAt().Format(time.RFC3339Nano),
		StartedAt:         s.StartedAt().Format(time.RFC3339Nano),
		TotalQueries:      s.TotalQueries(),
		TotalFindings:     s.TotalFindings(),
		ErrorMessage:      s.ErrorMessage(),
	}
	if !s.CompletedAt().IsZero() {
		dto.CompletedAt = s.CompletedAt().Format(time.RFC3339Nano)
	}
	return dto
}

func scanFromDTO(dto scanDTO) (*scan.Scan, error) {
	consentAt, err := time.Parse(time.RFC3339Nano, dto.ConsentAcceptedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse consent time: %w", err)
	}
	startedAt, err := time.Parse(time.RFC3339Nano, dto.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	var completedAt time.Time
	if dto.CompletedAt != "" {
		completedAt, err = time.Parse(time.RFC3339Nano, dto.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse completion time: %w", err)
		}
	}

	return scan.Reconstruct(
		dto.ID, dto.TargetDomain, dto.Profile, dto.UserID,
		scan.Status(dto.Status),
		consentAt, startedAt, completedAt,
		dto.TotalQueries, dto.TotalFindings, dto.ErrorMessage,
	), nil
}

func queryToDTO(q *scan.Query) queryDTO {
	dto := queryDTO{
		ID:           q.ID(),
		ScanID:       q.ScanID(),
		Text:         q.Text(),
		Category:     q.Category(),
		Priority:     q.Priority(),
		Status:       string(q.Status()),
		ResultCount:  q.ResultCount(),
		ErrorMessage: q.ErrorMessage(),
	}
	if !q.ExecutedAt().IsZero() {
		dto.ExecutedAt = q.ExecutedAt().Format(time.RFC3339Nano)
	}
	return dto
}

func queryFromDTO(dto queryDTO) (*scan.Query, error) {
	var executedAt time.Time
	if dto.ExecutedAt != "" {
		var err error
		executedAt, err = time.Parse(time.RFC3339Nano, dto.ExecutedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse execution time: %w", err)
		}
	}

	return scan.ReconstructQuery(
		dto.ID, dto.ScanID, dto.Text, dto.Category, dto.Priority,
		scan.QueryStatus(dto.Status), executedAt, dto.ResultCount, dto.ErrorMessage,
	), nil
}

func findingToDTO(f *scan.Finding) findingDTO {
	return findingDTO{
		ID:              f.ID(),
		ScanID:          f.ScanID(),
		QueryID:         f.QueryID(),
		URL:             f.URL(),
		Title:           f.Title(),
		Snippet:         f.Snippet(),
		FileType:        f.FileType(),
		Category:        f.Category(),
		RiskTier:        string(f.RiskTier()),
		RiskRationale:   f.RiskRationale(),
		Compliance:      f.Compliance(),
		Remediation:     f.Remediation(),
		DiscoveredAt:    f.DiscoveredAt().Format(time.RFC3339Nano),
		IsFalsePositive: f.IsFalsePositive(),
	}
}

func findingFromDTO(dto findingDTO) (*scan.Finding, error) {
	discoveredAt, err := time.Parse(time.RFC3339Nano, dto.DiscoveredAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse discovery time: %w", err)
	}

	return scan.ReconstructFinding(
		dto.ID, dto.ScanID, dto.QueryID, dto.URL, dto.Title, dto.Snippet,
		dto.FileType, dto.Category,
		risk.Tier(dto.RiskTier), dto.RiskRationale, dto.Compliance, dto.Remediation,
		discoveredAt, dto.IsFalsePositive,
	), nil
}
