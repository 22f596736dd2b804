package json

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dorkx-sec/dorkx-cli/internal/domain/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
	sharedErrors "github.com/dorkx-sec/dorkx-cli/internal/shared/errors"
)

func newTestRepo(t *testing.T) *ScanRepository {
	t.Helper()
	repo, err := NewScanRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewScanRepository failed: %v", err)
	}
	return repo
}

func seedScan(t *testing.T, repo *ScanRepository) *scan.Scan {
	t.Helper()
	sc, err := scan.NewScan("example.com", "standard", "tester", time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveScan(context.Background(), sc); err != nil {
		t.Fatalf("SaveScan failed: %v", err)
	}
	return sc
}

func seedFinding(t *testing.T, repo *ScanRepository, scanID, url string, tier risk.Tier, category string) *scan.Finding {
	t.Helper()
	f, err := scan.NewFinding(scan.FindingParams{
		ScanID:     scanID,
		QueryID:    "qry_1",
		URL:        url,
		Category:   category,
		Assessment: risk.Assessment{Tier: tier, Rationale: "r", Compliance: "c", Remediation: "m"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveFinding(context.Background(), f); err != nil {
		t.Fatalf("SaveFinding failed: %v", err)
	}
	return f
}

func TestNewScanRepositoryRequiresDir(t *testing.T) {
	if _, err := NewScanRepository(""); err == nil {
		t.Fatal("expected error for empty data directory")
	}
}

func TestSaveAndFindScan(t *testing.T) {
	repo := newTestRepo(t)
	sc := seedScan(t, repo)

	loaded, err := repo.FindScanByID(context.Background(), sc.ID())
	if err != nil {
		t.Fatalf("FindScanByID failed: %v", err)
	}
	if loaded.ID() != sc.ID() || loaded.TargetDomain() != "example.com" || loaded.Profile() != "standard" {
		t.Fatalf("loaded scan differs: %+v", loaded)
	}
	if loaded.Status() != scan.StatusPending {
		t.Fatalf("unexpected status: %s", loaded.Status())
	}
}

func TestSaveScanPreservesOwnedRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	sc := seedScan(t, repo)

	q, _ := scan.NewQuery(sc.ID(), "q1", "credentials", 10)
	if err := repo.SaveQueries(ctx, sc.ID(), []*scan.Query{q}); err != nil {
		t.Fatal(err)
	}
	seedFinding(t, repo, sc.ID(), "https://example.com/.env", risk.TierCritical, "credentials")

	// Updating the scan row must not drop queries or findings.
	sc.SetTotalQueries(1)
	if err := repo.SaveScan(ctx, sc); err != nil {
		t.Fatal(err)
	}

	queries, err := repo.FindQueriesByScanID(ctx, sc.ID())
	if err != nil || len(queries) != 1 {
		t.Fatalf("queries lost after scan update: %v, %d", err, len(queries))
	}
	findings, err := repo.FindFindingsByScanID(ctx, sc.ID())
	if err != nil || len(findings) != 1 {
		t.Fatalf("findings lost after scan update: %v, %d", err, len(findings))
	}
}

func TestFindScanByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.FindScanByID(context.Background(), "scan_missing"); err != sharedErrors.ErrScanNotFound {
		t.Fatalf("expected ErrScanNotFound, got %v", err)
	}
}

func TestListScansPagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		seedScan(t, repo)
		time.Sleep(2 * time.Millisecond)
	}

	first, total, err := repo.ListScans(ctx, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(first) != 2 {
		t.Fatalf("expected total 5 page of 2, got total %d len %d", total, len(first))
	}
	// Newest first.
	if first[0].StartedAt().Before(first[1].StartedAt()) {
		t.Fatal("expected newest-first ordering")
	}

	last, _, err := repo.ListScans(ctx, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 1 {
		t.Fatalf("expected 1 scan on last page, got %d", len(last))
	}

	empty, _, err := repo.ListScans(ctx, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}

func TestDeleteScanCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	sc := seedScan(t, repo)

	q, _ := scan.NewQuery(sc.ID(), "q1", "credentials", 10)
	if err := repo.SaveQueries(ctx, sc.ID(), []*scan.Query{q}); err != nil {
		t.Fatal(err)
	}
	seedFinding(t, repo, sc.ID(), "https://example.com/.env", risk.TierCritical, "credentials")

	if err := repo.DeleteScan(ctx, sc.ID()); err != nil {
		t.Fatalf("DeleteScan failed: %v", err)
	}

	if _, err := repo.FindScanByID(ctx, sc.ID()); err != sharedErrors.ErrScanNotFound {
		t.Fatalf("expected scan gone, got %v", err)
	}
	if _, err := repo.FindQueriesByScanID(ctx, sc.ID()); err != sharedErrors.ErrScanNotFound {
		t.Fatalf("expected queries gone, got %v", err)
	}
	if _, err := repo.FindFindingsByScanID(ctx, sc.ID()); err != sharedErrors.ErrScanNotFound {
		t.Fatalf("expected findings gone, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(repo.dataDir, sc.ID())); !os.IsNotExist(err) {
		t.Fatal("expected scan directory to be removed")
	}
}

func TestDeleteScanNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.DeleteScan(context.Background(), "scan_missing"); err != sharedErrors.ErrScanNotFound {
		t.Fatalf("expected ErrScanNotFound, got %v", err)
	}
}

func TestUpdateQuery(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	sc := seedScan(t, repo)

	q, _ := scan.NewQuery(sc.ID(), "q1", "credentials", 10)
	if err := repo.SaveQueries(ctx, sc.ID(), []*scan.Query{q}); err != nil {
		t.Fatal(err)
	}

	_ = q.MarkExecuting()
	q.MarkCompleted(4, time.Now().UTC())
	if err := repo.UpdateQuery(ctx, q); err != nil {
		t.Fatalf("UpdateQuery failed: %v", err)
	}

	queries, err := repo.FindQueriesByScanID(ctx, sc.ID())
	if err != nil {
		t.Fatal(err)
	}
	if queries[0].Status() != scan.QueryStatusCompleted || queries[0].ResultCount() != 4 {
		t.Fatalf("query mutation not persisted: %s count=%d", queries[0].Status(), queries[0].ResultCount())
	}
}

func TestUpdateQueryUnknownID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	sc := seedScan(t, repo)

	ghost, _ := scan.NewQuery(sc.ID(), "ghost", "credentials", 10)
	if err := repo.UpdateQuery(ctx, ghost); err != sharedErrors.ErrQueryNotFound {
		t.Fatalf("expected ErrQueryNotFound, got %v", err)
	}
}

func TestQueryOrderPreserved(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	sc := seedScan(t, repo)

	var saved []*scan.Query
	for _, text := range []string{"first", "second", "third"} {
		q, _ := scan.NewQuery(sc.ID(), text, "credentials", 10)
		saved = append(saved, q)
	}
	if err := repo.SaveQueries(ctx, sc.ID(), saved); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.FindQueriesByScanID(ctx, sc.ID())
	if err != nil {
		t.Fatal(err)
	}
	for i := range saved {
		if loaded[i].Text() != saved[i].Text() {
			t.Fatalf("query order changed at %d: %s vs %s", i, loaded[i].Text(), saved[i].Text())
		}
	}
}

func TestFindingFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	sc := seedScan(t, repo)

	seedFinding(t, repo, sc.ID(), "https://example.com/.env", risk.TierCritical, "credentials")
	seedFinding(t, repo, sc.ID(), "https://example.com/admin", risk.TierMedium, "login_pages")
	seedFinding(t, repo, sc.ID(), "https://example.com/dump.sql", risk.TierHigh, "database_exposure")

	critical, err := repo.FindFindingsByTier(ctx, sc.ID(), risk.TierCritical)
	if err != nil || len(critical) != 1 {
		t.Fatalf("tier filter: %v, %d", err, len(critical))
	}

	login, err := repo.FindFindingsByCategory(ctx, sc.ID(), "login_pages")
	if err != nil || len(login) != 1 {
		t.Fatalf("category filter: %v, %d", err, len(login))
	}
	if login[0].URL() != "https://example.com/admin" {
		t.Fatalf("wrong finding filtered: %s", login[0].URL())
	}

	counts, err := repo.CountFindingsByTier(ctx, sc.ID())
	if err != nil {
		t.Fatal(err)
	}
	if counts[risk.TierCritical] != 1 || counts[risk.TierHigh] != 1 || counts[risk.TierMedium] != 1 {
		t.Fatalf("unexpected distribution: %v", counts)
	}
	// All five tiers are present even when empty.
	if _, ok := counts[risk.TierInfo]; !ok {
		t.Fatal("expected zero-valued info tier in distribution")
	}
	if _, ok := counts[risk.TierLow]; !ok {
		t.Fatal("expected zero-valued low tier in distribution")
	}
}

func TestSetFindingFalsePositive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	sc := seedScan(t, repo)
	f := seedFinding(t, repo, sc.ID(), "https://example.com/admin", risk.TierMedium, "login_pages")

	if err := repo.SetFindingFalsePositive(ctx, sc.ID(), f.ID(), true); err != nil {
		t.Fatalf("SetFindingFalsePositive failed: %v", err)
	}

	findings, err := repo.FindFindingsByScanID(ctx, sc.ID())
	if err != nil {
		t.Fatal(err)
	}
	if !findings[0].IsFalsePositive() {
		t.Fatal("false positive flag not persisted")
	}

	if err := repo.SetFindingFalsePositive(ctx, sc.ID(), "finding_missing", true); err != sharedErrors.ErrFindingNotFound {
		t.Fatalf("expected ErrFindingNotFound, got %v", err)
	}
}

func TestFindingRoundTripPreservesAssessment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	sc := seedScan(t, repo)

	f, err := scan.NewFinding(scan.FindingParams{
		ScanID:   sc.ID(),
		QueryID:  "qry_9",
		URL:      "https://example.com/backup/database.sql",
		Title:    "SQL dump",
		Snippet:  "full export",
		FileType: "sql",
		Category: "database_exposure",
		Assessment: risk.Assessment{
			Tier:        risk.TierHigh,
			Rationale:   "database contents exposed",
			Compliance:  "OWASP A05:2021 - Security Misconfiguration",
			Remediation: "remove the dump",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveFinding(ctx, f); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.FindFindingsByScanID(ctx, sc.ID())
	if err != nil {
		t.Fatal(err)
	}
	got := loaded[0]
	if got.RiskRationale() != f.RiskRationale() || got.Compliance() != f.Compliance() || got.Remediation() != f.Remediation() {
		t.Fatalf("assessment fields lost in round trip: %+v", got)
	}
	if got.FileType() != "sql" || got.QueryID() != "qry_9" {
		t.Fatalf("metadata lost in round trip: %+v", got)
	}
}

func TestPathTraversalRejected(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.FindScanByID(context.Background(), "../escape"); err == nil {
		t.Fatal("expected traversal lookup to fail")
	}
	if err := repo.DeleteScan(context.Background(), "../escape"); err == nil {
		t.Fatal("expected traversal delete to fail")
	}
}
