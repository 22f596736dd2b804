package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

type stubScanService struct {
	scans    map[string]*Scan
	queries  map[string][]Query
	findings map[string]*FindingList
	stats    map[string]*Statistics
	created  *ScanCreateRequest
	deleted  []string
	fpCalls  []string
	err      error
}

func (s *stubScanService) CreateScan(_ context.Context, req ScanCreateRequest) (*Scan, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &req
	return &Scan{ID: "scan_1", TargetDomain: req.TargetDomain, Profile: req.Profile, Status: "pending"}, nil
}

func (s *stubScanService) GetScan(_ context.Context, id string) (*Scan, error) {
	if sc, ok := s.scans[id]; ok {
		return sc, nil
	}
	return nil, errors.New("scan not found")
}

func (s *stubScanService) ListScans(_ context.Context, page, pageSize int) (*ScanList, error) {
	if s.err != nil {
		return nil, s.err
	}
	items := make([]Scan, 0, len(s.scans))
	for _, sc := range s.scans {
		items = append(items, *sc)
	}
	return &ScanList{Items: items, Total: len(items), Page: page, PageSize: pageSize}, nil
}

func (s *stubScanService) DeleteScan(_ context.Context, id string) error {
	if _, ok := s.scans[id]; !ok {
		return errors.New("scan not found")
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubScanService) GetQueries(_ context.Context, id string) ([]Query, error) {
	if q, ok := s.queries[id]; ok {
		return q, nil
	}
	return nil, errors.New("scan not found")
}

func (s *stubScanService) GetFindings(_ context.Context, id string) (*FindingList, error) {
	if f, ok := s.findings[id]; ok {
		return f, nil
	}
	return nil, errors.New("scan not found")
}

func (s *stubScanService) SetFalsePositive(_ context.Context, scanID, findingID string, value bool) error {
	if _, ok := s.scans[scanID]; !ok {
		return errors.New("scan not found")
	}
	s.fpCalls = append(s.fpCalls, scanID+"/"+findingID)
	return nil
}

func (s *stubScanService) GetStatistics(_ context.Context, id string) (*Statistics, error) {
	if st, ok := s.stats[id]; ok {
		return st, nil
	}
	return nil, errors.New("scan not found")
}

type stubTargetService struct {
	result *TargetValidation
	err    error
}

func (s *stubTargetService) Validate(_ context.Context, _ string) (*TargetValidation, error) {
	return s.result, s.err
}

type stubCatalogService struct {
	categories []Category
	err        error
}

func (s *stubCatalogService) ListCategories(_ context.Context) ([]Category, error) {
	return s.categories, s.err
}

type stubHealthService struct {
	checkErr error
	readyErr error
}

func (s *stubHealthService) Check(_ context.Context) error { return s.checkErr }
func (s *stubHealthService) Ready(_ context.Context) error { return s.readyErr }

func newTestServer(t *testing.T, mutate func(*Config)) *Server {
	t.Helper()
	cfg := Config{
		Scans: &stubScanService{
			scans: map[string]*Scan{
				"scan_1": {ID: "scan_1", TargetDomain: "example.com", Profile: "quick", Status: "completed"},
			},
			queries: map[string][]Query{
				"scan_1": {{ID: "qry_1", Category: "credentials", QueryText: "q", Status: "completed"}},
			},
			findings: map[string]*FindingList{
				"scan_1": {
					Items:        []Finding{{ID: "fnd_1", URL: "https://example.com/.env", RiskTier: "critical", Category: "credentials"}},
					Total:        1,
					Distribution: map[string]int{"critical": 1},
				},
			},
			stats: map[string]*Statistics{
				"scan_1": {TotalFindings: 1, RiskDistribution: map[string]int{"critical": 1}},
			},
		},
		Targets: &stubTargetService{result: &TargetValidation{Valid: true, Normalized: "example.com"}},
		Catalog: &stubCatalogService{categories: []Category{{Key: "credentials", Name: "Credentials"}}},
		Health:  &stubHealthService{},
		Logger:  zaptest.NewLogger(t),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewServer(cfg)
}

func doRequest(srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestHealthFailureIsSanitized(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) {
		cfg.Health = &stubHealthService{checkErr: errors.New("disk on fire at /var/data")}
	})
	rec := doRequest(srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "/var/data") {
		t.Fatal("internal error detail leaked to the client")
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Fatalf("expected generic message, got %s", rec.Body.String())
	}
}

func TestReadyEndpoint(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) {
		cfg.Health = &stubHealthService{readyErr: errors.New("storage unavailable")}
	})
	rec := doRequest(srv, http.MethodGet, "/api/v1/ready", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestTargetValidate(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodPost, "/api/v1/targets/validate", TargetValidateRequest{Domain: "example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result TargetValidation
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if !result.Valid || result.Normalized != "example.com" {
		t.Fatalf("unexpected validation result: %+v", result)
	}
}

func TestTargetValidateRejectsGet(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/targets/validate", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestListCategories(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var categories []Category
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatal(err)
	}
	if len(categories) != 1 || categories[0].Key != "credentials" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}

func TestCreateScan(t *testing.T) {
	stub := &stubScanService{scans: map[string]*Scan{}}
	srv := newTestServer(t, func(cfg *Config) { cfg.Scans = stub })

	rec := doRequest(srv, http.MethodPost, "/api/v1/scans", ScanCreateRequest{
		TargetDomain: "example.com", Profile: "quick", ConsentConfirmed: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.created == nil || !stub.created.ConsentConfirmed {
		t.Fatal("consent flag not forwarded to the service")
	}
	var created Scan
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID != "scan_1" {
		t.Fatalf("unexpected scan: %+v", created)
	}
}

func TestCreateScanBadJSON(t *testing.T) {
	srv := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListScansPagination(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/scans?page=2&page_size=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list ScanList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Page != 2 || list.PageSize != 5 {
		t.Fatalf("pagination params not forwarded: %+v", list)
	}
}

func TestGetScanByID(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodGet, "/api/v1/scans/scan_1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sc Scan
	if err := json.Unmarshal(rec.Body.Bytes(), &sc); err != nil {
		t.Fatal(err)
	}
	if sc.TargetDomain != "example.com" {
		t.Fatalf("unexpected scan: %+v", sc)
	}

	rec = doRequest(srv, http.MethodGet, "/api/v1/scans/scan_missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown scan, got %d", rec.Code)
	}
}

func TestDeleteScan(t *testing.T) {
	stub := &stubScanService{scans: map[string]*Scan{"scan_1": {ID: "scan_1"}}}
	srv := newTestServer(t, func(cfg *Config) { cfg.Scans = stub })

	rec := doRequest(srv, http.MethodDelete, "/api/v1/scans/scan_1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.deleted) != 1 || stub.deleted[0] != "scan_1" {
		t.Fatalf("delete not forwarded: %v", stub.deleted)
	}
}

func TestScanQueriesRoute(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/scans/scan_1/queries", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var queries []Query
	if err := json.Unmarshal(rec.Body.Bytes(), &queries); err != nil {
		t.Fatal(err)
	}
	if len(queries) != 1 || queries[0].Category != "credentials" {
		t.Fatalf("unexpected queries: %+v", queries)
	}
}

func TestScanFindingsRoute(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/scans/scan_1/findings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list FindingList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Distribution["critical"] != 1 {
		t.Fatalf("unexpected findings list: %+v", list)
	}
}

func TestFalsePositivePatch(t *testing.T) {
	stub := &stubScanService{scans: map[string]*Scan{"scan_1": {ID: "scan_1"}}}
	srv := newTestServer(t, func(cfg *Config) { cfg.Scans = stub })

	rec := doRequest(srv, http.MethodPatch, "/api/v1/scans/scan_1/findings/fnd_1", FalsePositiveRequest{IsFalsePositive: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.fpCalls) != 1 || stub.fpCalls[0] != "scan_1/fnd_1" {
		t.Fatalf("false positive call not forwarded: %v", stub.fpCalls)
	}
}

func TestScanStatisticsRoute(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/scans/scan_1/statistics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats Statistics
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalFindings != 1 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
}

func TestScanSubtreeUnknownResource(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/scans/scan_1/nonsense", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestReportRouteWithoutService(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodPost, "/api/v1/scans/scan_1/report", ReportRequest{Format: "csv"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when report service is absent, got %d", rec.Code)
	}
}

type stubReportService struct {
	result *ReportResult
	err    error
}

func (s *stubReportService) Generate(_ context.Context, _ string, _ ReportRequest) (*ReportResult, error) {
	return s.result, s.err
}

func TestReportRoute(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) {
		cfg.Reports = &stubReportService{result: &ReportResult{Path: "/reports/report_scan_1.csv", Format: "csv", FindingCount: 3}}
	})
	rec := doRequest(srv, http.MethodPost, "/api/v1/scans/scan_1/report", ReportRequest{Format: "csv"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var result ReportResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.FindingCount != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) { cfg.AuthToken = "sekrit" })

	rec := doRequest(srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Auth-Token", "wrong")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Auth-Token", "sekrit")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header on every response")
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodOptions, "/api/v1/scans", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Fatal("PATCH missing from allowed methods")
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) { cfg.CORSOrigins = []string{"https://dash.example.com"} })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("disallowed origin must not receive CORS headers")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://dash.example.com" {
		t.Fatal("allowed origin must be echoed back")
	}
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	srv := newTestServer(t, nil)
	for i := 0; i < 50; i++ {
		rec := doRequest(srv, http.MethodGet, "/api/v1/health", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d throttled with rate limiting disabled: %d", i, rec.Code)
		}
	}
}

func TestRateLimitEnforced(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) {
		cfg.RateLimit = 1
		cfg.RateBurst = 2
	})

	throttled := false
	for i := 0; i < 10; i++ {
		rec := doRequest(srv, http.MethodGet, "/api/v1/health", nil)
		if rec.Code == http.StatusTooManyRequests {
			throttled = true
			break
		}
	}
	if !throttled {
		t.Fatal("expected at least one throttled request")
	}
}

func TestJobsRouteWithoutService(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, http.MethodGet, "/api/v1/jobs", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when job service is absent, got %d", rec.Code)
	}
}

type stubJobService struct {
	manager *JobManager
	started []JobRequest
	err     error
}

func (s *stubJobService) StartJob(_ context.Context, req JobRequest) (*Job, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.started = append(s.started, req)
	return s.manager.CreateJob(req.Type, req.ScanID), nil
}

func (s *stubJobService) GetJob(_ context.Context, id string) (*Job, error) {
	return s.manager.GetJob(id), nil
}

func (s *stubJobService) ListJobs(_ context.Context, limit int) ([]Job, error) {
	return s.manager.ListJobs(limit), nil
}

func (s *stubJobService) Subscribe() (chan Job, func()) {
	return s.manager.Subscribe()
}

func TestStartJob(t *testing.T) {
	stub := &stubJobService{manager: NewJobManager()}
	srv := newTestServer(t, func(cfg *Config) { cfg.Jobs = stub })

	rec := doRequest(srv, http.MethodPost, "/api/v1/jobs", JobRequest{Type: "scan", ScanID: "scan_1"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var job Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatal(err)
	}
	if job.ID == "" || job.ScanID != "scan_1" {
		t.Fatalf("unexpected job: %+v", job)
	}

	rec = doRequest(srv, http.MethodGet, "/api/v1/jobs/"+job.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching the job, got %d", rec.Code)
	}
}

func TestStartJobRejectsBadRequest(t *testing.T) {
	stub := &stubJobService{manager: NewJobManager(), err: errors.New("unknown job type")}
	srv := newTestServer(t, func(cfg *Config) { cfg.Jobs = stub })

	rec := doRequest(srv, http.MethodPost, "/api/v1/jobs", JobRequest{Type: "bogus"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetJobNotFound(t *testing.T) {
	stub := &stubJobService{manager: NewJobManager()}
	srv := newTestServer(t, func(cfg *Config) { cfg.Jobs = stub })

	rec := doRequest(srv, http.MethodGet, "/api/v1/jobs/job_missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans?page=3&bad=zero&neg=-1", nil)
	if got := intQuery(req, "page", 1); got != 3 {
		t.Errorf("intQuery(page) = %d, want 3", got)
	}
	if got := intQuery(req, "missing", 7); got != 7 {
		t.Errorf("intQuery(missing) = %d, want fallback 7", got)
	}
	if got := intQuery(req, "bad", 7); got != 7 {
		t.Errorf("intQuery(bad) = %d, want fallback 7", got)
	}
	if got := intQuery(req, "neg", 7); got != 7 {
		t.Errorf("intQuery(neg) = %d, want fallback 7", got)
	}
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusTeapot, map[string]string{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
}
