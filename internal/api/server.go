// Package api exposes the scanner over REST. The server speaks its own DTO
// types; callers adapt application services to the interfaces below.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dorkx-sec/dorkx-cli/internal/api/middleware"
)

type Scan struct {
	ID            string     `json:"id"`
	TargetDomain  string     `json:"target_domain"`
	Profile       string     `json:"profile"`
	Status        string     `json:"status"`
	TotalQueries  int        `json:"total_queries"`
	TotalFindings int        `json:"total_findings"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	CreatedBy     string     `json:"created_by,omitempty"`
}

type ScanCreateRequest struct {
	TargetDomain     string `json:"target_domain"`
	Profile          string `json:"profile"`
	ConsentConfirmed bool   `json:"consent_confirmed"`
	CreatedBy        string `json:"created_by"`
}

type ScanList struct {
	Items    []Scan `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type Query struct {
	ID           string     `json:"id"`
	Category     string     `json:"category"`
	QueryText    string     `json:"query_text"`
	Priority     int        `json:"priority"`
	Status       string     `json:"status"`
	ResultCount  int        `json:"result_count"`
	ErrorMessage string     `json:"error_message,omitempty"`
	ExecutedAt   *time.Time `json:"executed_at,omitempty"`
}

type Finding struct {
	ID              string    `json:"id"`
	QueryID         string    `json:"query_id"`
	URL             string    `json:"url"`
	Title           string    `json:"title,omitempty"`
	Snippet         string    `json:"snippet,omitempty"`
	FileType        string    `json:"file_type,omitempty"`
	Category        string    `json:"category"`
	RiskTier        string    `json:"risk_tier"`
	RiskRationale   string    `json:"risk_rationale,omitempty"`
	Compliance      string    `json:"compliance,omitempty"`
	Remediation     string    `json:"remediation,omitempty"`
	DiscoveredAt    time.Time `json:"discovered_at"`
	IsFalsePositive bool      `json:"is_false_positive"`
}

type FindingList struct {
	Items        []Finding      `json:"items"`
	Total        int            `json:"total"`
	Distribution map[string]int `json:"risk_distribution"`
}

type FalsePositiveRequest struct {
	IsFalsePositive bool `json:"is_false_positive"`
}

type TopRisk struct {
	URL      string `json:"url"`
	RiskTier string `json:"risk_tier"`
	Category string `json:"category"`
	Title    string `json:"title,omitempty"`
}

type Statistics struct {
	TotalFindings    int            `json:"total_findings"`
	RiskDistribution map[string]int `json:"risk_distribution"`
	Categories       map[string]int `json:"categories"`
	TopRisks         []TopRisk      `json:"top_risks"`
}

type TargetValidateRequest struct {
	Domain string `json:"domain"`
}

type TargetValidation struct {
	Valid      bool     `json:"valid"`
	Normalized string   `json:"normalized,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

type Category struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RiskTier       string   `json:"risk_tier"`
	QueryCount     int      `json:"query_count"`
	WhatCanBeFound []string `json:"what_can_be_found,omitempty"`
	WhyItMatters   string   `json:"why_it_matters,omitempty"`
}

type ReportRequest struct {
	Format         string `json:"format"`
	IncludeLowRisk bool   `json:"include_low_risk"`
	IncludeInfo    bool   `json:"include_info"`
}

type ReportResult struct {
	Path         string `json:"path"`
	Format       string `json:"format"`
	FindingCount int    `json:"finding_count"`
}

type ScanService interface {
	CreateScan(ctx context.Context, req ScanCreateRequest) (*Scan, error)
	GetScan(ctx context.Context, id string) (*Scan, error)
	ListScans(ctx context.Context, page, pageSize int) (*ScanList, error)
	DeleteScan(ctx context.Context, id string) error
	GetQueries(ctx context.Context, id string) ([]Query, error)
	GetFindings(ctx context.Context, id string) (*FindingList, error)
	SetFalsePositive(ctx context.Context, scanID, findingID string, value bool) error
	GetStatistics(ctx context.Context, id string) (*Statistics, error)
}

type TargetService interface {
	Validate(ctx context.Context, domain string) (*TargetValidation, error)
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

type ReportService interface {
	Generate(ctx context.Context, scanID string, req ReportRequest) (*ReportResult, error)
}

type HealthService interface {
	Check(ctx context.Context) error
	Ready(ctx context.Context) error
}

type JobService interface {
	StartJob(ctx context.Context, req JobRequest) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, limit int) ([]Job, error)
	Subscribe() (chan Job, func())
}

type Config struct {
	Scans     ScanService
	Targets   TargetService
	Catalog   CatalogService
	Reports   ReportService
	Health    HealthService
	Jobs      JobService
	AuthToken string
	Logger    *zap.Logger
	CORSOrigins []string // Allowed CORS origins (empty = allow all)
	RateLimit   int      // Requests per second per IP (0 = disabled)
	RateBurst   int      // Burst size for rate limiter
}

type Server struct {
	cfg      Config
	mux      *http.ServeMux
	limiters *rateLimiterMap
}

func NewServer(cfg Config) *Server {
	srv := &Server{
		cfg:      cfg,
		mux:      http.NewServeMux(),
		limiters: newRateLimiterMap(),
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Middleware chain: RequestID -> Logging -> RateLimit -> CORS -> Handler
	handler := middleware.RequestID(s.withLogging(s.withRateLimit(s.withCORS(s.mux))))
	handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.Handle("/api/v1/health", s.withAuth(http.HandlerFunc(s.handleHealth)))
	s.mux.Handle("/api/v1/ready", s.withAuth(http.HandlerFunc(s.handleReady)))
	s.mux.Handle("/api/v1/targets/validate", s.withAuth(http.HandlerFunc(s.handleTargetValidate)))
	s.mux.Handle("/api/v1/categories", s.withAuth(http.HandlerFunc(s.handleCategories)))
	s.mux.Handle("/api/v1/scans", s.withAuth(http.HandlerFunc(s.handleScans)))
	s.mux.Handle("/api/v1/scans/", s.withAuth(http.HandlerFunc(s.handleScanSubtree)))
	s.mux.Handle("/api/v1/jobs", s.withAuth(http.HandlerFunc(s.handleJobs)))
	s.mux.Handle("/api/v1/jobs/", s.withAuth(http.HandlerFunc(s.handleJobByID)))
	s.mux.Handle("/api/v1/jobs-stream", s.withAuth(http.HandlerFunc(s.handleJobStream)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	if s.cfg.Health != nil {
		if err := s.cfg.Health.Check(r.Context()); err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	if s.cfg.Health != nil {
		if err := s.cfg.Health.Ready(r.Context()); err != nil {
			s.writeError(w, r, http.StatusServiceUnavailable, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleTargetValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1048576) // 1MB limit
	var req TargetValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	result, err := s.cfg.Targets.Validate(r.Context(), req.Domain)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	categories, err := s.cfg.Catalog.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleScans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := intQuery(r, "page", 1)
		pageSize := intQuery(r, "page_size", 20)
		list, err := s.cfg.Scans.ListScans(r.Context(), page, pageSize)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, 1048576) // 1MB limit
		var req ScanCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		created, err := s.cfg.Scans.CreateScan(r.Context(), req)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		s.methodNotAllowed(w, r)
	}
}

// handleScanSubtree dispatches /api/v1/scans/{id} and its subresources:
// queries, findings, findings/{fid}, statistics, report.
func (s *Server) handleScanSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/scans/")
	segments := strings.Split(strings.Trim(rest, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		s.writeError(w, r, http.StatusNotFound, errors.New("scan ID required"))
		return
	}
	scanID := segments[0]

	switch {
	case len(segments) == 1:
		s.handleScanByID(w, r, scanID)
	case len(segments) == 2 && segments[1] == "queries":
		s.handleScanQueries(w, r, scanID)
	case len(segments) == 2 && segments[1] == "findings":
		s.handleScanFindings(w, r, scanID)
	case len(segments) == 3 && segments[1] == "findings":
		s.handleFindingByID(w, r, scanID, segments[2])
	case len(segments) == 2 && segments[1] == "statistics":
		s.handleScanStatistics(w, r, scanID)
	case len(segments) == 2 && segments[1] == "report":
		s.handleScanReport(w, r, scanID)
	default:
		s.writeError(w, r, http.StatusNotFound, errors.New("not found"))
	}
}

func (s *Server) handleScanByID(w http.ResponseWriter, r *http.Request, scanID string) {
	switch r.Method {
	case http.MethodGet:
		sc, err := s.cfg.Scans.GetScan(r.Context(), scanID)
		if err != nil {
			s.writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, sc)
	case http.MethodDelete:
		if err := s.cfg.Scans.DeleteScan(r.Context(), scanID); err != nil {
			s.writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": scanID})
	default:
		s.methodNotAllowed(w, r)
	}
}

func (s *Server) handleScanQueries(w http.ResponseWriter, r *http.Request, scanID string) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	queries, err := s.cfg.Scans.GetQueries(r.Context(), scanID)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, queries)
}

func (s *Server) handleScanFindings(w http.ResponseWriter, r *http.Request, scanID string) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	findings, err := s.cfg.Scans.GetFindings(r.Context(), scanID)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, findings)
}

func (s *Server) handleFindingByID(w http.ResponseWriter, r *http.Request, scanID, findingID string) {
	if r.Method != http.MethodPatch {
		s.methodNotAllowed(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1048576) // 1MB limit
	var req FalsePositiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.cfg.Scans.SetFalsePositive(r.Context(), scanID, findingID, req.IsFalsePositive); err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":                findingID,
		"is_false_positive": req.IsFalsePositive,
	})
}

func (s *Server) handleScanStatistics(w http.ResponseWriter, r *http.Request, scanID string) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	stats, err := s.cfg.Scans.GetStatistics(r.Context(), scanID)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleScanReport(w http.ResponseWriter, r *http.Request, scanID string) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}
	if s.cfg.Reports == nil {
		s.writeError(w, r, http.StatusNotFound, errors.New("report service not available"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1048576) // 1MB limit
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	result, err := s.cfg.Reports.Generate(r.Context(), scanID, req)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Jobs == nil {
		s.writeError(w, r, http.StatusNotFound, errors.New("job service not available"))
		return
	}
	switch r.Method {
	case http.MethodGet:
		limit := intQuery(r, "limit", 25)
		jobs, err := s.cfg.Jobs.ListJobs(r.Context(), limit)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, jobs)
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, 1048576) // 1MB limit
		var req JobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		job, err := s.cfg.Jobs.StartJob(r.Context(), req)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusAccepted, job)
	default:
		s.methodNotAllowed(w, r)
	}
}

func (s *Server) handleJobByID(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Jobs == nil {
		s.writeError(w, r, http.StatusNotFound, errors.New("job service not available"))
		return
	}
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")
	if id == "" {
		s.writeError(w, r, http.StatusNotFound, errors.New("job ID required"))
		return
	}
	job, err := s.cfg.Jobs.GetJob(r.Context(), id)
	if err != nil || job == nil {
		s.writeError(w, r, http.StatusNotFound, errors.New("job not found"))
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobStream(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Jobs == nil {
		s.writeError(w, r, http.StatusNotFound, errors.New("job service not available"))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, r, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	updates, unsubscribe := s.cfg.Jobs.Subscribe()
	defer unsubscribe()
	ctx := r.Context()
	for {
		select {
		case job, ok := <-updates:
			if !ok {
				return
			}
			payload, err := json.Marshal(job)
			if err != nil {
				if s.cfg.Logger != nil {
					s.cfg.Logger.Error("failed to marshal job", zap.Error(err))
				}
				continue
			}
			if !s.writeStreamChunk(w, []byte("event: job\n")) {
				return
			}
			if !s.writeStreamChunk(w, []byte("data: ")) {
				return
			}
			if !s.writeStreamChunk(w, payload) {
				return
			}
			if !s.writeStreamChunk(w, []byte("\n\n")) {
				return
			}
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func intQuery(r *http.Request, key string, fallback int) int {
	if q := r.URL.Query().Get(key); q != "" {
		if parsed, err := strconv.Atoi(q); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.RateLimit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		// Extract client IP (handle X-Forwarded-For for proxied requests)
		clientIP := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			if idx := strings.Index(forwarded, ","); idx > 0 {
				clientIP = strings.TrimSpace(forwarded[:idx])
			} else {
				clientIP = strings.TrimSpace(forwarded)
			}
		}
		if idx := strings.LastIndex(clientIP, ":"); idx > 0 {
			clientIP = clientIP[:idx]
		}

		limiter := s.limiters.getLimiter(clientIP, s.cfg.RateLimit, s.cfg.RateBurst)
		if !limiter.Allow() {
			if s.cfg.Logger != nil {
				s.requestLogger(r).Warn("rate_limit_exceeded",
					zap.String("client_ip", clientIP),
				)
			}
			s.writeError(w, r, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowOrigin := "*"
		if len(s.cfg.CORSOrigins) > 0 {
			allowed := false
			for _, allowedOrigin := range s.cfg.CORSOrigins {
				if allowedOrigin == origin {
					allowed = true
					allowOrigin = origin
					break
				}
			}
			if !allowed {
				allowOrigin = ""
			}
		}

		if allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Auth-Token")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		if s.cfg.Logger != nil {
			requestID := middleware.GetRequestID(r.Context())
			s.cfg.Logger.Info("http_request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", lrw.statusCode),
				zap.Duration("duration", duration),
				zap.Int64("bytes", lrw.bytesWritten),
			)
		}
	})
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.cfg.AuthToken == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Auth-Token")
		// Constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AuthToken)) != 1 {
			s.writeError(w, r, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code and bytes written
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(b)
	lrw.bytesWritten += int64(n)
	return n, err
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	msg := err.Error()

	// 5xx details stay server-side; the client gets a generic message.
	if status >= 500 {
		if s.cfg.Logger != nil {
			s.requestLogger(r).Error("internal_server_error",
				zap.Error(err),
				zap.Int("status", status),
			)
		}
		msg = "internal server error"
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger creates a logger with request context (request ID, method, path)
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if s.cfg.Logger == nil {
		return zap.NewNop()
	}

	requestID := middleware.GetRequestID(r.Context())
	return s.cfg.Logger.With(
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func (s *Server) writeStreamChunk(w http.ResponseWriter, data []byte) bool {
	if _, err := w.Write(data); err != nil {
		if s.cfg.Logger != nil {
			s.cfg.Logger.Error("failed to write stream chunk", zap.Error(err))
		}
		return false
	}
	return true
}

// rateLimiterMap manages per-IP rate limiters with automatic cleanup
type rateLimiterMap struct {
	mu       sync.RWMutex
	limiters map[string]*ipLimiter
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiterMap() *rateLimiterMap {
	m := &rateLimiterMap{
		limiters: make(map[string]*ipLimiter),
	}
	go m.cleanupLoop()
	return m
}

func (m *rateLimiterMap) getLimiter(ip string, rps, burst int) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, exists := m.limiters[ip]
	if !exists {
		limiter = &ipLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), burst),
			lastSeen: time.Now(),
		}
		m.limiters[ip] = limiter
	} else {
		limiter.lastSeen = time.Now()
	}

	return limiter.limiter
}

// cleanupLoop removes limiters that haven't been used in 5 minutes
func (m *rateLimiterMap) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		for ip, limiter := range m.limiters {
			if time.Since(limiter.lastSeen) > 5*time.Minute {
				delete(m.limiters, ip)
			}
		}
		m.mu.Unlock()
	}
}
