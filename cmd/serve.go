package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dorkx-sec/dorkx-cli/internal/api"
	"github.com/dorkx-sec/dorkx-cli/internal/application"
	"github.com/dorkx-sec/dorkx-cli/internal/catalog"
	domainscan "github.com/dorkx-sec/dorkx-cli/internal/domain/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/report"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scanner as a REST API service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		authToken, _ := cmd.Flags().GetString("auth-token")
		shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
		corsOrigins, _ := cmd.Flags().GetStringSlice("cors-origins")
		rateLimit, _ := cmd.Flags().GetInt("rate-limit")
		rateBurst, _ := cmd.Flags().GetInt("rate-burst")

		// Structured logger for the HTTP surface
		zl, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() {
			if err := zl.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
			}
		}()

		jobManager := api.NewJobManager()
		jobService := &jobAPIService{manager: jobManager, app: app}

		server := api.NewServer(api.Config{
			Scans:       &scanAPIService{app: app, jobs: jobService},
			Targets:     &targetAPIService{app: app},
			Catalog:     &catalogAPIService{},
			Reports:     &reportAPIService{app: app},
			Health:      &healthAPIService{app: app},
			Jobs:        jobService,
			AuthToken:   authToken,
			Logger:      zl,
			CORSOrigins: corsOrigins,
			RateLimit:   rateLimit,
			RateBurst:   rateBurst,
		})

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      server,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("%s API server listening on %s (data dir: %s)\n", colorInfo("→"), addr, dataDir)
			fmt.Printf("%s Press Ctrl+C to gracefully shutdown\n", colorInfo("→"))
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			fmt.Printf("\n%s Received signal %v, initiating graceful shutdown...\n", colorInfo("→"), sig)

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				if closeErr := httpServer.Close(); closeErr != nil {
					return fmt.Errorf("failed to gracefully shutdown server: %w (close error: %v)", err, closeErr)
				}
				return fmt.Errorf("failed to gracefully shutdown server: %w", err)
			}

			fmt.Printf("%s Server shutdown complete\n", colorSuccess("✓"))
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address for the API server")
	serveCmd.Flags().String("auth-token", "", "Optional shared secret for API requests")
	serveCmd.Flags().Duration("shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")
	serveCmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (empty = allow all)")
	serveCmd.Flags().Int("rate-limit", 10, "Rate limit per IP (requests/second, 0 = disabled)")
	serveCmd.Flags().Int("rate-burst", 20, "Rate limit burst size")
	rootCmd.AddCommand(serveCmd)
}

type scanAPIService struct {
	app  *application.Container
	jobs *jobAPIService
}

func (s *scanAPIService) CreateScan(ctx context.Context, req api.ScanCreateRequest) (*api.Scan, error) {
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = "api"
	}
	sc, err := s.app.ScanService.CreateScan(ctx, req.TargetDomain, req.Profile, createdBy, req.ConsentConfirmed)
	if err != nil {
		return nil, err
	}
	// Execution is detached from the request; the created record reflects
	// the pending state and the job stream carries status transitions.
	if s.jobs != nil {
		if _, err := s.jobs.StartJob(ctx, api.JobRequest{Type: "scan", ScanID: sc.ID()}); err != nil {
			s.app.Logger.Warnw("failed to submit scan job", "scan_id", sc.ID(), "error", err)
		}
	}
	result := convertScan(sc)
	return &result, nil
}

func (s *scanAPIService) GetScan(ctx context.Context, id string) (*api.Scan, error) {
	sc, err := s.app.ScanService.GetScan(ctx, id)
	if err != nil {
		return nil, err
	}
	result := convertScan(sc)
	return &result, nil
}

func (s *scanAPIService) ListScans(ctx context.Context, page, pageSize int) (*api.ScanList, error) {
	scans, total, err := s.app.ScanService.ListScans(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	items := make([]api.Scan, 0, len(scans))
	for _, sc := range scans {
		items = append(items, convertScan(sc))
	}
	return &api.ScanList{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *scanAPIService) DeleteScan(ctx context.Context, id string) error {
	return s.app.ScanService.DeleteScan(ctx, id)
}

func (s *scanAPIService) GetQueries(ctx context.Context, id string) ([]api.Query, error) {
	queries, err := s.app.ScanService.Queries(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]api.Query, 0, len(queries))
	for _, q := range queries {
		resp = append(resp, convertQuery(q))
	}
	return resp, nil
}

func (s *scanAPIService) GetFindings(ctx context.Context, id string) (*api.FindingList, error) {
	findings, distribution, err := s.app.ScanService.Findings(ctx, id)
	if err != nil {
		return nil, err
	}
	items := make([]api.Finding, 0, len(findings))
	for _, f := range findings {
		items = append(items, convertFinding(f))
	}
	return &api.FindingList{
		Items:        items,
		Total:        len(items),
		Distribution: tierMapToStrings(distribution),
	}, nil
}

func (s *scanAPIService) SetFalsePositive(ctx context.Context, scanID, findingID string, value bool) error {
	return s.app.ScanService.MarkFalsePositive(ctx, scanID, findingID, value)
}

func (s *scanAPIService) GetStatistics(ctx context.Context, id string) (*api.Statistics, error) {
	stats, err := s.app.ScanService.GetStatistics(ctx, id)
	if err != nil {
		return nil, err
	}
	topRisks := make([]api.TopRisk, 0, len(stats.TopRisks))
	for _, tr := range stats.TopRisks {
		topRisks = append(topRisks, api.TopRisk{
			URL:      tr.URL,
			RiskTier: string(tr.Tier),
			Category: tr.Category,
			Title:    tr.Title,
		})
	}
	return &api.Statistics{
		TotalFindings:    stats.TotalFindings,
		RiskDistribution: tierMapToStrings(stats.RiskDistribution),
		Categories:       stats.Categories,
		TopRisks:         topRisks,
	}, nil
}

type targetAPIService struct {
	app *application.Container
}

func (s *targetAPIService) Validate(ctx context.Context, domain string) (*api.TargetValidation, error) {
	res := s.app.Validator.Validate(domain)
	return &api.TargetValidation{
		Valid:      res.Valid,
		Normalized: res.Normalized,
		Reason:     res.Reason,
		Warnings:   append([]string(nil), res.Warnings...),
	}, nil
}

type catalogAPIService struct{}

func (s *catalogAPIService) ListCategories(ctx context.Context) ([]api.Category, error) {
	categories := catalog.AllCategories()
	resp := make([]api.Category, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, api.Category{
			Key:            c.Key,
			Name:           c.Name,
			Description:    c.Description,
			RiskTier:       string(c.RiskTier),
			QueryCount:     len(c.Templates),
			WhatCanBeFound: c.WhatCanBeFound,
			WhyItMatters:   c.WhyItMatters,
		})
	}
	return resp, nil
}

type reportAPIService struct {
	app *application.Container
}

func (s *reportAPIService) Generate(ctx context.Context, scanID string, req api.ReportRequest) (*api.ReportResult, error) {
	format, err := report.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}

	sc, err := s.app.ScanService.GetScan(ctx, scanID)
	if err != nil {
		return nil, err
	}
	findings, _, err := s.app.ScanService.Findings(ctx, scanID)
	if err != nil {
		return nil, err
	}
	queries, err := s.app.ScanService.Queries(ctx, scanID)
	if err != nil {
		return nil, err
	}
	queryText := make(map[string]string, len(queries))
	for _, q := range queries {
		queryText[q.ID()] = q.Text()
	}

	path, err := s.app.ReportWriter.Generate(ctx, sc, findings, queryText, report.Options{
		Format:         format,
		IncludeLowRisk: req.IncludeLowRisk,
		IncludeInfo:    req.IncludeInfo,
	})
	if err != nil {
		return nil, err
	}
	return &api.ReportResult{
		Path:         path,
		Format:       string(format),
		FindingCount: len(findings),
	}, nil
}

type healthAPIService struct {
	app *application.Container
}

func (s *healthAPIService) Check(ctx context.Context) error {
	if s.app == nil || s.app.ScanRepo == nil {
		return fmt.Errorf("scan repository not configured")
	}
	return nil
}

func (s *healthAPIService) Ready(ctx context.Context) error {
	return s.Check(ctx)
}

type jobAPIService struct {
	manager *api.JobManager
	app     *application.Container
}

func (s *jobAPIService) StartJob(ctx context.Context, req api.JobRequest) (*api.Job, error) {
	jobType := strings.ToLower(strings.TrimSpace(req.Type))
	if jobType == "" {
		jobType = "scan"
	}
	if jobType != "scan" {
		return nil, fmt.Errorf("unsupported job type %s", req.Type)
	}
	if req.ScanID == "" {
		return nil, fmt.Errorf("scan_id required")
	}
	if _, err := s.app.ScanService.GetScan(ctx, req.ScanID); err != nil {
		return nil, err
	}
	job := s.manager.CreateJob(jobType, req.ScanID)
	go s.execute(job, req)
	return job, nil
}

func (s *jobAPIService) execute(job *api.Job, req api.JobRequest) {
	now := time.Now()
	s.manager.UpdateJob(job.ID, func(j *api.Job) {
		j.Status = "running"
		j.StartedAt = &now
	})
	// Deep scans pace queries, so allow a generous window.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := s.app.ScanService.Run(ctx, req.ScanID); err != nil {
		errTime := time.Now()
		s.manager.UpdateJob(job.ID, func(j *api.Job) {
			j.Status = "error"
			j.Error = err.Error()
			j.FinishedAt = &errTime
		})
		return
	}
	doneTime := time.Now()
	s.manager.UpdateJob(job.ID, func(j *api.Job) {
		j.Status = "done"
		j.FinishedAt = &doneTime
	})
}

func (s *jobAPIService) GetJob(ctx context.Context, id string) (*api.Job, error) {
	job := s.manager.GetJob(id)
	if job == nil {
		return nil, fmt.Errorf("job not found")
	}
	return job, nil
}

func (s *jobAPIService) ListJobs(ctx context.Context, limit int) ([]api.Job, error) {
	return s.manager.ListJobs(limit), nil
}

func (s *jobAPIService) Subscribe() (chan api.Job, func()) {
	return s.manager.Subscribe()
}

func convertScan(sc *domainscan.Scan) api.Scan {
	out := api.Scan{
		ID:            sc.ID(),
		TargetDomain:  sc.TargetDomain(),
		Profile:       sc.Profile(),
		Status:        string(sc.Status()),
		TotalQueries:  sc.TotalQueries(),
		TotalFindings: sc.TotalFindings(),
		StartedAt:     sc.StartedAt(),
		ErrorMessage:  sc.ErrorMessage(),
		CreatedBy:     sc.UserID(),
	}
	if !sc.CompletedAt().IsZero() {
		t := sc.CompletedAt()
		out.CompletedAt = &t
	}
	return out
}

func convertQuery(q *domainscan.Query) api.Query {
	out := api.Query{
		ID:           q.ID(),
		Category:     q.Category(),
		QueryText:    q.Text(),
		Priority:     q.Priority(),
		Status:       string(q.Status()),
		ResultCount:  q.ResultCount(),
		ErrorMessage: q.ErrorMessage(),
	}
	if !q.ExecutedAt().IsZero() {
		t := q.ExecutedAt()
		out.ExecutedAt = &t
	}
	return out
}

func convertFinding(f *domainscan.Finding) api.Finding {
	return api.Finding{
		ID:              f.ID(),
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
		DiscoveredAt:    f.DiscoveredAt(),
		IsFalsePositive: f.IsFalsePositive(),
	}
}

func tierMapToStrings(m map[risk.Tier]int) map[string]int {
	out := make(map[string]int, len(m))
	for tier, n := range m {
		out[string(tier)] = n
	}
	return out
}
