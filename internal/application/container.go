package application

import (
	"fmt"

	"go.uber.org/zap"

	scanapp "github.com/dorkx-sec/dorkx-cli/internal/application/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/domain/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/infrastructure/persistence/json"
	"github.com/dorkx-sec/dorkx-cli/internal/report"
	"github.com/dorkx-sec/dorkx-cli/internal/search"
	"github.com/dorkx-sec/dorkx-cli/internal/shared/constants"
	"github.com/dorkx-sec/dorkx-cli/internal/target"
)

// Config carries everything the container needs to wire the application.
type Config struct {
	DataDir   string
	ReportDir string
	// Search credentials in failover order; empty or placeholder pairs
	// leave the provider unconfigured and scans fall back to synthetic
	// findings.
	Credentials    []search.Credential
	MaxResults     int
	BlockedTLDs    []string
	BlockedDomains []string
	Logger         *zap.SugaredLogger
}

// Container holds all application services and repositories
// This is a simple dependency injection container
type Container struct {
	ScanRepo scan.Repository

	Validator    *target.Validator
	Provider     *search.GoogleProvider
	Executor     *scanapp.Executor
	ScanService  *scanapp.Service
	ReportWriter *report.Writer

	Logger *zap.SugaredLogger
}

// NewContainer creates a new application service container
func NewContainer(cfg Config) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	scanRepo, err := json.NewScanRepository(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan repository: %w", err)
	}

	reportWriter, err := report.NewWriter(cfg.ReportDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create report writer: %w", err)
	}

	validator := target.NewValidator(cfg.BlockedTLDs, cfg.BlockedDomains)

	provider := search.NewGoogleProvider(search.Config{
		Credentials: cfg.Credentials,
		QueryDelay:  constants.QueryDelay,
		Logger:      logger,
	})

	executor := scanapp.NewExecutor(scanRepo, provider, cfg.MaxResults, logger)
	scanService := scanapp.NewService(scanRepo, validator, executor, logger)

	return &Container{
		ScanRepo:     scanRepo,
		Validator:    validator,
		Provider:     provider,
		Executor:     executor,
		ScanService:  scanService,
		ReportWriter: reportWriter,
		Logger:       logger,
	}, nil
}
