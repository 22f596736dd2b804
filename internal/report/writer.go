// Package report renders a scan's findings into exportable files. CSV is
// the canonical flat export; HTML renders an embedded template; PDF goes
// through gofpdf. The writer never filters silently: low and info findings
// are dropped only when the caller asks for it.
package report

import (
	"bytes"
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/dorkx-sec/dorkx-cli/internal/compliance"
	"github.com/dorkx-sec/dorkx-cli/internal/domain/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
	"github.com/dorkx-sec/dorkx-cli/internal/shared/constants"
	"github.com/dorkx-sec/dorkx-cli/internal/shared/security"
)

//go:embed templates/report.html
var templateFS embed.FS

// Format selects the output file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a format selector.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("invalid report format: %s (must be csv, html, or pdf)", s)
}

// Options controls finding filtering.
type Options struct {
	Format         Format
	IncludeLowRisk bool
	IncludeInfo    bool
}

// csvHeader is the fixed column layout of the CSV export.
var csvHeader = []string{
	"ID", "URL", "Title", "Snippet", "File Type", "Category", "Risk Level",
	"Risk Rationale", "Compliance Mapping", "Remediation", "Discovered At",
	"Is False Positive", "Query",
}

var htmlTemplate = template.Must(
	template.New("report.html").Funcs(template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}).ParseFS(templateFS, "templates/report.html"),
)

// Writer renders reports under a storage root.
type Writer struct {
	storageDir string
	logger     *zap.SugaredLogger
}

// NewWriter creates the writer and its storage directory.
func NewWriter(storageDir string, logger *zap.SugaredLogger) (*Writer, error) {
	if storageDir == "" {
		return nil, fmt.Errorf("report storage path cannot be empty")
	}
	if err := os.MkdirAll(storageDir, constants.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Writer{storageDir: storageDir, logger: logger}, nil
}

// Generate renders the scan's filtered findings in the requested format and
// returns the written file path. queryText maps query IDs to their dork
// strings for the Query column.
func (w *Writer) Generate(ctx context.Context, sc *scan.Scan, findings []*scan.Finding, queryText map[string]string, opts Options) (string, error) {
	filtered := filterFindings(findings, opts)

	path, err := security.ResolveWithin(w.storageDir, fmt.Sprintf("report_%s.%s", sc.ID(), opts.Format))
	if err != nil {
		return "", err
	}

	switch opts.Format {
	case FormatCSV:
		err = w.writeCSV(path, filtered, queryText)
	case FormatHTML:
		err = w.writeHTML(path, sc, filtered, queryText)
	case FormatPDF:
		err = w.writePDF(path, sc, filtered)
	default:
		return "", fmt.Errorf("invalid report format: %s", opts.Format)
	}
	if err != nil {
		return "", err
	}

	w.logger.Infow("report generated", "scan_id", sc.ID(), "format", opts.Format, "path", path, "findings", len(filtered))
	return path, nil
}

func filterFindings(findings []*scan.Finding, opts Options) []*scan.Finding {
	out := make([]*scan.Finding, 0, len(findings))
	for _, f := range findings {
		if !opts.IncludeLowRisk && f.RiskTier() == risk.TierLow {
			continue
		}
		if !opts.IncludeInfo && f.RiskTier() == risk.TierInfo {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (w *Writer) writeCSV(path string, findings []*scan.Finding, queryText map[string]string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, f := range findings {
		row := []string{
			f.ID(),
			f.URL(),
			f.Title(),
			f.Snippet(),
			f.FileType(),
			f.Category(),
			string(f.RiskTier()),
			f.RiskRationale(),
			f.Compliance(),
			f.Remediation(),
			f.DiscoveredAt().Format(time.RFC3339),
			strconv.FormatBool(f.IsFalsePositive()),
			queryText[f.QueryID()],
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// templateData is the view model for the HTML report.
type templateData struct {
	TargetDomain string
	Profile      string
	ScanID       string
	GeneratedAt  string
	StartedAt    string
	CompletedAt  string
	Total        int
	Distribution []tierCount
	Findings     []findingView
	Frameworks   []compliance.Framework
}

type tierCount struct {
	Tier  string
	Count int
}

type findingView struct {
	URL         string
	Title       string
	Snippet     string
	FileType    string
	Category    string
	Tier        string
	Rationale   string
	Compliance  string
	Remediation string
	Query       string
}

func (w *Writer) writeHTML(path string, sc *scan.Scan, findings []*scan.Finding, queryText map[string]string) error {
	data := buildTemplateData(sc, findings, queryText)

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), constants.DefaultFilePerm); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	return nil
}

func buildTemplateData(sc *scan.Scan, findings []*scan.Finding, queryText map[string]string) templateData {
	counts := map[risk.Tier]int{}
	views := make([]findingView, 0, len(findings))
	for _, f := range findings {
		counts[f.RiskTier()]++
		views = append(views, findingView{
			URL:         f.URL(),
			Title:       f.Title(),
			Snippet:     f.Snippet(),
			FileType:    f.FileType(),
			Category:    f.Category(),
			Tier:        string(f.RiskTier()),
			Rationale:   f.RiskRationale(),
			Compliance:  f.Compliance(),
			Remediation: f.Remediation(),
			Query:       queryText[f.QueryID()],
		})
	}

	// Highest severity first in the table.
	sort.SliceStable(views, func(i, j int) bool {
		return risk.Tier(views[i].Tier).Rank() > risk.Tier(views[j].Tier).Rank()
	})

	distribution := make([]tierCount, 0, 5)
	for _, tier := range []risk.Tier{risk.TierCritical, risk.TierHigh, risk.TierMedium, risk.TierLow, risk.TierInfo} {
		distribution = append(distribution, tierCount{Tier: tier.Label(), Count: counts[tier]})
	}

	data := templateData{
		TargetDomain: sc.TargetDomain(),
		Profile:      sc.Profile(),
		ScanID:       sc.ID(),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		StartedAt:    sc.StartedAt().Format(time.RFC3339),
		Total:        len(findings),
		Distribution: distribution,
		Findings:     views,
		Frameworks:   compliance.SupportedFrameworks(),
	}
	if !sc.CompletedAt().IsZero() {
		data.CompletedAt = sc.CompletedAt().Format(time.RFC3339)
	}
	return data
}

func (w *Writer) writePDF(path string, sc *scan.Scan, findings []*scan.Finding) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reconnaissance Report - "+sc.TargetDomain(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "OSINT Reconnaissance Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Target: %s", sc.TargetDomain()))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Profile: %s", sc.Profile()))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Scan ID: %s", sc.ID()))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Findings included: %d", len(findings)))
	pdf.Ln(12)

	counts := map[risk.Tier]int{}
	for _, f := range findings {
		counts[f.RiskTier()]++
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Risk Distribution")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, tier := range []risk.Tier{risk.TierCritical, risk.TierHigh, risk.TierMedium, risk.TierLow, risk.TierInfo} {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", tier.Label(), counts[tier]))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Findings")
	pdf.Ln(9)

	for i, f := range findings {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. [%s] %s", i+1, f.RiskTier().Label(), f.URL()), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		if f.Title() != "" {
			pdf.MultiCell(0, 5, "Title: "+f.Title(), "", "L", false)
		}
		pdf.MultiCell(0, 5, "Category: "+f.Category(), "", "L", false)
		if f.RiskRationale() != "" {
			pdf.MultiCell(0, 5, "Rationale: "+f.RiskRationale(), "", "L", false)
		}
		if f.Compliance() != "" {
			pdf.MultiCell(0, 5, "Compliance: "+f.Compliance(), "", "L", false)
		}
		if f.Remediation() != "" {
			pdf.MultiCell(0, 5, "Remediation: "+f.Remediation(), "", "L", false)
		}
		pdf.Ln(3)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}
