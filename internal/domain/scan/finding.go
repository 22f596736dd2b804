package scan

import (
	"time"

	"github.com/dorkx-sec/dorkx-cli/internal/risk"
	sharedErrors "github.com/dorkx-sec/dorkx-cli/internal/shared/errors"
)

// Finding is one normalized, risk-classified search result. A finding
// always references its scan and the query that produced it; the query
// reference survives even if the query record is later removed.
type Finding struct {
	id              string
	scanID          string
	queryID         string
	url             string
	title           string
	snippet         string
	fileType        string
	category        string
	riskTier        risk.Tier
	riskRationale   string
	compliance      string
	remediation     string
	discoveredAt    time.Time
	isFalsePositive bool
}

// FindingParams carries the classified payload for a new finding.
type FindingParams struct {
	ScanID      string
	QueryID     string
	URL         string
	Title       string
	Snippet     string
	FileType    string
	Category    string
	Assessment  risk.Assessment
}

// NewFinding creates a finding from a classified search result.
func NewFinding(p FindingParams) (*Finding, error) {
	if p.URL == "" {
		return nil, sharedErrors.ErrEmptyURL
	}

	tier := p.Assessment.Tier
	if !tier.Valid() {
		tier = risk.TierInfo
	}

	return &Finding{
		id:            generateID("fnd"),
		scanID:        p.ScanID,
		queryID:       p.QueryID,
		url:           p.URL,
		title:         p.Title,
		snippet:       p.Snippet,
		fileType:      p.FileType,
		category:      p.Category,
		riskTier:      tier,
		riskRationale: p.Assessment.Rationale,
		compliance:    p.Assessment.Compliance,
		remediation:   p.Assessment.Remediation,
		discoveredAt:  time.Now().UTC(),
	}, nil
}

// ReconstructFinding rebuilds a finding from persisted data.
func ReconstructFinding(id, scanID, queryID, url, title, snippet, fileType, category string,
	tier risk.Tier, rationale, compliance, remediation string,
	discoveredAt time.Time, isFalsePositive bool) *Finding {
	return &Finding{
		id:              id,
		scanID:          scanID,
		queryID:         queryID,
		url:             url,
		title:           title,
		snippet:         snippet,
		fileType:        fileType,
		category:        category,
		riskTier:        tier,
		riskRationale:   rationale,
		compliance:      compliance,
		remediation:     remediation,
		discoveredAt:    discoveredAt,
		isFalsePositive: isFalsePositive,
	}
}

// SetFalsePositive flips the operator triage flag. This is the only
// mutation allowed on a persisted finding.
func (f *Finding) SetFalsePositive(v bool) {
	f.isFalsePositive = v
}

// Getters

func (f *Finding) ID() string              { return f.id }
func (f *Finding) ScanID() string          { return f.scanID }
func (f *Finding) QueryID() string         { return f.queryID }
func (f *Finding) URL() string             { return f.url }
func (f *Finding) Title() string           { return f.title }
func (f *Finding) Snippet() string         { return f.snippet }
func (f *Finding) FileType() string        { return f.fileType }
func (f *Finding) Category() string        { return f.category }
func (f *Finding) RiskTier() risk.Tier     { return f.riskTier }
func (f *Finding) RiskRationale() string   { return f.riskRationale }
func (f *Finding) Compliance() string      { return f.compliance }
func (f *Finding) Remediation() string     { return f.remediation }
func (f *Finding) DiscoveredAt() time.Time { return f.discoveredAt }
func (f *Finding) IsFalsePositive() bool   { return f.isFalsePositive }
