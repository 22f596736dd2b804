// Package risk classifies discovered URLs into severity tiers with a
// rationale, a compliance mapping and remediation guidance. Classification
// is a pure function over fixed tables: the same URL and category always
// produce the same assessment, and unknown categories degrade to generated
// fallback text instead of failing.
package risk

import (
	"fmt"
	"strings"
)

// Assessment is the classification outcome for one URL.
type Assessment struct {
	Tier        Tier
	Rationale   string
	Compliance  string
	Remediation string
}

// URL substrings that force a tier regardless of the owning category.
// Matching is case-insensitive; the critical list wins over the high list.
var (
	criticalURLPatterns = []string{".git/", ".env", "password", "secret", "api_key", "credentials"}
	highURLPatterns     = []string{".sql", ".bak", "backup", "database", "/config", "private"}
)

// categoryDefaultTiers is the fallback tier table applied when no URL
// pattern matches.
var categoryDefaultTiers = map[string]Tier{
	"credentials":      TierCritical,
	"api_keys":         TierCritical,
	"databases":        TierCritical,
	"backup_files":     TierHigh,
	"source_code":      TierHigh,
	"exposed_files":    TierHigh,
	"admin_panels":     TierMedium,
	"misconfiguration": TierMedium,
}

// Classify maps a result URL and its owning category to an assessment.
// URL-pattern overrides take precedence over the category default.
func Classify(url, category string) Assessment {
	tier := classifyTier(url, category)
	return Assessment{
		Tier:        tier,
		Rationale:   rationaleFor(category, tier),
		Compliance:  complianceFor(category),
		Remediation: remediationFor(category, tier),
	}
}

// CategoryDefaultTier returns the tier the classifier would assign to a
// category absent any URL signal.
func CategoryDefaultTier(category string) Tier {
	if tier, ok := categoryDefaultTiers[category]; ok {
		return tier
	}
	return TierLow
}

func classifyTier(url, category string) Tier {
	lowered := strings.ToLower(url)
	for _, pattern := range criticalURLPatterns {
		if strings.Contains(lowered, pattern) {
			return TierCritical
		}
	}
	for _, pattern := range highURLPatterns {
		if strings.Contains(lowered, pattern) {
			return TierHigh
		}
	}
	return CategoryDefaultTier(category)
}

func rationaleFor(category string, tier Tier) string {
	if r, ok := categoryRationales[category]; ok {
		return r
	}
	return fmt.Sprintf("Results in the %s category default to %s risk based on the exposure class they represent.", category, tier.Label())
}

func complianceFor(category string) string {
	if m, ok := categoryCompliance[category]; ok {
		return m
	}
	return "OWASP A05:2021 - Security Misconfiguration"
}

func remediationFor(category string, tier Tier) string {
	if r, ok := categoryRemediations[category]; ok {
		return r
	}
	return fmt.Sprintf("Review the exposed resource, remove it from public indexes if unintended, and treat it with %s priority.", tier.Label())
}
