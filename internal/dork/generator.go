// Package dork turns a target domain and a scan profile into the ordered
// set of concrete dork queries a scan will execute.
package dork

import (
	"strings"

	"github.com/dorkx-sec/dorkx-cli/internal/catalog"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
)

// Profile selects how broad a scan is.
type Profile string

const (
	ProfileQuick    Profile = "quick"
	ProfileStandard Profile = "standard"
	ProfileDeep     Profile = "deep"
)

// ParseProfile maps a raw string to a known profile. Anything unrecognized
// falls back to the standard profile rather than failing.
func ParseProfile(s string) Profile {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case ProfileQuick:
		return ProfileQuick
	case ProfileDeep:
		return ProfileDeep
	default:
		return ProfileStandard
	}
}

// Query is one generated dork: the resolved query string, its owning
// category and the execution priority derived from the category tier.
type Query struct {
	Category string
	Text     string
	Priority int
	Domain   string
}

// quickCategories runs only the categories most likely to expose an
// immediate compromise path.
var quickCategories = []string{
	"credentials",
	"database_exposure",
	"pii",
	"cloud_storage",
	"login_pages",
}

var standardCategories = []string{
	"credentials",
	"database_exposure",
	"pii",
	"cloud_storage",
	"login_pages",
	"sensitive_files",
	"source_code",
	"apis_services",
	"logs_reports",
	"misconfigurations",
	"vulnerability_indicators",
	"subdomains",
}

// deepCategories covers the full taxonomy, highest-risk categories first.
var deepCategories = []string{
	"credentials",
	"database_exposure",
	"pii",
	"cloud_storage",
	"vulnerability_indicators",
	"login_pages",
	"sensitive_files",
	"source_code",
	"apis_services",
	"logs_reports",
	"misconfigurations",
	"subdomains",
	"cms_frameworks",
	"error_messages",
	"network_info",
	"communications",
	"cached_data",
	"iot_devices",
	"osint",
	"internal_docs",
}

// CategoriesFor resolves a profile to its ordered category keys. The lookup
// is a fixed table; it is never derived from the catalog at runtime.
func CategoriesFor(p Profile) []string {
	var src []string
	switch p {
	case ProfileQuick:
		src = quickCategories
	case ProfileDeep:
		src = deepCategories
	default:
		src = standardCategories
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// PriorityFor maps a category risk tier to an execution priority.
func PriorityFor(tier risk.Tier) int {
	switch tier {
	case risk.TierCritical:
		return 10
	case risk.TierHigh:
		return 8
	case risk.TierMedium:
		return 5
	default:
		return 1
	}
}

// Generate produces the concrete query list for one scan. Output order is
// category order, then template order within each category; the executor
// relies on this ordering so the highest-value queries run first under
// partial failure. Generation is deterministic and has no error cases: an
// unknown profile uses the standard category set and categories missing
// from the catalog are skipped.
func Generate(domain string, profile Profile) []Query {
	var queries []Query
	for _, key := range CategoriesFor(profile) {
		cat, ok := catalog.CategoryInfo(key)
		if !ok {
			continue
		}
		priority := PriorityFor(cat.RiskTier)
		for _, tpl := range cat.Templates {
			queries = append(queries, Query{
				Category: key,
				Text:     strings.ReplaceAll(tpl, catalog.DomainPlaceholder, domain),
				Priority: priority,
				Domain:   domain,
			})
		}
	}
	return queries
}

// Count returns how many queries Generate would produce for a profile.
func Count(profile Profile) int {
	total := 0
	for _, key := range CategoriesFor(profile) {
		total += catalog.TemplateCount(key)
	}
	return total
}
