package scan

import (
	"fmt"

	"github.com/dorkx-sec/dorkx-cli/internal/catalog"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
	"github.com/dorkx-sec/dorkx-cli/internal/search"
)

// Synthetic findings stand in for live results when no search credential is
// configured, so the whole pipeline stays exercisable in development and
// tests. The substitution is deterministic: the count scales with the
// category's catalog tier (critical 2, high 1, otherwise 0) and a small
// allow-list forces one result for selected medium categories.

var forceOneSynthetic = map[string]struct{}{
	"error_messages": {},
	"cms_frameworks": {},
}

// syntheticURLPaths gives each category a recognizable exposure shape.
// Categories not listed fall back to a path named after the category.
var syntheticURLPaths = map[string][]string{
	"credentials":              {"/.env", "/config/credentials.txt"},
	"database_exposure":        {"/backup/database.sql", "/phpmyadmin/"},
	"pii":                      {"/files/employees.xlsx", "/exports/contacts.csv"},
	"cloud_storage":            {"/s3/backup/", "/storage/private/"},
	"login_pages":              {"/admin", "/login"},
	"sensitive_files":          {"/documents/internal.pdf", "/files/report.docx"},
	"source_code":              {"/.git/config", "/app.js.map"},
	"apis_services":            {"/api/v1/", "/swagger/index.html"},
	"logs_reports":             {"/logs/debug.log", "/logs/access.log"},
	"misconfigurations":        {"/console", "/.well-known/"},
	"vulnerability_indicators": {"/upload/", "/test/"},
	"subdomains":               {"/staging/", "/dev/"},
	"iot_devices":              {"/camera/", "/router/"},
	"error_messages":           {"/error?trace=1", "/debug/stack"},
	"cms_frameworks":           {"/wp-admin/", "/wp-content/plugins/"},
}

func syntheticCount(category string) int {
	if _, ok := forceOneSynthetic[category]; ok {
		return 1
	}
	tier := risk.TierLow
	if cat, ok := catalog.CategoryInfo(category); ok {
		tier = cat.RiskTier
	}
	switch tier {
	case risk.TierCritical:
		return 2
	case risk.TierHigh:
		return 1
	default:
		return 0
	}
}

func syntheticResults(category, domain string) []search.RawResult {
	count := syntheticCount(category)
	if count == 0 {
		return nil
	}

	paths, ok := syntheticURLPaths[category]
	if !ok {
		paths = []string{"/" + category}
	}

	results := make([]search.RawResult, 0, count)
	for i := 0; i < count; i++ {
		path := paths[i%len(paths)]
		url := fmt.Sprintf("https://%s%s", domain, path)
		results = append(results, search.RawResult{
			URL:      url,
			Title:    fmt.Sprintf("Example %s exposure on %s", category, domain),
			Snippet:  "Synthetic placeholder result generated without live search credentials.",
			FileType: search.InferFileType(url),
		})
	}
	return results
}
