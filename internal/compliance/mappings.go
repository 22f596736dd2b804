// Package compliance maps reconnaissance categories to the regulatory
// frameworks a finding in that category typically violates. Reports use
// these references alongside the classifier's OWASP mapping.
package compliance

// Framework represents a compliance or regulatory framework.
type Framework struct {
	ID          string // Unique identifier (e.g., "iso27001", "gdpr")
	Name        string // Display name
	Description string
	Region      string
}

// CategoryMapping maps one dork category to framework requirement IDs.
type CategoryMapping struct {
	Category   string
	Frameworks map[string][]string // Framework ID -> Requirement IDs
	Priority   map[string]string   // Framework ID -> Priority
}

// SupportedFrameworks returns the frameworks referenced by category mappings.
func SupportedFrameworks() []Framework {
	return []Framework{
		{
			ID:          "iso27001",
			Name:        "ISO/IEC 27001:2022",
			Description: "Information Security Management System standard",
			Region:      "Global",
		},
		{
			ID:          "gdpr",
			Name:        "GDPR",
			Description: "EU General Data Protection Regulation",
			Region:      "EU",
		},
		{
			ID:          "pcidss",
			Name:        "PCI DSS v4.0",
			Description: "Payment Card Industry Data Security Standard",
			Region:      "Global",
		},
		{
			ID:          "nist",
			Name:        "NIST SP 800-53 Rev. 5",
			Description: "Security and Privacy Controls for Information Systems",
			Region:      "US",
		},
	}
}

// GetCategoryMappings returns framework references per dork category.
// Categories absent from this table simply render without framework detail.
func GetCategoryMappings() map[string]CategoryMapping {
	return map[string]CategoryMapping{
		"credentials": {
			Category: "credentials",
			Frameworks: map[string][]string{
				"iso27001": {"A.5.17", "A.8.24"},
				"pcidss":   {"8.3", "8.6"},
				"nist":     {"IA-5", "SC-28"},
			},
			Priority: map[string]string{
				"iso27001": "Critical", "pcidss": "Critical", "nist": "Critical",
			},
		},
		"database_exposure": {
			Category: "database_exposure",
			Frameworks: map[string][]string{
				"iso27001": {"A.8.12", "A.8.24"},
				"gdpr":     {"Art. 32"},
				"pcidss":   {"3.5", "7.2"},
			},
			Priority: map[string]string{
				"iso27001": "Critical", "gdpr": "Critical", "pcidss": "Critical",
			},
		},
		"pii": {
			Category: "pii",
			Frameworks: map[string][]string{
				"iso27001": {"A.5.34"},
				"gdpr":     {"Art. 5", "Art. 32", "Art. 33"},
				"nist":     {"PT-2"},
			},
			Priority: map[string]string{
				"iso27001": "Critical", "gdpr": "Critical", "nist": "High",
			},
		},
		"cloud_storage": {
			Category: "cloud_storage",
			Frameworks: map[string][]string{
				"iso27001": {"A.5.23", "A.8.3"},
				"nist":     {"AC-3", "AC-6"},
			},
			Priority: map[string]string{
				"iso27001": "Critical", "nist": "Critical",
			},
		},
		"login_pages": {
			Category: "login_pages",
			Frameworks: map[string][]string{
				"iso27001": {"A.8.2", "A.8.5"},
				"pcidss":   {"8.4"},
				"nist":     {"AC-7", "IA-2"},
			},
			Priority: map[string]string{
				"iso27001": "High", "pcidss": "High", "nist": "High",
			},
		},
		"sensitive_files": {
			Category: "sensitive_files",
			Frameworks: map[string][]string{
				"iso27001": {"A.5.12", "A.8.3"},
				"gdpr":     {"Art. 32"},
			},
			Priority: map[string]string{
				"iso27001": "High", "gdpr": "High",
			},
		},
		"source_code": {
			Category: "source_code",
			Frameworks: map[string][]string{
				"iso27001": {"A.8.4", "A.8.9"},
				"nist":     {"SA-3", "CM-5"},
			},
			Priority: map[string]string{
				"iso27001": "High", "nist": "High",
			},
		},
		"apis_services": {
			Category: "apis_services",
			Frameworks: map[string][]string{
				"iso27001": {"A.8.9", "A.8.26"},
				"nist":     {"AC-3", "SC-8"},
			},
			Priority: map[string]string{
				"iso27001": "High", "nist": "High",
			},
		},
		"logs_reports": {
			Category: "logs_reports",
			Frameworks: map[string][]string{
				"iso27001": {"A.8.15"},
				"pcidss":   {"10.3"},
			},
			Priority: map[string]string{
				"iso27001": "High", "pcidss": "High",
			},
		},
		"misconfigurations": {
			Category: "misconfigurations",
			Frameworks: map[string][]string{
				"iso27001": {"A.8.9"},
				"nist":     {"CM-6"},
			},
			Priority: map[string]string{
				"iso27001": "High", "nist": "High",
			},
		},
		"vulnerability_indicators": {
			Category: "vulnerability_indicators",
			Frameworks: map[string][]string{
				"iso27001": {"A.8.8"},
				"nist":     {"RA-5"},
			},
			Priority: map[string]string{
				"iso27001": "High", "nist": "High",
			},
		},
		"subdomains": {
			Category: "subdomains",
			Frameworks: map[string][]string{
				"iso27001": {"A.5.9", "A.8.9"},
			},
			Priority: map[string]string{
				"iso27001": "Medium",
			},
		},
	}
}
