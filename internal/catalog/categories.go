package catalog

import "github.com/dorkx-sec/dorkx-cli/internal/risk"

// categoryOrder is the canonical numbering of the taxonomy. It drives the
// display order of AllCategories; scan profiles keep their own ordering.
var categoryOrder = []string{
	"sensitive_files",
	"login_pages",
	"credentials",
	"error_messages",
	"source_code",
	"database_exposure",
	"pii",
	"subdomains",
	"cloud_storage",
	"apis_services",
	"cms_frameworks",
	"network_info",
	"logs_reports",
	"communications",
	"cached_data",
	"iot_devices",
	"vulnerability_indicators",
	"osint",
	"misconfigurations",
	"internal_docs",
}

var categories = map[string]Category{
	"sensitive_files": {
		Key:         "sensitive_files",
		Name:        "1. Sensitive Files & Documents",
		Description: "PDFs, DOCX, XLSX, PPT files unintentionally exposed via search engines",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			"PDFs, DOCX, XLSX, PPT files",
			"Backup files: .bak, .old, .zip, .tar.gz",
			"Database dumps: .sql, .db",
		},
		WhyItMatters: "May contain credentials, internal paths, API keys, emails, IPs",
		Templates: []string{
			`site:{domain} filetype:pdf`,
			`site:{domain} filetype:docx`,
			`site:{domain} filetype:xlsx`,
			`site:{domain} filetype:ppt`,
			`site:{domain} filetype:pptx`,
			`site:{domain} filetype:bak`,
			`site:{domain} filetype:old`,
			`site:{domain} (inurl:.bak OR inurl:.backup OR inurl:.old)`,
			`site:{domain} filetype:zip "backup"`,
			`site:{domain} filetype:tar`,
		},
	},
	"login_pages": {
		Key:         "login_pages",
		Name:        "2. Login Pages & Admin Panels",
		Description: "Hidden or unlinked authentication interfaces",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			"Admin dashboards",
			"CMS login pages",
			"Test or staging login portals",
			"Legacy admin panels",
		},
		WhyItMatters: "Entry point for brute force, default creds, auth testing",
		Templates: []string{
			`site:{domain} inurl:admin`,
			`site:{domain} inurl:administrator`,
			`site:{domain} inurl:login`,
			`site:{domain} inurl:signin`,
			`site:{domain} inurl:dashboard`,
			`site:{domain} intitle:"admin panel"`,
			`site:{domain} inurl:wp-admin`,
			`site:{domain} inurl:phpmyadmin`,
			`site:{domain} inurl:"admin panel"`,
			`site:{domain} intitle:"login" OR intitle:"sign in"`,
			`site:{domain} inurl:cp`,
			`site:{domain} inurl:cpanel`,
		},
	},
	"credentials": {
		Key:         "credentials",
		Name:        "3. Credentials & Secrets (CRITICAL)",
		Description: "Direct or indirect exposure of secrets",
		RiskTier:    risk.TierCritical,
		WhatCanBeFound: []string{
			"Hardcoded usernames/passwords",
			"API keys, tokens",
			"OAuth secrets",
			"SMTP credentials",
		},
		WhyItMatters: "Direct compromise of accounts and services",
		Templates: []string{
			`site:{domain} filetype:env`,
			`site:{domain} filetype:env "DB_PASSWORD"`,
			`site:{domain} filetype:env "API_KEY"`,
			`site:{domain} ("API_KEY" OR "api_key" OR "apikey")`,
			`site:{domain} ("PASSWORD" OR "password")`,
			`site:{domain} filetype:json "password"`,
			`site:{domain} inurl:credentials`,
			`site:{domain} filetype:txt "password"`,
			`site:{domain} filetype:config "password"`,
			`site:{domain} "begin rsa private key"`,
			`site:{domain} "ssh-rsa" OR "PRIVATE KEY"`,
			`site:{domain} filetype:pem`,
		},
	},
	"error_messages": {
		Key:         "error_messages",
		Name:        "4. Error Messages & Debug Information",
		Description: "Verbose system responses indexed by search engines",
		RiskTier:    risk.TierMedium,
		WhatCanBeFound: []string{
			"Stack traces",
			"Absolute file paths",
			"Database errors",
			"Framework versions",
		},
		WhyItMatters: "Helps fingerprint technology and vulnerabilities",
		Templates: []string{
			`site:{domain} ("SQL syntax error" OR "MySQL error")`,
			`site:{domain} "fatal error"`,
			`site:{domain} "warning:" intitle:"error"`,
			`site:{domain} "stack trace"`,
			`site:{domain} "at line" "of file"`,
			`site:{domain} ("Exception" OR "exception")`,
			`site:{domain} "JDBC"`,
			`site:{domain} "java.lang"`,
			`site:{domain} "Notice:"`,
			`site:{domain} filetype:log "error"`,
		},
	},
	"source_code": {
		Key:         "source_code",
		Name:        "5. Source Code & Development Artifacts",
		Description: "Unintended exposure of internal code",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			".git directories",
			".svn folders",
			"JavaScript source maps",
			"Test scripts",
		},
		WhyItMatters: "Business logic disclosure, hidden endpoints, API structure",
		Templates: []string{
			`site:{domain} inurl:.git`,
			`site:{domain} inurl:.svn`,
			`site:{domain} inurl:.gitconfig`,
			`site:{domain} filetype:js.map`,
			`site:{domain} intitle:"index of" ".git"`,
			`site:{domain} ".git/config"`,
			`site:{domain} ".git/HEAD"`,
			`site:{domain} "sourcemap"`,
			`site:{domain} filetype:gradle`,
			`site:{domain} filetype:pom.xml`,
		},
	},
	"database_exposure": {
		Key:         "database_exposure",
		Name:        "6. Database & Data Exposure",
		Description: "Publicly indexed structured data",
		RiskTier:    risk.TierCritical,
		WhatCanBeFound: []string{
			"SQL error dumps",
			"Open database panels",
			"CSV exports",
			"JSON API responses",
		},
		WhyItMatters: "PII leakage, business data exposure",
		Templates: []string{
			`site:{domain} filetype:sql`,
			`site:{domain} filetype:db`,
			`site:{domain} "SQL dump"`,
			`site:{domain} "phpMyAdmin" OR "phpMyAdmin SQL"`,
			`site:{domain} inurl:phpmyadmin`,
			`site:{domain} inurl:adminer`,
			`site:{domain} filetype:bak "database"`,
			`site:{domain} filetype:backup "sql"`,
			`site:{domain} "CREATE TABLE"`,
			`site:{domain} "INSERT INTO"`,
		},
	},
	"pii": {
		Key:         "pii",
		Name:        "7. Personally Identifiable Information (PII)",
		Description: "User or employee data leaks",
		RiskTier:    risk.TierCritical,
		WhatCanBeFound: []string{
			"Email addresses",
			"Phone numbers",
			"Employee records",
			"Resumes & CVs",
		},
		WhyItMatters: "Privacy violations, social engineering, regulatory fines",
		Templates: []string{
			`site:{domain} "@{domain}" filetype:xls`,
			`site:{domain} "@{domain}" filetype:xlsx`,
			`site:{domain} "@{domain}" filetype:csv`,
			`site:{domain} filetype:xls email`,
			`site:{domain} filetype:xlsx email`,
			`site:{domain} filetype:pdf email`,
			`site:{domain} "employee" filetype:pdf`,
			`site:{domain} "phone" filetype:xls`,
			`site:{domain} filetype:docx email OR phone`,
			`site:{domain} filetype:pdf "@{domain}"`,
		},
	},
	"subdomains": {
		Key:         "subdomains",
		Name:        "8. Subdomains & Infrastructure Mapping",
		Description: "Expanding attack surface via subdomain discovery",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			"Dev, test, staging subdomains",
			"Old or deprecated services",
			"Cloud storage endpoints",
			"Backup/disaster recovery domains",
		},
		WhyItMatters: "Often less secured than main domain",
		Templates: []string{
			`site:*.{domain}`,
			`site:{domain} inurl:staging`,
			`site:{domain} inurl:dev`,
			`site:{domain} inurl:test`,
			`site:{domain} inurl:lab`,
			`site:{domain} inurl:demo`,
			`site:{domain} inurl:pre`,
			`site:{domain} inurl:uat`,
			`site:{domain} inurl:api.`,
			`site:{domain} "staging" OR "development"`,
		},
	},
	"cloud_storage": {
		Key:         "cloud_storage",
		Name:        "9. Cloud Storage & Buckets",
		Description: "Publicly exposed storage (S3, Azure, GCP)",
		RiskTier:    risk.TierCritical,
		WhatCanBeFound: []string{
			"AWS S3 buckets",
			"Azure Blob containers",
			"GCP storage links",
			"Logs, backups, media, internal documents",
		},
		WhyItMatters: "Direct data access without authentication",
		Templates: []string{
			`site:s3.amazonaws.com "{domain}"`,
			`site:blob.core.windows.net "{domain}"`,
			`site:storage.googleapis.com "{domain}"`,
			`site:dfs.core.windows.net "{domain}"`,
			`"{domain}" s3.amazonaws.com`,
			`"{domain}" blob.core.windows.net`,
			`inurl:s3 site:{domain}`,
			`inurl:s3.amazonaws.com {domain}`,
			`"s3" inurl:amazonaws.com {domain}`,
			`site:digitaloceanspaces.com "{domain}"`,
		},
	},
	"apis_services": {
		Key:         "apis_services",
		Name:        "10. APIs & Web Services",
		Description: "Backend services indexed accidentally",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			"REST endpoints",
			"GraphQL consoles",
			"Swagger / OpenAPI docs",
			"Debug panels",
		},
		WhyItMatters: "Parameter tampering, auth bypass testing, direct API calls",
		Templates: []string{
			`site:{domain} inurl:/api`,
			`site:{domain} inurl:/api/v1`,
			`site:{domain} inurl:swagger`,
			`site:{domain} inurl:graphql`,
			`site:{domain} intitle:"swagger ui"`,
			`site:{domain} inurl:/docs`,
			`site:{domain} inurl:debug`,
			`site:{domain} filetype:json "api"`,
			`site:{domain} intitle:"api" "documentation"`,
			`site:{domain} inurl:service`,
		},
	},
	"cms_frameworks": {
		Key:         "cms_frameworks",
		Name:        "11. CMS & Framework Identification",
		Description: "Technology fingerprinting for vulnerability mapping",
		RiskTier:    risk.TierMedium,
		WhatCanBeFound: []string{
			"WordPress, Joomla, Drupal panels",
			"Plugin paths and versions",
			"Theme files and configurations",
			"CMS admin areas",
		},
		WhyItMatters: "CVE correlation, version-specific exploit research",
		Templates: []string{
			`site:{domain} inurl:wp-content`,
			`site:{domain} inurl:wp-admin`,
			`site:{domain} inurl:/wordpress`,
			`site:{domain} inurl:/joomla`,
			`site:{domain} inurl:/drupal`,
			`site:{domain} intitle:"WordPress"`,
			`site:{domain} intitle:"Joomla"`,
			`site:{domain} "Powered by WordPress"`,
			`site:{domain} "/plugins/"`,
			`site:{domain} inurl:/administrator`,
		},
	},
	"network_info": {
		Key:         "network_info",
		Name:        "12. Network & Internal System Information",
		Description: "Clues about internal architecture",
		RiskTier:    risk.TierMedium,
		WhatCanBeFound: []string{
			"Internal IP addresses",
			"Hostnames and FQDN",
			"VPN portals",
			"Routers, printers, cameras",
		},
		WhyItMatters: "Network mapping for targeted attacks",
		Templates: []string{
			`site:{domain} "192.168" OR "10.0" OR "172.16"`,
			`site:{domain} "internal ip"`,
			`site:{domain} "gateway"`,
			`site:{domain} "hostname"`,
			`site:{domain} filetype:config "hostname"`,
			`site:{domain} filetype:conf "ip"`,
			`site:{domain} "ifconfig" OR "ipconfig"`,
			`site:{domain} filetype:log "ip address"`,
			`site:{domain} "dns" OR "nameserver"`,
			`site:{domain} filetype:txt "internal"`,
		},
	},
	"logs_reports": {
		Key:         "logs_reports",
		Name:        "13. Logs, Reports & Monitoring Data",
		Description: "Operational leaks via exposed logs",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			"Access logs",
			"Debug and application logs",
			"Security reports",
			"Crash dumps and traces",
		},
		WhyItMatters: "Activity tracking, user behavior, system internals",
		Templates: []string{
			`site:{domain} filetype:log`,
			`site:{domain} inurl:logs`,
			`site:{domain} inurl:debug.log`,
			`site:{domain} filetype:txt "error log"`,
			`site:{domain} "apache log"`,
			`site:{domain} "nginx access log"`,
			`site:{domain} filetype:log "GET" "POST"`,
			`site:{domain} filetype:csv "report"`,
			`site:{domain} inurl:report filetype:pdf`,
			`site:{domain} filetype:xls "report"`,
		},
	},
	"communications": {
		Key:         "communications",
		Name:        "14. Emails, Contacts & Communication",
		Description: "Human attack surface discovery",
		RiskTier:    risk.TierMedium,
		WhatCanBeFound: []string{
			"Employee email lists",
			"Support email addresses",
			"Internal mailing lists",
			"Contact information",
		},
		WhyItMatters: "Phishing simulations, social engineering, staff targeting",
		Templates: []string{
			`site:{domain} "@{domain}" "email"`,
			`site:{domain} filetype:xls "@{domain}"`,
			`site:{domain} filetype:xlsx "email list"`,
			`site:{domain} "support@" filetype:pdf`,
			`site:{domain} filetype:csv "email"`,
			`site:{domain} "contact us" email`,
			`site:{domain} filetype:vcf`,
			`site:{domain} filetype:eml`,
			`site:{domain} "distribution list"`,
			`site:{domain} filetype:txt email`,
		},
	},
	"cached_data": {
		Key:         "cached_data",
		Name:        "15. Historical & Cached Data",
		Description: "Data thought to be deleted but still indexed",
		RiskTier:    risk.TierMedium,
		WhatCanBeFound: []string{
			"Old versions of pages (Wayback Machine)",
			"Archived documents",
			"Cached sensitive responses",
			"Old API endpoints",
		},
		WhyItMatters: "Historical information reveals development patterns",
		Templates: []string{
			`site:{domain} "cached" OR "archive"`,
			`cache:site:{domain}`,
			`site:{domain} filetype:html "last modified"`,
			`site:{domain} "version" "cached"`,
			`site:{domain} filetype:pdf "version 1.0"`,
			`site:{domain} "old version"`,
			`site:{domain} "deprecated"`,
			`site:{domain} "legacy"`,
			`site:{domain} filetype:html "2020 OR 2021 OR 2022"`,
			`site:{domain} filetype:pdf "archive"`,
		},
	},
	"iot_devices": {
		Key:         "iot_devices",
		Name:        "16. IoT, Devices & Panels",
		Description: "Exposed device interfaces on internet",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			"CCTV dashboards (Shodan-indexed)",
			"Routers & firewalls admin pages",
			"NAS devices and management interfaces",
			"Printers and network devices",
		},
		WhyItMatters: "Direct physical infrastructure access",
		Templates: []string{
			`site:{domain} inurl:camera`,
			`site:{domain} inurl:cctv`,
			`site:{domain} inurl:router`,
			`site:{domain} inurl:printer`,
			`site:{domain} inurl:nas`,
			`site:{domain} inurl:webcam`,
			`site:{domain} intitle:"ip camera"`,
			`site:{domain} intitle:"router admin"`,
			`site:{domain} intitle:"device management"`,
			`site:{domain} inurl:control OR inurl:manage "device"`,
		},
	},
	"vulnerability_indicators": {
		Key:         "vulnerability_indicators",
		Name:        "17. Vulnerability Indicators",
		Description: "Direct evidence of weak security practices",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			"Open directory listings (index of)",
			"Upload folders without protection",
			"Unauthenticated admin panels",
			"Test and debug endpoints",
		},
		WhyItMatters: "Immediate exploitation opportunities",
		Templates: []string{
			`site:{domain} intitle:"index of"`,
			`site:{domain} intitle:"index of /" "parent directory"`,
			`site:{domain} inurl:upload`,
			`site:{domain} inurl:file`,
			`site:{domain} inurl:download`,
			`site:{domain} intitle:"upload"`,
			`site:{domain} "test" OR "debug"`,
			`site:{domain} inurl:test`,
			`site:{domain} filetype:html "test"`,
			`site:{domain} intitle:"test page"`,
		},
	},
	"osint": {
		Key:         "osint",
		Name:        "18. Organization Intelligence (OSINT)",
		Description: "Business-level information disclosure",
		RiskTier:    risk.TierMedium,
		WhatCanBeFound: []string{
			"Employee names & roles",
			"Partners & vendors",
			"Internal tools mentioned publicly",
			"Business structure information",
		},
		WhyItMatters: "Enables targeted social engineering",
		Templates: []string{
			`site:{domain} filetype:pdf "employee"`,
			`site:{domain} filetype:pdf "staff"`,
			`site:{domain} filetype:ppt "company"`,
			`site:{domain} filetype:docx "organization"`,
			`site:{domain} "our team"`,
			`site:{domain} "company culture"`,
			`site:{domain} "partners" OR "clients"`,
			`site:{domain} filetype:pdf "technology"`,
			`site:{domain} filetype:pdf "architecture"`,
			`site:{domain} "vendor" OR "supplier"`,
		},
	},
	"misconfigurations": {
		Key:         "misconfigurations",
		Name:        "19. Security Misconfigurations",
		Description: "Policy and deployment mistakes",
		RiskTier:    risk.TierHigh,
		WhatCanBeFound: []string{
			"Disabled authentication mechanisms",
			"Open indexes and directory listings",
			"Public admin APIs",
			"Exposed monitoring tools",
		},
		WhyItMatters: "Configuration errors = immediate vulnerabilities",
		Templates: []string{
			`site:{domain} intitle:"index of"`,
			`site:{domain} inurl:admin "no authentication"`,
			`site:{domain} "403 forbidden"`,
			`site:{domain} intitle:"monitoring"`,
			`site:{domain} intitle:"management console"`,
			`site:{domain} inurl:console`,
			`site:{domain} "allow all"`,
			`site:{domain} filetype:conf "allow"`,
			`site:{domain} inurl:service "auth disabled"`,
			`site:{domain} filetype:config "disable"`,
		},
	},
	"internal_docs": {
		Key:         "internal_docs",
		Name:        "20. Academic / Research / Internal Docs",
		Description: "Non-production but sensitive content",
		RiskTier:    risk.TierMedium,
		WhatCanBeFound: []string{
			"Internal training documents",
			"Architecture diagrams",
			"Standard Operating Procedures (SOPs)",
			"Security policies and procedures",
		},
		WhyItMatters: "Architecture and policy disclosure",
		Templates: []string{
			`site:{domain} filetype:pdf "SOP" OR "procedure"`,
			`site:{domain} filetype:docx "policy"`,
			`site:{domain} filetype:ppt "architecture"`,
			`site:{domain} filetype:pdf "training"`,
			`site:{domain} filetype:pdf "internal use only"`,
			`site:{domain} filetype:docx "confidential"`,
			`site:{domain} filetype:pdf "security policy"`,
			`site:{domain} filetype:pdf "infrastructure"`,
			`site:{domain} filetype:pdf "security assessment"`,
			`site:{domain} filetype:pdf "disaster recovery"`,
		},
	},
}
