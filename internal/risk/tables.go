package risk

// Fixed per-category lookup tables for rationale, compliance mapping and
// remediation guidance. Categories missing from a table fall back to
// generated text in classifier.go.

var categoryRationales = map[string]string{
	"credentials":              "Exposed credentials, API keys or other secrets allow direct compromise of accounts and services without any further exploitation.",
	"api_keys":                 "Leaked API keys grant attacker-controlled access to backend services and third-party integrations.",
	"database_exposure":        "Publicly indexed database dumps or panels expose structured business data and personal records in bulk.",
	"databases":                "Publicly indexed database dumps or panels expose structured business data and personal records in bulk.",
	"pii":                      "Personal data of employees or users enables identity theft, social engineering and triggers regulatory exposure.",
	"cloud_storage":            "Open cloud storage buckets allow unauthenticated download of logs, backups and internal documents.",
	"login_pages":              "Unlinked authentication interfaces are entry points for brute force and default-credential attacks.",
	"admin_panels":             "Administrative interfaces reachable from the public internet widen the attack surface for takeover attempts.",
	"sensitive_files":          "Documents exposed through search indexes frequently embed credentials, internal paths and contact data.",
	"source_code":              "Exposed repositories and source maps disclose business logic, hidden endpoints and sometimes embedded secrets.",
	"backup_files":             "Backup artifacts preserve full copies of code and data, often with weaker access controls than the originals.",
	"exposed_files":            "Files never meant to be public routinely carry internal details useful to an attacker.",
	"apis_services":            "Accidentally indexed API endpoints and consoles invite parameter tampering and authentication bypass testing.",
	"logs_reports":             "Exposed logs reveal user activity, internal hostnames and stack details that guide targeted attacks.",
	"misconfigurations":        "Directory listings and unauthenticated consoles are immediate, low-effort exploitation opportunities.",
	"misconfiguration":         "Directory listings and unauthenticated consoles are immediate, low-effort exploitation opportunities.",
	"vulnerability_indicators": "Open indexes, upload folders and debug endpoints are direct evidence of weak security practice.",
	"subdomains":               "Forgotten or staging subdomains are usually less hardened than the primary domain.",
	"cms_frameworks":           "CMS fingerprints map installed versions to known CVEs for exploit research.",
	"error_messages":           "Verbose errors disclose framework versions, file paths and database engines.",
	"network_info":             "Leaked internal addressing and hostnames support network mapping for later stages of an attack.",
	"communications":           "Harvested addresses feed phishing and other social-engineering campaigns.",
	"cached_data":              "Content believed deleted but still cached can resurface sensitive responses.",
	"iot_devices":              "Exposed device panels can hand over physical infrastructure such as cameras and routers.",
	"osint":                    "Organizational details sharpen pretexting and targeted social engineering.",
	"internal_docs":            "Internal procedures and architecture documents disclose how the environment is built and defended.",
}

var categoryCompliance = map[string]string{
	"credentials":              "OWASP A07:2021 - Identification and Authentication Failures",
	"api_keys":                 "OWASP A07:2021 - Identification and Authentication Failures",
	"database_exposure":        "OWASP A02:2021 - Cryptographic Failures",
	"databases":                "OWASP A02:2021 - Cryptographic Failures",
	"pii":                      "OWASP A02:2021 - Cryptographic Failures / GDPR Art. 32",
	"cloud_storage":            "OWASP A05:2021 - Security Misconfiguration",
	"login_pages":              "OWASP A07:2021 - Identification and Authentication Failures",
	"admin_panels":             "OWASP A01:2021 - Broken Access Control",
	"sensitive_files":          "OWASP A01:2021 - Broken Access Control",
	"source_code":              "OWASP A05:2021 - Security Misconfiguration",
	"backup_files":             "OWASP A05:2021 - Security Misconfiguration",
	"exposed_files":            "OWASP A01:2021 - Broken Access Control",
	"apis_services":            "OWASP A01:2021 - Broken Access Control",
	"logs_reports":             "OWASP A09:2021 - Security Logging and Monitoring Failures",
	"misconfigurations":        "OWASP A05:2021 - Security Misconfiguration",
	"misconfiguration":         "OWASP A05:2021 - Security Misconfiguration",
	"vulnerability_indicators": "OWASP A05:2021 - Security Misconfiguration",
	"subdomains":               "OWASP A05:2021 - Security Misconfiguration",
	"cms_frameworks":           "OWASP A06:2021 - Vulnerable and Outdated Components",
	"error_messages":           "OWASP A05:2021 - Security Misconfiguration",
	"network_info":             "OWASP A05:2021 - Security Misconfiguration",
	"communications":           "OWASP A05:2021 - Security Misconfiguration",
	"cached_data":              "OWASP A05:2021 - Security Misconfiguration",
	"iot_devices":              "OWASP A05:2021 - Security Misconfiguration",
	"osint":                    "OWASP A05:2021 - Security Misconfiguration",
	"internal_docs":            "OWASP A01:2021 - Broken Access Control",
}

var categoryRemediations = map[string]string{
	"credentials":              "Rotate every exposed secret immediately, purge the files from public storage and search caches, and move secrets into a managed vault.",
	"api_keys":                 "Revoke and reissue the keys, audit their recent usage, and restrict new keys by origin and scope.",
	"database_exposure":        "Take the exposed dump or panel offline, rotate database credentials and audit access logs for exfiltration.",
	"databases":                "Take the exposed dump or panel offline, rotate database credentials and audit access logs for exfiltration.",
	"pii":                      "Remove the records from public reach, assess notification obligations and tighten export controls on personal data.",
	"cloud_storage":            "Set the bucket or container to private, enable access logging and review IAM policies for least privilege.",
	"login_pages":              "Restrict administrative interfaces by network or VPN, enforce MFA and remove stale portals.",
	"admin_panels":             "Restrict administrative interfaces by network or VPN, enforce MFA and remove stale portals.",
	"sensitive_files":          "Remove the documents from public paths, request search-engine de-indexing and add authentication in front of document stores.",
	"source_code":              "Block access to VCS metadata directories at the web server, remove source maps from production and scan history for committed secrets.",
	"backup_files":             "Delete backups from web-accessible paths and store them encrypted in dedicated backup infrastructure.",
	"exposed_files":            "Audit the web root for unintended files and add deny rules for non-public extensions.",
	"apis_services":            "Require authentication on every endpoint, disable public API consoles and keep schema documentation behind access control.",
	"logs_reports":             "Move logs out of the web root, disable directory listing and review leaked entries for secondary exposure.",
	"misconfigurations":        "Disable directory listing, require authentication on consoles and re-run configuration baselines.",
	"misconfiguration":         "Disable directory listing, require authentication on consoles and re-run configuration baselines.",
	"vulnerability_indicators": "Close open listings and upload endpoints, then schedule a focused assessment of the affected paths.",
	"subdomains":               "Inventory and decommission unused subdomains; apply production hardening to staging environments or take them off the internet.",
	"cms_frameworks":           "Patch the CMS and plugins to current versions and hide version banners where possible.",
	"error_messages":           "Disable verbose errors in production and return generic error pages.",
	"network_info":             "Strip internal addressing from public content and review what monitoring data is published.",
	"communications":           "Limit published address books and add anti-phishing guidance for exposed mailboxes.",
	"cached_data":              "Request cache and archive removal for sensitive URLs and add no-store headers to dynamic responses.",
	"iot_devices":              "Remove device panels from the public internet and change any default device credentials.",
	"osint":                    "Review published organizational material and trim detail that supports social engineering.",
	"internal_docs":            "Reclassify internal documents, move them behind authentication and request de-indexing.",
}
