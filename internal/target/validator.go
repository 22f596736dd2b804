// Package target validates and screens scan targets before any query is
// generated. Validation is a pure string predicate; the blocklists come
// from configuration and default to TLDs and hosts that must never be
// scanned.
package target

import (
	"fmt"
	"regexp"
	"strings"
)

var domainPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// DefaultBlockedTLDs are suffixes that are refused regardless of configuration.
func DefaultBlockedTLDs() []string {
	return []string{".gov", ".mil", ".edu"}
}

// DefaultBlockedDomains are substrings identifying internal or local hosts.
func DefaultBlockedDomains() []string {
	return []string{"localhost", "127.0.0.1", "0.0.0.0", "internal", "local"}
}

// IsValidDomain reports whether the string is a plausible DNS domain name.
func IsValidDomain(domain string) bool {
	return domainPattern.MatchString(domain)
}

// Validator screens targets against configured blocklists.
type Validator struct {
	blockedTLDs    []string
	blockedDomains []string
}

// NewValidator builds a validator. Empty lists fall back to the defaults.
func NewValidator(blockedTLDs, blockedDomains []string) *Validator {
	if len(blockedTLDs) == 0 {
		blockedTLDs = DefaultBlockedTLDs()
	}
	if len(blockedDomains) == 0 {
		blockedDomains = DefaultBlockedDomains()
	}
	return &Validator{
		blockedTLDs:    blockedTLDs,
		blockedDomains: blockedDomains,
	}
}

// IsBlocked reports whether a domain is refused and why.
func (v *Validator) IsBlocked(domain string) (bool, string) {
	for _, tld := range v.blockedTLDs {
		if strings.HasSuffix(domain, tld) {
			return true, fmt.Sprintf("Scanning %s domains is not allowed for safety reasons", tld)
		}
	}

	lowered := strings.ToLower(domain)
	for _, blocked := range v.blockedDomains {
		if strings.Contains(lowered, blocked) {
			return true, "Scanning internal/local domains is not allowed"
		}
	}

	return false, ""
}

// Result is the outcome of validating one target string.
type Result struct {
	Valid      bool
	Normalized string
	Reason     string
	Warnings   []string
}

// Validate checks format and blocklists, and returns the normalized target
// with any advisory warnings.
func (v *Validator) Validate(raw string) Result {
	domain := strings.TrimSpace(strings.ToLower(raw))

	if !IsValidDomain(domain) {
		return Result{
			Valid:  false,
			Reason: "Invalid domain format. Please provide a valid domain (e.g., example.com)",
		}
	}

	if blocked, reason := v.IsBlocked(domain); blocked {
		return Result{Valid: false, Reason: reason}
	}

	var warnings []string
	if len(strings.Split(domain, ".")) == 2 && !strings.HasPrefix(domain, "www.") {
		warnings = append(warnings, "Scanning apex domain will include all subdomains")
	}

	return Result{Valid: true, Normalized: domain, Warnings: warnings}
}
