package cmd

import "fmt"

// ScanNotFoundError indicates a scan lookup failure.
type ScanNotFoundError struct {
	ID string
}

func (e *ScanNotFoundError) Error() string {
	return fmt.Sprintf("scan %s not found", e.ID)
}

// TargetBlockedError signals that a domain is off limits for scanning.
type TargetBlockedError struct {
	Domain string
	Reason string
}

func (e *TargetBlockedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("target %s rejected: %s", e.Domain, e.Reason)
	}
	return fmt.Sprintf("target %s is blocked from scanning", e.Domain)
}
