package errors

import "errors"

// Domain errors
var (
	// Scan errors
	ErrScanNotFound      = errors.New("scan not found")
	ErrScanAlreadyExists = errors.New("scan already exists")
	ErrScanFinished      = errors.New("scan already reached a terminal status")
	ErrScanNotRunning    = errors.New("scan is not running")
	ErrEmptyTargetDomain = errors.New("target domain cannot be empty")
	ErrConsentRequired   = errors.New("consent must be recorded before scanning")

	// Query errors
	ErrQueryNotFound   = errors.New("query not found")
	ErrEmptyQueryText  = errors.New("query text cannot be empty")
	ErrQueryFinished   = errors.New("query already reached a terminal status")
	ErrUnknownCategory = errors.New("unknown dork category")

	// Finding errors
	ErrFindingNotFound = errors.New("finding not found")
	ErrEmptyURL        = errors.New("finding URL cannot be empty")

	// Search provider errors
	ErrProviderNotConfigured = errors.New("search provider is not configured")
	ErrQuotaExceeded         = errors.New("search API quota exceeded")
	ErrProviderRequest       = errors.New("search API request failed")

	// Target validation errors
	ErrInvalidDomain = errors.New("invalid domain format")
	ErrBlockedDomain = errors.New("domain is blocked from scanning")

	// Repository errors
	ErrRepositoryOperation   = errors.New("repository operation failed")
	ErrSerializationFailed   = errors.New("serialization failed")
	ErrDeserializationFailed = errors.New("deserialization failed")
)
