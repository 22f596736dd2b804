package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// MaxResultsPerQuery is the hard per-request ceiling of the Custom Search API.
	MaxResultsPerQuery = 10
	// DailyQuotaPerCredential is the free-tier request limit for one API key.
	DailyQuotaPerCredential = 100
	// SearchRequestTimeout bounds a single outbound search call.
	SearchRequestTimeout = 30 * time.Second
	// QueryDelay paces consecutive queries so a scan stays under provider limits.
	QueryDelay = 3 * time.Second
)
