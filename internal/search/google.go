// Package search executes dork queries against the Google Custom Search
// JSON API. The provider holds an ordered list of credentials and fails
// over to the next one only on quota exhaustion (HTTP 429); any other
// provider error aborts the call. Results are normalized to a flat
// url/title/snippet triple with an inferred file type.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dorkx-sec/dorkx-cli/internal/shared/constants"
	sharedErrors "github.com/dorkx-sec/dorkx-cli/internal/shared/errors"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// placeholderValue marks a credential slot that was templated but never
// filled in; it is treated the same as an empty credential.
const placeholderValue = "dev-placeholder"

// Credential is one API key / search engine ID pair.
type Credential struct {
	APIKey string
	CSEID  string
}

// Configured reports whether the credential pair is usable.
func (c Credential) Configured() bool {
	if c.APIKey == "" || c.APIKey == placeholderValue {
		return false
	}
	if c.CSEID == "" || c.CSEID == placeholderValue {
		return false
	}
	return true
}

// RawResult is one normalized search hit.
type RawResult struct {
	URL         string
	Title       string
	Snippet     string
	FileType    string
	DisplayLink string
}

// QuotaInfo describes the provider's credential state.
type QuotaInfo struct {
	Configured              bool
	CredentialConfigured    []bool
	DailyLimitPerCredential int
}

// Config wires a GoogleProvider.
type Config struct {
	// Credentials are tried in order; the first entry is the primary pair.
	Credentials []Credential
	// BaseURL overrides the API endpoint (tests point it at httptest).
	BaseURL string
	// HTTPClient overrides the default client with its request timeout.
	HTTPClient *http.Client
	// QueryDelay paces consecutive Search calls; zero disables pacing.
	QueryDelay time.Duration
	Logger     *zap.SugaredLogger
}

// GoogleProvider executes queries against the Custom Search API.
type GoogleProvider struct {
	credentials []Credential
	baseURL     string
	client      *http.Client
	limiter     *rate.Limiter
	logger      *zap.SugaredLogger
}

// NewGoogleProvider builds a provider from config, applying defaults for
// every zero field.
func NewGoogleProvider(cfg Config) *GoogleProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: constants.SearchRequestTimeout}
	}

	var limiter *rate.Limiter
	if cfg.QueryDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.QueryDelay), 1)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &GoogleProvider{
		credentials: append([]Credential(nil), cfg.Credentials...),
		baseURL:     baseURL,
		client:      client,
		limiter:     limiter,
		logger:      logger,
	}
}

// Configured reports whether at least one credential pair is usable.
// When false, Search never dials out and the executor substitutes
// synthetic findings instead.
func (p *GoogleProvider) Configured() bool {
	for _, c := range p.credentials {
		if c.Configured() {
			return true
		}
	}
	return false
}

// QuotaInfo returns the credential configuration state and the per-key
// daily request ceiling of the free tier.
func (p *GoogleProvider) QuotaInfo() QuotaInfo {
	info := QuotaInfo{
		Configured:              p.Configured(),
		CredentialConfigured:    make([]bool, 0, len(p.credentials)),
		DailyLimitPerCredential: constants.DailyQuotaPerCredential,
	}
	for _, c := range p.credentials {
		info.CredentialConfigured = append(info.CredentialConfigured, c.Configured())
	}
	return info
}

// Search runs one query and returns normalized results. maxResults is
// capped at the API's per-request ceiling. Credentials are tried in order:
// 429 moves on to the next pair, any other HTTP failure aborts the whole
// call. With every usable credential quota-exhausted the query yields an
// empty result set without error.
func (p *GoogleProvider) Search(ctx context.Context, query string, maxResults int) ([]RawResult, error) {
	if !p.Configured() {
		p.logger.Warnw("search provider not configured, returning no results", "query", query)
		return nil, nil
	}

	if maxResults <= 0 || maxResults > constants.MaxResultsPerQuery {
		maxResults = constants.MaxResultsPerQuery
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	for i, cred := range p.credentials {
		if !cred.Configured() {
			continue
		}

		results, err := p.searchWithCredential(ctx, cred, query, maxResults)
		if err == nil {
			return results, nil
		}

		if err == sharedErrors.ErrQuotaExceeded {
			p.logger.Warnw("search quota exceeded, failing over", "credential_index", i, "query", query)
			continue
		}

		// Non-quota provider errors are not retried against other keys.
		return nil, err
	}

	p.logger.Warnw("all search credentials quota-exhausted", "query", query)
	return nil, nil
}

func (p *GoogleProvider) searchWithCredential(ctx context.Context, cred Credential, query string, maxResults int) ([]RawResult, error) {
	params := url.Values{}
	params.Set("key", cred.APIKey)
	params.Set("cx", cred.CSEID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, sharedErrors.ErrQuotaExceeded
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", sharedErrors.ErrProviderRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", sharedErrors.ErrProviderRequest, err)
	}

	results := make([]RawResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, RawResult{
			URL:         item.Link,
			Title:       item.Title,
			Snippet:     item.Snippet,
			FileType:    InferFileType(item.Link),
			DisplayLink: item.DisplayLink,
		})
	}

	p.logger.Infow("search completed", "query", query, "results", len(results))
	return results, nil
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Link        string `json:"link"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

// fileExtensions is the fixed inference list; the first entry found
// anywhere in the URL wins.
var fileExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx",
	".txt", ".csv", ".sql", ".xml", ".json",
	".env", ".config", ".bak", ".zip", ".tar",
}

// InferFileType returns the file type implied by a URL ("pdf", "sql", ...)
// or the empty string when no known extension appears. Matching is
// case-insensitive and positional order in the URL does not matter.
func InferFileType(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	lowered := strings.ToLower(rawURL)
	for _, ext := range fileExtensions {
		if strings.Contains(lowered, ext) {
			return strings.TrimPrefix(ext, ".")
		}
	}
	return ""
}
