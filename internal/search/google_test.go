package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sharedErrors "github.com/dorkx-sec/dorkx-cli/internal/shared/errors"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, creds ...Credential) (*GoogleProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider := NewGoogleProvider(Config{
		Credentials: creds,
		BaseURL:     server.URL,
		HTTPClient:  server.Client(),
	})
	return provider, server
}

func searchPayload(links ...string) []byte {
	resp := searchResponse{}
	for _, link := range links {
		resp.Items = append(resp.Items, searchItem{
			Link:        link,
			Title:       "title for " + link,
			Snippet:     "snippet",
			DisplayLink: "example.com",
		})
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestCredentialConfigured(t *testing.T) {
	cases := []struct {
		name string
		cred Credential
		want bool
	}{
		{"complete pair", Credential{APIKey: "key", CSEID: "cx"}, true},
		{"missing key", Credential{CSEID: "cx"}, false},
		{"missing cx", Credential{APIKey: "key"}, false},
		{"placeholder key", Credential{APIKey: "dev-placeholder", CSEID: "cx"}, false},
		{"placeholder cx", Credential{APIKey: "key", CSEID: "dev-placeholder"}, false},
		{"empty", Credential{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cred.Configured(); got != tc.want {
				t.Fatalf("Configured() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSearchUnconfiguredShortCircuits(t *testing.T) {
	called := false
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, Credential{APIKey: "dev-placeholder", CSEID: "dev-placeholder"})

	results, err := provider.Search(context.Background(), `site:example.com`, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
	if called {
		t.Fatal("unconfigured provider must not dial out")
	}
}

func TestSearchReturnsNormalizedResults(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != `site:example.com ext:sql` {
			t.Errorf("unexpected query param: %s", got)
		}
		if got := r.URL.Query().Get("num"); got != "5" {
			t.Errorf("unexpected num param: %s", got)
		}
		w.Write(searchPayload("https://example.com/dump.sql", "https://example.com/page"))
	}, Credential{APIKey: "key", CSEID: "cx"})

	results, err := provider.Search(context.Background(), `site:example.com ext:sql`, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].FileType != "sql" {
		t.Errorf("expected inferred sql file type, got %q", results[0].FileType)
	}
	if results[1].FileType != "" {
		t.Errorf("expected no file type for plain page, got %q", results[1].FileType)
	}
	if results[0].DisplayLink != "example.com" {
		t.Errorf("display link not carried over: %q", results[0].DisplayLink)
	}
}

func TestSearchClampsMaxResults(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("num"); got != "10" {
			t.Errorf("expected num clamped to 10, got %s", got)
		}
		w.Write(searchPayload())
	}, Credential{APIKey: "key", CSEID: "cx"})

	if _, err := provider.Search(context.Background(), "q", 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchFailsOverOn429(t *testing.T) {
	var keysSeen []string
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		keysSeen = append(keysSeen, key)
		if key == "primary" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(searchPayload("https://example.com/found"))
	},
		Credential{APIKey: "primary", CSEID: "cx1"},
		Credential{APIKey: "secondary", CSEID: "cx2"},
	)

	results, err := provider.Search(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected failover result, got %d results", len(results))
	}
	if len(keysSeen) != 2 || keysSeen[0] != "primary" || keysSeen[1] != "secondary" {
		t.Fatalf("unexpected credential order: %v", keysSeen)
	}
}

func TestSearchAllQuotaExhausted(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	},
		Credential{APIKey: "primary", CSEID: "cx1"},
		Credential{APIKey: "secondary", CSEID: "cx2"},
	)

	results, err := provider.Search(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("quota exhaustion must not surface an error, got %v", err)
	}
	if results != nil {
		t.Fatalf("expected no results, got %v", results)
	}
}

func TestSearchFailsFastOnServerError(t *testing.T) {
	calls := 0
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	},
		Credential{APIKey: "primary", CSEID: "cx1"},
		Credential{APIKey: "secondary", CSEID: "cx2"},
	)

	_, err := provider.Search(context.Background(), "q", 10)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !errors.Is(err, sharedErrors.ErrProviderRequest) {
		t.Fatalf("expected ErrProviderRequest, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("non-quota errors must not retry other credentials, got %d calls", calls)
	}
}

func TestQuotaInfo(t *testing.T) {
	provider := NewGoogleProvider(Config{Credentials: []Credential{
		{APIKey: "key", CSEID: "cx"},
		{APIKey: "dev-placeholder", CSEID: "dev-placeholder"},
	}})

	info := provider.QuotaInfo()
	if !info.Configured {
		t.Fatal("expected provider to report configured")
	}
	if len(info.CredentialConfigured) != 2 || !info.CredentialConfigured[0] || info.CredentialConfigured[1] {
		t.Fatalf("unexpected credential states: %v", info.CredentialConfigured)
	}
	if info.DailyLimitPerCredential != 100 {
		t.Fatalf("unexpected daily limit: %d", info.DailyLimitPerCredential)
	}
}

func TestInferFileType(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://example.com/report.pdf", "pdf"},
		{"https://example.com/dump.SQL", "sql"},
		{"https://example.com/.env", "env"},
		{"https://example.com/data.json?download=1", "json"},
		{"https://example.com/backup.tar.gz", "tar"},
		{"https://example.com/page", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := InferFileType(tc.url); got != tc.want {
			t.Errorf("InferFileType(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
