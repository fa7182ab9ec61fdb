package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/jimezsa/jobmatch/internal/network"
	"github.com/rs/zerolog"
)

func TestParseResults(t *testing.T) {
	payload := `{
  "items": [
    {
      "title": "Go Developer - Acme",
      "link": "https://example.com/jobs/1",
      "snippet": "Build APIs with Go and SQL.",
      "pagemap": {"metatags": [{"og:site_name": "Acme Careers"}]}
    },
    {
      "title": "Data Analyst",
      "link": "https://example.com/jobs/2",
      "snippet": "SQL and Python."
    }
  ]
}`

	results, err := parseResults([]byte(payload))
	if err != nil {
		t.Fatalf("parseResults() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Link != "https://example.com/jobs/1" {
		t.Fatalf("unexpected link: %q", results[0].Link)
	}
	if results[0].Pagemap == nil {
		t.Fatalf("expected pagemap on first result")
	}
	if results[1].Pagemap != nil {
		t.Fatalf("expected nil pagemap on second result")
	}
}

func TestParseResultsMissingItems(t *testing.T) {
	results, err := parseResults([]byte(`{"searchInformation": {"totalResults": "0"}}`))
	if err != nil {
		t.Fatalf("parseResults() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}

func TestParseResultsMalformed(t *testing.T) {
	if _, err := parseResults([]byte(`{"items": "nope"`)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestSearchSendsProviderParams(t *testing.T) {
	var gotQuery string
	var gotNum string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotNum = r.URL.Query().Get("num")
		if r.URL.Query().Get("key") != "test-key" || r.URL.Query().Get("cx") != "test-cx" {
			t.Errorf("missing credentials in query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"title": "T", "link": "https://x.com/1", "snippet": "s"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	results, err := client.Search(context.Background(), models.SearchQuery{Text: `"Go" job openings`}, 25)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if gotQuery != `"Go" job openings` {
		t.Fatalf("q = %q", gotQuery)
	}
	// Out-of-range num clamps to the provider maximum.
	if gotNum != "10" {
		t.Fatalf("num = %q, want 10", gotNum)
	}
}

func TestSearchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	results, err := client.Search(context.Background(), models.SearchQuery{Text: "blocked"}, 10)
	if err == nil {
		t.Fatalf("expected error for http 403")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error %q does not mention status", err)
	}
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	httpClient, err := network.NewClient(nil, 0)
	if err != nil {
		t.Fatalf("network.NewClient() error = %v", err)
	}
	client := NewClient(httpClient, "test-key", "test-cx", zerolog.Nop())
	client.SetEndpoint(endpoint)
	return client
}
