package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/jimezsa/jobmatch/internal/network"
	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint is the Google Custom Search JSON API.
	DefaultEndpoint = "https://www.googleapis.com/customsearch/v1"

	// MaxResultsPerQuery is the API's hard cap on num.
	MaxResultsPerQuery = 10

	// MinQueryDelay keeps consecutive provider calls at least this far
	// apart.
	MinQueryDelay = 500 * time.Millisecond

	requestTimeout = 15 * time.Second
)

// Client executes planned queries against the search provider. A failed
// query yields zero results and an error the caller records as a
// warning; it never aborts the remaining queries.
type Client struct {
	http     *network.Client
	key      string
	engineID string
	endpoint string
	logger   zerolog.Logger
}

func NewClient(httpClient *network.Client, key, engineID string, logger zerolog.Logger) *Client {
	return &Client{
		http:     httpClient,
		key:      key,
		engineID: engineID,
		endpoint: DefaultEndpoint,
		logger:   logger,
	}
}

// SetEndpoint overrides the provider URL. Used by tests.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Search runs one query and returns its raw hits. num is clamped to the
// provider maximum.
func (c *Client) Search(ctx context.Context, query models.SearchQuery, num int) ([]models.RawResult, error) {
	if num <= 0 || num > MaxResultsPerQuery {
		num = MaxResultsPerQuery
	}

	target := fmt.Sprintf("%s?%s", c.endpoint, url.Values{
		"key":  {c.key},
		"cx":   {c.engineID},
		"q":    {query.Text},
		"num":  {fmt.Sprintf("%d", num)},
		"safe": {"off"},
	}.Encode())

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query.Text, err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query.Text, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query.Text, err)
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("search %q: http %d", query.Text, resp.StatusCode)
	}

	results, err := parseResults(body)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query.Text, err)
	}

	c.logger.Debug().Str("query", query.Text).Int("results", len(results)).Msg("search completed")
	return results, nil
}

type apiResponse struct {
	Items []apiItem `json:"items"`
}

type apiItem struct {
	Title   string         `json:"title"`
	Link    string         `json:"link"`
	Snippet string         `json:"snippet"`
	Pagemap map[string]any `json:"pagemap"`
}

// parseResults decodes the provider payload. A missing or empty items
// array is zero results, not an error.
func parseResults(data []byte) ([]models.RawResult, error) {
	var payload apiResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	results := make([]models.RawResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, models.RawResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
			Pagemap: item.Pagemap,
		})
	}
	return results, nil
}
