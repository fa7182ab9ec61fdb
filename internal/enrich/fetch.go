package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobmatch/internal/network"
)

// DefaultFetchTimeout bounds one live-page fetch. It is local to the
// item: a slow page never stalls the whole search.
const DefaultFetchTimeout = 10 * time.Second

// PageFetcher loads posting pages through the shared browser-profile
// client.
type PageFetcher struct {
	client  *network.Client
	timeout time.Duration
}

func NewPageFetcher(client *network.Client, timeout time.Duration) *PageFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &PageFetcher{client: client, timeout: timeout}
}

func (f *PageFetcher) FetchDocument(ctx context.Context, target string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("accept-language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
