// Package enrich extracts company, location and salary details for a
// posting. Tier 1 fetches the live page and applies per-site selector
// rules; tier 2 falls back to heuristics over the search hit's title,
// snippet and structured metadata. Neither tier ever fails the caller:
// the worst outcome is an empty result.
package enrich

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/rs/zerolog"
)

// Fetcher loads a posting page as a parsed document.
type Fetcher interface {
	FetchDocument(ctx context.Context, target string) (*goquery.Document, error)
}

// Enricher performs tier-1 live-page extraction.
type Enricher struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func New(fetcher Fetcher, logger zerolog.Logger) *Enricher {
	return &Enricher{fetcher: fetcher, logger: logger}
}

// ScrapeDetails returns the best-effort tier-1 details for a link. The
// returned error is informational only (the caller may record it as a
// warning); the details are always usable. Unknown hosts skip the fetch
// entirely rather than guessing at page structure.
func (e *Enricher) ScrapeDetails(ctx context.Context, link string) (models.ScrapedDetails, error) {
	if link == "" {
		return models.ScrapedDetails{}, nil
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return models.ScrapedDetails{}, nil
	}

	rule, ok := ruleForHost(parsed.Hostname())
	if !ok {
		e.logger.Debug().Str("link", link).Msg("no extraction rules for host, skipping live fetch")
		return models.ScrapedDetails{}, nil
	}

	doc, err := e.fetcher.FetchDocument(ctx, link)
	if err != nil {
		e.logger.Debug().Str("link", link).Err(err).Msg("live-page fetch failed, degrading to snippet heuristics")
		return models.ScrapedDetails{}, err
	}

	return applyRule(doc, rule), nil
}
