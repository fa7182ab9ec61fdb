// Package pipeline wires the recommendation flow: plan queries, search,
// enrich each hit, normalize, score, dedupe and rank. Per-item failures
// are contained and reported as warnings; a configured run always
// produces a well-formed result.
package pipeline

import (
	"context"
	"sync"

	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/jimezsa/jobmatch/internal/normalize"
	"github.com/jimezsa/jobmatch/internal/query"
	"github.com/jimezsa/jobmatch/internal/rank"
	"github.com/jimezsa/jobmatch/internal/score"
	"github.com/rs/zerolog"
)

// Searcher executes one planned query against the provider.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery, num int) ([]models.RawResult, error)
}

// Enricher performs tier-1 detail extraction for one link. The details
// are always usable; a non-nil error only records why the live fetch
// degraded.
type Enricher interface {
	ScrapeDetails(ctx context.Context, link string) (models.ScrapedDetails, error)
}

// FailureKind classifies recoverable per-item failures.
type FailureKind string

const (
	FailureSearch FailureKind = "search"
	FailureEnrich FailureKind = "enrich"
)

// Failure is one contained per-item failure, reported with the result.
type Failure struct {
	Kind  FailureKind
	Query string
	Link  string
	Err   error
}

// Options are the pipeline's runtime knobs. Zero values fall back to
// the reference defaults.
type Options struct {
	MaxQueries      int
	ResultsPerQuery int
	JobsCap         int
	InternshipsCap  int
	Workers         int
}

const (
	defaultJobsCap        = 20
	defaultInternshipsCap = 10
)

type Pipeline struct {
	searcher Searcher
	enricher Enricher
	logger   zerolog.Logger
	opts     Options
}

func New(searcher Searcher, enricher Enricher, logger zerolog.Logger, opts Options) *Pipeline {
	if opts.JobsCap <= 0 {
		opts.JobsCap = defaultJobsCap
	}
	if opts.InternshipsCap <= 0 {
		opts.InternshipsCap = defaultInternshipsCap
	}
	if opts.Workers <= 0 {
		// One detail fetch at a time unless asked otherwise.
		opts.Workers = 1
	}
	return &Pipeline{searcher: searcher, enricher: enricher, logger: logger, opts: opts}
}

type candidate struct {
	query  string
	result models.RawResult
}

// Run executes the full pipeline for a profile. The returned failures
// are warnings about skipped units of work, not errors: the result is
// always well formed, possibly empty.
func (p *Pipeline) Run(ctx context.Context, profile models.Profile) (models.RecommendResult, []Failure) {
	queries := query.Plan(profile, p.opts.MaxQueries)

	var failures []Failure
	var candidates []candidate

	for _, q := range queries {
		if ctx.Err() != nil {
			break
		}

		results, err := p.searcher.Search(ctx, q, p.opts.ResultsPerQuery)
		if err != nil {
			p.logger.Warn().Str("query", q.Text).Err(err).Msg("query skipped")
			failures = append(failures, Failure{Kind: FailureSearch, Query: q.Text, Err: err})
			continue
		}

		for _, result := range results {
			// Hits without a usable apply link are dropped here,
			// silently, before any enrichment work is spent on them.
			if normalize.SanitizeLink(result.Link) == "" {
				continue
			}
			candidates = append(candidates, candidate{query: q.Text, result: result})
		}
	}

	details, enrichFailures := p.enrichAll(ctx, candidates)
	failures = append(failures, enrichFailures...)

	jobs := make([]models.JobPosting, 0, len(candidates))
	internships := make([]models.JobPosting, 0)

	for i, cand := range candidates {
		posting, ok := normalize.Build(cand.result, details[i])
		if !ok {
			continue
		}
		posting.MatchScore = score.Match(profile.Skills, posting.Description)
		posting.RequiredSkills = score.Mentioned(posting.Description)

		if posting.Category == models.CategoryInternship {
			internships = append(internships, posting)
		} else {
			jobs = append(jobs, posting)
		}
	}

	result := models.RecommendResult{
		Jobs:        rank.Rank(rank.Dedupe(jobs), p.opts.JobsCap),
		Internships: rank.Rank(rank.Dedupe(internships), p.opts.InternshipsCap),
	}
	return result, failures
}

// enrichAll fetches details for all candidates with a bounded worker
// pool. Results land in a slice indexed like candidates, so later
// stages see the original order regardless of completion order. All
// workers are joined before returning: ranking never runs against a
// partial set.
func (p *Pipeline) enrichAll(ctx context.Context, candidates []candidate) ([]models.ScrapedDetails, []Failure) {
	details := make([]models.ScrapedDetails, len(candidates))
	if len(candidates) == 0 {
		return details, nil
	}

	workers := p.opts.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []Failure

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				cand := candidates[i]
				scraped, err := p.enricher.ScrapeDetails(ctx, cand.result.Link)
				details[i] = scraped
				if err != nil {
					mu.Lock()
					failures = append(failures, Failure{
						Kind:  FailureEnrich,
						Query: cand.query,
						Link:  cand.result.Link,
						Err:   err,
					})
					mu.Unlock()
				}
			}
		}()
	}

	for i := range candidates {
		if ctx.Err() != nil {
			// Stop scheduling; already-dispatched items finish with
			// their own local timeouts.
			break
		}
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return details, failures
}
