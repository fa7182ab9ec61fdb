package query

import (
	"fmt"
	"strings"

	"github.com/jimezsa/jobmatch/internal/models"
)

// DefaultMaxQueries bounds how many provider calls one profile produces.
const DefaultMaxQueries = 5

// How many skills and interests feed the plan; the rest rarely add
// results beyond what the top terms already cover.
const termsPerSource = 3

// Issued when a profile carries neither skills nor interests, so the
// provider is never called with zero queries.
var defaultTerms = []string{
	"software developer jobs",
	"python developer jobs",
}

// Plan turns a profile into an ordered, case-insensitively deduplicated
// list of search queries. Pure function, no error conditions.
func Plan(profile models.Profile, maxQueries int) []models.SearchQuery {
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}

	location := strings.TrimSpace(profile.Location)
	suffix := ""
	if location != "" {
		suffix = " in " + location
	}

	queries := make([]models.SearchQuery, 0, termsPerSource*2)
	seen := make(map[string]struct{}, termsPerSource*2)
	appendUnique := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		normalized := strings.ToLower(text)
		if _, exists := seen[normalized]; exists {
			return
		}
		seen[normalized] = struct{}{}
		queries = append(queries, models.SearchQuery{Text: text, Location: location})
	}

	terms := make([]string, 0, termsPerSource*2)
	terms = append(terms, firstTerms(profile.Skills)...)
	terms = append(terms, firstTerms(profile.JobInterests)...)

	for _, term := range terms {
		if profile.ExperienceLevel == models.ExperienceSenior {
			term = "senior " + term
		}
		appendUnique(fmt.Sprintf("%q job openings%s", term, suffix))
	}

	if len(queries) == 0 {
		for _, term := range defaultTerms {
			appendUnique(term + suffix)
		}
	}

	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	return queries
}

func firstTerms(values []string) []string {
	out := make([]string, 0, termsPerSource)
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
		if len(out) == termsPerSource {
			break
		}
	}
	return out
}
