// Package rank collapses duplicate postings and orders them by match
// score.
package rank

import (
	"sort"
	"strings"

	"github.com/jimezsa/jobmatch/internal/models"
)

const keySeparator = "::"

// Key derives the dedup identity for a posting: the lowercased apply
// link, or title+company when the link is empty. Deterministic, so
// deduplication is idempotent.
func Key(posting models.JobPosting) string {
	if link := strings.TrimSpace(posting.ApplyLink); link != "" {
		return strings.ToLower(link)
	}
	return strings.ToLower(posting.Title) + keySeparator + strings.ToLower(posting.Company)
}

// Dedupe removes repeated postings, keeping the first occurrence and
// preserving relative order.
func Dedupe(postings []models.JobPosting) []models.JobPosting {
	seen := make(map[string]struct{}, len(postings))
	out := make([]models.JobPosting, 0, len(postings))
	for _, posting := range postings {
		key := Key(posting)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, posting)
	}
	return out
}

// Rank sorts postings by match score descending (stable, so equal
// scores keep their original order) and truncates to max. max <= 0
// means no cap.
func Rank(postings []models.JobPosting, max int) []models.JobPosting {
	out := make([]models.JobPosting, len(postings))
	copy(out, postings)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
