package seen

import (
	"strings"

	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/jimezsa/jobmatch/internal/rank"
)

// DiffStats captures stats for A-B unseen filtering.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats captures stats for seen history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during merge.
func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Key builds the history identity for a posting. It is the pipeline's
// dedup key, so a posting surfaced twice across runs collapses the
// same way it would within one run. A record with neither a link nor
// a title+company pair is invalid.
func Key(posting models.JobPosting) (string, bool) {
	hasLink := strings.TrimSpace(posting.ApplyLink) != ""
	hasIdentity := strings.TrimSpace(posting.Title) != "" && strings.TrimSpace(posting.Company) != ""
	if !hasLink && !hasIdentity {
		return "", false
	}
	return rank.Key(posting), true
}

// Diff returns unseen postings from newPostings using existing history keys.
func Diff(newPostings []models.JobPosting, seenPostings []models.JobPosting) ([]models.JobPosting, DiffStats) {
	stats := DiffStats{
		TotalNew:  len(newPostings),
		TotalSeen: len(seenPostings),
	}

	seenKeys := make(map[string]struct{}, len(seenPostings))
	for _, posting := range seenPostings {
		key, ok := Key(posting)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		if _, exists := seenKeys[key]; exists {
			continue
		}
		seenKeys[key] = struct{}{}
	}

	newKeys := make(map[string]struct{}, len(newPostings))
	unseen := make([]models.JobPosting, 0, len(newPostings))
	for _, posting := range newPostings {
		key, ok := Key(posting)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, exists := newKeys[key]; exists {
			continue
		}
		newKeys[key] = struct{}{}
		if _, exists := seenKeys[key]; exists {
			continue
		}
		unseen = append(unseen, posting)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends unique new postings into the seen history.
// Existing entries win collisions.
func Merge(existingSeen []models.JobPosting, input []models.JobPosting) ([]models.JobPosting, MergeStats) {
	stats := MergeStats{
		TotalSeen:  len(existingSeen),
		TotalInput: len(input),
	}

	keys := make(map[string]struct{}, len(existingSeen)+len(input))
	out := make([]models.JobPosting, 0, len(existingSeen)+len(input))

	for _, posting := range existingSeen {
		key, ok := Key(posting)
		if !ok {
			stats.InvalidSeen++
			out = append(out, posting)
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, posting)
	}

	for _, posting := range input {
		key, ok := Key(posting)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, posting)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
