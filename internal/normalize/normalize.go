// Package normalize merges tier outputs into a posting candidate.
// Per-field precedence: tier-1 scraped value, then tier-2 heuristic,
// then the literal default.
package normalize

import (
	"net/url"
	"strings"

	"github.com/jimezsa/jobmatch/internal/enrich"
	"github.com/jimezsa/jobmatch/internal/models"
)

const (
	DefaultCompany  = "Unknown Company"
	DefaultLocation = "Unknown Location"
	DefaultSalary   = "Not specified"
	DefaultTitle    = "Unknown Title"
)

var internshipMarkers = []string{"intern", "internship", "trainee"}

// SanitizeLink returns a usable apply link or empty string. "#" and
// "none" are placeholders some result pages emit instead of a real URL.
func SanitizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || link == "#" || strings.EqualFold(link, "none") {
		return ""
	}
	return link
}

// Build produces the pre-scoring posting for one raw hit. ok is false
// when the hit has no usable apply link; such candidates are dropped
// silently, not reported.
func Build(result models.RawResult, details models.ScrapedDetails) (models.JobPosting, bool) {
	link := SanitizeLink(result.Link)
	if link == "" {
		return models.JobPosting{}, false
	}

	title := strings.TrimSpace(result.Title)
	if title == "" {
		title = DefaultTitle
	}

	posting := models.JobPosting{
		Title:       title,
		Company:     mergeField(details.Company, result, enrich.CompanyFallback, DefaultCompany),
		Location:    mergeField(details.Location, result, enrich.LocationFallback, DefaultLocation),
		Salary:      mergeField(details.Salary, result, enrich.SalaryFallback, DefaultSalary),
		Description: cleanDescription(result.Snippet),
		ApplyLink:   link,
		Source:      sourceHost(link),
		Category:    classify(title),
	}
	return posting, true
}

func mergeField(scraped *string, result models.RawResult, fallback func(models.RawResult) (string, bool), def string) string {
	if scraped != nil {
		return strings.TrimSpace(*scraped)
	}
	if value, ok := fallback(result); ok {
		return strings.TrimSpace(value)
	}
	return def
}

func cleanDescription(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, "...")
	value = strings.TrimSuffix(value, "…")
	return strings.TrimSpace(value)
}

func classify(title string) models.Category {
	lowered := strings.ToLower(title)
	for _, marker := range internshipMarkers {
		if strings.Contains(lowered, marker) {
			return models.CategoryInternship
		}
	}
	return models.CategoryJob
}

func sourceHost(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
