package enrich

import (
	"regexp"
	"strings"

	"github.com/jimezsa/jobmatch/internal/models"
)

// Tier-2 extraction: each field has an ordered chain of matchers tried
// against the raw hit's structured metadata, title and snippet. The
// first matcher that produces a value wins; there is no scoring across
// matches. ok=false means the chain is exhausted and the caller should
// apply its default.

type matcher func(models.RawResult) (string, bool)

var companyMatchers = []matcher{
	companyFromMetatags,
	companyFromPhrases,
	companyFromKnownEmployers,
}

var locationMatchers = []matcher{
	locationFromMetadata,
	locationFromPatterns,
	locationFromKnownPlaces,
}

var salaryMatchers = []matcher{
	salaryFromOfferMetadata,
	salaryFromPatterns,
}

func CompanyFallback(result models.RawResult) (string, bool) {
	return runChain(companyMatchers, result)
}

func LocationFallback(result models.RawResult) (string, bool) {
	return runChain(locationMatchers, result)
}

func SalaryFallback(result models.RawResult) (string, bool) {
	return runChain(salaryMatchers, result)
}

func runChain(chain []matcher, result models.RawResult) (string, bool) {
	for _, match := range chain {
		if value, ok := match(result); ok {
			return value, true
		}
	}
	return "", false
}

// --- company ---

var (
	// "<Name> is hiring": name capitalized, phrase case-insensitive.
	hiringRe = regexp.MustCompile(`([A-Z][\w&.'-]*(?:\s+[A-Z][\w&.'-]*){0,3})\s+(?i:is\s+hiring)`)
	// "at <Name>"
	atCompanyRe = regexp.MustCompile(`(?i:\bat)\s+([A-Z][\w&.'-]*(?:\s+[A-Z][\w&.'-]*){0,2})`)
	// "<Name> Careers" / "<Name> Jobs"
	careersRe = regexp.MustCompile(`([A-Z][\w&.'-]*(?:\s+[A-Z][\w&.'-]*){0,2})\s+(?i:careers|jobs)\b`)
)

var companyPatterns = []*regexp.Regexp{hiringRe, atCompanyRe, careersRe}

// Board brands never count as an employer: a hit titled "Jobs at
// LinkedIn" is almost always a listing page, not a LinkedIn vacancy.
var jobBoardBrands = []string{
	"linkedin", "indeed", "glassdoor", "monster", "ziprecruiter",
	"naukri", "simplyhired", "dice", "careerbuilder", "wellfound",
	"lever", "greenhouse", "workday", "google",
}

var knownEmployers = []string{
	"Google", "Microsoft", "Amazon", "Apple", "Meta", "Netflix",
	"IBM", "Oracle", "Intel", "Salesforce", "Adobe", "Nvidia",
	"Tesla", "Accenture", "Infosys", "TCS", "Wipro", "Cognizant",
	"Deloitte", "Capgemini",
}

func companyFromMetatags(result models.RawResult) (string, bool) {
	value, ok := metatagValue(result.Pagemap, "og:site_name")
	if !ok {
		return "", false
	}
	if isJobBoardBrand(value) {
		return "", false
	}
	return value, true
}

func companyFromPhrases(result models.RawResult) (string, bool) {
	// Title and snippet are scanned separately so a capitalized word at
	// the start of the snippet cannot extend a name matched at the end
	// of the title.
	for _, text := range []string{result.Title, result.Snippet} {
		for _, pattern := range companyPatterns {
			match := pattern.FindStringSubmatch(text)
			if match == nil {
				continue
			}
			candidate := trimCandidate(match[1])
			if candidate == "" || isJobBoardBrand(candidate) {
				continue
			}
			return candidate, true
		}
	}
	return "", false
}

func companyFromKnownEmployers(result models.RawResult) (string, bool) {
	haystack := strings.ToLower(result.Title + " " + result.Snippet)
	for _, employer := range knownEmployers {
		if containsWord(haystack, strings.ToLower(employer)) {
			return employer, true
		}
	}
	return "", false
}

func isJobBoardBrand(value string) bool {
	normalized := strings.ToLower(value)
	for _, brand := range jobBoardBrands {
		if containsWord(normalized, brand) {
			return true
		}
	}
	return false
}

// --- location ---

var (
	// "in <Place>, <ST>"
	cityStateRe = regexp.MustCompile(`(?i:\bin\s+)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2})\b`)
	// "<Place> (Remote)"
	placeRemoteRe = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*\((?i:remote)\)`)
	// "based in <Place>"
	basedInRe = regexp.MustCompile(`(?i:\bbased\s+in\s+)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
)

var locationPatterns = []*regexp.Regexp{cityStateRe, placeRemoteRe, basedInRe}

var knownPlaces = []string{
	"Remote", "New York", "San Francisco", "Seattle", "Austin",
	"Boston", "Chicago", "London", "Berlin", "Toronto", "Dublin",
	"Amsterdam", "Singapore", "Bangalore", "Bengaluru", "Hyderabad",
	"Mumbai", "Pune", "Chennai", "Delhi",
}

func locationFromMetadata(result models.RawResult) (string, bool) {
	if value, ok := metatagValue(result.Pagemap, "og:locality", "place:location:locality"); ok {
		return value, true
	}
	return pagemapEntry(result.Pagemap, "postaladdress", "addresslocality")
}

func locationFromPatterns(result models.RawResult) (string, bool) {
	for _, text := range []string{result.Title, result.Snippet} {
		for _, pattern := range locationPatterns {
			match := pattern.FindStringSubmatch(text)
			if match == nil {
				continue
			}
			candidate := trimCandidate(match[1])
			if candidate == "" {
				continue
			}
			return candidate, true
		}
	}
	return "", false
}

func locationFromKnownPlaces(result models.RawResult) (string, bool) {
	haystack := strings.ToLower(result.Title + " " + result.Snippet)
	for _, place := range knownPlaces {
		if containsWord(haystack, strings.ToLower(place)) {
			return place, true
		}
	}
	return "", false
}

// --- salary ---

var (
	// "$80,000 - $100,000 per year", "€60k", "INR 12,00,000 per annum"
	currencyAmountRe = regexp.MustCompile(`(?i)([$€£₹]|USD|EUR|INR)\s?\d[\d,]*(?:\.\d+)?k?(?:\s*(?:-|to|–)\s*([$€£₹]\s?)?\d[\d,]*(?:\.\d+)?k?)?(?:\s*(?:per|/|a)\s*(?:year|yr|annum|month|mo|hour|hr))?`)
	// "80k - 120k"
	kiloRangeRe = regexp.MustCompile(`(?i)\b\d+\s?k\s*(?:-|to|–)\s*\d+\s?k\b`)
	// "12 LPA", "8 - 14 lakhs"
	lpaRe = regexp.MustCompile(`(?i)\b\d{1,3}(?:\.\d+)?\s*(?:(?:-|to)\s*\d{1,3}(?:\.\d+)?\s*)?(?:LPA|lakhs?)\b`)
)

var salaryPatterns = []*regexp.Regexp{currencyAmountRe, kiloRangeRe, lpaRe}

func salaryFromOfferMetadata(result models.RawResult) (string, bool) {
	price, ok := pagemapEntry(result.Pagemap, "offer", "price")
	if !ok {
		return "", false
	}
	if currency, ok := pagemapEntry(result.Pagemap, "offer", "pricecurrency"); ok {
		return strings.TrimSpace(price + " " + currency), true
	}
	return price, true
}

func salaryFromPatterns(result models.RawResult) (string, bool) {
	for _, text := range []string{result.Title, result.Snippet} {
		for _, pattern := range salaryPatterns {
			if match := pattern.FindString(text); match != "" {
				return strings.TrimSpace(match), true
			}
		}
	}
	return "", false
}

// --- pagemap helpers ---

// metatagValue digs into pagemap.metatags for the first key that holds
// a non-empty string.
func metatagValue(pagemap map[string]any, keys ...string) (string, bool) {
	if pagemap == nil {
		return "", false
	}
	tags, ok := pagemap["metatags"].([]any)
	if !ok {
		return "", false
	}
	for _, raw := range tags {
		tag, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range keys {
			if value, ok := tag[key].(string); ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value), true
			}
		}
	}
	return "", false
}

// pagemapEntry reads key from the first record of a pagemap section.
func pagemapEntry(pagemap map[string]any, section, key string) (string, bool) {
	if pagemap == nil {
		return "", false
	}
	records, ok := pagemap[section].([]any)
	if !ok || len(records) == 0 {
		return "", false
	}
	record, ok := records[0].(map[string]any)
	if !ok {
		return "", false
	}
	value, ok := record[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func trimCandidate(value string) string {
	return strings.Trim(strings.TrimSpace(value), ".,;:-")
}

func containsWord(haystack, word string) bool {
	index := 0
	for {
		at := strings.Index(haystack[index:], word)
		if at < 0 {
			return false
		}
		at += index
		end := at + len(word)
		beforeOK := at == 0 || !isWordByte(haystack[at-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		index = at + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
