package models

// SearchQuery is one planned provider query plus the location context
// it was built with.
type SearchQuery struct {
	Text     string
	Location string
}

// RawResult is a single search-provider hit before enrichment.
type RawResult struct {
	Title   string
	Link    string
	Snippet string
	Pagemap map[string]any
}

// ScrapedDetails holds fields extracted from a live posting page.
// Nil means the field was not found; an empty string is a valid
// extracted value and is kept as such.
type ScrapedDetails struct {
	Company  *string
	Location *string
	Salary   *string
}

// IsEmpty reports whether no field was extracted.
func (d ScrapedDetails) IsEmpty() bool {
	return d.Company == nil && d.Location == nil && d.Salary == nil
}
