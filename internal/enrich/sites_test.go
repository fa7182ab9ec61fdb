package enrich

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestRuleForHost(t *testing.T) {
	cases := []struct {
		host string
		want bool
	}{
		{"linkedin.com", true},
		{"www.linkedin.com", true},
		{"de.linkedin.com", true},
		{"indeed.com", true},
		{"glassdoor.com", true},
		{"example.com", false},
		{"notlinkedin.com", false},
	}

	for _, tc := range cases {
		if _, ok := ruleForHost(tc.host); ok != tc.want {
			t.Fatalf("ruleForHost(%q) = %v, want %v", tc.host, ok, tc.want)
		}
	}
}

func TestApplyRuleLinkedIn(t *testing.T) {
	html := `
<div class="topcard">
  <a class="topcard__org-name-link" href="/company/acme">Acme Corp</a>
  <span class="topcard__flavor--bullet">Austin, TX</span>
</div>`

	doc := mustDoc(t, html)
	rule, ok := ruleForHost("www.linkedin.com")
	if !ok {
		t.Fatalf("expected linkedin rule")
	}

	details := applyRule(doc, rule)
	if details.Company == nil || *details.Company != "Acme Corp" {
		t.Fatalf("unexpected company: %v", details.Company)
	}
	if details.Location == nil || *details.Location != "Austin, TX" {
		t.Fatalf("unexpected location: %v", details.Location)
	}
	if details.Salary != nil {
		t.Fatalf("expected nil salary, got %q", *details.Salary)
	}
}

func TestApplyRuleIndeedSalary(t *testing.T) {
	html := `
<div data-company-name="true">Beta GmbH</div>
<div data-testid="inlineHeader-companyLocation">Berlin</div>
<div id="salaryInfoAndJobType"><span>€65,000 a year</span></div>`

	doc := mustDoc(t, html)
	rule, ok := ruleForHost("de.indeed.com")
	if !ok {
		t.Fatalf("expected indeed rule")
	}

	details := applyRule(doc, rule)
	if details.Company == nil || *details.Company != "Beta GmbH" {
		t.Fatalf("unexpected company: %v", details.Company)
	}
	if details.Salary == nil || *details.Salary != "€65,000 a year" {
		t.Fatalf("unexpected salary: %v", details.Salary)
	}
}

func TestFirstSelectionFallsThroughSelectors(t *testing.T) {
	html := `<span class="topcard__flavor">Fallback Inc</span>`
	doc := mustDoc(t, html)

	value, ok := firstSelection(doc, []string{"a.topcard__org-name-link", "span.topcard__flavor"})
	if !ok {
		t.Fatalf("expected a match")
	}
	if value != "Fallback Inc" {
		t.Fatalf("value = %q", value)
	}
}

func TestFirstSelectionEmptyElementCountsAsExtracted(t *testing.T) {
	html := `<div data-company-name="true"></div>`
	doc := mustDoc(t, html)

	value, ok := firstSelection(doc, []string{`div[data-company-name="true"]`})
	if !ok {
		t.Fatalf("present-but-empty element should count as extracted")
	}
	if value != "" {
		t.Fatalf("value = %q, want empty", value)
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("  Acme&amp;Co \n  Berlin  ")
	if got != "Acme&Co Berlin" {
		t.Fatalf("cleanText() = %q", got)
	}
}
