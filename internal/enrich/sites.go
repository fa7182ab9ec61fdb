package enrich

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobmatch/internal/models"
)

// siteRule maps one known job site to ordered selector lists per field.
// The first selector that matches a non-empty element wins.
type siteRule struct {
	company  []string
	location []string
	salary   []string
}

var siteRules = map[string]siteRule{
	"linkedin.com": {
		company:  []string{"a.topcard__org-name-link", "span.topcard__flavor"},
		location: []string{"span.topcard__flavor--bullet"},
		salary:   []string{"div.salary.compensation__salary"},
	},
	"indeed.com": {
		company:  []string{`div[data-company-name="true"]`, `div[data-testid="inlineHeader-companyName"]`},
		location: []string{`div[data-testid="inlineHeader-companyLocation"]`},
		salary:   []string{"div#salaryInfoAndJobType span"},
	},
	"glassdoor.com": {
		company:  []string{`div[data-test="employer-name"]`, "div.employer-name"},
		location: []string{`div[data-test="location"]`},
		salary:   []string{`span[data-test="detailSalary"]`},
	},
}

// ruleForHost matches the host or any subdomain of a known site.
func ruleForHost(host string) (siteRule, bool) {
	host = strings.ToLower(strings.TrimSpace(host))
	for domain, rule := range siteRules {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return rule, true
		}
	}
	return siteRule{}, false
}

func applyRule(doc *goquery.Document, rule siteRule) models.ScrapedDetails {
	var details models.ScrapedDetails
	if value, ok := firstSelection(doc, rule.company); ok {
		details.Company = &value
	}
	if value, ok := firstSelection(doc, rule.location); ok {
		details.Location = &value
	}
	if value, ok := firstSelection(doc, rule.salary); ok {
		details.Salary = &value
	}
	return details
}

// firstSelection walks the selector list and returns the text of the
// first element present. An element that exists but holds no text still
// counts as extracted: empty string is a valid value, distinct from
// missing.
func firstSelection(doc *goquery.Document, selectors []string) (string, bool) {
	for _, selector := range selectors {
		selection := doc.Find(selector).First()
		if selection.Length() == 0 {
			continue
		}
		return cleanText(selection.Text()), true
	}
	return "", false
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}
