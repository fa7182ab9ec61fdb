package enrich

import (
	"testing"

	"github.com/jimezsa/jobmatch/internal/models"
)

func TestCompanyFromMetatags(t *testing.T) {
	result := models.RawResult{
		Title: "Backend Engineer",
		Pagemap: map[string]any{
			"metatags": []any{map[string]any{"og:site_name": "Acme Careers Portal"}},
		},
	}

	company, ok := CompanyFallback(result)
	if !ok {
		t.Fatalf("expected company from metatags")
	}
	if company != "Acme Careers Portal" {
		t.Fatalf("company = %q", company)
	}
}

func TestCompanyMetatagBoardBrandRejected(t *testing.T) {
	result := models.RawResult{
		Title: "Backend Engineer role",
		Pagemap: map[string]any{
			"metatags": []any{map[string]any{"og:site_name": "LinkedIn"}},
		},
	}

	if _, ok := CompanyFallback(result); ok {
		t.Fatalf("board brand must not be returned as employer")
	}
}

func TestCompanyFromHiringPhrase(t *testing.T) {
	result := models.RawResult{
		Title:   "Initech is hiring a Staff Engineer",
		Snippet: "Join our platform team.",
	}

	company, ok := CompanyFallback(result)
	if !ok || company != "Initech" {
		t.Fatalf("company = %q, ok = %v", company, ok)
	}
}

func TestCompanyFromAtPhrase(t *testing.T) {
	result := models.RawResult{
		Title:   "Senior Go Developer at Umbrella Corp",
		Snippet: "Distributed systems role.",
	}

	company, ok := CompanyFallback(result)
	if !ok || company != "Umbrella Corp" {
		t.Fatalf("company = %q, ok = %v", company, ok)
	}
}

func TestCompanyFromKnownEmployerList(t *testing.T) {
	result := models.RawResult{
		Title:   "Cloud engineer role",
		Snippet: "Work on large scale systems with Accenture teams worldwide.",
	}

	company, ok := CompanyFallback(result)
	if !ok || company != "Accenture" {
		t.Fatalf("company = %q, ok = %v", company, ok)
	}
}

func TestCompanyFallbackExhausted(t *testing.T) {
	result := models.RawResult{
		Title:   "great opportunity",
		Snippet: "apply now",
	}

	if company, ok := CompanyFallback(result); ok {
		t.Fatalf("expected no company, got %q", company)
	}
}

func TestLocationFromCityStatePattern(t *testing.T) {
	result := models.RawResult{
		Snippet: "We are looking for an analyst in Austin, TX to join the data team.",
	}

	location, ok := LocationFallback(result)
	if !ok || location != "Austin, TX" {
		t.Fatalf("location = %q, ok = %v", location, ok)
	}
}

func TestLocationFromRemotePattern(t *testing.T) {
	result := models.RawResult{
		Title: "Data Engineer - Lisbon (Remote)",
	}

	location, ok := LocationFallback(result)
	if !ok || location != "Lisbon" {
		t.Fatalf("location = %q, ok = %v", location, ok)
	}
}

func TestLocationFromMetadata(t *testing.T) {
	result := models.RawResult{
		Pagemap: map[string]any{
			"postaladdress": []any{map[string]any{"addresslocality": "Toronto"}},
		},
	}

	location, ok := LocationFallback(result)
	if !ok || location != "Toronto" {
		t.Fatalf("location = %q, ok = %v", location, ok)
	}
}

func TestLocationFromKnownPlaces(t *testing.T) {
	result := models.RawResult{
		Snippet: "hybrid role, offices in bangalore and elsewhere",
	}

	location, ok := LocationFallback(result)
	if !ok || location != "Bangalore" {
		t.Fatalf("location = %q, ok = %v", location, ok)
	}
}

func TestSalaryFromCurrencyRange(t *testing.T) {
	result := models.RawResult{
		Snippet: "Compensation: $90,000 - $120,000 per year plus equity.",
	}

	salary, ok := SalaryFallback(result)
	if !ok {
		t.Fatalf("expected salary match")
	}
	if salary != "$90,000 - $120,000 per year" {
		t.Fatalf("salary = %q", salary)
	}
}

func TestSalaryFromKiloRange(t *testing.T) {
	result := models.RawResult{
		Snippet: "Offering 80k - 120k depending on experience.",
	}

	salary, ok := SalaryFallback(result)
	if !ok || salary != "80k - 120k" {
		t.Fatalf("salary = %q, ok = %v", salary, ok)
	}
}

func TestSalaryFromLPA(t *testing.T) {
	result := models.RawResult{
		Snippet: "CTC up to 12 LPA for the right candidate.",
	}

	salary, ok := SalaryFallback(result)
	if !ok || salary != "12 LPA" {
		t.Fatalf("salary = %q, ok = %v", salary, ok)
	}
}

func TestSalaryFromOfferMetadata(t *testing.T) {
	result := models.RawResult{
		Snippet: "no amounts here",
		Pagemap: map[string]any{
			"offer": []any{map[string]any{"price": "95000", "pricecurrency": "USD"}},
		},
	}

	salary, ok := SalaryFallback(result)
	if !ok || salary != "95000 USD" {
		t.Fatalf("salary = %q, ok = %v", salary, ok)
	}
}

func TestSalaryFallbackExhausted(t *testing.T) {
	result := models.RawResult{Snippet: "competitive compensation"}
	if salary, ok := SalaryFallback(result); ok {
		t.Fatalf("expected no salary, got %q", salary)
	}
}
