package seen

import (
	"path/filepath"
	"testing"

	"github.com/jimezsa/jobmatch/internal/models"
)

func TestReadWritePostings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seen.json")

	postings := []models.JobPosting{
		{Title: "SRE", Company: "Acme", ApplyLink: "https://example.com/1", MatchScore: 80},
	}
	if err := WritePostings(path, postings); err != nil {
		t.Fatalf("WritePostings() error = %v", err)
	}

	got, err := ReadPostings(path)
	if err != nil {
		t.Fatalf("ReadPostings() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected len=1, got %d", len(got))
	}
	if got[0].Title != postings[0].Title || got[0].ApplyLink != postings[0].ApplyLink {
		t.Fatalf("unexpected posting read back: %+v", got[0])
	}
	if got[0].MatchScore != 80 {
		t.Fatalf("MatchScore = %d, want 80", got[0].MatchScore)
	}
}

func TestReadPostingsRequiresPath(t *testing.T) {
	if _, err := ReadPostings("  "); err == nil {
		t.Fatalf("expected error for blank path")
	}
	if err := WritePostings("", nil); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestReadPostingsAllowMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	got, err := ReadPostingsAllowMissing(missing)
	if err != nil {
		t.Fatalf("ReadPostingsAllowMissing() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history for missing file, got %d", len(got))
	}
}
