package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jimezsa/jobmatch/internal/config"
	"github.com/jimezsa/jobmatch/internal/export"
	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/jimezsa/jobmatch/internal/pipeline"
	"github.com/jimezsa/jobmatch/internal/ui"
)

func newTestContext() (*Context, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	ctx := &Context{
		Out: &out,
		Err: &errOut,
		UI:  ui.New(&out, &errOut, ui.ColorNever, true),
	}
	return ctx, &out, &errOut
}

func TestRecommendRequiresSeenForNewOnly(t *testing.T) {
	ctx, _, _ := newTestContext()

	cases := []RecommendCmd{
		{NewOnly: true},
		{NewOut: "unseen.json"},
		{SeenUpdate: true},
	}
	for _, cmd := range cases {
		if err := cmd.Run(ctx); err == nil || !strings.Contains(err.Error(), "--seen") {
			t.Fatalf("expected --seen requirement error, got %v", err)
		}
	}
}

func TestRecommendRequiresCredentials(t *testing.T) {
	ctx, _, _ := newTestContext()
	cmd := RecommendCmd{Skills: "Go"}
	if err := cmd.Run(ctx); !errors.Is(err, config.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestResolveFormatPrecedence(t *testing.T) {
	ctx, _, _ := newTestContext()

	ctx.JSONOutput = true
	if format, _ := resolveFormat(ctx, "csv", ""); format != export.FormatJSON {
		t.Fatalf("--json must win, got %q", format)
	}
	ctx.JSONOutput = false

	ctx.PlainText = true
	if format, _ := resolveFormat(ctx, "", ""); format != export.FormatTSV {
		t.Fatalf("--plain must select tsv, got %q", format)
	}
	ctx.PlainText = false

	if format, _ := resolveFormat(ctx, "md", ""); format != export.FormatMarkdown {
		t.Fatalf("format flag ignored, got %q", format)
	}

	// File output without an explicit format defaults to CSV.
	if format, _ := resolveFormat(ctx, "", "out.csv"); format != export.FormatCSV {
		t.Fatalf("file default = %q, want csv", format)
	}

	// Buffers are not TTYs, so stdout falls back to CSV too.
	if format, _ := resolveFormat(ctx, "", ""); format != export.FormatCSV {
		t.Fatalf("non-tty default = %q, want csv", format)
	}
}

func TestParseFormatUnknown(t *testing.T) {
	if _, err := parseFormat("yaml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestResolveOutputPathAliases(t *testing.T) {
	if got := resolveOutputPath("a.csv", "b.csv", "c.csv"); got != "a.csv" {
		t.Fatalf("resolveOutputPath = %q", got)
	}
	if got := resolveOutputPath("", "b.csv", "c.csv"); got != "b.csv" {
		t.Fatalf("resolveOutputPath = %q", got)
	}
	if got := resolveOutputPath("", "", ""); got != "" {
		t.Fatalf("resolveOutputPath = %q", got)
	}
}

func TestPathsEqual(t *testing.T) {
	if !pathsEqual("out/../a.json", "a.json") {
		t.Fatalf("expected cleaned paths to match")
	}
	if pathsEqual("", "a.json") {
		t.Fatalf("blank path never matches")
	}
}

func TestAllPostingsKeepsOrder(t *testing.T) {
	result := models.RecommendResult{
		Jobs:        []models.JobPosting{{Title: "a"}, {Title: "b"}},
		Internships: []models.JobPosting{{Title: "c"}},
	}
	flat := allPostings(result)
	if len(flat) != 3 || flat[0].Title != "a" || flat[2].Title != "c" {
		t.Fatalf("allPostings = %+v", flat)
	}
}

func TestReportPipelineFailures(t *testing.T) {
	ctx, _, errOut := newTestContext()
	reportPipelineFailures(ctx, []pipeline.Failure{
		{Kind: pipeline.FailureSearch, Query: `"Go" job openings`, Err: errors.New("http 403")},
		{Kind: pipeline.FailureEnrich, Link: "https://x.com/1", Err: errors.New("timeout")},
	})

	out := errOut.String()
	if !strings.Contains(out, "2 step(s) skipped") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "403") || !strings.Contains(out, "https://x.com/1") {
		t.Fatalf("missing failure details:\n%s", out)
	}
}

func TestPrintRunSummary(t *testing.T) {
	ctx, _, errOut := newTestContext()
	result := models.RecommendResult{
		Jobs:        make([]models.JobPosting, 3),
		Internships: make([]models.JobPosting, 1),
	}

	printRunSummary(ctx, result, nil, false, 2)
	if got := strings.TrimSpace(errOut.String()); got != "summary: jobs=3 internships=1 failures=2" {
		t.Fatalf("summary = %q", got)
	}

	errOut.Reset()
	printRunSummary(ctx, result, make([]models.JobPosting, 2), true, 0)
	if !strings.Contains(errOut.String(), "unseen=2") {
		t.Fatalf("summary = %q", errOut.String())
	}
}
