package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jimezsa/jobmatch/internal/config"
	"github.com/jimezsa/jobmatch/internal/enrich"
	"github.com/jimezsa/jobmatch/internal/export"
	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/jimezsa/jobmatch/internal/network"
	"github.com/jimezsa/jobmatch/internal/pipeline"
	"github.com/jimezsa/jobmatch/internal/profile"
	"github.com/jimezsa/jobmatch/internal/search"
	"github.com/jimezsa/jobmatch/internal/seen"
	"github.com/muesli/termenv"
)

type RecommendCmd struct {
	Skills      string `help:"Comma-separated skills."`
	Interests   string `help:"Comma-separated job interests."`
	Location    string `help:"Preferred location." env:"JOBMATCH_DEFAULT_LOCATION"`
	Experience  string `help:"Experience level: entry, mid, senior." enum:",entry,mid,senior" default:""`
	ProfileFile string `help:"Path to a JSON profile file (skills, job_interests, experience_level, location)."`

	MaxQueries int `help:"Maximum planned queries."`
	Results    int `help:"Results requested per query (provider max 10)."`
	Workers    int `help:"Concurrent detail fetches." default:"1"`

	Format  string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links   string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output  string `name:"output" short:"o" help:"Write output to a file."`
	Out     string `name:"out" help:"Alias for --output."`
	File    string `name:"file" help:"Alias for --output."`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBMATCH_PROXIES"`

	Seen       string `help:"Path to seen postings JSON file."`
	NewOnly    bool   `help:"Output only unseen postings (requires --seen)."`
	NewOut     string `help:"Write unseen postings JSON to a file (requires --seen)."`
	SeenUpdate bool   `help:"Merge newly discovered unseen postings into --seen after the run."`
}

func (r *RecommendCmd) Run(ctx *Context) error {
	if r.NewOnly && strings.TrimSpace(r.Seen) == "" {
		return fmt.Errorf("--new-only requires --seen")
	}
	if strings.TrimSpace(r.NewOut) != "" && strings.TrimSpace(r.Seen) == "" {
		return fmt.Errorf("--new-out requires --seen")
	}
	if r.SeenUpdate && strings.TrimSpace(r.Seen) == "" {
		return fmt.Errorf("--seen-update requires --seen")
	}

	cfg := ctx.Config
	key, engineID, err := cfg.Credentials()
	if err != nil {
		return err
	}

	prof := profile.FromFlags(r.Skills, r.Interests, firstNonEmpty(r.Location, cfg.DefaultLocation), r.Experience)
	if strings.TrimSpace(r.ProfileFile) != "" {
		base, err := profile.LoadFile(r.ProfileFile)
		if err != nil {
			return err
		}
		prof = profile.Merge(base, prof)
	}
	if len(prof.Skills) == 0 && len(prof.JobInterests) == 0 {
		ctx.UI.Warnf("no skills or interests given; searching with generic developer queries")
	}

	proxies, err := config.LoadProxies(r.Proxies)
	if err != nil {
		return err
	}
	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return err
		}
	}

	// One client per concern: the search client enforces the provider
	// delay between queries, the fetch client runs unthrottled since
	// every detail fetch targets a different host.
	searchHTTP, err := network.NewClient(rotator, search.MinQueryDelay)
	if err != nil {
		return err
	}
	fetchHTTP, err := network.NewClient(rotator, 0)
	if err != nil {
		return err
	}

	searcher := search.NewClient(searchHTTP, key, engineID, ctx.Logger)
	enricher := enrich.New(enrich.NewPageFetcher(fetchHTTP, enrich.DefaultFetchTimeout), ctx.Logger)
	pipe := pipeline.New(searcher, enricher, ctx.Logger, pipeline.Options{
		MaxQueries:      defaultInt(r.MaxQueries, cfg.MaxQueries),
		ResultsPerQuery: defaultInt(r.Results, cfg.ResultsPerQuery),
		JobsCap:         cfg.JobsCap,
		InternshipsCap:  cfg.InternshipsCap,
		Workers:         r.Workers,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopIndicator := startSearchIndicator(ctx)
	result, failures := pipe.Run(runCtx, prof)
	if stopIndicator != nil {
		stopIndicator()
	}

	reportPipelineFailures(ctx, failures)

	postings := allPostings(result)
	var unseen []models.JobPosting
	if strings.TrimSpace(r.Seen) != "" {
		history, err := seen.ReadPostingsAllowMissing(r.Seen)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
		unseen, _ = seen.Diff(postings, history)
	}

	outputPath := resolveOutputPath(r.Output, r.Out, r.File)
	if strings.TrimSpace(r.NewOut) != "" && pathsEqual(outputPath, r.NewOut) {
		return fmt.Errorf("--new-out path must differ from --output")
	}
	if strings.TrimSpace(r.Seen) != "" && pathsEqual(outputPath, r.Seen) {
		return fmt.Errorf("--output path must differ from --seen")
	}
	if strings.TrimSpace(r.NewOut) != "" && pathsEqual(r.NewOut, r.Seen) {
		return fmt.Errorf("--new-out path must differ from --seen")
	}

	if strings.TrimSpace(r.NewOut) != "" {
		if err := seen.WritePostings(r.NewOut, unseen); err != nil {
			return fmt.Errorf("write --new-out: %w", err)
		}
	}

	format, err := resolveFormat(ctx, r.Format, outputPath)
	if err != nil {
		return err
	}

	writer := ctx.Out
	var file *os.File
	if outputPath != "" {
		file, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(r.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	writeOpts := export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	}

	if r.NewOnly {
		err = export.WritePostings(writer, unseen, format, writeOpts)
	} else {
		err = export.WriteResult(writer, result, format, writeOpts)
	}
	if err != nil {
		return err
	}

	if r.SeenUpdate {
		if err := updateSeenHistory(r.Seen, unseen); err != nil {
			return err
		}
	}

	printRunSummary(ctx, result, unseen, strings.TrimSpace(r.Seen) != "", len(failures))
	return nil
}

func allPostings(result models.RecommendResult) []models.JobPosting {
	out := make([]models.JobPosting, 0, len(result.Jobs)+len(result.Internships))
	out = append(out, result.Jobs...)
	out = append(out, result.Internships...)
	return out
}

func updateSeenHistory(seenPath string, input []models.JobPosting) error {
	history, err := seen.ReadPostingsAllowMissing(seenPath)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	merged, _ := seen.Merge(history, input)
	if err := seen.WritePostings(seenPath, merged); err != nil {
		return fmt.Errorf("write --seen: %w", err)
	}
	return nil
}

func reportPipelineFailures(ctx *Context, failures []pipeline.Failure) {
	if ctx == nil || ctx.UI == nil || len(failures) == 0 {
		return
	}
	ctx.UI.Warnf("%d step(s) skipped:", len(failures))
	for _, failure := range failures {
		switch failure.Kind {
		case pipeline.FailureSearch:
			ctx.UI.Warnf("  query %q: %v", failure.Query, failure.Err)
		case pipeline.FailureEnrich:
			ctx.UI.Warnf("  details %s: %v", failure.Link, failure.Err)
		default:
			ctx.UI.Warnf("  %v", failure.Err)
		}
	}
}

func printRunSummary(ctx *Context, result models.RecommendResult, unseen []models.JobPosting, seenGiven bool, failureCount int) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	summary := fmt.Sprintf("summary: jobs=%d internships=%d failures=%d", len(result.Jobs), len(result.Internships), failureCount)
	if seenGiven {
		summary += fmt.Sprintf(" unseen=%d", len(unseen))
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", summary)
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func resolveOutputPath(paths ...string) string {
	for _, path := range paths {
		if strings.TrimSpace(path) != "" {
			return path
		}
	}
	return ""
}

func resolveFormat(ctx *Context, formatFlag string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if formatFlag != "" {
		return parseFormat(formatFlag)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startSearchIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KSearching... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
