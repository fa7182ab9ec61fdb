package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/jimezsa/jobmatch/internal/ui"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// WriteResult writes recommendations in the requested format. JSON
// keeps the jobs/internships split; the flat formats carry it in the
// category column instead.
func WriteResult(w io.Writer, result models.RecommendResult, format Format, opts WriteOptions) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return WritePostings(w, flatten(result), format, opts)
}

// WritePostings writes a flat posting list in the requested format.
func WritePostings(w io.Writer, postings []models.JobPosting, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, postings)
	case FormatCSV:
		return writeCSV(w, postings, ',')
	case FormatTSV:
		return writeCSV(w, postings, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, postings)
	default:
		return writeTable(w, postings, opts)
	}
}

func flatten(result models.RecommendResult) []models.JobPosting {
	out := make([]models.JobPosting, 0, len(result.Jobs)+len(result.Internships))
	out = append(out, result.Jobs...)
	out = append(out, result.Internships...)
	return out
}

func writeJSON(w io.Writer, postings []models.JobPosting) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(postings)
}

func writeCSV(w io.Writer, postings []models.JobPosting, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, posting := range postings {
		if err := writer.Write(csvRow(posting)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, postings []models.JobPosting, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, posting := range postings {
		fmt.Fprintln(tw, strings.Join(tableRow(posting, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, postings []models.JobPosting) error {
	if len(postings) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, posting := range postings {
		linkLine := "  Apply: -"
		if link := safe(posting.ApplyLink); link != "" {
			linkLine = fmt.Sprintf("  Apply: [Open listing](<%s>)", link)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(posting.Title), safe(posting.Company)),
			fmt.Sprintf("  Match: %d%%", posting.MatchScore),
			fmt.Sprintf("  Location: %s", safe(posting.Location)),
			fmt.Sprintf("  Source: %s", safe(posting.Source)),
			linkLine,
		}
		if posting.Salary != "" {
			lines = append(lines, fmt.Sprintf("  Salary: %s", safe(posting.Salary)))
		}
		if len(posting.RequiredSkills) > 0 {
			lines = append(lines, fmt.Sprintf("  Skills: %s", strings.Join(posting.RequiredSkills, ", ")))
		}
		if posting.Category == models.CategoryInternship {
			lines = append(lines, "  Internship: yes")
		}
		if posting.Description != "" {
			lines = append(lines, fmt.Sprintf("  Summary: %s", safe(posting.Description)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"title",
		"company",
		"location",
		"salary",
		"match_score",
		"category",
		"required_skills",
		"source",
		"apply_link",
	}
}

func csvRow(posting models.JobPosting) []string {
	return []string{
		posting.Title,
		posting.Company,
		posting.Location,
		posting.Salary,
		strconv.Itoa(posting.MatchScore),
		string(posting.Category),
		strings.Join(posting.RequiredSkills, "; "),
		posting.Source,
		posting.ApplyLink,
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableHeader() []string {
	return []string{
		"match",
		"title",
		"company",
		"location",
		"link",
	}
}

func tableRow(posting models.JobPosting, output *termenv.Output, opts WriteOptions) []string {
	link := safe(posting.ApplyLink)
	displayLink := "-"
	if link != "" {
		displayLink = link
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayLink = shortLinkLabel(link)
		}
		displayLink = ui.ColorizeLink(output, opts.ColorEnabled, displayLink)
		if opts.Hyperlinks {
			displayLink = hyperlink(link, displayLink)
		}
	}
	return []string{
		fmt.Sprintf("%d%%", posting.MatchScore),
		safe(posting.Title),
		safe(posting.Company),
		safe(posting.Location),
		displayLink,
	}
}

func hyperlink(target string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + target + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortLinkLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
