package markdown

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lightfix/lightfix/internal/domain"
)

// NoIssuesLine is the exact output for an empty fix list. An empty
// list is a valid, expected result, not an error.
const NoIssuesLine = "No issues found! Great job!"

var priorityHeadings = []struct {
	priority string
	heading  string
}{
	{domain.PriorityHigh, "High Priority"},
	{domain.PriorityMedium, "Medium Priority"},
	{domain.PriorityLow, "Low Priority"},
}

// RenderFixes renders a fix list grouped by priority. The grouping is
// a stable sort by priority rank, so emission order is preserved
// within each bucket. Buckets with no members are omitted.
func RenderFixes(summary domain.Summary, fixes []domain.Fix) string {
	if len(fixes) == 0 {
		return NoIssuesLine + "\n"
	}

	sorted := append([]domain.Fix(nil), fixes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return domain.PriorityRank(sorted[i].Priority) < domain.PriorityRank(sorted[j].Priority)
	})

	var b strings.Builder
	b.WriteString("# Lighthouse Fix Plan\n\n")
	fmt.Fprintf(&b, "**URL:** %s\n", summary.URL)
	fmt.Fprintf(&b, "**Audited:** %s (Lighthouse %s)\n\n", summary.FetchTime, summary.Version)

	for _, ph := range priorityHeadings {
		bucket := filterPriority(sorted, ph.priority)
		if len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", ph.heading)
		for _, fix := range bucket {
			renderFix(&b, fix)
		}
	}
	return b.String()
}

func filterPriority(fixes []domain.Fix, priority string) []domain.Fix {
	var out []domain.Fix
	for _, f := range fixes {
		if f.Priority == priority {
			out = append(out, f)
		}
	}
	return out
}

func renderFix(b *strings.Builder, fix domain.Fix) {
	fmt.Fprintf(b, "### %s\n\n", fix.Title)
	fmt.Fprintf(b, "**Impact:** %s\n\n", fix.Impact)
	fmt.Fprintf(b, "%s\n\n", fix.Description)
	if fix.Diagnosis != "" {
		fmt.Fprintf(b, "_Diagnosis:_ %s\n\n", fix.Diagnosis)
	}
	for _, s := range fix.Fixes {
		fmt.Fprintf(b, "**%s**\n\n", s.Title)
		fmt.Fprintf(b, "```%s\n%s\n```\n\n", s.Type, s.Code)
	}
}

// RenderAnalysis renders the analyzer's findings as one markdown
// document: header, category scores, vitals, opportunities,
// diagnostics, failed audits.
func RenderAnalysis(f domain.Findings, verbose bool) string {
	var b strings.Builder

	b.WriteString("# Lighthouse Analysis\n\n")
	fmt.Fprintf(&b, "**URL:** %s\n", f.Summary.URL)
	if f.Summary.FinalURL != "" && f.Summary.FinalURL != f.Summary.URL {
		fmt.Fprintf(&b, "**Final URL:** %s\n", f.Summary.FinalURL)
	}
	fmt.Fprintf(&b, "**Fetched:** %s\n", f.Summary.FetchTime)
	fmt.Fprintf(&b, "**Lighthouse:** %s\n\n", f.Summary.Version)

	b.WriteString("## Category Scores\n\n")
	b.WriteString("| Category | Score |\n|---|---|\n")
	for _, cs := range f.Summary.Scores {
		fmt.Fprintf(&b, "| %s | %s |\n", cs.Title, scoreCell(cs.Score))
	}
	b.WriteString("\n")

	if len(f.Vitals) > 0 {
		b.WriteString("## Core Web Vitals\n\n")
		b.WriteString("| Metric | Value | Rating |\n|---|---|---|\n")
		for _, v := range f.Vitals {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", v.Name, vitalValue(v), v.Rating)
		}
		b.WriteString("\n")
	}

	if len(f.Opportunities) > 0 {
		b.WriteString("## Opportunities\n\n")
		for _, o := range f.Opportunities {
			fmt.Fprintf(&b, "- **%s**: `~%ds` potential savings (%d items)\n",
				o.Title, WastedSeconds(o.WastedMs), o.ItemCount)
		}
		b.WriteString("\n")
	}

	if len(f.Diagnostics) > 0 {
		b.WriteString("## Diagnostics\n\n")
		for _, d := range f.Diagnostics {
			if d.DisplayValue != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", d.Title, d.DisplayValue)
			} else {
				fmt.Fprintf(&b, "- **%s**\n", d.Title)
			}
		}
		b.WriteString("\n")
	}

	if len(f.Failed) > 0 {
		fmt.Fprintf(&b, "## Failed Audits (%d)\n\n", len(f.Failed))
		for _, fa := range f.Failed {
			fmt.Fprintf(&b, "- [%s] **%s** (score %.2f)\n", fa.Category, fa.Audit.Title, *fa.Audit.Score)
			if verbose && fa.Audit.Description != "" {
				fmt.Fprintf(&b, "  %s\n", fa.Audit.Description)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// WastedSeconds converts an opportunity's savings to whole seconds the
// same way it is rendered, so figures round-trip through the document.
func WastedSeconds(ms float64) int {
	return int(math.Round(ms / 1000))
}

func scoreCell(score *int) string {
	if score == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *score)
}

func vitalValue(v domain.Vital) string {
	if v.DisplayValue != "" {
		return v.DisplayValue
	}
	return fmt.Sprintf("%.0f %s", v.Value, v.Unit)
}
