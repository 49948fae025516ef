package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lightfix/lightfix/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	highTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	medTagStyle   = lipgloss.NewStyle().Foreground(warning).Bold(true)
	lowTagStyle   = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderAnalysis renders the analyzer's findings for the terminal.
// Decoration here is cosmetic; the markdown renderer is the contract.
func RenderAnalysis(f domain.Findings) string {
	var b strings.Builder

	title := headerStyle.Render("lightfix")
	subtitle := dimStyle.Render(f.Summary.URL)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle))
	b.WriteString("\n\n")

	for _, cs := range f.Summary.Scores {
		renderCategoryScore(&b, cs)
	}

	if len(f.Vitals) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Core Web Vitals") + "\n\n")
		for _, v := range f.Vitals {
			renderVital(&b, v)
		}
	}

	if len(f.Opportunities) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render("Opportunities") + "\n\n")
		for _, o := range f.Opportunities {
			fmt.Fprintf(&b, "    %s %s  %s\n",
				warnStyle.Render("▲"),
				padRight(o.Title, 44),
				dimStyle.Render(fmt.Sprintf("%.0f ms", o.WastedMs)),
			)
		}
	}

	if len(f.Failed) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Failed Audits (%d)", len(f.Failed))) + "\n\n")
		for _, fa := range f.Failed {
			fmt.Fprintf(&b, "    %s %s %s\n",
				failStyle.Render("✗"),
				padRight(fa.Audit.Title, 48),
				faintStyle.Render(fa.Category),
			)
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderCategoryScore(b *strings.Builder, cs domain.CategoryScore) {
	if cs.Score == nil {
		fmt.Fprintf(b, "  %s %s\n",
			catNameStyle.Render(padRight(cs.Title, 20)),
			dimStyle.Render("n/a"),
		)
		return
	}

	score := *cs.Score
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(score)).Render(fmt.Sprintf("%3d", score))
	fmt.Fprintf(b, "  %s %s  %s\n",
		catNameStyle.Render(padRight(cs.Title, 20)),
		coloredBar(score, 20),
		scoreText,
	)
}

func renderVital(b *strings.Builder, v domain.Vital) {
	var icon string
	switch v.Rating {
	case domain.RatingPass:
		icon = passStyle.Render("●")
	case domain.RatingAverage:
		icon = warnStyle.Render("●")
	default:
		icon = failStyle.Render("●")
	}

	value := v.DisplayValue
	if value == "" {
		value = fmt.Sprintf("%.0f %s", v.Value, v.Unit)
	}
	fmt.Fprintf(b, "    %s %s %s\n", icon, padRight(v.Name, 34), dimStyle.Render(value))
}

// RenderFixes renders a fix plan for the terminal, grouped by priority
// the same way the markdown renderer groups it.
func RenderFixes(fixes []domain.Fix) string {
	if len(fixes) == 0 {
		return "  " + passStyle.Render("No issues found! Great job!") + "\n"
	}

	var b strings.Builder
	high, medium, low := domain.CountByPriority(fixes)
	b.WriteString("\n  " + titleStyle.Render("Fix Plan") + "  ")
	if high > 0 {
		b.WriteString(highTagStyle.Render(fmt.Sprintf("%d high", high)) + "  ")
	}
	if medium > 0 {
		b.WriteString(medTagStyle.Render(fmt.Sprintf("%d medium", medium)) + "  ")
	}
	if low > 0 {
		b.WriteString(lowTagStyle.Render(fmt.Sprintf("%d low", low)))
	}
	b.WriteString("\n\n")

	for _, fix := range fixes {
		fmt.Fprintf(&b, "    %s %s\n", priorityTag(fix.Priority), titleStyle.Render(fix.Title))
		fmt.Fprintf(&b, "         %s\n", dimStyle.Render(fix.Impact))
		if fix.Diagnosis != "" {
			fmt.Fprintf(&b, "         %s\n", faintStyle.Render(fix.Diagnosis))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func priorityTag(priority string) string {
	switch priority {
	case domain.PriorityHigh:
		return highTagStyle.Render("high")
	case domain.PriorityMedium:
		return medTagStyle.Render("med ")
	default:
		return lowTagStyle.Render("low ")
	}
}

// RenderHistory formats fix-run history for terminal output.
func RenderHistory(runs []domain.FixRun) string {
	if len(runs) == 0 {
		return "  " + dimStyle.Render("No fix runs recorded yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Fix Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, r := range runs {
		hash := r.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		day := r.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		fmt.Fprintf(&b, "  %s  %s  %s %s %s\n",
			dimStyle.Render(day),
			faintStyle.Render(hash),
			highTagStyle.Render(fmt.Sprintf("%d high", r.High)),
			medTagStyle.Render(fmt.Sprintf("%d med", r.Medium)),
			lowTagStyle.Render(fmt.Sprintf("%d low", r.Low)),
		)
	}

	return b.String()
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 90:
		return success
	case score >= 50:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
