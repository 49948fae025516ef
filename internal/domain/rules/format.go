package rules

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/lightfix/lightfix/internal/domain"
)

// formatBytes renders a byte count the way the Lighthouse viewer does
// (KiB above 1024, MiB above 1024 KiB).
func formatBytes(b float64) string {
	switch {
	case b >= 1024*1024:
		return fmt.Sprintf("%.1f MiB", b/(1024*1024))
	case b >= 1024:
		return fmt.Sprintf("%.0f KiB", b/1024)
	default:
		return fmt.Sprintf("%.0f B", b)
	}
}

// formatMs renders milliseconds, switching to seconds above one second.
func formatMs(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1f s", ms/1000)
	}
	return fmt.Sprintf("%.0f ms", ms)
}

// timingPhases extracts "phase: duration" strings from an insight
// audit's details items. Lighthouse names phases in camelCase
// ("timeToFirstByte"); they are split into words for display.
func timingPhases(audit *domain.Audit) []string {
	if audit.Details == nil {
		return nil
	}
	var phases []string
	for _, item := range audit.Details.Items {
		name := item.Str("phase")
		if name == "" {
			name = item.Str("subpart")
		}
		if name == "" {
			continue
		}
		dur := item.Num("timing")
		if dur == 0 {
			dur = item.Num("duration")
		}
		phases = append(phases, fmt.Sprintf("%s %s", humanizeKey(name), formatMs(dur)))
	}
	return phases
}

// humanizeKey turns a camelCase LHR key into lower-case words.
func humanizeKey(key string) string {
	words := camelcase.Split(key)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}
