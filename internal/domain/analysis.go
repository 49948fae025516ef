package domain

import (
	"math"
	"sort"
)

// DefaultMinScore is the failure threshold for failed-audit filtering.
const DefaultMinScore = 0.5

// Analyzer exposes read-only queries over one loaded Report. One
// analyzer per invocation; nothing is cached across reports.
type Analyzer struct {
	report *Report
}

func NewAnalyzer(report *Report) *Analyzer {
	return &Analyzer{report: report}
}

// Summary is the header-level view of a report.
type Summary struct {
	URL       string          `json:"url"`
	FinalURL  string          `json:"final_url"`
	FetchTime string          `json:"fetch_time"`
	Version   string          `json:"version"`
	Scores    []CategoryScore `json:"scores"`
}

// CategoryScore is a category's title with its score scaled to 0-100.
// Score is nil when Lighthouse could not score the category.
type CategoryScore struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Score *int   `json:"score"`
}

// FailedAudit pairs an audit with the category it was reached through.
type FailedAudit struct {
	Audit    *Audit `json:"audit"`
	Category string `json:"category"`
}

// Opportunity is a savings-bearing audit projected for ranking.
type Opportunity struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	WastedMs    float64 `json:"wasted_ms"`
	WastedBytes float64 `json:"wasted_bytes"`
	ItemCount   int     `json:"item_count"`
}

// Vital is one Core Web Vital reading.
type Vital struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Unit         string  `json:"unit"`
	DisplayValue string  `json:"display_value"`
	Rating       string  `json:"rating"`
	Passed       bool    `json:"passed"`
}

// diagnosticAuditIDs is the fixed allow-list of runtime diagnostic
// audits, in display order.
var diagnosticAuditIDs = []string{
	"bootup-time",
	"mainthread-work-breakdown",
	"long-tasks",
	"dom-size",
	"network-requests",
	"total-byte-weight",
}

// vitalAuditIDs maps Core Web Vitals to their audit IDs, in display
// order. Held as a slice: map iteration order is not the display order.
var vitalAuditIDs = []string{
	"largest-contentful-paint",
	"max-potential-fid",
	"cumulative-layout-shift",
	"first-contentful-paint",
	"total-blocking-time",
	"speed-index",
}

// Summary returns the report header plus per-category scores in
// document order.
func (a *Analyzer) Summary() Summary {
	s := Summary{
		URL:       a.report.RequestedURL,
		FinalURL:  a.report.FinalURL,
		FetchTime: a.report.FetchTime,
		Version:   a.report.LighthouseVersion,
	}
	for _, id := range a.report.CategoryOrder {
		cat, ok := a.report.Category(id)
		if !ok {
			continue
		}
		cs := CategoryScore{ID: id, Title: cat.Title}
		if cat.Score != nil {
			pct := int(math.Round(*cat.Score * 100))
			cs.Score = &pct
		}
		s.Scores = append(s.Scores, cs)
	}
	return s
}

// FailedAudits collects failing audits from the named category, or from
// the union of all categories when categoryFilter is empty. The union
// is de-duplicated by audit ID (first occurrence wins) and keeps the
// first-seen traversal order. Null-scored and manual/notApplicable
// audits are never included.
func (a *Analyzer) FailedAudits(categoryFilter string, minScore float64) []FailedAudit {
	var catIDs []string
	if categoryFilter != "" {
		catIDs = []string{categoryFilter}
	} else {
		catIDs = a.report.CategoryOrder
	}

	seen := make(map[string]bool)
	var failed []FailedAudit
	for _, catID := range catIDs {
		cat, ok := a.report.Category(catID)
		if !ok {
			continue
		}
		for _, ref := range cat.AuditRefs {
			if seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			audit, ok := a.report.Audit(ref.ID)
			if !ok {
				continue
			}
			if audit.Failed(minScore) {
				failed = append(failed, FailedAudit{Audit: audit, Category: catID})
			}
		}
	}
	return failed
}

// Opportunities scans all audits for savings opportunities and ranks
// them by wasted time, descending. The sort is stable: equal savings
// keep the report's audit encounter order.
func (a *Analyzer) Opportunities() []Opportunity {
	var opps []Opportunity
	for _, id := range a.report.AuditOrder {
		audit, ok := a.report.Audit(id)
		if !ok || !audit.HasDetails("opportunity") {
			continue
		}
		if audit.Score == nil || *audit.Score >= 1 {
			continue
		}
		opps = append(opps, Opportunity{
			ID:          id,
			Title:       audit.Title,
			Description: audit.Description,
			Score:       *audit.Score,
			WastedMs:    audit.Details.OverallSavingsMs,
			WastedBytes: audit.Details.OverallSavingsBytes,
			ItemCount:   len(audit.Details.Items),
		})
	}
	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].WastedMs > opps[j].WastedMs
	})
	return opps
}

// Diagnostics returns the fixed set of runtime diagnostic audits that
// are present and imperfect, in allow-list order.
func (a *Analyzer) Diagnostics() []*Audit {
	var out []*Audit
	for _, id := range diagnosticAuditIDs {
		audit, ok := a.report.Audit(id)
		if !ok {
			continue
		}
		if audit.Score != nil && *audit.Score < 1 {
			out = append(out, audit)
		}
	}
	return out
}

// CoreWebVitals extracts the six vitals in fixed display order. Audits
// absent from the report are omitted, not placeholdered.
func (a *Analyzer) CoreWebVitals() []Vital {
	var vitals []Vital
	for _, id := range vitalAuditIDs {
		audit, ok := a.report.Audit(id)
		if !ok {
			continue
		}
		rating := RatingForScore(audit.Score)
		vitals = append(vitals, Vital{
			ID:           id,
			Name:         audit.Title,
			Value:        audit.NumericValue,
			Unit:         audit.NumericUnit,
			DisplayValue: audit.DisplayValue,
			Rating:       rating,
			Passed:       rating == RatingPass,
		})
	}
	return vitals
}

// Findings bundles every analyzer query for rendering.
type Findings struct {
	Summary       Summary       `json:"summary"`
	Vitals        []Vital       `json:"vitals"`
	Opportunities []Opportunity `json:"opportunities"`
	Diagnostics   []*Audit      `json:"diagnostics"`
	Failed        []FailedAudit `json:"failed"`
}

// Findings runs every query once and returns the combined result.
func (a *Analyzer) Findings(categoryFilter string, minScore float64) Findings {
	return Findings{
		Summary:       a.Summary(),
		Vitals:        a.CoreWebVitals(),
		Opportunities: a.Opportunities(),
		Diagnostics:   a.Diagnostics(),
		Failed:        a.FailedAudits(categoryFilter, minScore),
	}
}

const (
	RatingPass    = "pass"
	RatingAverage = "average"
	RatingFail    = "fail"
)

// RatingForScore buckets a Lighthouse score the way the report viewer
// does: >=0.9 pass, >=0.5 average, below fail. A nil score fails.
func RatingForScore(score *float64) string {
	switch {
	case score == nil:
		return RatingFail
	case *score >= 0.9:
		return RatingPass
	case *score >= 0.5:
		return RatingAverage
	default:
		return RatingFail
	}
}
