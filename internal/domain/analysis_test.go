package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightfix/lightfix/internal/domain"
)

const analysisFixture = `{
	"requestedUrl": "https://example.com/",
	"finalUrl": "https://example.com/home",
	"lighthouseVersion": "12.6.0",
	"fetchTime": "2026-08-12T09:30:00.000Z",
	"categories": {
		"performance": {
			"id": "performance", "title": "Performance", "score": 0.424,
			"auditRefs": [
				{"id": "shared-audit"},
				{"id": "slow-audit"},
				{"id": "manual-audit"},
				{"id": "ghost-audit"}
			]
		},
		"accessibility": {
			"id": "accessibility", "title": "Accessibility", "score": null,
			"auditRefs": [
				{"id": "shared-audit"},
				{"id": "a11y-audit"}
			]
		}
	},
	"audits": {
		"shared-audit": {"id": "shared-audit", "title": "Shared", "score": 0.1, "scoreDisplayMode": "binary"},
		"slow-audit": {"id": "slow-audit", "title": "Slow", "score": 0.4, "scoreDisplayMode": "numeric"},
		"manual-audit": {"id": "manual-audit", "title": "Manual", "score": null, "scoreDisplayMode": "manual"},
		"a11y-audit": {"id": "a11y-audit", "title": "A11y", "score": 0.45, "scoreDisplayMode": "binary"},
		"opp-big": {
			"id": "opp-big", "title": "Big opportunity", "score": 0.3, "scoreDisplayMode": "numeric",
			"details": {"type": "opportunity", "overallSavingsMs": 2000, "overallSavingsBytes": 100, "items": [{}, {}]}
		},
		"opp-tie-one": {
			"id": "opp-tie-one", "title": "Tie one", "score": 0.5, "scoreDisplayMode": "numeric",
			"details": {"type": "opportunity", "overallSavingsMs": 500, "items": [{}]}
		},
		"opp-tie-two": {
			"id": "opp-tie-two", "title": "Tie two", "score": 0.5, "scoreDisplayMode": "numeric",
			"details": {"type": "opportunity", "overallSavingsMs": 500, "items": [{}]}
		},
		"opp-perfect": {
			"id": "opp-perfect", "title": "Already perfect", "score": 1, "scoreDisplayMode": "numeric",
			"details": {"type": "opportunity", "overallSavingsMs": 9000}
		},
		"bootup-time": {"id": "bootup-time", "title": "JS execution time", "score": 0.6, "scoreDisplayMode": "numeric", "displayValue": "2.1 s"},
		"dom-size": {"id": "dom-size", "title": "DOM size", "score": 1, "scoreDisplayMode": "numeric"},
		"largest-contentful-paint": {
			"id": "largest-contentful-paint", "title": "Largest Contentful Paint",
			"score": 0.45, "scoreDisplayMode": "numeric",
			"numericValue": 4200, "numericUnit": "millisecond", "displayValue": "4.2 s"
		},
		"cumulative-layout-shift": {
			"id": "cumulative-layout-shift", "title": "Cumulative Layout Shift",
			"score": 0.95, "scoreDisplayMode": "numeric",
			"numericValue": 0.04, "numericUnit": "unitless", "displayValue": "0.04"
		},
		"speed-index": {
			"id": "speed-index", "title": "Speed Index",
			"score": 0.62, "scoreDisplayMode": "numeric",
			"numericValue": 3400, "numericUnit": "millisecond", "displayValue": "3.4 s"
		}
	}
}`

func newAnalyzer(t *testing.T) *domain.Analyzer {
	t.Helper()
	return domain.NewAnalyzer(parseReport(t, analysisFixture))
}

func TestAnalyzer_Summary(t *testing.T) {
	s := newAnalyzer(t).Summary()

	assert.Equal(t, "https://example.com/", s.URL)
	assert.Equal(t, "https://example.com/home", s.FinalURL)
	assert.Equal(t, "12.6.0", s.Version)
	require.Len(t, s.Scores, 2)

	assert.Equal(t, "Performance", s.Scores[0].Title)
	require.NotNil(t, s.Scores[0].Score)
	assert.Equal(t, 42, *s.Scores[0].Score, "0.424 rounds to 42")

	assert.Equal(t, "Accessibility", s.Scores[1].Title)
	assert.Nil(t, s.Scores[1].Score, "null category score stays nil")
}

func TestAnalyzer_FailedAudits_FiltersAndDedupes(t *testing.T) {
	failed := newAnalyzer(t).FailedAudits("", domain.DefaultMinScore)

	var ids []string
	for _, f := range failed {
		ids = append(ids, f.Audit.ID)
	}

	// shared-audit appears once (first seen via performance), manual and
	// missing refs are skipped, a11y-audit comes from the second category.
	assert.Equal(t, []string{"shared-audit", "slow-audit", "a11y-audit"}, ids)
	assert.Equal(t, "performance", failed[0].Category)
	assert.Equal(t, "accessibility", failed[2].Category)
}

func TestAnalyzer_FailedAudits_NeverIncludesNullOrManual(t *testing.T) {
	// Even with an impossible threshold, null/manual audits must not appear.
	failed := newAnalyzer(t).FailedAudits("", 1.1)

	for _, f := range failed {
		assert.NotNil(t, f.Audit.Score)
		assert.NotEqual(t, domain.ModeManual, f.Audit.ScoreDisplayMode)
		assert.NotEqual(t, domain.ModeNotApplicable, f.Audit.ScoreDisplayMode)
	}
}

func TestAnalyzer_FailedAudits_CategoryFilter(t *testing.T) {
	failed := newAnalyzer(t).FailedAudits("accessibility", domain.DefaultMinScore)

	var ids []string
	for _, f := range failed {
		ids = append(ids, f.Audit.ID)
	}
	assert.Equal(t, []string{"shared-audit", "a11y-audit"}, ids)
}

func TestAnalyzer_Opportunities_SortedAndStable(t *testing.T) {
	opps := newAnalyzer(t).Opportunities()
	require.Len(t, opps, 3, "perfect-score opportunity excluded")

	assert.Equal(t, "opp-big", opps[0].ID)
	// Equal savings keep document encounter order.
	assert.Equal(t, "opp-tie-one", opps[1].ID)
	assert.Equal(t, "opp-tie-two", opps[2].ID)

	assert.Equal(t, float64(2000), opps[0].WastedMs)
	assert.Equal(t, float64(100), opps[0].WastedBytes)
	assert.Equal(t, 2, opps[0].ItemCount)
}

func TestAnalyzer_Diagnostics_AllowListOrder(t *testing.T) {
	diags := newAnalyzer(t).Diagnostics()

	// dom-size has score 1, the rest of the allow-list is absent.
	require.Len(t, diags, 1)
	assert.Equal(t, "bootup-time", diags[0].ID)
}

func TestAnalyzer_CoreWebVitals(t *testing.T) {
	vitals := newAnalyzer(t).CoreWebVitals()

	// Absent vitals are omitted; order is LCP, CLS, Speed Index.
	require.Len(t, vitals, 3)
	assert.Equal(t, "largest-contentful-paint", vitals[0].ID)
	assert.Equal(t, "cumulative-layout-shift", vitals[1].ID)
	assert.Equal(t, "speed-index", vitals[2].ID)

	assert.Equal(t, domain.RatingFail, vitals[0].Rating)
	assert.False(t, vitals[0].Passed)
	assert.Equal(t, domain.RatingPass, vitals[1].Rating)
	assert.True(t, vitals[1].Passed)
	assert.Equal(t, domain.RatingAverage, vitals[2].Rating)
	assert.False(t, vitals[2].Passed)
}

func TestRatingForScore(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	assert.Equal(t, domain.RatingPass, domain.RatingForScore(score(0.9)))
	assert.Equal(t, domain.RatingAverage, domain.RatingForScore(score(0.5)))
	assert.Equal(t, domain.RatingFail, domain.RatingForScore(score(0.49)))
	assert.Equal(t, domain.RatingFail, domain.RatingForScore(nil))
}

func TestAnalyzer_Findings(t *testing.T) {
	f := newAnalyzer(t).Findings("", domain.DefaultMinScore)

	assert.Equal(t, "https://example.com/", f.Summary.URL)
	assert.NotEmpty(t, f.Vitals)
	assert.NotEmpty(t, f.Opportunities)
	assert.NotEmpty(t, f.Failed)
}
