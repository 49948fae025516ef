package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightfix/lightfix/internal/adapters/outbound/gitinfo"
	"github.com/lightfix/lightfix/internal/adapters/outbound/history"
	"github.com/lightfix/lightfix/internal/adapters/outbound/loader"
	"github.com/lightfix/lightfix/internal/application"
	"github.com/lightfix/lightfix/internal/domain"
)

func newFixService() *application.FixService {
	ld := loader.New(".lighthouse/reports")
	return application.NewFixService(ld, ld, gitinfo.New(), history.New(), domain.DefaultConfig())
}

func TestPlanFixes_Fixture(t *testing.T) {
	svc := newFixService()
	result, err := svc.PlanFixes(fixtureReport, "")
	require.NoError(t, err)

	assert.Equal(t, fixtureReport, result.ReportPath)
	assert.Equal(t, "https://example.com/", result.Summary.URL)
	assert.NotEmpty(t, result.Fixes)

	byTitle := map[string]domain.Fix{}
	for _, f := range result.Fixes {
		byTitle[f.Title] = f
	}

	ttfb, ok := byTitle["Reduce server response time (TTFB)"]
	require.True(t, ok, "fixture TTFB of 1200ms should produce a fix")
	assert.Equal(t, domain.PriorityHigh, ttfb.Priority)
	assert.Contains(t, ttfb.Diagnosis, "critically high")
}

func TestPlanFixes_CategoryFilter(t *testing.T) {
	svc := newFixService()
	all, err := svc.PlanFixes(fixtureReport, "")
	require.NoError(t, err)
	seoOnly, err := svc.PlanFixes(fixtureReport, "seo")
	require.NoError(t, err)

	assert.Less(t, len(seoOnly.Fixes), len(all.Fixes))
	for _, f := range seoOnly.Fixes {
		assert.NotContains(t, f.Title, "server response",
			"performance fixes should not appear under the seo filter")
	}
}

func TestRecordRun_AndHistory(t *testing.T) {
	svc := newFixService()
	result, err := svc.PlanFixes(fixtureReport, "")
	require.NoError(t, err)

	dir := t.TempDir()
	now := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	svc.RecordRun(dir, result, now)

	runs, err := svc.History(dir)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, now.Format(time.RFC3339), run.Timestamp)
	assert.Equal(t, fixtureReport, run.ReportPath)
	assert.Equal(t, len(result.Fixes), run.Total)
	assert.Equal(t, run.Total, run.High+run.Medium+run.Low)
	assert.Empty(t, run.CommitHash, "temp dir is not a git repo")
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	path := application.DefaultOutputPath(".lighthouse/fixes", now)
	assert.Equal(t, ".lighthouse/fixes/fixes-2026-08-12.md", path)
}
