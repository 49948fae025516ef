package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightfix/lightfix/internal/adapters/outbound/loader"
	"github.com/lightfix/lightfix/internal/application"
	"github.com/lightfix/lightfix/internal/domain"
)

const fixtureReport = "../../testdata/report.json"

func newAnalyzeService() *application.AnalyzeService {
	ld := loader.New(".lighthouse/reports")
	return application.NewAnalyzeService(ld, ld)
}

func TestAnalyze_ExplicitPath(t *testing.T) {
	svc := newAnalyzeService()
	result, err := svc.Analyze(fixtureReport, "", domain.DefaultMinScore)
	require.NoError(t, err)

	assert.Equal(t, fixtureReport, result.ReportPath)
	assert.Equal(t, "https://example.com/", result.Findings.Summary.URL)
	assert.Equal(t, "12.6.0", result.Findings.Summary.Version)
	assert.Len(t, result.Findings.Summary.Scores, 4)
}

func TestAnalyze_FindingsPopulated(t *testing.T) {
	svc := newAnalyzeService()
	result, err := svc.Analyze(fixtureReport, "", domain.DefaultMinScore)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Findings.Vitals)
	assert.NotEmpty(t, result.Findings.Opportunities)
	assert.NotEmpty(t, result.Findings.Diagnostics)
	assert.NotEmpty(t, result.Findings.Failed)

	// Opportunities come sorted by estimated savings, largest first.
	opps := result.Findings.Opportunities
	for i := 1; i < len(opps); i++ {
		assert.GreaterOrEqual(t, opps[i-1].WastedMs, opps[i].WastedMs)
	}
}

func TestAnalyze_CategoryFilter(t *testing.T) {
	svc := newAnalyzeService()
	result, err := svc.Analyze(fixtureReport, "seo", domain.DefaultMinScore)
	require.NoError(t, err)

	for _, f := range result.Findings.Failed {
		assert.Equal(t, "seo", f.Category)
	}
	assert.NotEmpty(t, result.Findings.Failed, "meta-description fails in the fixture")
}

func TestAnalyze_MissingReport(t *testing.T) {
	svc := newAnalyzeService()
	_, err := svc.Analyze("does-not-exist.json", "", domain.DefaultMinScore)
	require.Error(t, err)

	var notFound *domain.ReportNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
