package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightfix/lightfix/internal/adapters/outbound/history"
	"github.com/lightfix/lightfix/internal/domain"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	run := domain.FixRun{
		Timestamp:  "2026-08-29T10:00:00Z",
		CommitHash: "abc1234",
		ReportPath: ".lighthouse/reports/latest.json",
		Total:      5,
		High:       2,
		Medium:     2,
		Low:        1,
	}

	require.NoError(t, h.Save(dir, run))

	runs, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 5, runs[0].Total)
	assert.Equal(t, "abc1234", runs[0].CommitHash)
}

func TestHistory_AppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.FixRun{Timestamp: "t1", Total: 7}))
	require.NoError(t, h.Save(dir, domain.FixRun{Timestamp: "t2", Total: 4}))
	require.NoError(t, h.Save(dir, domain.FixRun{Timestamp: "t3", Total: 0}))

	runs, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "t1", runs[0].Timestamp)
	assert.Equal(t, 0, runs[2].Total)
}

func TestHistory_LoadEmpty(t *testing.T) {
	runs, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, runs)
}
