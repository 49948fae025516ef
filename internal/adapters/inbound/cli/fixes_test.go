package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightfix/lightfix/internal/adapters/inbound/cli"
)

// absFixture resolves the fixture before the test chdirs into a temp
// workspace, so the fixes command's report argument stays valid.
func absFixture(t *testing.T) string {
	t.Helper()
	abs, err := filepath.Abs(fixtureReport)
	require.NoError(t, err)
	return abs
}

func TestFixesCommand_SavesPlan(t *testing.T) {
	report := absFixture(t)
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fixes", report})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Fix Plan")
	assert.Contains(t, out, "Saved fix plan to ")
	assert.Contains(t, out, "Reduce server response time (TTFB)")

	matches, err := filepath.Glob(".lighthouse/fixes/fixes-*.md")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	doc, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(doc), "# Lighthouse Fix Plan")
	assert.Contains(t, string(doc), "## High Priority")
}

func TestFixesCommand_OutputFlag(t *testing.T) {
	report := absFixture(t)
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fixes", report, "-o", "plan.md"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Saved fix plan to plan.md")
	_, err := os.Stat("plan.md")
	require.NoError(t, err)
}

func TestFixesCommand_RecordsHistory(t *testing.T) {
	report := absFixture(t)
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"fixes", report})
	require.NoError(t, cmd.Execute())

	hist := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	hist.SetOut(buf)
	hist.SetArgs([]string{"fixes", "--history"})
	require.NoError(t, hist.Execute())

	assert.Contains(t, buf.String(), "Fix Run History")
	assert.Contains(t, buf.String(), "high")
}

func TestFixesCommand_HistoryEmpty(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fixes", "--history"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "No fix runs recorded yet.")
}

func TestFixesCommand_MissingReport(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"fixes"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run a Lighthouse audit first")
}
