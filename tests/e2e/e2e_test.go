package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightfix/lightfix/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "lightfix-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "lightfix")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../..")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath() string {
	abs, _ := filepath.Abs("../../testdata/report.json")
	return abs
}

func run(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

// --- Analyze Tests ---

func TestE2E_Analyze(t *testing.T) {
	out, code := run(t, t.TempDir(), "analyze", fixturePath())
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "https://example.com/")
	assert.Contains(t, out, "Category Scores")
	assert.Contains(t, out, "Core Web Vitals")
}

func TestE2E_AnalyzeJSON(t *testing.T) {
	out, code := run(t, t.TempDir(), "analyze", fixturePath(), "--format", "json")
	assert.Equal(t, 0, code)

	var result struct {
		ReportPath string          `json:"report_path"`
		Findings   domain.Findings `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, fixturePath(), result.ReportPath)
	assert.Len(t, result.Findings.Summary.Scores, 4, "fixture has 4 categories")
	assert.NotEmpty(t, result.Findings.Vitals)
	assert.NotEmpty(t, result.Findings.Failed)
}

func TestE2E_AnalyzeMissingReport(t *testing.T) {
	out, code := run(t, t.TempDir(), "analyze", "no-such.json")
	assert.Equal(t, 1, code, "should exit 1 when the report cannot be read")
	assert.Contains(t, out, "no-such.json")
}

// --- Fixes Tests ---

func TestE2E_Fixes(t *testing.T) {
	dir := t.TempDir()
	out, code := run(t, dir, "fixes", fixturePath())
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Fix Plan")
	assert.Contains(t, out, "Saved fix plan to ")

	matches, err := filepath.Glob(filepath.Join(dir, ".lighthouse/fixes/fixes-*.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	doc, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(doc), "# Lighthouse Fix Plan")
	assert.Contains(t, string(doc), "Reduce server response time (TTFB)")
}

func TestE2E_FixesOutputFlag(t *testing.T) {
	dir := t.TempDir()
	_, code := run(t, dir, "fixes", fixturePath(), "-o", "plan.md")
	assert.Equal(t, 0, code)

	doc, err := os.ReadFile(filepath.Join(dir, "plan.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "## High Priority")
}

func TestE2E_FixesHistory(t *testing.T) {
	dir := t.TempDir()
	_, code := run(t, dir, "fixes", fixturePath())
	require.Equal(t, 0, code)

	out, code := run(t, dir, "fixes", "--history")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Fix Run History")
}

// --- Init Test ---

func TestE2E_Init(t *testing.T) {
	dir := t.TempDir()
	out, code := run(t, dir, "init")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Created .lightfix.yaml")

	data, err := os.ReadFile(filepath.Join(dir, ".lightfix.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "reports_dir:")
}

// --- Version Test ---

func TestE2E_Version(t *testing.T) {
	out, code := run(t, t.TempDir(), "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "lightfix")
}
