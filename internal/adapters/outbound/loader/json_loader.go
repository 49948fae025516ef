package loader

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lightfix/lightfix/internal/domain"
)

// JSONLoader implements domain.ReportLoader and domain.ReportResolver
// over flat report files.
type JSONLoader struct {
	reportsDir string
}

// New creates a JSONLoader resolving against reportsDir (the directory
// the external Lighthouse runner writes into).
func New(reportsDir string) *JSONLoader {
	return &JSONLoader{reportsDir: reportsDir}
}

// Load reads and parses the report at path. No schema validation is
// done; every downstream field access tolerates absence.
func (l *JSONLoader) Load(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.ReportNotFoundError{Path: path}
		}
		return nil, &domain.ReportParseError{Path: path, Cause: err}
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &domain.ReportParseError{Path: path, Cause: err}
	}
	return &report, nil
}

// Resolve maps a user-supplied argument to a report path. An explicit
// argument wins; otherwise probe <reportsDir>/latest.json, then fall
// back to the most-recently-modified *.json in the reports directory.
func (l *JSONLoader) Resolve(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}

	latest := filepath.Join(l.reportsDir, "latest.json")
	if _, err := os.Stat(latest); err == nil {
		return latest, nil
	}

	newest, err := l.newestReport()
	if err != nil {
		return "", &domain.ReportNotFoundError{Path: l.reportsDir}
	}
	return newest, nil
}

func (l *JSONLoader) newestReport() (string, error) {
	entries, err := os.ReadDir(l.reportsDir)
	if err != nil {
		return "", err
	}

	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(l.reportsDir, e.Name())
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", os.ErrNotExist
	}
	return newest, nil
}
