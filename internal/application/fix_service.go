package application

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/lightfix/lightfix/internal/domain"
	"github.com/lightfix/lightfix/internal/domain/rules"
)

// FixService orchestrates the fix pipeline:
// resolve report path → load → rule engine → record run.
type FixService struct {
	resolver domain.ReportResolver
	loader   domain.ReportLoader
	git      domain.GitInfo
	history  domain.RunHistory
	config   domain.ProjectConfig
}

func NewFixService(
	resolver domain.ReportResolver,
	loader domain.ReportLoader,
	git domain.GitInfo,
	history domain.RunHistory,
	config domain.ProjectConfig,
) *FixService {
	return &FixService{
		resolver: resolver,
		loader:   loader,
		git:      git,
		history:  history,
		config:   config,
	}
}

// FixResult is one run's output: the fixes plus the report header they
// were derived from. Consumed once by the renderers, not retained.
type FixResult struct {
	ReportPath string         `json:"report_path"`
	Summary    domain.Summary `json:"summary"`
	Fixes      []domain.Fix   `json:"fixes"`
}

// PlanFixes resolves and loads the report, then runs the rule engine.
// Category restricts the pass to one category ID; empty runs all four.
func (s *FixService) PlanFixes(reportArg, category string) (*FixResult, error) {
	path, err := s.resolver.Resolve(reportArg)
	if err != nil {
		return nil, err
	}

	report, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}

	engine := rules.NewEngine(report, s.config, rules.Options{Category: category})
	fixes := engine.Run()

	return &FixResult{
		ReportPath: path,
		Summary:    domain.NewAnalyzer(report).Summary(),
		Fixes:      fixes,
	}, nil
}

// RecordRun appends the run to the history store, stamped with the
// working directory's HEAD commit when available. Best-effort: history
// failures never fail the run.
func (s *FixService) RecordRun(dir string, result *FixResult, now time.Time) {
	run := domain.FixRun{
		Timestamp:  now.Format(time.RFC3339),
		ReportPath: result.ReportPath,
		Total:      len(result.Fixes),
	}
	run.High, run.Medium, run.Low = domain.CountByPriority(result.Fixes)

	if s.git.IsGitRepo(dir) {
		if hash, err := s.git.CommitHash(dir); err == nil {
			run.CommitHash = hash
		}
	}

	_ = s.history.Save(dir, run)
}

// History returns prior fix runs for dir.
func (s *FixService) History(dir string) ([]domain.FixRun, error) {
	return s.history.Load(dir)
}

// DefaultOutputPath builds the default save path for a fix plan:
// <outputDir>/fixes-<ISO date>.md.
func DefaultOutputPath(outputDir string, now time.Time) string {
	return filepath.Join(outputDir, fmt.Sprintf("fixes-%s.md", now.Format("2006-01-02")))
}
