package application

import (
	"github.com/lightfix/lightfix/internal/domain"
)

// AnalyzeService orchestrates the analyze pipeline:
// resolve report path → load → query.
type AnalyzeService struct {
	resolver domain.ReportResolver
	loader   domain.ReportLoader
}

func NewAnalyzeService(resolver domain.ReportResolver, loader domain.ReportLoader) *AnalyzeService {
	return &AnalyzeService{resolver: resolver, loader: loader}
}

// AnalysisResult pairs the findings with the report they came from.
type AnalysisResult struct {
	ReportPath string          `json:"report_path"`
	Findings   domain.Findings `json:"findings"`
}

// Analyze resolves reportArg (empty means "latest"), loads the report,
// and runs every analyzer query.
func (s *AnalyzeService) Analyze(reportArg, categoryFilter string, minScore float64) (*AnalysisResult, error) {
	path, err := s.resolver.Resolve(reportArg)
	if err != nil {
		return nil, err
	}

	report, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}

	analyzer := domain.NewAnalyzer(report)
	return &AnalysisResult{
		ReportPath: path,
		Findings:   analyzer.Findings(categoryFilter, minScore),
	}, nil
}
