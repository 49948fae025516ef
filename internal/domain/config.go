package domain

import "fmt"

// ProjectConfig is the .lightfix.yaml configuration. Zero values mean
// "use the default"; DefaultConfig supplies the baseline.
type ProjectConfig struct {
	ReportsDir string   `yaml:"reports_dir"`
	OutputDir  string   `yaml:"output_dir"`
	MinScore   float64  `yaml:"min_score"`
	SkipAudits []string `yaml:"skip_audits"`
}

func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		ReportsDir: ".lighthouse/reports",
		OutputDir:  ".lighthouse/fixes",
		MinScore:   DefaultMinScore,
	}
}

// Validate catches out-of-range values in user-supplied config.
func (c ProjectConfig) Validate() error {
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("min_score must be between 0 and 1, got %v", c.MinScore)
	}
	return nil
}

// Skipped reports whether an audit ID is excluded from the fix pass.
func (c ProjectConfig) Skipped(auditID string) bool {
	for _, id := range c.SkipAudits {
		if id == auditID {
			return true
		}
	}
	return false
}
