package domain

// ReportLoader loads a Lighthouse report from a file path.
type ReportLoader interface {
	Load(path string) (*Report, error)
}

// ReportResolver turns an optional user-supplied argument into a
// concrete report path (latest-report discovery lives behind this).
type ReportResolver interface {
	Resolve(arg string) (string, error)
}

// ConfigLoader reads project configuration from a working directory.
type ConfigLoader interface {
	Load(dir string) (ProjectConfig, error)
}

// GitInfo provides repository metadata for the audited project.
type GitInfo interface {
	IsGitRepo(dir string) bool
	CommitHash(dir string) (string, error)
}

// RunHistory persists fix-run summaries across invocations.
type RunHistory interface {
	Save(dir string, run FixRun) error
	Load(dir string) ([]FixRun, error)
}
