package domain

// Fix is one remediation produced by the rule engine for a failing
// audit. Fixes are built fresh per run and consumed once by a renderer.
type Fix struct {
	Title       string    `json:"title"`
	Priority    string    `json:"priority"`
	Impact      string    `json:"impact"`
	Description string    `json:"description"`
	Diagnosis   string    `json:"diagnosis,omitempty"`
	Fixes       []Snippet `json:"fixes"`
}

// Snippet is a templated code block attached to a fix. Type is the
// fence language tag used when rendering ("html", "css", "bash", ...).
type Snippet struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Code  string `json:"code"`
}

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PriorityRank returns a numeric rank for sorting priorities (lower is
// higher priority).
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// FixRun summarizes one completed fixes invocation for the run history.
type FixRun struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	ReportPath string `json:"report_path"`
	Total      int    `json:"total"`
	High       int    `json:"high"`
	Medium     int    `json:"medium"`
	Low        int    `json:"low"`
}

// CountByPriority tallies fixes per priority bucket.
func CountByPriority(fixes []Fix) (high, medium, low int) {
	for _, f := range fixes {
		switch f.Priority {
		case PriorityHigh:
			high++
		case PriorityMedium:
			medium++
		case PriorityLow:
			low++
		}
	}
	return
}
