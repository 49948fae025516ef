package domain

import "fmt"

// ReportNotFoundError means no Lighthouse report exists at (or could be
// resolved for) the given path.
type ReportNotFoundError struct {
	Path string
}

func (e *ReportNotFoundError) Error() string {
	return fmt.Sprintf("no Lighthouse report found at %s (run a Lighthouse audit first, or pass a report path explicitly)", e.Path)
}

// ReportParseError means the report file could be located but not read
// or parsed as JSON.
type ReportParseError struct {
	Path  string
	Cause error
}

func (e *ReportParseError) Error() string {
	return fmt.Sprintf("parsing Lighthouse report %s: %v", e.Path, e.Cause)
}

func (e *ReportParseError) Unwrap() error { return e.Cause }

// WriteError means the rendered output could not be persisted. The
// console print happens before the save, so the run's findings are
// still visible when this is returned.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }
