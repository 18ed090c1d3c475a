package interfaces

import "context"

// CheckerService runs the structural checks that keep a lessons directory and
// its index document consistent: index links resolve, lessons carry titles
// and sections, ordinals are unique and agree with the index order, and
// fenced code blocks are balanced.
type CheckerService interface {
	Check(ctx context.Context, opts CheckOptions) (*CheckReport, error)
}

// CheckOptions selects the sources a check run inspects.
type CheckOptions struct {
	// LessonsDir is the directory holding lesson documents. Empty falls back
	// to the configured lessons directory.
	LessonsDir string
	// IndexPath is the index document, relative to LessonsDir. Empty falls
	// back to the configured index file.
	IndexPath string
	// Properties limits the run to the named property codes (p1..p5). Empty
	// runs everything.
	Properties []string
}

// IssueSeverity grades a reported issue.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// CheckIssue is one structural defect found during a check run.
type CheckIssue struct {
	// Property is the property code that produced the issue (p1..p5).
	Property string `json:"property"`
	// Code is a stable machine-readable issue identifier.
	Code     string        `json:"code"`
	Severity IssueSeverity `json:"severity"`
	// Path is the file the issue was found in, relative to the lessons dir.
	Path string `json:"path,omitempty"`
	// Line is the 1-based source line when known, zero otherwise.
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// CheckReport aggregates the outcome of a check run. A report with no
// error-severity issues is considered passing.
type CheckReport struct {
	LessonsDir string       `json:"lessons_dir"`
	IndexPath  string       `json:"index_path"`
	Lessons    int          `json:"lessons"`
	Issues     []CheckIssue `json:"issues"`
}

// OK reports whether the run found no error-severity issues.
func (r *CheckReport) OK() bool {
	if r == nil {
		return true
	}
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// CountBySeverity tallies issues for summary logging.
func (r *CheckReport) CountBySeverity(severity IssueSeverity) int {
	if r == nil {
		return 0
	}
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			count++
		}
	}
	return count
}
