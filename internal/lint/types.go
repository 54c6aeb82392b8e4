package lint

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/summary"
)

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityWarning indicates issues that should be fixed but don't block generation.
	SeverityWarning Severity = iota + 1
	// SeverityError indicates issues that produce a broken site.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a single linting problem.
type Issue struct {
	FilePath    string   // Path relative to the version tree
	Severity    Severity // Issue severity level
	Rule        string   // Rule identifier (e.g., "missing_doc")
	Message     string   // Brief description of the issue
	Explanation string   // Detailed explanation with context
	Fix         string   // Suggested fix
	Line        int      // Line number (0 if file-level issue)
}

// Result contains all issues found in one version tree.
type Result struct {
	Version    string
	Root       string
	Issues     []Issue
	FilesTotal int // Markdown files scanned
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Tree is a loaded version tree: its Markdown files and parsed outline.
type Tree struct {
	Root        string         // filesystem path of the version tree
	SummaryFile string         // outline file name, relative to Root
	Files       []string       // sorted slash-separated Markdown paths, outline excluded
	Outline     []summary.Node // parsed outline
	Sources     map[string][]byte
}

// Rule defines a check over a loaded tree.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check returns the issues found in the tree.
	Check(tree *Tree) ([]Issue, error)
}

// Config contains configuration for the linter.
type Config struct {
	// Quiet suppresses warnings, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string
}

// IsDocFile returns true if the file is a Markdown page Docusaurus renders.
func IsDocFile(p string) bool {
	ext := path.Ext(p)
	return ext == ".md" || ext == ".mdx"
}

// DocID returns the Docusaurus doc id of a Markdown path.
func DocID(p string) string {
	if s, ok := strings.CutSuffix(p, ".mdx"); ok {
		return s
	}
	return strings.TrimSuffix(p, ".md")
}
