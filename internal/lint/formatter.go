package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	p := &printer{w: w}
	p.printf("Linting %s (%s)\n", result.Version, result.Root)
	p.printf("%s\n\n", strings.Repeat("━", 60))

	for _, issue := range result.Issues {
		f.formatIssue(p, issue)
		p.printf("\n")
	}

	p.printf("%s\n", strings.Repeat("━", 60))
	p.printf("Results:\n")
	p.printf("  %d file%s scanned\n", result.FilesTotal, pluralize(result.FilesTotal))
	if n := result.ErrorCount(); n > 0 {
		p.printf("  %d error%s\n", n, pluralize(n))
	}
	if n := result.WarningCount(); n > 0 {
		p.printf("  %d warning%s\n", n, pluralize(n))
	}
	p.printf("\n")

	switch {
	case result.HasErrors():
		p.printf("Documentation has errors; the generated site would contain broken pages.\n")
	case result.HasWarnings():
		p.printf("Documentation has warnings. Consider fixing before commit.\n")
	default:
		p.printf("All documentation passes linting.\n")
	}
	return p.err
}

func (f *TextFormatter) formatIssue(p *printer, issue Issue) {
	icon := "⚠"
	if issue.Severity == SeverityError {
		icon = "✗"
	}
	loc := issue.FilePath
	if issue.Line > 0 {
		loc = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
	}
	p.printf("%s %s\n", icon, loc)
	p.printf("  %s [%s]: %s\n", issue.Severity, issue.Rule, issue.Message)
	if issue.Explanation != "" {
		for line := range strings.SplitSeq(strings.TrimSpace(issue.Explanation), "\n") {
			p.printf("  %s\n", line)
		}
	}
	if issue.Fix != "" {
		p.printf("  Fix: %s\n", issue.Fix)
	}
}

// printer remembers the first write error so formatting code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Version      string      `json:"version"`
	Path         string      `json:"path"`
	FilesTotal   int         `json:"files_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	FilePath    string `json:"file_path"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Explanation string `json:"explanation,omitempty"`
	Fix         string `json:"fix,omitempty"`
	Line        int    `json:"line,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	output := JSONOutput{
		Version:      result.Version,
		Path:         result.Root,
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			FilePath:    issue.FilePath,
			Severity:    issue.Severity.String(),
			Rule:        issue.Rule,
			Message:     issue.Message,
			Explanation: issue.Explanation,
			Fix:         issue.Fix,
			Line:        issue.Line,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
