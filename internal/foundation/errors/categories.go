package errors

import (
	"iter"
	"maps"
	"slices"
)

// ErrorCategory groups errors by what went wrong; the CLI maps it to an exit code.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"     // sitegen.yaml, versions file, missing inputs
	CategoryValidation ErrorCategory = "validation" // flag and argument values
	CategorySummary    ErrorCategory = "summary"    // SUMMARY.md outline parse failures
	CategoryCheck      ErrorCategory = "check"      // outputs missing or out of date in check mode
	CategoryLint       ErrorCategory = "lint"       // docs tree fails lint rules
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryGit        ErrorCategory = "git"
	CategoryNetwork    ErrorCategory = "network"
	CategoryStore      ErrorCategory = "store" // run history database
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // aborts the run
	SeverityError   ErrorSeverity = "error"   // fails the current command
	SeverityWarning ErrorSeverity = "warning" // reported, run continues
)

// Remedy tells the user what resolves the error.
type Remedy string

const (
	RemedyNone       Remedy = ""
	RemedyFixInputs  Remedy = "fix_inputs" // edit docs, SUMMARY.md or configuration
	RemedyRegenerate Remedy = "regenerate" // run sitegen generate
	RemedyRetry      Remedy = "retry"      // transient; retrying may succeed
)

// Hint is a one-line suggestion for the remedy, empty for RemedyNone.
func (r Remedy) Hint() string {
	switch r {
	case RemedyFixInputs:
		return "fix the input named above and run the command again"
	case RemedyRegenerate:
		return "run `sitegen generate` and commit the result"
	case RemedyRetry:
		return "the failure may be transient; try again"
	default:
		return ""
	}
}

// ErrorContext holds structured details such as the offending path or line.
type ErrorContext map[string]any

// Well-known context keys.
const (
	ContextPath    = "path"
	ContextVersion = "version"
	ContextLine    = "line"
)

// Set adds or updates a value, allocating the map when needed.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a value.
func (c ErrorContext) Get(key string) (any, bool) {
	value, ok := c[key]
	return value, ok
}

// Path returns the path entry, if any.
func (c ErrorContext) Path() string {
	p, _ := c[ContextPath].(string)
	return p
}

func (c ErrorContext) clone() ErrorContext {
	out := make(ErrorContext, len(c)+1)
	maps.Copy(out, c)
	return out
}

// sorted iterates entries in key order so output is stable.
func (c ErrorContext) sorted() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range slices.Sorted(maps.Keys(c)) {
			if !yield(k, c[k]) {
				return
			}
		}
	}
}
