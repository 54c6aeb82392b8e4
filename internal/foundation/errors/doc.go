// Package errors provides the classified error used across sitegen.
//
// A ClassifiedError carries a category (config, summary, check, lint,
// filesystem, git, ...), a severity, a remedy and structured context such as
// the offending path, version or line. The CLI adapter maps the category to a
// process exit code and prints the message verbatim; with -v it also prints
// the context and a hint derived from the remedy.
//
//	err := errors.WrapError(parseErr, errors.CategorySummary, "SUMMARY parse error in "+path).
//		WithPath(path).
//		WithLine(lineNo).
//		Fatal().
//		FixInputs().
//		Build()
package errors
