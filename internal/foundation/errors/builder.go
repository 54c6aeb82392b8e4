package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category with severity error.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}}
}

// WrapError starts an error that wraps err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = err
	return b
}

// WithCause sets the wrapped error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

// WithPath records the file or directory the error concerns.
func (b *ErrorBuilder) WithPath(p string) *ErrorBuilder { return b.WithContext(ContextPath, p) }

// WithVersion records the docs version the error concerns.
func (b *ErrorBuilder) WithVersion(v string) *ErrorBuilder { return b.WithContext(ContextVersion, v) }

// WithLine records a 1-based source line.
func (b *ErrorBuilder) WithLine(n int) *ErrorBuilder { return b.WithContext(ContextLine, n) }

// Fatal marks the error as aborting the run.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.severity = SeverityFatal
	return b
}

// Warning marks the error as non-fatal.
func (b *ErrorBuilder) Warning() *ErrorBuilder {
	b.err.severity = SeverityWarning
	return b
}

// FixInputs marks the error as resolved by editing inputs.
func (b *ErrorBuilder) FixInputs() *ErrorBuilder {
	b.err.remedy = RemedyFixInputs
	return b
}

// Regenerate marks the error as resolved by running generation.
func (b *ErrorBuilder) Regenerate() *ErrorBuilder {
	b.err.remedy = RemedyRegenerate
	return b
}

// Retryable marks the error as transient.
func (b *ErrorBuilder) Retryable() *ErrorBuilder {
	b.err.remedy = RemedyRetry
	return b
}

// Build returns the error. Later builder calls do not affect it.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	e.context = b.err.context.clone()
	return &e
}

// ConfigError reports bad configuration or missing inputs.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal().FixInputs()
}

// ValidationError reports invalid flags or arguments.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal().FixInputs()
}

// SummaryError reports an outline that cannot be parsed.
func SummaryError(message string) *ErrorBuilder {
	return NewError(CategorySummary, message).Fatal().FixInputs()
}

// CheckError reports generated outputs that drifted from their sources.
func CheckError(message string) *ErrorBuilder {
	return NewError(CategoryCheck, message).Fatal().Regenerate()
}

// LintError reports a docs tree that fails lint rules.
func LintError(message string) *ErrorBuilder {
	return NewError(CategoryLint, message).FixInputs()
}

// FileSystemError reports an I/O failure.
func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message).Retryable()
}

// GitError reports a repository inspection failure.
func GitError(message string) *ErrorBuilder {
	return NewError(CategoryGit, message)
}

// NetworkError reports a failure talking to a remote service.
func NetworkError(message string) *ErrorBuilder {
	return NewError(CategoryNetwork, message).Retryable()
}

// StoreError reports a run history database failure.
func StoreError(message string) *ErrorBuilder {
	return NewError(CategoryStore, message)
}

// RuntimeError reports a failure of the watch loop or its helpers.
func RuntimeError(message string) *ErrorBuilder {
	return NewError(CategoryRuntime, message).Fatal()
}

// InternalError reports a bug.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
