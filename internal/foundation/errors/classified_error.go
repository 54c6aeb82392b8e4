package errors

import (
	stderrors "errors"
	"log/slog"
)

// ClassifiedError is an error with a category, severity, remedy and context.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	remedy   Remedy
	message  string
	cause    error
	context  ErrorContext
}

// Error renders "[category] detail".
func (e *ClassifiedError) Error() string {
	return "[" + string(e.category) + "] " + e.Detail()
}

// Detail returns the message followed by the cause, without the category prefix.
func (e *ClassifiedError) Detail() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Remedy() Remedy          { return e.remedy }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }

// IsFatal reports whether the error aborts the run.
func (e *ClassifiedError) IsFatal() bool { return e.severity == SeverityFatal }

// WithContext returns a copy of the error with one more context entry.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	clone := *e
	clone.context = e.context.clone().Set(key, value)
	return &clone
}

// Is matches another ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	if other, ok := target.(*ClassifiedError); ok {
		return e.category == other.category && e.message == other.message
	}
	return false
}

// LogAttrs returns the classification and context as slog attributes,
// context keys in sorted order.
func (e *ClassifiedError) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("category", string(e.category)),
		slog.String("severity", string(e.severity)),
	}
	if e.remedy != RemedyNone {
		attrs = append(attrs, slog.String("remedy", string(e.remedy)))
	}
	for k, v := range e.context.sorted() {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

// AsClassified finds the first ClassifiedError in the error chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// HasCategory reports whether the first classified error in the chain has category.
func HasCategory(err error, category ErrorCategory) bool {
	classified, ok := AsClassified(err)
	return ok && classified.category == category
}

// GetCategory extracts the category from an error, or returns CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.category
	}
	return CategoryInternal
}
