// Package foundation holds the validator chain used to check configuration.
package foundation

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Validator checks one aspect of a value.
type Validator[T any] func(T) ValidationResult

// ValidationResult collects field failures; the zero value is invalid, use Valid().
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError is a single failure on a named configuration field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{Valid: false, Errors: errs}
}

// Fail is shorthand for a result with one field error.
func Fail(field, code, message string) ValidationResult {
	return Invalid(FieldError{Field: field, Code: code, Message: message})
}

// Combine merges two results, keeping failures in order.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}
	all := make([]FieldError, 0, len(vr.Errors)+len(other.Errors))
	all = append(all, vr.Errors...)
	all = append(all, other.Errors...)
	return Invalid(all...)
}

// ToError converts the result into a fatal classified error of the given
// category, joining every failure; nil when valid.
func (vr ValidationResult) ToError(category errors.ErrorCategory) error {
	if vr.Valid {
		return nil
	}
	messages := make([]string, 0, len(vr.Errors))
	for _, err := range vr.Errors {
		messages = append(messages, err.Error())
	}
	return errors.NewError(category, strings.Join(messages, "; ")).Fatal().FixInputs().Build()
}

// ValidatorChain runs validators in order and collects every failure.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Validate runs all validators in the chain.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()
	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}
	return result
}

// NotBlank requires a non-empty string after trimming.
func NotBlank[T any](field string, get func(T) string) Validator[T] {
	return func(value T) ValidationResult {
		if strings.TrimSpace(get(value)) == "" {
			return Fail(field, "required", "must not be empty")
		}
		return Valid()
	}
}

// BareFileName requires a file name without directory components.
func BareFileName[T any](field string, get func(T) string) Validator[T] {
	return func(value T) ValidationResult {
		name := get(value)
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
			return Fail(field, "file_name", "must be a bare file name")
		}
		return Valid()
	}
}

// NonNegative requires a numeric value (including durations) of zero or more.
func NonNegative[T any, N ~int | ~int64](field string, get func(T) N) Validator[T] {
	return func(value T) ValidationResult {
		if get(value) < 0 {
			return Fail(field, "negative", "must not be negative")
		}
		return Valid()
	}
}

// Each applies check to every element returned by get, naming fields
// "<field>[i]".
func Each[T, E any](field string, get func(T) []E, check func(field string, e E) ValidationResult) Validator[T] {
	return func(value T) ValidationResult {
		result := Valid()
		for i, e := range get(value) {
			result = result.Combine(check(fmt.Sprintf("%s[%d]", field, i), e))
		}
		return result
	}
}
