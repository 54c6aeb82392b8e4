package summary

import (
	"fmt"
	"strconv"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// ErrorKind enumerates the fatal parse failures.
type ErrorKind string

const (
	KindUnsupportedLine        ErrorKind = "unsupported_line"
	KindIndentationUnderflow   ErrorKind = "indentation_underflow"
	KindInvalidIndentationJump ErrorKind = "invalid_indentation_jump"
	KindExternalLinkNotAllowed ErrorKind = "external_link_not_allowed"
	KindInvalidDocExtension    ErrorKind = "invalid_doc_extension"
	KindEmptyDocID             ErrorKind = "empty_doc_id"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrUnsupportedLine        = &ParseError{Kind: KindUnsupportedLine}
	ErrIndentationUnderflow   = &ParseError{Kind: KindIndentationUnderflow}
	ErrInvalidIndentationJump = &ParseError{Kind: KindInvalidIndentationJump}
	ErrExternalLinkNotAllowed = &ParseError{Kind: KindExternalLinkNotAllowed}
	ErrInvalidDocExtension    = &ParseError{Kind: KindInvalidDocExtension}
	ErrEmptyDocID             = &ParseError{Kind: KindEmptyDocID}
)

// ParseError is the single error type returned by Parse. LineNo is 1-based and
// zero when the error was produced outside of a parse (NormalizeDocID).
type ParseError struct {
	Kind   ErrorKind
	LineNo int
	Line   string
	Href   string
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case KindUnsupportedLine:
		msg = "unsupported SUMMARY.md line (expected heading or bullet): " + e.Line
	case KindIndentationUnderflow:
		msg = "indentation underflow in SUMMARY.md: " + e.Line
	case KindInvalidIndentationJump:
		msg = "invalid indentation jump (indent under non-category or missing parent bullet): " + e.Line
	case KindExternalLinkNotAllowed:
		msg = "external link not allowed in SUMMARY.md sidebar: " + e.Href
	case KindInvalidDocExtension:
		msg = "doc link must end with .md or .mdx: " + e.Href
	case KindEmptyDocID:
		msg = "empty doc id after normalization"
		if e.Line != "" {
			msg += ": " + e.Line
		}
	default:
		msg = fmt.Sprintf("%s: %s", e.Kind, e.Line)
	}
	if e.LineNo > 0 {
		return "line " + strconv.Itoa(e.LineNo) + ": " + msg
	}
	return msg
}

// Is matches another *ParseError of the same kind. A target carrying a line
// number must also match the line number.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.LineNo == 0 || t.LineNo == e.LineNo
}

func (e *ParseError) at(lineNo int, line string) *ParseError {
	e.LineNo = lineNo
	e.Line = line
	return e
}

// Classified wraps the parse error for CLI presentation, naming the outline
// file it came from.
func (e *ParseError) Classified(path string) *ferrors.ClassifiedError {
	return ferrors.WrapError(e, ferrors.CategorySummary, "SUMMARY parse error in "+path).
		Fatal().
		FixInputs().
		WithPath(path).
		WithContext("kind", string(e.Kind)).
		WithLine(e.LineNo).
		Build()
}
