package table

import (
	"fmt"

	"github.com/shapestone/shape-table/internal/tokenizer"
)

// Sentinel errors for scan failures. Callers match them with errors.Is
// against the Err field of a ParseError.
var (
	// ErrUnterminatedQuote is returned when a quoted field is still open
	// at end of input. It is the only failure the permissive grammar can
	// produce.
	ErrUnterminatedQuote = tokenizer.ErrUnterminatedQuote

	// ErrStrayAfterQuote is returned under StrictQuotes when data follows
	// a closing quote before the next separator or record terminator.
	ErrStrayAfterQuote = tokenizer.ErrStrayAfterQuote
)

// ParseError describes a scan failure with its position in the input.
// Line and Column are 1-indexed; for an unterminated quote they locate
// the opening quote character.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// wrapScanError converts a tokenizer error into the public error type.
func wrapScanError(err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*tokenizer.SyntaxError); ok {
		return &ParseError{
			Line:   se.Line,
			Column: se.Column,
			Err:    se.Err,
		}
	}
	return err
}
