package tokenizer

import (
	"errors"
	"fmt"
)

// Scanning errors. ErrUnterminatedQuote is the only fatal condition in the
// default dialect; ErrStrayAfterQuote occurs only with StrictQuotes set.
var (
	// ErrUnterminatedQuote indicates an escaped span still open at end of input.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")

	// ErrStrayAfterQuote indicates data between a closing quote and the next
	// separator or record terminator.
	ErrStrayAfterQuote = errors.New("unexpected data after closing quote")
)

// SyntaxError reports a scanning failure with position information.
// For ErrUnterminatedQuote the position is the span's opening quote.
type SyntaxError struct {
	// Offset is the byte offset into the input (0-indexed).
	Offset int
	// Line is the line of the offending byte (1-indexed).
	Line int
	// Column is the byte column within the line (1-indexed).
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted message with position information.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// syntaxErrorAt wraps err with the line and column of the byte at offset.
func syntaxErrorAt(data []byte, offset int, err error) error {
	line, column := position(data, offset)
	return &SyntaxError{
		Offset: offset,
		Line:   line,
		Column: column,
		Err:    err,
	}
}

// position converts a byte offset to a 1-indexed line and column.
// Only the error path pays for the scan.
func position(data []byte, offset int) (line, column int) {
	if offset > len(data) {
		offset = len(data)
	}
	line = 1
	lastNL := -1
	for i := 0; i < offset; i++ {
		if data[i] == '\n' {
			line++
			lastNL = i
		}
	}
	return line, offset - lastNL
}
