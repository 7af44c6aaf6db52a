package table

import (
	"fmt"
	"unicode/utf8"
)

// Options configures parsing and materialization.
type Options struct {
	// Separator is the field separator.
	// It must be a valid single-byte separator and cannot be '"', '\r' or '\n'.
	Separator rune

	// Header treats the first record as the column list instead of data.
	Header bool

	// NormalizeHeader, when set, is applied to each column name taken
	// from a header record. See LowercaseHeader and SnakeCaseHeader.
	NormalizeHeader HeaderConverter

	// KeepBlankRows retains single-field records whose value is "" or
	// "undefined" instead of dropping them.
	KeepBlankRows bool

	// StrictQuotes rejects data between a closing quote and the next
	// separator instead of discarding it.
	StrictQuotes bool
}

// WriterOptions configures rendering a Table back to delimited text.
type WriterOptions struct {
	// Separator is the field separator.
	// It must be a valid single-byte separator and cannot be '"', '\r' or '\n'.
	Separator rune

	// UseCRLF terminates records with \r\n instead of \n.
	UseCRLF bool
}

// DefaultOptions returns the default parsing options: comma-separated,
// no header record, blank stub rows dropped, permissive quoting.
func DefaultOptions() Options {
	return Options{
		Separator:     ',',
		Header:        false,
		KeepBlankRows: false,
		StrictQuotes:  false,
	}
}

// DefaultWriterOptions returns the default rendering options:
// comma-separated with \n record terminators.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Separator: ',',
		UseCRLF:   false,
	}
}

// Validate checks the options for validity.
func (o Options) Validate() error {
	if !validSeparator(o.Separator) {
		return &OptionsError{
			Field:   "Separator",
			Message: fmt.Sprintf("invalid field separator %q", o.Separator),
		}
	}
	return nil
}

// Validate checks the options for validity.
func (o WriterOptions) Validate() error {
	if !validSeparator(o.Separator) {
		return &OptionsError{
			Field:   "Separator",
			Message: fmt.Sprintf("invalid field separator %q", o.Separator),
		}
	}
	return nil
}

// validSeparator reports whether r can serve as a field separator. The
// scanner works on bytes, so the separator must be a single-byte rune
// distinct from the quote and record terminator characters.
func validSeparator(r rune) bool {
	return r > 0 && r < utf8.RuneSelf && r != '"' && r != '\r' && r != '\n'
}

// OptionsError describes an invalid option value.
type OptionsError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Message)
}
