package table_test

import (
	"errors"
	"testing"

	"github.com/shapestone/shape-table/pkg/table"
)

func TestParseErrorFormat(t *testing.T) {
	err := &table.ParseError{
		Line:   3,
		Column: 7,
		Err:    table.ErrUnterminatedQuote,
	}

	want := "parse error on line 3, column 7: unterminated quoted field"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	err := &table.ParseError{Line: 1, Column: 1, Err: table.ErrStrayAfterQuote}

	if !errors.Is(err, table.ErrStrayAfterQuote) {
		t.Error("errors.Is(err, ErrStrayAfterQuote) = false")
	}
	if errors.Is(err, table.ErrUnterminatedQuote) {
		t.Error("errors.Is(err, ErrUnterminatedQuote) = true for stray quote error")
	}
	if errors.Unwrap(err) != table.ErrStrayAfterQuote {
		t.Error("Unwrap() did not return the sentinel")
	}
}

func TestSentinelMessages(t *testing.T) {
	if got, want := table.ErrUnterminatedQuote.Error(), "unterminated quoted field"; got != want {
		t.Errorf("ErrUnterminatedQuote = %q, want %q", got, want)
	}
	if got, want := table.ErrStrayAfterQuote.Error(), "unexpected data after closing quote"; got != want {
		t.Errorf("ErrStrayAfterQuote = %q, want %q", got, want)
	}
}
