package table

import (
	"github.com/shapestone/shape-table/internal/tokenizer"
)

// Parse scans input with the default options and materializes a Table.
func Parse(input string) (*Table, error) {
	return ParseBytesWithOptions([]byte(input), DefaultOptions())
}

// ParseWithOptions scans input with the given options and materializes a
// Table.
func ParseWithOptions(input string, opts Options) (*Table, error) {
	return ParseBytesWithOptions([]byte(input), opts)
}

// ParseBytes scans data with the default options and materializes a Table.
func ParseBytes(data []byte) (*Table, error) {
	return ParseBytesWithOptions(data, DefaultOptions())
}

// ParseBytesWithOptions scans data with the given options and materializes
// a Table. Field values may alias data; callers that go on to mutate the
// buffer should parse a copy.
func ParseBytesWithOptions(data []byte, opts Options) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	records, err := tokenizer.TokenizeWithOptions(data, tokenizer.Options{
		Separator:    byte(opts.Separator),
		StrictQuotes: opts.StrictQuotes,
	})
	if err != nil {
		return nil, wrapScanError(err)
	}

	return FromRecords(records, opts), nil
}

// Validate scans input with the default options and reports the first
// error without materializing a Table.
func Validate(input string) error {
	return ValidateWithOptions(input, DefaultOptions())
}

// ValidateWithOptions scans input with the given options and reports the
// first error without materializing a Table.
func ValidateWithOptions(input string, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	_, err := tokenizer.TokenizeWithOptions([]byte(input), tokenizer.Options{
		Separator:    byte(opts.Separator),
		StrictQuotes: opts.StrictQuotes,
	})
	return wrapScanError(err)
}
