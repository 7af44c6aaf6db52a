package table

import (
	"strings"
)

// CSV renders the table as comma-separated text.
// The column row is written only when the table has an explicit header, so
// parsing the output with the same Header option reproduces the table.
func (t *Table) CSV() (string, error) {
	return t.Render(DefaultWriterOptions())
}

// TSV renders the table as tab-separated text.
func (t *Table) TSV() (string, error) {
	return t.Render(WriterOptions{Separator: '\t'})
}

// Render renders the table as delimited text with the given options.
func (t *Table) Render(opts WriterOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	terminator := "\n"
	if opts.UseCRLF {
		terminator = "\r\n"
	}

	var b strings.Builder
	if t.hasHeader {
		writeRecord(&b, t.columns, opts.Separator, terminator)
	}
	for _, rec := range t.records {
		writeRecord(&b, rec, opts.Separator, terminator)
	}
	return b.String(), nil
}

// writeRecord writes one record with separators and a terminator.
func writeRecord(b *strings.Builder, fields []string, sep rune, terminator string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteRune(sep)
		}
		writeField(b, field, sep)
	}
	b.WriteString(terminator)
}

// writeField writes a single field value, quoting it when it contains the
// separator, a quote, or a record terminator character.
func writeField(b *strings.Builder, value string, sep rune) {
	needsQuoting := strings.ContainsRune(value, sep) ||
		strings.ContainsAny(value, "\"\n\r")

	if !needsQuoting {
		b.WriteString(value)
		return
	}

	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(value, `"`, `""`))
	b.WriteByte('"')
}
