// Package tokenizer implements the delimited-text scanner used to load
// CSV and TSV content into records.
//
// The scanner is a four-state machine driven by a single forward cursor:
//
//   - preToken: at the start of a field; an opening quote begins an
//     escaped span without being copied into the field.
//   - midToken: accumulating field bytes. Inside an escaped span a doubled
//     quote emits one literal quote, a lone quote closes the span, and CR
//     bytes are dropped so embedded CRLF line endings normalize to LF.
//     Outside a span every byte is literal, quotes included.
//   - postToken: between a field's closing quote and the next separator
//     or record terminator. Bytes seen here are discarded (spreadsheet
//     exports occasionally emit them) unless StrictQuotes is set.
//   - postRecord: just after a record terminator.
//
// The grammar is deliberately permissive: records may have differing field
// counts, a quote inside an unquoted field is content rather than an error,
// and a blank line is a record holding one empty field. The only fatal
// condition is an escaped span still open at end of input, reported as a
// *SyntaxError wrapping ErrUnterminatedQuote with no partial output.
//
// Tokenization is O(n) with one byte of lookahead (CRLF pairs, doubled
// quotes). Fields that form a contiguous run of input bytes are returned
// as zero-copy views of the input; fields broken up by quote escapes or
// dropped CRs are assembled in pooled scratch buffers.
//
// All state is local to one call, so concurrent Tokenize calls on
// independent inputs need no locking.
package tokenizer

import "fmt"

// state identifies the scanner's position relative to field and record
// boundaries. Exactly one state value exists per call.
type state uint8

const (
	statePreToken state = iota
	stateMidToken
	statePostToken
	statePostRecord
)

// Options configures tokenization.
type Options struct {
	// Separator is the field delimiter byte. Default: ','
	Separator byte

	// StrictQuotes rejects bytes between a field's closing quote and the
	// next separator or record terminator instead of discarding them.
	// Default: false (legacy discard)
	StrictQuotes bool
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Separator:    ',',
		StrictQuotes: false,
	}
}

// Validate checks that the options describe a usable dialect.
func (o Options) Validate() error {
	switch o.Separator {
	case 0, '"', '\r', '\n':
		return fmt.Errorf("invalid separator %q", o.Separator)
	}
	return nil
}

// Tokenize scans data into records using sep as the field delimiter.
//
// Returns the complete record sequence, where each record is a slice of
// field values. Field strings may alias the input, so data must not be
// modified after the call.
func Tokenize(data []byte, sep byte) ([][]string, error) {
	opts := DefaultOptions()
	opts.Separator = sep
	return TokenizeWithOptions(data, opts)
}

// TokenizeWithOptions scans data into records with custom options.
func TokenizeWithOptions(data []byte, opts Options) ([][]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return [][]string{}, nil
	}

	t := &tokenizer{
		data:   data,
		length: len(data),
		sep:    opts.Separator,
		strict: opts.StrictQuotes,
	}
	return t.run()
}

// tokenizer holds the cursor, the state pair, and the buffers for one call.
type tokenizer struct {
	data   []byte
	pos    int
	length int
	sep    byte
	strict bool

	st      state
	escaped bool
	openPos int // byte offset of the current span's opening quote

	// Token accumulation. While the field is a contiguous run of input
	// bytes it is tracked as [runStart, runEnd) for zero-copy extraction;
	// the first discontinuity spills it into the pooled scratch buffer.
	runStart int
	runEnd   int
	spilled  bool
	buf      []byte

	record  []string
	records [][]string
	open    bool // a record is in progress
	hint    int  // field-count hint taken from the first record
}

// run drives the cursor over the input and returns the record sequence.
func (t *tokenizer) run() ([][]string, error) {
	// Assume average field size of 8 bytes + 1 separator = 9 bytes per field
	estimatedFields := t.length / 9
	if estimatedFields < 16 {
		estimatedFields = 16
	}
	t.records = make([][]string, 0, estimatedFields/8+1)

	t.buf = getBuffer()
	defer func() { putBuffer(t.buf) }()

	t.st = statePreToken
	t.resetToken()

	for t.pos < t.length {
		if !t.open {
			t.beginRecord()
		}

		if t.escaped {
			t.stepEscaped()
			continue
		}

		c := t.data[t.pos]

		switch t.st {
		case statePreToken:
			if c == '"' {
				t.escaped = true
				t.openPos = t.pos
				t.st = stateMidToken
				t.pos++
				continue
			}
			// Ordinary byte: re-examined under the midToken rule.
			t.st = stateMidToken
			fallthrough

		case stateMidToken, statePostToken:
			switch c {
			case t.sep:
				t.pos++
				t.endToken()

			case '\r':
				t.pos++
				if t.pos < t.length && t.data[t.pos] == '\n' {
					t.pos++ // CRLF is one terminator
				}
				t.endToken()
				t.endRecord()

			case '\n':
				t.pos++
				t.endToken()
				t.endRecord()

			default:
				if t.st == statePostToken {
					if t.strict {
						return nil, t.syntaxError(t.pos, ErrStrayAfterQuote)
					}
					t.pos++ // discarded
					continue
				}
				t.appendByte(t.pos)
				t.pos++
			}
		}
	}

	if t.escaped {
		return nil, t.syntaxError(t.openPos, ErrUnterminatedQuote)
	}
	if t.open {
		t.endToken()
		t.endRecord()
	}
	return t.records, nil
}

// stepEscaped consumes one input step inside an escaped span.
func (t *tokenizer) stepEscaped() {
	switch c := t.data[t.pos]; c {
	case '"':
		if t.pos+1 < t.length && t.data[t.pos+1] == '"' {
			// Doubled quote: one literal quote, both bytes consumed.
			t.appendByte(t.pos)
			t.pos += 2
			return
		}
		t.escaped = false
		t.st = statePostToken
		t.pos++
	case '\r':
		// Dropped: embedded CRLF normalizes to LF.
		t.pos++
	default:
		t.appendByte(t.pos)
		t.pos++
	}
}

// appendByte adds the input byte at pos to the current token, extending
// the zero-copy run when contiguous and spilling to the scratch buffer
// otherwise.
func (t *tokenizer) appendByte(pos int) {
	if t.spilled {
		t.buf = append(t.buf, t.data[pos])
		return
	}
	if t.runStart < 0 {
		t.runStart = pos
		t.runEnd = pos + 1
		return
	}
	if pos == t.runEnd {
		t.runEnd++
		return
	}
	t.buf = append(t.buf[:0], t.data[t.runStart:t.runEnd]...)
	t.buf = append(t.buf, t.data[pos])
	t.spilled = true
}

// endToken closes the current field and appends it to the record.
func (t *tokenizer) endToken() {
	var field string
	switch {
	case t.spilled:
		field = string(t.buf)
	case t.runStart >= 0:
		field = unsafeString(t.data[t.runStart:t.runEnd])
	}
	t.record = append(t.record, field)
	t.resetToken()
}

// endRecord emits the completed record to the output sequence.
func (t *tokenizer) endRecord() {
	if t.hint == 0 {
		t.hint = len(t.record)
	}
	t.records = append(t.records, t.record)
	t.record = nil
	t.open = false
	t.st = statePostRecord
}

// beginRecord starts a record at the current cursor position.
func (t *tokenizer) beginRecord() {
	hint := t.hint
	if hint == 0 {
		hint = 4
	}
	t.record = make([]string, 0, hint)
	t.open = true
	t.escaped = false
	t.resetToken()
}

// resetToken clears the token accumulator and returns to preToken.
func (t *tokenizer) resetToken() {
	t.runStart = -1
	t.runEnd = -1
	t.spilled = false
	t.buf = t.buf[:0]
	t.st = statePreToken
}

// syntaxError wraps err with the line and column of the byte at offset.
func (t *tokenizer) syntaxError(offset int, err error) error {
	return syntaxErrorAt(t.data, offset, err)
}
