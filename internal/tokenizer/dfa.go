// Table-driven variant of the scanner.
//
// This file implements the same grammar as tokenizer.go with a DFA
// (Deterministic Finite Automaton): a 256-entry character class table and a
// precomputed state transition matrix instead of nested switches. The
// escaped flag and the closing-quote lookahead are folded into the state
// set, so the two extra states relative to the branch scanner are dfaQuoted
// (inside an escaped span) and dfaQuoteQuote (a quote was just read inside
// a span and the next byte decides between a doubled quote and a close).
//
// The branch scanner in tokenizer.go is the production path; it benefits
// from zero-copy field extraction that a per-byte table walk cannot match.
// The DFA is kept as an independent implementation of the grammar and is
// cross-checked against the branch scanner by the tests and the fuzzer.
package tokenizer

// charClass represents character classes for the DFA state machine.
type charClass uint8

const (
	classQuote charClass = iota // "
	classSep                    // field separator
	classCR                     // \r
	classLF                     // \n
	classOther                  // everything else
	numCharClasses
)

// dfaState represents states in the DFA.
type dfaState uint8

const (
	dfaPreToken   dfaState = iota // start of a field
	dfaBare                       // inside an unquoted field
	dfaQuoted                     // inside an escaped span
	dfaQuoteQuote                 // quote seen inside a span, next byte decides
	dfaPostToken                  // after a closing quote, before a boundary
	numStates
)

// dfaAction represents actions performed during state transitions.
type dfaAction uint8

const (
	actionNone        dfaAction = iota
	actionAppend                // append current byte to the field
	actionAppendQuote           // append one literal quote for a doubled pair
	actionOpenQuote             // enter an escaped span, byte not copied
	actionEndField              // close the field
	actionEndRecord             // close the field and the record
	actionDiscard               // drop the byte (error under StrictQuotes)
)

// transition represents a state transition in the DFA.
type transition struct {
	nextState dfaState
	action    dfaAction
}

// baseClassTable classifies every byte except the separator, which is
// per-call configurable and patched into a copy by classTable.
var baseClassTable [256]charClass

// dfaTransitions is the state transition matrix:
// [currentState][charClass] -> (nextState, action).
var dfaTransitions [numStates][numCharClasses]transition

func init() {
	initBaseClassTable()
	initDFATransitions()
}

func initBaseClassTable() {
	for i := 0; i < 256; i++ {
		baseClassTable[i] = classOther
	}
	baseClassTable['"'] = classQuote
	baseClassTable['\r'] = classCR
	baseClassTable['\n'] = classLF
}

// classTable returns the classification table with sep patched in.
func classTable(sep byte) [256]charClass {
	classes := baseClassTable
	classes[sep] = classSep
	return classes
}

func initDFATransitions() {
	// dfaPreToken: start of a field
	dfaTransitions[dfaPreToken][classQuote] = transition{dfaQuoted, actionOpenQuote}
	dfaTransitions[dfaPreToken][classSep] = transition{dfaPreToken, actionEndField}
	dfaTransitions[dfaPreToken][classCR] = transition{dfaPreToken, actionEndRecord}
	dfaTransitions[dfaPreToken][classLF] = transition{dfaPreToken, actionEndRecord}
	dfaTransitions[dfaPreToken][classOther] = transition{dfaBare, actionAppend}

	// dfaBare: a quote here is field content, not structure
	dfaTransitions[dfaBare][classQuote] = transition{dfaBare, actionAppend}
	dfaTransitions[dfaBare][classSep] = transition{dfaPreToken, actionEndField}
	dfaTransitions[dfaBare][classCR] = transition{dfaPreToken, actionEndRecord}
	dfaTransitions[dfaBare][classLF] = transition{dfaPreToken, actionEndRecord}
	dfaTransitions[dfaBare][classOther] = transition{dfaBare, actionAppend}

	// dfaQuoted: separators and LF are literal, CR is dropped
	dfaTransitions[dfaQuoted][classQuote] = transition{dfaQuoteQuote, actionNone}
	dfaTransitions[dfaQuoted][classSep] = transition{dfaQuoted, actionAppend}
	dfaTransitions[dfaQuoted][classCR] = transition{dfaQuoted, actionNone}
	dfaTransitions[dfaQuoted][classLF] = transition{dfaQuoted, actionAppend}
	dfaTransitions[dfaQuoted][classOther] = transition{dfaQuoted, actionAppend}

	// dfaQuoteQuote: doubled quote stays in the span, anything else closed it
	dfaTransitions[dfaQuoteQuote][classQuote] = transition{dfaQuoted, actionAppendQuote}
	dfaTransitions[dfaQuoteQuote][classSep] = transition{dfaPreToken, actionEndField}
	dfaTransitions[dfaQuoteQuote][classCR] = transition{dfaPreToken, actionEndRecord}
	dfaTransitions[dfaQuoteQuote][classLF] = transition{dfaPreToken, actionEndRecord}
	dfaTransitions[dfaQuoteQuote][classOther] = transition{dfaPostToken, actionDiscard}

	// dfaPostToken: bytes before the next boundary are discarded
	dfaTransitions[dfaPostToken][classQuote] = transition{dfaPostToken, actionDiscard}
	dfaTransitions[dfaPostToken][classSep] = transition{dfaPreToken, actionEndField}
	dfaTransitions[dfaPostToken][classCR] = transition{dfaPreToken, actionEndRecord}
	dfaTransitions[dfaPostToken][classLF] = transition{dfaPreToken, actionEndRecord}
	dfaTransitions[dfaPostToken][classOther] = transition{dfaPostToken, actionDiscard}
}

// TokenizeDFA scans data into records using the table-driven automaton.
// Output matches Tokenize for every input.
func TokenizeDFA(data []byte, sep byte) ([][]string, error) {
	opts := DefaultOptions()
	opts.Separator = sep
	return TokenizeDFAWithOptions(data, opts)
}

// TokenizeDFAWithOptions scans data with custom options using the
// table-driven automaton.
func TokenizeDFAWithOptions(data []byte, opts Options) ([][]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return [][]string{}, nil
	}

	classes := classTable(opts.Separator)

	records := make([][]string, 0, 16)
	var record []string
	field := getBuffer()
	defer func() { putBuffer(field) }()

	st := dfaPreToken
	open := false
	openPos := 0
	hint := 0
	pos := 0
	length := len(data)

	for pos < length {
		c := data[pos]

		if !open {
			n := hint
			if n == 0 {
				n = 4
			}
			record = make([]string, 0, n)
			open = true
			st = dfaPreToken
		}

		trans := dfaTransitions[st][classes[c]]

		switch trans.action {
		case actionAppend:
			field = append(field, c)

		case actionAppendQuote:
			field = append(field, '"')

		case actionOpenQuote:
			openPos = pos

		case actionEndField:
			record = append(record, string(field))
			field = field[:0]

		case actionEndRecord:
			record = append(record, string(field))
			field = field[:0]
			if c == '\r' && pos+1 < length && data[pos+1] == '\n' {
				pos++ // CRLF is one terminator
			}
			if hint == 0 {
				hint = len(record)
			}
			records = append(records, record)
			record = nil
			open = false

		case actionDiscard:
			if opts.StrictQuotes {
				return nil, syntaxErrorAt(data, pos, ErrStrayAfterQuote)
			}

		case actionNone:
		}

		st = trans.nextState
		pos++
	}

	if st == dfaQuoted {
		return nil, syntaxErrorAt(data, openPos, ErrUnterminatedQuote)
	}
	// A quote at EOF while in dfaQuoteQuote closed its span; flush the
	// record in progress, if any.
	if open {
		record = append(record, string(field))
		records = append(records, record)
	}
	return records, nil
}
