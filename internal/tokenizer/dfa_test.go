package tokenizer

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenizeDFA_BasicScanning(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][]string
		wantErr bool
	}{
		{
			name:  "empty input",
			input: "",
			want:  [][]string{},
		},
		{
			name:  "simple record",
			input: "a,b,c",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "two records with CRLF",
			input: "a,b\r\nc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "doubled quote",
			input: `"a""b"`,
			want:  [][]string{{`a"b`}},
		},
		{
			name:  "literal quote in bare field",
			input: `hel"lo`,
			want:  [][]string{{`hel"lo`}},
		},
		{
			name:  "blank line is an empty-field record",
			input: "\n",
			want:  [][]string{{""}},
		},
		{
			name:  "CR dropped inside quoted field",
			input: "\"a\r\nb\"",
			want:  [][]string{{"a\nb"}},
		},
		{
			name:  "data after closing quote is discarded",
			input: `"a"junk,b`,
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "trailing separator",
			input: "a,",
			want:  [][]string{{"a", ""}},
		},
		{
			name:    "unterminated quote",
			input:   `"abc`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenizeDFA([]byte(tt.input), ',')
			if (err != nil) != tt.wantErr {
				t.Errorf("TokenizeDFA() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnterminatedQuote) {
					t.Errorf("error = %v, want ErrUnterminatedQuote", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeDFA() = %v, want %v", got, tt.want)
			}
		})
	}
}

// equivalenceCorpus exercises every transition of the grammar at least once.
// Both scanners must agree on all of it, errors included.
var equivalenceCorpus = []string{
	"",
	"a",
	"a,b,c",
	"a,b,c\n",
	"a,b\nc,d",
	"a,b\r\nc,d\r\n",
	"a\rb",
	",,",
	"a,",
	",a",
	"\n",
	"\r\n",
	"\n\n\n",
	"a\n\nb",
	`""`,
	`""""`,
	`""""""`,
	`"a"`,
	`"a""b"`,
	`"a,b",c`,
	"\"a\nb\",c",
	"\"a\r\nb\"",
	"\"a\rb\"",
	`a"b`,
	`x"y"z`,
	`hello"world`,
	`"a"junk,b`,
	`"a"x"y`,
	`""x""y`,
	"\"a\"junk\nb",
	`"abc`,
	"a,b\n\"c",
	`a,"b`,
	`"`,
	"\"\n",
	"\"a\"\r\n",
	"juá,ñ\n\"é\"",
	"a\x00b,c",
	"\x00",
}

func TestTokenizeDFA_MatchesBranchScanner(t *testing.T) {
	for _, input := range equivalenceCorpus {
		t.Run(input, func(t *testing.T) {
			branch, branchErr := Tokenize([]byte(input), ',')
			dfa, dfaErr := TokenizeDFA([]byte(input), ',')

			if (branchErr != nil) != (dfaErr != nil) {
				t.Fatalf("error mismatch: branch=%v dfa=%v", branchErr, dfaErr)
			}
			if branchErr != nil {
				if !errors.Is(dfaErr, errors.Unwrap(branchErr)) {
					t.Fatalf("error kind mismatch: branch=%v dfa=%v", branchErr, dfaErr)
				}
				return
			}
			if !reflect.DeepEqual(branch, dfa) {
				t.Errorf("output mismatch for %q:\nbranch = %v\ndfa    = %v", input, branch, dfa)
			}
		})
	}
}

func TestTokenizeDFA_MatchesBranchScannerStrict(t *testing.T) {
	opts := DefaultOptions()
	opts.StrictQuotes = true

	for _, input := range equivalenceCorpus {
		t.Run(input, func(t *testing.T) {
			branch, branchErr := TokenizeWithOptions([]byte(input), opts)
			dfa, dfaErr := TokenizeDFAWithOptions([]byte(input), opts)

			if (branchErr != nil) != (dfaErr != nil) {
				t.Fatalf("error mismatch: branch=%v dfa=%v", branchErr, dfaErr)
			}
			if branchErr != nil {
				var branchSyn, dfaSyn *SyntaxError
				if !errors.As(branchErr, &branchSyn) || !errors.As(dfaErr, &dfaSyn) {
					t.Fatalf("non-syntax errors: branch=%v dfa=%v", branchErr, dfaErr)
				}
				if branchSyn.Offset != dfaSyn.Offset || !errors.Is(dfaErr, errors.Unwrap(branchErr)) {
					t.Fatalf("error detail mismatch: branch=%v dfa=%v", branchErr, dfaErr)
				}
				return
			}
			if !reflect.DeepEqual(branch, dfa) {
				t.Errorf("output mismatch for %q:\nbranch = %v\ndfa    = %v", input, branch, dfa)
			}
		})
	}
}

func TestTokenizeDFA_TabSeparated(t *testing.T) {
	got, err := TokenizeDFA([]byte("a\tb\n\"c\td\"\te"), '\t')
	if err != nil {
		t.Fatalf("TokenizeDFA() error = %v", err)
	}
	want := [][]string{{"a", "b"}, {"c\td", "e"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokenizeDFA() = %v, want %v", got, want)
	}
}

func TestClassTable(t *testing.T) {
	classes := classTable(';')
	if classes[';'] != classSep {
		t.Errorf("classes[';'] = %v, want classSep", classes[';'])
	}
	if classes[','] != classOther {
		t.Errorf("classes[','] = %v, want classOther", classes[','])
	}
	if classes['"'] != classQuote {
		t.Errorf("classes['\"'] = %v, want classQuote", classes['"'])
	}
	if classes['\r'] != classCR || classes['\n'] != classLF {
		t.Error("newline bytes misclassified")
	}

	// The base table must stay unpatched across calls.
	if baseClassTable[';'] != classOther {
		t.Error("classTable modified the base table")
	}
}
