//go:build go1.18
// +build go1.18

package tokenizer

import (
	"errors"
	"reflect"
	"testing"
)

// FuzzTokenize checks that the scanner never panics and that the branch
// scanner and the DFA agree on every input, successes and failures alike.
// Run with: go test -fuzz=FuzzTokenize -fuzztime=30s ./internal/tokenizer
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"a",
		"a,b,c",
		"a,b,c\n",
		"a,b\nc,d",
		"\"quoted\"",
		"\"with,comma\"",
		"\"with\"\"quote\"",
		"\"multi\nline\"",
		"a,\"b\",c",
		"\r\n",
		"a\r\nb",
		"a,b,c\r\nd,e,f",
		",,",
		"\"\"",
		"\"\"\"\"",
		"a,\"b,c\",d",
		"\"a\"\"b\"",
		"hel\"lo",
		"\"a\"junk,b",
		"\n\n",
		"\"a\rb\"",
		"\"abc",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		branch, branchErr := Tokenize([]byte(input), ',')
		dfa, dfaErr := TokenizeDFA([]byte(input), ',')

		if (branchErr != nil) != (dfaErr != nil) {
			t.Fatalf("error mismatch for %q: branch=%v dfa=%v", input, branchErr, dfaErr)
		}
		if branchErr != nil {
			if !errors.Is(branchErr, ErrUnterminatedQuote) {
				t.Fatalf("unexpected error kind for %q: %v", input, branchErr)
			}
			if branch != nil {
				t.Fatalf("partial output alongside error for %q", input)
			}
			return
		}
		if !reflect.DeepEqual(branch, dfa) {
			t.Fatalf("output mismatch for %q:\nbranch = %v\ndfa    = %v", input, branch, dfa)
		}
	})
}

// FuzzTokenizeStrict covers the strict dialect, where stray bytes after a
// closing quote are errors rather than discards.
func FuzzTokenizeStrict(f *testing.F) {
	seeds := []string{
		"",
		"\"a\"x",
		"\"a\",b",
		"\"a\"\nb",
		"a\"b",
		"\"\"x\"\"y",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	opts := Options{Separator: ',', StrictQuotes: true}

	f.Fuzz(func(t *testing.T, input string) {
		branch, branchErr := TokenizeWithOptions([]byte(input), opts)
		dfa, dfaErr := TokenizeDFAWithOptions([]byte(input), opts)

		if (branchErr != nil) != (dfaErr != nil) {
			t.Fatalf("error mismatch for %q: branch=%v dfa=%v", input, branchErr, dfaErr)
		}
		if branchErr != nil {
			return
		}
		if !reflect.DeepEqual(branch, dfa) {
			t.Fatalf("output mismatch for %q:\nbranch = %v\ndfa    = %v", input, branch, dfa)
		}
	})
}
