package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	return p
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_PrettyOutput(t *testing.T) {
	p := writeTestFile(t, "people.csv", "name,age\nAlice,30\nBob,25\n")

	code, stdout, _ := runCLI(t, "-header", p)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "name")
	assert.Contains(t, stdout, "Alice")
	assert.Contains(t, stdout, "│")
}

func TestRun_CSVFormat(t *testing.T) {
	p := writeTestFile(t, "people.csv", "name,age\nAlice,30\n")

	code, stdout, _ := runCLI(t, "-header", "-format", "csv", p)
	assert.Equal(t, 0, code)
	assert.Equal(t, "name,age\nAlice,30\n", stdout)
}

func TestRun_TSVFormat(t *testing.T) {
	p := writeTestFile(t, "people.csv", "name,age\nAlice,30\n")

	code, stdout, _ := runCLI(t, "-header", "-format", "tsv", p)
	assert.Equal(t, 0, code)
	assert.Equal(t, "name\tage\nAlice\t30\n", stdout)
}

func TestRun_JSONFormat(t *testing.T) {
	p := writeTestFile(t, "people.csv", "name,age\nAlice,30\n")

	code, stdout, _ := runCLI(t, "-header", "-format", "json", p)
	require.Equal(t, 0, code)

	var doc struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, []string{"name", "age"}, doc.Columns)
	assert.Equal(t, [][]string{{"Alice", "30"}}, doc.Rows)
}

func TestRun_TabSeparatorDetected(t *testing.T) {
	p := writeTestFile(t, "data.tsv", "x\ty\n1\t2\n")

	code, stdout, _ := runCLI(t, "-format", "csv", p)
	assert.Equal(t, 0, code)
	assert.Equal(t, "x,y\n1,2\n", stdout)
}

func TestRun_ColumnSelection(t *testing.T) {
	p := writeTestFile(t, "people.csv", "name,age,city\nAlice,30,Oslo\n")

	code, stdout, _ := runCLI(t, "-header", "-cols", "city,name", "-format", "csv", p)
	assert.Equal(t, 0, code)
	assert.Equal(t, "city,name\nOslo,Alice\n", stdout)
}

func TestRun_UnknownColumn(t *testing.T) {
	p := writeTestFile(t, "people.csv", "name,age\nAlice,30\n")

	code, _, stderr := runCLI(t, "-header", "-cols", "country", p)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown column")
}

func TestRun_ParseError(t *testing.T) {
	p := writeTestFile(t, "broken.csv", "a,\"never closed")

	code, _, stderr := runCLI(t, p)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to parse resource")
}

func TestRun_MissingSource(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage:")
}

func TestRun_BadSeparator(t *testing.T) {
	p := writeTestFile(t, "people.csv", "a,b\n")

	code, _, _ := runCLI(t, "-sep", "nonsense", p)
	assert.Equal(t, 2, code)
}

func TestRun_BadFormat(t *testing.T) {
	p := writeTestFile(t, "people.csv", "a,b\n")

	code, _, stderr := runCLI(t, "-format", "xml", p)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "render")
}

func TestParseSeparator(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: "auto", want: 0},
		{in: "comma", want: ','},
		{in: "tab", want: '\t'},
		{in: "semicolon", want: ';'},
		{in: "pipe", want: '|'},
		{in: ";", want: ';'},
		{in: "|", want: '|'},
		{in: "nonsense", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseSeparator(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseSeparator(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseSeparator(%q)", tt.in)
		assert.Equal(t, tt.want, got, "parseSeparator(%q)", tt.in)
	}
}

func TestSplitColumns(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitColumns("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitColumns(" a , b "))
	assert.Equal(t, []string{"one"}, splitColumns("one"))
}

func TestRun_StrictQuotes(t *testing.T) {
	p := writeTestFile(t, "data.csv", "\"a\"junk,b\n")

	code, stdout, _ := runCLI(t, "-format", "csv", p)
	assert.Equal(t, 0, code)
	assert.Equal(t, "a,b\n", stdout)

	code, _, stderr := runCLI(t, "-strict", p)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to parse resource")
}
