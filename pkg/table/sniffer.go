package table

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// maxSniffLines caps how many sample lines the sniffer inspects.
const maxSniffLines = 16

// separatorCandidates are tried in precedence order; on a score tie the
// earlier candidate wins, so detection is deterministic.
var separatorCandidates = []rune{',', '\t', ';', '|'}

// Sniffer detects the dialect of a delimited-text sample: the field
// separator and whether the first record is a header.
type Sniffer struct {
	sample    string
	separator rune
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a Sniffer for a sample of delimited text.
// For best results, provide at least 2-3 lines of data.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// analyze runs dialect detection once and caches the result.
func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.separator = s.detectSeparator()
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// DetectSeparator returns the detected field separator.
// Candidates checked: comma, tab, semicolon, pipe. Comma is the fallback
// when no candidate occurs in the sample.
func (s *Sniffer) DetectSeparator() rune {
	s.analyze()
	return s.separator
}

// HasHeader reports whether the first record appears to name columns
// rather than hold data.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// detectSeparator scores each candidate by how often and how consistently
// it splits the sample lines.
func (s *Sniffer) detectSeparator() rune {
	lines := s.sampleLines()
	if len(lines) == 0 {
		return ','
	}

	best := ','
	bestScore := 0
	for _, sep := range separatorCandidates {
		counts := make([]int, len(lines))
		for i, line := range lines {
			counts[i] = countSeparator(line, sep)
		}
		if counts[0] == 0 {
			continue
		}

		consistent := true
		for _, c := range counts[1:] {
			if c != counts[0] {
				consistent = false
				break
			}
		}

		score := counts[0]
		if consistent {
			score *= 10
		}
		if score > bestScore {
			best = sep
			bestScore = score
		}
	}
	return best
}

// detectHeader compares the first two records column by column. A column
// that is numeric in the second record but not in the first votes for a
// header; a numeric first-record field votes against.
func (s *Sniffer) detectHeader() bool {
	lines := s.sampleLines()
	if len(lines) < 2 {
		return false
	}

	sep := s.detectSeparator()
	first := splitBySeparator(lines[0], sep)
	second := splitBySeparator(lines[1], sep)
	if len(first) == 0 || len(second) == 0 {
		return false
	}

	width := len(first)
	if len(second) < width {
		width = len(second)
	}

	headerVotes := 0
	dataVotes := 0
	for i := 0; i < width; i++ {
		f := strings.TrimSpace(first[i])
		d := strings.TrimSpace(second[i])

		if isNumeric(f) {
			dataVotes++
			continue
		}
		switch {
		case isNumeric(d):
			headerVotes++
		case looksLikeHeader(f):
			headerVotes++
		case strings.Contains(f, "@"):
			dataVotes++
		}
	}
	return headerVotes > dataVotes
}

// sampleLines returns up to maxSniffLines non-empty lines of the sample,
// with any trailing carriage return stripped.
func (s *Sniffer) sampleLines() []string {
	var lines []string
	for _, line := range strings.Split(s.sample, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxSniffLines {
			break
		}
	}
	return lines
}

// countSeparator counts separator occurrences outside quoted sections.
func countSeparator(line string, sep rune) int {
	count := 0
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == sep && !inQuotes:
			count++
		}
	}
	return count
}

// splitBySeparator splits a line on the separator, respecting and
// stripping quotes.
func splitBySeparator(line string, sep rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == sep && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())
	return fields
}

var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),       // identifier or snake_case
	regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
}

// looksLikeHeader reports whether a field matches a common column-name
// shape.
func looksLikeHeader(s string) bool {
	if s == "" {
		return false
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric reports whether a field parses as a number.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// HeaderConverter transforms a column name during materialization. Set
// one on Options.NormalizeHeader to clean up header records as they are
// read.
type HeaderConverter func(string) string

// LowercaseHeader converts column names to lowercase.
func LowercaseHeader(s string) string {
	return strings.ToLower(s)
}

// UppercaseHeader converts column names to uppercase.
func UppercaseHeader(s string) string {
	return strings.ToUpper(s)
}

// SnakeCaseHeader converts column names to snake_case.
func SnakeCaseHeader(s string) string {
	var b strings.Builder
	prevWasSpace := false
	for i, ch := range s {
		if ch == ' ' {
			if b.Len() > 0 && !prevWasSpace {
				b.WriteByte('_')
			}
			prevWasSpace = true
			continue
		}
		if unicode.IsUpper(ch) && i > 0 && !prevWasSpace {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(ch))
		prevWasSpace = false
	}
	return b.String()
}
