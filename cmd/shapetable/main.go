// Command shapetable loads a CSV or TSV resource from a file or URL and
// prints it as a text grid, delimited text or JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/happy-sdk/happy/pkg/strings/textfmt"
	"github.com/rs/zerolog"

	"github.com/shapestone/shape-table/pkg/fetch"
	"github.com/shapestone/shape-table/pkg/table"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shapetable", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		sepName   = fs.String("sep", "auto", "field separator: auto, comma, tab, semicolon, pipe or a single character")
		header    = fs.Bool("header", false, "treat the first record as column names")
		format    = fs.String("format", "pretty", "output format: pretty, csv, tsv or json")
		cols      = fs.String("cols", "", "comma-separated column names to keep, in order")
		strict    = fs.Bool("strict", false, "reject data between a closing quote and the next separator")
		keepBlank = fs.Bool("keep-blank", false, "keep single-field blank rows")
		timeout   = fs.Duration("timeout", 30*time.Second, "retry budget for HTTP fetches")
		verbose   = fs.Bool("v", false, "verbose logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: shapetable [flags] <path or URL>\n\n")
		fmt.Fprintf(stderr, "Examples:\n")
		fmt.Fprintf(stderr, "  shapetable -header data.csv\n")
		fmt.Fprintf(stderr, "  shapetable -header -cols name,age -format json https://example.com/people.csv\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	source := fs.Arg(0)

	logger := newLogger(stderr, *verbose)

	sep, err := parseSeparator(*sepName)
	if err != nil {
		logger.Error().Err(err).Msg("invalid -sep value")
		return 2
	}

	opts := table.DefaultOptions()
	opts.Separator = sep
	opts.Header = *header
	opts.StrictQuotes = *strict
	opts.KeepBlankRows = *keepBlank

	client := fetch.New(fetch.Options{
		Logger:         logger,
		MaxElapsedTime: *timeout,
	})

	tbl, err := client.LoadTable(ctx, source, opts)
	if err != nil {
		logLoadError(logger, source, err)
		return 1
	}
	logger.Debug().Int("rows", tbl.RowCount()).Int("columns", tbl.ColumnCount()).Msg("loaded table")

	if *cols != "" {
		selected, ok := tbl.Select(splitColumns(*cols)...)
		if !ok {
			logger.Error().Str("cols", *cols).Strs("available", tbl.Columns()).Msg("unknown column in -cols")
			return 1
		}
		tbl = selected
	}

	out, err := render(tbl, *format, path.Base(source))
	if err != nil {
		logger.Error().Err(err).Msg("failed to render table")
		return 1
	}

	fmt.Fprint(stdout, out)
	return 0
}

// newLogger builds a console logger on stderr. Warnings and errors only,
// unless verbose is set.
func newLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.TimeFormat = "15:04:05"
	})
	return zerolog.New(cw).With().Timestamp().Logger().Level(level)
}

// parseSeparator maps a -sep value to a separator rune. Zero means detect
// from the resource.
func parseSeparator(name string) (rune, error) {
	switch name {
	case "auto":
		return 0, nil
	case "comma":
		return ',', nil
	case "tab":
		return '\t', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if r := []rune(name); len(r) == 1 {
		return r[0], nil
	}
	return 0, fmt.Errorf("unknown separator %q", name)
}

func splitColumns(list string) []string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// render formats the table for output. The pretty format prints nothing
// for a table with no data rows.
func render(tbl *table.Table, format, title string) (string, error) {
	switch format {
	case "pretty":
		return renderPretty(tbl, title), nil
	case "csv":
		return tbl.CSV()
	case "tsv":
		return tbl.TSV()
	case "json":
		data, err := json.MarshalIndent(tbl, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

func renderPretty(tbl *table.Table, title string) string {
	grid := textfmt.Table{Title: title, WithHeader: true}
	grid.AddRow(tbl.Columns()...)
	for _, row := range tbl.Rows() {
		grid.AddRow(row.Fields()...)
	}
	return grid.String()
}

// logLoadError reports a load failure with the failure class spelled out
// so scripts get a useful message on stderr.
func logLoadError(logger zerolog.Logger, source string, err error) {
	var statusErr *fetch.StatusError
	var parseErr *table.ParseError

	switch {
	case errors.As(err, &statusErr):
		logger.Error().Int("status", statusErr.StatusCode).Str("url", statusErr.URL).Msg("failed to retrieve resource")
	case errors.As(err, &parseErr):
		logger.Error().Int("line", parseErr.Line).Int("column", parseErr.Column).Err(parseErr.Err).Str("source", source).Msg("failed to parse resource")
	default:
		logger.Error().Err(err).Str("source", source).Msg("failed to load table")
	}
}
