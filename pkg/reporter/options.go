package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/adoclint/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the source line, with the offending word
	// highlighted, under each diagnostic.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// DetailedSummary replaces the one-line summary with a block listing
	// files, images and counts by severity.
	DetailedSummary bool

	// GroupByFile groups diagnostics by file (default: true for text format).
	GroupByFile bool

	// Compact uses minified JSON output.
	Compact bool

	// CheckFormat controls how checker identifiers appear in output.
	CheckFormat config.CheckFormat

	// Width truncates source context lines. 0 uses the terminal width when
	// Writer is a terminal and no limit otherwise.
	Width int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
		CheckFormat: config.CheckFormatName,
	}
}
