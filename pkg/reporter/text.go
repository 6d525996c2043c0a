package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)

	width := opts.Width
	if width == 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}

	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		if file.Result == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		diagnostics := file.Result.Diagnostics
		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(diagnostics)))
		}

		for idx := range diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(
				&diagnostics[idx], r.opts.ShowContext, r.opts.CheckFormat, r.width))
			total++
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
	}

	switch {
	case r.opts.ShowSummary && r.opts.DetailedSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	case r.opts.ShowSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
