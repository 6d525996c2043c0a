package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	CheckerID   string     `json:"checkerId"`
	CheckerName string     `json:"checkerName"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	Line        int        `json:"line"`
	Column      int        `json:"column"`
	Offset      int        `json:"offset"`
	Category    string     `json:"category,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	Suggestion  string     `json:"suggestion,omitempty"`
	Source      string     `json:"source,omitempty"`
	Cause       *JSONCause `json:"cause,omitempty"`
	Image       *JSONImage `json:"image,omitempty"`
}

// JSONCause lists the failed sentence-boundary conditions.
type JSONCause struct {
	Start bool `json:"start"`
	End   bool `json:"end"`
	Mid   bool `json:"mid"`
}

// JSONImage describes an image finding.
type JSONImage struct {
	Target          string `json:"target,omitempty"`
	Resolved        string `json:"resolved,omitempty"`
	Missing         bool   `json:"missing,omitempty"`
	SpecifiedWidth  int    `json:"specifiedWidth,omitempty"`
	SpecifiedHeight int    `json:"specifiedHeight,omitempty"`
	ActualWidth     int    `json:"actualWidth,omitempty"`
	ActualHeight    int    `json:"actualHeight,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesSkipped    int            `json:"filesSkipped"`
	ImagesScanned   int            `json:"imagesScanned"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Summary.FilesChecked = result.Stats.FilesProcessed
	output.Summary.FilesSkipped = result.Stats.FilesSkipped
	output.Summary.ImagesScanned = result.Stats.ImagesScanned

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        file.Path,
			Diagnostics: make([]JSONDiagnostic, 0),
		}

		if file.Result != nil {
			for _, diag := range file.Result.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, toJSONDiagnostic(diag))
				output.Summary.TotalIssues++

				severity := string(diag.Severity)
				if severity == "" {
					severity = string(config.SeverityError)
				}
				output.Summary.BySeverity[severity]++
			}
		}

		if len(fileResult.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		output.Files = append(output.Files, fileResult)
	}

	return output
}

func toJSONDiagnostic(diag lint.Diagnostic) JSONDiagnostic {
	out := JSONDiagnostic{
		CheckerID:   diag.CheckerID,
		CheckerName: diag.CheckerName,
		Severity:    string(diag.Severity),
		Message:     diag.Message,
		Line:        diag.Line,
		Column:      diag.Column,
		Offset:      diag.Offset,
		Category:    diag.Category,
		Subject:     diag.Subject,
		Suggestion:  diag.Suggestion,
		Source:      diag.Source,
	}

	if diag.Cause != nil {
		out.Cause = &JSONCause{Start: diag.Cause.Start, End: diag.Cause.End, Mid: diag.Cause.Mid}
	}

	if img := diag.Image; img != nil {
		out.Image = &JSONImage{
			Target:          img.Target,
			Resolved:        img.Resolved,
			Missing:         img.Missing,
			SpecifiedWidth:  img.SpecifiedWidth,
			SpecifiedHeight: img.SpecifiedHeight,
			ActualWidth:     img.ActualWidth,
			ActualHeight:    img.ActualHeight,
		}
	}

	return out
}
