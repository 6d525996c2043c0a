// Package lint provides the checker engine, diagnostics, and registry for adoclint.
package lint

import (
	"cmp"
	"context"
	"slices"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
)

// Diagnostic represents a single lint issue found in a document.
type Diagnostic struct {
	// CheckerID is the identifier of the checker that produced this diagnostic.
	CheckerID string

	// CheckerName is the human-readable name of the checker (e.g., "repeated-words").
	CheckerName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Line is the 1-based line number, or 0 for findings about the content
	// tree rather than a line.
	Line int

	// Column is the 1-based column of the offending text, or 0 when unknown.
	Column int

	// Offset is the 0-based index of the offending token among the line's
	// words, where the checker works on word positions.
	Offset int

	// Category groups style findings (e.g., "Simplify", "Mechanics").
	Category string

	// Subject is the offending text as reported (e.g., "ALTERNATIVELY").
	Subject string

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// Source is the raw line text.
	Source string

	// Cause describes which sentence-boundary conditions failed.
	Cause *SentenceCause

	// Image describes a missing or mis-sized image.
	Image *ImageFinding
}

// SentenceCause records which ventilated-prose conditions a line violates.
type SentenceCause struct {
	Start bool
	End   bool
	Mid   bool
}

// Labels returns the names of the failed conditions in start, end, mid order.
func (c SentenceCause) Labels() []string {
	var labels []string
	if c.Start {
		labels = append(labels, "start")
	}
	if c.End {
		labels = append(labels, "end")
	}
	if c.Mid {
		labels = append(labels, "mid")
	}
	return labels
}

// Any reports whether at least one condition failed.
func (c SentenceCause) Any() bool {
	return c.Start || c.End || c.Mid
}

// ImageFinding describes an image reference problem.
type ImageFinding struct {
	// Target is the image target as written in the macro.
	Target string

	// Resolved is the content-tree path the target resolved to.
	Resolved string

	// Missing is true when no image exists at Resolved.
	Missing bool

	SpecifiedWidth  int
	SpecifiedHeight int
	ActualWidth     int
	ActualHeight    int
}

// SortDiagnostics orders diagnostics by file, then line. The sort is stable,
// so findings on the same line keep their emission order.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.FilePath, b.FilePath); c != 0 {
			return c
		}
		return cmp.Compare(a.Line, b.Line)
	})
}

// Checker defines the interface that all checkers must implement.
type Checker interface {
	// ID returns the unique identifier for this checker (e.g., "ADL001").
	ID() string

	// Name returns the human-readable name of the checker.
	Name() string

	// Description returns a detailed description of what the checker reports.
	Description() string

	// DefaultEnabled returns whether the checker is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the severity used for diagnostics that do not
	// set one.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this checker.
	Tags() []string

	// Check runs the checker against one document.
	//
	// Checkers must:
	//   - Return diagnostics for each violation found.
	//   - Respect context cancellation.
	//   - Return error only for internal failures, not violations.
	Check(cc *CheckContext) ([]Diagnostic, error)
}

// DocumentFilter is implemented by checkers that only apply to some documents.
type DocumentFilter interface {
	Accepts(doc *adoc.Document, run *RunState) bool
}

// Finisher is implemented by checkers that report findings once all
// documents have been checked.
type Finisher interface {
	Finish(ctx context.Context, run *RunState) ([]Diagnostic, error)
}
