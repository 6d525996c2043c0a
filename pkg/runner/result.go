package runner

import (
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// FileOutcome is the lint result for one reported path.
type FileOutcome struct {
	// Path is the path diagnostics are reported against, relative to the
	// working directory when possible.
	Path string

	// Result contains the diagnostics for this path. Result.Document is nil
	// for paths that only carry end-of-run diagnostics, such as unreferenced
	// images.
	Result *lint.DocumentResult
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of documents found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of documents linted.
	FilesProcessed int

	// FilesSkipped is the number of remote documents skipped.
	FilesSkipped int

	// FilesWithIssues is the number of reported paths with at least one
	// diagnostic.
	FilesWithIssues int

	// ImagesScanned is the number of images found in the content tree.
	ImagesScanned int

	// DiagnosticsTotal is the total number of diagnostics.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each reported path, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any diagnostics with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every diagnostic of the run in report order.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}
	var all []lint.Diagnostic
	for _, outcome := range r.Files {
		if outcome.Result != nil {
			all = append(all, outcome.Result.Diagnostics...)
		}
	}
	return all
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Result == nil {
		return
	}
	if outcome.Result.Document != nil {
		r.Stats.FilesProcessed++
	}

	diagCount := len(outcome.Result.Diagnostics)
	r.Stats.DiagnosticsTotal += diagCount
	if diagCount > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range outcome.Result.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityError)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
