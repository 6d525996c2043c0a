package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
)

// DocumentResult contains the results of checking a single document.
type DocumentResult struct {
	// Document is the checked document.
	Document *adoc.Document

	// Diagnostics contains all issues found, sorted by line.
	Diagnostics []Diagnostic
}

// HasIssues returns true if any diagnostics were found.
func (dr *DocumentResult) HasIssues() bool {
	return len(dr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (dr *DocumentResult) IssueCount() int {
	return len(dr.Diagnostics)
}

// CountBySeverity returns the number of diagnostics with the given severity.
func (dr *DocumentResult) CountBySeverity(sev config.Severity) int {
	count := 0
	for _, d := range dr.Diagnostics {
		if d.Severity == sev {
			count++
		}
	}
	return count
}

// Engine coordinates checker execution.
type Engine struct {
	// Registry holds all available checkers.
	Registry *Registry
}

// NewEngine creates a new Engine with the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// LintDocument runs every enabled checker over one document. Each checker
// sees the document through its own tracker. A checker error aborts the
// document.
func (e *Engine) LintDocument(
	ctx context.Context,
	doc *adoc.Document,
	cfg *config.Config,
	run *RunState,
) (*DocumentResult, error) {
	logger := logging.FromContext(ctx)
	result := &DocumentResult{Document: doc}

	for _, rc := range ResolveCheckers(e.Registry, cfg) {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		if filter, ok := rc.Checker.(DocumentFilter); ok && !filter.Accepts(doc, run) {
			logger.Debug("checker does not apply",
				logging.FieldChecker, rc.Checker.ID(),
				logging.FieldPath, doc.Path)
			continue
		}

		checkCtx := NewCheckContext(ctx, doc, cfg, rc.Config, run)
		diags, err := rc.Checker.Check(checkCtx)
		if err != nil {
			return result, fmt.Errorf("%s %s: %w", rc.Checker.ID(), doc.Path, err)
		}

		result.Diagnostics = append(result.Diagnostics, finalize(diags, rc, doc.Path)...)
	}

	SortDiagnostics(result.Diagnostics)
	return result, nil
}

// Finish runs the Finish hook of every enabled Finisher checker.
func (e *Engine) Finish(ctx context.Context, cfg *config.Config, run *RunState) ([]Diagnostic, error) {
	var all []Diagnostic

	for _, rc := range ResolveCheckers(e.Registry, cfg) {
		finisher, ok := rc.Checker.(Finisher)
		if !ok {
			continue
		}

		diags, err := finisher.Finish(ctx, run)
		if err != nil {
			return nil, fmt.Errorf("%s finish: %w", rc.Checker.ID(), err)
		}
		all = append(all, finalize(diags, rc, "")...)
	}

	SortDiagnostics(all)
	return all, nil
}

// finalize fills in checker identity, file path and severity.
func finalize(diags []Diagnostic, rc ResolvedChecker, path string) []Diagnostic {
	for idx := range diags {
		d := &diags[idx]
		if rc.Override || d.Severity == "" {
			d.Severity = rc.Severity
		}
		if d.FilePath == "" {
			d.FilePath = path
		}
		if d.CheckerID == "" {
			d.CheckerID = rc.Checker.ID()
		}
		if d.CheckerName == "" {
			d.CheckerName = rc.Checker.Name()
		}
	}
	return diags
}
