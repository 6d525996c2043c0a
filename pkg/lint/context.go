package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/images"
	"github.com/yaklabco/adoclint/pkg/ruletable"
)

// RunState is shared by every checker invocation of a single run.
type RunState struct {
	// Tables is the rule table in effect.
	Tables *ruletable.Tables

	// Images is the image catalog of the content tree. Nil disables image
	// checks.
	Images *images.Catalog

	// Prober reads image dimensions from the content tree.
	Prober *images.Prober

	// Repeats lists the lowercase words allowed to repeat.
	Repeats map[string]bool

	// ReportPath maps a content-tree path to the path shown in reports.
	// Nil reports content-tree paths unchanged.
	ReportPath func(logical string) string
}

// NewRunState builds the run state for a rule table and configuration.
// A configured repeats map replaces the table's allow-list entirely.
func NewRunState(tables *ruletable.Tables, cfg *config.Config) *RunState {
	run := &RunState{Tables: tables}

	var allowed map[string]bool
	if cfg != nil {
		allowed = cfg.AllowedRepeats()
	}
	if allowed == nil {
		allowed = make(map[string]bool)
		if tables != nil {
			for _, word := range tables.Repeats {
				allowed[strings.ToLower(word)] = true
			}
		}
	} else {
		lowered := make(map[string]bool, len(allowed))
		for word := range allowed {
			lowered[strings.ToLower(word)] = true
		}
		allowed = lowered
	}
	run.Repeats = allowed

	return run
}

// AllowedRepeat reports whether word may appear twice in a row.
func (rs *RunState) AllowedRepeat(word string) bool {
	return rs.Repeats[strings.ToLower(word)]
}

// Report maps a content-tree path for reporting.
func (rs *RunState) Report(logical string) string {
	if rs.ReportPath == nil {
		return logical
	}
	return rs.ReportPath(logical)
}

// CheckContext provides everything a checker needs to check one document.
//
// CheckContext is a short-lived parameter object created per checker
// invocation, so it carries the context.Context as a field.
type CheckContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Document is the document being checked.
	Document *adoc.Document

	// Config is the resolved configuration.
	Config *config.Config

	// CheckConfig is the checker-specific configuration (may be nil).
	CheckConfig *config.CheckConfig

	// Run is the state shared across the run.
	Run *RunState
}

// NewCheckContext creates a CheckContext for the given document.
func NewCheckContext(
	ctx context.Context,
	doc *adoc.Document,
	cfg *config.Config,
	checkCfg *config.CheckConfig,
	run *RunState,
) *CheckContext {
	return &CheckContext{
		Ctx:         ctx,
		Document:    doc,
		Config:      cfg,
		CheckConfig: checkCfg,
		Run:         run,
	}
}

// Cancelled returns true if the context has been cancelled.
func (cc *CheckContext) Cancelled() bool {
	select {
	case <-cc.Ctx.Done():
		return true
	default:
		return false
	}
}

// LineFunc is called for every line of a document with the tracker state
// after that line and whether the line is excluded from prose analysis.
type LineFunc func(line adoc.Line, state adoc.BlockState, skip bool) error

// Walk runs a fresh block-state tracker over the document, top to bottom.
func (cc *CheckContext) Walk(fn LineFunc) error {
	logger := logging.FromContext(cc.Ctx)
	tracker := adoc.NewTracker()

	for _, line := range cc.Document.Lines {
		if cc.Cancelled() {
			return fmt.Errorf("walk %s: %w", cc.Document.Path, cc.Ctx.Err())
		}

		state, skip := tracker.Next(line.Text)
		if skip {
			logger.Debug("skipping line",
				logging.FieldPath, cc.Document.Path,
				logging.FieldLine, line.Number,
				logging.FieldKind, state.Kind.String())
		}

		if err := fn(line, state, skip); err != nil {
			return err
		}
	}
	return nil
}
