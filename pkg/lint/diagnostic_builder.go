package lint

import "github.com/yaklabco/adoclint/pkg/config"

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts building a diagnostic at a line of a file.
func NewDiagnosticAt(checkerID, filePath string, line int, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			CheckerID: checkerID,
			FilePath:  filePath,
			Line:      line,
			Message:   message,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithColumn sets the 1-based column.
func (b *DiagnosticBuilder) WithColumn(col int) *DiagnosticBuilder {
	b.diag.Column = col
	return b
}

// WithOffset sets the 0-based word offset.
func (b *DiagnosticBuilder) WithOffset(offset int) *DiagnosticBuilder {
	b.diag.Offset = offset
	return b
}

// WithCategory sets the category and the reported subject.
func (b *DiagnosticBuilder) WithCategory(category, subject string) *DiagnosticBuilder {
	b.diag.Category = category
	b.diag.Subject = subject
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithSource records the raw line text.
func (b *DiagnosticBuilder) WithSource(text string) *DiagnosticBuilder {
	b.diag.Source = text
	return b
}

// WithCause attaches failed sentence conditions.
func (b *DiagnosticBuilder) WithCause(cause SentenceCause) *DiagnosticBuilder {
	b.diag.Cause = &cause
	return b
}

// WithImage attaches an image finding.
func (b *DiagnosticBuilder) WithImage(finding ImageFinding) *DiagnosticBuilder {
	b.diag.Image = &finding
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
