package pretty

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// sourceIndent aligns source context under the diagnostic line.
const sourceIndent = "        "

// sentenceBreakRE matches the words on either side of a sentence boundary.
//
//nolint:gochecknoglobals // Compiled pattern is read-only.
var sentenceBreakRE = regexp.MustCompile(`[^.?!\s]+[.?!]\s+[^.?!\s]+`)

// FormatDiagnostic formats a single diagnostic for terminal output.
// Uses ID format for checker identifiers.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, config.CheckFormatID, 0)
}

// FormatDiagnosticWithFormat formats a diagnostic with a configurable
// checker identifier format. Source lines wider than width are truncated;
// a width of 0 disables truncation.
func (s *Styles) FormatDiagnosticWithFormat(
	diag *lint.Diagnostic,
	showContext bool,
	checkFormat config.CheckFormat,
	width int,
) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		s.FormatLocation(diag),
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.CheckID.Render("("+config.FormatCheckID(checkFormat, diag.CheckerID, diag.CheckerName)+")"),
	))

	if showContext && diag.Source != "" {
		if diag.Cause != nil && diag.Cause.Any() {
			builder.WriteString(s.FormatSentenceContext(diag.Source, *diag.Cause, width))
		} else {
			builder.WriteString(s.FormatSourceContext(diag.Source, diag.Column, width))
		}
	}

	if diag.Image != nil && diag.Image.Resolved != "" && diag.Image.Resolved != diag.FilePath {
		builder.WriteString("    " + s.Dim.Render("Resolved:") + " " + diag.Image.Resolved + "\n")
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatLocation renders path:line:col, dropping parts that are not set.
func (s *Styles) FormatLocation(diag *lint.Diagnostic) string {
	location := s.FilePath.Render(diag.FilePath)
	if diag.Line > 0 {
		location += fmt.Sprintf(":%d", diag.Line)
		if diag.Column > 0 {
			location += fmt.Sprintf(":%d", diag.Column)
		}
	}
	return location
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with the word at column
// highlighted and a caret marker beneath it.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	runes := []rune(strings.ReplaceAll(line, "\t", " "))
	limit := contextLimit(len(runes), width)

	var builder strings.Builder
	builder.WriteString(sourceIndent)

	start := column - 1
	if column > 0 && start < limit {
		end := start
		for end < limit && !unicode.IsSpace(runes[end]) {
			end++
		}
		builder.WriteString(s.SourceLine.Render(string(runes[:start])))
		builder.WriteString(s.Highlight.Render(string(runes[start:end])))
		builder.WriteString(s.SourceLine.Render(string(runes[end:limit])))
		builder.WriteString("\n")
		builder.WriteString(sourceIndent + strings.Repeat(" ", start) + s.Caret.Render("^") + "\n")
		return builder.String()
	}

	builder.WriteString(s.SourceLine.Render(string(runes[:limit])) + "\n")
	return builder.String()
}

// FormatSentenceContext formats the source line with the words at each failed
// sentence boundary highlighted and underlined: the first word for start,
// the last word for end and the words around the first break for mid.
func (s *Styles) FormatSentenceContext(source string, cause lint.SentenceCause, width int) string {
	runes := []rune(strings.ReplaceAll(source, "\t", " "))
	limit := contextLimit(len(runes), width)

	var spans []span
	for _, sp := range sentenceSpans(runes, cause) {
		if sp.start < limit {
			spans = append(spans, span{start: sp.start, end: min(sp.end, limit)})
		}
	}
	if len(spans) == 0 {
		return sourceIndent + s.SourceLine.Render(string(runes[:limit])) + "\n"
	}

	var text, marks strings.Builder
	text.WriteString(sourceIndent)
	marks.WriteString(sourceIndent)

	pos := 0
	for _, sp := range spans {
		text.WriteString(s.SourceLine.Render(string(runes[pos:sp.start])))
		text.WriteString(s.Highlight.Render(string(runes[sp.start:sp.end])))
		marks.WriteString(strings.Repeat(" ", sp.start-pos))
		marks.WriteString(s.Caret.Render(strings.Repeat("^", sp.end-sp.start)))
		pos = sp.end
	}
	text.WriteString(s.SourceLine.Render(string(runes[pos:limit])))

	return text.String() + "\n" + marks.String() + "\n"
}

// span is a half-open range of rune columns.
type span struct {
	start, end int
}

// sentenceSpans returns the ordered, non-overlapping ranges to highlight
// for cause.
func sentenceSpans(runes []rune, cause lint.SentenceCause) []span {
	var spans []span

	if cause.Start {
		if sp, ok := firstWord(runes); ok {
			spans = append(spans, sp)
		}
	}
	if cause.Mid {
		text := string(runes)
		if loc := sentenceBreakRE.FindStringIndex(text); loc != nil {
			start := utf8.RuneCountInString(text[:loc[0]])
			spans = append(spans, span{start: start, end: start + utf8.RuneCountInString(text[loc[0]:loc[1]])})
		}
	}
	if cause.End {
		if sp, ok := lastWord(runes); ok {
			spans = append(spans, sp)
		}
	}

	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })

	merged := spans[:0]
	for _, sp := range spans {
		if n := len(merged); n > 0 && sp.start <= merged[n-1].end {
			merged[n-1].end = max(merged[n-1].end, sp.end)
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

func firstWord(runes []rune) (span, bool) {
	start := 0
	for start < len(runes) && unicode.IsSpace(runes[start]) {
		start++
	}
	if start == len(runes) {
		return span{}, false
	}
	end := start
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	return span{start: start, end: end}, true
}

func lastWord(runes []rune) (span, bool) {
	end := len(runes)
	for end > 0 && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if end == 0 {
		return span{}, false
	}
	start := end
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	return span{start: start, end: end}, true
}

// contextLimit returns how many runes of a source line fit in width.
func contextLimit(n, width int) int {
	if width > 0 && width-len(sourceIndent) < n {
		return max(width-len(sourceIndent), 0)
	}
	return n
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
