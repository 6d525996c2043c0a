// Package adoc provides the line-oriented view of Asciidoc documents used by
// the checkers: an immutable Document, the block-state tracker that classifies
// each line's structural context, and the markup normalizer that reduces a
// line to its prose.
package adoc

import (
	"path/filepath"
	"strings"
)

// Line is a single source line of a Document.
type Line struct {
	// Number is the 1-based line number.
	Number int

	// Text is the raw line content without its line terminator.
	Text string
}

// Document is an immutable, line-split view of an Asciidoc file.
type Document struct {
	// Path identifies the document in reports.
	Path string

	// LogicalPath is the slash-separated path of the document inside its
	// content tree. It is used to locate the document's module. Defaults to
	// Path when the document was not read from a content tree.
	LogicalPath string

	// Lines holds every line of the document, in order.
	Lines []Line
}

// NewDocument splits content into lines. Both LF and CRLF terminators are
// accepted. A final terminator does not produce an extra empty line.
func NewDocument(path string, content []byte) *Document {
	return &Document{
		Path:        path,
		LogicalPath: filepath.ToSlash(path),
		Lines:       splitLines(string(content)),
	}
}

// WithLogicalPath returns a copy of the document with its logical path set.
func (d *Document) WithLogicalPath(logical string) *Document {
	clone := *d
	clone.LogicalPath = filepath.ToSlash(logical)
	return &clone
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineText returns the raw text of a 1-based line number.
// Returns false if the line number is out of range.
func (d *Document) LineText(number int) (string, bool) {
	if number < 1 || number > len(d.Lines) {
		return "", false
	}
	return d.Lines[number-1].Text, true
}

// Base returns the final element of the document's logical path.
func (d *Document) Base() string {
	idx := strings.LastIndexByte(d.LogicalPath, '/')
	return d.LogicalPath[idx+1:]
}

func splitLines(content string) []Line {
	if content == "" {
		return []Line{}
	}

	parts := strings.Split(content, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	lines := make([]Line, len(parts))
	for idx, part := range parts {
		lines[idx] = Line{
			Number: idx + 1,
			Text:   strings.TrimSuffix(part, "\r"),
		}
	}
	return lines
}
