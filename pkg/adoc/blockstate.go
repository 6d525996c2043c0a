package adoc

import (
	"regexp"
	"strings"
)

// Kind identifies the structural context of a line.
type Kind int

// Line kinds produced by Classify.
const (
	KindProse Kind = iota
	KindSource
	KindComment
	KindHeading
	KindAttribute
	KindListContinuation
	KindTableDelimiter
	KindTableCell
	KindBlockDelimiter
	KindBlockTitle
	KindListItem
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindProse:
		return "prose"
	case KindSource:
		return "source"
	case KindComment:
		return "comment"
	case KindHeading:
		return "heading"
	case KindAttribute:
		return "attribute"
	case KindListContinuation:
		return "list-continuation"
	case KindTableDelimiter:
		return "table-delimiter"
	case KindTableCell:
		return "table-cell"
	case KindBlockDelimiter:
		return "block-delimiter"
	case KindBlockTitle:
		return "block-title"
	case KindListItem:
		return "list-item"
	default:
		return "unknown"
	}
}

// commentFence is the delimiter recorded for an open comment block.
const commentFence = '/'

// BlockState is the tracker state carried from one line to the next.
//
// Only Source and comment blocks persist across lines; every other kind
// describes a single line and behaves like Prose for the line after it.
type BlockState struct {
	Kind Kind

	// Delimiter is the fence character that closes the open block, or zero
	// for a source block opened by an attribute line without a fence yet.
	Delimiter byte
}

// Literal reports whether the state is inside a source block.
func (s BlockState) Literal() bool {
	return s.Kind == KindSource
}

// InCommentBlock reports whether the state is inside a //// comment block.
func (s BlockState) InCommentBlock() bool {
	return s.Kind == KindComment && s.Delimiter == commentFence
}

// Opaque reports whether the line carries no prose or macros at all:
// source content and comments.
func (s BlockState) Opaque() bool {
	return s.Kind == KindSource || s.Kind == KindComment
}

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	sourceAttrRE   = regexp.MustCompile(`^\[(?:source|shell|verbatim)[^\]]*\]\s*$`)
	fenceRE        = regexp.MustCompile(`^(?:-+|=+|\.{4,})$`)
	listingFenceRE = regexp.MustCompile(`^(?:-{4,}|\.{4,})$`)
	commentFenceRE = regexp.MustCompile(`^/{4,}$`)
	vimModelineRE  = regexp.MustCompile(`//\s*vim:`)
	headingRE      = regexp.MustCompile(`^=+ (?:[0-9{]|[A-Z]|[a-z][A-Z]).+$`)
	blockTitleRE   = regexp.MustCompile(`^\.[A-Z]`)
	attrDefRE      = regexp.MustCompile(`^:[^:]+:`)
	continuationRE = regexp.MustCompile(`^\+\s*$`)
	tableDelimRE   = regexp.MustCompile(`^[|!]===+\s*$`)
	blockDelimRE   = regexp.MustCompile(`^====+\s*$`)
	tableCellRE    = regexp.MustCompile(`^(?:\d+\+)?[|!](?:\s+|$)`)
	listMacroRE    = regexp.MustCompile(`^[.*-]+\s*` + longMacroNames + `:[^\[]+\[[^\]]*\]$`)
	listEmptyRE    = regexp.MustCompile(`^[.*-]+\s*\{empty\}$`)
)

// Classify returns the state after line and whether the line should be
// excluded from prose analysis. It is a pure function; callers fold it over
// a document's lines strictly top to bottom.
func Classify(prev BlockState, line string) (BlockState, bool) {
	switch {
	case prev.Literal():
		return classifySource(prev, line)
	case prev.InCommentBlock():
		if commentFenceRE.MatchString(strings.TrimRight(line, " \t")) {
			return BlockState{Kind: KindProse}, true
		}
		return prev, true
	}

	trimmed := strings.TrimRight(line, " \t")

	switch {
	case sourceAttrRE.MatchString(line):
		return BlockState{Kind: KindSource}, true
	case listingFenceRE.MatchString(trimmed):
		return BlockState{Kind: KindSource, Delimiter: trimmed[0]}, true
	case commentFenceRE.MatchString(trimmed):
		return BlockState{Kind: KindComment, Delimiter: commentFence}, true
	case vimModelineRE.MatchString(line), strings.HasPrefix(line, "//"):
		return BlockState{Kind: KindComment}, true
	case headingRE.MatchString(line):
		return BlockState{Kind: KindHeading}, true
	case blockTitleRE.MatchString(line):
		return BlockState{Kind: KindBlockTitle}, true
	case strings.HasPrefix(line, "["), attrDefRE.MatchString(line):
		return BlockState{Kind: KindAttribute}, true
	case continuationRE.MatchString(line):
		return BlockState{Kind: KindListContinuation}, true
	case tableDelimRE.MatchString(line):
		return BlockState{Kind: KindTableDelimiter}, true
	case blockDelimRE.MatchString(line):
		return BlockState{Kind: KindBlockDelimiter}, true
	case tableCellRE.MatchString(line):
		return BlockState{Kind: KindTableCell}, true
	case listMacroRE.MatchString(line), listEmptyRE.MatchString(line):
		return BlockState{Kind: KindListItem}, true
	}

	return BlockState{Kind: KindProse}, false
}

// classifySource handles a line inside a source block. Fences match by
// character only: the first fence seen sets the delimiter and any later
// fence of the same character closes the block.
func classifySource(prev BlockState, line string) (BlockState, bool) {
	trimmed := strings.TrimRight(line, " \t")

	if fenceRE.MatchString(trimmed) {
		char := trimmed[0]
		if prev.Delimiter == 0 {
			return BlockState{Kind: KindSource, Delimiter: char}, true
		}
		if prev.Delimiter == char {
			return BlockState{Kind: KindProse}, true
		}
	}

	if prev.Delimiter == 0 && trimmed == "" {
		return BlockState{Kind: KindProse}, false
	}

	return prev, true
}

// Tracker folds Classify over a document's lines.
type Tracker struct {
	state BlockState
}

// NewTracker returns a tracker positioned before the first line.
func NewTracker() *Tracker {
	return &Tracker{state: BlockState{Kind: KindProse}}
}

// Next classifies line, advances the tracker and reports whether the line
// should be skipped.
func (t *Tracker) Next(line string) (BlockState, bool) {
	next, skip := Classify(t.state, line)
	t.state = next
	return next, skip
}
