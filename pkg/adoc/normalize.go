package adoc

import (
	"regexp"
	"strings"
)

// longMacroNames matches the inline macros whose bracketed attribute list is
// a caption.
const longMacroNames = `(?:audio|footnote|https?|icon|link|mailto|menu|pass|video|xref)`

// Placeholder text substituted for constructs whose caption is implicit.
const (
	XrefPlaceholder  = "Xref"
	TitlePlaceholder = "Title"
)

// Rewrite is a named pattern replacement. Every match in the line is
// rewritten.
type Rewrite struct {
	Name    string
	Pattern *regexp.Regexp

	// Replace computes the replacement from the submatches of one match.
	Replace func(groups []string) string
}

// Apply rewrites every match of the pattern in text.
func (r Rewrite) Apply(text string) string {
	return r.Pattern.ReplaceAllStringFunc(text, func(match string) string {
		return r.Replace(r.Pattern.FindStringSubmatch(match))
	})
}

// Pipeline is an ordered set of rewrites applied once, left to right.
type Pipeline []Rewrite

// Apply runs every rewrite in order.
func (p Pipeline) Apply(text string) string {
	for _, rewrite := range p {
		text = rewrite.Apply(text)
	}
	return text
}

// Names lists the rewrite names in order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for idx, rewrite := range p {
		names[idx] = rewrite.Name
	}
	return names
}

func literal(s string) func([]string) string {
	return func([]string) string { return s }
}

func group(n int) func([]string) string {
	return func(groups []string) string { return groups[n] }
}

// Individual rewrites, in the order the views apply them.
//
//nolint:gochecknoglobals // Rewrites are immutable after init.
var (
	ListMarker = Rewrite{
		Name:    "list-marker",
		Pattern: regexp.MustCompile(`^\s*[.*-]+\s+`),
		Replace: literal(""),
	}
	LineBreak = Rewrite{
		Name:    "line-break",
		Pattern: regexp.MustCompile(` \+$`),
		Replace: literal(""),
	}
	LocalPath = Rewrite{
		Name:    "local-path",
		Pattern: regexp.MustCompile(`\./`),
		Replace: literal("/"),
	}
	XrefPlain = Rewrite{
		Name:    "xref-plain",
		Pattern: regexp.MustCompile(`<<[^,>]+>>`),
		Replace: literal(XrefPlaceholder),
	}
	XrefTitled = Rewrite{
		Name:    "xref-titled",
		Pattern: regexp.MustCompile(`<<[^,>]+,\s*([^>]+)>>`),
		Replace: group(1),
	}
	ImageMacro = Rewrite{
		Name:    "image",
		Pattern: regexp.MustCompile(`image::?[^\[\s]*\[[^\]]*(?:\]|$)`),
		Replace: literal(""),
	}
	LongMacro = Rewrite{
		Name:    "long-macro",
		Pattern: regexp.MustCompile(longMacroNames + `:[^\[\s]*\[([^\]]*)\]`),
		Replace: func(groups []string) string {
			if groups[1] == "" {
				return TitlePlaceholder
			}
			return groups[1]
		},
	}
	BareLink = Rewrite{
		Name:    "bare-link",
		Pattern: regexp.MustCompile(`(?:https?|ftps?)://[^\s\[\]]*[^\s\[\].,;:!?)]`),
		Replace: literal(""),
	}
	ShortMacro = Rewrite{
		Name:    "short-macro",
		Pattern: regexp.MustCompile(`(?:btn|kbd|pass):\[([^\]]*)\]`),
		Replace: group(1),
	}
	Monospace = Rewrite{
		Name:    "monospace",
		Pattern: regexp.MustCompile("`[^`]+`"),
		Replace: literal(""),
	}
)

// Normalizer views.
//
//nolint:gochecknoglobals // Pipelines are immutable after init.
var (
	// ProseView is the full prose normalization used for sentence checks.
	ProseView = Pipeline{
		ListMarker, LineBreak, LocalPath, XrefPlain, XrefTitled,
		ImageMacro, LongMacro, BareLink, ShortMacro,
	}

	// StyleView is ProseView with inline monospace spans removed.
	StyleView = append(append(Pipeline{}, ProseView...), Monospace)

	// MacroView only resolves inline macros.
	MacroView = Pipeline{ImageMacro, LongMacro, ShortMacro}
)

// IsBlank reports whether a normalized line has nothing left to analyze.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
