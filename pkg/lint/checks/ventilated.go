package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// navFile is the Antora navigation file, which holds lists rather than prose.
const navFile = "nav.adoc"

//nolint:gochecknoglobals // Compiled pattern is read-only.
var sentenceStartRE = regexp.MustCompile("^\\s*(?:[0-9{\\\\*_`]|\\p{Lu}|\\p{Ll}\\p{Lu}).+$")

// sentenceEnd lists the characters a sentence line may end with.
const sentenceEnd = ".?!:)`*_"

// VentilatedChecker reports lines that do not hold exactly one sentence.
type VentilatedChecker struct {
	lint.BaseChecker
}

// NewVentilatedChecker creates the ventilated-prose checker.
func NewVentilatedChecker() *VentilatedChecker {
	return &VentilatedChecker{
		BaseChecker: lint.NewBaseChecker(
			VentilatedID,
			"ventilated-prose",
			"Each prose line holds one complete sentence",
			[]string{"style", "sentences"},
			config.SeverityError,
		),
	}
}

// Accepts skips navigation files.
func (c *VentilatedChecker) Accepts(doc *adoc.Document, _ *lint.RunState) bool {
	return doc.Base() != navFile
}

// Check evaluates the start, end and mid-line sentence boundaries of every
// prose line.
func (c *VentilatedChecker) Check(cc *lint.CheckContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	err := cc.Walk(func(line adoc.Line, _ adoc.BlockState, skip bool) error {
		if skip {
			return nil
		}
		text := strings.TrimRightFunc(adoc.ProseView.Apply(line.Text), isSpace)
		if adoc.IsBlank(text) {
			return nil
		}

		cause := SentenceCauseOf(text)
		if !cause.Any() {
			return nil
		}

		diags = append(diags, lint.NewDiagnosticAt(c.ID(), cc.Document.Path, line.Number,
			fmt.Sprintf("Not ventilated prose: bad sentence %s", strings.Join(cause.Labels(), ", "))).
			WithCause(cause).
			WithSource(line.Text).
			Build())
		return nil
	})
	return diags, err
}

// SentenceCauseOf evaluates the sentence-boundary conditions of a
// normalized line.
func SentenceCauseOf(text string) lint.SentenceCause {
	return lint.SentenceCause{
		Start: !sentenceStartRE.MatchString(text),
		End:   text == "" || !strings.ContainsRune(sentenceEnd, rune(text[len(text)-1])),
		Mid:   MidSentenceBreak(text) >= 0,
	}
}

// MidSentenceBreak returns the byte index of the first sentence-ending
// punctuation mark followed by a space and more text, or -1. A period
// directly after another period is part of an ellipsis and does not count.
func MidSentenceBreak(text string) int {
	for idx := 0; idx+2 < len(text); idx++ {
		switch text[idx] {
		case '.', '?', '!':
		default:
			continue
		}
		if text[idx+1] != ' ' {
			continue
		}
		if text[idx] == '.' && idx > 0 && text[idx-1] == '.' {
			continue
		}
		return idx
	}
	return -1
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
