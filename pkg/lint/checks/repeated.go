package checks

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// RepeatedChecker reports a word immediately followed by the same word.
type RepeatedChecker struct {
	lint.BaseChecker
}

// NewRepeatedChecker creates the repeated-words checker.
func NewRepeatedChecker() *RepeatedChecker {
	return &RepeatedChecker{
		BaseChecker: lint.NewBaseChecker(
			RepeatedID,
			"repeated-words",
			"Words repeated within a line or across a line break",
			[]string{"style", "words"},
			config.SeverityError,
		),
	}
}

// Check compares consecutive words, and the last word of a line with the
// first word of the line directly after it.
func (c *RepeatedChecker) Check(cc *lint.CheckContext) ([]lint.Diagnostic, error) {
	run := cc.Run
	if run == nil {
		run = lint.NewRunState(nil, cc.Config)
	}

	var diags []lint.Diagnostic
	report := func(line adoc.Line, offset int, word string) {
		diags = append(diags, lint.NewDiagnosticAt(c.ID(), cc.Document.Path, line.Number,
			fmt.Sprintf("Repeated word %q", word)).
			WithOffset(offset).
			WithColumn(wordColumn(line.Text, word, offset)).
			WithCategory("Repeat", word).
			WithSource(line.Text).
			Build())
	}

	// The last word of the previous line, when that line was analyzed.
	prevLine, prevLast := 0, ""

	err := cc.Walk(func(line adoc.Line, _ adoc.BlockState, skip bool) error {
		if skip {
			prevLine, prevLast = 0, ""
			return nil
		}
		text := adoc.MacroView.Apply(line.Text)
		if adoc.IsBlank(text) {
			prevLine, prevLast = 0, ""
			return nil
		}

		words := strings.Split(text, " ")

		if prevLine == line.Number-1 && prevLast != "" &&
			strings.EqualFold(prevLast, words[0]) && !skipRepeat(words[0], run) {
			report(line, 0, words[0])
		}

		for idx := 1; idx < len(words); idx++ {
			previous, word := words[idx-1], words[idx]
			if previous != "" && strings.EqualFold(previous, word) && !skipRepeat(word, run) {
				report(line, idx, word)
			}
		}

		prevLine, prevLast = line.Number, words[len(words)-1]
		return nil
	})
	return diags, err
}

// skipRepeat reports whether a repeated word is benign.
func skipRepeat(word string, run *lint.RunState) bool {
	if run.AllowedRepeat(word) {
		return true
	}

	first, size := utf8.DecodeRuneInString(word)
	if first == unicode.ToUpper(first) {
		// Initials such as "D. D."
		if utf8.RuneCountInString(word) == 2 && strings.HasSuffix(word, ".") {
			return true
		}
		// Capitalized words such as "Duran Duran".
		tail := word[size:]
		if tail != "" && tail == strings.ToLower(tail) {
			return true
		}
	}

	// Table cells with zero or one word.
	if rest, ok := strings.CutPrefix(word, "|"); ok {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" || !strings.ContainsAny(rest, " \t") {
			return true
		}
	}

	return false
}

// wordColumn returns the 1-based column of the word at a space-separated
// offset of the raw line, or 0 when macro rewriting moved it.
func wordColumn(raw, word string, offset int) int {
	fields := strings.Split(raw, " ")
	if offset >= len(fields) || !strings.EqualFold(fields[offset], word) {
		return 0
	}
	col := 1
	for _, field := range fields[:offset] {
		col += utf8.RuneCountInString(field) + 1
	}
	return col
}
