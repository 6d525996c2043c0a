package checks

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/ruletable"
)

// Secondary check categories and messages.
const (
	categoryHyphenation = "Hyphenation"
	categoryMechanics   = "Mechanics"

	semicolonRationale  = "Do not use semicolon; split into two sentences."
	possessiveRationale = "Do not use possessives, as in JTI's; Contractions are acceptable."
)

// StyleChecker reports flagged words and phrases from the rule table, plus
// discouraged hyphenation, semicolons and possessives.
type StyleChecker struct {
	lint.BaseChecker
}

// NewStyleChecker creates the style-words checker.
func NewStyleChecker() *StyleChecker {
	return &StyleChecker{
		BaseChecker: lint.NewBaseChecker(
			StyleID,
			"style-words",
			"Flagged words, phrases, hyphenation, semicolons and possessives",
			[]string{"style", "words"},
			config.SeverityError,
		),
	}
}

// Check runs the style rules over every prose line.
func (c *StyleChecker) Check(cc *lint.CheckContext) ([]lint.Diagnostic, error) {
	tables, err := tablesFor(cc)
	if err != nil {
		return nil, err
	}

	folder := newWordFolder()
	var diags []lint.Diagnostic

	err = cc.Walk(func(line adoc.Line, _ adoc.BlockState, skip bool) error {
		if skip {
			return nil
		}
		text := adoc.StyleView.Apply(line.Text)
		if adoc.IsBlank(text) {
			return nil
		}
		diags = append(diags, c.checkLine(cc.Document.Path, line, text, tables, folder)...)
		return nil
	})
	return diags, err
}

func (c *StyleChecker) checkLine(
	path string,
	line adoc.Line,
	text string,
	tables *ruletable.Tables,
	folder *wordFolder,
) []lint.Diagnostic {
	tokens := strings.Fields(text)
	keys := make([]string, len(tokens))
	for idx, token := range tokens {
		keys[idx] = folder.key(token)
	}

	loc := &locator{raw: line.Text}
	var diags []lint.Diagnostic

	report := func(token string, offset int, sev config.Severity, category, subject, msg string) {
		diags = append(diags, lint.NewDiagnosticAt(c.ID(), path, line.Number, msg).
			WithSeverity(sev).
			WithColumn(loc.column(core(token))).
			WithOffset(offset).
			WithCategory(category, subject).
			WithSource(line.Text).
			Build())
	}

	prev := ""
	for idx, token := range tokens {
		word := keys[idx]
		if word == "" || tables.IsAcronym(core(token)) {
			prev = word
			continue
		}

		next := ""
		if idx+1 < len(keys) {
			next = keys[idx+1]
		}
		subject := folder.subject(word)

		if rule, ok := tables.Lookup(word); ok {
			acceptable := rule.Accepts(prev, next, text)
			switch {
			case !acceptable && !rule.IsPhrase():
				report(token, idx, config.SeverityError, rule.Category, subject,
					fmt.Sprintf("%s %s: %s", rule.Category, subject, rule.Rationale))
			case !acceptable && rule.Phrase != "" && prev == rule.Phrase:
				report(token, idx, config.SeverityError, rule.Category, prev+" "+subject,
					fmt.Sprintf("%s %s: %s %s", rule.Category, prev, subject, rule.Rationale))
			}
			prev = word
			continue
		}

		if msg, ok := tables.HyphenMessage(word); ok {
			report(token, idx, config.SeverityError, categoryHyphenation, subject,
				fmt.Sprintf("%s %s: %s", categoryHyphenation, subject, msg))
		}

		if strings.HasSuffix(word, ";") {
			report(token, idx, config.SeverityError, categoryMechanics, subject,
				fmt.Sprintf("%s %s: %s", categoryMechanics, subject, semicolonRationale))
		}

		if strings.HasSuffix(word, "'s") && !tables.IsPossessiveException(word) {
			report(token, idx, config.SeverityWarning, categoryMechanics, subject,
				fmt.Sprintf("%s %s: %s", categoryMechanics, subject, possessiveRationale))
		}

		prev = word
	}

	return diags
}

// tablesFor returns the run's rule table, falling back to the built-in one.
func tablesFor(cc *lint.CheckContext) (*ruletable.Tables, error) {
	if cc.Run != nil && cc.Run.Tables != nil {
		return cc.Run.Tables, nil
	}
	tables, err := ruletable.Default()
	if err != nil {
		return nil, fmt.Errorf("load default rule table: %w", err)
	}
	return tables, nil
}
