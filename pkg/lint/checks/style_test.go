package checks_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/checks"
	"github.com/yaklabco/adoclint/pkg/ruletable"
)

func styleCheck(t *testing.T, text string) []lint.Diagnostic {
	t.Helper()
	return check(t, checks.NewStyleChecker(), "a.adoc", text, defaultRun(t))
}

func TestStyle_NoFindings(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"All is good.",
		"Turn it on.",
		"Connect to the primary server.",
		"Run `alternatively` now.",
		"The driver's seat.",
		"Wait for the API.",
	} {
		assert.Empty(t, styleCheck(t, text), "text %q", text)
	}
}

func TestStyle_FlaggedWord(t *testing.T) {
	t.Parallel()

	diags := styleCheck(t, "Alternatively, fail.")
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 1, d.Column)
	assert.Equal(t, 0, d.Offset)
	assert.Equal(t, config.SeverityError, d.Severity)
	assert.Equal(t, "Simplify", d.Category)
	assert.Equal(t, "ALTERNATIVELY", d.Subject)
	assert.Equal(t, `Simplify ALTERNATIVELY: Replace with "or".`, d.Message)
	assert.Equal(t, "Alternatively, fail.", d.Source)
}

func TestStyle_ExceptionNeighbour(t *testing.T) {
	t.Parallel()

	diags := styleCheck(t, "The primary goal.")
	require.Len(t, diags, 1)
	assert.Equal(t, "PRIMARY", diags[0].Subject)
	assert.Equal(t, 5, diags[0].Column)
}

func TestStyle_Phrase(t *testing.T) {
	t.Parallel()

	diags := styleCheck(t, "Click on the button.")
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "Phrase", d.Category)
	assert.Equal(t, "click ON", d.Subject)
	assert.Equal(t, "Phrase click: ON click on", d.Message)
	assert.Equal(t, 7, d.Column)
	assert.Equal(t, 1, d.Offset)
}

func TestStyle_PhraseNeighbourResetsPerLine(t *testing.T) {
	t.Parallel()

	assert.Empty(t, styleCheck(t, "Click\non the button."))
}

func TestStyle_Hyphenation(t *testing.T) {
	t.Parallel()

	diags := styleCheck(t, "Re-run the tests.")
	require.Len(t, diags, 1)
	assert.Equal(t, "Hyphenation RE-RUN: should generally not be hyphenated", diags[0].Message)
	assert.Equal(t, config.SeverityError, diags[0].Severity)
}

func TestStyle_Semicolon(t *testing.T) {
	t.Parallel()

	diags := styleCheck(t, "Stop here; go.")
	require.Len(t, diags, 1)
	assert.Equal(t, "Mechanics HERE;: Do not use semicolon; split into two sentences.", diags[0].Message)
}

func TestStyle_Possessive(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"The user's file.", "The user’s file."} {
		diags := styleCheck(t, text)
		require.Len(t, diags, 1, "text %q", text)
		assert.Equal(t, config.SeverityWarning, diags[0].Severity)
		assert.Equal(t, "USER'S", diags[0].Subject)
		assert.True(t, strings.HasPrefix(diags[0].Message, "Mechanics USER'S: Do not use possessives"))
	}
}

func TestStyle_SkipsStructure(t *testing.T) {
	t.Parallel()

	text := "== Alternatively Speaking\n" +
		"// alternatively\n" +
		"[source,sh]\n" +
		"----\n" +
		"alternatively\n" +
		"----\n" +
		".Alternatively\n" +
		"Then alternatively.\n"
	diags := styleCheck(t, text)
	require.Len(t, diags, 1)
	assert.Equal(t, 8, diags[0].Line)
	assert.Equal(t, 1, diags[0].Offset)
}

func TestStyle_MinimalTable(t *testing.T) {
	t.Parallel()

	tables, err := ruletable.Load(strings.NewReader(`
rules:
  api: {category: Spelling, rationale: Use the acronym.}
hyphenation:
  prefixes: {co: hyphenated}
  exceptions: [co-op]
acronyms:
  API: Application Programming Interface
`))
	require.NoError(t, err)
	run := lint.NewRunState(tables, nil)
	checker := checks.NewStyleChecker()

	assert.Empty(t, check(t, checker, "a.adoc", "Call the API.", run), "exact acronyms are exempt")
	assert.Len(t, check(t, checker, "a.adoc", "Call the api.", run), 1)
	assert.Empty(t, check(t, checker, "a.adoc", "Join the co-op.", run))
	assert.Len(t, check(t, checker, "a.adoc", "Co-author it.", run), 1)
	assert.Empty(t, check(t, checker, "a.adoc", "Alternatively, fail.", run), "only the substituted table applies")
}
