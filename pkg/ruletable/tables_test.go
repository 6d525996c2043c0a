package ruletable_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/ruletable"
)

func TestDefault_Loads(t *testing.T) {
	t.Parallel()

	tables, err := ruletable.Default()
	require.NoError(t, err)

	rule, ok := tables.Lookup("alternatively")
	require.True(t, ok)
	assert.Equal(t, "Simplify", rule.Category)
	assert.Equal(t, `Replace with "or".`, rule.Rationale)

	rule, ok = tables.Lookup("higher-level")
	require.True(t, ok)
	assert.Equal(t, "Mechanics", rule.Category)

	_, ok = tables.Lookup("receive")
	assert.False(t, ok)

	assert.Contains(t, tables.Repeats, "had")
	assert.True(t, tables.IsAcronym("API"))
	assert.False(t, tables.IsAcronym("api"))
}

func TestDefault_IsShared(t *testing.T) {
	t.Parallel()

	first, err := ruletable.Default()
	require.NoError(t, err)
	second, err := ruletable.Default()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDefault_PhraseNeighboursAreLowercase(t *testing.T) {
	t.Parallel()

	tables, err := ruletable.Default()
	require.NoError(t, err)

	for _, word := range tables.Words() {
		rule, _ := tables.Lookup(word)
		assert.Equal(t, strings.ToLower(rule.Phrase), rule.Phrase, "phrase neighbour of %q", word)
		if rule.Phrase != "" {
			assert.True(t, rule.IsPhrase(), "%q has a neighbour but is not a phrase rule", word)
		}
	}

	ui, ok := tables.Lookup("ui")
	require.True(t, ok)
	assert.Equal(t, "jti", ui.Phrase)
}

func TestRule_Accepts(t *testing.T) {
	t.Parallel()

	tables, err := ruletable.Default()
	require.NoError(t, err)

	primary, _ := tables.Lookup("primary")
	assert.True(t, primary.Accepts("the", "server", "The primary server."))
	assert.False(t, primary.Accepts("the", "goal", "The primary goal."))

	specific, _ := tables.Lookup("specific")
	assert.True(t, specific.Accepts("non-agency", "", "Non-agency specific."))
	assert.False(t, specific.Accepts("", "", "Specific."))

	appear, _ := tables.Lookup("appear")
	assert.True(t, appear.Accepts("to", "in", "Failure to appear in court."))
	assert.False(t, appear.Accepts("to", "", "It starts to appear."))

	plain, _ := tables.Lookup("accomplish")
	assert.False(t, plain.Accepts("x", "y", "anything"))
}

func TestTables_HyphenMessage(t *testing.T) {
	t.Parallel()

	tables, err := ruletable.Default()
	require.NoError(t, err)

	msg, ok := tables.HyphenMessage("re-run")
	assert.True(t, ok)
	assert.Equal(t, "should generally not be hyphenated", msg)

	_, ok = tables.HyphenMessage("rerun")
	assert.False(t, ok)

	_, ok = tables.HyphenMessage("well-known")
	assert.False(t, ok)

	_, ok = tables.HyphenMessage("non-agency")
	assert.False(t, ok, "non is not a discouraged prefix")
}

func TestTables_Lists(t *testing.T) {
	t.Parallel()

	tables, err := ruletable.Default()
	require.NoError(t, err)

	words := tables.Words()
	assert.IsNonDecreasing(t, words)
	assert.Contains(t, words, "e.g")

	acronyms := tables.AcronymList()
	assert.IsNonDecreasing(t, acronyms)
	assert.Equal(t, "API", acronyms[0])
}

func TestLoad_Minimal(t *testing.T) {
	t.Parallel()

	input := `
rules:
  foo:
    category: Simplify
    rationale: Replace with "bar".
  baz:
    category: Phrase
    phrase: Qux
    rationale: qux baz
hyphenation:
  prefixes:
    pre: no hyphen
repeats: [ok]
`
	tables, err := ruletable.Load(strings.NewReader(input))
	require.NoError(t, err)

	assert.Len(t, tables.Rules, 2)
	baz, _ := tables.Lookup("baz")
	assert.Equal(t, "qux", baz.Phrase)
	assert.Empty(t, tables.Acronyms)
	assert.Equal(t, []string{"ok"}, tables.Repeats)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"unknown top-level key", "bogus: 1\n"},
		{"unknown rule key", "rules:\n  foo: {category: X, colour: red}\n"},
		{"missing category", "rules:\n  foo: {rationale: x}\n"},
		{"bad pattern", "rules:\n  foo: {category: X, exceptions: {pattern: '('}}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ruletable.Load(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ruletable.ErrInvalidTable)
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()

	tables, err := ruletable.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tables.Rules)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  foo: {category: Needless}\n"), 0o600))

	tables, err := ruletable.LoadFile(path)
	require.NoError(t, err)
	_, ok := tables.Lookup("foo")
	assert.True(t, ok)

	_, err = ruletable.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
