package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/checks"
	"github.com/yaklabco/adoclint/pkg/ruletable"
)

func TestRulesCommand_Flags(t *testing.T) {
	cmd := newRulesCommand()
	for _, name := range []string{"check-format", "format", "words", "acronyms"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %q", name)
	}
}

func TestWordInfos(t *testing.T) {
	tables, err := ruletable.Default()
	require.NoError(t, err)

	infos := wordInfos(tables)
	require.Len(t, infos, len(tables.Rules))

	var found bool
	for _, info := range infos {
		if info.Word == "alternatively" {
			found = true
			assert.Equal(t, "Simplify", info.Category)
			assert.Equal(t, `Replace with "or".`, info.Rationale)
		}
	}
	assert.True(t, found, "alternatively should be listed")
}

func TestAcronymInfos(t *testing.T) {
	tables, err := ruletable.Default()
	require.NoError(t, err)

	infos := acronymInfos(tables)
	require.NotEmpty(t, infos)
	assert.Contains(t, infos, acronymInfo{Acronym: "API", Expansion: "Application Programming Interface"})
}

func TestStarterConfig(t *testing.T) {
	registry := lint.NewRegistry()
	checks.RegisterAll(registry)

	cfg := starterConfig(registry)
	require.Len(t, cfg.Checks, 4)
	assert.True(t, cfg.RemoteEnabled())

	images := cfg.Checks[checks.ImagesID]
	require.NotNil(t, images.Enabled)
	assert.True(t, *images.Enabled)
	require.NotNil(t, images.Severity)
	assert.Equal(t, "error", *images.Severity)
}
