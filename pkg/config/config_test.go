package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/config"
)

func TestFormatCheckID(t *testing.T) {
	tests := []struct {
		name      string
		format    config.CheckFormat
		checkID   string
		checkName string
		want      string
	}{
		{"name format", config.CheckFormatName, "ADL002", "repeated-words", "repeated-words"},
		{"id format", config.CheckFormatID, "ADL002", "repeated-words", "ADL002"},
		{"combined format", config.CheckFormatCombined, "ADL002", "repeated-words", "ADL002/repeated-words"},
		{"name format empty name", config.CheckFormatName, "ADL002", "", "ADL002"},
		{"default to name", config.CheckFormat(""), "ADL002", "repeated-words", "repeated-words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatCheckID(tt.format, tt.checkID, tt.checkName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_IsValid(t *testing.T) {
	assert.True(t, config.SeverityError.IsValid())
	assert.True(t, config.SeverityWarning.IsValid())
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
}

func TestOutputFormat_IsValid(t *testing.T) {
	assert.True(t, config.FormatText.IsValid())
	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.CheckFormatName, cfg.CheckFormat)
	assert.NotNil(t, cfg.Checks)
	assert.True(t, cfg.RemoteEnabled())
	assert.Nil(t, cfg.AllowedRepeats())
}

func TestConfig_RemoteEnabled(t *testing.T) {
	off := false
	on := true
	assert.False(t, (&config.Config{Remote: &off}).RemoteEnabled())
	assert.True(t, (&config.Config{Remote: &on}).RemoteEnabled())
}

func TestConfig_AllowedRepeats(t *testing.T) {
	cfg := &config.Config{Repeats: map[string]bool{"had": true, "that": false}}
	assert.Equal(t, map[string]bool{"had": true}, cfg.AllowedRepeats())

	empty := &config.Config{Repeats: map[string]bool{}}
	assert.NotNil(t, empty.AllowedRepeats(), "an empty override disables the table default")
	assert.Empty(t, empty.AllowedRepeats())
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies nested values", func(t *testing.T) {
		enabled := true
		severity := "error"
		remote := false
		original := &config.Config{
			Remote:  &remote,
			Repeats: map[string]bool{"had": true},
			Checks: map[string]config.CheckConfig{
				"ADL001": {Enabled: &enabled, Severity: &severity},
			},
			Ignore:       []string{"drafts/**"},
			EnableChecks: []string{"ADL004"},
			Jobs:         3,
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		*clone.Checks["ADL001"].Severity = "warning"
		*clone.Remote = true
		clone.Repeats["that"] = true
		clone.Ignore[0] = "other"
		clone.EnableChecks[0] = "ADL001"

		assert.Equal(t, "error", *original.Checks["ADL001"].Severity)
		assert.False(t, *original.Remote)
		assert.NotContains(t, original.Repeats, "that")
		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.Equal(t, "ADL004", original.EnableChecks[0])
		assert.Equal(t, 3, clone.Jobs)
	})
}

func TestConfig_ToYAML(t *testing.T) {
	var nilCfg *config.Config
	out, err := nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, out)

	cfg := &config.Config{
		RulesFile: "rules.yaml",
		Ignore:    []string{"drafts/**"},
		Jobs:      4,
	}
	out, err = cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "rules_file: rules.yaml")
	assert.Contains(t, string(out), "- drafts/**")
	assert.NotContains(t, string(out), "jobs")
}

func TestConfig_ToTOML(t *testing.T) {
	var nilCfg *config.Config
	out, err := nilCfg.ToTOML()
	require.NoError(t, err)
	assert.Nil(t, out)

	remote := false
	cfg := &config.Config{
		Remote:    &remote,
		RulesFile: "rules.yaml",
		Repeats:   map[string]bool{"had": true},
		Jobs:      4,
	}
	out, err = cfg.ToTOML()
	require.NoError(t, err)
	assert.Contains(t, string(out), `rules_file = "rules.yaml"`)
	assert.Contains(t, string(out), "remote = false")
	assert.Contains(t, string(out), "[repeats]")
	assert.NotContains(t, string(out), "jobs")
}
