package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the file-level configuration to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// Clone creates a deep copy of the configuration, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Debug:         c.Debug,
		Remote:        clonePtr(c.Remote),
		Repeats:       maps.Clone(c.Repeats),
		Ignore:        slices.Clone(c.Ignore),
		RulesFile:     c.RulesFile,
		ContentRoot:   c.ContentRoot,
		Format:        c.Format,
		CheckFormat:   c.CheckFormat,
		Jobs:          c.Jobs,
		EnableChecks:  slices.Clone(c.EnableChecks),
		DisableChecks: slices.Clone(c.DisableChecks),
	}

	if c.Checks != nil {
		clone.Checks = make(map[string]CheckConfig, len(c.Checks))
		for k, v := range c.Checks {
			clone.Checks[k] = CheckConfig{
				Enabled:  clonePtr(v.Enabled),
				Severity: clonePtr(v.Severity),
			}
		}
	}

	return clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
