// Package config defines core configuration types for adoclint.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// CheckConfig holds per-checker configuration.
type CheckConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty" toml:"enabled"`
	Severity *string `yaml:"severity,omitempty" toml:"severity"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// CheckFormat controls how checker identifiers appear in output.
type CheckFormat string

const (
	CheckFormatName     CheckFormat = "name"     // "repeated-words"
	CheckFormatID       CheckFormat = "id"       // "ADL002"
	CheckFormatCombined CheckFormat = "combined" // "ADL002/repeated-words"
)

// Config is the root configuration structure for adoclint.
type Config struct {
	// Debug enables debug logging.
	Debug bool `yaml:"debug,omitempty" toml:"debug,omitempty"`

	// Remote controls whether documents outside the working directory are
	// checked. Nil means enabled.
	Remote *bool `yaml:"remote,omitempty" toml:"remote"`

	// Repeats overrides the table of words allowed to repeat. Words mapped to
	// false are not allowed.
	Repeats map[string]bool `yaml:"repeats,omitempty" toml:"repeats,omitempty"`

	// Checks contains per-checker configuration keyed by checker ID or name.
	Checks map[string]CheckConfig `yaml:"checks,omitempty" toml:"checks,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// RulesFile replaces the built-in rule table.
	RulesFile string `yaml:"rules_file,omitempty" toml:"rules_file,omitempty"`

	// ContentRoot is the directory scanned for images. Defaults to the
	// working directory.
	ContentRoot string `yaml:"content_root,omitempty" toml:"content_root,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// CheckFormat controls how checker identifiers appear in output.
	CheckFormat CheckFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableChecks contains checker IDs to explicitly enable.
	EnableChecks []string `yaml:"-" toml:"-"`

	// DisableChecks contains checker IDs to explicitly disable.
	DisableChecks []string `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Checks:      make(map[string]CheckConfig),
		Format:      FormatText,
		CheckFormat: CheckFormatName,
		Jobs:        0, // 0 means use GOMAXPROCS
	}
}

// RemoteEnabled reports whether remote documents are checked.
func (c *Config) RemoteEnabled() bool {
	return c.Remote == nil || *c.Remote
}

// AllowedRepeats returns the words explicitly allowed to repeat, or nil when
// the configuration does not override the rule table.
func (c *Config) AllowedRepeats() map[string]bool {
	if c.Repeats == nil {
		return nil
	}
	allowed := make(map[string]bool, len(c.Repeats))
	for word, ok := range c.Repeats {
		if ok {
			allowed[word] = true
		}
	}
	return allowed
}
