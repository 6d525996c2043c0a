package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "checks.ADL001.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown checkers).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownCheckFormats lists valid checker identifier formats.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownCheckFormats = map[config.CheckFormat]bool{
	config.CheckFormatName:     true,
	config.CheckFormatID:       true,
	config.CheckFormatCombined: true,
}

// Validate checks a configuration against the default checker registry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWith(cfg, lint.DefaultRegistry)
}

// ValidateWith checks a configuration for errors and warnings, resolving
// checker keys against registry.
func ValidateWith(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format),
		})
	}

	if cfg.CheckFormat != "" && !knownCheckFormats[cfg.CheckFormat] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "check_format",
			Value:   cfg.CheckFormat,
			Message: fmt.Sprintf("invalid check format %q; must be one of: name, id, combined", cfg.CheckFormat),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	for word := range cfg.Repeats {
		if strings.TrimSpace(word) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "repeats",
				Value:   word,
				Message: "repeat words must not be empty",
			})
		}
	}

	validateChecks(cfg, registry, result)
	validateCheckLists(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateChecks checks per-checker configurations.
func validateChecks(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	for key, checkCfg := range cfg.Checks {
		if registry != nil {
			if _, exists := registry.Get(key); !exists {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   "checks." + key,
					Value:   key,
					Message: fmt.Sprintf("unknown checker %q; it will be ignored", key),
				})
			}
		}

		if checkCfg.Severity != nil && !config.Severity(*checkCfg.Severity).IsValid() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "checks." + key + ".severity",
				Value:   *checkCfg.Severity,
				Message: fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *checkCfg.Severity),
			})
		}
	}
}

// validateCheckLists warns about --enable and --disable keys naming no checker.
func validateCheckLists(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	if registry == nil {
		return
	}
	for field, keys := range map[string][]string{"enable": cfg.EnableChecks, "disable": cfg.DisableChecks} {
		for _, key := range keys {
			if _, exists := registry.Get(key); !exists {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   field,
					Value:   key,
					Message: fmt.Sprintf("unknown checker %q in --%s", key, field),
				})
			}
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return config.Severity(s).IsValid()
}
