package lint

import "github.com/yaklabco/adoclint/pkg/config"

// BaseChecker provides a default implementation of the Checker interface.
// Embed this in checker implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseChecker struct {
	id       string
	name     string
	desc     string
	tags     []string
	severity config.Severity
}

// NewBaseChecker creates a BaseChecker with the given properties.
func NewBaseChecker(id, name, desc string, tags []string, severity config.Severity) BaseChecker {
	return BaseChecker{
		id:       id,
		name:     name,
		desc:     desc,
		tags:     tags,
		severity: severity,
	}
}

// ID returns the unique identifier for this checker.
func (c *BaseChecker) ID() string {
	return c.id
}

// Name returns the human-readable name of the checker.
func (c *BaseChecker) Name() string {
	return c.name
}

// Description returns a detailed description of what the checker reports.
func (c *BaseChecker) Description() string {
	return c.desc
}

// DefaultEnabled returns whether the checker is enabled by default.
// Override this method to change the default.
func (c *BaseChecker) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this checker.
func (c *BaseChecker) DefaultSeverity() config.Severity {
	if c.severity == "" {
		return config.SeverityError
	}
	return c.severity
}

// Tags returns categorization tags for this checker.
func (c *BaseChecker) Tags() []string {
	return c.tags
}

// Check must be overridden by concrete checkers.
// The default implementation returns no diagnostics.
func (c *BaseChecker) Check(_ *CheckContext) ([]Diagnostic, error) {
	return nil, nil
}
