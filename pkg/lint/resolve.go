package lint

import (
	"slices"

	"github.com/yaklabco/adoclint/pkg/config"
)

// ResolvedChecker pairs a Checker with its resolved configuration.
type ResolvedChecker struct {
	// Checker is the underlying checker implementation.
	Checker Checker

	// Enabled indicates whether the checker should be run.
	Enabled bool

	// Severity is the default severity for diagnostics from this checker.
	Severity config.Severity

	// Override is true when Severity was configured and replaces the
	// severity chosen by the checker.
	Override bool

	// Config is the checker-specific configuration (may be nil).
	Config *config.CheckConfig
}

// ResolveCheckers determines which checkers to run based on registry and
// config. Returns only enabled checkers with their resolved configuration.
func ResolveCheckers(registry *Registry, cfg *config.Config) []ResolvedChecker {
	var resolved []ResolvedChecker

	for _, checker := range registry.Checkers() {
		rc := resolveChecker(checker, cfg)
		if rc.Enabled {
			resolved = append(resolved, rc)
		}
	}

	return resolved
}

func matches(checker Checker, keys []string) bool {
	return slices.Contains(keys, checker.ID()) || slices.Contains(keys, checker.Name())
}

// resolveChecker resolves the configuration for a single checker.
func resolveChecker(checker Checker, cfg *config.Config) ResolvedChecker {
	rc := ResolvedChecker{
		Checker:  checker,
		Enabled:  checker.DefaultEnabled(),
		Severity: checker.DefaultSeverity(),
	}

	if cfg == nil {
		return rc
	}

	// Checker-specific config, keyed by ID or name. ID wins.
	checkCfg, ok := cfg.Checks[checker.ID()]
	if !ok {
		checkCfg, ok = cfg.Checks[checker.Name()]
	}
	if ok {
		rc.Config = &checkCfg

		if checkCfg.Enabled != nil {
			rc.Enabled = *checkCfg.Enabled
		}
		if checkCfg.Severity != nil {
			rc.Severity = config.Severity(*checkCfg.Severity)
			rc.Override = true
		}
	}

	// Explicit enable/disable from the CLI wins over files.
	if matches(checker, cfg.EnableChecks) {
		rc.Enabled = true
	}
	if matches(checker, cfg.DisableChecks) {
		rc.Enabled = false
	}

	return rc
}
