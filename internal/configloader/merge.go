package configloader

import (
	"maps"

	"github.com/yaklabco/adoclint/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.CheckFormat != "" {
		result.CheckFormat = override.CheckFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.RulesFile != "" {
		result.RulesFile = override.RulesFile
	}
	if override.ContentRoot != "" {
		result.ContentRoot = override.ContentRoot
	}

	// false is the zero value, so a later layer cannot switch debug off.
	if override.Debug {
		result.Debug = true
	}
	if override.Remote != nil {
		remote := *override.Remote
		result.Remote = &remote
	}

	result.Checks = mergeChecks(base.Checks, override.Checks)
	result.Repeats = mergeRepeats(base.Repeats, override.Repeats)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableChecks != nil {
		result.EnableChecks = override.EnableChecks
	}
	if override.DisableChecks != nil {
		result.DisableChecks = override.DisableChecks
	}

	return &result
}

// mergeChecks performs deep merge of checker configurations.
func mergeChecks(base, override map[string]config.CheckConfig) map[string]config.CheckConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.CheckConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		existing, ok := result[key]
		if !ok {
			result[key] = val
			continue
		}
		if val.Enabled != nil {
			existing.Enabled = val.Enabled
		}
		if val.Severity != nil {
			existing.Severity = val.Severity
		}
		result[key] = existing
	}

	return result
}

// mergeRepeats merges allowed-repeat tables. An empty override is kept as
// an empty table so it still disables the built-in defaults.
func mergeRepeats(base, override map[string]bool) map[string]bool {
	if override == nil {
		return maps.Clone(base)
	}

	result := make(map[string]bool, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
