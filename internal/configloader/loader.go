// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// ErrUnknownKey is returned when a config file contains options adoclint
// does not recognize.
var ErrUnknownKey = errors.New("unrecognized option(s)")

//nolint:gochecknoglobals // Compiled pattern is read-only.
var yamlUnknownFieldRE = regexp.MustCompile(`field (\S+) not found in type`)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips environment variables and the .env file.
	IgnoreEnv bool

	// Registry resolves checker names in the checks table.
	// Defaults to lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (ADOCLINT_*, then .env in the working directory)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.adoclint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/adoclint/config.yaml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		enabled bool
	}{
		{"user", paths.User, !opts.IgnoreUserConfig},
		{"project", paths.Project, !opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, true},
	}

	for _, layer := range layers {
		if !layer.enabled || layer.path == "" {
			continue
		}
		fileCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		dotenv, err := readDotEnv(workDir)
		if err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		if err := LoadFromEnv(cfg, dotenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeCheckKeys(cfg, registry, result)

	validation := ValidateWith(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads a YAML or TOML configuration file. Options the
// configuration does not define are reported as ErrUnknownKey.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg *config.Config
	if IsTOMLConfig(path) {
		cfg, err = decodeTOML(content)
	} else {
		cfg, err = decodeYAML(content)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Checks == nil {
		cfg.Checks = make(map[string]config.CheckConfig)
	}
	return cfg, nil
}

func decodeYAML(content []byte) (*config.Config, error) {
	cfg := &config.Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	err := decoder.Decode(cfg)
	if err == nil || errors.Is(err, io.EOF) {
		return cfg, nil
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		var unknown []string
		for _, msg := range typeErr.Errors {
			if m := yamlUnknownFieldRE.FindStringSubmatch(msg); m != nil {
				unknown = append(unknown, m[1])
			}
		}
		if len(unknown) > 0 {
			return nil, unknownKeys(unknown)
		}
	}
	return nil, fmt.Errorf("parse YAML: %w", err)
}

func decodeTOML(content []byte) (*config.Config, error) {
	cfg := &config.Config{}

	meta, err := toml.Decode(string(content), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		return nil, unknownKeys(unknown)
	}
	return cfg, nil
}

func unknownKeys(keys []string) error {
	slices.Sort(keys)
	return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(slices.Compact(keys), ", "))
}

// WriteConfig writes a configuration to path as YAML, or as TOML when the
// path has a .toml extension.
func WriteConfig(cfg *config.Config, path string) error {
	var (
		content []byte
		err     error
	)
	if IsTOMLConfig(path) {
		content, err = cfg.ToTOML()
	} else {
		content, err = cfg.ToYAML()
	}
	if err != nil {
		return err
	}

	header := "# adoclint configuration\n\n"
	if err := os.WriteFile(path, append([]byte(header), content...), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// normalizeCheckKeys converts checker names to canonical IDs in the config.
// This allows users to write "repeated-words" instead of "ADL002".
// If a checker is configured under both keys, the last one wins with a warning.
func normalizeCheckKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Checks) == 0 {
		return
	}

	keys := make([]string, 0, len(cfg.Checks))
	for key := range cfg.Checks {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	normalized := make(map[string]config.CheckConfig, len(cfg.Checks))
	seenIDs := make(map[string]string)

	for _, key := range keys {
		checkCfg := cfg.Checks[key]

		canonicalID, found := registry.Resolve(key)
		if !found {
			normalized[key] = checkCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate check configuration: %q and %q both refer to %s; using %q",
					originalKey, key, canonicalID, key))
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = checkCfg
	}

	cfg.Checks = normalized
}
