package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yaklabco/adoclint/pkg/config"
)

// envVarPrefix is the prefix for all adoclint environment variables.
const envVarPrefix = "ADOCLINT_"

// dotEnvFile is read from the working directory as a fallback for variables
// missing from the process environment.
const dotEnvFile = ".env"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DEBUG":        {field: "debug", typ: envTypeBool},
	"REMOTE":       {field: "remote", typ: envTypeBool},
	"JOBS":         {field: "jobs", typ: envTypeInt},
	"FORMAT":       {field: "format", typ: envTypeString},
	"RULES_FILE":   {field: "rules_file", typ: envTypeString},
	"CONTENT_ROOT": {field: "content_root", typ: envTypeString},
	"IGNORE":       {field: "ignore", typ: envTypeSlice},
}

// readDotEnv returns the ADOCLINT_ variables of the .env file in dir.
// A missing file yields no variables.
func readDotEnv(dir string) (map[string]string, error) {
	values, err := godotenv.Read(filepath.Join(dir, dotEnvFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	for key := range values {
		if !strings.HasPrefix(key, envVarPrefix) {
			delete(values, key)
		}
	}
	return values, nil
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with ADOCLINT_ (e.g., ADOCLINT_JOBS).
// Values from fallback are used for variables the process environment
// does not set.
func LoadFromEnv(cfg *config.Config, fallback map[string]string) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := os.LookupEnv(envVar)
		if !ok {
			value = fallback[envVar]
		}
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "rules_file":
		cfg.RulesFile = value
	case "content_root":
		cfg.ContentRoot = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "debug":
		cfg.Debug = value
	case "remote":
		cfg.Remote = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"ADOCLINT_DEBUG":        "Enable debug logging: true or false",
		"ADOCLINT_REMOTE":       "Check documents outside the working directory: true or false",
		"ADOCLINT_JOBS":         "Number of parallel workers (0 = auto)",
		"ADOCLINT_FORMAT":       "Output format: text or json",
		"ADOCLINT_RULES_FILE":   "Rule table replacing the built-in one",
		"ADOCLINT_CONTENT_ROOT": "Directory scanned for images",
		"ADOCLINT_IGNORE":       "Comma-separated list of ignore patterns",
	}
}
