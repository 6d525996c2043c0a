package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/checks"
)

func testRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	checks.RegisterAll(registry)
	return registry
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// isolated returns options that only see files under dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
		Registry:         testRegistry(),
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if !result.Config.RemoteEnabled() {
		t.Error("expected remote checking to default to enabled")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), `
remote: false
rules_file: rules.yaml
repeats:
  that: true
checks:
  repeated-words:
    enabled: false
  ADL003:
    severity: warning
ignore:
  - "drafts/**"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.RemoteEnabled() {
		t.Error("expected remote to be disabled")
	}
	if cfg.RulesFile != "rules.yaml" {
		t.Errorf("expected rules_file rules.yaml, got %q", cfg.RulesFile)
	}
	if !cfg.Repeats["that"] {
		t.Errorf("expected repeats to allow 'that', got %v", cfg.Repeats)
	}

	repeated, ok := cfg.Checks["ADL002"]
	if !ok {
		t.Fatalf("expected checker name to be normalized to ADL002, got %v", cfg.Checks)
	}
	if repeated.Enabled == nil || *repeated.Enabled {
		t.Error("expected ADL002 to be disabled")
	}
	if sev := cfg.Checks["ADL003"].Severity; sev == nil || *sev != "warning" {
		t.Errorf("expected ADL003 severity warning, got %v", sev)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "drafts/**" {
		t.Errorf("unexpected ignore: %v", cfg.Ignore)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigTOML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.toml"), `
debug = true
content_root = "site"

[repeats]
had = true

[checks.image-references]
enabled = false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if !cfg.Debug {
		t.Error("expected debug to be enabled")
	}
	if cfg.ContentRoot != "site" {
		t.Errorf("expected content_root site, got %q", cfg.ContentRoot)
	}
	if !cfg.Repeats["had"] {
		t.Errorf("expected repeats to allow 'had', got %v", cfg.Repeats)
	}
	if images, ok := cfg.Checks["ADL004"]; !ok || images.Enabled == nil || *images.Enabled {
		t.Errorf("expected ADL004 to be disabled, got %v", cfg.Checks)
	}
}

func TestLoad_UnknownKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{
			name:    "yaml top level",
			file:    ".adoclint.yml",
			content: "colour: red\nremote: true\n",
			want:    "colour",
		},
		{
			name:    "yaml nested",
			file:    ".adoclint.yml",
			content: "checks:\n  ADL001:\n    level: high\n",
			want:    "level",
		},
		{
			name:    "toml nested",
			file:    ".adoclint.toml",
			content: "[checks.ADL001]\nlevel = \"high\"\n",
			want:    "checks.ADL001.level",
		},
		{
			name:    "yaml flag-only jobs",
			file:    ".adoclint.yml",
			content: "jobs: 4\n",
			want:    "jobs",
		},
		{
			name:    "yaml flag-only check_format",
			file:    ".adoclint.yaml",
			content: "check_format: id\n",
			want:    "check_format",
		},
		{
			name:    "toml flag-only format",
			file:    ".adoclint.toml",
			content: "format = \"json\"\n",
			want:    "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, tt.file), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if !errors.Is(err, ErrUnknownKey) {
				t.Fatalf("expected ErrUnknownKey, got %v", err)
			}
			if !strings.Contains(err.Error(), "unrecognized option(s): "+tt.want) {
				t.Errorf("expected error to name %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), "remote: [\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrUnknownKey) {
		t.Errorf("parse errors are not unknown keys: %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), "")

	if _, err := Load(context.Background(), isolated(tmpDir)); err != nil {
		t.Fatalf("empty config should load, got %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), "rules_file: project.yaml\ncontent_root: project\n")
	explicit := filepath.Join(tmpDir, "custom.toml")
	writeFile(t, explicit, "rules_file = \"explicit.yaml\"\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{ContentRoot: "cli", Jobs: 2}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.RulesFile != "explicit.yaml" {
		t.Errorf("explicit config should override project, got %q", cfg.RulesFile)
	}
	if cfg.ContentRoot != "cli" {
		t.Errorf("CLI should override files, got %q", cfg.ContentRoot)
	}
	if cfg.Jobs != 2 {
		t.Errorf("expected jobs 2, got %d", cfg.Jobs)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("unexpected load order: %v", result.LoadedFrom)
	}
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "adoclint", "config.yaml"), "rules_file: user.yaml\nremote: false\n")

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), "rules_file: project.yaml\n")

	opts := isolated(tmpDir)
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.RulesFile != "project.yaml" {
		t.Errorf("project config should override user config, got %q", result.Config.RulesFile)
	}
	if result.Config.RemoteEnabled() {
		t.Error("expected user config remote=false to survive the merge")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("ADOCLINT_REMOTE", "false")
	t.Setenv("ADOCLINT_JOBS", "3")

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), "content_root: project\n")
	writeFile(t, filepath.Join(tmpDir, ".env"),
		"ADOCLINT_REMOTE=true\nADOCLINT_CONTENT_ROOT=site\nADOCLINT_IGNORE=a/**, b/**\nUNRELATED=1\n")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.RemoteEnabled() {
		t.Error("process environment should win over .env")
	}
	if cfg.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", cfg.Jobs)
	}
	if cfg.ContentRoot != "site" {
		t.Errorf(".env should override config files, got %q", cfg.ContentRoot)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "b/**" {
		t.Errorf("unexpected ignore: %v", cfg.Ignore)
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("ADOCLINT_DEBUG", "sometimes")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "ADOCLINT_DEBUG") {
		t.Fatalf("expected invalid boolean error, got %v", err)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), "checks:\n  ADL001:\n    severity: fatal\n")

	_, err := Load(context.Background(), isolated(tmpDir))

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if validationErr.Field != "checks.ADL001.severity" {
		t.Errorf("unexpected field %q", validationErr.Field)
	}
}

func TestLoad_UnknownCheckerWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), "checks:\n  spelling:\n    enabled: false\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "spelling") {
		t.Errorf("expected unknown checker warning, got %v", result.Warnings)
	}
}

func TestLoad_DuplicateCheckKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".adoclint.yml"), `
checks:
  ADL002:
    enabled: true
  repeated-words:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Config.Checks) != 1 {
		t.Errorf("expected one normalized entry, got %v", result.Config.Checks)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "duplicate") {
		t.Errorf("expected duplicate warning, got %v", result.Warnings)
	}
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "outer", ".adoclint.yml"), "remote: true\n")
	nested := filepath.Join(root, "outer", "docs", "modules")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != filepath.Join(root, "outer", ".adoclint.yml") {
		t.Errorf("expected upward search to find outer config, got %q", found)
	}

	repo := filepath.Join(root, "outer", "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	sub := filepath.Join(repo, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err = FindProjectConfig(context.Background(), sub)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("search should stop at the VCS root, got %q", found)
	}
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := FindProjectConfig(ctx, t.TempDir()); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	enabled := true
	disabled := false
	severity := "warning"

	base := &config.Config{
		Repeats: map[string]bool{"had": true},
		Checks: map[string]config.CheckConfig{
			"ADL001": {Enabled: &enabled},
		},
		Ignore: []string{"a/**"},
	}
	override := &config.Config{
		Remote:  &disabled,
		Repeats: map[string]bool{"that": true},
		Checks: map[string]config.CheckConfig{
			"ADL001": {Severity: &severity},
		},
	}

	merged := merge(base, override)

	if merged.RemoteEnabled() {
		t.Error("expected remote to be disabled")
	}
	if !merged.Repeats["had"] || !merged.Repeats["that"] {
		t.Errorf("expected repeats to be merged, got %v", merged.Repeats)
	}
	style := merged.Checks["ADL001"]
	if style.Enabled == nil || !*style.Enabled || style.Severity == nil || *style.Severity != "warning" {
		t.Errorf("expected deep-merged checker config, got %+v", style)
	}
	if len(merged.Ignore) != 1 {
		t.Errorf("nil slice should not replace base, got %v", merged.Ignore)
	}

	empty := merge(&config.Config{}, &config.Config{Repeats: map[string]bool{}})
	if empty.Repeats == nil {
		t.Error("an empty repeats table must survive the merge")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	if MergeAll() != nil {
		t.Error("expected nil for no configs")
	}

	merged := MergeAll(
		&config.Config{RulesFile: "a.yaml"},
		&config.Config{RulesFile: "b.yaml"},
		&config.Config{ContentRoot: "site"},
	)
	if merged.RulesFile != "b.yaml" || merged.ContentRoot != "site" {
		t.Errorf("unexpected merge result: %+v", merged)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   *config.Config
		field string
	}{
		{"format", &config.Config{Format: "sarif"}, "format"},
		{"check format", &config.Config{CheckFormat: "short"}, "check_format"},
		{"jobs", &config.Config{Jobs: -1}, "jobs"},
		{"ignore", &config.Config{Ignore: []string{"docs/[a"}}, "ignore[0]"},
		{"repeats", &config.Config{Repeats: map[string]bool{" ": true}}, "repeats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := ValidateWith(tt.cfg, testRegistry())
			if result.Valid() {
				t.Fatalf("expected validation error for %s", tt.field)
			}
			if result.Errors[0].Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, result.Errors[0].Field)
			}
		})
	}

	if !ValidateWith(config.NewConfig(), testRegistry()).Valid() {
		t.Error("default config should be valid")
	}
	if !ValidateWith(nil, testRegistry()).Valid() {
		t.Error("nil config should be valid")
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Jobs: -1}, ".adoclint.yml")
	if result.Valid() {
		t.Fatal("expected validation error")
	}
	if got := result.Errors[0].Error(); got != ".adoclint.yml: jobs: jobs must be >= 0 (0 means auto)" {
		t.Errorf("unexpected error text %q", got)
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	remote := false
	severity := "warning"
	cfg := &config.Config{
		Remote:  &remote,
		Repeats: map[string]bool{"had": true},
		Checks: map[string]config.CheckConfig{
			"ADL003": {Severity: &severity},
		},
	}

	for _, name := range []string{".adoclint.yml", ".adoclint.toml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			if err := WriteConfig(cfg, path); err != nil {
				t.Fatalf("WriteConfig() error = %v", err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if loaded.RemoteEnabled() {
				t.Error("expected remote=false to be written")
			}
			if sev := loaded.Checks["ADL003"].Severity; sev == nil || *sev != "warning" {
				t.Errorf("expected ADL003 severity to be written, got %v", sev)
			}
			if !loaded.Repeats["had"] {
				t.Errorf("expected repeats to be written, got %v", loaded.Repeats)
			}
		})
	}
}
