package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new adoclint configuration file",
		Long: `Create a new .adoclint.yml configuration file in the current directory
listing every checker with its default settings. The file can be customized
to enable/disable checkers, change severities, and configure other options.

Examples:
  adoclint init                      Create .adoclint.yml
  adoclint init --format toml        Create .adoclint.toml instead
  adoclint init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .adoclint.yml or .adoclint.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")

	if flags.format != "yaml" && flags.format != "toml" {
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".adoclint.yml"
		if flags.format == "toml" {
			outputPath = ".adoclint.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := configloader.WriteConfig(starterConfig(lint.DefaultRegistry), absPath); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'adoclint rules' to see all available checkers")

	return nil
}

// starterConfig lists every registered checker with its defaults.
func starterConfig(registry *lint.Registry) *config.Config {
	remote := true
	cfg := &config.Config{
		Remote: &remote,
		Checks: make(map[string]config.CheckConfig),
	}

	for _, checker := range registry.Checkers() {
		enabled := checker.DefaultEnabled()
		severity := string(checker.DefaultSeverity())
		cfg.Checks[checker.ID()] = config.CheckConfig{
			Enabled:  &enabled,
			Severity: &severity,
		}
	}

	return cfg
}
