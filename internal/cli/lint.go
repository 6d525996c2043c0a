package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/checks"
	"github.com/yaklabco/adoclint/pkg/reporter"
	"github.com/yaklabco/adoclint/pkg/runner"
)

type lintFlags struct {
	format      string
	ignore      []string
	enable      []string
	disable     []string
	strict      bool
	noContext   bool
	noRemote    bool
	compact     bool
	summary     bool
	checkFormat string
}

func newLintCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Asciidoc files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint Asciidoc files for style, sentence layout and image references.

By default, lints all .adoc and .asciidoc files in the current directory
and subdirectories. Specify paths to lint specific files or directories.

Examples:
  adoclint lint                          # Lint current directory
  adoclint lint modules/                 # Lint a module tree
  adoclint lint modules/ROOT/pages/a.adoc  # Lint single file
  adoclint lint --disable image-references # Skip image checks
  adoclint lint --content-root docs      # Resolve images under docs/
  adoclint lint --format json            # Output as JSON for CI
  adoclint lint --strict                 # Treat warnings as errors`

// loadConfig resolves the configuration for the working directory, with
// cliCfg taking precedence over every other source.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     lint.DefaultRegistry,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError,
			errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()

	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("check-format") {
		cfg.CheckFormat = config.CheckFormat(flags.checkFormat)
	}
	cfg.Ignore = flags.ignore
	cfg.EnableChecks = flags.enable
	cfg.DisableChecks = flags.disable
	if flags.noRemote {
		remote := false
		cfg.Remote = &remote
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	finalCfg, err := loadConfig(ctx, cmd, workDir, cfg)
	if err != nil {
		return err
	}

	if finalCfg.Debug {
		logging.SetLevel("debug")
	}

	logger.Debug("configuration loaded",
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldRemote, finalCfg.RemoteEnabled(),
		logging.FieldRulesFile, finalCfg.RulesFile,
		logging.FieldContentRoot, finalCfg.ContentRoot,
	)

	engine := lint.NewEngine(lint.DefaultRegistry)
	lintRunner := runner.New(engine)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: finalCfg.Ignore,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          cmd.OutOrStdout(),
		Format:          format,
		Color:           colorMode,
		ShowContext:     !flags.noContext,
		ShowSummary:     true,
		DetailedSummary: flags.summary,
		GroupByFile:     true,
		Compact:         flags.compact,
		CheckFormat:     finalCfg.CheckFormat,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if exitCode := ExitCodeFromResult(result, flags.strict); exitCode != ExitSuccess {
		return withExitCode(exitCode, ErrLintIssuesFound)
	}

	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil,
		fmt.Sprintf("checker IDs or names to enable (%s-%s)", checks.StyleID, checks.ImagesID))
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "checker IDs or names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noRemote, "no-remote", false,
		"skip documents outside the working directory")
	cmd.Flags().StringVar(&cfg.ContentRoot, "content-root", "",
		"directory scanned for images (default: working directory)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a detailed summary block")
	cmd.Flags().StringVar(&flags.checkFormat, "check-format", "name",
		"checker identifier format in output: name, id, or combined")
}
