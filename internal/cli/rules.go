package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/ruletable"
)

type rulesFlags struct {
	checkFormat string
	format      string
	words       bool
	acronyms    bool
}

const formatJSON = "json"

// checkerInfo represents a checker in JSON output.
type checkerInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Tags        []string `json:"tags"`
}

// wordInfo represents a rule table word in JSON output.
type wordInfo struct {
	Word      string `json:"word"`
	Category  string `json:"category"`
	Phrase    string `json:"phrase,omitempty"`
	Rationale string `json:"rationale,omitempty"`
}

// acronymInfo represents an acronym in JSON output.
type acronymInfo struct {
	Acronym   string `json:"acronym"`
	Expansion string `json:"expansion"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available checkers and rule table entries",
		Long: `List all available checkers with their IDs, descriptions and default
severity. With --words or --acronyms, list the entries of the rule table in
effect instead (the built-in table, or rules_file from the configuration).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.checkFormat, "check-format", "name",
		"checker identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().BoolVar(&flags.words, "words", false, "list the flagged words and phrases")
	cmd.Flags().BoolVar(&flags.acronyms, "acronyms", false, "list the known acronyms")

	return cmd
}

func runRules(cmd *cobra.Command, flags *rulesFlags) error {
	out := cmd.OutOrStdout()

	if !flags.words && !flags.acronyms {
		checkers := lint.DefaultRegistry.Checkers()
		if flags.format == formatJSON {
			return outputCheckersJSON(out, checkers)
		}
		outputCheckers(out, checkers, config.CheckFormat(flags.checkFormat))
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tables, err := loadRuleTables(ctx, cmd)
	if err != nil {
		return err
	}

	if flags.format == formatJSON {
		if flags.words {
			return encodeJSON(out, wordInfos(tables))
		}
		return encodeJSON(out, acronymInfos(tables))
	}

	logger := logging.NewWithWriter(out, "info")
	if flags.words {
		for _, info := range wordInfos(tables) {
			logger.Info(info.Word,
				logging.FieldCategory, info.Category,
				logging.FieldDescription, info.Rationale,
			)
		}
	}
	if flags.acronyms {
		for _, info := range acronymInfos(tables) {
			logger.Info(info.Acronym, logging.FieldDescription, info.Expansion)
		}
	}
	return nil
}

// loadRuleTables returns the rule table the configuration selects.
func loadRuleTables(ctx context.Context, cmd *cobra.Command) (*ruletable.Tables, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, nil)
	if err != nil {
		return nil, err
	}

	if cfg.RulesFile == "" {
		tables, err := ruletable.Default()
		if err != nil {
			return nil, fmt.Errorf("load default rule table: %w", err)
		}
		return tables, nil
	}

	path := cfg.RulesFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	tables, err := ruletable.LoadFile(path)
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("load rule table: %w", err))
	}
	return tables, nil
}

func outputCheckers(out io.Writer, checkers []lint.Checker, format config.CheckFormat) {
	logger := logging.NewWithWriter(out, "info")

	logger.Info("available checkers")
	for _, checker := range checkers {
		logger.Info(config.FormatCheckID(format, checker.ID(), checker.Name()),
			logging.FieldSeverity, checker.DefaultSeverity(),
			logging.FieldDescription, checker.Description(),
		)
	}
}

// outputCheckersJSON outputs checkers as a JSON array.
func outputCheckersJSON(out io.Writer, checkers []lint.Checker) error {
	infos := make([]checkerInfo, 0, len(checkers))
	for _, checker := range checkers {
		infos = append(infos, checkerInfo{
			ID:          checker.ID(),
			Name:        checker.Name(),
			Description: checker.Description(),
			Severity:    string(checker.DefaultSeverity()),
			Tags:        checker.Tags(),
		})
	}
	return encodeJSON(out, infos)
}

func wordInfos(tables *ruletable.Tables) []wordInfo {
	words := tables.Words()
	infos := make([]wordInfo, 0, len(words))
	for _, word := range words {
		rule, _ := tables.Lookup(word)
		infos = append(infos, wordInfo{
			Word:      word,
			Category:  rule.Category,
			Phrase:    rule.Phrase,
			Rationale: rule.Rationale,
		})
	}
	return infos
}

func acronymInfos(tables *ruletable.Tables) []acronymInfo {
	list := tables.AcronymList()
	infos := make([]acronymInfo, 0, len(list))
	for _, acronym := range list {
		infos = append(infos, acronymInfo{Acronym: acronym, Expansion: tables.Acronyms[acronym]})
	}
	return infos
}

func encodeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
