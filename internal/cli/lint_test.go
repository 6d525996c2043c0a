package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/internal/cli"
)

func TestLintCommand_CheckFormatFlag(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	if err != nil {
		t.Fatalf("lint command not found: %v", err)
	}

	flag := lintCmd.Flags().Lookup("check-format")
	assert.NotNil(t, flag, "check-format flag should exist")
	assert.Equal(t, "name", flag.DefValue, "default value should be 'name'")
}

func TestLintCommand_FormatFlag(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	if err != nil {
		t.Fatalf("lint command not found: %v", err)
	}

	formatFlag := lintCmd.Flags().Lookup("format")
	assert.NotNil(t, formatFlag, "format flag should exist")
	assert.Equal(t, "text", formatFlag.DefValue)
	assert.Contains(t, formatFlag.Usage, "json")
	assert.NotContains(t, formatFlag.Usage, "sarif")
}
