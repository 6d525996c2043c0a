package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:   10,
		FilesWithIssues:  3,
		ImagesScanned:    7,
		DiagnosticsTotal: 5,
		DiagnosticsBySeverity: map[string]int{
			"error":   2,
			"warning": 3,
		},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     10")
	assert.Contains(t, result, "Files with issues: 3")
	assert.Contains(t, result, "Images scanned:    7")
	assert.Contains(t, result, "Total issues:      5")
	assert.Contains(t, result, "Errors:          2")
	assert.Contains(t, result, "Warnings:        3")
	assert.Contains(t, result, "Lint failed with errors")
}

func TestFormatSummary_NoIssues(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesProcessed:        4,
		DiagnosticsBySeverity: map[string]int{},
	})

	assert.Contains(t, result, "Lint passed")
	assert.NotContains(t, result, "Files with issues")
	assert.NotContains(t, result, "Images scanned")
}

func TestFormatSummary_WarningsOnly(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesProcessed:        1,
		FilesWithIssues:       1,
		FilesSkipped:          2,
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[string]int{"warning": 1},
	})

	assert.Contains(t, result, "Lint completed with warnings")
	assert.Contains(t, result, "Files skipped:     2")
}

func TestFormatSummaryOneLine_NoIssues(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummaryOneLine(runner.Stats{FilesProcessed: 5})
	assert.Equal(t, "No issues found (5 files checked)\n", result)
}

func TestFormatSummaryOneLine_WithIssues(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:   10,
		FilesWithIssues:  3,
		DiagnosticsTotal: 12,
		DiagnosticsBySeverity: map[string]int{
			"error":   8,
			"warning": 3,
			"info":    1,
		},
	}

	result := styles.FormatSummaryOneLine(stats)
	assert.Equal(t, "12 issues (8 errors, 3 warnings, 1 info) in 3 files\n", result)
}

func TestFormatSummaryOneLine_SingleIssue(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        1,
		FilesWithIssues:       1,
		FilesSkipped:          1,
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[string]int{"error": 1},
	}

	result := styles.FormatSummaryOneLine(stats)
	assert.Equal(t, "1 issue (1 errors) in 1 file, 1 remote skipped\n", result)
}
