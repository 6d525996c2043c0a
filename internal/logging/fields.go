package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldLine       = "line"
	FieldText       = "text"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldJobs        = "jobs"
	FieldRemote      = "remote"
	FieldContentRoot = "content_root"
	FieldImages      = "images"
	FieldRulesFile   = "rules_file"

	// Tracker fields.
	FieldKind = "kind"
	FieldSkip = "skip"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesSkipped     = "files_skipped"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Checker fields.
	FieldChecker     = "checker"
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldCategory    = "category"
	FieldDescription = "description"
)
