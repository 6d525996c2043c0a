// Package runner provides multi-document linting orchestration.
package runner

import "github.com/yaklabco/adoclint/pkg/config"

// Options controls multi-document linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Asciidoc. Empty means any extension enry maps to AsciiDoc.
	Extensions []string

	// ExcludeGlobs are doublestar patterns used to skip files or directories,
	// matched against paths relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// ContentRoot is the directory scanned for images. Overrides the
	// configured content root; relative paths are resolved against
	// WorkingDir.
	ContentRoot string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative falls back to Config.Jobs, then runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the common Asciidoc file extensions.
func DefaultExtensions() []string {
	return []string{".adoc", ".asciidoc"}
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
