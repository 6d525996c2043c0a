package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fsutil"
	"github.com/yaklabco/adoclint/pkg/images"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/ruletable"
)

// ErrReadDocument is returned when a discovered document cannot be read.
// A read failure aborts the whole run.
var ErrReadDocument = errors.New("cannot read document")

// imagesTag marks checkers that need the image catalog.
const imagesTag = "images"

// Runner orchestrates multi-document linting using a lint.Engine.
type Runner struct {
	// Engine runs the checkers over each document.
	Engine *lint.Engine
}

// New creates a new Runner with the given engine.
func New(engine *lint.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers documents under opts.Paths and lints them concurrently.
//
// The runner:
//   - Discovers documents and drops remote ones when remote checking is off
//   - Loads the rule table and, when an image checker is enabled, scans the
//     content tree for images
//   - Lints documents with a bounded worker pool, each writing its own slot
//   - Runs end-of-run checks and orders every outcome by path
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)

	files = r.dropRemote(ctx, files, workDir, cfg)
	result.Stats.FilesSkipped = result.Stats.FilesDiscovered - len(files)

	run, contentRoot, err := r.prepare(ctx, opts, cfg, workDir)
	if err != nil {
		return nil, err
	}
	if run.Images != nil {
		result.Stats.ImagesScanned = run.Images.Len()
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = cfg.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	logger.Debug("linting documents",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
		logging.FieldContentRoot, contentRoot)

	outcomes := make([]FileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for idx, path := range files {
		g.Go(func() error {
			outcome, err := r.lintFile(gctx, path, workDir, contentRoot, cfg, run)
			if err != nil {
				return err
			}
			outcomes[idx] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	finished, err := r.Engine.Finish(ctx, cfg, run)
	if err != nil {
		return nil, fmt.Errorf("finish run: %w", err)
	}
	outcomes = mergeFinished(outcomes, finished)

	slices.SortStableFunc(outcomes, func(a, b FileOutcome) int {
		return strings.Compare(a.Path, b.Path)
	})
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal)

	return result, nil
}

// dropRemote removes documents outside the working directory when remote
// checking is disabled.
func (r *Runner) dropRemote(ctx context.Context, files []string, workDir string, cfg *config.Config) []string {
	if cfg.RemoteEnabled() {
		return files
	}
	logger := logging.FromContext(ctx)

	local := files[:0:0]
	for _, path := range files {
		if fsutil.IsWithin(workDir, path) {
			local = append(local, path)
			continue
		}
		logger.Debug("skipping remote document", logging.FieldPath, path)
	}
	return local
}

// prepare builds the run state shared by every document.
func (r *Runner) prepare(
	ctx context.Context,
	opts Options,
	cfg *config.Config,
	workDir string,
) (*lint.RunState, string, error) {
	logger := logging.FromContext(ctx)

	tables, err := loadTables(cfg, workDir)
	if err != nil {
		return nil, "", err
	}
	run := lint.NewRunState(tables, cfg)

	contentRoot := opts.ContentRoot
	if contentRoot == "" {
		contentRoot = cfg.ContentRoot
	}
	if contentRoot == "" {
		contentRoot = workDir
	}
	if !filepath.IsAbs(contentRoot) {
		contentRoot = filepath.Join(workDir, contentRoot)
	}
	contentRoot = filepath.Clean(contentRoot)

	if !r.needsImages(cfg) {
		return run, contentRoot, nil
	}

	info, err := os.Stat(contentRoot)
	if err != nil || !info.IsDir() {
		logger.Debug("content root unavailable, image checks disabled",
			logging.FieldContentRoot, contentRoot,
			logging.FieldError, err)
		return run, contentRoot, nil
	}

	fsys := os.DirFS(contentRoot)
	catalog, err := images.Scan(ctx, fsys)
	if err != nil {
		return nil, "", fmt.Errorf("content root %s: %w", contentRoot, err)
	}
	prober, err := images.NewProber(fsys, images.DefaultCacheSize)
	if err != nil {
		return nil, "", err
	}

	run.Images = catalog
	run.Prober = prober
	run.ReportPath = func(logical string) string {
		return fsutil.DisplayPath(workDir, filepath.Join(contentRoot, filepath.FromSlash(logical)))
	}

	logger.Debug("scanned content root",
		logging.FieldContentRoot, contentRoot,
		logging.FieldImages, catalog.Len())

	return run, contentRoot, nil
}

// loadTables returns the configured rule table or the built-in one.
func loadTables(cfg *config.Config, workDir string) (*ruletable.Tables, error) {
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
		return nil, fmt.Errorf("load rule table: %w", err)
	}
	return tables, nil
}

// needsImages reports whether any enabled checker uses the image catalog.
func (r *Runner) needsImages(cfg *config.Config) bool {
	for _, rc := range lint.ResolveCheckers(r.Engine.Registry, cfg) {
		if slices.Contains(rc.Checker.Tags(), imagesTag) {
			return true
		}
	}
	return false
}

// lintFile reads and lints one document.
func (r *Runner) lintFile(
	ctx context.Context,
	path, workDir, contentRoot string,
	cfg *config.Config,
	run *lint.RunState,
) (FileOutcome, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{}, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}

	display := fsutil.DisplayPath(workDir, path)
	doc := adoc.NewDocument(display, content).
		WithLogicalPath(fsutil.DisplayPath(contentRoot, path))

	dr, err := r.Engine.LintDocument(ctx, doc, cfg, run)
	if err != nil {
		return FileOutcome{}, err
	}

	return FileOutcome{Path: display, Result: dr}, nil
}

// mergeFinished attaches end-of-run diagnostics to the outcome of their
// path, adding outcomes for paths no document covered.
func mergeFinished(outcomes []FileOutcome, finished []lint.Diagnostic) []FileOutcome {
	if len(finished) == 0 {
		return outcomes
	}

	index := make(map[string]int, len(outcomes))
	for idx, outcome := range outcomes {
		index[outcome.Path] = idx
	}

	for _, diag := range finished {
		idx, ok := index[diag.FilePath]
		if !ok {
			outcomes = append(outcomes, FileOutcome{
				Path:   diag.FilePath,
				Result: &lint.DocumentResult{},
			})
			idx = len(outcomes) - 1
			index[diag.FilePath] = idx
		}
		dr := outcomes[idx].Result
		dr.Diagnostics = append(dr.Diagnostics, diag)
		lint.SortDiagnostics(dr.Diagnostics)
	}

	return outcomes
}
