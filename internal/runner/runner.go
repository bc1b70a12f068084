// Package runner orchestrates the parse -> rules -> output pipeline
// across one or more Makefiles.
package runner

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/makelint/internal/config"
	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/fix"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/output"
	"github.com/donaldgifford/makelint/internal/parser"
	"github.com/donaldgifford/makelint/internal/rules"
	"github.com/donaldgifford/makelint/pkg/diff"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitIssues = 1
	ExitError  = 2
)

// Options configures the runner behavior.
type Options struct {
	Paths      []string
	Fix        bool // apply safe fixes before reporting
	Diff       bool // with Fix: print a diff instead of writing
	Format     string
	ConfigPath string
	Jobs       int
	Quiet      bool
	Verbose    bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run executes the lint pipeline and returns an exit code.
func Run(opts *Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	logger := log.New(opts.Stderr)
	logger.SetPrefix("makelint")
	switch {
	case opts.Verbose:
		logger.SetLevel(log.DebugLevel)
	case opts.Quiet:
		logger.SetLevel(log.ErrorLevel)
	}

	fileCfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Error("loading config", "err", err)
		return ExitError
	}
	cfg, err := fileCfg.Resolve()
	if err != nil {
		logger.Error("invalid config", "err", err)
		return ExitError
	}
	if opts.Jobs > 0 {
		cfg.Jobs = opts.Jobs
	}

	renderer, err := output.New(opts.Format)
	if err != nil {
		logger.Error("bad output format", "err", err)
		return ExitError
	}

	r := &run{
		opts:   opts,
		cfg:    cfg,
		engine: lint.NewEngine(rules.All()),
		logger: logger,
	}

	// stdin mode: no paths given.
	if len(opts.Paths) == 0 {
		return r.stdin(renderer)
	}

	files, err := collectFiles(opts.Paths)
	if err != nil {
		logger.Error("collecting files", "err", err)
		return ExitError
	}
	if len(files) == 0 {
		logger.Warn("no Makefiles found")
		return ExitOK
	}

	results, code := r.files(files)
	if renderErr := renderer.Render(opts.Stdout, results); renderErr != nil {
		logger.Error("rendering output", "err", renderErr)
		return ExitError
	}
	return code
}

type run struct {
	opts   *Options
	cfg    *lint.Config
	engine *lint.Engine
	logger *log.Logger
}

// pipeline is one full parse+rules pass, also fed to fix.Iterate.
func (r *run) pipeline(path, text string) (*parser.Document, []diag.Diagnostic) {
	doc := parser.Parse(path, text)
	return doc, r.engine.Run(doc, r.cfg)
}

// files lints every file concurrently and merges the results sorted by
// path. Each file's pipeline is independent; workers share only the
// read-only config and engine.
func (r *run) files(files []string) ([]output.FileResult, int) {
	jobs := r.cfg.Jobs
	if jobs <= 0 {
		jobs = len(files)
	}

	results := make([]output.FileResult, len(files))
	codes := make([]int, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			results[i], codes[i] = r.one(path)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	code := ExitOK
	for _, c := range codes {
		if c > code {
			code = c
		}
	}
	return results, code
}

// one lints (and optionally fixes) a single file.
func (r *run) one(path string) (output.FileResult, int) {
	src, err := os.ReadFile(path)
	if err != nil {
		r.logger.Error("reading file", "path", path, "err", err)
		return output.FileResult{Path: path}, ExitError
	}
	r.logger.Debug("linting", "path", path)

	text := string(src)
	var diags []diag.Diagnostic

	if r.opts.Fix {
		res := fix.Iterate(path, text, r.pipeline)
		diags = res.Diagnostics
		if res.Applied > 0 {
			if r.opts.Diff {
				fmt.Fprint(r.opts.Stdout, diff.Unified(path, text, res.Text))
			} else if err := os.WriteFile(path, []byte(res.Text), 0o644); err != nil {
				r.logger.Error("writing file", "path", path, "err", err)
				return output.FileResult{Path: path, Diagnostics: diags}, ExitError
			} else {
				r.logger.Info("fixed", "path", path, "fixes", res.Applied, "passes", res.Passes)
			}
		}
		for _, sk := range res.Skipped {
			r.logger.Debug("fix not applied", "rule", sk.Diagnostic.RuleID, "reason", sk.Reason)
		}
	} else {
		_, diags = r.pipeline(path, text)
	}

	return output.FileResult{Path: path, Diagnostics: diags}, exitCode(diags)
}

// stdin lints text from standard input; fix mode prints corrected text
// to stdout instead of writing anywhere.
func (r *run) stdin(renderer output.Renderer) int {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		r.logger.Error("reading stdin", "err", err)
		return ExitError
	}
	text := string(src)

	if r.opts.Fix {
		res := fix.Iterate("<stdin>", text, r.pipeline)
		fmt.Fprint(r.opts.Stdout, res.Text)
		return exitCode(res.Diagnostics)
	}

	_, diags := r.pipeline("<stdin>", text)
	result := []output.FileResult{{Path: "<stdin>", Diagnostics: diags}}
	if err := renderer.Render(r.opts.Stdout, result); err != nil {
		r.logger.Error("rendering output", "err", err)
		return ExitError
	}
	return exitCode(diags)
}

// exitCode maps diagnostics to the process exit code: any error-severity
// diagnostic fails the run.
func exitCode(diags []diag.Diagnostic) int {
	for _, d := range diags {
		if d.Severity == diag.Error {
			return ExitIssues
		}
	}
	return ExitOK
}
