// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner drives one cleanup run end to end: git safety check,
// plan, apply, verification, auto-commit and report artifacts.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/petar-djukic/unimigrate/internal/cleanup"
	gitpkg "github.com/petar-djukic/unimigrate/internal/git"
	"github.com/petar-djukic/unimigrate/internal/report"
	"github.com/petar-djukic/unimigrate/internal/verify"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Deps holds injected dependencies for the runner.
type Deps struct {
	Orchestrator  *cleanup.Orchestrator
	WorkDir       string
	ReportDir     string // No artifacts are written when empty
	VerifyCmd     string // Empty skips verification
	VerifyTimeout time.Duration
	GitCommit     bool // Commit touched files after a successful run
	RequireClean  bool // Refuse to run on a dirty work tree
	DirtyCommit   bool // Commit a dirty work tree before the run
	NoGit         bool // Skip every git operation
	Logger        zerolog.Logger
}

// RunResult holds the outcome of a Runner.Run invocation.
type RunResult struct {
	Report    *types.MigrationReport
	Artifacts []string // Report files written
	Dirty     bool     // The work tree had uncommitted changes before the run
}

// Failed reports whether the run should exit non-zero: the verification
// command failed. Per-file errors are recorded in the report but do not
// fail the run.
func (r *RunResult) Failed() bool {
	v := r.Report.Verification
	return v != nil && !v.OK
}

// Runner orchestrates the cleanup lifecycle.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	return &Runner{deps: deps}
}

// Run plans and applies a cleanup of WorkDir. A dry run never touches git
// or runs the verification command; it still writes the report artifacts.
func (r *Runner) Run(ctx context.Context, opts cleanup.ApplyOptions) (*RunResult, error) {
	log := r.deps.Logger
	result := &RunResult{}

	// Step 1: git safety check.
	var repo *gitpkg.Repo
	if !opts.DryRun && !r.deps.NoGit {
		var err error
		repo, err = gitpkg.Open(gitpkg.Config{
			WorkDir:      r.deps.WorkDir,
			AutoCommit:   r.deps.GitCommit,
			RequireClean: r.deps.RequireClean,
			DirtyCommit:  r.deps.DirtyCommit,
		})
		switch {
		case errors.Is(err, gitpkg.ErrNoGit):
			if r.deps.RequireClean || r.deps.GitCommit || r.deps.DirtyCommit {
				log.Warn().Str("workdir", r.deps.WorkDir).Msg("not a git repository; git checks skipped")
			}
			repo = nil
		case err != nil:
			return result, err
		default:
			dirty, err := repo.HandleDirty()
			if err != nil {
				return result, fmt.Errorf("checking work tree: %w", err)
			}
			result.Dirty = dirty
			if dirty {
				log.Warn().Msg("work tree has uncommitted changes; backups are the only way back")
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// Step 2: plan.
	plan, err := r.deps.Orchestrator.Plan(ctx, r.deps.WorkDir)
	if err != nil {
		return result, fmt.Errorf("planning cleanup: %w", err)
	}
	result.Report = &types.MigrationReport{CleanupReport: plan}

	// Step 3: apply.
	applied, err := r.deps.Orchestrator.Apply(ctx, plan, opts)
	if err != nil {
		return result, fmt.Errorf("applying cleanup: %w", err)
	}
	result.Report.Apply = applied
	touched := applied.TouchedFiles()

	// Step 4: verify.
	if !opts.DryRun && r.deps.VerifyCmd != "" && len(touched) > 0 {
		v, err := verify.Run(ctx, verify.Config{
			WorkDir: r.deps.WorkDir,
			Command: r.deps.VerifyCmd,
			Timeout: r.deps.VerifyTimeout,
		})
		if err != nil {
			return result, fmt.Errorf("verification: %w", err)
		}
		result.Report.Verification = v
		log.Info().Bool("ok", v.OK).Int("problems", len(v.Problems)).Dur("duration", v.Duration).Msg("verification finished")
	}

	// Step 5: auto-commit when everything succeeded.
	if repo != nil && r.deps.GitCommit && len(touched) > 0 {
		switch {
		case applied.Errors() > 0:
			log.Warn().Int("errors", applied.Errors()).Msg("not committing: some files failed")
		case result.Failed():
			log.Warn().Msg("not committing: verification failed")
		default:
			hash, err := repo.AutoCommit(touched, commitSummary(applied))
			if err != nil {
				return result, fmt.Errorf("auto-commit: %w", err)
			}
			result.Report.Commit = hash
			log.Info().Str("commit", hash).Int("files", len(touched)).Msg("committed")
		}
	}

	// Step 6: report artifacts.
	if r.deps.ReportDir != "" {
		path, err := report.WriteMigration(r.deps.ReportDir, result.Report)
		if err != nil {
			return result, err
		}
		result.Artifacts = append(result.Artifacts, path)

		path, err = report.WriteUnusedStyles(r.deps.ReportDir, plan)
		if err != nil {
			return result, err
		}
		if path != "" {
			result.Artifacts = append(result.Artifacts, path)
		}
	}

	return result, nil
}

// commitSummary names the largest stage of the run for the commit subject.
func commitSummary(a *types.ApplyResult) string {
	m, rm, st := a.Migrated.Summary.Changed, a.Removed.Summary.Changed, a.Styles.Summary.Changed
	switch {
	case m > 0:
		return fmt.Sprintf("migrate %d files to the unified component library", m)
	case rm > 0:
		return fmt.Sprintf("remove %d unused legacy component files", rm)
	default:
		return fmt.Sprintf("prune unused styles in %d stylesheets", st)
	}
}
