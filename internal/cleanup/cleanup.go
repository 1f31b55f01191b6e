// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cleanup plans and applies a legacy component cleanup: migrating
// files that import legacy components, removing legacy files nothing
// imports, and pruning stylesheet rules nothing references. Every batch
// keeps one result per file; a failing file never stops the others.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/petar-djukic/unimigrate/internal/batch"
	"github.com/petar-djukic/unimigrate/internal/codemod"
	"github.com/petar-djukic/unimigrate/internal/deprecation"
	"github.com/petar-djukic/unimigrate/internal/diffview"
	"github.com/petar-djukic/unimigrate/internal/fsutil"
	"github.com/petar-djukic/unimigrate/internal/imports"
	"github.com/petar-djukic/unimigrate/internal/jsx"
	"github.com/petar-djukic/unimigrate/internal/mapping"
	"github.com/petar-djukic/unimigrate/internal/scanner"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Stage names passed to ApplyOptions.Confirm.
const (
	StageMigrate = "migrate"
	StageRemove  = "remove"
	StageStyles  = "prune-styles"
)

// Options configures an Orchestrator.
type Options struct {
	Walk            scanner.WalkOptions
	Aliases         map[string]string
	Concurrency     int
	StyleExtensions []string // DefaultStyleExtensions when empty
	Logger          zerolog.Logger
}

// ApplyOptions controls Apply and the per-stage batch operations.
type ApplyOptions struct {
	DryRun        bool
	CreateBackups bool
	Codemod       bool // Also run the codemod on migrated files
	PruneStyles   bool
	// Confirm is asked before each stage with the number of files it
	// touches; a nil Confirm approves every stage.
	Confirm func(stage string, files int) bool
}

// Orchestrator composes the scanner, codemod engine and import rewriter.
type Orchestrator struct {
	table    *mapping.Table
	registry *deprecation.Registry
	scanner  *scanner.Scanner
	codemod  *codemod.Engine
	rewriter *imports.Rewriter
	opts     Options
}

// New returns an orchestrator for the components in table.
func New(table *mapping.Table, opts Options) *Orchestrator {
	if len(opts.StyleExtensions) == 0 {
		opts.StyleExtensions = DefaultStyleExtensions
	}
	reg := deprecation.NewRegistry(table, opts.Logger)
	return &Orchestrator{
		table:    table,
		registry: reg,
		scanner: scanner.New(table, scanner.Options{
			Walk:        opts.Walk,
			Aliases:     opts.Aliases,
			Concurrency: opts.Concurrency,
			Logger:      opts.Logger,
			Registry:    reg,
		}),
		codemod:  codemod.New(table, opts.Logger),
		rewriter: imports.New(table, opts.Logger),
		opts:     opts,
	}
}

// Registry returns the deprecation registry the scans report usage to.
func (o *Orchestrator) Registry() *deprecation.Registry { return o.registry }

// Plan scans root and returns the cleanup report. It changes nothing on
// disk.
func (o *Orchestrator) Plan(ctx context.Context, root string) (*types.CleanupReport, error) {
	o.registry.Clear()
	scan, err := o.scanner.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	styleWalk := o.opts.Walk
	styleWalk.Extensions = o.opts.StyleExtensions
	stylesheets, err := scanner.Walk(scan.Root, styleWalk)
	if err != nil {
		return nil, fmt.Errorf("finding stylesheets: %w", err)
	}
	sourceWalk := o.opts.Walk
	if len(sourceWalk.Extensions) == 0 {
		sourceWalk.Extensions = jsx.DefaultExtensions
	}
	sources, err := scanner.Walk(scan.Root, sourceWalk)
	if err != nil {
		return nil, fmt.Errorf("finding sources: %w", err)
	}
	unusedStyles, duplicates := AnalyzeStyles(scan.Root, stylesheets, sources)

	report := &types.CleanupReport{
		RunID:           uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		Root:            scan.Root,
		Scan:            scan,
		FilesToMigrate:  filesToMigrate(scan),
		UnusedFiles:     []string{},
		UnusedStyles:    unusedStyles,
		DuplicateStyles: duplicates,
		Deprecations:    o.registry.Usage(),
	}
	for _, f := range scan.UnusedFiles {
		report.UnusedFiles = append(report.UnusedFiles, f.FilePath)
	}
	report.Summary = types.CleanupSummary{
		LegacyFiles:     len(scan.LegacyFiles),
		LegacyImports:   len(scan.LegacyImports),
		LegacyUsages:    len(scan.LegacyUsages),
		FilesToMigrate:  len(report.FilesToMigrate),
		UnusedFiles:     len(report.UnusedFiles),
		UnusedStyles:    len(unusedStyles),
		DuplicateStyles: len(duplicates),
	}

	o.opts.Logger.Info().
		Int("filesToMigrate", report.Summary.FilesToMigrate).
		Int("unusedFiles", report.Summary.UnusedFiles).
		Int("unusedStyles", report.Summary.UnusedStyles).
		Msg("cleanup planned")
	return report, nil
}

// filesToMigrate lists the files with legacy imports in migration order,
// followed by files that only render legacy components, by path.
func filesToMigrate(scan *types.ScanResult) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, r := range scan.MigrationOrder {
		if !seen[r.FilePath] {
			seen[r.FilePath] = true
			out = append(out, r.FilePath)
		}
	}
	var rest []string
	for _, f := range scan.FilesWithLegacyUsages() {
		if !seen[f] {
			seen[f] = true
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Apply carries out report. Stages run in order: migrate, remove, and
// prune-styles when opts.PruneStyles is set. A stage declined by
// opts.Confirm is recorded in Skipped.
func (o *Orchestrator) Apply(ctx context.Context, report *types.CleanupReport, opts ApplyOptions) (*types.ApplyResult, error) {
	if report == nil || report.Scan == nil {
		return nil, errors.New("apply: empty cleanup report")
	}
	root := report.Root
	res := &types.ApplyResult{DryRun: opts.DryRun}

	confirm := func(stage string, n int) bool {
		if n == 0 {
			return false
		}
		if opts.Confirm != nil && !opts.Confirm(stage, n) {
			res.Skipped = append(res.Skipped, stage)
			o.opts.Logger.Info().Str("stage", stage).Msg("stage skipped")
			return false
		}
		return true
	}

	if confirm(StageMigrate, len(report.FilesToMigrate)) {
		res.Migrated = o.MigrateFiles(ctx, root, report.FilesToMigrate, hintsByFile(report.Scan), opts)
	}
	if confirm(StageRemove, len(report.UnusedFiles)) {
		res.Removed = o.RemoveFiles(ctx, root, report.UnusedFiles, opts)
	}
	if opts.PruneStyles && confirm(StageStyles, len(report.UnusedStyles)) {
		res.Styles = o.PruneStyles(ctx, root, report.UnusedStyles, opts)
	}
	res.Migrated.Summarize()
	res.Removed.Summarize()
	res.Styles.Summarize()

	o.opts.Logger.Info().
		Bool("dryRun", opts.DryRun).
		Int("migrated", res.Migrated.Summary.Changed).
		Int("removed", res.Removed.Summary.Changed).
		Int("styles", res.Styles.Summary.Changed).
		Int("errors", res.Errors()).
		Msg("cleanup applied")
	return res, nil
}

func hintsByFile(scan *types.ScanResult) map[string][]types.LegacyImport {
	out := make(map[string][]types.LegacyImport)
	for _, li := range scan.LegacyImports {
		out[li.FilePath] = append(out[li.FilePath], li)
	}
	return out
}

// step is one text transformation of a file pipeline. Its backup, when
// enabled, holds the text the step received.
type step struct {
	suffix string
	apply  func(ctx context.Context, abs, text string, fr *types.FileResult) (string, error)
}

// transformFile runs steps over one file. Nothing is written in a dry run;
// otherwise the backups of the steps that changed the text are written
// before the file itself.
func (o *Orchestrator) transformFile(ctx context.Context, root, rel string, action types.FileAction, opts ApplyOptions, steps ...step) (types.FileResult, error) {
	fr := types.FileResult{FilePath: rel, Action: action, DryRun: opts.DryRun}
	abs := filepath.Join(root, filepath.FromSlash(rel))
	data, err := os.ReadFile(abs)
	if err != nil {
		return fr, fmt.Errorf("reading %s: %w", rel, err)
	}

	type pending struct {
		suffix string
		text   string
	}
	var backups []pending
	original := string(data)
	current := original
	for _, s := range steps {
		next, err := s.apply(ctx, abs, current, &fr)
		if err != nil {
			return fr, fmt.Errorf("%s: %w", rel, err)
		}
		if next != current {
			backups = append(backups, pending{suffix: s.suffix, text: current})
			current = next
		}
	}

	fr.Changed = current != original
	if !fr.Changed {
		return fr, nil
	}
	if opts.DryRun {
		fr.Diff = diffview.Unified(rel, original, current, diffview.DefaultContext)
		return fr, nil
	}
	if opts.CreateBackups {
		for _, b := range backups {
			path, err := fsutil.WriteBackup(abs, []byte(b.text), b.suffix)
			if err != nil {
				return fr, err
			}
			fr.Backups = append(fr.Backups, relTo(root, path))
		}
	}
	if err := fsutil.AtomicWrite(abs, []byte(current)); err != nil {
		return fr, fmt.Errorf("writing %s: %w", rel, err)
	}
	return fr, nil
}

func (o *Orchestrator) codemodStep() step {
	return step{
		suffix: fsutil.SuffixCodemod,
		apply: func(ctx context.Context, abs, text string, fr *types.FileResult) (string, error) {
			res, err := o.codemod.Apply(ctx, abs, text)
			if err != nil {
				return "", err
			}
			fr.Transformations = append(fr.Transformations, res.Transformations...)
			fr.Warnings = append(fr.Warnings, res.Warnings...)
			return res.Text, nil
		},
	}
}

func (o *Orchestrator) importStep(hints []types.LegacyImport) step {
	return step{
		suffix: fsutil.SuffixCleanup,
		apply: func(ctx context.Context, abs, text string, fr *types.FileResult) (string, error) {
			res, err := o.rewriter.Rewrite(ctx, abs, text, hints...)
			if err != nil {
				return "", err
			}
			fr.Migrations = append(fr.Migrations, res.Migrations...)
			return res.Text, nil
		},
	}
}

// runBatch maps fn over files and converts per-file errors into failed
// results.
func (o *Orchestrator) runBatch(ctx context.Context, action types.FileAction, files []string, opts ApplyOptions, fn func(context.Context, string) (types.FileResult, error)) types.BatchResult {
	results := batch.Map(ctx, files, fn)
	out := types.BatchResult{Files: make([]types.FileResult, 0, len(results))}
	for _, r := range results {
		fr := r.Value
		if fr.FilePath == "" {
			fr = types.FileResult{FilePath: r.Item, Action: action, DryRun: opts.DryRun}
		}
		if !r.OK() {
			fr.Success = false
			fr.Changed = false
			fr.Error = r.Err.Error()
			o.opts.Logger.Warn().Str("file", r.Item).Str("action", string(action)).Err(r.Err).Msg("file failed")
		} else {
			fr.Success = true
			o.opts.Logger.Debug().Str("file", r.Item).Str("action", string(action)).Bool("changed", fr.Changed).Msg("file processed")
		}
		out.Files = append(out.Files, fr)
	}
	out.Summarize()
	ok, failed := batch.Count(results)
	o.opts.Logger.Debug().Str("action", string(action)).Int("ok", ok).Int("failed", failed).Msg("batch finished")
	return out
}

// MigrateFiles rewrites the imports of each file, running the codemod first
// when opts.Codemod is set. hints carries the scanner's legacy imports per
// file so aliased default imports are recognized.
func (o *Orchestrator) MigrateFiles(ctx context.Context, root string, files []string, hints map[string][]types.LegacyImport, opts ApplyOptions) types.BatchResult {
	return o.runBatch(ctx, types.ActionMigrate, files, opts, func(ctx context.Context, rel string) (types.FileResult, error) {
		var steps []step
		if opts.Codemod {
			steps = append(steps, o.codemodStep())
		}
		steps = append(steps, o.importStep(hints[rel]))
		return o.transformFile(ctx, root, rel, types.ActionMigrate, opts, steps...)
	})
}

// ApplyCodemodsToFile runs only the codemod on one file.
func (o *Orchestrator) ApplyCodemodsToFile(ctx context.Context, root, rel string, opts ApplyOptions) types.FileResult {
	res := o.runBatch(ctx, types.ActionCodemod, []string{rel}, opts, func(ctx context.Context, rel string) (types.FileResult, error) {
		return o.transformFile(ctx, root, rel, types.ActionCodemod, opts, o.codemodStep())
	})
	return res.Files[0]
}

// RemoveFiles deletes each file, first saving it with the removed-file
// backup suffix when backups are enabled.
func (o *Orchestrator) RemoveFiles(ctx context.Context, root string, files []string, opts ApplyOptions) types.BatchResult {
	return o.runBatch(ctx, types.ActionRemove, files, opts, func(_ context.Context, rel string) (types.FileResult, error) {
		fr := types.FileResult{FilePath: rel, Action: types.ActionRemove, DryRun: opts.DryRun}
		abs := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Lstat(abs)
		if err != nil {
			return fr, fmt.Errorf("removing %s: %w", rel, err)
		}
		if !info.Mode().IsRegular() {
			return fr, fmt.Errorf("removing %s: %w", rel, fsutil.ErrNotRegular)
		}
		fr.Changed = true
		if opts.DryRun {
			return fr, nil
		}
		if opts.CreateBackups {
			data, err := os.ReadFile(abs)
			if err != nil {
				return fr, fmt.Errorf("reading %s: %w", rel, err)
			}
			path, err := fsutil.WriteBackup(abs, data, fsutil.SuffixRemoved)
			if err != nil {
				return fr, err
			}
			fr.Backups = append(fr.Backups, relTo(root, path))
		}
		if err := os.Remove(abs); err != nil {
			return fr, fmt.Errorf("removing %s: %w", rel, err)
		}
		return fr, nil
	})
}

// PruneStyles removes the rules of each finding's stylesheet that reference
// only unused classes.
func (o *Orchestrator) PruneStyles(ctx context.Context, root string, findings []types.StyleFinding, opts ApplyOptions) types.BatchResult {
	classes := make(map[string]map[string]bool)
	var files []string
	for _, f := range findings {
		if classes[f.FilePath] == nil {
			classes[f.FilePath] = make(map[string]bool)
			files = append(files, f.FilePath)
		}
		classes[f.FilePath][f.ClassName] = true
	}
	sort.Strings(files)

	return o.runBatch(ctx, types.ActionPruneStyles, files, opts, func(ctx context.Context, rel string) (types.FileResult, error) {
		prune := step{
			suffix: fsutil.SuffixStyles,
			apply: func(_ context.Context, _, text string, fr *types.FileResult) (string, error) {
				out, n := PruneStylesheet(text, classes[rel])
				if n > 0 {
					fr.Warnings = append(fr.Warnings, fmt.Sprintf("%d rules pruned", n))
				}
				return out, nil
			},
		}
		return o.transformFile(ctx, root, rel, types.ActionPruneStyles, opts, prune)
	})
}

// Restore puts back every backed-up file under root and deletes the
// backups.
func (o *Orchestrator) Restore(root string) ([]fsutil.Restored, error) {
	restored, err := fsutil.RestoreBackups(root, o.opts.Walk.SkipFunc())
	for _, r := range restored {
		o.opts.Logger.Info().Str("file", r.FilePath).Str("backup", r.Backup).Msg("restored")
	}
	return restored, err
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
