// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package migrate

import (
	"context"
	"fmt"
	"os"

	"github.com/petar-djukic/unimigrate/internal/cleanup"
	"github.com/petar-djukic/unimigrate/internal/mapping"
	"github.com/petar-djukic/unimigrate/internal/props"
	"github.com/petar-djukic/unimigrate/internal/report"
	"github.com/petar-djukic/unimigrate/internal/runner"
	"github.com/petar-djukic/unimigrate/internal/scanner"
	"github.com/petar-djukic/unimigrate/internal/validate"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// New validates the config, loads the mapping table and returns a
// ready-to-use Migrator. It does not scan the tree; that happens on demand.
func New(cfg Config) (Migrator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	table, err := mapping.LoadTable(cfg.MappingsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappings, err)
	}

	walk := scanner.WalkOptions{ExcludeDirs: cfg.ExcludeDirs, Extensions: cfg.Extensions}
	orch := cleanup.New(table, cleanup.Options{
		Walk:        walk,
		Aliases:     cfg.Aliases,
		Concurrency: cfg.Concurrency,
		Logger:      cfg.Logger,
	})

	return &migrator{
		cfg:   cfg,
		table: table,
		orch:  orch,
		scan: scanner.New(table, scanner.Options{
			Walk:        walk,
			Aliases:     cfg.Aliases,
			Concurrency: cfg.Concurrency,
			Logger:      cfg.Logger,
			Registry:    orch.Registry(),
		}),
		validator: validate.New(validate.Options{
			Walk:        walk,
			Aliases:     cfg.Aliases,
			LabelWindow: cfg.LabelWindow,
			Concurrency: cfg.Concurrency,
			Logger:      cfg.Logger,
		}),
	}, nil
}

// migrator implements Migrator over the internal packages.
type migrator struct {
	cfg       Config
	table     *mapping.Table
	orch      *cleanup.Orchestrator
	scan      *scanner.Scanner
	validator *validate.Validator
}

func (m *migrator) Scan(ctx context.Context) (*types.ScanResult, error) {
	return m.scan.Scan(ctx, m.cfg.WorkDir)
}

func (m *migrator) Plan(ctx context.Context) (*types.CleanupReport, error) {
	return m.orch.Plan(ctx, m.cfg.WorkDir)
}

func (m *migrator) Cleanup(ctx context.Context, opts ApplyOptions) (*Result, error) {
	r := runner.NewRunner(runner.Deps{
		Orchestrator:  m.orch,
		WorkDir:       m.cfg.WorkDir,
		ReportDir:     m.cfg.ReportDir,
		VerifyCmd:     m.cfg.VerifyCmd,
		VerifyTimeout: m.cfg.VerifyTimeout,
		GitCommit:     m.cfg.GitCommit,
		RequireClean:  m.cfg.RequireClean,
		DirtyCommit:   m.cfg.DirtyCommit,
		NoGit:         m.cfg.NoGit,
		Logger:        m.cfg.Logger,
	})
	rr, err := r.Run(ctx, opts)
	if rr == nil || rr.Report == nil {
		return nil, err
	}
	return &Result{
		Report:    rr.Report,
		Artifacts: rr.Artifacts,
		Dirty:     rr.Dirty,
		Failed:    rr.Failed(),
	}, err
}

func (m *migrator) Restore() ([]string, error) {
	restored, err := m.orch.Restore(m.cfg.WorkDir)
	paths := make([]string, len(restored))
	for i, r := range restored {
		paths[i] = r.FilePath
	}
	return paths, err
}

func (m *migrator) Validate(ctx context.Context, save bool) (*types.ValidationReport, error) {
	r, err := m.validator.Run(ctx, m.cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	if save && m.cfg.ReportDir != "" {
		if _, err := report.WriteValidation(m.cfg.ReportDir, r); err != nil {
			return r, err
		}
	}
	return r, nil
}

func (m *migrator) TransformProps(component string, in map[string]any) (map[string]any, []string) {
	out, warnings, _ := props.TransformProps(m.table, component, in)
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.String()
	}
	return out, msgs
}

func (m *migrator) Track(component, context string) {
	m.orch.Registry().Track(component, context)
}

func (m *migrator) Deprecations() []types.DeprecationUsage {
	return m.orch.Registry().Usage()
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.WorkDir == "" {
		return fmt.Errorf("WorkDir is required")
	}
	if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("WorkDir %q does not exist or is not a directory", cfg.WorkDir)
	}
	if cfg.LabelWindow < 0 {
		return fmt.Errorf("LabelWindow must not be negative")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{"@": "src"}
	}
	if cfg.LabelWindow == 0 {
		cfg.LabelWindow = validate.DefaultLabelWindow
	}
}
