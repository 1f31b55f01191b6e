// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package validate checks a migrated source tree for broken references,
// accessibility problems and missing component tests, and scores the
// result.
package validate

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/petar-djukic/unimigrate/internal/jsx"
	"github.com/petar-djukic/unimigrate/internal/resolve"
	"github.com/petar-djukic/unimigrate/internal/scanner"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Options configures a Validator.
type Options struct {
	Walk        scanner.WalkOptions
	Aliases     map[string]string
	LabelWindow int // Bytes searched around an <input> for a <label>
	Concurrency int
	Logger      zerolog.Logger
}

// Validator runs the post-migration checks.
type Validator struct {
	opts Options
}

// New returns a validator.
func New(opts Options) *Validator {
	if len(opts.Walk.Extensions) == 0 {
		opts.Walk.Extensions = jsx.DefaultExtensions
	}
	return &Validator{opts: opts}
}

// Run checks the tree at root and returns the report.
func (v *Validator) Run(ctx context.Context, root string) (*types.ValidationReport, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}
	paths, err := scanner.Walk(absRoot, v.opts.Walk)
	if err != nil {
		return nil, err
	}
	sources, errs := scanner.Load(ctx, absRoot, paths, v.opts.Concurrency)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	for _, e := range errs {
		v.opts.Logger.Warn().Str("file", e.FilePath).Str("error", e.Message).Msg("skipping unreadable file")
	}

	refs := CheckReferences(sources, resolve.New(absRoot, v.opts.Aliases))
	a11y := CheckAccessibility(sources, v.opts.LabelWindow)
	vt := CheckVisualTesting(sources, paths)

	report := &types.ValidationReport{
		RunID:            uuid.NewString(),
		GeneratedAt:      time.Now().UTC(),
		Root:             absRoot,
		OverallScore:     ComputeScore(refs, a11y, vt),
		BrokenReferences: refs,
		Accessibility:    a11y,
		VisualTesting:    vt,
		Recommendations:  Recommendations(refs, a11y, vt),
	}
	report.NextSteps = NextSteps(report)

	v.opts.Logger.Debug().
		Int("files", len(sources)).
		Int("score", report.OverallScore.Overall).
		Str("grade", report.OverallScore.Grade).
		Bool("passed", report.Passed()).
		Msg("validation complete")
	return report, nil
}
