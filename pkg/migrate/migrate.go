// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package migrate is the public interface for unimigrate: it moves a React
// source tree from legacy components onto the unified component library
// and validates the result.
package migrate

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/petar-djukic/unimigrate/internal/cleanup"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Error types for the Migrator API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrMappings      = errors.New("loading mappings failed")
)

// Config configures a Migrator.
type Config struct {
	WorkDir       string            // Source tree root (required)
	ReportDir     string            // Where report artifacts go; none are written when empty
	MappingsFile  string            // Optional YAML overlay for the builtin mapping table
	Aliases       map[string]string // Import alias prefix -> directory (default {"@": "src"})
	ExcludeDirs   []string          // Directory names never scanned
	Extensions    []string          // Source extensions scanned
	LabelWindow   int               // Bytes searched around an <input> for a <label> (default 200)
	Concurrency   int               // Parser goroutines (default NumCPU)
	VerifyCmd     string            // Lint/build command run after a cleanup
	VerifyTimeout time.Duration     // Default 120s
	GitCommit     bool              // Commit touched files after a successful cleanup
	RequireClean  bool              // Refuse to clean up a dirty git work tree
	DirtyCommit   bool              // Commit uncommitted changes before a cleanup
	NoGit         bool              // Disable git operations
	Logger        zerolog.Logger    // Default: disabled
}

// ApplyOptions controls what a cleanup changes.
type ApplyOptions = cleanup.ApplyOptions

// Result holds the outcome of a Migrator.Cleanup invocation.
type Result struct {
	Report    *types.MigrationReport
	Artifacts []string // Report files written
	Dirty     bool     // The git work tree had uncommitted changes before the run
	Failed    bool     // The verification command failed
}

// Migrator runs migrations against a source tree.
type Migrator interface {
	// Scan finds legacy component definitions, imports and usages.
	Scan(ctx context.Context) (*types.ScanResult, error)

	// Plan returns what a cleanup would migrate, remove and prune without
	// changing anything.
	Plan(ctx context.Context) (*types.CleanupReport, error)

	// Cleanup runs the full lifecycle: git check, plan, apply, verify,
	// commit and report artifacts.
	Cleanup(ctx context.Context, opts ApplyOptions) (*Result, error)

	// Restore puts back every backed-up file and deletes the backups,
	// returning the restored paths.
	Restore() ([]string, error)

	// Validate checks references, accessibility and test coverage.
	// The report is written to ReportDir when save is true.
	Validate(ctx context.Context, save bool) (*types.ValidationReport, error)

	// TransformProps converts a legacy component's props to its unified
	// replacement's. Unknown components come back unchanged with a warning.
	TransformProps(component string, props map[string]any) (map[string]any, []string)

	// Track records a runtime usage of a component and emits a
	// deprecation warning the first time a deprecated one is seen.
	Track(component, context string)

	// Deprecations returns the usage table gathered by scans and Track.
	Deprecations() []types.DeprecationUsage
}
