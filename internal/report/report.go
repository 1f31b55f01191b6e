// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report persists the JSON report artifacts and renders reports
// for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/petar-djukic/unimigrate/internal/fsutil"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Artifact file names.
const (
	MigrationFile    = "migration-report.json"
	UnusedStylesFile = "unused-styles-report.json"
	ValidationFile   = "validation-report.json"
)

// WriteJSON marshals v with two-space indentation and writes it atomically
// to path, creating the parent directory.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	data = append(data, '\n')
	if err := fsutil.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteMigration writes migration-report.json into dir and returns its path.
func WriteMigration(dir string, r *types.MigrationReport) (string, error) {
	path := filepath.Join(dir, MigrationFile)
	return path, WriteJSON(path, r)
}

// WriteUnusedStyles writes unused-styles-report.json into dir when the
// plan found unused or duplicate styles. It returns "" when there was
// nothing to write.
func WriteUnusedStyles(dir string, r *types.CleanupReport) (string, error) {
	if len(r.UnusedStyles) == 0 && len(r.DuplicateStyles) == 0 {
		return "", nil
	}
	path := filepath.Join(dir, UnusedStylesFile)
	return path, WriteJSON(path, types.UnusedStylesReport{
		RunID:           r.RunID,
		GeneratedAt:     r.GeneratedAt,
		UnusedStyles:    r.UnusedStyles,
		DuplicateStyles: r.DuplicateStyles,
	})
}

// WriteValidation writes validation-report.json into dir and returns its path.
func WriteValidation(dir string, r *types.ValidationReport) (string, error) {
	path := filepath.Join(dir, ValidationFile)
	return path, WriteJSON(path, r)
}
