// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "time"

// FileAction names the operation applied to a file.
type FileAction string

const (
	ActionMigrate     FileAction = "migrate"
	ActionCodemod     FileAction = "codemod"
	ActionRemove      FileAction = "remove"
	ActionPruneStyles FileAction = "prune-styles"
)

// FileResult is the outcome of one file in a batch. A failed file has
// Success=false and Error set; it never aborts the batch.
type FileResult struct {
	FilePath        string                 `json:"filePath"`
	Action          FileAction             `json:"action"`
	Success         bool                   `json:"success"`
	Changed         bool                   `json:"changed"`
	DryRun          bool                   `json:"dryRun"`
	Backups         []string               `json:"backups,omitempty"`
	Migrations      []ImportMigration      `json:"migrations,omitempty"`
	Transformations []TransformationRecord `json:"transformations,omitempty"`
	Warnings        []string               `json:"warnings,omitempty"`
	Diff            string                 `json:"diff,omitempty"`
	Error           string                 `json:"error,omitempty"`
}

// BatchSummary counts the outcomes of a batch.
type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Changed   int `json:"changed"`
	Errors    int `json:"errors"`
}

// BatchResult holds every per-file result of a batch and its summary.
type BatchResult struct {
	Files   []FileResult `json:"files"`
	Summary BatchSummary `json:"summary"`
}

// Summarize recomputes Summary from Files.
func (b *BatchResult) Summarize() {
	s := BatchSummary{Total: len(b.Files)}
	for _, f := range b.Files {
		if !f.Success {
			s.Errors++
			continue
		}
		s.Succeeded++
		if f.Changed {
			s.Changed++
		}
	}
	b.Summary = s
}

// ChangedFiles returns the paths of successful files that were changed.
func (b *BatchResult) ChangedFiles() []string {
	var files []string
	for _, f := range b.Files {
		if f.Success && f.Changed {
			files = append(files, f.FilePath)
		}
	}
	return files
}

// ApplyResult is the outcome of applying a cleanup plan.
type ApplyResult struct {
	DryRun   bool        `json:"dryRun"`
	Migrated BatchResult `json:"migrated"`
	Removed  BatchResult `json:"removed"`
	Styles   BatchResult `json:"styles"`
	Skipped  []string    `json:"skipped,omitempty"` // Stages declined at the interactive prompt
}

// Errors returns the total number of failed files across all stages.
func (a *ApplyResult) Errors() int {
	return a.Migrated.Summary.Errors + a.Removed.Summary.Errors + a.Styles.Summary.Errors
}

// TouchedFiles returns every path changed or removed by the apply.
func (a *ApplyResult) TouchedFiles() []string {
	var files []string
	files = append(files, a.Migrated.ChangedFiles()...)
	files = append(files, a.Removed.ChangedFiles()...)
	files = append(files, a.Styles.ChangedFiles()...)
	return files
}

// VerifyProblem is one diagnostic parsed from verification output.
type VerifyProblem struct {
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
	Context  string `json:"context,omitempty"`
}

// Verification is the outcome of the post-migration verification command.
type Verification struct {
	Command  string          `json:"command"`
	OK       bool            `json:"ok"`
	Duration time.Duration   `json:"duration"`
	Output   string          `json:"output,omitempty"`
	Problems []VerifyProblem `json:"problems,omitempty"`
}
