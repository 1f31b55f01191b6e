// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "time"

// StyleFinding is a CSS class defined in a stylesheet but never referenced
// from any source file.
type StyleFinding struct {
	FilePath  string `json:"filePath"`
	ClassName string `json:"className"`
	Selector  string `json:"selector"`
	Line      int    `json:"line"`
}

// StyleLocation places one CSS rule.
type StyleLocation struct {
	FilePath string `json:"filePath"`
	Selector string `json:"selector"`
	Line     int    `json:"line"`
}

// DuplicateStyle groups rules whose bodies are identical under different
// selectors.
type DuplicateStyle struct {
	Body      string          `json:"body"`
	Locations []StyleLocation `json:"locations"`
}

// CleanupSummary counts the findings of a cleanup plan.
type CleanupSummary struct {
	LegacyFiles     int `json:"legacyFiles"`
	LegacyImports   int `json:"legacyImports"`
	LegacyUsages    int `json:"legacyUsages"`
	FilesToMigrate  int `json:"filesToMigrate"`
	UnusedFiles     int `json:"unusedFiles"`
	UnusedStyles    int `json:"unusedStyles"`
	DuplicateStyles int `json:"duplicateStyles"`
}

// CleanupReport is the pure analysis half of a cleanup: what would be
// migrated, removed and pruned.
type CleanupReport struct {
	RunID           string             `json:"runId"`
	GeneratedAt     time.Time          `json:"generatedAt"`
	Root            string             `json:"root"`
	Scan            *ScanResult        `json:"scan"`
	FilesToMigrate  []string           `json:"filesToMigrate"`
	UnusedFiles     []string           `json:"unusedFiles"`
	UnusedStyles    []StyleFinding     `json:"unusedStyles"`
	DuplicateStyles []DuplicateStyle   `json:"duplicateStyles"`
	Deprecations    []DeprecationUsage `json:"deprecations,omitempty"`
	Summary         CleanupSummary     `json:"summary"`
}

// UnusedStylesReport is the payload of unused-styles-report.json.
type UnusedStylesReport struct {
	RunID           string           `json:"runId"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	UnusedStyles    []StyleFinding   `json:"unusedStyles"`
	DuplicateStyles []DuplicateStyle `json:"duplicateStyles"`
}

// MigrationReport is the payload of migration-report.json.
type MigrationReport struct {
	*CleanupReport
	Apply        *ApplyResult  `json:"apply,omitempty"`
	Verification *Verification `json:"verification,omitempty"`
	Commit       string        `json:"commit,omitempty"`
}
