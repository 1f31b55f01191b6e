// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the migration data model shared across unimigrate
// packages. JSON field names are the ones written to the persisted report
// artifacts.
package types

// Expr is an opaque JavaScript expression taken verbatim from source, such
// as the inside of `onClick={handleSave}`. It is never evaluated.
type Expr string

// LegacyFile is a source file that defines (exports) legacy components.
type LegacyFile struct {
	FilePath   string   `json:"filePath"`
	Components []string `json:"componentsDefinedHere"`
}

// LegacyImport records one legacy component brought into a file by an
// import statement.
type LegacyImport struct {
	FilePath      string `json:"filePath"`
	ComponentName string `json:"componentName"`
	LineNumber    int    `json:"lineNumber"`
	Source        string `json:"source"`    // Module specifier as written
	LocalName     string `json:"localName"` // Name bound in the importing file
}

// LegacyUsage aggregates the markup occurrences of one legacy component in
// one file.
type LegacyUsage struct {
	FilePath        string `json:"filePath"`
	ComponentName   string `json:"componentName"`
	OccurrenceCount int    `json:"occurrenceCount"`
	LineNumbers     []int  `json:"lineNumbers"`
}

// RankedFile is a file with legacy imports, scored by its centrality in the
// import graph. Higher scores migrate first.
type RankedFile struct {
	FilePath      string  `json:"filePath"`
	Score         float64 `json:"score"`
	LegacyImports int     `json:"legacyImports"`
}

// ScanError records a file the scanner could not read or parse.
type ScanError struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`
}

// ScanResult is the output of one scan. Paths are relative to Root and every
// slice is ordered by file path, then by position in the file.
type ScanResult struct {
	Root           string         `json:"root"`
	FilesScanned   int            `json:"filesScanned"`
	LegacyFiles    []LegacyFile   `json:"legacyFiles"`
	LegacyImports  []LegacyImport `json:"legacyImports"`
	LegacyUsages   []LegacyUsage  `json:"legacyUsages"`
	UnusedFiles    []LegacyFile   `json:"unusedFiles"`
	MigrationOrder []RankedFile   `json:"migrationOrder"`
	Errors         []ScanError    `json:"errors,omitempty"`
}

// FilesWithLegacyImports returns the distinct files that import at least
// one legacy component, in scan order.
func (r *ScanResult) FilesWithLegacyImports() []string {
	return distinctFiles(len(r.LegacyImports), func(i int) string { return r.LegacyImports[i].FilePath })
}

// FilesWithLegacyUsages returns the distinct files that render at least one
// legacy component, in scan order.
func (r *ScanResult) FilesWithLegacyUsages() []string {
	return distinctFiles(len(r.LegacyUsages), func(i int) string { return r.LegacyUsages[i].FilePath })
}

func distinctFiles(n int, at func(int) string) []string {
	seen := make(map[string]bool, n)
	var files []string
	for i := 0; i < n; i++ {
		f := at(i)
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	return files
}
