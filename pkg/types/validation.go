// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "time"

// Severity grades an accessibility finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ScoreBreakdown holds the per-check scores, each 0-100.
type ScoreBreakdown struct {
	References    int `json:"references"`
	Accessibility int `json:"accessibility"`
	Testing       int `json:"testing"`
}

// Score is the weighted overall result of a validation run.
type Score struct {
	Overall   int            `json:"overall"`
	Grade     string         `json:"grade"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// BrokenImport is an import whose local target does not resolve to a file.
type BrokenImport struct {
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Source   string `json:"source"`
}

// UnknownComponent is a capitalized JSX tag that is neither defined nor
// imported in its file.
type UnknownComponent struct {
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Name     string `json:"name"`
}

// ReferenceSummary summarizes the broken-reference check.
type ReferenceSummary struct {
	FilesChecked      int  `json:"filesChecked"`
	BrokenImports     int  `json:"brokenImports"`
	UnknownComponents int  `json:"unknownComponents"`
	IsValid           bool `json:"isValid"`
}

// BrokenReferences is the broken-reference analysis.
type BrokenReferences struct {
	BrokenImports     []BrokenImport     `json:"brokenImports"`
	UnknownComponents []UnknownComponent `json:"unknownComponents"`
	Summary           ReferenceSummary   `json:"summary"`
}

// A11yIssue is one accessibility finding.
type A11yIssue struct {
	FilePath string   `json:"filePath"`
	Line     int      `json:"line"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// AccessibilitySummary summarizes the accessibility analysis.
type AccessibilitySummary struct {
	Errors               int  `json:"errors"`
	Warnings             int  `json:"warnings"`
	FocusManagementFiles int  `json:"focusManagementFiles"`
	IsCompliant          bool `json:"isCompliant"`
}

// Accessibility is the accessibility analysis.
type Accessibility struct {
	Issues  []A11yIssue          `json:"issues"`
	Summary AccessibilitySummary `json:"summary"`
}

// MissingTest is a component without any conventional test file.
type MissingTest struct {
	Component string   `json:"component"`
	FilePath  string   `json:"filePath"`
	Expected  []string `json:"expected"`
}

// VisualTestingSummary summarizes test coverage of components.
type VisualTestingSummary struct {
	Components   int     `json:"components"`
	Tested       int     `json:"tested"`
	MissingTests int     `json:"missingTests"`
	Coverage     float64 `json:"coverage"`
}

// VisualTesting is the visual-testing readiness analysis.
type VisualTesting struct {
	MissingTests []MissingTest        `json:"missingTests"`
	Summary      VisualTestingSummary `json:"summary"`
}

// Recommendation is one prioritized follow-up item.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
}

// ValidationReport is the payload of validation-report.json.
type ValidationReport struct {
	RunID            string           `json:"runId"`
	GeneratedAt      time.Time        `json:"generatedAt"`
	Root             string           `json:"root"`
	OverallScore     Score            `json:"overallScore"`
	BrokenReferences BrokenReferences `json:"brokenReferences"`
	Accessibility    Accessibility    `json:"accessibility"`
	VisualTesting    VisualTesting    `json:"visualTesting"`
	Recommendations  []Recommendation `json:"recommendations"`
	NextSteps        []string         `json:"nextSteps"`
}

// Passed reports whether references are valid and accessibility is
// compliant, the two conditions for a zero exit code.
func (r *ValidationReport) Passed() bool {
	return r.BrokenReferences.Summary.IsValid && r.Accessibility.Summary.IsCompliant
}
