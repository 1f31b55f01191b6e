// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package validate

import (
	"fmt"
	"math"

	"github.com/petar-djukic/unimigrate/pkg/types"
)

// ComputeScore combines the three checks. References score 100 or 0.
// Accessibility loses 10 per error and 5 per warning once any error
// exists. Testing loses 5 per missing test. The overall score is the
// rounded mean.
func ComputeScore(refs types.BrokenReferences, a11y types.Accessibility, vt types.VisualTesting) types.Score {
	b := types.ScoreBreakdown{References: 0, Accessibility: 100, Testing: 100}
	if refs.Summary.IsValid {
		b.References = 100
	}
	if e := a11y.Summary.Errors; e > 0 {
		b.Accessibility = max(0, 100-10*e-5*a11y.Summary.Warnings)
	}
	if m := vt.Summary.MissingTests; m > 0 {
		b.Testing = max(0, 100-5*m)
	}
	overall := int(math.Round(float64(b.References+b.Accessibility+b.Testing) / 3))
	return types.Score{Overall: overall, Grade: Grade(overall), Breakdown: b}
}

// Grade maps a 0-100 score to a letter.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// Recommendations returns follow-up items, highest priority first.
func Recommendations(refs types.BrokenReferences, a11y types.Accessibility, vt types.VisualTesting) []types.Recommendation {
	var out []types.Recommendation
	if n := refs.Summary.BrokenImports; n > 0 {
		out = append(out, types.Recommendation{
			Priority: types.PriorityHigh,
			Category: "references",
			Message:  fmt.Sprintf("%d imports do not resolve to a file", n),
			Action:   "Fix the import paths or restore the missing modules",
		})
	}
	if n := refs.Summary.UnknownComponents; n > 0 {
		out = append(out, types.Recommendation{
			Priority: types.PriorityHigh,
			Category: "references",
			Message:  fmt.Sprintf("%d components are rendered without being imported or defined", n),
			Action:   "Import the unified replacements for the listed components",
		})
	}
	if n := a11y.Summary.Errors; n > 0 {
		out = append(out, types.Recommendation{
			Priority: types.PriorityHigh,
			Category: "accessibility",
			Message:  fmt.Sprintf("%d accessibility errors", n),
			Action:   "Add alt text, labels and accessible names to the listed elements",
		})
	}
	if n := a11y.Summary.Warnings; n > 0 {
		out = append(out, types.Recommendation{
			Priority: types.PriorityMedium,
			Category: "accessibility",
			Message:  fmt.Sprintf("%d accessibility warnings", n),
			Action:   "Review heading order and color-only cues",
		})
	}
	if n := vt.Summary.MissingTests; n > 0 {
		p := types.PriorityLow
		if vt.Summary.Coverage < 50 {
			p = types.PriorityMedium
		}
		out = append(out, types.Recommendation{
			Priority: p,
			Category: "testing",
			Message:  fmt.Sprintf("%d components have no test or story (coverage %.1f%%)", n, vt.Summary.Coverage),
			Action:   "Add tests or stories for the migrated components",
		})
	}
	if len(out) == 0 {
		out = append(out, types.Recommendation{
			Priority: types.PriorityLow,
			Category: "maintenance",
			Message:  "No migration issues found",
			Action:   "Delete the legacy component sources and backup files",
		})
	}
	return out
}

// NextSteps returns the ordered follow-up actions for a report.
func NextSteps(r *types.ValidationReport) []string {
	var steps []string
	if !r.BrokenReferences.Summary.IsValid {
		steps = append(steps, "Fix broken imports and unknown components")
	}
	if !r.Accessibility.Summary.IsCompliant {
		steps = append(steps, "Resolve accessibility errors")
	}
	if r.VisualTesting.Summary.MissingTests > 0 {
		steps = append(steps, "Add tests for untested components")
	}
	if r.Passed() {
		steps = append(steps,
			"Commit the migrated sources",
			"Remove *.backup files once the migration is verified")
	} else {
		steps = append(steps, "Re-run validate-migration")
	}
	return steps
}
