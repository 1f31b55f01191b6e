// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/petar-djukic/unimigrate/internal/verify"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// maxListed caps the entries printed per section unless verbose.
const maxListed = 10

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	dim     lipgloss.Style
}

// newStyles binds the palette to w so color is dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		heading: r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#16A34A")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#D97706")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#DC2626")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

func (s styles) grade(g string) lipgloss.Style {
	switch g {
	case "A", "B":
		return s.ok
	case "C", "D":
		return s.warn
	default:
		return s.bad
	}
}

func (s styles) priority(p types.Priority) lipgloss.Style {
	switch p {
	case types.PriorityHigh:
		return s.bad
	case types.PriorityMedium:
		return s.warn
	default:
		return s.dim
	}
}

// list writes up to maxListed lines (all when verbose) and a count of the rest.
func (s styles) list(b *strings.Builder, lines []string, verbose bool) {
	for i, l := range lines {
		if !verbose && i == maxListed {
			b.WriteString(s.dim.Render(fmt.Sprintf("  ... and %d more", len(lines)-maxListed)) + "\n")
			return
		}
		b.WriteString("  " + l + "\n")
	}
}

// RenderValidation writes a human-readable validation report to w.
func RenderValidation(w io.Writer, r *types.ValidationReport, verbose bool) error {
	s := newStyles(w)
	var b strings.Builder

	b.WriteString(s.title.Render("Migration Validation Report") + "\n")
	b.WriteString(s.dim.Render(r.Root) + "\n\n")

	sc := r.OverallScore
	fmt.Fprintf(&b, "Score: %s\n", s.grade(sc.Grade).Render(fmt.Sprintf("%d/100 (%s)", sc.Overall, sc.Grade)))
	fmt.Fprintf(&b, "  %-14s %3d\n", "References", sc.Breakdown.References)
	fmt.Fprintf(&b, "  %-14s %3d\n", "Accessibility", sc.Breakdown.Accessibility)
	fmt.Fprintf(&b, "  %-14s %3d\n\n", "Testing", sc.Breakdown.Testing)

	refs := r.BrokenReferences
	b.WriteString(s.heading.Render("Broken references") + fmt.Sprintf(": %d imports, %d unknown components\n",
		refs.Summary.BrokenImports, refs.Summary.UnknownComponents))
	var lines []string
	for _, bi := range refs.BrokenImports {
		lines = append(lines, fmt.Sprintf("%s:%d  import %q does not resolve", bi.FilePath, bi.Line, bi.Source))
	}
	for _, uc := range refs.UnknownComponents {
		lines = append(lines, fmt.Sprintf("%s:%d  <%s> is not defined or imported", uc.FilePath, uc.Line, uc.Name))
	}
	s.list(&b, lines, verbose)
	b.WriteString("\n")

	a11y := r.Accessibility
	b.WriteString(s.heading.Render("Accessibility") + fmt.Sprintf(": %d errors, %d warnings\n",
		a11y.Summary.Errors, a11y.Summary.Warnings))
	lines = lines[:0]
	for _, is := range a11y.Issues {
		if is.Severity == types.SeverityInfo && !verbose {
			continue
		}
		sev := s.dim
		switch is.Severity {
		case types.SeverityError:
			sev = s.bad
		case types.SeverityWarning:
			sev = s.warn
		}
		lines = append(lines, fmt.Sprintf("%s:%d  %s %s", is.FilePath, is.Line, sev.Render(string(is.Severity)), is.Message))
	}
	s.list(&b, lines, verbose)
	b.WriteString("\n")

	vt := r.VisualTesting
	b.WriteString(s.heading.Render("Visual testing") + fmt.Sprintf(": %.1f%% coverage (%d/%d components)\n",
		vt.Summary.Coverage, vt.Summary.Tested, vt.Summary.Components))
	lines = lines[:0]
	for _, mt := range vt.MissingTests {
		lines = append(lines, fmt.Sprintf("%s  %s", mt.Component, s.dim.Render(mt.FilePath)))
	}
	s.list(&b, lines, verbose)
	b.WriteString("\n")

	if len(r.Recommendations) > 0 {
		b.WriteString(s.heading.Render("Recommendations") + "\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  %s %s: %s\n", s.priority(rec.Priority).Render("["+string(rec.Priority)+"]"), rec.Category, rec.Message)
			fmt.Fprintf(&b, "         %s\n", s.dim.Render("-> "+rec.Action))
		}
		b.WriteString("\n")
	}

	if len(r.NextSteps) > 0 {
		b.WriteString(s.heading.Render("Next steps") + "\n")
		for i, step := range r.NextSteps {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}

	if r.Passed() {
		b.WriteString(s.ok.Render("PASSED") + "\n")
	} else {
		b.WriteString(s.bad.Render("FAILED") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderCleanup writes a human-readable summary of a cleanup run to w.
// With verbose, every planned diff and the deprecation usage table are
// included.
func RenderCleanup(w io.Writer, r *types.MigrationReport, verbose bool) error {
	s := newStyles(w)
	var b strings.Builder

	title := "Legacy Component Cleanup"
	if r.Apply != nil && r.Apply.DryRun {
		title += " (dry run)"
	}
	b.WriteString(s.title.Render(title) + "\n")
	b.WriteString(s.dim.Render(r.Root) + "\n\n")

	sum := r.Summary
	b.WriteString(s.heading.Render("Plan") + "\n")
	fmt.Fprintf(&b, "  %-18s %d\n", "Legacy files", sum.LegacyFiles)
	fmt.Fprintf(&b, "  %-18s %d\n", "Legacy imports", sum.LegacyImports)
	fmt.Fprintf(&b, "  %-18s %d\n", "Legacy usages", sum.LegacyUsages)
	fmt.Fprintf(&b, "  %-18s %d\n", "Files to migrate", sum.FilesToMigrate)
	fmt.Fprintf(&b, "  %-18s %d\n", "Unused files", sum.UnusedFiles)
	fmt.Fprintf(&b, "  %-18s %d\n", "Unused styles", sum.UnusedStyles)
	fmt.Fprintf(&b, "  %-18s %d\n\n", "Duplicate styles", sum.DuplicateStyles)

	if verbose && len(r.Deprecations) > 0 {
		b.WriteString(s.heading.Render("Deprecated usage") + "\n")
		for _, d := range r.Deprecations {
			repl := d.Replacement
			if repl == "" {
				repl = s.dim.Render("no replacement")
			}
			fmt.Fprintf(&b, "  %-20s %4d  -> %s\n", d.Component, d.Count, repl)
		}
		b.WriteString("\n")
	}

	if a := r.Apply; a != nil {
		for _, stage := range []struct {
			name  string
			batch types.BatchResult
		}{
			{"Migrated", a.Migrated},
			{"Removed", a.Removed},
			{"Styles", a.Styles},
		} {
			bs := stage.batch.Summary
			if bs.Total == 0 {
				continue
			}
			line := fmt.Sprintf("%d/%d changed", bs.Changed, bs.Total)
			if bs.Errors > 0 {
				line += ", " + s.bad.Render(fmt.Sprintf("%d errors", bs.Errors))
			}
			fmt.Fprintf(&b, "%s: %s\n", s.heading.Render(stage.name), line)
			for _, f := range stage.batch.Files {
				if !f.Success {
					fmt.Fprintf(&b, "  %s  %s\n", f.FilePath, s.bad.Render(f.Error))
				}
				if verbose {
					for _, warning := range f.Warnings {
						fmt.Fprintf(&b, "  %s  %s\n", f.FilePath, s.warn.Render(warning))
					}
					if f.Diff != "" {
						b.WriteString(f.Diff)
						if !strings.HasSuffix(f.Diff, "\n") {
							b.WriteString("\n")
						}
					}
				}
			}
		}
		for _, stage := range a.Skipped {
			fmt.Fprintf(&b, "%s\n", s.dim.Render("Skipped: "+stage))
		}
		b.WriteString("\n")
	}

	if v := r.Verification; v != nil {
		b.WriteString(verify.Format(v) + "\n")
	}
	if r.Commit != "" {
		fmt.Fprintf(&b, "Committed %s\n", r.Commit)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
