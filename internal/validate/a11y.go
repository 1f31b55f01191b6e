// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/petar-djukic/unimigrate/internal/jsx"
	"github.com/petar-djukic/unimigrate/internal/scanner"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// DefaultLabelWindow is how many bytes around an <input> are searched for
// a <label>.
const DefaultLabelWindow = 200

// Accessibility rule names.
const (
	RuleImgAlt       = "img-alt"
	RuleInputLabel   = "input-label"
	RuleButtonName   = "button-name"
	RuleHeadingOrder = "heading-order"
	RuleColorOnly    = "color-only"
	RuleFocus        = "focus-management"
)

var (
	colorOnly = regexp.MustCompile(`(?i)\b(?:marked|shown|highlighted|displayed|indicated|colou?red)\s+(?:in\s+)?(?:red|green|blue|yellow|orange|purple|gr[ae]y)\b` +
		`|\b(?:red|green)\s+(?:items?|fields?|text|rows?|means|indicates)\b`)
	focusAPI       = regexp.MustCompile(`\.focus\(|\bautoFocus\b|\bFocusTrap\b|\buseFocus\w*|\bfocus-trap\b`)
	headingTag     = regexp.MustCompile(`^h([1-6])$`)
	accessibleName = []string{"aria-label", "aria-labelledby", "title"}
)

// CheckAccessibility runs the accessibility rules over every source.
// labelWindow <= 0 uses DefaultLabelWindow.
func CheckAccessibility(sources []*scanner.Source, labelWindow int) types.Accessibility {
	if labelWindow <= 0 {
		labelWindow = DefaultLabelWindow
	}
	out := types.Accessibility{Issues: []types.A11yIssue{}}
	for _, src := range sources {
		issues, focus := checkFile(src, labelWindow)
		out.Issues = append(out.Issues, issues...)
		if focus {
			out.Summary.FocusManagementFiles++
		}
	}
	for _, is := range out.Issues {
		switch is.Severity {
		case types.SeverityError:
			out.Summary.Errors++
		case types.SeverityWarning:
			out.Summary.Warnings++
		}
	}
	out.Summary.IsCompliant = out.Summary.Errors == 0
	return out
}

func checkFile(src *scanner.Source, labelWindow int) ([]types.A11yIssue, bool) {
	f := src.File
	text := string(f.Src)
	var issues []types.A11yIssue
	add := func(line int, rule string, sev types.Severity, msg string) {
		issues = append(issues, types.A11yIssue{FilePath: src.Rel, Line: line, Rule: rule, Severity: sev, Message: msg})
	}

	prevHeading := 0
	for _, el := range f.Elements() {
		if el.Malformed {
			continue
		}
		switch el.Name {
		case "img":
			if !el.HasAttr("alt") && !el.HasSpread() {
				add(el.Line, RuleImgAlt, types.SeverityError, "<img> has no alt attribute")
			}
		case "input":
			if inputNeedsLabel(el) && !labelNearby(text, el, labelWindow) {
				add(el.Line, RuleInputLabel, types.SeverityError, "<input> has no accessible name or nearby <label>")
			}
		case "button":
			if !hasAccessibleName(el) && !el.HasSpread() &&
				f.InnerText(el) == "" && !f.HasExpressionChild(el) {
				add(el.Line, RuleButtonName, types.SeverityError, "<button> has no text content or accessible name")
			}
		}

		if level := headingLevel(el); level > 0 {
			if prevHeading > 0 && level > prevHeading+1 {
				add(el.Line, RuleHeadingOrder, types.SeverityWarning,
					fmt.Sprintf("heading level jumps from h%d to h%d", prevHeading, level))
			}
			prevHeading = level
		}
	}

	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "import ") {
			continue
		}
		if m := colorOnly.FindString(line); m != "" {
			add(i+1, RuleColorOnly, types.SeverityWarning,
				fmt.Sprintf("%q may convey information by color alone", m))
		}
	}

	focus := false
	if loc := focusAPI.FindStringIndex(text); loc != nil {
		focus = true
		add(f.LineAt(loc[0]), RuleFocus, types.SeverityInfo, "file manages focus")
	}
	return issues, focus
}

func hasAccessibleName(el jsx.Element) bool {
	for _, a := range accessibleName {
		if el.HasAttr(a) {
			return true
		}
	}
	return false
}

func inputNeedsLabel(el jsx.Element) bool {
	if hasAccessibleName(el) || el.HasSpread() {
		return false
	}
	if a, ok := el.Attr("type"); ok {
		if v, isStr := a.Value.(string); isStr && (v == "hidden" || v == "submit" || v == "button") {
			return false
		}
	}
	return true
}

func labelNearby(text string, el jsx.Element, window int) bool {
	lo := max(0, el.Start-window)
	hi := min(len(text), el.End+window)
	return strings.Contains(text[lo:hi], "<label")
}

// headingLevel returns N for <hN> and <Typography variant="hN">, else 0.
func headingLevel(el jsx.Element) int {
	name := el.Name
	if el.Name == "Typography" {
		a, ok := el.Attr("variant")
		if !ok {
			return 0
		}
		v, isStr := a.Value.(string)
		if !isStr {
			return 0
		}
		name = v
	}
	if m := headingTag.FindStringSubmatch(name); m != nil {
		return int(m[1][0] - '0')
	}
	return 0
}
