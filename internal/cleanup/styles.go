// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"

	"github.com/petar-djukic/unimigrate/pkg/types"
)

// DefaultStyleExtensions are the stylesheet extensions analyzed when none
// are configured.
var DefaultStyleExtensions = []string{".css"}

var sourceToken = regexp.MustCompile(`[\w-]+`)

// cssRule is one rule_set of a stylesheet. Offsets index the original text.
type cssRule struct {
	selector string
	body     string
	line     int
	start    int // First byte of the rule
	end      int // Just past the closing brace
	selStart int
	selEnd   int
	parts    []cssSelector
}

// cssSelector is one comma-separated selector of a rule.
type cssSelector struct {
	text    string
	classes []string
}

// parseRules returns every well-formed rule_set of a stylesheet in document
// order, including rules nested in @media and other at-rule blocks.
func parseRules(text string) []cssRule {
	src := []byte(text)
	root, err := sitter.ParseCtx(context.Background(), src, css.GetLanguage())
	if err != nil || root == nil {
		return nil
	}
	var out []cssRule
	walkCSS(root, func(n *sitter.Node) {
		if n.Type() != "rule_set" || n.HasError() {
			return
		}
		sels, block := childOfType(n, "selectors"), childOfType(n, "block")
		if sels == nil || block == nil {
			return
		}
		r := cssRule{
			selector: sels.Content(src),
			line:     int(sels.StartPoint().Row) + 1,
			start:    int(n.StartByte()),
			end:      int(n.EndByte()),
			selStart: int(sels.StartByte()),
			selEnd:   int(sels.EndByte()),
		}
		for _, part := range namedChildrenCSS(sels) {
			if part.Type() == "comment" {
				continue
			}
			r.parts = append(r.parts, cssSelector{text: part.Content(src), classes: classesOf(part, src)})
		}
		var decls []string
		for _, d := range namedChildrenCSS(block) {
			if d.Type() == "declaration" {
				decls = append(decls, d.Content(src))
			}
		}
		r.body = normalizeBody(strings.Join(decls, " "))
		out = append(out, r)
	})
	return out
}

// classesOf returns the class names of every class_selector under n.
// Pseudo-class names and attribute values are not classes.
func classesOf(n *sitter.Node, src []byte) []string {
	var out []string
	walkCSS(n, func(c *sitter.Node) {
		if c.Type() != "class_selector" {
			return
		}
		for _, name := range namedChildrenCSS(c) {
			if name.Type() == "class_name" {
				out = append(out, name.Content(src))
			}
		}
	})
	return out
}

func (r cssRule) classes() []string {
	var out []string
	for _, p := range r.parts {
		out = append(out, p.classes...)
	}
	return out
}

// walkCSS visits n and its named descendants in document order.
func walkCSS(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for _, c := range namedChildrenCSS(n) {
		walkCSS(c, visit)
	}
}

func namedChildrenCSS(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, c := range namedChildrenCSS(n) {
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

func normalizeBody(body string) string {
	return strings.Join(strings.Fields(body), " ")
}

// sourceTokens returns every identifier-like token in the given files. A
// class counts as referenced when its name appears as a token anywhere,
// which covers className strings, template literals and CSS module
// property access.
func sourceTokens(root string, files []string) map[string]bool {
	tokens := make(map[string]bool)
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		for _, t := range sourceToken.FindAllString(string(data), -1) {
			tokens[t] = true
		}
	}
	return tokens
}

// AnalyzeStyles cross-references the classes defined in stylesheets with
// the tokens of the source files. It returns classes no source references
// and groups of rules with identical bodies under different selectors.
// Unreadable stylesheets are skipped.
func AnalyzeStyles(root string, stylesheets, sources []string) ([]types.StyleFinding, []types.DuplicateStyle) {
	tokens := sourceTokens(root, sources)

	unused := []types.StyleFinding{}
	bodies := make(map[string][]types.StyleLocation)
	var bodyOrder []string

	for _, rel := range stylesheets {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		text := string(data)
		seen := make(map[string]bool)
		for _, r := range parseRules(text) {
			line := r.line
			for _, c := range r.classes() {
				key := c + "\x00" + r.selector
				if tokens[c] || seen[key] {
					continue
				}
				seen[key] = true
				unused = append(unused, types.StyleFinding{FilePath: rel, ClassName: c, Selector: r.selector, Line: line})
			}

			body := r.body
			if body == "" {
				continue
			}
			if _, ok := bodies[body]; !ok {
				bodyOrder = append(bodyOrder, body)
			}
			bodies[body] = append(bodies[body], types.StyleLocation{FilePath: rel, Selector: r.selector, Line: line})
		}
	}

	duplicates := []types.DuplicateStyle{}
	for _, body := range bodyOrder {
		locs := bodies[body]
		selectors := make(map[string]bool)
		for _, l := range locs {
			selectors[l.Selector] = true
		}
		if len(selectors) < 2 {
			continue
		}
		duplicates = append(duplicates, types.DuplicateStyle{Body: body, Locations: locs})
	}
	sort.SliceStable(unused, func(i, j int) bool {
		if unused[i].FilePath != unused[j].FilePath {
			return unused[i].FilePath < unused[j].FilePath
		}
		return unused[i].Line < unused[j].Line
	})
	return unused, duplicates
}

// PruneStylesheet removes the selectors that reference an unused class. A
// rule left without selectors is removed entirely. It returns the new text
// and the number of rules removed or rewritten.
func PruneStylesheet(text string, unused map[string]bool) (string, int) {
	var b strings.Builder
	cursor, changed := 0, 0
	for _, r := range parseRules(text) {
		if r.start < cursor {
			// Nested in a rule already removed.
			continue
		}
		var keep []string
		for _, part := range r.parts {
			dead := false
			for _, c := range part.classes {
				if unused[c] {
					dead = true
					break
				}
			}
			if !dead {
				keep = append(keep, part.text)
			}
		}
		if len(keep) == len(r.parts) {
			continue
		}
		changed++
		if len(keep) == 0 {
			b.WriteString(text[cursor:r.start])
			cursor = r.end
			if cursor < len(text) && text[cursor] == '\n' {
				cursor++
			}
			continue
		}
		b.WriteString(text[cursor:r.selStart])
		b.WriteString(strings.Join(keep, ", "))
		cursor = r.selEnd
	}
	b.WriteString(text[cursor:])
	return b.String(), changed
}
