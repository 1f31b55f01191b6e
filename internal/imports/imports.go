// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package imports moves legacy component imports to the unified component
// paths and renames the remaining references to the migrated names.
package imports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/petar-djukic/unimigrate/internal/jsx"
	"github.com/petar-djukic/unimigrate/internal/mapping"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Result is the outcome of rewriting one file.
type Result struct {
	Text       string
	Changed    bool
	Migrations []types.ImportMigration
}

// Rewriter rewrites import statements.
type Rewriter struct {
	table  *mapping.Table
	logger zerolog.Logger
}

// New returns a rewriter for the components in table.
func New(table *mapping.Table, logger zerolog.Logger) *Rewriter {
	return &Rewriter{table: table, logger: logger}
}

// statement is an import statement being rebuilt.
type statement struct {
	orig      jsx.Import
	def       string
	namespace string
	named     []jsx.Specifier
	dirty     bool
}

func (s *statement) render() string {
	var parts []string
	if s.def != "" {
		parts = append(parts, s.def)
	}
	if s.namespace != "" {
		parts = append(parts, "* as "+s.namespace)
	}
	if len(s.named) > 0 {
		parts = append(parts, "{ "+joinSpecifiers(s.named)+" }")
	}
	if len(parts) == 0 {
		return ""
	}
	return formatImport(strings.Join(parts, ", "), s.orig.Source, s.orig.Quote, s.orig.Semicolon)
}

func formatImport(clause, source string, quote byte, semicolon bool) string {
	q := string(quote)
	out := "import " + clause + " from " + q + source + q
	if semicolon {
		out += ";"
	}
	return out
}

func joinSpecifiers(specs []jsx.Specifier) string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Imported
		if s.Local != s.Imported {
			names[i] += " as " + s.Local
		}
	}
	return strings.Join(names, ", ")
}

type edit struct {
	start, end int
	text       string
}

// Rewrite moves every mapped legacy import in text to an import of its
// unified component, grouped by import path. Unmapped specifiers stay in
// their original statement; a statement left with nothing to import is
// removed. References to an unaliased legacy name are renamed to the
// unified name; aliased imports keep their local name.
//
// Default imports are matched by local name, or through hints, which map a
// default import's local name to the legacy component its target exports.
func (r *Rewriter) Rewrite(ctx context.Context, path, text string, hints ...types.LegacyImport) (*Result, error) {
	f, err := jsx.ParseString(ctx, path, text)
	if err != nil {
		return nil, fmt.Errorf("rewriting imports: %w", err)
	}
	res := &Result{Text: text, Migrations: []types.ImportMigration{}}

	defaultHint := make(map[string]string, len(hints))
	for _, h := range hints {
		defaultHint[h.LocalName] = h.ComponentName
	}

	var (
		stmts   []*statement
		byPath  = make(map[string]*statement)
		moved   = make(map[string][]jsx.Specifier)
		paths   []string
		renames = make(map[string]string)
		anchor  = -1
	)
	move := func(m mapping.Mapping, local string) {
		spec := jsx.Specifier{Imported: m.UnifiedName, Local: local}
		if local == m.LegacyName {
			spec.Local = m.UnifiedName
			renames[local] = m.UnifiedName
		}
		if _, ok := moved[m.ImportPath]; !ok {
			paths = append(paths, m.ImportPath)
		}
		moved[m.ImportPath] = append(moved[m.ImportPath], spec)
		res.Migrations = append(res.Migrations, types.ImportMigration{
			Legacy:     m.LegacyName,
			Unified:    m.UnifiedName,
			ImportPath: m.ImportPath,
		})
	}

	for _, imp := range f.Imports() {
		s := &statement{orig: imp, def: imp.Default, namespace: imp.Namespace}
		stmts = append(stmts, s)
		if imp.TypeOnly {
			continue
		}
		if _, seen := byPath[imp.Source]; !seen && imp.Namespace == "" {
			byPath[imp.Source] = s
		}

		if imp.Default != "" {
			name := imp.Default
			if hinted, ok := defaultHint[name]; ok {
				name = hinted
			}
			if m, ok := r.table.Lookup(name); ok {
				move(m, imp.Default)
				s.def = ""
				s.dirty = true
			}
		}
		for _, spec := range imp.Named {
			if m, ok := r.table.Lookup(spec.Imported); ok {
				move(m, spec.Local)
				s.dirty = true
				continue
			}
			s.named = append(s.named, spec)
		}
		if s.dirty {
			anchor = len(stmts) - 1
		}
	}
	if anchor < 0 {
		return res, nil
	}

	// A moved specifier whose local name another import already binds is
	// dropped; the file keeps that binding.
	bound := make(map[string]bool)
	for _, s := range stmts {
		for _, name := range []string{s.def, s.namespace} {
			if name != "" {
				bound[name] = true
			}
		}
		for _, spec := range s.named {
			bound[spec.Local] = true
		}
	}

	// Merge into existing statements for the same path; collect the rest
	// as new statements placed after the last rewritten one.
	var added []string
	for _, p := range paths {
		specs := unbound(dedupe(moved[p]), bound)
		if len(specs) == 0 {
			continue
		}
		if target, ok := byPath[p]; ok {
			target.named = mergeSpecifiers(target.named, specs)
			target.dirty = true
			continue
		}
		a := stmts[anchor].orig
		added = append(added, formatImport("{ "+joinSpecifiers(specs)+" }", p, a.Quote, a.Semicolon))
	}

	var edits []edit
	for i, s := range stmts {
		if !s.dirty && i != anchor {
			continue
		}
		out := s.render()
		if i == anchor && len(added) > 0 {
			if out != "" {
				out += "\n"
			}
			out += strings.Join(added, "\n")
		}
		start, end := s.orig.Start, s.orig.End
		if out == "" && end < len(text) && text[end] == '\n' {
			end++
		}
		edits = append(edits, edit{start: start, end: end, text: out})
	}

	for legacy, unified := range renames {
		for _, rg := range f.Identifiers(legacy) {
			edits = append(edits, edit{start: rg.Start, end: rg.End, text: unified})
		}
	}

	res.Text = applyEdits(text, edits)
	res.Changed = res.Text != text
	r.logger.Debug().
		Str("file", path).
		Int("migrations", len(res.Migrations)).
		Msg("imports rewritten")
	return res, nil
}

// dedupe drops repeated specifiers and sorts the rest by imported name.
func dedupe(specs []jsx.Specifier) []jsx.Specifier {
	seen := make(map[jsx.Specifier]bool, len(specs))
	out := make([]jsx.Specifier, 0, len(specs))
	for _, s := range specs {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Imported != out[j].Imported {
			return out[i].Imported < out[j].Imported
		}
		return out[i].Local < out[j].Local
	})
	return out
}

// unbound returns the specifiers whose local name is not in bound.
func unbound(specs []jsx.Specifier, bound map[string]bool) []jsx.Specifier {
	out := specs[:0]
	for _, s := range specs {
		if bound[s.Local] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// mergeSpecifiers appends the specifiers of add that existing lacks.
func mergeSpecifiers(existing, add []jsx.Specifier) []jsx.Specifier {
	have := make(map[jsx.Specifier]bool, len(existing))
	for _, s := range existing {
		have[s] = true
	}
	out := append([]jsx.Specifier(nil), existing...)
	for _, s := range add {
		if !have[s] {
			have[s] = true
			out = append(out, s)
		}
	}
	return out
}

// applyEdits applies non-overlapping edits from the end of text backwards
// so earlier offsets stay valid.
func applyEdits(text string, edits []edit) string {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	for _, e := range edits {
		text = text[:e.start] + e.text + text[e.end:]
	}
	return text
}
