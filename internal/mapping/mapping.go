// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mapping holds the read-only table that maps each legacy component
// to its unified replacement and the prop rules that carry its props over.
package mapping

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMappingNotFound is returned when a component name has no entry.
	ErrMappingNotFound = errors.New("mapping not found")

	// ErrInvalidMapping is returned when a table fails validation.
	ErrInvalidMapping = errors.New("invalid mapping")
)

// Family groups legacy components that share a unified replacement and a
// codemod pass.
type Family string

const (
	FamilyCard   Family = "card"
	FamilyButton Family = "button"
	FamilyTable  Family = "table"
	FamilyLayout Family = "layout"
)

// Families lists every family in codemod pass order.
var Families = []Family{FamilyCard, FamilyButton, FamilyTable, FamilyLayout}

// RuleKind discriminates the variants of Rule.
type RuleKind int

const (
	// Rename moves the value of From to To unchanged. From == To declares a
	// prop that passes through as-is.
	Rename RuleKind = iota
	// Transform rewrites the value of From with Apply and stores it at To.
	Transform
	// DefaultIfAbsent sets To to Default() when no observed prop produced To.
	DefaultIfAbsent
)

func (k RuleKind) String() string {
	switch k {
	case Rename:
		return "rename"
	case Transform:
		return "transform"
	case DefaultIfAbsent:
		return "default"
	default:
		return "unknown"
	}
}

// TransformFunc converts a legacy prop value. Returning keep=false drops the
// prop from the output.
type TransformFunc func(v any) (out any, keep bool)

// Rule is one prop rule. Which fields are meaningful depends on Kind.
type Rule struct {
	Kind    RuleKind
	From    string
	To      string
	Apply   TransformFunc
	Default func() any
}

// Mapping is one legacy component's entry.
type Mapping struct {
	LegacyName      string
	UnifiedName     string
	ImportPath      string
	Family          Family
	Rules           []Rule
	BreakingChanges []string
}

// RuleFor returns the Rename or Transform rule that consumes prop, and its
// index in Rules. The index orders precedence when two props map to the
// same target: the lower index wins.
func (m Mapping) RuleFor(prop string) (Rule, int, bool) {
	for i, r := range m.Rules {
		if r.Kind != DefaultIfAbsent && r.From == prop {
			return r, i, true
		}
	}
	return Rule{}, -1, false
}

// Defaults returns the DefaultIfAbsent rules in declaration order.
func (m Mapping) Defaults() []Rule {
	var out []Rule
	for _, r := range m.Rules {
		if r.Kind == DefaultIfAbsent {
			out = append(out, r)
		}
	}
	return out
}

// PropRenames returns From -> To for every Rename and Transform rule.
func (m Mapping) PropRenames() map[string]string {
	out := make(map[string]string)
	for _, r := range m.Rules {
		if r.Kind != DefaultIfAbsent {
			out[r.From] = r.To
		}
	}
	return out
}

// validate checks a single entry. Besides required fields it rejects rule
// sets that would not be idempotent: a rule whose target is consumed by a
// different, non-identity rule would rewrite its own output on a second
// pass.
func (m Mapping) validate() error {
	if m.LegacyName == "" {
		return fmt.Errorf("%w: empty legacy name", ErrInvalidMapping)
	}
	if m.UnifiedName == "" || m.ImportPath == "" {
		return fmt.Errorf("%w: %s: unified name and import path are required", ErrInvalidMapping, m.LegacyName)
	}
	if m.LegacyName == m.UnifiedName {
		return fmt.Errorf("%w: %s maps to itself", ErrInvalidMapping, m.LegacyName)
	}
	seen := make(map[string]bool)
	for i, r := range m.Rules {
		if r.To == "" {
			return fmt.Errorf("%w: %s: rule %d has no target", ErrInvalidMapping, m.LegacyName, i)
		}
		switch r.Kind {
		case Rename, Transform:
			if r.From == "" {
				return fmt.Errorf("%w: %s: rule %d has no source prop", ErrInvalidMapping, m.LegacyName, i)
			}
			if seen[r.From] {
				return fmt.Errorf("%w: %s: prop %q has more than one rule", ErrInvalidMapping, m.LegacyName, r.From)
			}
			seen[r.From] = true
			if r.Kind == Transform && r.Apply == nil {
				return fmt.Errorf("%w: %s: transform of %q has no function", ErrInvalidMapping, m.LegacyName, r.From)
			}
		case DefaultIfAbsent:
			if r.Default == nil {
				return fmt.Errorf("%w: %s: default for %q has no value", ErrInvalidMapping, m.LegacyName, r.To)
			}
		default:
			return fmt.Errorf("%w: %s: rule %d has unknown kind", ErrInvalidMapping, m.LegacyName, i)
		}
	}
	for _, r := range m.Rules {
		if r.Kind == DefaultIfAbsent {
			continue
		}
		consumer, _, ok := m.RuleFor(r.To)
		if ok && consumer.From != r.From && consumer.From != consumer.To {
			return fmt.Errorf("%w: %s: %q -> %q feeds non-identity rule %q -> %q",
				ErrInvalidMapping, m.LegacyName, r.From, r.To, consumer.From, consumer.To)
		}
	}
	return nil
}

// Table is an immutable, validated set of mappings keyed by legacy name.
type Table struct {
	entries map[string]Mapping
	names   []string
}

// NewTable validates entries and builds a table. Legacy names must be unique.
func NewTable(entries ...Mapping) (*Table, error) {
	t := &Table{entries: make(map[string]Mapping, len(entries))}
	for _, m := range entries {
		if err := m.validate(); err != nil {
			return nil, err
		}
		if _, dup := t.entries[m.LegacyName]; dup {
			return nil, fmt.Errorf("%w: duplicate legacy name %s", ErrInvalidMapping, m.LegacyName)
		}
		t.entries[m.LegacyName] = m
		t.names = append(t.names, m.LegacyName)
	}
	sort.Strings(t.names)
	return t, nil
}

// Lookup returns the entry for a legacy component name.
func (t *Table) Lookup(name string) (Mapping, bool) {
	m, ok := t.entries[name]
	return m, ok
}

// Get is Lookup returning an error wrapping ErrMappingNotFound for unknown
// names.
func (t *Table) Get(name string) (Mapping, error) {
	m, ok := t.entries[name]
	if !ok {
		return Mapping{}, fmt.Errorf("%w: %s", ErrMappingNotFound, name)
	}
	return m, nil
}

// IsDeprecated reports whether name is a legacy component in the table.
func (t *Table) IsDeprecated(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// AllLegacyNames returns every legacy name, sorted.
func (t *Table) AllLegacyNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// ByFamily returns the entries of one family, sorted by legacy name.
func (t *Table) ByFamily(f Family) []Mapping {
	var out []Mapping
	for _, n := range t.names {
		if m := t.entries[n]; m.Family == f {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.names) }

// Merge returns a new table with overlay entries replacing same-named
// entries wholesale and new names appended.
func (t *Table) Merge(overlay ...Mapping) (*Table, error) {
	byName := make(map[string]Mapping, len(t.entries)+len(overlay))
	for n, m := range t.entries {
		byName[n] = m
	}
	for _, m := range overlay {
		byName[m.LegacyName] = m
	}
	merged := make([]Mapping, 0, len(byName))
	for _, m := range byName {
		merged = append(merged, m)
	}
	return NewTable(merged...)
}
