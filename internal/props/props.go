// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package props converts a legacy component's props into the props of its
// unified replacement using the rules of the mapping table.
package props

import (
	"fmt"
	"sort"

	"github.com/petar-djukic/unimigrate/internal/mapping"
)

// WarningKind classifies a transformation warning.
type WarningKind string

const (
	WarnUnmappedProp    WarningKind = "unmapped-prop"
	WarnConflict        WarningKind = "conflict"
	WarnMappingNotFound WarningKind = "mapping-not-found"
)

// Warning is a non-fatal finding from a transformation.
type Warning struct {
	Kind      WarningKind
	Component string
	Prop      string
	Message   string
}

func (w Warning) String() string { return w.Message }

// Prop is one attribute in source order. Spread props ({...rest}) carry the
// spread expression in Value and have no name.
type Prop struct {
	Name   string
	Value  any
	Spread bool
}

// Result is the ordered output of a transformation.
type Result struct {
	Props    []Prop
	Warnings []Warning
}

// Get returns the value of a named prop.
func (r Result) Get(name string) (any, bool) {
	for _, p := range r.Props {
		if !p.Spread && p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Map returns the named props as a map. Spread props are omitted.
func (r Result) Map() map[string]any {
	out := make(map[string]any, len(r.Props))
	for _, p := range r.Props {
		if !p.Spread {
			out[p.Name] = p.Value
		}
	}
	return out
}

// TransformOrdered applies m's rules to props. Defaults for absent targets
// come first in rule order, followed by the observed props in source order.
// When two props produce the same target, the rule declared earlier in m
// wins and the other is reported as a conflict. Props without a rule are
// kept unchanged and reported as unmapped.
func TransformOrdered(m mapping.Mapping, in []Prop) Result {
	var (
		res      Result
		observed []Prop
		pos      = make(map[string]int)
		priority = make(map[string]int)
		source   = make(map[string]string)
	)
	unmappedPriority := len(m.Rules)

	place := func(from, to string, v any, prio int) {
		if i, ok := pos[to]; ok {
			winner, loser := source[to], from
			if prio < priority[to] {
				observed[i].Value = v
				priority[to] = prio
				source[to] = from
				winner, loser = from, winner
			}
			res.Warnings = append(res.Warnings, Warning{
				Kind:      WarnConflict,
				Component: m.LegacyName,
				Prop:      loser,
				Message:   fmt.Sprintf("%s: prop %q overridden by %q for %q", m.LegacyName, loser, winner, to),
			})
			return
		}
		pos[to] = len(observed)
		priority[to] = prio
		source[to] = from
		observed = append(observed, Prop{Name: to, Value: v})
	}

	for _, p := range in {
		if p.Spread {
			observed = append(observed, p)
			continue
		}
		rule, idx, ok := m.RuleFor(p.Name)
		if !ok {
			res.Warnings = append(res.Warnings, Warning{
				Kind:      WarnUnmappedProp,
				Component: m.LegacyName,
				Prop:      p.Name,
				Message:   fmt.Sprintf("%s: prop %q has no mapping to %s; kept as-is", m.LegacyName, p.Name, m.UnifiedName),
			})
			place(p.Name, p.Name, p.Value, unmappedPriority)
			continue
		}
		v := p.Value
		if rule.Kind == mapping.Transform {
			out, keep := rule.Apply(v)
			if !keep {
				continue
			}
			v = out
		}
		place(p.Name, rule.To, v, idx)
	}

	for _, d := range m.Defaults() {
		if _, ok := pos[d.To]; ok {
			continue
		}
		pos[d.To] = -1
		res.Props = append(res.Props, Prop{Name: d.To, Value: d.Default()})
	}
	res.Props = append(res.Props, observed...)
	return res
}

// TransformProps looks up name in table and transforms a prop bag. Keys are
// processed in sorted order so conflicts resolve deterministically. An
// unknown component returns the input unchanged together with an error
// wrapping mapping.ErrMappingNotFound; callers may treat it as a warning.
func TransformProps(table *mapping.Table, name string, legacy map[string]any) (map[string]any, []Warning, error) {
	m, err := table.Get(name)
	if err != nil {
		w := Warning{
			Kind:      WarnMappingNotFound,
			Component: name,
			Message:   fmt.Sprintf("no mapping found for %s", name),
		}
		return legacy, []Warning{w}, err
	}

	keys := make([]string, 0, len(legacy))
	for k := range legacy {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	in := make([]Prop, len(keys))
	for i, k := range keys {
		in[i] = Prop{Name: k, Value: legacy[k]}
	}
	res := TransformOrdered(m, in)
	return res.Map(), res.Warnings, nil
}
