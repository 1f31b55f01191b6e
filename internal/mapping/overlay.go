// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package mapping

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile is the on-disk shape of a mappings file:
//
//	mappings:
//	  - legacyName: FancyCard
//	    unifiedName: UnifiedCard
//	    importPath: "@/components/unified"
//	    family: card
//	    rules:
//	      - {from: raised, to: variant, values: {"true": elevated}}
//	      - {from: heading, to: title}
//	      - {to: variant, default: outlined}
//	    breakingChanges: ["raised no longer animates"]
type overlayFile struct {
	Mappings []overlayMapping `yaml:"mappings"`
}

type overlayMapping struct {
	LegacyName      string        `yaml:"legacyName"`
	UnifiedName     string        `yaml:"unifiedName"`
	ImportPath      string        `yaml:"importPath"`
	Family          Family        `yaml:"family"`
	Rules           []overlayRule `yaml:"rules"`
	BreakingChanges []string      `yaml:"breakingChanges"`
}

type overlayRule struct {
	From    string         `yaml:"from"`
	To      string         `yaml:"to"`
	Values  map[string]any `yaml:"values"`
	Default any            `yaml:"default"`
}

// LoadOverlay reads a YAML mappings file.
func LoadOverlay(path string) ([]Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mappings file: %w", err)
	}
	return ParseOverlay(data)
}

// ParseOverlay decodes YAML mapping entries. Unknown fields are rejected.
func ParseOverlay(data []byte) ([]Mapping, error) {
	var f overlayFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: parsing mappings: %v", ErrInvalidMapping, err)
	}

	out := make([]Mapping, 0, len(f.Mappings))
	for _, om := range f.Mappings {
		m := Mapping{
			LegacyName:      om.LegacyName,
			UnifiedName:     om.UnifiedName,
			ImportPath:      om.ImportPath,
			Family:          om.Family,
			BreakingChanges: om.BreakingChanges,
		}
		if !knownFamily(m.Family) {
			return nil, fmt.Errorf("%w: %s: unknown family %q", ErrInvalidMapping, m.LegacyName, m.Family)
		}
		for _, or := range om.Rules {
			r, err := or.rule()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMapping, m.LegacyName, err)
			}
			m.Rules = append(m.Rules, r)
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r overlayRule) rule() (Rule, error) {
	to := r.To
	if to == "" {
		to = r.From
	}
	switch {
	case r.From == "" && r.Default != nil:
		v := normalizeYAML(r.Default)
		return defaultTo(to, v), nil
	case r.From == "":
		return Rule{}, fmt.Errorf("rule needs from or default")
	case r.Default != nil:
		return Rule{}, fmt.Errorf("rule for %q sets both from and default", r.From)
	case len(r.Values) > 0:
		values := make(map[string]any, len(r.Values))
		for k, v := range r.Values {
			values[k] = normalizeYAML(v)
		}
		return transform(r.From, to, ValueMap(values)), nil
	default:
		return rename(r.From, to), nil
	}
}

// normalizeYAML converts YAML scalars to the prop value types used by the
// transformer: string, bool, float64 or nil.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return x
	}
}

func knownFamily(f Family) bool {
	for _, k := range Families {
		if k == f {
			return true
		}
	}
	return false
}

// LoadTable returns the builtin table, merged with the overlay at path when
// path is non-empty.
func LoadTable(path string) (*Table, error) {
	t := Builtin()
	if path == "" {
		return t, nil
	}
	overlay, err := LoadOverlay(path)
	if err != nil {
		return nil, err
	}
	return t.Merge(overlay...)
}
