// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package mapping

import (
	"fmt"
	"strconv"

	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Default import paths for the unified component set.
const (
	UnifiedImportPath = "@/components/unified"
	LayoutImportPath  = "@/components/unified/layout"
)

// Card variants. VariantDefault is the absence of a variant.
const (
	VariantDefault     = "default"
	VariantElevated    = "elevated"
	VariantOutlined    = "outlined"
	VariantInteractive = "interactive"
)

// rename and the other helpers below build rules for the builtin table.
func rename(from, to string) Rule { return Rule{Kind: Rename, From: from, To: to} }

func keep(name string) Rule { return rename(name, name) }

func transform(from, to string, fn TransformFunc) Rule {
	return Rule{Kind: Transform, From: from, To: to, Apply: fn}
}

func defaultTo(to string, v any) Rule {
	return Rule{Kind: DefaultIfAbsent, To: to, Default: func() any { return v }}
}

// ValueMap returns a transform that replaces values found in m, keyed by
// their printed form, and passes every other value through unchanged.
func ValueMap(m map[string]any) TransformFunc {
	return func(v any) (any, bool) {
		if out, ok := m[valueKey(v)]; ok {
			return out, true
		}
		return v, true
	}
}

func valueKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case types.Expr:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// Truthy reports whether a static prop value is truthy. Expressions are
// treated as truthy since they cannot be evaluated.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	default:
		return true
	}
}

// whenTruthy maps a truthy value to out and drops falsy ones.
func whenTruthy(out any) TransformFunc {
	return func(v any) (any, bool) {
		if Truthy(v) {
			return out, true
		}
		return nil, false
	}
}

func elevationVariant(v any) (any, bool) {
	if Truthy(v) {
		return VariantElevated, true
	}
	return VariantDefault, true
}

var sizeValues = map[string]any{
	"sm": "small", "small": "small",
	"md": "medium", "medium": "medium",
	"lg": "large", "large": "large",
}

var maxWidthValues = map[string]any{
	"full": false, "false": false,
}

// cardRules orders the variant-producing props by precedence: outlined
// beats interactive beats elevated.
func cardRules(extra ...Rule) []Rule {
	rules := []Rule{
		transform("outlined", "variant", whenTruthy(VariantOutlined)),
		transform("bordered", "variant", whenTruthy(VariantOutlined)),
		transform("hoverable", "variant", whenTruthy(VariantInteractive)),
		transform("clickable", "variant", whenTruthy(VariantInteractive)),
		transform("elevation", "variant", elevationVariant),
		transform("raised", "variant", whenTruthy(VariantElevated)),
		keep("title"),
		keep("subtitle"),
		keep("onClick"),
		keep("className"),
		keep("sx"),
		rename("noPadding", "disablePadding"),
	}
	return append(rules, extra...)
}

func buttonRules(variant, color string) []Rule {
	return []Rule{
		defaultTo("variant", variant),
		defaultTo("color", color),
		keep("onClick"),
		keep("disabled"),
		keep("type"),
		keep("className"),
		keep("fullWidth"),
		keep("loading"),
		rename("isLoading", "loading"),
		rename("icon", "startIcon"),
		rename("iconRight", "endIcon"),
		rename("block", "fullWidth"),
		transform("size", "size", ValueMap(sizeValues)),
	}
}

func layoutRules(variant string, extra ...Rule) []Rule {
	rules := []Rule{
		defaultTo("variant", variant),
		keep("title"),
		keep("sidebar"),
		keep("className"),
		rename("actions", "headerActions"),
		rename("headerRight", "headerActions"),
		transform("maxWidth", "maxWidth", ValueMap(maxWidthValues)),
	}
	return append(rules, extra...)
}

// builtinMappings is the compiled-in table.
func builtinMappings() []Mapping {
	card := func(legacy string, extra ...Rule) Mapping {
		return Mapping{
			LegacyName:  legacy,
			UnifiedName: "UnifiedCard",
			ImportPath:  UnifiedImportPath,
			Family:      FamilyCard,
			Rules:       cardRules(extra...),
			BreakingChanges: []string{
				"elevation levels collapse into a single \"elevated\" variant",
				"hoverable no longer adds a hover shadow; use variant=\"interactive\"",
			},
		}
	}
	button := func(legacy, variant, color string, breaking ...string) Mapping {
		return Mapping{
			LegacyName:      legacy,
			UnifiedName:     "UnifiedButton",
			ImportPath:      UnifiedImportPath,
			Family:          FamilyButton,
			Rules:           buttonRules(variant, color),
			BreakingChanges: append([]string{"size \"xs\" is no longer supported"}, breaking...),
		}
	}
	layout := func(legacy, variant string, extra ...Rule) Mapping {
		return Mapping{
			LegacyName:      legacy,
			UnifiedName:     "UnifiedLayout",
			ImportPath:      LayoutImportPath,
			Family:          FamilyLayout,
			Rules:           layoutRules(variant, extra...),
			BreakingChanges: []string{"maxWidth=\"full\" is expressed as maxWidth={false}"},
		}
	}

	return []Mapping{
		card("EnhancedCard"),
		card("CustomCard", keep("headerAction")),
		card("InfoCard", rename("icon", "headerIcon"), rename("severity", "tone")),
		card("StatsCard", rename("label", "subtitle"), keep("value"), keep("trend"), rename("icon", "headerIcon")),

		button("PrimaryButton", "contained", "primary"),
		button("SecondaryButton", "outlined", "secondary"),
		button("DangerButton", "contained", "error",
			"the built-in confirm dialog (confirm prop) is not carried over"),
		button("TextButton", "text", "primary"),
		button("LinkButton", "text", "primary",
			"href navigation must use the component prop with a router link"),

		{
			LegacyName:  "DataTable",
			UnifiedName: "UnifiedTable",
			ImportPath:  UnifiedImportPath,
			Family:      FamilyTable,
			Rules: []Rule{
				rename("data", "rows"),
				keep("columns"),
				keep("loading"),
				keep("onRowClick"),
				transform("pagination", "paginated", ValueMap(nil)),
				rename("pageSize", "rowsPerPage"),
				transform("striped", "variant", whenTruthy("striped")),
				rename("emptyMessage", "emptyState"),
			},
			BreakingChanges: []string{"column render callbacks receive (row, index) instead of (value, row)"},
		},
		{
			LegacyName:  "LegacyTable",
			UnifiedName: "UnifiedTable",
			ImportPath:  UnifiedImportPath,
			Family:      FamilyTable,
			Rules: []Rule{
				keep("rows"),
				rename("headers", "columns"),
				transform("dense", "size", func(v any) (any, bool) {
					if Truthy(v) {
						return "small", true
					}
					return "medium", true
				}),
				transform("striped", "variant", whenTruthy("striped")),
			},
			BreakingChanges: []string{"headers must be column objects, not strings"},
		},

		layout("PageLayout", "page"),
		layout("DashboardLayout", "dashboard", rename("header", "headerContent")),
		layout("ContentWrapper", "content", keep("padding")),
	}
}

// Builtin returns the compiled-in table.
func Builtin() *Table {
	t, err := NewTable(builtinMappings()...)
	if err != nil {
		panic(fmt.Sprintf("builtin mapping table: %v", err))
	}
	return t
}
