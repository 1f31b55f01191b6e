// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// TransformType tags the codemod pass that produced a rewrite.
type TransformType string

const (
	TransformCardSimple   TransformType = "card-simple"
	TransformCardCompound TransformType = "card-compound"
	TransformButton       TransformType = "button"
	TransformTable        TransformType = "table"
	TransformLayout       TransformType = "layout"
)

// TransformationRecord describes one rewritten markup site.
type TransformationRecord struct {
	Type        TransformType `json:"type"`
	LegacyName  string        `json:"legacyName"`
	Line        int           `json:"line"`
	Original    string        `json:"original"`
	Transformed string        `json:"transformed"`
}

// ImportMigration records one identifier moved from a legacy import to a
// unified one.
type ImportMigration struct {
	Legacy     string `json:"legacy"`
	Unified    string `json:"unified"`
	ImportPath string `json:"importPath"`
}

// DeprecationUsage is one row of the deprecation usage table.
type DeprecationUsage struct {
	Component   string   `json:"component"`
	Count       int      `json:"count"`
	Deprecated  bool     `json:"deprecated"`
	Replacement string   `json:"replacement,omitempty"`
	Contexts    []string `json:"contexts,omitempty"`
}
