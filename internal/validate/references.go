// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package validate

import (
	"github.com/petar-djukic/unimigrate/internal/resolve"
	"github.com/petar-djukic/unimigrate/internal/scanner"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// ambientComponents are tag roots that are commonly in scope without an
// import.
var ambientComponents = map[string]bool{
	"React": true,
}

// CheckReferences flags local imports that do not resolve to a file and
// capitalized JSX tags whose name is neither declared nor imported in
// their file.
func CheckReferences(sources []*scanner.Source, resolver *resolve.Resolver) types.BrokenReferences {
	out := types.BrokenReferences{
		BrokenImports:     []types.BrokenImport{},
		UnknownComponents: []types.UnknownComponent{},
	}
	for _, src := range sources {
		known := src.File.Declarations()
		for _, imp := range src.File.Imports() {
			for _, l := range imp.Locals() {
				known[l] = true
			}
			if !resolver.IsLocal(imp.Source) {
				continue
			}
			if _, ok := resolver.Resolve(src.Abs, imp.Source); !ok {
				out.BrokenImports = append(out.BrokenImports, types.BrokenImport{
					FilePath: src.Rel,
					Line:     imp.Line,
					Source:   imp.Source,
				})
			}
		}

		reported := make(map[string]bool)
		for _, el := range src.File.Elements() {
			if !el.IsComponent() {
				continue
			}
			root := el.Root()
			if known[root] || ambientComponents[root] || reported[root] {
				continue
			}
			reported[root] = true
			out.UnknownComponents = append(out.UnknownComponents, types.UnknownComponent{
				FilePath: src.Rel,
				Line:     el.Line,
				Name:     root,
			})
		}
	}
	out.Summary = types.ReferenceSummary{
		FilesChecked:      len(sources),
		BrokenImports:     len(out.BrokenImports),
		UnknownComponents: len(out.UnknownComponents),
		IsValid:           len(out.BrokenImports) == 0 && len(out.UnknownComponents) == 0,
	}
	return out
}
