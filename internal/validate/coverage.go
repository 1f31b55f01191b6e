// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package validate

import (
	"math"
	"path"
	"regexp"
	"strings"

	"github.com/petar-djukic/unimigrate/internal/scanner"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Conventional test file markers and extensions.
var (
	testMarkers    = []string{"test", "spec", "stories"}
	testExtensions = []string{".js", ".jsx", ".ts", ".tsx"}
	testFile       = regexp.MustCompile(`\.(test|spec|stories)\.[jt]sx?$`)
	componentHint  = regexp.MustCompile(`\bprops\b|\bvariant\b`)
)

// IsTestFile reports whether rel is a test or story file.
func IsTestFile(rel string) bool {
	return testFile.MatchString(rel) || strings.Contains("/"+rel, "/__tests__/")
}

// CheckVisualTesting lists components without a test file. A component is
// an exported capitalized name in a file that renders JSX or mentions props
// or variants. A test matches by component name or by file name, next to
// the source or in a sibling __tests__ directory. files lists every path
// in the tree.
func CheckVisualTesting(sources []*scanner.Source, files []string) types.VisualTesting {
	exists := make(map[string]bool, len(files))
	for _, f := range files {
		exists[f] = true
	}

	out := types.VisualTesting{MissingTests: []types.MissingTest{}}
	for _, src := range sources {
		if IsTestFile(src.Rel) {
			continue
		}
		if len(src.File.Elements()) == 0 && !componentHint.Match(src.File.Src) {
			continue
		}
		dir := path.Dir(src.Rel)
		ext := path.Ext(src.Rel)
		base := strings.TrimSuffix(path.Base(src.Rel), ext)

		for _, name := range exportedComponents(src, base) {
			out.Summary.Components++
			if hasTest(exists, dir, name) || hasTest(exists, dir, base) {
				out.Summary.Tested++
				continue
			}
			out.MissingTests = append(out.MissingTests, types.MissingTest{
				Component: name,
				FilePath:  src.Rel,
				Expected: []string{
					path.Join(dir, name+".test"+ext),
					path.Join(dir, "__tests__", name+".test"+ext),
				},
			})
		}
	}
	out.Summary.MissingTests = len(out.MissingTests)
	out.Summary.Coverage = 100
	if out.Summary.Components > 0 {
		pct := float64(out.Summary.Tested) / float64(out.Summary.Components) * 100
		out.Summary.Coverage = math.Round(pct*10) / 10
	}
	return out
}

// exportedComponents returns the capitalized names src exports. An
// anonymous default export is named after the file.
func exportedComponents(src *scanner.Source, base string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range src.File.Exports() {
		name := e.Name
		if e.Default {
			name = e.Local
			if name == "" {
				name = base
			}
		}
		if name == "" || seen[name] || name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func hasTest(exists map[string]bool, dir, name string) bool {
	for _, d := range []string{dir, path.Join(dir, "__tests__")} {
		for _, m := range testMarkers {
			for _, ext := range testExtensions {
				if exists[path.Join(d, name+"."+m+ext)] {
					return true
				}
			}
		}
	}
	return false
}
