// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scanner walks a source tree and finds where legacy components are
// defined, imported and rendered. It also builds the file import graph and
// ranks files for migration.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petar-djukic/unimigrate/internal/deprecation"
	"github.com/petar-djukic/unimigrate/internal/jsx"
	"github.com/petar-djukic/unimigrate/internal/mapping"
	"github.com/petar-djukic/unimigrate/internal/resolve"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// Options configures a Scanner.
type Options struct {
	Walk        WalkOptions
	Aliases     map[string]string // Import alias prefix -> directory relative to the root
	Concurrency int               // Parser goroutines; runtime.NumCPU() when <= 0
	Logger      zerolog.Logger
	Registry    *deprecation.Registry // Receives one Track call per usage site when set
}

// Scanner finds legacy component definitions, imports and usages.
type Scanner struct {
	table *mapping.Table
	opts  Options
}

// New returns a scanner for the components in table.
func New(table *mapping.Table, opts Options) *Scanner {
	if len(opts.Walk.Extensions) == 0 {
		opts.Walk.Extensions = jsx.DefaultExtensions
	}
	return &Scanner{table: table, opts: opts}
}

// Source is a parsed file of a scanned tree.
type Source struct {
	Rel  string // Slash-separated path relative to the root
	Abs  string
	File *jsx.File
}

// Load reads and parses the files at the given root-relative paths using a
// bounded worker pool. Files that cannot be read or parsed are reported in
// the returned errors and left out. Sources keep the order of paths.
func Load(ctx context.Context, root string, paths []string, concurrency int) ([]*Source, []types.ScanError) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	type result struct {
		i   int
		src *Source
		err error
	}

	jobs := make(chan int, len(paths))
	results := make(chan result, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				src, err := loadOne(ctx, root, paths[i])
				results <- result{i: i, src: src, err: err}
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	go func() {
		wg.Wait()
		close(results)
	}()

	sources := make([]*Source, len(paths))
	errs := make([]types.ScanError, 0)
	for r := range results {
		if r.err != nil {
			errs = append(errs, types.ScanError{FilePath: paths[r.i], Message: r.err.Error()})
			continue
		}
		sources[r.i] = r.src
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].FilePath < errs[j].FilePath })

	out := make([]*Source, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			out = append(out, s)
		}
	}
	return out, errs
}

func loadOne(ctx context.Context, root, rel string) (*Source, error) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	f, err := jsx.Parse(ctx, abs, data)
	if err != nil {
		return nil, err
	}
	return &Source{Rel: rel, Abs: abs, File: f}, nil
}

// Scan walks root and returns the legacy component inventory. A file that
// cannot be read is recorded in ScanResult.Errors and does not stop the
// scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*types.ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}
	paths, err := Walk(absRoot, s.opts.Walk)
	if err != nil {
		return nil, err
	}
	sources, errs := Load(ctx, absRoot, paths, s.opts.Concurrency)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	for _, e := range errs {
		s.opts.Logger.Warn().Str("file", e.FilePath).Str("error", e.Message).Msg("skipping unreadable file")
	}

	res := &types.ScanResult{
		Root:           absRoot,
		FilesScanned:   len(sources),
		LegacyFiles:    []types.LegacyFile{},
		LegacyImports:  []types.LegacyImport{},
		LegacyUsages:   []types.LegacyUsage{},
		UnusedFiles:    []types.LegacyFile{},
		MigrationOrder: []types.RankedFile{},
		Errors:         errs,
	}

	resolver := resolve.New(absRoot, s.opts.Aliases)
	relOf := make(map[string]string, len(sources))
	defaultExport := make(map[string]string, len(sources))
	for _, src := range sources {
		relOf[src.Abs] = src.Rel
		if lf, ok := s.definitions(src, defaultExport); ok {
			res.LegacyFiles = append(res.LegacyFiles, lf)
		}
	}

	var refs []importRef
	for _, src := range sources {
		imports, fileRefs := s.imports(src, resolver, relOf, defaultExport)
		res.LegacyImports = append(res.LegacyImports, imports...)
		refs = append(refs, fileRefs...)
		res.LegacyUsages = append(res.LegacyUsages, s.usages(src, imports)...)
	}

	// A legacy file is used when one of its components is imported by name
	// anywhere, or when any file imports it by path.
	g := BuildGraph(paths, refs)
	importers := g.Importers()
	imported := make(map[string]bool)
	var migrating []string
	for _, li := range res.LegacyImports {
		imported[li.ComponentName] = true
		migrating = append(migrating, li.FilePath)
	}
	for _, lf := range res.LegacyFiles {
		used := len(importers[lf.FilePath]) > 0
		for _, c := range lf.Components {
			if imported[c] {
				used = true
				break
			}
		}
		if !used {
			res.UnusedFiles = append(res.UnusedFiles, lf)
		}
	}

	// Personalizing the files that import legacy components raises the
	// modules they share above unrelated hubs.
	res.MigrationOrder = MigrationOrder(g, res.LegacyImports, RankConfig{PersonalizedFiles: migrating})

	s.opts.Logger.Debug().
		Int("files", res.FilesScanned).
		Int("legacyFiles", len(res.LegacyFiles)).
		Int("legacyImports", len(res.LegacyImports)).
		Int("legacyUsages", len(res.LegacyUsages)).
		Int("unusedFiles", len(res.UnusedFiles)).
		Msg("scan complete")
	return res, nil
}

// definitions returns the legacy components src exports and records its
// default export binding.
func (s *Scanner) definitions(src *Source, defaultExport map[string]string) (types.LegacyFile, bool) {
	lf := types.LegacyFile{FilePath: src.Rel}
	seen := make(map[string]bool)
	for _, e := range src.File.Exports() {
		if e.Default && e.Local != "" {
			defaultExport[src.Abs] = e.Local
		}
		for _, name := range []string{e.Local, e.Name} {
			if name != "" && !seen[name] && s.table.IsDeprecated(name) {
				seen[name] = true
				lf.Components = append(lf.Components, name)
			}
		}
	}
	sort.Strings(lf.Components)
	return lf, len(lf.Components) > 0
}

// imports returns the legacy imports of src and its resolved local import
// edges. A default import counts as legacy when its target file's default
// export is a legacy component, or when its local name is one.
func (s *Scanner) imports(src *Source, resolver *resolve.Resolver, relOf, defaultExport map[string]string) ([]types.LegacyImport, []importRef) {
	var (
		out  []types.LegacyImport
		refs []importRef
	)
	for _, imp := range src.File.Imports() {
		target, resolved := "", false
		if resolver.IsLocal(imp.Source) {
			if abs, ok := resolver.Resolve(src.Abs, imp.Source); ok {
				target, resolved = abs, true
				if rel, inTree := relOf[abs]; inTree {
					refs = append(refs, importRef{from: src.Rel, to: rel, names: len(imp.Locals())})
				}
			}
		}
		if imp.TypeOnly {
			continue
		}

		if imp.Default != "" {
			component := ""
			if resolved && s.table.IsDeprecated(defaultExport[target]) {
				component = defaultExport[target]
			} else if s.table.IsDeprecated(imp.Default) {
				component = imp.Default
			}
			if component != "" {
				out = append(out, types.LegacyImport{
					FilePath:      src.Rel,
					ComponentName: component,
					LineNumber:    imp.Line,
					Source:        imp.Source,
					LocalName:     imp.Default,
				})
			}
		}
		for _, spec := range imp.Named {
			if !s.table.IsDeprecated(spec.Imported) {
				continue
			}
			out = append(out, types.LegacyImport{
				FilePath:      src.Rel,
				ComponentName: spec.Imported,
				LineNumber:    imp.Line,
				Source:        imp.Source,
				LocalName:     spec.Local,
			})
		}
	}
	return out, refs
}

// usages counts legacy component elements in src, one entry per component
// in order of first occurrence. Elements are matched by the local name an
// import bound, so aliased imports are seen through.
func (s *Scanner) usages(src *Source, imports []types.LegacyImport) []types.LegacyUsage {
	local := make(map[string]string)
	for _, li := range imports {
		local[li.LocalName] = li.ComponentName
	}

	byName := make(map[string]*types.LegacyUsage)
	var order []string
	for _, el := range src.File.Elements() {
		component, ok := local[el.Name]
		if !ok {
			if !s.table.IsDeprecated(el.Name) {
				continue
			}
			component = el.Name
		}
		u, seen := byName[component]
		if !seen {
			u = &types.LegacyUsage{FilePath: src.Rel, ComponentName: component}
			byName[component] = u
			order = append(order, component)
		}
		u.OccurrenceCount++
		u.LineNumbers = append(u.LineNumbers, el.Line)
		if s.opts.Registry != nil {
			s.opts.Registry.Track(component, fmt.Sprintf("%s:%d", src.Rel, el.Line))
		}
	}

	out := make([]types.LegacyUsage, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}
