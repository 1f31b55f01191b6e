// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package deprecation emits deprecation notices for legacy components and
// tracks how often each is used. A Registry is an explicit object: create
// one per run (or per test) instead of sharing global state.
package deprecation

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petar-djukic/unimigrate/internal/diffview"
	"github.com/petar-djukic/unimigrate/internal/mapping"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

// maxContexts bounds the contexts stored per component.
const maxContexts = 20

// suggestThreshold is the minimum similarity for a did-you-mean hint.
const suggestThreshold = 0.75

// WarnOptions controls a single Warn call.
type WarnOptions struct {
	Once    bool   // Emit at most once per component for the registry's lifetime
	Context string // Where the usage was seen, e.g. "src/App.jsx:12"
}

// Notice is a structured deprecation message.
type Notice struct {
	Component       string
	Deprecated      bool
	Replacement     string
	ImportPath      string
	BreakingChanges []string
	Suggestion      string
	Context         string
}

// Message renders the notice as a single human-readable string.
func (n Notice) Message() string {
	var b strings.Builder
	if !n.Deprecated {
		fmt.Fprintf(&b, "%s has no migration path", n.Component)
		if n.Suggestion != "" {
			fmt.Fprintf(&b, " (did you mean %s?)", n.Suggestion)
		}
		return b.String()
	}
	fmt.Fprintf(&b, "%s is deprecated; use %s from %q", n.Component, n.Replacement, n.ImportPath)
	if len(n.BreakingChanges) > 0 {
		fmt.Fprintf(&b, ". Breaking changes: %s", strings.Join(n.BreakingChanges, "; "))
	}
	return b.String()
}

type usage struct {
	count    int
	contexts []string
}

// Registry holds the warned set and usage table. It is safe for concurrent
// use.
type Registry struct {
	table  *mapping.Table
	logger zerolog.Logger

	mu     sync.Mutex
	warned map[string]bool
	usage  map[string]*usage
}

// NewRegistry returns an empty registry backed by table.
func NewRegistry(table *mapping.Table, logger zerolog.Logger) *Registry {
	return &Registry{
		table:  table,
		logger: logger,
		warned: make(map[string]bool),
		usage:  make(map[string]*usage),
	}
}

// IsDeprecated reports whether name has a mapping. Warn, Track and the
// static tools share this answer through the same table.
func (r *Registry) IsDeprecated(name string) bool {
	return r.table.IsDeprecated(name)
}

// Warn builds the notice for name and logs it. For a deprecated component
// with opts.Once set, only the first call per component logs; emitted
// reports whether this call did.
func (r *Registry) Warn(name string, opts WarnOptions) (n Notice, emitted bool) {
	m, ok := r.table.Lookup(name)
	if !ok {
		n = Notice{Component: name, Context: opts.Context, Suggestion: r.suggest(name)}
		r.logger.Warn().
			Str("component", name).
			Str("context", opts.Context).
			Str("suggestion", n.Suggestion).
			Msg(n.Message())
		return n, true
	}

	n = Notice{
		Component:       name,
		Deprecated:      true,
		Replacement:     m.UnifiedName,
		ImportPath:      m.ImportPath,
		BreakingChanges: m.BreakingChanges,
		Context:         opts.Context,
	}

	r.mu.Lock()
	if opts.Once && r.warned[name] {
		r.mu.Unlock()
		return n, false
	}
	r.warned[name] = true
	r.mu.Unlock()

	r.logger.Warn().
		Str("component", name).
		Str("replacement", m.UnifiedName).
		Str("importPath", m.ImportPath).
		Strs("breakingChanges", m.BreakingChanges).
		Str("context", opts.Context).
		Msg(n.Message())
	return n, true
}

// Track records one usage of name and warns once if it is deprecated.
func (r *Registry) Track(name, context string) {
	r.mu.Lock()
	u, ok := r.usage[name]
	if !ok {
		u = &usage{}
		r.usage[name] = u
	}
	u.count++
	if context != "" && len(u.contexts) < maxContexts {
		u.contexts = append(u.contexts, context)
	}
	r.mu.Unlock()

	if r.IsDeprecated(name) {
		r.Warn(name, WarnOptions{Once: true, Context: context})
	}
}

// Usage returns the usage table sorted by descending count, then name.
func (r *Registry) Usage() []types.DeprecationUsage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.DeprecationUsage, 0, len(r.usage))
	for name, u := range r.usage {
		row := types.DeprecationUsage{
			Component:  name,
			Count:      u.count,
			Deprecated: r.table.IsDeprecated(name),
			Contexts:   append([]string(nil), u.contexts...),
		}
		if m, ok := r.table.Lookup(name); ok {
			row.Replacement = m.UnifiedName
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Component < out[j].Component
	})
	return out
}

// Clear resets the warned set and the usage table.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warned = make(map[string]bool)
	r.usage = make(map[string]*usage)
}

// suggest returns the legacy name closest to name, if close enough.
func (r *Registry) suggest(name string) string {
	best, bestScore := "", suggestThreshold
	for _, candidate := range r.table.AllLegacyNames() {
		if s := diffview.Similarity(name, candidate); s >= bestScore {
			best, bestScore = candidate, s
		}
	}
	return best
}
