// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resolve maps import specifiers to files on disk the way a
// bundler would: relative paths and configured aliases, with extension and
// index-file probing. Package imports are not resolved.
package resolve

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions tried, in order, when a specifier has no matching file.
var Extensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".json"}

// Resolver resolves specifiers below a project root.
type Resolver struct {
	root    string
	aliases []alias
	exists  func(string) bool
}

type alias struct {
	prefix string
	target string
}

// New returns a resolver for root. aliases maps a specifier prefix such as
// "@" to a directory relative to root such as "src".
func New(root string, aliases map[string]string) *Resolver {
	r := &Resolver{root: root, exists: isFile}
	for prefix, target := range aliases {
		r.aliases = append(r.aliases, alias{
			prefix: strings.TrimSuffix(prefix, "/"),
			target: filepath.Join(root, filepath.FromSlash(target)),
		})
	}
	// Longest prefix first so "@/ui" wins over "@".
	sort.Slice(r.aliases, func(i, j int) bool {
		if len(r.aliases[i].prefix) != len(r.aliases[j].prefix) {
			return len(r.aliases[i].prefix) > len(r.aliases[j].prefix)
		}
		return r.aliases[i].prefix < r.aliases[j].prefix
	})
	return r
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsLocal reports whether spec refers to project files rather than a
// package.
func (r *Resolver) IsLocal(spec string) bool {
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || spec == "." || spec == ".." {
		return true
	}
	_, ok := r.aliasBase(spec)
	return ok
}

func (r *Resolver) aliasBase(spec string) (string, bool) {
	for _, a := range r.aliases {
		if spec == a.prefix {
			return a.target, true
		}
		if strings.HasPrefix(spec, a.prefix+"/") {
			return filepath.Join(a.target, filepath.FromSlash(spec[len(a.prefix)+1:])), true
		}
	}
	return "", false
}

// Resolve returns the absolute path that spec, imported from the file at
// fromFile, refers to. ok is false for package imports and for local
// specifiers with no matching file.
func (r *Resolver) Resolve(fromFile, spec string) (string, bool) {
	var base string
	switch {
	case strings.HasPrefix(spec, "."):
		base = filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(spec))
	default:
		b, ok := r.aliasBase(spec)
		if !ok {
			return "", false
		}
		base = b
	}
	for _, candidate := range r.candidates(base) {
		if r.exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) candidates(base string) []string {
	out := []string{base}
	for _, ext := range Extensions {
		out = append(out, base+ext)
	}
	for _, ext := range Extensions {
		out = append(out, filepath.Join(base, "index"+ext))
	}
	return out
}
