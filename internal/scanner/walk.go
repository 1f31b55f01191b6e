// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scanner

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DefaultExcludeDirs are directory names never descended into.
var DefaultExcludeDirs = []string{".git", "node_modules", "dist", "build", "coverage", "vendor", ".next"}

// WalkOptions selects the files Walk returns.
type WalkOptions struct {
	ExcludeDirs []string // Directory names to skip; DefaultExcludeDirs when nil
	Extensions  []string // File extensions to keep, with leading dot
	NoGitignore bool     // Do not apply the root .gitignore
}

// SkipFunc returns the directory filter Walk applies, for callers that walk
// the same tree themselves.
func (o WalkOptions) SkipFunc() func(name string) bool {
	dirs := o.ExcludeDirs
	if dirs == nil {
		dirs = DefaultExcludeDirs
	}
	skip := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		skip[d] = true
	}
	return func(name string) bool { return skip[name] }
}

// Walk returns the files below root whose extension is in opts.Extensions,
// as paths relative to root in lexical order. Excluded directories and
// paths matched by the root .gitignore are skipped; unreadable entries are
// ignored.
func Walk(root string, opts WalkOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}
	skip := opts.SkipFunc()

	var matcher gitignore.Matcher
	if !opts.NoGitignore {
		matcher = loadGitignore(root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if d.IsDir() {
			if skip(d.Name()) || (matcher != nil && matcher.Match(parts, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if matcher != nil && matcher.Match(parts, false) {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// loadGitignore reads .gitignore from root. A missing or unreadable file
// yields a matcher with no patterns.
func loadGitignore(root string) gitignore.Matcher {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return gitignore.NewMatcher(nil)
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return gitignore.NewMatcher(patterns)
}
