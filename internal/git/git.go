// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git guards cleanup runs against dirty work trees and commits the
// files a migration touched.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	migratedByTrailer = "Migrated-By: unimigrate"
	dirtyCommitMsg    = "unimigrate: save uncommitted changes before migration"
)

// ErrNotMigrationCommit is returned when undo targets a commit not made by unimigrate.
var ErrNotMigrationCommit = errors.New("not a unimigrate commit")

// ErrDirtyWorkTree is returned when uncommitted changes exist and the run
// requires a clean tree.
var ErrDirtyWorkTree = errors.New("uncommitted changes exist")

// ErrNoGit is returned when the working directory is not inside a git repository.
var ErrNoGit = errors.New("not a git repository")

// Config configures git integration behavior.
type Config struct {
	WorkDir      string // Directory being migrated; may be below the repository root
	AutoCommit   bool   // Commit touched files after a run
	DirtyCommit  bool   // Commit dirty files before a run instead of failing
	RequireClean bool   // Fail on a dirty tree unless DirtyCommit is set
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	root string
	cfg  Config
}

// Open opens the repository containing cfg.WorkDir, searching parent
// directories for .git. Returns ErrNoGit if there is none.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(cfg.WorkDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	return &Repo{repo: r, root: wt.Filesystem.Root(), cfg: cfg}, nil
}

// Root returns the repository's top-level directory.
func (r *Repo) Root() string { return r.root }

// IsDirty returns true if the working tree has uncommitted changes
// (either staged or unstaged).
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	return !status.IsClean(), nil
}

// IsMigrationCommit checks whether the HEAD commit was made by unimigrate
// by looking for the Migrated-By trailer.
func (r *Repo) IsMigrationCommit() (bool, error) {
	msg, err := r.lastCommitMessage()
	if err != nil {
		return false, err
	}
	return strings.Contains(msg, migratedByTrailer), nil
}

// repoPath converts a path relative to cfg.WorkDir into a slash path
// relative to the repository root.
func (r *Repo) repoPath(rel string) (string, error) {
	abs := rel
	if !filepath.IsAbs(abs) {
		dir, err := filepath.Abs(r.cfg.WorkDir)
		if err != nil {
			return "", err
		}
		abs = filepath.Join(dir, filepath.FromSlash(rel))
	}
	p, err := filepath.Rel(r.root, abs)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(p, "..") {
		return "", fmt.Errorf("%s is outside the repository", rel)
	}
	return filepath.ToSlash(p), nil
}

// lastCommitMessage returns the message of the HEAD commit.
func (r *Repo) lastCommitMessage() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("getting commit: %w", err)
	}
	return commit.Message, nil
}

// commitCount returns the total number of commits reachable from HEAD.
func (r *Repo) commitCount() (int, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{})
	if err != nil {
		return 0, err
	}
	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		count++
		return nil
	})
	return count, err
}
