// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "unimigrate"
	authorEmail = "noreply@unimigrate"
)

func signature() *object.Signature {
	return &object.Signature{Name: authorName, Email: authorEmail, When: time.Now()}
}

// HandleDirty checks for uncommitted changes before a run. A clean tree
// returns (false, nil). A dirty tree is committed when DirtyCommit is set,
// rejected with ErrDirtyWorkTree when RequireClean is set, and otherwise
// reported as (true, nil) for the caller to warn about.
func (r *Repo) HandleDirty() (bool, error) {
	dirty, err := r.IsDirty()
	if err != nil {
		return false, err
	}
	if !dirty {
		return false, nil
	}

	if !r.cfg.DirtyCommit {
		if r.cfg.RequireClean {
			return true, ErrDirtyWorkTree
		}
		return true, nil
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return true, fmt.Errorf("getting worktree: %w", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return true, fmt.Errorf("staging dirty files: %w", err)
	}
	if _, err := wt.Commit(dirtyCommitMsg, &gogit.CommitOptions{Author: signature()}); err != nil {
		return true, fmt.Errorf("committing dirty files: %w", err)
	}
	return false, nil
}

// AutoCommit stages the given files (relative to WorkDir) and commits them
// with a generated message. Files that no longer exist are staged as
// deletions. Returns the commit hash, or "" when AutoCommit is off or
// there is nothing to commit.
func (r *Repo) AutoCommit(files []string, summary string) (string, error) {
	if !r.cfg.AutoCommit || len(files) == 0 {
		return "", nil
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	for _, f := range files {
		p, err := r.repoPath(f)
		if err != nil {
			return "", err
		}
		_, statErr := os.Lstat(filepath.Join(r.root, filepath.FromSlash(p)))
		switch {
		case errors.Is(statErr, fs.ErrNotExist):
			if _, err := wt.Remove(p); err != nil {
				return "", fmt.Errorf("staging removal of %s: %w", f, err)
			}
		case statErr != nil:
			return "", statErr
		default:
			if _, err := wt.Add(p); err != nil {
				return "", fmt.Errorf("staging %s: %w", f, err)
			}
		}
	}

	hash, err := wt.Commit(GenerateMessage(summary, files), &gogit.CommitOptions{Author: signature()})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return hash.String(), nil
}

// Undo reverts the last commit if it was made by unimigrate. It uses a
// soft reset so the migrated files stay in the working tree.
func (r *Repo) Undo() error {
	ok, err := r.IsMigrationCommit()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotMigrationCommit
	}

	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("getting commit: %w", err)
	}
	if commit.NumParents() == 0 {
		return fmt.Errorf("cannot undo: HEAD is the initial commit")
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return fmt.Errorf("getting parent commit: %w", err)
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: parent.Hash, Mode: gogit.SoftReset}); err != nil {
		return fmt.Errorf("resetting to parent: %w", err)
	}
	return nil
}
