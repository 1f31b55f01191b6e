// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ValidRepo(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Root())
}

func TestOpen_Subdirectory(t *testing.T) {
	dir := initTestRepo(t)
	sub := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := Open(Config{WorkDir: sub})
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Root())

	p, err := repo.repoPath("components/Card.jsx")
	require.NoError(t, err)
	assert.Equal(t, "src/components/Card.jsx", p)
}

func TestOpen_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(Config{WorkDir: dir})
	assert.ErrorIs(t, err, ErrNoGit)
}

func TestIsDirty_CleanRepo(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestIsDirty_WithUnstagedChanges(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src/App.jsx"), []byte("export const App = () => <main />;\n"), 0o644))

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestIsDirty_WithUntrackedFiles(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.js"), []byte("export {};\n"), 0o644))

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestIsMigrationCommit(t *testing.T) {
	t.Run("unimigrate commit", func(t *testing.T) {
		dir := initTestRepo(t)
		addFileAndCommit(t, dir, "a.js", "export {};\n", "refactor: migrate\n\n"+migratedByTrailer)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		ok, err := repo.IsMigrationCommit()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other commit", func(t *testing.T) {
		dir := initTestRepo(t)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		ok, err := repo.IsMigrationCommit()
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGenerateMessage(t *testing.T) {
	tests := []struct {
		name       string
		summary    string
		wantPrefix string
	}{
		{name: "migration", summary: "Migrate 4 files to the unified library", wantPrefix: "refactor: migrate 4 files"},
		{name: "removal", summary: "Remove unused legacy components", wantPrefix: "chore: remove unused"},
		{name: "styles", summary: "Drop dead CSS selectors", wantPrefix: "style: drop dead"},
		{name: "default", summary: "Apply the plan", wantPrefix: "refactor: apply the plan"},
		{name: "empty", summary: "  ", wantPrefix: "refactor: migrate legacy components"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := GenerateMessage(tt.summary, []string{"src/App.jsx"})
			assert.True(t, strings.HasPrefix(msg, tt.wantPrefix), msg)
			assert.True(t, strings.HasSuffix(msg, migratedByTrailer))
			assert.LessOrEqual(t, len(firstLineOf(msg)), maxSubjectLength)
		})
	}
}

func TestGenerateMessage_LongSummaryTruncated(t *testing.T) {
	long := "Migrate every legacy card, button, table and layout component across the whole application tree"
	first := firstLineOf(GenerateMessage(long, nil))
	assert.Len(t, first, maxSubjectLength)
	assert.True(t, strings.HasSuffix(first, "..."))
}

func TestGenerateMessage_ListsFiles(t *testing.T) {
	msg := GenerateMessage("migrate", []string{"src/a.jsx", "src/b.jsx"})
	assert.Contains(t, msg, "Touched files (2):\n- src/a.jsx\n- src/b.jsx\n")

	var many []string
	for i := 0; i < 25; i++ {
		many = append(many, fmt.Sprintf("src/f%d.jsx", i))
	}
	msg = GenerateMessage("migrate", many)
	assert.Contains(t, msg, "- src/f19.jsx\n- ... and 5 more\n")
	assert.NotContains(t, msg, "src/f20.jsx")
}

func TestInferCommitType(t *testing.T) {
	tests := []struct {
		summary string
		want    string
	}{
		{"restore backups", "fix"},
		{"prune styles", "chore"},
		{"migrate files", "refactor"},
		{"update stylesheet", "style"},
		{"something generic", "refactor"},
		{"unmigrated", "refactor"},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.want, inferCommitType(tt.summary))
		})
	}
}

// initTestRepo creates a temp dir with a git repo holding src/App.jsx in
// an initial commit and returns the directory path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src/App.jsx"), []byte("export const App = () => null;\n"), 0o644))

	_, err = wt.Add("src/App.jsx")
	require.NoError(t, err)

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

// addFileAndCommit adds a file and creates a commit with the given message.
func addFileAndCommit(t *testing.T, dir, name, content, msg string) {
	t.Helper()

	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	_, err = wt.Add(name)
	require.NoError(t, err)

	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}

func firstLineOf(s string) string {
	first, _, _ := strings.Cut(s, "\n")
	return first
}
