// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/unimigrate/internal/cleanup"
	gitpkg "github.com/petar-djukic/unimigrate/internal/git"
	"github.com/petar-djukic/unimigrate/internal/mapping"
	"github.com/petar-djukic/unimigrate/internal/report"
)

func writeFixture(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFixture(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

const legacyCardSrc = `export function EnhancedCard({ children }) {
  return <div className="card">{children}</div>;
}
`

const dashboardSrc = `import { EnhancedCard } from './LegacyCard';

export default function Dashboard() {
  return <EnhancedCard elevation={2}>Hi</EnhancedCard>;
}
`

const oldButtonSrc = `export const PrimaryButton = (props) => <button {...props} />;
`

// setupTree writes a small app with one migratable file and one unused
// legacy file, optionally committed to a fresh git repository.
func setupTree(t *testing.T, withGit bool) string {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "LegacyCard.jsx", legacyCardSrc)
	writeFixture(t, dir, "Dashboard.jsx", dashboardSrc)
	writeFixture(t, dir, "OldButton.jsx", oldButtonSrc)
	writeFixture(t, dir, ".gitignore", "*.backup\n")
	if !withGit {
		return dir
	}

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&gogit.AddOptions{All: true}))
	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func newRunner(dir, reportDir string, mod func(*Deps)) *Runner {
	deps := Deps{
		Orchestrator: cleanup.New(mapping.Builtin(), cleanup.Options{Logger: zerolog.Nop()}),
		WorkDir:      dir,
		ReportDir:    reportDir,
		Logger:       zerolog.Nop(),
	}
	if mod != nil {
		mod(&deps)
	}
	return NewRunner(deps)
}

func TestRunner_DryRun(t *testing.T) {
	dir := setupTree(t, false)
	reports := t.TempDir()

	res, err := newRunner(dir, reports, nil).Run(context.Background(), cleanup.ApplyOptions{DryRun: true, CreateBackups: true})
	require.NoError(t, err)

	assert.True(t, res.Report.Apply.DryRun)
	assert.Equal(t, []string{"Dashboard.jsx"}, res.Report.FilesToMigrate)
	assert.Equal(t, []string{"OldButton.jsx"}, res.Report.UnusedFiles)
	assert.Equal(t, []string{filepath.Join(reports, report.MigrationFile)}, res.Artifacts)
	assert.Nil(t, res.Report.Verification)
	assert.False(t, res.Failed())

	assert.Equal(t, dashboardSrc, readFixture(t, dir, "Dashboard.jsx"))
	assert.FileExists(t, filepath.Join(dir, "OldButton.jsx"))
}

func TestRunner_AppliesVerifiesAndCommits(t *testing.T) {
	dir := setupTree(t, true)
	writeFixture(t, dir, "check.sh", "echo lint ok\n")

	res, err := newRunner(dir, t.TempDir(), func(d *Deps) {
		d.VerifyCmd = "sh check.sh"
		d.GitCommit = true
	}).Run(context.Background(), cleanup.ApplyOptions{CreateBackups: true, Codemod: true})
	require.NoError(t, err)

	assert.True(t, res.Dirty, "check.sh is untracked")
	require.NotNil(t, res.Report.Verification)
	assert.True(t, res.Report.Verification.OK)
	assert.Len(t, res.Report.Commit, 40)
	assert.Contains(t, readFixture(t, dir, "Dashboard.jsx"), `<UnifiedCard variant="elevated">Hi</UnifiedCard>`)
	assert.NoFileExists(t, filepath.Join(dir, "OldButton.jsx"))

	repo, err := gitpkg.Open(gitpkg.Config{WorkDir: dir})
	require.NoError(t, err)
	ok, err := repo.IsMigrationCommit()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunner_FailedVerificationSkipsCommit(t *testing.T) {
	dir := setupTree(t, true)
	writeFixture(t, dir, "check.sh", "echo \"Dashboard.jsx:4:10: 'UnifiedCard' is not defined.\"\nexit 1\n")

	res, err := newRunner(dir, "", func(d *Deps) {
		d.VerifyCmd = "sh check.sh"
		d.GitCommit = true
	}).Run(context.Background(), cleanup.ApplyOptions{})
	require.NoError(t, err)

	assert.True(t, res.Failed())
	require.Len(t, res.Report.Verification.Problems, 1)
	assert.Equal(t, "Dashboard.jsx", res.Report.Verification.Problems[0].FilePath)
	assert.Empty(t, res.Report.Commit)
	assert.Empty(t, res.Artifacts)
}

func TestRunner_RequireClean(t *testing.T) {
	dir := setupTree(t, true)
	writeFixture(t, dir, "Dashboard.jsx", dashboardSrc+"// local edit\n")

	_, err := newRunner(dir, "", func(d *Deps) {
		d.RequireClean = true
	}).Run(context.Background(), cleanup.ApplyOptions{})
	assert.ErrorIs(t, err, gitpkg.ErrDirtyWorkTree)
	assert.Contains(t, readFixture(t, dir, "Dashboard.jsx"), "// local edit")
}

func TestRunner_DirtyCommit(t *testing.T) {
	dir := setupTree(t, true)
	writeFixture(t, dir, "Dashboard.jsx", dashboardSrc+"// local edit\n")

	res, err := newRunner(dir, "", func(d *Deps) {
		d.RequireClean = true
		d.DirtyCommit = true
	}).Run(context.Background(), cleanup.ApplyOptions{})
	require.NoError(t, err)
	assert.False(t, res.Dirty)
	assert.Equal(t, 1, res.Report.Apply.Migrated.Summary.Changed)

	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	tree, err := commit.Tree()
	require.NoError(t, err)
	f, err := tree.File("Dashboard.jsx")
	require.NoError(t, err)
	committed, err := f.Contents()
	require.NoError(t, err)
	assert.Contains(t, committed, "// local edit")
	assert.Contains(t, committed, "<EnhancedCard")
}

func TestRunner_NotAGitRepository(t *testing.T) {
	dir := setupTree(t, false)

	res, err := newRunner(dir, "", func(d *Deps) {
		d.GitCommit = true
		d.RequireClean = true
	}).Run(context.Background(), cleanup.ApplyOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Report.Commit)
	assert.Equal(t, 1, res.Report.Apply.Migrated.Summary.Changed)
}

func TestRunner_Cancelled(t *testing.T) {
	dir := setupTree(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(dir, "", func(d *Deps) { d.NoGit = true }).Run(ctx, cleanup.ApplyOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
