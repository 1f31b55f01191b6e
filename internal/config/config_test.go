// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/unimigrate/internal/scanner"
)

func writeFixture(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	v := New()
	v.Set(KeyWorkDir, dir)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.WorkDir)
	assert.Equal(t, dir, cfg.ReportDir)
	assert.Equal(t, scanner.DefaultExcludeDirs, cfg.ExcludeDirs)
	assert.Equal(t, map[string]string{"@": "src"}, cfg.Aliases)
	assert.Equal(t, 200, cfg.LabelWindow)
	assert.Equal(t, 120*time.Second, cfg.VerifyTimeout)
	assert.False(t, cfg.GitCommit)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ".unimigrate.yaml", `report-dir: reports
mappings-file: mappings.yaml
extensions: [jsx, .tsx]
aliases:
  "~": app
verify-cmd: npx eslint --format unix src
verify-timeout: 30s
git-commit: true
`)
	v := New()
	v.Set(KeyWorkDir, dir)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".unimigrate.yaml"), cfg.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "reports"), cfg.ReportDir)
	assert.Equal(t, filepath.Join(dir, "mappings.yaml"), cfg.MappingsFile)
	assert.Equal(t, []string{".jsx", ".tsx"}, cfg.Extensions)
	assert.Equal(t, map[string]string{"~": "app"}, cfg.Aliases)
	assert.Equal(t, "npx eslint --format unix src", cfg.VerifyCmd)
	assert.Equal(t, 30*time.Second, cfg.VerifyTimeout)
	assert.True(t, cfg.GitCommit)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ".unimigrate.yaml", "report-dir: [unclosed\n")
	v := New()
	v.Set(KeyWorkDir, dir)

	_, err := Load(v)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ".unimigrate.yaml", "verify-cmd: npm run lint\n")
	t.Setenv("UNIMIGRATE_VERIFY_CMD", "npx tsc --noEmit")
	t.Setenv("UNIMIGRATE_REQUIRE_CLEAN", "true")
	v := New()
	v.Set(KeyWorkDir, dir)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "npx tsc --noEmit", cfg.VerifyCmd)
	assert.True(t, cfg.RequireClean)
}

func TestBindFlags_FlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ".unimigrate.yaml", "report-dir: from-file\n")
	t.Setenv("UNIMIGRATE_REPORT_DIR", "from-env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyWorkDir, ".", "")
	fs.String(KeyReportDir, ".", "")
	fs.Bool(KeyDirtyCommit, false, "")
	fs.Bool("dry-run", false, "")
	require.NoError(t, fs.Parse([]string{"--workdir", dir, "--report-dir", "/tmp/out", "--dirty-commit", "--dry-run"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.WorkDir)
	assert.Equal(t, "/tmp/out", cfg.ReportDir)
	assert.True(t, cfg.DirtyCommit)
	assert.False(t, v.IsSet("dry-run"))
}

func TestLoad_NegativeLabelWindow(t *testing.T) {
	v := New()
	v.Set(KeyWorkDir, t.TempDir())
	v.Set(KeyLabelWindow, -1)

	_, err := Load(v)
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	cfg := &Config{WorkDir: "/work", ReportDir: "/work/out", VerifyCmd: "npm run lint", VerifyTimeout: time.Minute, GitCommit: true, DirtyCommit: true}
	mc := cfg.Migrate(zerolog.Nop())
	assert.Equal(t, "/work", mc.WorkDir)
	assert.Equal(t, "/work/out", mc.ReportDir)
	assert.Equal(t, "npm run lint", mc.VerifyCmd)
	assert.Equal(t, time.Minute, mc.VerifyTimeout)
	assert.True(t, mc.GitCommit)
	assert.True(t, mc.DirtyCommit)
}

func TestWalkOptions(t *testing.T) {
	cfg := &Config{ExcludeDirs: []string{"node_modules"}, Extensions: []string{".jsx"}}
	assert.Equal(t, scanner.WalkOptions{ExcludeDirs: []string{"node_modules"}, Extensions: []string{".jsx"}}, cfg.WalkOptions())
}
