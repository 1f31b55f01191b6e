// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	page := writeFixture(t, dir, "src/pages/Dashboard.jsx", "")
	card := writeFixture(t, dir, "src/legacy/EnhancedCard.jsx", "")
	index := writeFixture(t, dir, "src/components/unified/index.ts", "")
	css := writeFixture(t, dir, "src/pages/Dashboard.css", "")

	r := New(dir, map[string]string{"@": "src"})

	tests := []struct {
		spec string
		want string
		ok   bool
	}{
		{"../legacy/EnhancedCard", card, true},
		{"../legacy/EnhancedCard.jsx", card, true},
		{"./Dashboard.css", css, true},
		{"@/components/unified", index, true},
		{"@/legacy/EnhancedCard", card, true},
		{"../legacy/Missing", "", false},
		{"react", "", false},
		{"@mui/material", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			got, ok := r.Resolve(page, tc.spec)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsLocal(t *testing.T) {
	r := New(t.TempDir(), map[string]string{"@": "src", "~shared/": "shared"})

	assert.True(t, r.IsLocal("./a"))
	assert.True(t, r.IsLocal("../a"))
	assert.True(t, r.IsLocal("@/a"))
	assert.True(t, r.IsLocal("~shared/x"))
	assert.False(t, r.IsLocal("react"))
	assert.False(t, r.IsLocal("@mui/material"), "scoped packages are not aliases")
}

func TestAlias_LongestPrefixWins(t *testing.T) {
	dir := t.TempDir()
	from := writeFixture(t, dir, "src/a.js", "")
	button := writeFixture(t, dir, "packages/ui/button.js", "")
	writeFixture(t, dir, "src/ui/button.js", "")

	r := New(dir, map[string]string{"@": "src", "@/ui": "packages/ui"})
	got, ok := r.Resolve(from, "@/ui/button")
	require.True(t, ok)
	assert.Equal(t, button, got)
}
