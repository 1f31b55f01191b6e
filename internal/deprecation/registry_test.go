// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package deprecation

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/unimigrate/internal/mapping"
)

func newTestRegistry(t *testing.T) (*Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewRegistry(mapping.Builtin(), zerolog.New(&buf)), &buf
}

func logLines(buf *bytes.Buffer) int {
	return strings.Count(strings.TrimSpace(buf.String()), "\n") + boolToInt(buf.Len() > 0)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestWarn_Deprecated(t *testing.T) {
	r, buf := newTestRegistry(t)

	n, emitted := r.Warn("EnhancedCard", WarnOptions{Context: "src/App.jsx:3"})
	require.True(t, emitted)
	assert.True(t, n.Deprecated)
	assert.Equal(t, "UnifiedCard", n.Replacement)
	assert.Equal(t, mapping.UnifiedImportPath, n.ImportPath)
	assert.NotEmpty(t, n.BreakingChanges)
	assert.Contains(t, n.Message(), "EnhancedCard is deprecated; use UnifiedCard")
	assert.Contains(t, buf.String(), `"replacement":"UnifiedCard"`)
	assert.Contains(t, buf.String(), `"context":"src/App.jsx:3"`)
}

// warned reports whether r has recorded a warning for name.
func warned(r *Registry, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warned[name]
}

func TestWarn_Once(t *testing.T) {
	r, buf := newTestRegistry(t)

	_, first := r.Warn("PrimaryButton", WarnOptions{Once: true})
	_, second := r.Warn("PrimaryButton", WarnOptions{Once: true})
	_, third := r.Warn("PrimaryButton", WarnOptions{})

	assert.True(t, first)
	assert.False(t, second)
	assert.True(t, third, "once=false always emits")
	assert.Equal(t, 2, logLines(buf))
	assert.True(t, warned(r, "PrimaryButton"))
}

func TestWarn_Unknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	n, emitted := r.Warn("EnhancedCrad", WarnOptions{Once: true})
	assert.True(t, emitted)
	assert.False(t, n.Deprecated)
	assert.Equal(t, "EnhancedCard", n.Suggestion)
	assert.Equal(t, "EnhancedCrad has no migration path (did you mean EnhancedCard?)", n.Message())

	n, _ = r.Warn("Toolbar", WarnOptions{})
	assert.Empty(t, n.Suggestion)
	assert.False(t, warned(r, "Toolbar"))
}

func TestTrack(t *testing.T) {
	r, buf := newTestRegistry(t)

	r.Track("EnhancedCard", "a.jsx:1")
	r.Track("EnhancedCard", "b.jsx:9")
	r.Track("UnifiedCard", "c.jsx:2")

	usage := r.Usage()
	require.Len(t, usage, 2)
	assert.Equal(t, "EnhancedCard", usage[0].Component)
	assert.Equal(t, 2, usage[0].Count)
	assert.True(t, usage[0].Deprecated)
	assert.Equal(t, "UnifiedCard", usage[0].Replacement)
	assert.Equal(t, []string{"a.jsx:1", "b.jsx:9"}, usage[0].Contexts)
	assert.False(t, usage[1].Deprecated)

	// Only the deprecated component warned, and only once.
	assert.Equal(t, 1, logLines(buf))
}

func TestTrack_AgreesWithTable(t *testing.T) {
	r, _ := newTestRegistry(t)
	table := mapping.Builtin()
	for _, name := range append(table.AllLegacyNames(), "UnifiedCard", "div") {
		r.Track(name, "")
		assert.Equal(t, table.IsDeprecated(name), warned(r, name), name)
		assert.Equal(t, table.IsDeprecated(name), r.IsDeprecated(name), name)
	}
}

func TestClear(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Track("EnhancedCard", "x")
	r.Clear()

	assert.Empty(t, r.Usage())
	assert.False(t, warned(r, "EnhancedCard"))

	_, emitted := r.Warn("EnhancedCard", WarnOptions{Once: true})
	assert.True(t, emitted)
}

func TestIndependentRegistries(t *testing.T) {
	a, _ := newTestRegistry(t)
	b, _ := newTestRegistry(t)

	a.Warn("DataTable", WarnOptions{Once: true})
	assert.True(t, warned(a, "DataTable"))
	assert.False(t, warned(b, "DataTable"))
}

func TestTrack_Concurrent(t *testing.T) {
	r := NewRegistry(mapping.Builtin(), zerolog.Nop())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Track("DataTable", "")
		}()
	}
	wg.Wait()

	usage := r.Usage()
	require.Len(t, usage, 1)
	assert.Equal(t, 50, usage[0].Count)
}
