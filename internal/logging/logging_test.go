// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, true)

	log.Debug().Msg("hidden")
	log.Info().Str("file", "src/App.jsx").Msg("migrated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "src/App.jsx", entry["file"])
	assert.Equal(t, "migrated", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_VerboseConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, false)

	log.Debug().Str("file", "src/App.jsx").Msg("parsed")

	out := buf.String()
	assert.Contains(t, out, "parsed")
	assert.Contains(t, out, "file=src/App.jsx")
	assert.NotContains(t, out, "\x1b[", "no color when not a terminal")
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
