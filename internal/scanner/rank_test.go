// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/unimigrate/pkg/types"
)

func TestBuildGraph_MergesAndDropsSelfEdges(t *testing.T) {
	g := BuildGraph([]string{"b.jsx", "a.jsx"}, []importRef{
		{from: "a.jsx", to: "b.jsx", names: 2},
		{from: "a.jsx", to: "b.jsx", names: 1},
		{from: "a.jsx", to: "a.jsx", names: 1},
		{from: "b.jsx", to: "c.css", names: 0},
	})

	assert.Equal(t, []string{"a.jsx", "b.jsx"}, g.Nodes)
	require.Len(t, g.Edges, 2)
	assert.Equal(t, Edge{From: "a.jsx", To: "b.jsx", Weight: 3}, g.Edges[0])
	assert.Equal(t, 1.0, g.Edges[1].Weight, "side-effect import counts once")

	assert.Equal(t, []string{"a.jsx"}, g.Importers()["b.jsx"])
}

func TestPageRank_SharedModuleScoresHighest(t *testing.T) {
	g := BuildGraph(
		[]string{"pages/A.jsx", "pages/B.jsx", "pages/C.jsx", "components/Shared.jsx"},
		[]importRef{
			{from: "pages/A.jsx", to: "components/Shared.jsx", names: 1},
			{from: "pages/B.jsx", to: "components/Shared.jsx", names: 1},
			{from: "pages/C.jsx", to: "components/Shared.jsx", names: 1},
		},
	)
	scores := PageRank(g, RankConfig{})

	require.Len(t, scores, 4)
	total := 0.0
	for _, s := range scores {
		total += s
	}
	assert.InDelta(t, 1.0, total, 1e-6)
	assert.Greater(t, scores["components/Shared.jsx"], scores["pages/A.jsx"])
	assert.InDelta(t, scores["pages/A.jsx"], scores["pages/B.jsx"], 1e-9)
}

func TestPageRank_PersonalizedFilesRaiseTheirImports(t *testing.T) {
	g := BuildGraph(
		[]string{"pages/A.jsx", "pages/B.jsx", "components/X.jsx", "components/Y.jsx"},
		[]importRef{
			{from: "pages/A.jsx", to: "components/X.jsx", names: 1},
			{from: "pages/B.jsx", to: "components/Y.jsx", names: 1},
		},
	)

	plain := PageRank(g, RankConfig{})
	assert.InDelta(t, plain["components/X.jsx"], plain["components/Y.jsx"], 1e-9)

	scores := PageRank(g, RankConfig{PersonalizedFiles: []string{"pages/A.jsx"}})
	assert.Greater(t, scores["components/X.jsx"], scores["components/Y.jsx"])
	assert.Greater(t, scores["pages/A.jsx"], scores["pages/B.jsx"])
}

func TestPageRank_Empty(t *testing.T) {
	assert.Empty(t, PageRank(&Graph{}, RankConfig{}))
}

func TestMigrationOrder(t *testing.T) {
	g := BuildGraph(
		[]string{"pages/A.jsx", "pages/B.jsx", "components/Panel.jsx"},
		[]importRef{
			{from: "pages/A.jsx", to: "components/Panel.jsx", names: 1},
			{from: "pages/B.jsx", to: "components/Panel.jsx", names: 1},
		},
	)
	imports := []types.LegacyImport{
		{FilePath: "components/Panel.jsx", ComponentName: "EnhancedCard"},
		{FilePath: "pages/B.jsx", ComponentName: "PrimaryButton"},
		{FilePath: "pages/A.jsx", ComponentName: "PrimaryButton"},
		{FilePath: "pages/A.jsx", ComponentName: "DataTable"},
	}

	order := MigrationOrder(g, imports, RankConfig{})
	require.Len(t, order, 3)
	assert.Equal(t, "components/Panel.jsx", order[0].FilePath, "shared component first")
	assert.Equal(t, "pages/A.jsx", order[1].FilePath, "ties break by path")
	assert.Equal(t, 2, order[1].LegacyImports)
	assert.Equal(t, "pages/B.jsx", order[2].FilePath)
}
