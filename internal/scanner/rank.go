// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scanner

import (
	"math"
	"sort"

	"github.com/petar-djukic/unimigrate/pkg/types"
)

const (
	defaultDamping    = 0.85
	defaultMaxIter    = 100
	defaultTolerance  = 1e-6
	personalizeFactor = 100.0
)

// RankConfig configures PageRank.
type RankConfig struct {
	Damping           float64  // Default 0.85
	MaxIterations     int      // Default 100
	Tolerance         float64  // Default 1e-6
	PersonalizedFiles []string // Files whose teleport weight is raised 100x
}

// PageRank scores every node of g. Rank flows from importer to imported,
// so widely shared modules score highest.
func PageRank(g *Graph, cfg RankConfig) map[string]float64 {
	damping := cfg.Damping
	if damping == 0 {
		damping = defaultDamping
	}
	maxIter := cfg.MaxIterations
	if maxIter == 0 {
		maxIter = defaultMaxIter
	}
	tolerance := cfg.Tolerance
	if tolerance == 0 {
		tolerance = defaultTolerance
	}

	n := len(g.Nodes)
	if n == 0 {
		return map[string]float64{}
	}

	idx := make(map[string]int, n)
	for i, node := range g.Nodes {
		idx[node] = i
	}

	personal := make(map[string]bool, len(cfg.PersonalizedFiles))
	for _, f := range cfg.PersonalizedFiles {
		personal[f] = true
	}
	personalization := make([]float64, n)
	total := 0.0
	for i, node := range g.Nodes {
		personalization[i] = 1.0
		if personal[node] {
			personalization[i] = personalizeFactor
		}
		total += personalization[i]
	}
	for i := range personalization {
		personalization[i] /= total
	}

	type outEdge struct {
		to     int
		weight float64
	}
	outEdges := make([][]outEdge, n)
	outWeight := make([]float64, n)
	for _, e := range g.Edges {
		from, okF := idx[e.From]
		to, okT := idx[e.To]
		if !okF || !okT {
			continue
		}
		outEdges[from] = append(outEdges[from], outEdge{to: to, weight: e.Weight})
		outWeight[from] += e.Weight
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		for i := range next {
			next[i] = (1.0 - damping) * personalization[i]
		}
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				// Dangling node: spread its rank by personalization.
				for j := range next {
					next[j] += damping * rank[i] * personalization[j]
				}
				continue
			}
			for _, e := range outEdges[i] {
				next[e.to] += damping * rank[i] * (e.weight / outWeight[i])
			}
		}
		diff := 0.0
		for i := range rank {
			diff += math.Abs(next[i] - rank[i])
		}
		copy(rank, next)
		if diff < tolerance {
			break
		}
	}

	out := make(map[string]float64, n)
	for i, node := range g.Nodes {
		out[node] = rank[i]
	}
	return out
}

// MigrationOrder ranks the files that import legacy components. Files other
// modules depend on come first so that shared components are migrated
// before the pages that use them. Ties break by path.
func MigrationOrder(g *Graph, legacyImports []types.LegacyImport, cfg RankConfig) []types.RankedFile {
	counts := make(map[string]int)
	var files []string
	for _, li := range legacyImports {
		if counts[li.FilePath] == 0 {
			files = append(files, li.FilePath)
		}
		counts[li.FilePath]++
	}
	scores := PageRank(g, cfg)

	out := make([]types.RankedFile, 0, len(files))
	for _, f := range files {
		out = append(out, types.RankedFile{FilePath: f, Score: scores[f], LegacyImports: counts[f]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].FilePath < out[j].FilePath
	})
	return out
}
