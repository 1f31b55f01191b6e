// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scanner

import "sort"

// Edge is a directed import edge: From imports To.
type Edge struct {
	From   string  // Importing file
	To     string  // Imported file
	Weight float64 // Number of bindings imported
}

// Graph is the file-level import graph of a scanned tree.
type Graph struct {
	Nodes []string
	Edges []Edge
}

// importRef is one resolved import found during a scan.
type importRef struct {
	from, to string
	names    int
}

// BuildGraph constructs the import graph. Self imports are dropped and
// repeated imports between the same pair of files are merged.
func BuildGraph(nodes []string, refs []importRef) *Graph {
	g := &Graph{Nodes: append([]string(nil), nodes...)}
	sort.Strings(g.Nodes)

	type key struct{ from, to string }
	weights := make(map[key]float64)
	var order []key
	for _, r := range refs {
		if r.from == r.to {
			continue
		}
		k := key{r.from, r.to}
		if _, ok := weights[k]; !ok {
			order = append(order, k)
		}
		w := float64(r.names)
		if w < 1 {
			w = 1 // Side-effect imports still count as a dependency.
		}
		weights[k] += w
	}
	for _, k := range order {
		g.Edges = append(g.Edges, Edge{From: k.from, To: k.to, Weight: weights[k]})
	}
	return g
}

// Importers returns, for each file, the files that import it.
func (g *Graph) Importers() map[string][]string {
	out := make(map[string][]string)
	for _, e := range g.Edges {
		out[e.To] = append(out[e.To], e.From)
	}
	return out
}
