// Package graph maps users, products and sellers into one contiguous node
// index space and builds the relation-typed edge list consumed by the scorer.
package graph

import (
	"fmt"
	"fraudGuard/domain"

	"gonum.org/v1/gonum/mat"
)

// Edge is a directed message path from Src to Dst, both global node indices.
type Edge struct {
	Src int
	Dst int
}

// Pair is a relationship between two kind-local indices.
type Pair struct {
	Src int
	Dst int
}

// Graph is one immutable snapshot. Users occupy [0,U), products [U,U+P) and
// sellers [U+P,U+P+S).
type Graph struct {
	NumUsers    int
	NumProducts int
	NumSellers  int

	// Features has NumNodes() rows and domain.NodeFeatureWidth columns.
	Features *mat.Dense

	// Edges and Relations are parallel slices.
	Edges     []Edge
	Relations []int
}

func (g *Graph) NumNodes() int {
	return g.NumUsers + g.NumProducts + g.NumSellers
}

func (g *Graph) Offset(kind domain.NodeKind) int {
	switch kind {
	case domain.NodeProduct:
		return g.NumUsers
	case domain.NodeSeller:
		return g.NumUsers + g.NumProducts
	default:
		return 0
	}
}

func (g *Graph) count(kind domain.NodeKind) int {
	switch kind {
	case domain.NodeUser:
		return g.NumUsers
	case domain.NodeProduct:
		return g.NumProducts
	case domain.NodeSeller:
		return g.NumSellers
	default:
		return 0
	}
}

// GlobalIndex converts a kind-local index into the global numbering.
func (g *Graph) GlobalIndex(kind domain.NodeKind, local int) (int, error) {
	n := g.count(kind)
	if local < 0 || local >= n {
		return 0, &IndexError{Kind: kind, Index: local, Count: n}
	}
	return g.Offset(kind) + local, nil
}

// SellerRange returns the half-open global index range of seller nodes.
func (g *Graph) SellerRange() (start, end int) {
	start = g.Offset(domain.NodeSeller)
	return start, start + g.NumSellers
}

// EdgeIndex returns the edge list as two rows: sources then destinations.
func (g *Graph) EdgeIndex() [2][]int {
	var idx [2][]int
	idx[0] = make([]int, len(g.Edges))
	idx[1] = make([]int, len(g.Edges))
	for i, e := range g.Edges {
		idx[0][i] = e.Src
		idx[1][i] = e.Dst
	}
	return idx
}

// RelationsUsed lists the distinct relation values present, ascending.
func (g *Graph) RelationsUsed() []int {
	seen := make([]bool, domain.NumRelations)
	for _, r := range g.Relations {
		if r >= 0 && r < len(seen) {
			seen[r] = true
		}
	}
	var out []int
	for r, ok := range seen {
		if ok {
			out = append(out, r)
		}
	}
	return out
}

// IndexError reports a kind-local index outside [0, Count).
type IndexError struct {
	Relation string
	Kind     domain.NodeKind
	Index    int
	Count    int
}

func (e *IndexError) Error() string {
	if e.Relation != "" {
		return fmt.Sprintf("%s: %s index %d out of range [0,%d)", e.Relation, e.Kind, e.Index, e.Count)
	}
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Kind, e.Index, e.Count)
}

// FeatureError reports a node whose features fail schema validation.
type FeatureError struct {
	Kind  domain.NodeKind
	Index int
	Err   error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s %d: invalid features: %v", e.Kind, e.Index, e.Err)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}
