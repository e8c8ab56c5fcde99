// Package rgcn implements a two-layer relational graph convolutional network
// scoring every node of a seller graph as normal or fraudulent.
package rgcn

import (
	"errors"
	"fraudGuard/business/graph"
	"fraudGuard/domain"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

var ErrModelNotReady = errors.New("model weights not loaded")

const (
	DefaultHidden  = 16
	DefaultClasses = 2
)

// Dims fixes the shape of a model.
type Dims struct {
	InFeatures int `json:"in_features" yaml:"in_features"`
	Hidden     int `json:"hidden" yaml:"hidden"`
	Classes    int `json:"classes" yaml:"classes"`
	Relations  int `json:"relations" yaml:"relations"`
}

func DefaultDims() Dims {
	return Dims{
		InFeatures: domain.NodeFeatureWidth,
		Hidden:     DefaultHidden,
		Classes:    DefaultClasses,
		Relations:  domain.NumRelations,
	}
}

func (d Dims) valid() bool {
	return d.InFeatures > 0 && d.Hidden > 0 && d.Classes > 0 && d.Relations > 0
}

// Model is uninitialised as a zero value and ready once it holds weights,
// either from Load or NewModel. A ready model is never mutated outside Train,
// so concurrent Score calls are safe.
type Model struct {
	dims   Dims
	layers [2]*Layer
}

// NewModel returns a model with Glorot-initialised weights and zero biases.
func NewModel(dims Dims, rng *rand.Rand) (*Model, error) {
	if !dims.valid() {
		return nil, errors.New("model dimensions must be positive")
	}
	m := &Model{dims: dims}
	m.layers[0] = newLayer(dims.InFeatures, dims.Hidden, dims.Relations)
	m.layers[1] = newLayer(dims.Hidden, dims.Classes, dims.Relations)
	m.layers[0].glorot(rng)
	m.layers[1].glorot(rng)
	return m, nil
}

func (m *Model) Ready() bool {
	return m != nil && m.layers[0] != nil && m.layers[1] != nil
}

func (m *Model) Dims() Dims {
	return m.dims
}

// ScoreGraph scores a full snapshot, additionally checking that the feature
// matrix has exactly one row per node.
func (m *Model) ScoreGraph(g *graph.Graph) (*mat.Dense, error) {
	if g.Features == nil {
		return nil, &domain.ShapeMismatchError{Op: "score", What: "feature rows", Expected: g.NumNodes(), Actual: 0}
	}
	if rows, _ := g.Features.Dims(); rows != g.NumNodes() {
		return nil, &domain.ShapeMismatchError{Op: "score", What: "feature rows", Expected: g.NumNodes(), Actual: rows}
	}
	return m.Score(g.Features, g.Edges, g.Relations)
}

// Score runs one forward pass over the whole graph and returns N × Classes
// logits. The output depends only on the weights and the inputs.
func (m *Model) Score(features *mat.Dense, edges []graph.Edge, relations []int) (*mat.Dense, error) {
	if !m.Ready() {
		return nil, ErrModelNotReady
	}
	adj, err := m.prepare(features, edges, relations)
	if err != nil {
		return nil, err
	}
	logits, _ := m.forward(features, adj)
	return logits, nil
}

func (m *Model) prepare(features *mat.Dense, edges []graph.Edge, relations []int) (*adjacency, error) {
	if features == nil || features.IsEmpty() {
		return nil, &domain.ShapeMismatchError{Op: "score", What: "feature rows", Expected: 1, Actual: 0}
	}
	n, width := features.Dims()
	if width != m.dims.InFeatures {
		return nil, &domain.ShapeMismatchError{Op: "score", What: "feature width", Expected: m.dims.InFeatures, Actual: width}
	}
	if len(edges) != len(relations) {
		return nil, &domain.ShapeMismatchError{Op: "score", What: "relation list length", Expected: len(edges), Actual: len(relations)}
	}
	for k, r := range relations {
		if r < 0 || r >= m.dims.Relations {
			return nil, &domain.ShapeMismatchError{Op: "score", What: "relation cardinality", Expected: m.dims.Relations, Actual: r + 1}
		}
		e := edges[k]
		if e.Src < 0 || e.Src >= n || e.Dst < 0 || e.Dst >= n {
			bad := e.Src
			if e.Src >= 0 && e.Src < n {
				bad = e.Dst
			}
			return nil, &domain.ShapeMismatchError{Op: "score", What: "edge endpoint node count", Expected: n, Actual: bad + 1}
		}
	}
	return newAdjacency(n, m.dims.Relations, edges, relations), nil
}

type forwardCache struct {
	l1     *layerCache
	l2     *layerCache
	hidden *mat.Dense // pre-activation of layer 1
}

func (m *Model) forward(x *mat.Dense, adj *adjacency) (*mat.Dense, *forwardCache) {
	z1, c1 := m.layers[0].forward(x, adj)
	h := relu(z1)
	z2, c2 := m.layers[1].forward(h, adj)
	return z2, &forwardCache{l1: c1, l2: c2, hidden: z1}
}

func (m *Model) params() [][]float64 {
	return append(m.layers[0].params(), m.layers[1].params()...)
}

// LogitsRow copies row i of a logits matrix.
func LogitsRow(logits *mat.Dense, i int) []float64 {
	return mat.Row(nil, i, logits)
}
