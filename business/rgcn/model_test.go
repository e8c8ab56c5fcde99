package rgcn

import (
	"errors"
	"fraudGuard/business/graph"
	"fraudGuard/domain"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestScoreKnownWeights(t *testing.T) {
	g := smallGraph(t)
	assert.Equal(t, []int{0, 1}, g.RelationsUsed())
	assert.Len(t, g.Edges, 4)

	logits, err := knownModel().ScoreGraph(g)
	require.NoError(t, err)

	// Hidden layer: [0 0.5] [0 1.5] [3 0] [0 0.5]
	want := [][]float64{
		{0.25, 0.5},
		{0.25, 1.5},
		{3.25, 0},
		{0.25, 3.5},
	}
	for i, row := range want {
		assert.Equal(t, row, LogitsRow(logits, i), "node %d", i)
	}

	start, _ := g.SellerRange()
	p, err := ToProbability(LogitsRow(logits, start))
	require.NoError(t, err)
	assert.InDelta(t, 0.9626731, p, 1e-6)
}

func TestScoreDeterministic(t *testing.T) {
	g := smallGraph(t)
	m, err := NewModel(Dims{InFeatures: 3, Hidden: 16, Classes: 2, Relations: 3}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	a, err := m.ScoreGraph(g)
	require.NoError(t, err)
	b, err := m.ScoreGraph(g)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a, b))
}

func TestScoreIsolatedNodeUsesSelfOnly(t *testing.T) {
	g := smallGraph(t)
	m := knownModel()

	logits, err := m.Score(g.Features, nil, nil)
	require.NoError(t, err)

	// without edges every node sees only its own features
	assert.Equal(t, []float64{0.25, 0.5}, LogitsRow(logits, 0))
	assert.Equal(t, []float64{0.25, 0}, LogitsRow(logits, 3))
}

func TestScoreShapeMismatch(t *testing.T) {
	g := smallGraph(t)
	m := knownModel()

	wide := mat.NewDense(4, 4, nil)

	tests := []struct {
		name string
		run  func() error
		what string
	}{
		{"feature width", func() error {
			_, err := m.Score(wide, g.Edges, g.Relations)
			return err
		}, "feature width"},
		{"relation length parity", func() error {
			_, err := m.Score(g.Features, g.Edges, g.Relations[:3])
			return err
		}, "relation list length"},
		{"relation beyond cardinality", func() error {
			_, err := m.Score(g.Features, []graph.Edge{{Src: 0, Dst: 1}}, []int{3})
			return err
		}, "relation cardinality"},
		{"negative relation", func() error {
			_, err := m.Score(g.Features, []graph.Edge{{Src: 0, Dst: 1}}, []int{-1})
			return err
		}, "relation cardinality"},
		{"edge endpoint", func() error {
			_, err := m.Score(g.Features, []graph.Edge{{Src: 0, Dst: 9}}, []int{0})
			return err
		}, "edge endpoint node count"},
		{"feature rows", func() error {
			bad := *g
			bad.NumUsers = 3
			_, err := m.ScoreGraph(&bad)
			return err
		}, "feature rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var sm *domain.ShapeMismatchError
			require.True(t, errors.As(err, &sm), "got %v", err)
			assert.Equal(t, tt.what, sm.What)
		})
	}
}

func TestScoreUninitialised(t *testing.T) {
	g := smallGraph(t)
	var m Model

	assert.False(t, m.Ready())
	_, err := m.ScoreGraph(g)
	assert.ErrorIs(t, err, ErrModelNotReady)
}

func TestNewModelRejectsZeroDims(t *testing.T) {
	_, err := NewModel(Dims{InFeatures: 3}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}
