package rgcn

import (
	"fraudGuard/business/graph"
	"fraudGuard/domain"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// smallGraph is U=2, P=1, S=1 with one review (user 0 -> product 0) and one
// listing (product 0 -> seller 0).
func smallGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Assemble(graph.AssemblerInput{
		NumUsers:    2,
		NumProducts: 1,
		NumSellers:  1,
		UserFeatures: []domain.NodeFeatures{
			{ReturnRatio: 0, AvgRating: 1, Burstiness: 0},
			{ReturnRatio: 0, AvgRating: 2, Burstiness: 0},
		},
		ProductFeatures: []domain.NodeFeatures{{ReturnRatio: 1, AvgRating: 0, Burstiness: 0}},
		SellerFeatures:  []domain.NodeFeatures{{ReturnRatio: 0, AvgRating: 0, Burstiness: 1}},
		UserProduct:     []graph.Pair{{Src: 0, Dst: 0}},
		ProductSeller:   []graph.Pair{{Src: 0, Dst: 0}},
	})
	require.NoError(t, err)
	return g
}

// knownModel has hand-picked weights: in=3, hidden=2, classes=2, R=3.
func knownModel() *Model {
	m := &Model{dims: Dims{InFeatures: 3, Hidden: 2, Classes: 2, Relations: 3}}

	l1 := newLayer(3, 2, 3)
	l1.Root = mat.NewDense(3, 2, []float64{1, 0, 0, 1, 0, 0})
	l1.Rel[0] = mat.NewDense(3, 2, []float64{0, 0, 1, 0, 0, 0})
	l1.Rel[1] = mat.NewDense(3, 2, []float64{0, 1, 0, 0, 1, 0})
	l1.Bias = []float64{0, -0.5}

	l2 := newLayer(2, 2, 3)
	l2.Root = mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	l2.Rel[1] = mat.NewDense(2, 2, []float64{0, 1, 0, 0})
	l2.Bias = []float64{0.25, 0}

	m.layers[0] = l1
	m.layers[1] = l2
	return m
}
