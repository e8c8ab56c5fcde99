package rgcn

import (
	"fraudGuard/business/graph"

	"gonum.org/v1/gonum/mat"
)

// adjacency groups edges by relation and stores per-relation in-degrees so
// mean aggregation and its gradient share one normalisation.
type adjacency struct {
	numNodes int
	byRel    [][]graph.Edge
	inDeg    [][]float64
}

func newAdjacency(numNodes, numRelations int, edges []graph.Edge, relations []int) *adjacency {
	a := &adjacency{
		numNodes: numNodes,
		byRel:    make([][]graph.Edge, numRelations),
		inDeg:    make([][]float64, numRelations),
	}
	for r := range a.inDeg {
		a.inDeg[r] = make([]float64, numNodes)
	}
	for k, e := range edges {
		r := relations[k]
		a.byRel[r] = append(a.byRel[r], e)
		a.inDeg[r][e.Dst]++
	}
	return a
}

// aggregate returns M with M[i] = mean of x[j] over edges j->i of relation r.
// Nodes without such edges get a zero row.
func (a *adjacency) aggregate(x *mat.Dense, r int) *mat.Dense {
	_, cols := x.Dims()
	m := mat.NewDense(a.numNodes, cols, nil)
	if len(a.byRel[r]) == 0 {
		return m
	}

	out := m.RawMatrix()
	in := x.RawMatrix()
	deg := a.inDeg[r]
	for _, e := range a.byRel[r] {
		src := in.Data[e.Src*in.Stride : e.Src*in.Stride+cols]
		dst := out.Data[e.Dst*out.Stride : e.Dst*out.Stride+cols]
		w := 1 / deg[e.Dst]
		for c, v := range src {
			dst[c] += v * w
		}
	}
	return m
}

// scatter is the transpose of aggregate: dx[j] += dm[i] / deg(i) for j->i.
func (a *adjacency) scatter(dm *mat.Dense, r int, dx *mat.Dense) {
	if len(a.byRel[r]) == 0 {
		return
	}
	_, cols := dm.Dims()

	in := dm.RawMatrix()
	out := dx.RawMatrix()
	deg := a.inDeg[r]
	for _, e := range a.byRel[r] {
		src := in.Data[e.Dst*in.Stride : e.Dst*in.Stride+cols]
		dst := out.Data[e.Src*out.Stride : e.Src*out.Stride+cols]
		w := 1 / deg[e.Dst]
		for c, v := range src {
			dst[c] += v * w
		}
	}
}
