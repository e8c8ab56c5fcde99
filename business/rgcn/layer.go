package rgcn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Layer is one relational graph convolution:
//
//	Z = X·Root + Σ_r mean_r(X)·Rel[r] + Bias
type Layer struct {
	In  int
	Out int

	Root *mat.Dense   // In × Out
	Rel  []*mat.Dense // one In × Out matrix per relation
	Bias []float64    // Out
}

func newLayer(in, out, numRelations int) *Layer {
	l := &Layer{
		In:   in,
		Out:  out,
		Root: mat.NewDense(in, out, nil),
		Rel:  make([]*mat.Dense, numRelations),
		Bias: make([]float64, out),
	}
	for r := range l.Rel {
		l.Rel[r] = mat.NewDense(in, out, nil)
	}
	return l
}

// glorot fills every weight matrix from U(-a, a), a = sqrt(6/(in+out)).
func (l *Layer) glorot(rng *rand.Rand) {
	a := math.Sqrt(6 / float64(l.In+l.Out))
	fill := func(m *mat.Dense) {
		data := m.RawMatrix().Data
		for i := range data {
			data[i] = (rng.Float64()*2 - 1) * a
		}
	}
	fill(l.Root)
	for _, w := range l.Rel {
		fill(w)
	}
}

type layerCache struct {
	x   *mat.Dense
	agg []*mat.Dense
}

func (l *Layer) forward(x *mat.Dense, adj *adjacency) (*mat.Dense, *layerCache) {
	n, _ := x.Dims()
	cache := &layerCache{x: x, agg: make([]*mat.Dense, len(l.Rel))}

	z := mat.NewDense(n, l.Out, nil)
	z.Mul(x, l.Root)

	var tmp mat.Dense
	for r, w := range l.Rel {
		m := adj.aggregate(x, r)
		cache.agg[r] = m
		if len(adj.byRel[r]) == 0 {
			continue
		}
		tmp.Reset()
		tmp.Mul(m, w)
		z.Add(z, &tmp)
	}

	raw := z.RawMatrix()
	for i := 0; i < n; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+l.Out]
		for c := range row {
			row[c] += l.Bias[c]
		}
	}

	return z, cache
}

type layerGrads struct {
	root *mat.Dense
	rel  []*mat.Dense
	bias []float64
}

// backward returns parameter gradients and, when needInput is set, dL/dX.
func (l *Layer) backward(cache *layerCache, dz *mat.Dense, adj *adjacency, needInput bool) (*layerGrads, *mat.Dense) {
	n, _ := dz.Dims()
	g := &layerGrads{
		root: mat.NewDense(l.In, l.Out, nil),
		rel:  make([]*mat.Dense, len(l.Rel)),
		bias: make([]float64, l.Out),
	}

	g.root.Mul(cache.x.T(), dz)
	for r := range l.Rel {
		g.rel[r] = mat.NewDense(l.In, l.Out, nil)
		if len(adj.byRel[r]) == 0 {
			continue
		}
		g.rel[r].Mul(cache.agg[r].T(), dz)
	}

	raw := dz.RawMatrix()
	for i := 0; i < n; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+l.Out]
		for c, v := range row {
			g.bias[c] += v
		}
	}

	if !needInput {
		return g, nil
	}

	dx := mat.NewDense(n, l.In, nil)
	dx.Mul(dz, l.Root.T())

	var dm mat.Dense
	for r, w := range l.Rel {
		if len(adj.byRel[r]) == 0 {
			continue
		}
		dm.Reset()
		dm.Mul(dz, w.T())
		adj.scatter(&dm, r, dx)
	}

	return g, dx
}

// params lists every trainable slice in a fixed order.
func (l *Layer) params() [][]float64 {
	out := [][]float64{l.Root.RawMatrix().Data}
	for _, w := range l.Rel {
		out = append(out, w.RawMatrix().Data)
	}
	return append(out, l.Bias)
}

func (g *layerGrads) flat() [][]float64 {
	out := [][]float64{g.root.RawMatrix().Data}
	for _, w := range g.rel {
		out = append(out, w.RawMatrix().Data)
	}
	return append(out, g.bias)
}

func relu(z *mat.Dense) *mat.Dense {
	var h mat.Dense
	h.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	}, z)
	return &h
}
