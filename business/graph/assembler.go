package graph

import (
	"fraudGuard/domain"

	"gonum.org/v1/gonum/mat"
)

// AssemblerInput is the upstream data contract: node counts, per-kind
// features with exactly that many rows, and three kind-local relationship lists.
type AssemblerInput struct {
	NumUsers    int
	NumProducts int
	NumSellers  int

	UserFeatures    []domain.NodeFeatures
	ProductFeatures []domain.NodeFeatures
	SellerFeatures  []domain.NodeFeatures

	UserProduct   []Pair
	ProductSeller []Pair
	UserSeller    []Pair
}

type relationSpec struct {
	relation domain.Relation
	srcKind  domain.NodeKind
	dstKind  domain.NodeKind
	pairs    []Pair
}

// Assemble builds a Graph. Every relationship contributes a forward edge
// immediately followed by its reverse, both tagged with the same relation.
func Assemble(in AssemblerInput) (*Graph, error) {
	g := &Graph{
		NumUsers:    in.NumUsers,
		NumProducts: in.NumProducts,
		NumSellers:  in.NumSellers,
	}

	features, err := stackFeatures(g.NumNodes(), in)
	if err != nil {
		return nil, err
	}
	g.Features = features

	specs := []relationSpec{
		{domain.RelationReviews, domain.NodeUser, domain.NodeProduct, in.UserProduct},
		{domain.RelationSoldBy, domain.NodeProduct, domain.NodeSeller, in.ProductSeller},
		{domain.RelationBought, domain.NodeUser, domain.NodeSeller, in.UserSeller},
	}

	total := len(in.UserProduct) + len(in.ProductSeller) + len(in.UserSeller)
	g.Edges = make([]Edge, 0, 2*total)
	g.Relations = make([]int, 0, 2*total)

	for _, spec := range specs {
		for _, p := range spec.pairs {
			src, err := g.GlobalIndex(spec.srcKind, p.Src)
			if err != nil {
				return nil, withRelation(err, spec.relation)
			}
			dst, err := g.GlobalIndex(spec.dstKind, p.Dst)
			if err != nil {
				return nil, withRelation(err, spec.relation)
			}

			g.Edges = append(g.Edges, Edge{Src: src, Dst: dst}, Edge{Src: dst, Dst: src})
			g.Relations = append(g.Relations, int(spec.relation), int(spec.relation))
		}
	}

	return g, nil
}

func withRelation(err error, rel domain.Relation) error {
	if ie, ok := err.(*IndexError); ok {
		ie.Relation = rel.String()
	}
	return err
}

// stackFeatures concatenates users, products, sellers row-wise.
func stackFeatures(n int, in AssemblerInput) (*mat.Dense, error) {
	if n == 0 {
		return nil, &domain.ShapeMismatchError{Op: "assemble", What: "node count", Expected: 1, Actual: 0}
	}

	data := make([]float64, 0, n*domain.NodeFeatureWidth)
	blocks := []struct {
		kind domain.NodeKind
		rows []domain.NodeFeatures
	}{
		{domain.NodeUser, in.UserFeatures},
		{domain.NodeProduct, in.ProductFeatures},
		{domain.NodeSeller, in.SellerFeatures},
	}

	for _, b := range blocks {
		if want := countOf(in, b.kind); len(b.rows) != want {
			return nil, &domain.ShapeMismatchError{
				Op:       "assemble",
				What:     b.kind.String() + " feature rows",
				Expected: want,
				Actual:   len(b.rows),
			}
		}
		for i, f := range b.rows {
			if err := f.Validate(); err != nil {
				return nil, &FeatureError{Kind: b.kind, Index: i, Err: err}
			}
			v := f.Vector()
			data = append(data, v[:]...)
		}
	}

	return mat.NewDense(n, domain.NodeFeatureWidth, data), nil
}

func countOf(in AssemblerInput, kind domain.NodeKind) int {
	switch kind {
	case domain.NodeUser:
		return in.NumUsers
	case domain.NodeProduct:
		return in.NumProducts
	default:
		return in.NumSellers
	}
}
