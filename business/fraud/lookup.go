package fraud

import (
	"fmt"
	"fraudGuard/business/graph"
	"fraudGuard/domain"
)

type sellerEntry struct {
	node     int
	features domain.NodeFeatures
}

// SellerIndex resolves a seller's business name to its node in a snapshot.
// It is built once and read-only afterwards.
type SellerIndex struct {
	byName map[string]sellerEntry
}

// NewSellerIndex maps names[i] to the i-th seller node of g. Names must be
// unique and non-empty.
func NewSellerIndex(g *graph.Graph, names []string) (*SellerIndex, error) {
	if len(names) != g.NumSellers {
		return nil, &domain.ShapeMismatchError{Op: "seller_index", What: "seller names", Expected: g.NumSellers, Actual: len(names)}
	}

	idx := &SellerIndex{byName: make(map[string]sellerEntry, len(names))}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("seller %d has an empty name", i)
		}
		if _, dup := idx.byName[name]; dup {
			return nil, fmt.Errorf("duplicate seller name %q", name)
		}

		node, err := g.GlobalIndex(domain.NodeSeller, i)
		if err != nil {
			return nil, err
		}
		idx.byName[name] = sellerEntry{
			node: node,
			features: domain.NodeFeatures{
				ReturnRatio: g.Features.At(node, 0),
				AvgRating:   g.Features.At(node, 1),
				Burstiness:  g.Features.At(node, 2),
			},
		}
	}

	return idx, nil
}

// Lookup returns the global node index and raw features of a seller.
func (s *SellerIndex) Lookup(name string) (int, domain.NodeFeatures, error) {
	e, ok := s.byName[name]
	if !ok {
		return 0, domain.NodeFeatures{}, fmt.Errorf("%w: %q", domain.ErrSellerNotFound, name)
	}
	return e.node, e.features, nil
}

func (s *SellerIndex) Len() int {
	return len(s.byName)
}
