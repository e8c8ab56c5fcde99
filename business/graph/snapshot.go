package graph

import "fraudGuard/domain"

// Snapshot is one consistent read of the marketplace: the assembler input
// plus the seller names and ground-truth labels aligned with seller order.
type Snapshot struct {
	Input        AssemblerInput
	SellerNames  []string
	SellerLabels []int
}

// NodeLabels expands the seller labels to one entry per node of g. Users,
// products and unlabelled sellers get domain.LabelUnknown.
func (s *Snapshot) NodeLabels(g *Graph) ([]int, error) {
	if len(s.SellerLabels) != g.NumSellers {
		return nil, &domain.ShapeMismatchError{Op: "node_labels", What: "seller labels", Expected: g.NumSellers, Actual: len(s.SellerLabels)}
	}

	labels := make([]int, g.NumNodes())
	for i := range labels {
		labels[i] = domain.LabelUnknown
	}
	start, _ := g.SellerRange()
	copy(labels[start:], s.SellerLabels)
	return labels, nil
}
