package graph

import (
	"fraudGuard/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotNodeLabels(t *testing.T) {
	s := &Snapshot{
		Input:        input(1, 1, 2),
		SellerNames:  []string{"a", "b"},
		SellerLabels: []int{domain.LabelFraud, domain.LabelUnknown},
	}
	g, err := Assemble(s.Input)
	require.NoError(t, err)

	labels, err := s.NodeLabels(g)
	require.NoError(t, err)
	assert.Equal(t, []int{-1, -1, 1, -1}, labels)

	s.SellerLabels = s.SellerLabels[:1]
	_, err = s.NodeLabels(g)
	var sm *domain.ShapeMismatchError
	assert.ErrorAs(t, err, &sm)
}
