package domain

import (
	"fmt"
	"math"
)

type NodeKind int

const (
	NodeUser NodeKind = iota
	NodeProduct
	NodeSeller
)

func (k NodeKind) String() string {
	switch k {
	case NodeUser:
		return "user"
	case NodeProduct:
		return "product"
	case NodeSeller:
		return "seller"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Relation tags an edge category. Values are stable: they index the per-relation
// weights of a trained model.
type Relation int

const (
	RelationReviews Relation = 0
	RelationSoldBy  Relation = 1
	RelationBought  Relation = 2
)

const NumRelations = 3

func (r Relation) String() string {
	switch r {
	case RelationReviews:
		return "reviews"
	case RelationSoldBy:
		return "sold_by"
	case RelationBought:
		return "bought"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

const (
	LabelNormal  = 0
	LabelFraud   = 1
	LabelUnknown = -1
)

// NodeFeatureWidth is the column count of the node feature matrix.
const NodeFeatureWidth = 3

// NodeFeatures is the fixed feature schema shared by every node kind.
type NodeFeatures struct {
	ReturnRatio float64 `json:"return_ratio"`
	AvgRating   float64 `json:"avg_rating"`
	Burstiness  float64 `json:"burstiness"`
}

// Vector returns the features in matrix column order.
func (f NodeFeatures) Vector() [NodeFeatureWidth]float64 {
	return [NodeFeatureWidth]float64{f.ReturnRatio, f.AvgRating, f.Burstiness}
}

func (f NodeFeatures) Validate() error {
	for i, v := range f.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("feature %d is not finite", i)
		}
	}
	if f.ReturnRatio < 0 || f.ReturnRatio > 1 {
		return fmt.Errorf("return_ratio %v outside [0,1]", f.ReturnRatio)
	}
	if f.AvgRating < 0 || f.AvgRating > 5 {
		return fmt.Errorf("avg_rating %v outside [0,5]", f.AvgRating)
	}
	// burstiness coefficient (sigma-mu)/(sigma+mu)
	if f.Burstiness < -1 || f.Burstiness > 1 {
		return fmt.Errorf("burstiness %v outside [-1,1]", f.Burstiness)
	}
	return nil
}
