package rgcn

import (
	"errors"
	"fraudGuard/domain"
	"math"
)

var ErrNonFiniteLogits = errors.New("logits are not a number")

// FraudClass is the logit index of the fraudulent class.
const FraudClass = 1

// ToProbability applies a max-shifted softmax over a two-class logit pair and
// returns the weight of the fraud class.
func ToProbability(logits []float64) (float64, error) {
	if len(logits) != 2 {
		return 0, &domain.ShapeMismatchError{Op: "to_probability", What: "logit count", Expected: 2, Actual: len(logits)}
	}

	hi := math.Max(logits[0], logits[1])
	e0 := math.Exp(logits[0] - hi)
	e1 := math.Exp(logits[1] - hi)

	p := e1 / (e0 + e1)
	if math.IsNaN(p) {
		return 0, ErrNonFiniteLogits
	}
	return p, nil
}
