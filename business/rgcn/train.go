package rgcn

import (
	"context"
	"errors"
	"fmt"
	"fraudGuard/business/graph"
	"fraudGuard/domain"
	"fraudGuard/pkg/logger"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

var ErrNoFraudLabels = errors.New("no fraud-labelled sellers to train on")

// TrainConfig holds the optimiser settings. Adam with L2 weight decay added
// to the gradient.
type TrainConfig struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	WeightDecay  float64 `yaml:"weight_decay"`
	Beta1        float64 `yaml:"beta1"`
	Beta2        float64 `yaml:"beta2"`
	Epsilon      float64 `yaml:"epsilon"`
	LogEvery     int     `yaml:"log_every"`
	Seed         int64   `yaml:"seed"`
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:       100,
		LearningRate: 0.01,
		WeightDecay:  5e-4,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
		LogEvery:     20,
		Seed:         42,
	}
}

type EpochStat struct {
	Epoch    int     `json:"epoch"`
	Loss     float64 `json:"loss"`
	Accuracy float64 `json:"accuracy"`
}

type TrainReport struct {
	Epochs        int         `json:"epochs"`
	MaskSize      int         `json:"mask_size"`
	FinalLoss     float64     `json:"final_loss"`
	FinalAccuracy float64     `json:"final_accuracy"`
	History       []EpochStat `json:"history"`
}

// BalancedMask selects every fraud-labelled seller plus an equal number of
// normal sellers drawn without replacement. Only indices in [start,end) are
// considered.
func BalancedMask(labels []int, start, end int, rng *rand.Rand) ([]bool, error) {
	if start < 0 || end > len(labels) || start > end {
		return nil, &domain.ShapeMismatchError{Op: "balanced_mask", What: "label rows", Expected: end, Actual: len(labels)}
	}

	var fraud, normal []int
	for i := start; i < end; i++ {
		switch labels[i] {
		case domain.LabelFraud:
			fraud = append(fraud, i)
		case domain.LabelNormal:
			normal = append(normal, i)
		}
	}
	if len(fraud) == 0 {
		return nil, ErrNoFraudLabels
	}

	k := len(fraud)
	if len(normal) < k {
		k = len(normal)
	}

	mask := make([]bool, len(labels))
	for _, i := range fraud {
		mask[i] = true
	}
	for _, p := range rng.Perm(len(normal))[:k] {
		mask[normal[p]] = true
	}
	return mask, nil
}

// Train fits the model in place with full-batch gradient descent. The loss
// is mean cross-entropy over masked nodes only.
func (m *Model) Train(ctx context.Context, g *graph.Graph, labels []int, mask []bool, cfg TrainConfig) (TrainReport, error) {
	if !m.Ready() {
		return TrainReport{}, ErrModelNotReady
	}
	n := g.NumNodes()
	if len(labels) != n {
		return TrainReport{}, &domain.ShapeMismatchError{Op: "train", What: "label rows", Expected: n, Actual: len(labels)}
	}
	if len(mask) != n {
		return TrainReport{}, &domain.ShapeMismatchError{Op: "train", What: "mask rows", Expected: n, Actual: len(mask)}
	}
	if cfg.Epochs <= 0 {
		return TrainReport{}, errors.New("epochs must be positive")
	}

	maskSize := 0
	for i, on := range mask {
		if !on {
			continue
		}
		if labels[i] < 0 || labels[i] >= m.dims.Classes {
			return TrainReport{}, fmt.Errorf("masked node %d has label %d outside [0,%d)", i, labels[i], m.dims.Classes)
		}
		maskSize++
	}
	if maskSize == 0 {
		return TrainReport{}, errors.New("training mask is empty")
	}

	if rows, _ := g.Features.Dims(); rows != n {
		return TrainReport{}, &domain.ShapeMismatchError{Op: "train", What: "feature rows", Expected: n, Actual: rows}
	}
	adj, err := m.prepare(g.Features, g.Edges, g.Relations)
	if err != nil {
		return TrainReport{}, err
	}

	params := m.params()
	opt := newAdam(params, cfg)
	report := TrainReport{MaskSize: maskSize}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("training interrupted at epoch %d: %w", epoch, err)
		}

		loss, acc, grads := m.gradients(g.Features, adj, labels, mask)
		opt.step(params, grads)

		report.Epochs = epoch
		report.FinalLoss = loss
		report.FinalAccuracy = acc

		if cfg.LogEvery > 0 && epoch%cfg.LogEvery == 0 {
			report.History = append(report.History, EpochStat{Epoch: epoch, Loss: loss, Accuracy: acc})
			logger.Info("rgcn_epoch",
				"epoch", epoch,
				"loss", fmt.Sprintf("%.4f", loss),
				"train_acc", fmt.Sprintf("%.4f", acc),
			)
		}
	}

	return report, nil
}

// gradients runs forward and backward once and returns the masked loss and
// accuracy of the pre-update weights with gradients ordered like params().
func (m *Model) gradients(x *mat.Dense, adj *adjacency, labels []int, mask []bool) (float64, float64, [][]float64) {
	z2, cache := m.forward(x, adj)
	loss, acc, dz2 := maskedCrossEntropy(z2, labels, mask)

	g2, dh := m.layers[1].backward(cache.l2, dz2, adj, true)

	dz1 := mat.NewDense(dh.RawMatrix().Rows, dh.RawMatrix().Cols, nil)
	dz1.Apply(func(i, j int, v float64) float64 {
		if cache.hidden.At(i, j) > 0 {
			return v
		}
		return 0
	}, dh)

	g1, _ := m.layers[0].backward(cache.l1, dz1, adj, false)

	return loss, acc, append(g1.flat(), g2.flat()...)
}

func maskedCrossEntropy(logits *mat.Dense, labels []int, mask []bool) (float64, float64, *mat.Dense) {
	n, classes := logits.Dims()
	dz := mat.NewDense(n, classes, nil)

	count := 0
	for _, on := range mask {
		if on {
			count++
		}
	}

	var loss float64
	correct := 0
	row := make([]float64, classes)
	for i := 0; i < n; i++ {
		if !mask[i] {
			continue
		}
		mat.Row(row, i, logits)

		hi, argmax := row[0], 0
		for c := 1; c < classes; c++ {
			if row[c] > hi {
				hi, argmax = row[c], c
			}
		}
		var sum float64
		for _, v := range row {
			sum += math.Exp(v - hi)
		}
		lse := hi + math.Log(sum)

		y := labels[i]
		loss += lse - row[y]
		if argmax == y {
			correct++
		}

		for c, v := range row {
			p := math.Exp(v - lse)
			if c == y {
				p--
			}
			dz.Set(i, c, p/float64(count))
		}
	}

	return loss / float64(count), float64(correct) / float64(count), dz
}

type adam struct {
	cfg TrainConfig
	m   [][]float64
	v   [][]float64
	t   int
}

func newAdam(params [][]float64, cfg TrainConfig) *adam {
	a := &adam{cfg: cfg, m: make([][]float64, len(params)), v: make([][]float64, len(params))}
	for i, p := range params {
		a.m[i] = make([]float64, len(p))
		a.v[i] = make([]float64, len(p))
	}
	return a
}

func (a *adam) step(params, grads [][]float64) {
	a.t++
	c1 := 1 - math.Pow(a.cfg.Beta1, float64(a.t))
	c2 := 1 - math.Pow(a.cfg.Beta2, float64(a.t))

	for i, p := range params {
		g, m, v := grads[i], a.m[i], a.v[i]
		for j := range p {
			gj := g[j] + a.cfg.WeightDecay*p[j]
			m[j] = a.cfg.Beta1*m[j] + (1-a.cfg.Beta1)*gj
			v[j] = a.cfg.Beta2*v[j] + (1-a.cfg.Beta2)*gj*gj
			p[j] -= a.cfg.LearningRate * (m[j] / c1) / (math.Sqrt(v[j]/c2) + a.cfg.Epsilon)
		}
	}
}
