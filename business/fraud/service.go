// Package fraud answers "how likely is this seller fraudulent" against a
// fixed graph snapshot and a trained model.
package fraud

import (
	"context"
	"errors"
	"fmt"
	"fraudGuard/business/graph"
	"fraudGuard/business/rgcn"
	"fraudGuard/domain"
	"fraudGuard/pkg/logger"
	"fraudGuard/pkg/metrics"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Scorer produces per-node logits for a whole graph.
type Scorer interface {
	ScoreGraph(g *graph.Graph) (*mat.Dense, error)
}

// Service holds everything needed to score sellers. Nothing in it changes
// after construction, so it is safe to share between requests.
type Service struct {
	model Scorer
	graph *graph.Graph
	index *SellerIndex
}

func NewService(model Scorer, g *graph.Graph, index *SellerIndex) (*Service, error) {
	if model == nil || g == nil || index == nil {
		return nil, errors.New("fraud service needs a model, a graph and a seller index")
	}
	if r, ok := model.(interface{ Ready() bool }); ok && !r.Ready() {
		return nil, rgcn.ErrModelNotReady
	}
	return &Service{model: model, graph: g, index: index}, nil
}

// ScoreSeller runs one full forward pass and reports the fraud probability
// of the named seller.
func (s *Service) ScoreSeller(ctx context.Context, name string) (*domain.SellerFraudReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	node, features, err := s.index.Lookup(name)
	if err != nil {
		metrics.SellerScoresTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	logits, err := s.forward()
	if err != nil {
		metrics.SellerScoresTotal.WithLabelValues("error").Inc()
		logger.Error("forward pass failed", "seller", name, "error", err)
		return nil, err
	}

	report, err := reportFor(name, features, logits, node)
	if err != nil {
		metrics.SellerScoresTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SellerScoresTotal.WithLabelValues("scored").Inc()
	return report, nil
}

// ScoreSellers scores several sellers from a single forward pass. Unknown
// names are listed in NotFound rather than failing the batch.
func (s *Service) ScoreSellers(ctx context.Context, names []string) (*domain.BatchFraudReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	type hit struct {
		name     string
		node     int
		features domain.NodeFeatures
	}

	batch := &domain.BatchFraudReport{Reports: []domain.SellerFraudReport{}, NotFound: []string{}}
	var hits []hit
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		node, features, err := s.index.Lookup(name)
		if errors.Is(err, domain.ErrSellerNotFound) {
			metrics.SellerScoresTotal.WithLabelValues("not_found").Inc()
			batch.NotFound = append(batch.NotFound, name)
			continue
		}
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit{name: name, node: node, features: features})
	}

	if len(hits) == 0 {
		return batch, nil
	}

	logits, err := s.forward()
	if err != nil {
		metrics.SellerScoresTotal.WithLabelValues("error").Inc()
		logger.Error("forward pass failed", "sellers", len(hits), "error", err)
		return nil, err
	}

	for _, h := range hits {
		report, err := reportFor(h.name, h.features, logits, h.node)
		if err != nil {
			metrics.SellerScoresTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		metrics.SellerScoresTotal.WithLabelValues("scored").Inc()
		batch.Reports = append(batch.Reports, *report)
	}

	return batch, nil
}

func (s *Service) forward() (*mat.Dense, error) {
	start := time.Now()
	logits, err := s.model.ScoreGraph(s.graph)
	metrics.ForwardPassLatency.Observe(time.Since(start).Seconds())
	return logits, err
}

func reportFor(name string, features domain.NodeFeatures, logits *mat.Dense, node int) (*domain.SellerFraudReport, error) {
	p, err := rgcn.ToProbability(rgcn.LogitsRow(logits, node))
	if err != nil {
		return nil, fmt.Errorf("seller %q: %w", name, err)
	}
	return &domain.SellerFraudReport{
		Seller:           name,
		Features:         features,
		FraudProbability: p,
	}, nil
}
