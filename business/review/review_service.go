// Package review classifies a product review as genuine or fake using the
// sequence-classifier sidecar.
package review

import (
	"context"
	"fmt"
	"fraudGuard/domain"
	"fraudGuard/pkg/logger"
	"fraudGuard/pkg/metrics"
	"strings"
)

const (
	LabelGenuine = "genuine"
	LabelFake    = "fake"
)

// ClassifierResult is the sidecar verdict: pred 1 means fake.
type ClassifierResult struct {
	Pred       int     `json:"pred"`
	Confidence float64 `json:"confidence"`
}

type ReviewClassifier interface {
	Classify(ctx context.Context, comment string, rating *int) (ClassifierResult, error)
}

type reviewService struct {
	classifier ReviewClassifier
}

func NewReviewService(classifier ReviewClassifier) *reviewService {
	return &reviewService{
		classifier: classifier,
	}
}

func (s *reviewService) Analyze(ctx context.Context, comment string, rating *int) (*domain.ReviewAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		logger.Error("Invalid review: comment is required")
		return nil, fmt.Errorf("%w: review comment is required", domain.ErrInvalidInput)
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}

	result, err := s.classifier.Classify(ctx, comment, rating)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues("review_analyzer", "error").Inc()
		logger.Error("review classifier failed", "error", err)
		return nil, err
	}
	metrics.UpstreamCallsTotal.WithLabelValues("review_analyzer", "ok").Inc()

	label := LabelGenuine
	switch result.Pred {
	case 0:
	case 1:
		label = LabelFake
	default:
		return nil, &domain.UpstreamError{Service: "review_analyzer", Detail: fmt.Sprintf("unknown class %d", result.Pred), Err: domain.ErrMalformedReply}
	}

	return &domain.ReviewAnalysis{
		Pred:       result.Pred,
		Label:      label,
		Confidence: result.Confidence,
		Features:   ExtractFeatures(comment),
	}, nil
}
