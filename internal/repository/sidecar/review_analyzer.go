package sidecar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"fraudGuard/business/review"
	"time"
)

const reviewAnalyzerTimeout = 10 * time.Second

type ReviewAnalyzerRepository struct {
	client *client
}

func NewReviewAnalyzerRepository(cfg SidecarConfig) *ReviewAnalyzerRepository {
	return &ReviewAnalyzerRepository{
		client: newClient("review_analyzer", cfg, reviewAnalyzerTimeout),
	}
}

type analyzePayload struct {
	Comment string `json:"comment"`
	Rating  *int   `json:"rating,omitempty"`
}

// Classify posts to /analyze. The sidecar scores "<comment> Rating: <r>"
// when a rating is sent and the bare comment otherwise.
func (r *ReviewAnalyzerRepository) Classify(ctx context.Context, comment string, rating *int) (review.ClassifierResult, error) {
	payloadByte, err := json.Marshal(analyzePayload{Comment: comment, Rating: rating})
	if err != nil {
		return review.ClassifierResult{}, fmt.Errorf("failed to marshal json payload: %w", err)
	}

	var result review.ClassifierResult
	if err := r.client.post(ctx, "/analyze", "application/json", bytes.NewReader(payloadByte), &result); err != nil {
		return review.ClassifierResult{}, err
	}
	return result, nil
}
