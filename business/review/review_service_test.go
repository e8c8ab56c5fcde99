package review

import (
	"context"
	"fraudGuard/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	result  ClassifierResult
	err     error
	comment string
	rating  *int
}

func (s *stubClassifier) Classify(_ context.Context, comment string, rating *int) (ClassifierResult, error) {
	s.comment, s.rating = comment, rating
	return s.result, s.err
}

func TestExtractFeatures(t *testing.T) {
	tests := []struct {
		text  string
		count int
		avg   float64
	}{
		{"", 0, 0},
		{"   \n\t", 0, 0},
		{"good", 1, 4},
		{"very  good product", 3, 5},
		{"café ok", 2, 3},
	}
	for _, tt := range tests {
		f := ExtractFeatures(tt.text)
		assert.Equal(t, FeatureVersion, f.Version)
		assert.Equal(t, tt.count, f.WordCount, tt.text)
		assert.InDelta(t, tt.avg, f.AvgWordLength, 1e-12, tt.text)
	}
}

func TestAnalyze(t *testing.T) {
	stub := &stubClassifier{result: ClassifierResult{Pred: 1, Confidence: 0.93}}
	svc := NewReviewService(stub)
	rating := 5

	got, err := svc.Analyze(context.Background(), "  Best product ever buy now  ", &rating)
	require.NoError(t, err)
	assert.Equal(t, "Best product ever buy now", stub.comment)
	assert.Equal(t, &rating, stub.rating)

	assert.Equal(t, 1, got.Pred)
	assert.Equal(t, LabelFake, got.Label)
	assert.Equal(t, 0.93, got.Confidence)
	assert.Equal(t, 5, got.Features.WordCount)
}

func TestAnalyzeGenuineWithoutRating(t *testing.T) {
	svc := NewReviewService(&stubClassifier{result: ClassifierResult{Pred: 0, Confidence: 0.7}})

	got, err := svc.Analyze(context.Background(), "arrived on time", nil)
	require.NoError(t, err)
	assert.Equal(t, LabelGenuine, got.Label)
}

func TestAnalyzeRejectsInput(t *testing.T) {
	stub := &stubClassifier{}
	svc := NewReviewService(stub)
	bad := 9

	_, err := svc.Analyze(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "invalid input: review comment is required")

	_, err = svc.Analyze(context.Background(), "fine", &bad)
	assert.EqualError(t, err, "invalid input: rating must be between 1 and 5")
	assert.Empty(t, stub.comment)
}

func TestAnalyzeUnknownClass(t *testing.T) {
	svc := NewReviewService(&stubClassifier{result: ClassifierResult{Pred: 4}})

	_, err := svc.Analyze(context.Background(), "text", nil)
	assert.ErrorIs(t, err, domain.ErrMalformedReply)
}

func TestAnalyzeUpstreamError(t *testing.T) {
	upstream := &domain.UpstreamError{Service: "review_analyzer", StatusCode: 500}
	svc := NewReviewService(&stubClassifier{err: upstream})

	_, err := svc.Analyze(context.Background(), "text", nil)
	var ue *domain.UpstreamError
	assert.ErrorAs(t, err, &ue)
}
