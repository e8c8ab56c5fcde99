package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamErrorUnwrap(t *testing.T) {
	err := &UpstreamError{Service: "gemini", Detail: "no classification", Err: ErrMalformedReply}

	assert.True(t, errors.Is(err, ErrMalformedReply))
	assert.Equal(t, "gemini upstream failure: no classification: malformed reply", err.Error())
}

func TestUpstreamErrorStatus(t *testing.T) {
	err := &UpstreamError{Service: "review-analyzer", StatusCode: 503, Detail: "overloaded"}
	assert.Equal(t, "review-analyzer upstream failure (status 503): overloaded", err.Error())
}

func TestShapeMismatchError(t *testing.T) {
	err := &ShapeMismatchError{Op: "score", What: "feature width", Expected: 3, Actual: 4}
	assert.Equal(t, "score: shape mismatch in feature width: expected 3, got 4", err.Error())
}

func TestNodeFeaturesValidate(t *testing.T) {
	tests := []struct {
		name    string
		f       NodeFeatures
		wantErr bool
	}{
		{"valid", NodeFeatures{ReturnRatio: 0.1, AvgRating: 4.2, Burstiness: 0.3}, false},
		{"ratio above one", NodeFeatures{ReturnRatio: 1.5}, true},
		{"rating above five", NodeFeatures{AvgRating: 6}, true},
		{"negative burstiness", NodeFeatures{Burstiness: -0.3}, false},
		{"burstiness below minus one", NodeFeatures{Burstiness: -1.2}, true},
		{"burstiness above one", NodeFeatures{Burstiness: 1.01}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
