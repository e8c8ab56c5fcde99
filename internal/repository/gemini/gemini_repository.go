package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fraudGuard/domain"
	"net/http"
	"time"

	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

type GeminiRepository struct {
	client *genai.Client
	cfg    GeminiConfig
}

func NewGeminiRepository(ctx context.Context, cfg GeminiConfig) (*GeminiRepository, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiRepository{
		client: client,
		cfg:    cfg,
	}, nil
}

func (r *GeminiRepository) Model() string {
	return r.cfg.Model
}

// Generate sends a single-turn prompt and returns the concatenated text of
// the first candidate together with the JSON-encoded response.
func (r *GeminiRepository) Generate(ctx context.Context, prompt string) (string, []byte, error) {
	resp, err := r.client.Models.GenerateContent(ctx, r.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(r.cfg.Temperature),
	})
	if err != nil {
		return "", nil, upstreamError(err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal gemini response: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", raw, &domain.UpstreamError{Service: "gemini", Detail: "response has no text candidate", Err: domain.ErrMalformedReply}
	}

	return text, raw, nil
}

func upstreamError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{Service: "gemini", StatusCode: apiErr.Code, Detail: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &domain.UpstreamError{Service: "gemini", StatusCode: apiErrPtr.Code, Detail: apiErrPtr.Message}
	}
	return &domain.UpstreamError{Service: "gemini", Err: err}
}
