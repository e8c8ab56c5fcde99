package sidecar

import (
	"bytes"
	"context"
	"fmt"
	"fraudGuard/business/counterfeit"
	"mime/multipart"
	"time"
)

const imageMatchTimeout = 20 * time.Second

type ImageMatchRepository struct {
	client *client
}

func NewImageMatchRepository(cfg SidecarConfig) *ImageMatchRepository {
	return &ImageMatchRepository{
		client: newClient("image_match", cfg, imageMatchTimeout),
	}
}

// Match uploads the image and description as multipart form fields "image"
// and "description" to /predict.
func (r *ImageMatchRepository) Match(ctx context.Context, img counterfeit.Image, description string) (counterfeit.MatchResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("image", img.Filename)
	if err != nil {
		return counterfeit.MatchResult{}, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return counterfeit.MatchResult{}, fmt.Errorf("failed to write image part: %w", err)
	}
	if err := form.WriteField("description", description); err != nil {
		return counterfeit.MatchResult{}, fmt.Errorf("failed to write description: %w", err)
	}
	if err := form.Close(); err != nil {
		return counterfeit.MatchResult{}, fmt.Errorf("failed to close multipart body: %w", err)
	}

	var result counterfeit.MatchResult
	if err := r.client.post(ctx, "/predict", form.FormDataContentType(), &body, &result); err != nil {
		return counterfeit.MatchResult{}, err
	}
	return result, nil
}
