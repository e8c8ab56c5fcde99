// Package counterfeit checks whether a product photo matches its listing
// description using the image-text retrieval sidecar.
package counterfeit

import (
	"context"
	"fmt"
	"fraudGuard/domain"
	"fraudGuard/pkg/logger"
	"fraudGuard/pkg/metrics"
	"math"
	"strings"
	"time"
)

const DefaultThreshold = 0.3

type Image struct {
	Filename string
	Data     []byte
}

// MatchResult is the sidecar reply. Label is advisory; the service derives
// its own from Score.
type MatchResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type ImageMatcher interface {
	Match(ctx context.Context, img Image, description string) (MatchResult, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	SaveVerification(ctx context.Context, v domain.ProductVerification) error
}

type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (Image, error)
}

type counterfeitService struct {
	matcher   ImageMatcher
	products  ProductRepository
	fetcher   ImageFetcher
	threshold float64
	now       func() time.Time
}

// NewCounterfeitService uses DefaultThreshold when threshold is not positive.
func NewCounterfeitService(matcher ImageMatcher, products ProductRepository, fetcher ImageFetcher, threshold float64) *counterfeitService {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &counterfeitService{
		matcher:   matcher,
		products:  products,
		fetcher:   fetcher,
		threshold: threshold,
		now:       time.Now,
	}
}

// VerifyListing checks a stored product: its photo is downloaded from
// image_url and compared with its description. The verdict is written back
// to the product's trust score, flags and status history.
func (s *counterfeitService) VerifyListing(ctx context.Context, productID uint64) (*domain.ProductVerification, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(product.ImageURL) == "" {
		return nil, fmt.Errorf("%w: product %d has no image", domain.ErrInvalidInput, productID)
	}

	img, err := s.fetcher.Fetch(ctx, product.ImageURL)
	if err != nil {
		logger.Error("failed to fetch product image", "product_id", productID, "error", err)
		return nil, err
	}

	match, err := s.Verify(ctx, img, product.Description)
	if err != nil {
		return nil, err
	}

	verification := applyVerdict(product, *match, s.now().UTC())
	if err := s.products.SaveVerification(ctx, verification); err != nil {
		logger.Error("failed to save listing verification", "product_id", productID, "error", err)
		return nil, err
	}

	logger.Info("listing verified",
		"product_id", productID,
		"label", verification.Label,
		"trust_score", verification.TrustScore,
	)

	return &verification, nil
}

func (s *counterfeitService) Verify(ctx context.Context, img Image, description string) (*domain.ImageMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(img.Data) == 0 {
		return nil, fmt.Errorf("%w: product image is required", domain.ErrInvalidInput)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: product description is required", domain.ErrInvalidInput)
	}

	result, err := s.matcher.Match(ctx, img, description)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues("image_match", "error").Inc()
		logger.Error("image match failed", "file", img.Filename, "error", err)
		return nil, err
	}
	if math.IsNaN(result.Score) || math.IsInf(result.Score, 0) {
		metrics.UpstreamCallsTotal.WithLabelValues("image_match", "malformed").Inc()
		return nil, &domain.UpstreamError{Service: "image_match", Detail: "non-finite score", Err: domain.ErrMalformedReply}
	}
	metrics.UpstreamCallsTotal.WithLabelValues("image_match", "ok").Inc()

	label := domain.ImageLabelFake
	if result.Score >= s.threshold {
		label = domain.ImageLabelGenuine
	}
	if result.Label != "" && result.Label != label {
		logger.Warn("sidecar label disagrees with local threshold",
			"sidecar_label", result.Label,
			"label", label,
			"score", result.Score,
		)
	}

	return &domain.ImageMatch{Label: label, Score: result.Score}, nil
}
