package rest

import (
	"context"
	"fraudGuard/domain"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ReviewService interface {
	Analyze(ctx context.Context, comment string, rating *int) (*domain.ReviewAnalysis, error)
}

type ReviewHandler struct {
	reviewService ReviewService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		timeout:       12 * time.Second,
	}
}

type AnalyzeReviewRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
	Rating  *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

// POST /api/v1/reviews/analyze
func (h *ReviewHandler) Analyze(c echo.Context) error {
	var req AnalyzeReviewRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	analysis, err := h.reviewService.Analyze(ctx, req.Comment, req.Rating)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(analysis))
}
