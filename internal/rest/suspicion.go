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

type SuspicionService interface {
	Assess(ctx context.Context, req domain.SuspicionRequest) (*domain.SuspicionReport, error)
}

type SuspicionHandler struct {
	suspicionService SuspicionService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewSuspicionHandler(suspicionService SuspicionService) *SuspicionHandler {
	return &SuspicionHandler{
		suspicionService: suspicionService,
		validator:        validator.New(),
		timeout:          30 * time.Second,
	}
}

type SuspicionAssessRequest struct {
	ReturnRate    string   `json:"return_rate" validate:"required,max=32"`
	AverageRating string   `json:"average_rating" validate:"required,max=32"`
	RecentReviews []string `json:"recent_reviews" validate:"max=20,dive,max=2000"`
}

// POST /api/v1/sellers/suspicion
func (h *SuspicionHandler) Assess(c echo.Context) error {
	var req SuspicionAssessRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.suspicionService.Assess(ctx, domain.SuspicionRequest{
		ReturnRate:    req.ReturnRate,
		AverageRating: req.AverageRating,
		RecentReviews: req.RecentReviews,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}
