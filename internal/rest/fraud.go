package rest

import (
	"context"
	"fraudGuard/domain"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type FraudService interface {
	ScoreSeller(ctx context.Context, name string) (*domain.SellerFraudReport, error)
	ScoreSellers(ctx context.Context, names []string) (*domain.BatchFraudReport, error)
}

type FraudHandler struct {
	fraudService FraudService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewFraudHandler(fraudService FraudService) *FraudHandler {
	return &FraudHandler{
		fraudService: fraudService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type BatchFraudRequest struct {
	Sellers []string `json:"sellers" validate:"required,min=1,max=100,dive,required"`
}

// GET /api/v1/sellers/:name/fraud
func (h *FraudHandler) GetSellerFraud(c echo.Context) error {
	name, err := sellerName(c)
	if err != nil || strings.TrimSpace(name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid seller name")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.fraudService.ScoreSeller(ctx, name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

// echo matches on RawPath when the request carries one, leaving the
// parameter escaped; otherwise it is already decoded.
func sellerName(c echo.Context) (string, error) {
	if c.Request().URL.RawPath == "" {
		return c.Param("name"), nil
	}
	return url.PathUnescape(c.Param("name"))
}

// POST /api/v1/sellers/fraud
func (h *FraudHandler) ScoreSellers(c echo.Context) error {
	var req BatchFraudRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	batch, err := h.fraudService.ScoreSellers(ctx, req.Sellers)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(batch))
}
