package rest

import (
	"context"
	"fraudGuard/business/counterfeit"
	"fraudGuard/domain"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

const maxImageBytes = 10 << 20

type CounterfeitService interface {
	Verify(ctx context.Context, img counterfeit.Image, description string) (*domain.ImageMatch, error)
	VerifyListing(ctx context.Context, productID uint64) (*domain.ProductVerification, error)
}

type CounterfeitHandler struct {
	counterfeitService CounterfeitService
	timeout            time.Duration
}

func NewCounterfeitHandler(counterfeitService CounterfeitService) *CounterfeitHandler {
	return &CounterfeitHandler{
		counterfeitService: counterfeitService,
		timeout:            25 * time.Second,
	}
}

// POST /api/v1/products/verify (multipart: image, description)
func (h *CounterfeitHandler) Verify(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	if fh.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image exceeds 10MB")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}
	if len(data) > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image exceeds 10MB")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	match, err := h.counterfeitService.Verify(ctx, counterfeit.Image{Filename: fh.Filename, Data: data}, c.FormValue("description"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(match))
}

// POST /api/v1/products/:id/verify
func (h *CounterfeitHandler) VerifyListing(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	verification, err := h.counterfeitService.VerifyListing(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(verification))
}
