package middleware

import (
	"errors"
	"fraudGuard/domain"
	"fraudGuard/pkg/logger"
	"net/http"

	jsonres "fraudGuard/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorHandler turns errors returned by handlers into the JSON error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "trace_id", TraceID(c), "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}

func mapError(err error) (int, jsonres.ErrorBody) {
	var (
		httpErr     *echo.HTTPError
		upstreamErr *domain.UpstreamError
		shapeErr    *domain.ShapeMismatchError
		validErr    validator.ValidationErrors
	)

	switch {
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, jsonres.Error(codeFor(httpErr.Code), msg, nil)
	case errors.As(err, &validErr):
		details := make(map[string]string, len(validErr))
		for _, fe := range validErr {
			details[fe.Field()] = fe.Tag()
		}
		return http.StatusBadRequest, jsonres.Error("BAD_REQUEST", "Invalid request payload", details)
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, domain.ErrSellerNotFound), errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, jsonres.Error("NOT_FOUND", err.Error(), nil)
	case errors.As(err, &upstreamErr):
		details := map[string]any{"service": upstreamErr.Service}
		if upstreamErr.StatusCode != 0 {
			details["status"] = upstreamErr.StatusCode
		}
		if upstreamErr.Detail != "" {
			details["detail"] = upstreamErr.Detail
		}
		return http.StatusBadGateway, jsonres.Error("UPSTREAM_FAILURE", "Upstream model service failed", details)
	case errors.As(err, &shapeErr):
		return http.StatusInternalServerError, jsonres.Error("SHAPE_MISMATCH", "Model input has an unexpected shape", nil)
	default:
		return http.StatusInternalServerError, jsonres.Error("INTERNAL_SERVER_ERROR", "Internal server error", nil)
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		if status >= http.StatusInternalServerError {
			return "INTERNAL_SERVER_ERROR"
		}
		return "ERROR"
	}
}
