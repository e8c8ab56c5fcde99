package middleware

import (
	"encoding/json"
	"fmt"
	"fraudGuard/domain"
	"fraudGuard/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsonres "fraudGuard/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(Trace())
	return e
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	valid, err := utils.GenerateJWT("analyst-7", "ANALYST", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			e.GET("/secure", func(c echo.Context) error {
				return c.String(http.StatusOK, c.Get("user_id").(string))
			}, AuthMiddleware())

			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "analyst-7", rec.Body.String())
			}
		})
	}
}

func TestErrorHandlerMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"not found", fmt.Errorf("%w: %q", domain.ErrSellerNotFound, "x"), http.StatusNotFound, "NOT_FOUND"},
		{"upstream", &domain.UpstreamError{Service: "gemini", StatusCode: 429, Detail: "quota"}, http.StatusBadGateway, "UPSTREAM_FAILURE"},
		{"shape", &domain.ShapeMismatchError{Op: "score", What: "w", Expected: 1, Actual: 2}, http.StatusInternalServerError, "SHAPE_MISMATCH"},
		{"invalid input", fmt.Errorf("%w: comment required", domain.ErrInvalidInput), http.StatusBadRequest, "BAD_REQUEST"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "bad json"), http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			e.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.want, rec.Code)
			var body jsonres.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestErrorHandlerUpstreamDetails(t *testing.T) {
	e := newEcho()
	e.GET("/fail", func(c echo.Context) error {
		return &domain.UpstreamError{Service: "image_match", StatusCode: 500, Detail: "cuda oom"}
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.JSONEq(t, `{
		"success": false,
		"code": "UPSTREAM_FAILURE",
		"message": "Upstream model service failed",
		"details": {"service": "image_match", "status": 500, "detail": "cuda oom"}
	}`, rec.Body.String())
}

func TestTracePropagatesRequestID(t *testing.T) {
	e := newEcho()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, TraceIDFromContext(c.Request().Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, rec.Body.String(), 36)
	assert.Equal(t, rec.Body.String(), rec.Header().Get(echo.HeaderXRequestID))
}
