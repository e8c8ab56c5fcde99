package rest

import (
	"bytes"
	"context"
	"fmt"
	"fraudGuard/business/counterfeit"
	"fraudGuard/domain"
	"fraudGuard/internal/middleware"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFraudService struct {
	names []string
	asked string
}

func (s *stubFraudService) ScoreSeller(_ context.Context, name string) (*domain.SellerFraudReport, error) {
	s.asked = name
	if name != "Acme Goods" && name != "50%Off" {
		return nil, fmt.Errorf("%w: %q", domain.ErrSellerNotFound, name)
	}
	return &domain.SellerFraudReport{Seller: name, FraudProbability: 0.87}, nil
}

func (s *stubFraudService) ScoreSellers(_ context.Context, names []string) (*domain.BatchFraudReport, error) {
	s.names = names
	return &domain.BatchFraudReport{Reports: []domain.SellerFraudReport{}, NotFound: names}, nil
}

type stubSuspicionService struct {
	err error
	got domain.SuspicionRequest
}

func (s *stubSuspicionService) Assess(_ context.Context, req domain.SuspicionRequest) (*domain.SuspicionReport, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SuspicionReport{Classification: "suspicious", Confidence: "80"}, nil
}

type stubReviewService struct{}

func (stubReviewService) Analyze(_ context.Context, comment string, rating *int) (*domain.ReviewAnalysis, error) {
	return &domain.ReviewAnalysis{Pred: 1, Label: "fake", Confidence: 0.9}, nil
}

type stubCounterfeitService struct {
	img  counterfeit.Image
	desc string
}

func (s *stubCounterfeitService) Verify(_ context.Context, img counterfeit.Image, description string) (*domain.ImageMatch, error) {
	s.img, s.desc = img, description
	if description == "" {
		return nil, fmt.Errorf("%w: product description is required", domain.ErrInvalidInput)
	}
	return &domain.ImageMatch{Label: domain.ImageLabelGenuine, Score: 0.5}, nil
}

func (s *stubCounterfeitService) VerifyListing(_ context.Context, productID uint64) (*domain.ProductVerification, error) {
	if productID != 42 {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, productID)
	}
	return &domain.ProductVerification{
		ProductID:  productID,
		Label:      domain.ImageLabelFake,
		Score:      0.1,
		TrustScore: 0.2,
		Flags:      []string{"desc_image_mismatch"},
	}, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	return e
}

func do(e *echo.Echo, method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetSellerFraud(t *testing.T) {
	e := newTestEcho()
	h := NewFraudHandler(&stubFraudService{})
	e.GET("/api/v1/sellers/:name/fraud", h.GetSellerFraud)

	rec := do(e, http.MethodGet, "/api/v1/sellers/Acme%20Goods/fraud", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fraud_probability":0.87`)
	assert.Contains(t, rec.Body.String(), `"seller":"Acme Goods"`)

	rec = do(e, http.MethodGet, "/api/v1/sellers/Nobody/fraud", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestGetSellerFraudEscapedNames(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantName string
		wantCode int
	}{
		{"percent sign", "/api/v1/sellers/50%25Off/fraud", "50%Off", http.StatusOK},
		{"encoded percent is not decoded twice", "/api/v1/sellers/a%2541/fraud", "a%41", http.StatusNotFound},
		{"needless escape", "/api/v1/sellers/Acme%20Good%73/fraud", "Acme Goods", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			svc := &stubFraudService{}
			e.GET("/api/v1/sellers/:name/fraud", NewFraudHandler(svc).GetSellerFraud)

			rec := do(e, http.MethodGet, tt.target, "", nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantName, svc.asked)
		})
	}
}

func TestScoreSellersValidation(t *testing.T) {
	e := newTestEcho()
	svc := &stubFraudService{}
	h := NewFraudHandler(svc)
	e.POST("/api/v1/sellers/fraud", h.ScoreSellers)

	rec := do(e, http.MethodPost, "/api/v1/sellers/fraud", echo.MIMEApplicationJSON, []byte(`{"sellers":[]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/sellers/fraud", echo.MIMEApplicationJSON, []byte(`{"sellers":["a",""]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/sellers/fraud", echo.MIMEApplicationJSON, []byte(`{`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/sellers/fraud", echo.MIMEApplicationJSON, []byte(`{"sellers":["a","b"]}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a", "b"}, svc.names)
}

func TestSuspicionAssess(t *testing.T) {
	e := newTestEcho()
	svc := &stubSuspicionService{}
	e.POST("/suspicion", NewSuspicionHandler(svc).Assess)

	body := []byte(`{"return_rate":"30%","average_rating":"2.5","recent_reviews":["meh"]}`)
	rec := do(e, http.MethodPost, "/suspicion", echo.MIMEApplicationJSON, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "30%", svc.got.ReturnRate)
	assert.Equal(t, []string{"meh"}, svc.got.RecentReviews)
	assert.Contains(t, rec.Body.String(), `"classification":"suspicious"`)

	rec = do(e, http.MethodPost, "/suspicion", echo.MIMEApplicationJSON, []byte(`{"average_rating":"2.5"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuspicionUpstreamFailure(t *testing.T) {
	e := newTestEcho()
	svc := &stubSuspicionService{err: &domain.UpstreamError{Service: "gemini", StatusCode: 403, Detail: "API key not valid"}}
	e.POST("/suspicion", NewSuspicionHandler(svc).Assess)

	body := []byte(`{"return_rate":"30%","average_rating":"2.5"}`)
	rec := do(e, http.MethodPost, "/suspicion", echo.MIMEApplicationJSON, body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "API key not valid")
}

func TestReviewAnalyze(t *testing.T) {
	e := newTestEcho()
	e.POST("/reviews/analyze", NewReviewHandler(stubReviewService{}).Analyze)

	rec := do(e, http.MethodPost, "/reviews/analyze", echo.MIMEApplicationJSON, []byte(`{"comment":"great","rating":5}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"fake"`)

	rec = do(e, http.MethodPost, "/reviews/analyze", echo.MIMEApplicationJSON, []byte(`{"comment":"great","rating":9}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/reviews/analyze", echo.MIMEApplicationJSON, []byte(`{"rating":3}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, image []byte, description string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if image != nil {
		part, err := w.CreateFormFile("image", "item.jpg")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("description", description))
	require.NoError(t, w.Close())
	return buf.Bytes(), w.FormDataContentType()
}

func TestCounterfeitVerify(t *testing.T) {
	e := newTestEcho()
	svc := &stubCounterfeitService{}
	e.POST("/products/verify", NewCounterfeitHandler(svc).Verify)

	body, ct := multipartBody(t, []byte("jpeg-bytes"), "blue ceramic mug")
	rec := do(e, http.MethodPost, "/products/verify", ct, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "item.jpg", svc.img.Filename)
	assert.Equal(t, []byte("jpeg-bytes"), svc.img.Data)
	assert.Equal(t, "blue ceramic mug", svc.desc)
	assert.True(t, strings.Contains(rec.Body.String(), `"label":"Genuine"`))

	body, ct = multipartBody(t, nil, "blue ceramic mug")
	rec = do(e, http.MethodPost, "/products/verify", ct, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, []byte("jpeg-bytes"), "")
	rec = do(e, http.MethodPost, "/products/verify", ct, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCounterfeitVerifyListing(t *testing.T) {
	e := newTestEcho()
	e.POST("/products/:id/verify", NewCounterfeitHandler(&stubCounterfeitService{}).VerifyListing)

	rec := do(e, http.MethodPost, "/products/42/verify", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"Fake"`)
	assert.Contains(t, rec.Body.String(), `"trust_score":0.2`)
	assert.Contains(t, rec.Body.String(), `"flags":["desc_image_mismatch"]`)

	rec = do(e, http.MethodPost, "/products/7/verify", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/products/abc/verify", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
