package sidecar

import (
	"context"
	"encoding/json"
	"fmt"
	"fraudGuard/domain"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

type SidecarConfig struct {
	BaseURL           string
	BasicAuthUsername string
	BasicAuthPassword string
}

// client posts to one model sidecar. Failures of any kind come back as
// *domain.UpstreamError tagged with service.
type client struct {
	service string
	cfg     SidecarConfig
	http    *http.Client
}

func newClient(service string, cfg SidecarConfig, timeout time.Duration) *client {
	return &client{
		service: service,
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (c *client) post(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return &domain.UpstreamError{Service: c.service, Err: err}
	}

	req.Header.Add("Content-Type", contentType)
	req.Header.Add("Accept", "application/json")
	if c.cfg.BasicAuthUsername != "" {
		buildBasicAuth := goshortcute.StringtoBase64Encode(c.cfg.BasicAuthUsername + ":" + c.cfg.BasicAuthPassword)
		req.Header.Add("Authorization", "Basic "+buildBasicAuth)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &domain.UpstreamError{Service: c.service, Err: err}
	}
	defer res.Body.Close()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return &domain.UpstreamError{Service: c.service, StatusCode: res.StatusCode, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &domain.UpstreamError{Service: c.service, StatusCode: res.StatusCode, Detail: errorDetail(bodyBytes)}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return &domain.UpstreamError{Service: c.service, StatusCode: res.StatusCode, Detail: "undecodable response", Err: fmt.Errorf("%w: %v", domain.ErrMalformedReply, err)}
	}
	return nil
}

func errorDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && (eb.Error != "" || eb.Detail != "") {
		if eb.Detail != "" {
			return strings.TrimSpace(eb.Error + ": " + eb.Detail)
		}
		return eb.Error
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
