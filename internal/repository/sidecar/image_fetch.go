package sidecar

import (
	"context"
	"fmt"
	"fraudGuard/business/counterfeit"
	"fraudGuard/domain"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

const maxImageBytes = 10 << 20

// ImageFetcher downloads listing photos referenced by products.image_url.
type ImageFetcher struct {
	http *http.Client
}

func NewImageFetcher() *ImageFetcher {
	return &ImageFetcher{
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *ImageFetcher) Fetch(ctx context.Context, rawURL string) (counterfeit.Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return counterfeit.Image{}, fmt.Errorf("%w: image url %q is not http(s)", domain.ErrInvalidInput, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return counterfeit.Image{}, &domain.UpstreamError{Service: "image_host", Err: err}
	}

	res, err := f.http.Do(req)
	if err != nil {
		return counterfeit.Image{}, &domain.UpstreamError{Service: "image_host", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return counterfeit.Image{}, &domain.UpstreamError{Service: "image_host", StatusCode: res.StatusCode, Detail: "image download failed"}
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxImageBytes+1))
	if err != nil {
		return counterfeit.Image{}, &domain.UpstreamError{Service: "image_host", StatusCode: res.StatusCode, Err: err}
	}
	if len(data) > maxImageBytes {
		return counterfeit.Image{}, &domain.UpstreamError{Service: "image_host", Detail: "image exceeds 10MB"}
	}

	name := path.Base(u.Path)
	if name == "/" || name == "." {
		name = "image"
	}
	return counterfeit.Image{Filename: name, Data: data}, nil
}
