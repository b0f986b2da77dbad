package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrEmptyImageURL = errors.New("image service returned no url")

type ImageClient struct {
	http     *resty.Client
	endpoint string
	model    string
}

type Option func(*ImageClient)

// WithHTTPClient swaps the underlying resty client, mainly for tests.
func WithHTTPClient(c *resty.Client) Option {
	return func(ic *ImageClient) { ic.http = c }
}

func NewImageClient(endpoint, apiKey, model string, opts ...Option) *ImageClient {
	ic := &ImageClient{
		http:     resty.New().SetTimeout(2 * time.Minute),
		endpoint: endpoint,
		model:    model,
	}
	for _, opt := range opts {
		opt(ic)
	}
	if apiKey != "" {
		ic.http.SetAuthToken(apiKey)
	}
	return ic
}

type imageRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the image service for one image and returns its URL.
func (c *ImageClient) Generate(ctx context.Context, prompt string) (string, error) {
	var out imageResponse
	var apiErr apiError

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(imageRequest{Model: c.model, Prompt: prompt, N: 1}).
		SetResult(&out).
		SetError(&apiErr).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("image service: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("image service: status %d", resp.StatusCode())
	}

	if len(out.Data) == 0 || strings.TrimSpace(out.Data[0].URL) == "" {
		return "", ErrEmptyImageURL
	}
	return out.Data[0].URL, nil
}

// Download fetches the bytes behind url.
func (c *ImageClient) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download image: status %d", resp.StatusCode())
	}
	if len(resp.Body()) == 0 {
		return nil, errors.New("download image: empty body")
	}
	return resp.Body(), nil
}
