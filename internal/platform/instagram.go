package platform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-resty/resty/v2"
)

// Instagram publishes through the Graph API container flow: create a media
// container for the image, then publish it by creation id.
type Instagram struct {
	http *resty.Client
}

func NewInstagram(baseURL string) *Instagram {
	return &Instagram{http: newRestClient(baseURL)}
}

func (ig *Instagram) Name() string { return "instagram" }

func (ig *Instagram) Publish(ctx context.Context, req Request) Result {
	if req.ImageURL == "" {
		return failed(ErrImageRequired)
	}

	var media struct {
		ID string `json:"id"`
	}
	var apiErr apiError
	resp, err := ig.http.R().
		SetContext(ctx).
		SetPathParam("account", req.AccountID).
		SetFormData(map[string]string{
			"image_url":    req.ImageURL,
			"caption":      req.Text,
			"access_token": req.AccessToken,
		}).
		SetResult(&media).
		SetError(&apiErr).
		Post("/{account}/media")
	if err := checkResponse(resp, err, &apiErr); err != nil {
		slog.Warn("instagram media upload failed", "account", req.AccountID, "err", err)
		return failed(err)
	}
	if media.ID == "" {
		return failed(errors.New("instagram returned no creation id"))
	}

	var published struct {
		ID string `json:"id"`
	}
	apiErr = apiError{}
	resp, err = ig.http.R().
		SetContext(ctx).
		SetPathParam("account", req.AccountID).
		SetFormData(map[string]string{
			"creation_id":  media.ID,
			"access_token": req.AccessToken,
		}).
		SetResult(&published).
		SetError(&apiErr).
		Post("/{account}/media_publish")
	if err := checkResponse(resp, err, &apiErr); err != nil {
		slog.Warn("instagram media publish failed", "account", req.AccountID, "err", err)
		return failed(err)
	}
	return Result{Success: true, PostID: published.ID}
}

func (ig *Instagram) Verify(ctx context.Context, req Request) error {
	var apiErr apiError
	resp, err := ig.http.R().
		SetContext(ctx).
		SetPathParam("account", req.AccountID).
		SetQueryParams(map[string]string{"fields": "id,username", "access_token": req.AccessToken}).
		SetError(&apiErr).
		Get("/{account}")
	return checkResponse(resp, err, &apiErr)
}
