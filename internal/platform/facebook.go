package platform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-resty/resty/v2"
)

type Facebook struct {
	http *resty.Client
}

func NewFacebook(baseURL string) *Facebook {
	return &Facebook{http: newRestClient(baseURL)}
}

func (f *Facebook) Name() string { return "facebook" }

func (f *Facebook) Publish(ctx context.Context, req Request) Result {
	form := map[string]string{
		"message":      req.Text,
		"access_token": req.AccessToken,
	}
	if req.ImageURL != "" {
		form["link"] = req.ImageURL
		form["picture"] = req.ImageURL
	}

	var out struct {
		ID string `json:"id"`
	}
	var apiErr apiError
	resp, err := f.http.R().
		SetContext(ctx).
		SetPathParam("account", req.AccountID).
		SetFormData(form).
		SetResult(&out).
		SetError(&apiErr).
		Post("/{account}/feed")
	if err := checkResponse(resp, err, &apiErr); err != nil {
		slog.Warn("facebook publish failed", "account", req.AccountID, "err", err)
		return failed(err)
	}
	if out.ID == "" {
		return failed(errors.New("facebook returned no post id"))
	}
	return Result{Success: true, PostID: out.ID}
}

func (f *Facebook) Verify(ctx context.Context, req Request) error {
	var apiErr apiError
	resp, err := f.http.R().
		SetContext(ctx).
		SetPathParam("account", req.AccountID).
		SetQueryParams(map[string]string{"fields": "id,name", "access_token": req.AccessToken}).
		SetError(&apiErr).
		Get("/{account}")
	return checkResponse(resp, err, &apiErr)
}
