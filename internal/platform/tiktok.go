package platform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-resty/resty/v2"
)

type tiktokSource struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type tiktokPublishRequest struct {
	Video struct {
		Source tiktokSource `json:"source"`
	} `json:"video"`
	Caption      string `json:"caption"`
	PrivacyLevel string `json:"privacy_level"`
}

type TikTok struct {
	http *resty.Client
}

func NewTikTok(baseURL string) *TikTok {
	return &TikTok{http: newRestClient(baseURL)}
}

func (t *TikTok) Name() string { return "tiktok" }

func (t *TikTok) Publish(ctx context.Context, req Request) Result {
	body := tiktokPublishRequest{Caption: req.Text, PrivacyLevel: "PUBLIC_TO_EVERYONE"}
	body.Video.Source = tiktokSource{Type: "UPLOAD_URL", URL: req.ImageURL}

	var out struct {
		Data struct {
			VideoID string `json:"video_id"`
		} `json:"data"`
	}
	var apiErr apiError
	resp, err := t.http.R().
		SetContext(ctx).
		SetAuthToken(req.AccessToken).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/video/publish/")
	if err := checkResponse(resp, err, &apiErr); err != nil {
		slog.Warn("tiktok publish failed", "account", req.AccountID, "err", err)
		return failed(err)
	}
	if out.Data.VideoID == "" {
		return failed(errors.New("tiktok returned no video id"))
	}
	return Result{Success: true, PostID: out.Data.VideoID}
}

func (t *TikTok) Verify(ctx context.Context, req Request) error {
	var apiErr apiError
	resp, err := t.http.R().
		SetContext(ctx).
		SetAuthToken(req.AccessToken).
		SetQueryParam("fields", "open_id,display_name").
		SetError(&apiErr).
		Get("/user/info/")
	return checkResponse(resp, err, &apiErr)
}
