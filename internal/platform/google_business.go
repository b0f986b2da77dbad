package platform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-resty/resty/v2"
)

type businessMedia struct {
	MediaFormat string `json:"mediaFormat"`
	SourceURL   string `json:"sourceUrl"`
}

type businessPost struct {
	Summary   string          `json:"summary"`
	TopicType string          `json:"topicType"`
	Media     []businessMedia `json:"media,omitempty"`
}

type GoogleBusiness struct {
	http *resty.Client
}

func NewGoogleBusiness(baseURL string) *GoogleBusiness {
	return &GoogleBusiness{http: newRestClient(baseURL)}
}

func (g *GoogleBusiness) Name() string { return "google_business" }

func (g *GoogleBusiness) Publish(ctx context.Context, req Request) Result {
	body := businessPost{Summary: req.Text, TopicType: "STANDARD_POST"}
	if req.ImageURL != "" {
		body.Media = []businessMedia{{MediaFormat: "PHOTO", SourceURL: req.ImageURL}}
	}

	var out struct {
		Name string `json:"name"`
	}
	var apiErr apiError
	resp, err := g.http.R().
		SetContext(ctx).
		SetAuthToken(req.AccessToken).
		SetPathParam("account", req.AccountID).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/accounts/{account}/posts")
	if err := checkResponse(resp, err, &apiErr); err != nil {
		slog.Warn("google business publish failed", "account", req.AccountID, "err", err)
		return failed(err)
	}
	if out.Name == "" {
		return failed(errors.New("google business returned no post name"))
	}
	return Result{Success: true, PostID: out.Name}
}

func (g *GoogleBusiness) Verify(ctx context.Context, req Request) error {
	var apiErr apiError
	resp, err := g.http.R().
		SetContext(ctx).
		SetAuthToken(req.AccessToken).
		SetPathParam("account", req.AccountID).
		SetError(&apiErr).
		Get("/accounts/{account}")
	return checkResponse(resp, err, &apiErr)
}
