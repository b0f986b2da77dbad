package platform

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	blogger "google.golang.org/api/blogger/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var bloggerLabels = []string{"AI Generated", "Automated"}

// Blogger posts to a blog whose id is stored as the connected account id.
type Blogger struct {
	endpoint string
	client   *http.Client
}

func NewBlogger(endpoint string) *Blogger {
	return &Blogger{endpoint: endpoint}
}

func (b *Blogger) Name() string { return "blogger" }

func (b *Blogger) service(ctx context.Context, token string) (*blogger.Service, error) {
	base := b.client
	if base == nil {
		base = http.DefaultClient
	}
	authed := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, base),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	)

	opts := []option.ClientOption{option.WithHTTPClient(authed)}
	if b.endpoint != "" {
		opts = append(opts, option.WithEndpoint(b.endpoint))
	}
	return blogger.NewService(ctx, opts...)
}

func bloggerTitle(text string) string {
	r := []rune(text)
	if len(r) > 100 {
		r = r[:100]
	}
	return string(r)
}

func bloggerContent(text, imageURL string) string {
	content := "<p>" + html.EscapeString(text) + "</p>"
	if imageURL != "" {
		content += fmt.Sprintf(`<br/><img src="%s" alt="Post image" style="max-width: 100%%; height: auto;"/>`,
			html.EscapeString(imageURL))
	}
	return content
}

func bloggerError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return errors.New(gerr.Message)
	}
	return err
}

func (b *Blogger) Publish(ctx context.Context, req Request) Result {
	svc, err := b.service(ctx, req.AccessToken)
	if err != nil {
		return failed(err)
	}

	post := &blogger.Post{
		Title:   bloggerTitle(req.Text),
		Content: bloggerContent(req.Text, req.ImageURL),
		Labels:  bloggerLabels,
	}
	created, err := svc.Posts.Insert(req.AccountID, post).Context(ctx).Do()
	if err != nil {
		err = bloggerError(err)
		slog.Warn("blogger publish failed", "blog", req.AccountID, "err", err)
		return failed(err)
	}
	return Result{Success: true, PostID: created.Id}
}

func (b *Blogger) Verify(ctx context.Context, req Request) error {
	svc, err := b.service(ctx, req.AccessToken)
	if err != nil {
		return err
	}
	if _, err := svc.Blogs.Get(req.AccountID).Context(ctx).Do(); err != nil {
		return bloggerError(err)
	}
	return nil
}
