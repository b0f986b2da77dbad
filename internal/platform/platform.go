package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

var ErrImageRequired = errors.New("image is required for this platform")

// Request is one publish attempt against one connected account. AccessToken
// is the decrypted token.
type Request struct {
	AccountID   string
	AccessToken string
	Text        string
	ImageURL    string
}

// Result never carries a Go error; failures are reported through Error so a
// fan-out can keep going.
type Result struct {
	Success bool   `json:"success"`
	PostID  string `json:"post_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Publisher interface {
	Name() string
	Publish(ctx context.Context, req Request) Result
	Verify(ctx context.Context, req Request) error
}

func failed(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func newRestClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
}

// checkResponse turns a transport error or a non-2xx answer into an error,
// preferring the platform's error.message.
func checkResponse(resp *resty.Response, err error, apiErr *apiError) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr != nil && apiErr.Error.Message != "" {
			return errors.New(apiErr.Error.Message)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return nil
}
