package platform

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Stub pretends to publish. It logs the attempt and fabricates an id of the
// form <name>_<unix millis>.
type Stub struct {
	name         string
	requireImage bool
	now          func() time.Time
}

func NewStub(name string, requireImage bool) *Stub {
	return &Stub{name: name, requireImage: requireImage, now: time.Now}
}

func (s *Stub) Name() string { return s.name }

func (s *Stub) Publish(_ context.Context, req Request) Result {
	if s.requireImage && req.ImageURL == "" {
		return failed(ErrImageRequired)
	}
	slog.Info("stub publish", "platform", s.name, "account", req.AccountID, "chars", len([]rune(req.Text)))
	return Result{Success: true, PostID: fmt.Sprintf("%s_%d", s.name, s.now().UnixMilli())}
}

func (s *Stub) Verify(context.Context, Request) error { return nil }
