package service

import (
	"context"
	"errors"
	"sync"

	"github.com/maheshrc27/autopost/internal/platform"
	"github.com/maheshrc27/autopost/internal/storage"
	"github.com/tmc/langchaingo/llms"
)

type fakeLLM struct {
	mu       sync.Mutex
	text     string
	err      error
	calls    int
	messages [][]llms.MessageContent
}

func (f *fakeLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.messages = append(f.messages, messages)
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.text}}}, nil
}

func (f *fakeLLM) prompt(call, msg int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	part, _ := f.messages[call][msg].Parts[0].(llms.TextContent)
	return part.Text
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

type fakeImages struct {
	url    string
	data   []byte
	genErr error
	prompt string
}

func (f *fakeImages) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.url, nil
}

func (f *fakeImages) Download(_ context.Context, url string) ([]byte, error) {
	if url != f.url {
		return nil, errors.New("unexpected url " + url)
	}
	return f.data, nil
}

type fakeBlobs struct {
	mu    sync.Mutex
	puts  map[string]string
	fails bool
}

func (b *fakeBlobs) Put(_ context.Context, key string, _ []byte, contentType string) (*storage.Object, error) {
	if b.fails {
		return nil, errors.New("bucket unavailable")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.puts == nil {
		b.puts = map[string]string{}
	}
	b.puts[key] = contentType
	return &storage.Object{Key: key, URL: "https://cdn.test/" + key}, nil
}

// fakePublisher succeeds unless failWith is set and remembers every request.
type fakePublisher struct {
	name      string
	failWith  string
	verifyErr error

	mu       sync.Mutex
	requests []platform.Request
}

func (p *fakePublisher) Name() string { return p.name }

func (p *fakePublisher) Publish(_ context.Context, req platform.Request) platform.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if p.failWith != "" {
		return platform.Result{Error: p.failWith}
	}
	return platform.Result{Success: true, PostID: p.name + "-post"}
}

func (p *fakePublisher) Verify(_ context.Context, _ platform.Request) error {
	return p.verifyErr
}

func (p *fakePublisher) calls() []platform.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platform.Request(nil), p.requests...)
}
