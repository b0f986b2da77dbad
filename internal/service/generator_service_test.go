package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
)

func testSetting() *models.ContentSetting {
	return &models.ContentSetting{
		ID:              7,
		UserID:          1,
		Topic:           "coffee",
		ContentStyle:    "casual",
		Tone:            "friendly",
		Language:        "en",
		IncludeHashtags: true,
		IncludeEmojis:   false,
		MaxPostLength:   280,
	}
}

func TestGenerateTextBuildsPromptFromSetting(t *testing.T) {
	llm := &fakeLLM{text: "fresh beans today #coffee"}
	gen := NewContentGenerator(llm, nil, nil, 2)

	text, err := gen.GenerateText(context.Background(), "coffee", testSetting())
	if err != nil {
		t.Fatal(err)
	}
	if text != "fresh beans today #coffee" {
		t.Fatalf("text = %q", text)
	}

	system := llm.prompt(0, 0)
	for _, want := range []string{"Style: casual", "Tone: friendly", "Language: en", "Include relevant hashtags", "Do not use emojis", "280"} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q:\n%s", want, system)
		}
	}
	if !strings.Contains(llm.prompt(0, 1), "coffee") {
		t.Errorf("user prompt does not name the topic: %s", llm.prompt(0, 1))
	}
}

func TestGenerateTextEmptyCompletion(t *testing.T) {
	gen := NewContentGenerator(&fakeLLM{text: "   "}, nil, nil, 1)

	_, err := gen.GenerateText(context.Background(), "coffee", testSetting())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("err = %v, want ErrGeneration", err)
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Stage != "text" {
		t.Fatalf("err = %#v, want text GenerationError", err)
	}
}

func TestGenerateFullStoresImage(t *testing.T) {
	images := &fakeImages{url: "https://images.test/1", data: pngHeader}
	blobs := &fakeBlobs{}
	g := NewContentGenerator(&fakeLLM{text: "a post"}, images, blobs, 1).(*contentGenerator)
	g.now = func() time.Time { return time.UnixMilli(1700000000000) }

	res, err := g.GenerateFull(context.Background(), "coffee", testSetting(), true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "a post" {
		t.Fatalf("text = %q", res.Text)
	}
	if !strings.HasPrefix(res.ImageKey, "generated-images/1700000000000-") || !strings.HasSuffix(res.ImageKey, ".png") {
		t.Fatalf("image key = %q", res.ImageKey)
	}
	if res.ImageURL != "https://cdn.test/"+res.ImageKey {
		t.Fatalf("image url = %q", res.ImageURL)
	}
	if blobs.puts[res.ImageKey] != "image/png" {
		t.Fatalf("stored content type = %q", blobs.puts[res.ImageKey])
	}
	if !strings.Contains(images.prompt, "coffee") || !strings.Contains(images.prompt, "a post") {
		t.Fatalf("image prompt = %q", images.prompt)
	}
}

func TestGenerateFullFallsBackToText(t *testing.T) {
	cases := map[string]*contentGenerator{
		"image api":  NewContentGenerator(&fakeLLM{text: "a post"}, &fakeImages{genErr: errors.New("quota")}, &fakeBlobs{}, 1).(*contentGenerator),
		"blob store": NewContentGenerator(&fakeLLM{text: "a post"}, &fakeImages{url: "u", data: pngHeader}, &fakeBlobs{fails: true}, 1).(*contentGenerator),
		"no images":  NewContentGenerator(&fakeLLM{text: "a post"}, nil, nil, 1).(*contentGenerator),
	}
	for name, g := range cases {
		res, err := g.GenerateFull(context.Background(), "coffee", testSetting(), true)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if res.Text != "a post" || res.ImageURL != "" || res.ImageKey != "" {
			t.Fatalf("%s: result = %+v, want text only", name, res)
		}
	}
}

func TestGenerateImageDefaultsToJPEG(t *testing.T) {
	blobs := &fakeBlobs{}
	g := NewContentGenerator(nil, &fakeImages{url: "u", data: []byte("not an image")}, blobs, 1)

	obj, err := g.GenerateImage(context.Background(), "coffee", "text")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(obj.Key, ".jpg") || blobs.puts[obj.Key] != "image/jpeg" {
		t.Fatalf("object %+v stored as %q", obj, blobs.puts[obj.Key])
	}
}

func TestPreview(t *testing.T) {
	setting := testSetting()
	setting.MaxPostLength = 5

	got := NewContentGenerator(&fakeLLM{text: "héllo world"}, nil, nil, 1).Preview(context.Background(), setting)
	if got != "héllo" {
		t.Fatalf("preview = %q, want first five runes", got)
	}

	fallback := NewContentGenerator(&fakeLLM{err: errors.New("down")}, nil, nil, 1).Preview(context.Background(), setting)
	want := "Sample content about coffee in a casual style with a friendly tone. This is an example of the content that will be generated."
	if fallback != want {
		t.Fatalf("fallback = %q", fallback)
	}
}

func TestEnhance(t *testing.T) {
	llm := &fakeLLM{text: "better text"}
	got, err := NewContentGenerator(llm, nil, nil, 1).Enhance(context.Background(), "plain text", testSetting())
	if err != nil {
		t.Fatal(err)
	}
	if got != "better text" {
		t.Fatalf("enhanced = %q", got)
	}
	user := llm.prompt(0, 1)
	if !strings.Contains(user, "plain text") || !strings.Contains(user, "hashtags") || strings.Contains(user, "emojis") {
		t.Fatalf("enhance prompt = %q", user)
	}

	_, err = NewContentGenerator(&fakeLLM{err: errors.New("down")}, nil, nil, 1).Enhance(context.Background(), "x", testSetting())
	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Stage != "enhance" {
		t.Fatalf("err = %v", err)
	}
}
