package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/sync/semaphore"
)

const imagePromptTextLimit = 200

// TextModel is the part of a langchaingo model the generator needs.
type TextModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

type GeneratedResult struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	ImageKey string `json:"image_key,omitempty"`
}

type ContentGenerator interface {
	GenerateText(ctx context.Context, topic string, setting *models.ContentSetting) (string, error)
	GenerateImage(ctx context.Context, topic, text string) (*storage.Object, error)
	GenerateFull(ctx context.Context, topic string, setting *models.ContentSetting, withImage bool) (*GeneratedResult, error)
	Enhance(ctx context.Context, content string, setting *models.ContentSetting) (string, error)
	Preview(ctx context.Context, setting *models.ContentSetting) string
}

type contentGenerator struct {
	llm    TextModel
	images ImageGenerator
	store  storage.BlobStore
	sem    *semaphore.Weighted
	now    func() time.Time
}

func NewContentGenerator(llm TextModel, images ImageGenerator, store storage.BlobStore, maxConcurrent int64) ContentGenerator {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &contentGenerator{
		llm:    llm,
		images: images,
		store:  store,
		sem:    semaphore.NewWeighted(maxConcurrent),
		now:    time.Now,
	}
}

func settingPrompt(setting *models.ContentSetting) string {
	var b strings.Builder
	b.WriteString("You are an expert at writing engaging social media content.\n")
	fmt.Fprintf(&b, "Style: %s\n", setting.ContentStyle)
	fmt.Fprintf(&b, "Tone: %s\n", setting.Tone)
	fmt.Fprintf(&b, "Language: %s\n", setting.Language)
	if setting.IncludeHashtags {
		b.WriteString("Include relevant hashtags.\n")
	} else {
		b.WriteString("Do not include hashtags.\n")
	}
	if setting.IncludeEmojis {
		b.WriteString("Suitable emojis may be used.\n")
	} else {
		b.WriteString("Do not use emojis.\n")
	}
	if setting.MaxPostLength > 0 {
		fmt.Fprintf(&b, "Maximum length: %d characters\n", setting.MaxPostLength)
	}
	return b.String()
}

func (g *contentGenerator) complete(ctx context.Context, system, user string) (string, error) {
	if g.llm == nil {
		return "", errors.New("no language model configured")
	}
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer g.sem.Release(1)

	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		{Role: schema.ChatMessageTypeSystem, Parts: []llms.ContentPart{llms.TextPart(system)}},
		{Role: schema.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextPart(user)}},
	}, llms.WithTemperature(0.8))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", errors.New("language model returned no text")
	}
	return resp.Choices[0].Content, nil
}

func (g *contentGenerator) GenerateText(ctx context.Context, topic string, setting *models.ContentSetting) (string, error) {
	user := fmt.Sprintf("Create unique, engaging content about the following topic: %s\n"+
		"The content must suit social media platforms and encourage interaction.", topic)

	text, err := g.complete(ctx, settingPrompt(setting), user)
	if err != nil {
		slog.Error("text generation failed", "topic", topic, "err", err)
		return "", &GenerationError{Stage: "text", Err: err}
	}
	return text, nil
}

func imagePrompt(topic, text string) string {
	r := []rune(text)
	if len(r) > imagePromptTextLimit {
		r = r[:imagePromptTextLimit]
	}
	return fmt.Sprintf("Create a professional, eye-catching image for the following topic: %s\n"+
		"Content: %s\nThe image must be suitable for posting on social media.", topic, string(r))
}

func (g *contentGenerator) GenerateImage(ctx context.Context, topic, text string) (*storage.Object, error) {
	if g.images == nil || g.store == nil {
		return nil, &GenerationError{Stage: "image", Err: errors.New("image generation not configured")}
	}

	url, err := g.images.Generate(ctx, imagePrompt(topic, text))
	if err != nil {
		return nil, &GenerationError{Stage: "image", Err: err}
	}

	data, err := g.images.Download(ctx, url)
	if err != nil {
		return nil, &GenerationError{Stage: "image", Err: err}
	}

	contentType, ext := "image/jpeg", "jpg"
	if kind, err := filetype.Match(data); err == nil && filetype.IsImage(data) {
		contentType, ext = kind.MIME.Value, kind.Extension
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, &GenerationError{Stage: "image", Err: err}
	}
	key := fmt.Sprintf("generated-images/%d-%s.%s", g.now().UnixMilli(), id, ext)

	obj, err := g.store.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, &GenerationError{Stage: "image", Err: err}
	}
	return obj, nil
}

// GenerateFull always needs text. The image is best effort: on failure the
// result is text only.
func (g *contentGenerator) GenerateFull(ctx context.Context, topic string, setting *models.ContentSetting, withImage bool) (*GeneratedResult, error) {
	text, err := g.GenerateText(ctx, topic, setting)
	if err != nil {
		return nil, err
	}

	result := &GeneratedResult{Text: text}
	if !withImage {
		return result, nil
	}

	obj, err := g.GenerateImage(ctx, topic, text)
	if err != nil {
		slog.Warn("image generation failed, continuing with text only", "topic", topic, "err", err)
		return result, nil
	}
	result.ImageURL = obj.URL
	result.ImageKey = obj.Key
	return result, nil
}

func (g *contentGenerator) Enhance(ctx context.Context, content string, setting *models.ContentSetting) (string, error) {
	system := fmt.Sprintf("You are an editor specialised in social media content.\nStyle: %s\nTone: %s\n",
		setting.ContentStyle, setting.Tone)

	var user strings.Builder
	fmt.Fprintf(&user, "Improve the following content so it is more engaging:\n%s\n\n", content)
	user.WriteString("Make sure to:\n- keep the core meaning\n- add engaging elements\n")
	if setting.IncludeHashtags {
		user.WriteString("- add relevant hashtags\n")
	}
	if setting.IncludeEmojis {
		user.WriteString("- use suitable emojis\n")
	}

	text, err := g.complete(ctx, system, user.String())
	if err != nil {
		slog.Error("content enhancement failed", "err", err)
		return "", &GenerationError{Stage: "enhance", Err: err}
	}
	return text, nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Preview never fails; a canned sentence stands in when generation does.
func (g *contentGenerator) Preview(ctx context.Context, setting *models.ContentSetting) string {
	text, err := g.GenerateText(ctx, setting.Topic, setting)
	if err != nil {
		return fmt.Sprintf("Sample content about %s in a %s style with a %s tone. This is an example of the content that will be generated.",
			setting.Topic, setting.ContentStyle, setting.Tone)
	}
	return truncateRunes(text, setting.MaxPostLength)
}
