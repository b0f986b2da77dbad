package ai

import (
	"log/slog"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewChatModel builds the OpenAI-compatible chat client used for text generation.
func NewChatModel(cfg config.LLM) (*openai.LLM, error) {
	llm, err := openai.New(
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		slog.Error("llm client init failed", "err", err)
		return nil, err
	}
	return llm, nil
}
