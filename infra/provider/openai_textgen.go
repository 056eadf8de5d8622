package provider

import (
	"context"
	"errors"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/provider"
)

// ErrTextGenDisabled is returned when no API key is configured.
var ErrTextGenDisabled = errors.New("text generation disabled: no api key")

// OpenAITextGenerator implements provider.TextGenerator with the
// OpenAI chat completion API. Callers treat any error as a cue to use
// their static fallback copy.
type OpenAITextGenerator struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAITextGenerator creates an OpenAI-backed text generator.
func NewOpenAITextGenerator(cfg *config.OpenAI, logger *slog.Logger) *OpenAITextGenerator {
	g := &OpenAITextGenerator{model: cfg.Model, logger: logger}
	if cfg.ApiKey != "" {
		g.client = openai.NewClient(cfg.ApiKey)
	}
	return g
}

// GenerateInsight implements provider.TextGenerator.
func (g *OpenAITextGenerator) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrTextGenDisabled
	}
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write one short, friendly sentence about a user's auction recommendations. Reply in English.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: 80,
	})
	if err != nil {
		g.logger.Warn("insight generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ provider.TextGenerator = (*OpenAITextGenerator)(nil)
