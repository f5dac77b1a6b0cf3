package collab

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pthm/bandlint/internal/scoring"
)

// DefaultAnthropicModel is used when no model override is configured
const DefaultAnthropicModel = anthropic.ModelClaude3_5Haiku20241022

// AnthropicClient judges essays and reads essay images through the
// Anthropic Messages API
type AnthropicClient struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicClient creates a client for apiKey. It returns nil when
// apiKey is empty; model falls back to DefaultAnthropicModel.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	if apiKey == "" {
		return nil
	}

	m := DefaultAnthropicModel
	if model != "" {
		m = anthropic.Model(model)
	}

	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}
}

// Judge asks the model for a band assessment of essay
func (c *AnthropicClient) Judge(ctx context.Context, essay string, task scoring.Task) (*Assessment, error) {
	if c == nil {
		return nil, fmt.Errorf("anthropic judge: %w (missing ANTHROPIC_API_KEY)", ErrNotConfigured)
	}

	text, err := c.send(ctx, 1024, anthropic.NewTextBlock(buildJudgePrompt(essay, task)))
	if err != nil {
		return nil, err
	}
	return parseAssessment(text)
}

// ExtractText transcribes the essay in image
func (c *AnthropicClient) ExtractText(ctx context.Context, image []byte, mediaType string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("anthropic extractor: %w (missing ANTHROPIC_API_KEY)", ErrNotConfigured)
	}
	if !IsSupportedImage(mediaType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mediaType)
	}

	text, err := c.send(ctx, 4096,
		anthropic.NewImageBlockBase64(mediaType, base64.StdEncoding.EncodeToString(image)),
		anthropic.NewTextBlock(extractPrompt),
	)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// send posts a single user message and returns the first text block of the
// reply
func (c *AnthropicClient) send(ctx context.Context, maxTokens int64, blocks ...anthropic.ContentBlockParamUnion) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from Claude API")
}
