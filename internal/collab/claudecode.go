package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	claudecode "github.com/severity1/claude-agent-sdk-go"

	"github.com/pthm/bandlint/internal/scoring"
)

// ClaudeCodeJudge scores essays through a locally installed Claude Code CLI
type ClaudeCodeJudge struct {
	model string
}

// NewClaudeCodeJudge creates a judge using model ("sonnet" when empty)
func NewClaudeCodeJudge(model string) *ClaudeCodeJudge {
	if model == "" {
		model = "sonnet"
	}
	return &ClaudeCodeJudge{model: model}
}

// Judge asks Claude Code for a band assessment of essay
func (j *ClaudeCodeJudge) Judge(ctx context.Context, essay string, task scoring.Task) (*Assessment, error) {
	text, err := j.query(ctx, buildJudgePrompt(essay, task))
	if err != nil {
		return nil, err
	}
	return parseAssessment(text)
}

func (j *ClaudeCodeJudge) query(ctx context.Context, prompt string) (string, error) {
	iterator, err := claudecode.Query(ctx, prompt,
		claudecode.WithModel(j.model),
		claudecode.WithMaxTurns(1),
	)
	if err != nil {
		if claudecode.IsCLINotFoundError(err) {
			return "", fmt.Errorf("claude code judge: %w (Claude Code CLI not found)", ErrNotConfigured)
		}
		return "", fmt.Errorf("claude code error: %w", err)
	}
	defer iterator.Close()

	var responseBuilder strings.Builder
	for {
		message, err := iterator.Next(ctx)
		if err != nil {
			if errors.Is(err, claudecode.ErrNoMoreMessages) {
				break
			}
			return "", fmt.Errorf("error reading claude response: %w", err)
		}

		if assistantMsg, ok := message.(*claudecode.AssistantMessage); ok {
			for _, block := range assistantMsg.Content {
				if textBlock, ok := block.(*claudecode.TextBlock); ok {
					responseBuilder.WriteString(textBlock.Text)
				}
			}
		}
	}

	responseText := responseBuilder.String()
	if responseText == "" {
		return "", fmt.Errorf("empty response from claude code")
	}
	return responseText, nil
}
