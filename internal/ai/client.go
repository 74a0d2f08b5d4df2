package ai

import (
	"context"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/sashabaranov/go-openai"
	"time"
)

// Completer is the text-generation collaborator. Implementations may fail or return
// arbitrarily shaped text; callers must parse defensively.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const MaxTokens = 4096

var ErrEmptyCompletion = errors.NewSentinel("completion has no choices")

// Client is a Completer backed by the OpenAI chat completion API.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates an OpenAI-backed Completer. The timeout bounds every completion call
// so a stalled generation degrades into the caller's fallback instead of hanging the game.
func NewClient(apiKey string, model string, timeout time.Duration) *Client {
	if model == "" {
		model = openai.GPT4TurboPreview
	}
	return &Client{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return completion.Choices[0].Message.Content, nil
}
