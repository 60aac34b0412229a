// Package openai backs the question and answer collaborators with the OpenAI
// chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/aretw0/aiforms/pkg/llm"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = openai.ChatModelGPT4oMini

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("openai: API key not set")

// Config selects the endpoint and model.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// MaxRetries overrides the client's retry count when positive.
	MaxRetries int
}

// Client is an llm.Completer over chat completions.
type Client struct {
	client openai.Client
	model  openai.ChatModel
}

// New creates a client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}

	model := openai.ChatModel(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: openai.NewClient(opts...), model: model}, nil
}

// Complete implements llm.Completer.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Generator returns a question generator backed by this client.
func (c *Client) Generator() *llm.Generator { return llm.NewGenerator(c) }

// Parser returns an answer parser backed by this client.
func (c *Client) Parser() *llm.Parser { return llm.NewParser(c) }
