// Package gemini backs the question and answer collaborators with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/aretw0/aiforms/pkg/llm"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("gemini: API key not set")

// Config selects the endpoint and model.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client is an llm.Completer over GenerateContent.
type Client struct {
	cli   *genai.Client
	model string
}

// New creates a client from cfg.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{cli: cli, model: model}, nil
}

// Name identifies the backing model.
func (c *Client) Name() string { return "gemini:" + c.model }

// Complete implements llm.Completer.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini generate content: no candidates returned")
	}
	return resp.Text(), nil
}

// Generator returns a question generator backed by this client.
func (c *Client) Generator() *llm.Generator { return llm.NewGenerator(c) }

// Parser returns an answer parser backed by this client.
func (c *Client) Parser() *llm.Parser { return llm.NewParser(c) }
