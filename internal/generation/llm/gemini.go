package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client *genai.Client
}

// NewGemini builds a Gemini API client. baseURL may be empty for the public endpoint.
func NewGemini(ctx context.Context, apiKey, baseURL string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoCredential
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiClient{client: c}, nil
}

func (c *GeminiClient) Provider() Provider { return Gemini }

func (c *GeminiClient) Complete(ctx context.Context, call Call) (string, error) {
	s, err := settingsFor(Gemini, call.Task)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Models.GenerateContent(ctx, s.model, genai.Text(call.Prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
