package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	defaultClaudeBaseURL = "https://api.anthropic.com"
	anthropicVersion     = "2023-06-01"
)

type ClaudeClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClaude(apiKey, baseURL string, httpClient *http.Client) *ClaudeClient {
	if baseURL == "" {
		baseURL = defaultClaudeBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ClaudeClient{apiKey: apiKey, baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *ClaudeClient) Provider() Provider { return Claude }

type claudeRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *ClaudeClient) Complete(ctx context.Context, call Call) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoCredential
	}
	s, err := settingsFor(Claude, call.Task)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(claudeRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages:  []chatMessage{{Role: "user", Content: call.Prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("claude marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("claude request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("claude error (status %d)", resp.StatusCode)
	}

	var out claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("claude decode: %w", err)
	}
	if len(out.Content) == 0 || strings.TrimSpace(out.Content[0].Text) == "" {
		return "", ErrEmptyReply
	}
	return out.Content[0].Text, nil
}
