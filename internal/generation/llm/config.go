package llm

import (
	"context"
	"net/http"

	"github.com/dev-genie/dev-genie-backend/config"
)

// FromConfig builds adapters for every provider that has a credential.
func FromConfig(ctx context.Context, cfg config.LLMConfig) ([]Adapter, error) {
	httpClient := &http.Client{}

	var out []Adapter
	if cfg.OpenAIKey != "" {
		out = append(out, NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBaseURL, httpClient))
	}
	if cfg.ClaudeKey != "" {
		out = append(out, NewClaude(cfg.ClaudeKey, cfg.ClaudeBaseURL, httpClient))
	}
	if cfg.GeminiKey != "" {
		g, err := NewGemini(ctx, cfg.GeminiKey, cfg.GeminiBaseURL)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
