// Package llm holds the provider adapters and the fan-out coordinator.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Provider string

const (
	OpenAI Provider = "openai"
	Claude Provider = "claude"
	Gemini Provider = "gemini"
)

// Providers is the canonical provider order.
var Providers = []Provider{OpenAI, Claude, Gemini}

// DisplayName is the label used in combined documents.
func (p Provider) DisplayName() string {
	switch p {
	case OpenAI:
		return "OpenAI"
	case Claude:
		return "Claude"
	case Gemini:
		return "Gemini"
	default:
		return string(p)
	}
}

type Task string

const (
	TaskProjects      Task = "projects"
	TaskDetails       Task = "details"
	TaskDocumentation Task = "documentation"
	TaskResources     Task = "resources"
)

type Call struct {
	Task   Task
	Prompt string
}

// Reply is one successful provider response.
type Reply struct {
	Source Provider
	Text   string
}

// Adapter performs one completion call against a single provider.
// Any failure is reported as an error; the caller treats all errors alike.
type Adapter interface {
	Provider() Provider
	Complete(ctx context.Context, call Call) (string, error)
}

var (
	ErrNoCredential    = errors.New("provider credential not configured")
	ErrEmptyReply      = errors.New("provider returned empty reply")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrUnknownTask     = errors.New("unknown task")
)

// ParseProviders validates a user-supplied provider selection. Duplicates are dropped.
func ParseProviders(names []string) ([]Provider, error) {
	var out []Provider
	seen := make(map[Provider]bool, len(names))
	for _, n := range names {
		p := Provider(strings.ToLower(strings.TrimSpace(n)))
		if p == "" {
			continue
		}
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, n)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func (p Provider) Valid() bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

type settings struct {
	model       string
	temperature float64
	maxTokens   int
}

const claudeModel = "claude-3-sonnet-20240229"

var settingsTable = map[Provider]map[Task]settings{
	OpenAI: {
		TaskProjects:      {model: "gpt-4o-mini", temperature: 0.8},
		TaskDetails:       {model: "gpt-4o-mini", temperature: 0.7},
		TaskDocumentation: {model: "gpt-4o", temperature: 0.3},
		TaskResources:     {model: "gpt-4o", temperature: 0.3},
	},
	Claude: {
		TaskProjects:      {model: claudeModel, maxTokens: 1000},
		TaskDetails:       {model: claudeModel, maxTokens: 2000},
		TaskDocumentation: {model: claudeModel, maxTokens: 4000},
		TaskResources:     {model: claudeModel, maxTokens: 3000},
	},
	Gemini: {
		TaskProjects:      {model: "gemini-1.5-flash-latest"},
		TaskDetails:       {model: "gemini-1.5-flash-latest"},
		TaskDocumentation: {model: "gemini-1.5-pro-latest"},
		TaskResources:     {model: "gemini-1.5-flash-latest"},
	},
}

func settingsFor(p Provider, t Task) (settings, error) {
	s, ok := settingsTable[p][t]
	if !ok {
		return settings{}, fmt.Errorf("%w: %s/%s", ErrUnknownTask, p, t)
	}
	return s, nil
}
