package llm

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-genie/dev-genie-backend/config"
)

type fakeAdapter struct {
	provider Provider
	text     string
	err      error
	delay    time.Duration
	calls    atomic.Int32
}

func (f *fakeAdapter) Provider() Provider { return f.provider }

func (f *fakeAdapter) Complete(ctx context.Context, _ Call) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func sources(replies []Reply) []string {
	out := make([]string, 0, len(replies))
	for _, r := range replies {
		out = append(out, string(r.Source))
	}
	sort.Strings(out)
	return out
}

func TestCoordinator_KeepsOnlySuccesses(t *testing.T) {
	c := NewCoordinator([]Adapter{
		&fakeAdapter{provider: OpenAI, text: "a"},
		&fakeAdapter{provider: Claude, err: errors.New("boom")},
		&fakeAdapter{provider: Gemini, text: "g"},
	}, time.Second)

	replies := c.Generate(context.Background(), Call{Task: TaskProjects, Prompt: "p"}, nil)
	assert.Equal(t, []string{"gemini", "openai"}, sources(replies))
}

func TestCoordinator_RespectsSelection(t *testing.T) {
	oa := &fakeAdapter{provider: OpenAI, text: "a"}
	gm := &fakeAdapter{provider: Gemini, text: "g"}
	c := NewCoordinator([]Adapter{oa, gm}, time.Second)

	replies := c.Generate(context.Background(), Call{Task: TaskProjects}, []Provider{Gemini, Claude})
	require.Len(t, replies, 1)
	assert.Equal(t, Gemini, replies[0].Source)
	assert.Equal(t, int32(0), oa.calls.Load())
}

func TestCoordinator_TimeoutIsPerCall(t *testing.T) {
	c := NewCoordinator([]Adapter{
		&fakeAdapter{provider: OpenAI, text: "slow", delay: 2 * time.Second},
		&fakeAdapter{provider: Claude, text: "fast"},
	}, 50*time.Millisecond)

	start := time.Now()
	replies := c.Generate(context.Background(), Call{Task: TaskDetails}, nil)
	assert.Less(t, time.Since(start), time.Second)
	require.Len(t, replies, 1)
	assert.Equal(t, "fast", replies[0].Text)
}

func TestCoordinator_ZeroAdapters(t *testing.T) {
	c := NewCoordinator(nil, 0)
	assert.Empty(t, c.Generate(context.Background(), Call{Task: TaskProjects}, nil))
	assert.Empty(t, c.Available())
}

func TestCoordinator_CompletionOrder(t *testing.T) {
	c := NewCoordinator([]Adapter{
		&fakeAdapter{provider: OpenAI, text: "second", delay: 80 * time.Millisecond},
		&fakeAdapter{provider: Claude, text: "first"},
	}, time.Second)

	replies := c.Generate(context.Background(), Call{Task: TaskProjects}, nil)
	require.Len(t, replies, 2)
	assert.Equal(t, "first", replies[0].Text)
	assert.Equal(t, "second", replies[1].Text)
}

func TestFromConfig_OnlyConfiguredProviders(t *testing.T) {
	adapters, err := FromConfig(context.Background(), config.LLMConfig{OpenAIKey: "a", ClaudeKey: ""})
	require.NoError(t, err)
	require.Len(t, adapters, 1)
	assert.Equal(t, OpenAI, adapters[0].Provider())

	adapters, err = FromConfig(context.Background(), config.LLMConfig{})
	require.NoError(t, err)
	assert.Empty(t, adapters)
}
