package llm

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/metrics"
)

const DefaultTimeout = 45 * time.Second

// Coordinator fans one call out to several adapters and keeps the successes.
type Coordinator struct {
	adapters []Adapter
	timeout  time.Duration
}

func NewCoordinator(adapters []Adapter, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{adapters: adapters, timeout: timeout}
}

// Available lists the providers that have an adapter, in registration order.
func (c *Coordinator) Available() []Provider {
	out := make([]Provider, 0, len(c.adapters))
	for _, a := range c.adapters {
		out = append(out, a.Provider())
	}
	return out
}

func (c *Coordinator) selected(selection []Provider) []Adapter {
	if len(selection) == 0 {
		return c.adapters
	}
	want := make(map[Provider]bool, len(selection))
	for _, p := range selection {
		want[p] = true
	}
	var out []Adapter
	for _, a := range c.adapters {
		if want[a.Provider()] {
			out = append(out, a)
		}
	}
	return out
}

// Generate invokes every selected adapter concurrently, each bounded by the
// coordinator timeout, and returns successful replies in completion order.
// An empty selection means every adapter. Failures are logged and dropped.
func (c *Coordinator) Generate(ctx context.Context, call Call, selection []Provider) []Reply {
	adapters := c.selected(selection)
	if len(adapters) == 0 {
		return nil
	}

	log := logger.NewLogger(ctx).With("task", string(call.Task))

	var (
		mu      sync.Mutex
		replies = make([]Reply, 0, len(adapters))
	)

	var g errgroup.Group
	for _, a := range adapters {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			start := time.Now()
			text, err := a.Complete(callCtx, call)
			metrics.RecordProviderCall(string(a.Provider()), string(call.Task), time.Since(start), err)
			if err != nil {
				log.With("provider", string(a.Provider())).LogWarn("llm.generate", err)
				return nil
			}

			mu.Lock()
			replies = append(replies, Reply{Source: a.Provider(), Text: text})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	log.LogInfof("llm.generate", "%d of %d providers replied", len(replies), len(adapters))
	return replies
}
