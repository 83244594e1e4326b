package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/mathsolve/internal/provider"
)

// mockProvider simulates various provider behaviors for deadlock testing.
type mockProvider struct {
	name     string
	behavior string // "instant", "slow", "error", "hang", "panic"
	delay    time.Duration
}

func (m *mockProvider) Solve(ctx context.Context, query string) (string, error) {
	switch m.behavior {
	case "instant":
		return "answer from " + m.name, nil
	case "slow":
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.delay):
			return "slow answer", nil
		}
	case "error":
		return "", fmt.Errorf("simulated error")
	case "hang":
		// Ignores ctx entirely.
		time.Sleep(m.delay)
		return "too late", nil
	case "panic":
		panic("simulated panic")
	}
	return "", nil
}

func (m *mockProvider) Name() string { return m.name }

// slowProgressReporter drains the channel slowly to exercise buffering.
type slowProgressReporter struct{}

func (slowProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan CompletionUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range updates {
		time.Sleep(5 * time.Millisecond)
	}
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that Execute
// completes without deadlocking under various provider behavior
// combinations.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name      string
		providers []provider.Provider
	}{
		{
			name: "all_instant",
			providers: []provider.Provider{
				&mockProvider{name: "p1", behavior: "instant"},
				&mockProvider{name: "p2", behavior: "instant"},
				&mockProvider{name: "p3", behavior: "instant"},
			},
		},
		{
			name: "mixed_instant_and_slow",
			providers: []provider.Provider{
				&mockProvider{name: "fast", behavior: "instant"},
				&mockProvider{name: "slow", behavior: "slow", delay: 20 * time.Millisecond},
			},
		},
		{
			name: "mixed_with_errors_and_panics",
			providers: []provider.Provider{
				&mockProvider{name: "ok", behavior: "instant"},
				&mockProvider{name: "err", behavior: "error"},
				&mockProvider{name: "boom", behavior: "panic"},
			},
		},
		{
			name: "hanging_provider",
			providers: []provider.Provider{
				&mockProvider{name: "ok", behavior: "instant"},
				&mockProvider{name: "hang", behavior: "hang", delay: 5 * time.Second},
			},
		},
		{
			name: "single_provider",
			providers: []provider.Provider{
				&mockProvider{name: "solo", behavior: "instant"},
			},
		},
		{
			name:      "no_providers",
			providers: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				NewCoordinator(200*time.Millisecond).Execute(ctx, "1+1", tc.providers, slowProgressReporter{}, io.Discard)
			}()

			select {
			case <-done:
				// Success - no deadlock
			case <-time.After(5 * time.Second):
				t.Fatal("DEADLOCK: Execute did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	providers := []provider.Provider{
		&mockProvider{name: "slow1", behavior: "slow", delay: 10 * time.Second},
		&mockProvider{name: "slow2", behavior: "slow", delay: 10 * time.Second},
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ExecuteProviders(ctx, "1+1", providers, time.Minute, NullProgressReporter{}, io.Discard)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// Success
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}
