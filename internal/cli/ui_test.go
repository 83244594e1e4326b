package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/ui"
)

// MockSpinner for testing
type MockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffixes = append(m.suffixes, suffix)
}

func useMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	original := newSpinner
	t.Cleanup(func() { newSpinner = original })
	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}
	return mockS
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	mockS := useMockSpinner(t)

	var wg sync.WaitGroup
	wg.Add(1)
	updates := make(chan orchestration.CompletionUpdate)
	var buf bytes.Buffer

	go func() {
		updates <- orchestration.CompletionUpdate{ProviderIndex: 1, Name: "SymPy", Outcome: answer.Success}
		updates <- orchestration.CompletionUpdate{ProviderIndex: 0, Name: "Google AI", Outcome: answer.Failure}
		close(updates)
	}()

	DisplayProgress(&wg, updates, 2, &buf)
	wg.Wait()

	if !mockS.started || !mockS.stopped {
		t.Error("spinner should have started and stopped")
	}
	last := mockS.suffixes[len(mockS.suffixes)-1]
	if !strings.Contains(last, "2/2") || !strings.Contains(last, "Google AI: failure") {
		t.Errorf("unexpected final suffix %q", last)
	}
	if !strings.Contains(buf.String(), "2/2 providers finished, 1 answered.") {
		t.Errorf("unexpected summary %q", buf.String())
	}
}

func TestDisplayProgress_ZeroProviders(t *testing.T) {
	mockS := useMockSpinner(t)

	var wg sync.WaitGroup
	wg.Add(1)
	updates := make(chan orchestration.CompletionUpdate)
	close(updates)

	DisplayProgress(&wg, updates, 0, io.Discard)
	wg.Wait()
	if mockS.started {
		t.Error("spinner should not start without providers")
	}
}

func TestProgressSuffix(t *testing.T) {
	t.Parallel()
	s := progressSuffix(0, 5, 0, 0, "", answer.Absent)
	if !strings.Contains(s, "0/5") || strings.Contains(s, "(") || strings.Contains(s, "ETA") {
		t.Errorf("initial suffix %q", s)
	}
	s = progressSuffix(3, 5, 0.6, 2*time.Second, "Wolfram Alpha", answer.Absent)
	if !strings.Contains(s, "(Wolfram Alpha: absent)") {
		t.Errorf("suffix %q should name the last provider", s)
	}
	if !strings.Contains(s, "ETA 2s") {
		t.Errorf("suffix %q should carry the estimate", s)
	}
	if s = progressSuffix(5, 5, 1, 0, "SymPy", answer.Success); strings.Contains(s, "ETA") {
		t.Errorf("finished suffix %q should drop the estimate", s)
	}
}
