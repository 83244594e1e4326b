package sysmon

import (
	"context"
	"testing"
	"time"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample(context.Background())
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.SampledAt.IsZero() {
		t.Error("SampledAt should be set")
	}
}

func TestSample_MemPercentNonZero(t *testing.T) {
	s := Sample(context.Background())
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
}

func TestMonitor_Run(t *testing.T) {
	m := NewMonitor(10 * time.Millisecond)
	if !m.Latest().SampledAt.IsZero() {
		t.Fatal("Latest should be zero before Run")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for m.Latest().SampledAt.IsZero() {
		select {
		case <-deadline:
			t.Fatal("monitor produced no sample")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
