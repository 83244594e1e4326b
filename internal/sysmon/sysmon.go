// Package sysmon samples system-wide CPU and memory usage for the health
// endpoint and the dashboard footer.
package sysmon

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64   `json:"cpu_percent"` // 0.0 .. 100.0
	MemPercent float64   `json:"mem_percent"` // 0.0 .. 100.0
	Load1      float64   `json:"load1"`
	SampledAt  time.Time `json:"sampled_at"`
}

// Sample collects a single system-wide snapshot. CPU uses interval=0
// (delta since the previous call). Fields that cannot be read stay zero.
func Sample(ctx context.Context) Stats {
	s := Stats{SampledAt: time.Now()}
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	return s
}

// Monitor samples periodically and keeps the latest reading.
type Monitor struct {
	interval time.Duration

	mu     sync.RWMutex
	latest Stats
}

// NewMonitor creates a monitor sampling every interval.
func NewMonitor(interval time.Duration) *Monitor {
	return &Monitor{interval: interval}
}

// Run samples until ctx is canceled. The first sample is taken immediately.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		s := Sample(ctx)
		m.mu.Lock()
		m.latest = s
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Latest returns the most recent sample, or the zero Stats before the
// first one.
func (m *Monitor) Latest() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
