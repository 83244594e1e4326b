package format

import (
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"
)

func TestProgressState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		updates map[int]float64
		want    float64
	}{
		{"empty", 3, nil, 0},
		{"half and full", 2, map[int]float64{0: 0.5, 1: 1}, 0.75},
		{"clamped", 2, map[int]float64{0: 1.5, 1: -2}, 0.5},
		{"out of range ignored", 2, map[int]float64{-1: 1, 2: 1, 0: 1}, 0.5},
		{"no providers", 0, map[int]float64{0: 1}, 0},
		{"negative count", -4, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ps := NewProgressState(tt.n)
			for i, v := range tt.updates {
				ps.Update(i, v)
			}
			if got := ps.CalculateAverage(); got != tt.want {
				t.Errorf("average = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(4)
	if eta := p.GetETA(); eta != 0 {
		t.Fatalf("ETA before any progress = %v, want 0", eta)
	}

	time.Sleep(5 * time.Millisecond)
	avg, eta := p.UpdateWithETA(0, 1)
	if avg != 0.25 {
		t.Errorf("avg = %v, want 0.25", avg)
	}
	if eta <= 0 || eta > maxETA {
		t.Errorf("eta = %v, want a positive estimate under the cap", eta)
	}
	if got := p.GetETA(); got != eta {
		t.Errorf("GetETA = %v, want %v", got, eta)
	}

	for i := 1; i < 4; i++ {
		avg, eta = p.UpdateWithETA(i, 1)
	}
	if avg != 1 || eta != 0 {
		t.Errorf("finished: avg=%v eta=%v, want 1 and 0", avg, eta)
	}
}

func TestProgressWithETA_Capped(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.progressRate = 1e-6
	if got := p.GetETA(); got != maxETA {
		t.Errorf("ETA = %v, want cap %v", got, maxETA)
	}
}

func TestProgressWithETA_Concurrent(t *testing.T) {
	t.Parallel()
	const n = 16
	p := NewProgressWithETA(n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.UpdateWithETA(i, 1)
			_ = p.GetETA()
		}(i)
	}
	wg.Wait()
	if got := p.CalculateAverage(); got != 1 {
		t.Errorf("average after all updates = %v, want 1", got)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{300 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{2 * time.Minute, "2m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{3 * time.Hour, "3h"},
		{time.Hour + 15*time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.in); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		filled   int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{2, 10},
		{-1, 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.progress, 10)
		if n := utf8.RuneCountInString(bar); n != 10 {
			t.Errorf("ProgressBar(%v) has %d cells, want 10", tt.progress, n)
		}
		if n := strings.Count(bar, "█"); n != tt.filled {
			t.Errorf("ProgressBar(%v) filled %d cells, want %d", tt.progress, n, tt.filled)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0µs"},
		{42 * time.Microsecond, "42µs"},
		{180 * time.Millisecond, "180ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2 * time.Minute, "2m0s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.in); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
