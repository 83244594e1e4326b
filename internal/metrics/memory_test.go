package metrics

import (
	"runtime"
	"testing"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	runtime.GC()
	snap := NewMemoryCollector().Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
	if snap.NumGC < 1 {
		t.Error("NumGC should count the forced collection")
	}
	if snap.Goroutines < 1 {
		t.Error("Goroutines should count at least the test goroutine")
	}
}
