package main

import (
	"runtime"
	"sync"
	"time"

	"github.com/farxc/dfc_dashboard/internal/logger"
)

// runStats summarises the resources an ingestion run used.
type runStats struct {
	PeakGoroutines int
	PeakHeapMB     uint64
	GCCycles       uint32
}

// runMonitor samples the runtime while a load is in progress.
type runMonitor struct {
	mu       sync.Mutex
	stats    runStats
	baseGC   uint32
	done     chan struct{}
	stopOnce sync.Once
	log      *logger.Logger
}

func newRunMonitor(log *logger.Logger) *runMonitor {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return &runMonitor{
		baseGC: ms.NumGC,
		done:   make(chan struct{}),
		log:    log,
	}
}

func (m *runMonitor) start(every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sample()
			case <-m.done:
				return
			}
		}
	}()
}

func (m *runMonitor) sample() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	goroutines := runtime.NumGoroutine()
	heapMB := ms.HeapInuse / 1024 / 1024

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.PeakGoroutines = max(m.stats.PeakGoroutines, goroutines)
	m.stats.PeakHeapMB = max(m.stats.PeakHeapMB, heapMB)
	m.stats.GCCycles = ms.NumGC - m.baseGC

	m.log.Debug("Monitor", "goroutines=%d heapMB=%d gc=%d", goroutines, heapMB, m.stats.GCCycles)
}

// stop takes a last sample and returns the peaks. Safe to call twice.
func (m *runMonitor) stop() runStats {
	m.stopOnce.Do(func() {
		close(m.done)
		m.sample()
	})
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
