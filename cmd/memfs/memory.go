package main

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// memoryMonitorInterval is the interval at which a [memoryObserver] is updated.
	memoryMonitorInterval = 100 * time.Millisecond
)

// memoryObserver tracks peak heap allocation of the process while the
// walkthrough runs.
type memoryObserver struct {
	sync.RWMutex
	maxAlloc uint64
	stopChan chan struct{}
	doneChan chan struct{}
}

// newMemoryObserver returns a pointer to a new, running [memoryObserver]. It
// needs to be stopped by e.g. deferred calling of [memoryObserver.Stop].
func newMemoryObserver(ctx context.Context) *memoryObserver {
	obs := &memoryObserver{
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	go obs.monitor(ctx)

	return obs
}

// GetMaxAlloc returns the peak recorded memory allocation size.
func (o *memoryObserver) GetMaxAlloc() uint64 {
	o.RLock()
	defer o.RUnlock()

	return o.maxAlloc
}

// Stop halts the tracking and logs the peak allocation with [slog.Debug].
func (o *memoryObserver) Stop() {
	close(o.stopChan)
	<-o.doneChan

	slog.Debug("Memory consumption peaked.",
		"maxAlloc", humanize.IBytes(o.GetMaxAlloc()),
	)
}

func (o *memoryObserver) sample() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	o.Lock()
	if m.Alloc > o.maxAlloc {
		o.maxAlloc = m.Alloc
	}
	o.Unlock()
}

func (o *memoryObserver) monitor(ctx context.Context) {
	defer close(o.doneChan)

	ticker := time.NewTicker(memoryMonitorInterval)
	defer ticker.Stop()

	o.sample()

	for {
		select {
		case <-o.stopChan:
			o.sample()

			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.sample()
		}
	}
}
