// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package watchdog polls this process's resident memory and disables
// caching once it crosses a configured limit, the same tradeoff
// system_utils.cc's getRAMUsedByThis/monitorRAMUsage make: caching is
// cheap until the process is close to paging, at which point it is
// cheaper to recompute than to be killed by the OOM killer.
package watchdog

import (
	"context"
	"time"

	"github.com/prost-go/prost/log"
)

// MemoryReader reports this process's current resident memory, in
// kilobytes. ProcReader is the production implementation; tests supply
// a fake.
type MemoryReader interface {
	ResidentKB() (int, error)
}

// Caching is the single collaborator a Watchdog needs: task.Task
// satisfies it via DisableCaching.
type Caching interface {
	DisableCaching()
}

// Watchdog polls a MemoryReader on an interval and calls
// Caching.DisableCaching the first time resident memory crosses
// limitKB (the -ram flag, §6 SUPPLEMENTED FEATURES). It never
// re-enables caching: once disabled, a task stays that way for the
// rest of the run, matching the original's one-way disableCaching.
type Watchdog struct {
	reader   MemoryReader
	target   Caching
	limitKB  int
	interval time.Duration
	logger   log.Logger

	tripped bool
}

// New builds a Watchdog. limitKB <= 0 disables monitoring: Run returns
// immediately without polling.
func New(reader MemoryReader, target Caching, limitKB int, interval time.Duration, logger log.Logger) *Watchdog {
	if logger == nil {
		logger = log.NoOp()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Watchdog{reader: reader, target: target, limitKB: limitKB, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled or the limit trips, in which case it
// disables caching once and keeps polling (a second crossing is a
// no-op) until ctx is cancelled. Run is meant to be launched in its own
// goroutine by the caller.
func (w *Watchdog) Run(ctx context.Context) {
	if w.limitKB <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watchdog) poll() {
	used, err := w.reader.ResidentKB()
	if err != nil {
		w.logger.Warn("watchdog: reading resident memory failed", "error", err)
		return
	}
	if w.tripped || used < w.limitKB {
		return
	}
	w.tripped = true
	w.logger.Info("watchdog: RAM limit crossed, disabling caching",
		"usedKB", used, "limitKB", w.limitKB)
	w.target.DisableCaching()
}
