// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
)

// RuntimeCollector periodically reports go runtime gauges.
type RuntimeCollector struct {
	clock    clock.Clock
	interval time.Duration

	numGoRoutines   tally.Gauge
	goMaxProcs      tally.Gauge
	memoryAllocated tally.Gauge
	memoryHeapInuse tally.Gauge
	numGC           tally.Counter
	lastNumGC       uint32

	once sync.Once
	quit chan struct{}
	done chan struct{}
}

// NewRuntimeCollector creates a new RuntimeCollector.
func NewRuntimeCollector(
	scope tally.Scope,
	clk clock.Clock,
	interval time.Duration,
) *RuntimeCollector {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	scope = scope.SubScope("runtime")
	var memstats runtime.MemStats
	runtime.ReadMemStats(&memstats)
	return &RuntimeCollector{
		clock:           clk,
		interval:        interval,
		numGoRoutines:   scope.Gauge("num_goroutines"),
		goMaxProcs:      scope.Gauge("gomaxprocs"),
		memoryAllocated: scope.Gauge("memory_allocated"),
		memoryHeapInuse: scope.Gauge("memory_heapinuse"),
		numGC:           scope.Counter("memory_num_gc"),
		lastNumGC:       memstats.NumGC,
		quit:            make(chan struct{}),
		done:            make(chan struct{}),
	}
}

// Start launches the collection goroutine.
func (r *RuntimeCollector) Start() {
	log.Info("Starting runtime metrics collector")
	go func() {
		defer close(r.done)
		ticker := r.clock.Ticker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.generate()
			case <-r.quit:
				return
			}
		}
	}()
}

// Stop stops the collector and waits for the goroutine to exit. It cannot
// be started again.
func (r *RuntimeCollector) Stop() {
	r.once.Do(func() {
		close(r.quit)
		<-r.done
	})
}

func (r *RuntimeCollector) generate() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	r.numGoRoutines.Update(float64(runtime.NumGoroutine()))
	r.goMaxProcs.Update(float64(runtime.GOMAXPROCS(0)))
	r.memoryAllocated.Update(float64(memStats.Alloc))
	r.memoryHeapInuse.Update(float64(memStats.HeapInuse))

	// NumGC only grows, unless it wraps at 2^32.
	if delta := memStats.NumGC - r.lastNumGC; delta > 0 {
		r.numGC.Inc(int64(delta))
	}
	r.lastNumGC = memStats.NumGC
}
