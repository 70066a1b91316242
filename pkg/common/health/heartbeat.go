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

package health

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
)

const _defaultHeartbeatInterval = 10 * time.Second

// Config is the heartbeat configuration.
type Config struct {
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
}

// Metrics emitted by the heartbeat.
type Metrics struct {
	Init      tally.Counter
	Heartbeat tally.Gauge
	Ready     tally.Gauge
}

// NewMetrics returns a new instance of Metrics.
func NewMetrics(scope tally.Scope) *Metrics {
	return &Metrics{
		Init:      scope.Counter("init"),
		Heartbeat: scope.Gauge("heartbeat"),
		Ready:     scope.Gauge("ready"),
	}
}

// ReadyFunc reports whether the process serves traffic.
type ReadyFunc func() bool

// Heartbeat periodically emits a liveness gauge, and a readiness gauge
// while ready reports true.
type Heartbeat struct {
	sync.Mutex

	clock    clock.Clock
	interval time.Duration
	ready    ReadyFunc
	metrics  *Metrics

	stopChan chan struct{}
	done     chan struct{}
}

// NewHeartbeat creates a stopped heartbeat. ready may be nil.
func NewHeartbeat(parent tally.Scope, cfg Config, clk clock.Clock, ready ReadyFunc) *Heartbeat {
	interval := cfg.HeartbeatInterval
	if interval <= 0 {
		interval = _defaultHeartbeatInterval
	}
	m := NewMetrics(parent.SubScope("health"))
	m.Init.Inc(1)
	return &Heartbeat{
		clock:    clk,
		interval: interval,
		ready:    ready,
		metrics:  m,
	}
}

// Start emitting. Starting a running heartbeat is a no-op.
func (h *Heartbeat) Start() {
	h.Lock()
	defer h.Unlock()
	if h.stopChan != nil {
		log.Warn("Heartbeat is already running, no-op.")
		return
	}
	h.stopChan = make(chan struct{})
	h.done = make(chan struct{})
	ticker := h.clock.Ticker(h.interval)
	go h.run(ticker, h.stopChan, h.done)
	log.Info("Heartbeat started.")
}

func (h *Heartbeat) run(ticker *clock.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case t := <-ticker.C:
			log.WithField("tick", t).Debug("Emitting heartbeat.")
			h.metrics.Heartbeat.Update(1)
			if h.ready != nil && h.ready() {
				h.metrics.Ready.Update(1)
			} else {
				h.metrics.Ready.Update(0)
			}
		}
	}
}

// Stop emitting and wait for the goroutine to exit.
func (h *Heartbeat) Stop() {
	h.Lock()
	if h.stopChan == nil {
		h.Unlock()
		log.Warn("Heartbeat is not running, no-op.")
		return
	}
	close(h.stopChan)
	done := h.done
	h.stopChan = nil
	h.Unlock()
	<-done
	log.Info("Heartbeat stopped.")
}
