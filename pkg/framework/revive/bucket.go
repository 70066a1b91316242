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

package revive

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// TokenBucket grants at most Capacity revives between refills and never
// two within MinAcquireInterval. TryAcquire never blocks.
type TokenBucket struct {
	// Guards count. Held only for arithmetic.
	sync.Mutex

	clock          clock.Clock
	capacity       int
	count          int
	refillInterval time.Duration
	spacing        *rate.Limiter
	metrics        *Metrics

	startOnce sync.Once
	stopOnce  sync.Once
	quit      chan struct{}
	done      chan struct{}
}

// NewTokenBucket returns a full bucket. Call Start to run the refill timer.
func NewTokenBucket(cfg BucketConfig, clk clock.Clock, metrics *Metrics) *TokenBucket {
	cfg = cfg.withDefaults()
	b := &TokenBucket{
		clock:          clk,
		capacity:       cfg.Capacity,
		count:          cfg.Capacity,
		refillInterval: cfg.RefillInterval,
		spacing:        rate.NewLimiter(rate.Every(cfg.MinAcquireInterval), 1),
		metrics:        metrics,
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
	}
	b.metrics.Tokens.Update(float64(b.count))
	return b
}

// Start launches the refill timer.
func (b *TokenBucket) Start() {
	b.startOnce.Do(func() {
		log.WithField("refill_interval", b.refillInterval).
			Info("Starting revive token bucket")
		go b.run()
	})
}

// Stop the refill timer. A bucket that was never started stops at once.
func (b *TokenBucket) Stop() {
	b.startOnce.Do(func() { close(b.done) })
	b.stopOnce.Do(func() {
		close(b.quit)
		<-b.done
	})
}

func (b *TokenBucket) run() {
	defer close(b.done)
	ticker := b.clock.Ticker(b.refillInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.refill()
		case <-b.quit:
			return
		}
	}
}

// refill adds one token, up to capacity.
func (b *TokenBucket) refill() {
	b.Lock()
	defer b.Unlock()
	if b.count >= b.capacity {
		return
	}
	b.count++
	b.metrics.TokensRefilled.Inc(1)
	b.metrics.Tokens.Update(float64(b.count))
}

// TryAcquire takes a token if one is left and the minimum spacing since
// the last grant elapsed.
func (b *TokenBucket) TryAcquire() bool {
	b.Lock()
	defer b.Unlock()
	if b.count == 0 {
		b.metrics.TokensDenied.Inc(1)
		return false
	}
	if !b.spacing.AllowN(b.clock.Now(), 1) {
		b.metrics.TokensDenied.Inc(1)
		return false
	}
	b.count--
	b.metrics.TokensAcquired.Inc(1)
	b.metrics.Tokens.Update(float64(b.count))
	return true
}

// Count returns the tokens left.
func (b *TokenBucket) Count() int {
	b.Lock()
	defer b.Unlock()
	return b.count
}
