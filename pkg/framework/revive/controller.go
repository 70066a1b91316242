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
	"context"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"
)

// OfferCaller asks the master to revive or suppress offers.
type OfferCaller interface {
	ReviveOffers(ctx context.Context) error
	SuppressOffers(ctx context.Context) error
}

// Controller decides once per processing tick whether to revive offers.
// Offers declined for a long time only come back after a revive, so one is
// requested whenever new work shows up, subject to the token bucket.
type Controller struct {
	caller   OfferCaller
	tracker  *WorkSnapshotTracker
	bucket   *TokenBucket
	metrics  *Metrics
	suppress bool

	suppressed atomic.Bool
}

// NewController creates a Controller. The token bucket refill timer runs
// between Start and Stop.
func NewController(
	caller OfferCaller,
	clk clock.Clock,
	cfg Config,
	parent tally.Scope,
) *Controller {
	metrics := NewMetrics(parent.SubScope("revive"))
	return &Controller{
		caller:   caller,
		tracker:  NewWorkSnapshotTracker(),
		bucket:   NewTokenBucket(cfg.Bucket, clk, metrics),
		metrics:  metrics,
		suppress: !cfg.DisableSuppression,
	}
}

// Start the token bucket refill timer.
func (c *Controller) Start() {
	c.bucket.Start()
}

// Stop the token bucket refill timer.
func (c *Controller) Stop() {
	c.bucket.Stop()
}

// Tick compares the pending work against the previous tick and revives if
// anything new appeared. A throttled or failed revive leaves the previous
// snapshot in place, so work that is still pending is retried next tick.
// It returns whether a revive was sent.
func (c *Controller) Tick(ctx context.Context, items []WorkItem) bool {
	c.metrics.PendingWork.Update(float64(len(items)))

	newItems := c.tracker.UpdateWorkSet(items)
	if !c.tracker.HasNewWork() {
		if len(items) == 0 && c.suppress {
			c.Suppress(ctx)
		}
		return false
	}
	c.metrics.NewWorkItems.Inc(int64(len(newItems)))

	if !c.bucket.TryAcquire() {
		c.tracker.Rollback()
		c.metrics.ReviveThrottle.Inc(1)
		log.WithField("new_work", newItems).
			Info("New work found but revive is throttled")
		return false
	}

	log.WithField("new_work", newItems).Info("Reviving offers for new work")
	if err := c.revive(ctx); err != nil {
		c.tracker.Rollback()
		return false
	}
	return true
}

// Revive offers unconditionally, e.g. after (re)registration.
func (c *Controller) Revive(ctx context.Context) error {
	log.Info("Reviving offers")
	return c.revive(ctx)
}

func (c *Controller) revive(ctx context.Context) error {
	if err := c.caller.ReviveOffers(ctx); err != nil {
		c.metrics.ReviveFail.Inc(1)
		log.WithError(err).Warn("Failed to revive offers")
		return err
	}
	c.suppressed.Store(false)
	c.metrics.Revive.Inc(1)
	return nil
}

// Suppress offers until the next revive. Repeated calls while suppressed
// are no-ops. Known work is forgotten, so any work still pending on a later
// tick triggers a revive.
func (c *Controller) Suppress(ctx context.Context) {
	if c.suppressed.Load() {
		return
	}
	if err := c.caller.SuppressOffers(ctx); err != nil {
		c.metrics.SuppressFail.Inc(1)
		log.WithError(err).Warn("Failed to suppress offers")
		return
	}
	c.suppressed.Store(true)
	c.tracker.Reset()
	c.metrics.Suppress.Inc(1)
	log.Info("Suppressed offers, no pending work")
}

// IsSuppressed returns whether offers are currently suppressed.
func (c *Controller) IsSuppressed() bool {
	return c.suppressed.Load()
}
