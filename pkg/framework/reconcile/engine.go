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

package reconcile

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"

	"github.com/uber/fwcore/pkg/common/backoff"
	"github.com/uber/fwcore/pkg/framework/mesos"
)

// TaskStatusSource provides the last known status of every task of the
// framework.
type TaskStatusSource interface {
	GetTaskStatuses(ctx context.Context) ([]*mesos.TaskStatus, error)
}

// ReconcileCaller sends explicit reconcile requests to the master.
type ReconcileCaller interface {
	ReconcileTasks(ctx context.Context, statuses []*mesos.TaskStatus) error
}

// Reconciler converges the framework's view of its tasks with the master's,
// once per registration.
type Reconciler interface {
	// Start snapshots the non-terminal tasks and resets the backoff. The
	// error is fatal for the registration.
	Start(ctx context.Context) error
	// Reconcile sends a reconcile request for the remaining tasks if the
	// backoff elapsed. It is meant to be called on every processing tick.
	Reconcile(ctx context.Context)
	// Update marks the task of status as reconciled.
	Update(status *mesos.TaskStatus)
	// IsReconciled returns whether no task is left to reconcile.
	IsReconciled() bool
}

// engine implements Reconciler with explicit reconciliation.
type engine struct {
	// Guards unreconciled, lastRequest and backoff. Never held while
	// calling out to the master.
	sync.RWMutex

	source  TaskStatusSource
	caller  ReconcileCaller
	clock   clock.Clock
	policy  backoff.Policy
	metrics *Metrics

	unreconciled map[string]*mesos.TaskStatus
	lastRequest  time.Time
	backoff      time.Duration

	// complete short-circuits Reconcile once the set drained.
	complete atomic.Bool
}

// NewReconciler returns an explicit Reconciler.
func NewReconciler(
	source TaskStatusSource,
	caller ReconcileCaller,
	clk clock.Clock,
	cfg Config,
	parent tally.Scope,
) Reconciler {
	return newEngine(source, caller, clk, cfg, parent)
}

func newEngine(
	source TaskStatusSource,
	caller ReconcileCaller,
	clk clock.Clock,
	cfg Config,
	parent tally.Scope,
) *engine {
	cfg = cfg.withDefaults()
	policy := backoff.NewExponentialPolicy(cfg.BaseBackoff, cfg.Multiplier, cfg.MaxBackoff)
	return &engine{
		source:       source,
		caller:       caller,
		clock:        clk,
		policy:       policy,
		metrics:      NewMetrics(parent.SubScope("reconcile")),
		unreconciled: make(map[string]*mesos.TaskStatus),
		backoff:      policy.Initial(),
	}
}

func (e *engine) Start(ctx context.Context) error {
	statuses, err := e.source.GetTaskStatuses(ctx)
	if err != nil {
		e.metrics.StartFail.Inc(1)
		return errors.Wrap(err, "failed to fetch task statuses for reconciliation")
	}

	e.Lock()
	defer e.Unlock()

	e.unreconciled = make(map[string]*mesos.TaskStatus)
	for _, s := range statuses {
		if !s.GetState().IsTerminal() {
			e.unreconciled[s.GetTaskID().GetValue()] = s
		}
	}
	// A zero lastRequest lets the first reconcile go out immediately.
	e.lastRequest = time.Time{}
	e.backoff = e.policy.Initial()
	e.complete.Store(len(e.unreconciled) == 0)

	e.metrics.Start.Inc(1)
	e.metrics.Unreconciled.Update(float64(len(e.unreconciled)))
	log.WithFields(log.Fields{
		"total_tasks":        len(statuses),
		"unreconciled_tasks": len(e.unreconciled),
	}).Info("Started explicit reconciliation")
	return nil
}

func (e *engine) Reconcile(ctx context.Context) {
	if e.complete.Load() {
		return
	}

	tasks, ok := e.nextRequest()
	if !ok {
		return
	}
	if len(tasks) == 0 {
		if !e.complete.Swap(true) {
			e.metrics.ReconcileComplete.Inc(1)
			log.Info("Completed explicit reconciliation")
		}
		return
	}

	if err := e.caller.ReconcileTasks(ctx, tasks); err != nil {
		// The backoff already advanced, the next request retries.
		e.metrics.ReconcileFail.Inc(1)
		log.WithError(err).
			WithField("remaining_tasks", len(tasks)).
			Warn("Explicit reconcile request failed")
		return
	}
	e.metrics.ReconcileRequest.Inc(1)
}

// nextRequest returns a copy of the remaining tasks and advances the timer
// if the backoff elapsed. ok is false if it is too soon.
func (e *engine) nextRequest() ([]*mesos.TaskStatus, bool) {
	e.Lock()
	defer e.Unlock()

	if len(e.unreconciled) == 0 {
		return nil, true
	}

	now := e.clock.Now()
	if next := e.lastRequest.Add(e.backoff); now.Before(next) {
		e.metrics.ReconcileTooSoon.Inc(1)
		log.WithFields(log.Fields{
			"wait":            next.Sub(now),
			"remaining_tasks": len(e.unreconciled),
		}).Debug("Too soon since last explicit reconcile request")
		return nil, false
	}

	e.lastRequest = now
	e.backoff = e.policy.Next(e.backoff)

	tasks := make([]*mesos.TaskStatus, 0, len(e.unreconciled))
	for _, s := range e.unreconciled {
		tasks = append(tasks, s)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].GetTaskID().GetValue() < tasks[j].GetTaskID().GetValue()
	})
	log.WithFields(log.Fields{
		"remaining_tasks": len(tasks),
		"next_request_in": e.backoff,
	}).Info("Triggering explicit reconciliation")
	return tasks, true
}

func (e *engine) Update(status *mesos.TaskStatus) {
	e.Lock()
	defer e.Unlock()

	if len(e.unreconciled) == 0 {
		return
	}
	id := status.GetTaskID().GetValue()
	if _, ok := e.unreconciled[id]; !ok {
		return
	}
	delete(e.unreconciled, id)
	e.metrics.TasksUpdated.Inc(1)
	e.metrics.Unreconciled.Update(float64(len(e.unreconciled)))
	log.WithFields(log.Fields{
		"task_id":         id,
		"remaining_tasks": len(e.unreconciled),
	}).Info("Reconciled task")
}

func (e *engine) IsReconciled() bool {
	e.RLock()
	defer e.RUnlock()
	return len(e.unreconciled) == 0
}

// remaining returns the ids of the tasks left to reconcile.
func (e *engine) remaining() []string {
	e.RLock()
	defer e.RUnlock()
	ids := make([]string, 0, len(e.unreconciled))
	for id := range e.unreconciled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
