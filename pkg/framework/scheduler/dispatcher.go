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

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"

	"github.com/uber/fwcore/pkg/common/async"
	"github.com/uber/fwcore/pkg/framework/eventclient"
	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/offerbuffer"
	"github.com/uber/fwcore/pkg/framework/reconcile"
	"github.com/uber/fwcore/pkg/framework/revive"
	"github.com/uber/fwcore/pkg/storage"
)

type registrationState int32

const (
	stateUnregistered registrationState = iota
	stateRegistered
)

// Dispatcher implements mesos.Scheduler. It routes master events to the
// offer processing loop, the status worker and the event client.
type Dispatcher struct {
	cfg           Config
	frameworkName string
	driver        mesos.Driver
	idStore       storage.FrameworkInfoStore
	tasks         reconcile.TaskStatusSource
	client        eventclient.Client
	clock         clock.Clock
	scope         tally.Scope
	exit          Exiter
	metrics       *Metrics
	filter        *resourceFilter

	state atomic.Int32

	ready     atomic.Bool
	readyOnce sync.Once
	readyCh   chan struct{}

	// Built by the first registration on the callback goroutine, before
	// the status worker and the processor start.
	lifecycleLock sync.Mutex
	reconciler    reconcile.Reconciler
	reviver       *revive.Controller

	processor    *offerProcessor
	statusWorker *async.Worker
	// killed remembers the statuses that already triggered a kill.
	killed *lru.Cache
}

// NewDispatcher creates a Dispatcher. Nothing runs until the master
// confirms the registration.
func NewDispatcher(
	cfg Config,
	frameworkName string,
	driver mesos.Driver,
	idStore storage.FrameworkInfoStore,
	tasks reconcile.TaskStatusSource,
	client eventclient.Client,
	clk clock.Clock,
	exit Exiter,
	parent tally.Scope,
) (*Dispatcher, error) {
	cfg = cfg.withDefaults()
	killed, err := lru.New(cfg.KilledTaskCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create killed task cache")
	}
	if exit == nil {
		exit = OSExiter
	}
	scope := parent.SubScope("scheduler")
	metrics := NewMetrics(scope)
	d := &Dispatcher{
		cfg:           cfg,
		frameworkName: frameworkName,
		driver:        driver,
		idStore:       idStore,
		tasks:         tasks,
		client:        client,
		clock:         clk,
		scope:         scope,
		exit:          exit,
		metrics:       metrics,
		filter:        newResourceFilter(cfg.Roles),
		readyCh:       make(chan struct{}),
		killed:        killed,
	}
	d.processor = newOfferProcessor(
		cfg,
		frameworkName,
		driver,
		idStore,
		client,
		offerbuffer.New(cfg.OfferBufferSize, scope),
		metrics,
		exit,
	)
	d.statusWorker = async.NewWorker("status", func(interface{}) {
		metrics.StatusPanics.Inc(1)
	})
	return d, nil
}

// Registered handles the first subscription of this process. A repeated
// registration is handled as a reregistration.
func (d *Dispatcher) Registered(
	ctx context.Context,
	frameworkID *mesos.FrameworkID,
	masterInfo *mesos.MasterInfo,
) {
	if !d.state.CompareAndSwap(int32(stateUnregistered), int32(stateRegistered)) {
		log.WithField("framework_id", frameworkID.GetValue()).
			Info("Already registered, handling as reregistration")
		d.Reregistered(ctx, masterInfo)
		return
	}

	log.WithFields(log.Fields{
		"framework_id": frameworkID.GetValue(),
		"master":       masterInfo.GetAddress(),
	}).Info("Framework registered")

	d.initialize()

	err := d.idStore.SetFrameworkID(ctx, d.frameworkName, frameworkID.GetValue())
	if err != nil {
		d.metrics.RegisteredFail.Inc(1)
		log.WithError(err).Error("Failed to persist framework id")
		d.exit(ExitRegistrationFailure, fmt.Sprintf("failed to persist framework id: %v", err))
		return
	}
	d.metrics.Registered.Inc(1)

	d.client.Registered(false)
	if !d.postRegister(ctx) {
		return
	}
	// The loop starts once reconciliation holds the task snapshot, so that
	// no offer is evaluated against an unreconciled state.
	d.processor.start(d.reconciler, d.reviver)
}

// initialize builds the per process components exactly once.
func (d *Dispatcher) initialize() {
	d.lifecycleLock.Lock()
	defer d.lifecycleLock.Unlock()
	d.reconciler = reconcile.NewReconciler(
		d.tasks, d.driver, d.clock, d.cfg.Reconcile, d.scope)
	d.reviver = revive.NewController(d.driver, d.clock, d.cfg.Revive, d.scope)
	d.reviver.Start()
	d.statusWorker.Start()
}

// Reregistered handles a subscription re-established with a new master.
func (d *Dispatcher) Reregistered(ctx context.Context, masterInfo *mesos.MasterInfo) {
	if registrationState(d.state.Load()) != stateRegistered {
		log.Warn("Reregistered before registration, ignoring")
		return
	}
	d.metrics.Reregistered.Inc(1)
	log.WithField("master", masterInfo.GetAddress()).Info("Framework reregistered")
	d.client.Registered(true)
	d.postRegister(ctx)
}

// postRegister restarts reconciliation and revives offers, which may have
// been declined for a long time by a previous run. It returns false if
// the process is exiting.
func (d *Dispatcher) postRegister(ctx context.Context) bool {
	if err := d.reconciler.Start(ctx); err != nil {
		log.WithError(err).Error("Failed to load task statuses for reconciliation")
		d.exit(ExitInitializationFailure, fmt.Sprintf("failed to start reconciliation: %v", err))
		return false
	}
	d.reconciler.Reconcile(ctx)
	if err := d.reviver.Revive(ctx); err != nil {
		log.WithError(err).Warn("Failed to revive offers after registration")
	}
	return true
}

// MarkReady opens the gate for offers. Until then offers are declined
// short, e.g. while the HTTP server comes up.
func (d *Dispatcher) MarkReady() {
	d.readyOnce.Do(func() {
		d.ready.Store(true)
		close(d.readyCh)
		log.Info("Framework scheduler is ready for offers")
	})
}

// IsReady returns whether MarkReady was called.
func (d *Dispatcher) IsReady() bool {
	return d.ready.Load()
}

// AwaitReady waits for MarkReady and exits the process if it is not called
// within the configured timeout.
func (d *Dispatcher) AwaitReady() bool {
	timer := d.clock.Timer(d.cfg.ReadyTimeout)
	defer timer.Stop()
	select {
	case <-d.readyCh:
		return true
	case <-timer.C:
		log.WithField("timeout", d.cfg.ReadyTimeout).
			Error("Framework scheduler did not become ready in time")
		d.exit(ExitAPIServerTimeout,
			fmt.Sprintf("not ready after %v", d.cfg.ReadyTimeout))
		return false
	}
}

// ResourceOffers queues offers for the processing loop, without the
// resources reserved by others.
func (d *Dispatcher) ResourceOffers(ctx context.Context, offers []*mesos.Offer) {
	d.metrics.OffersReceived.Inc(int64(len(offers)))
	if !d.ready.Load() {
		d.metrics.OffersNotReady.Inc(int64(len(offers)))
		log.WithField("offers", len(offers)).
			Info("Declining offers, framework scheduler is not ready")
		d.processor.decline(ctx, offers, mesos.DeclineShort)
		return
	}
	filtered := make([]*mesos.Offer, 0, len(offers))
	for _, offer := range offers {
		filtered = append(filtered, d.filter.apply(offer))
	}
	d.processor.enqueue(ctx, filtered)
}

// OfferRescinded drops the offer if it is still queued.
func (d *Dispatcher) OfferRescinded(ctx context.Context, offerID *mesos.OfferID) {
	log.WithField("offer_id", offerID.GetValue()).Debug("Offer rescinded")
	d.processor.rescind(offerID)
}

// StatusUpdate hands the status to the status worker, which processes
// statuses one at a time in arrival order.
func (d *Dispatcher) StatusUpdate(ctx context.Context, status *mesos.TaskStatus) {
	d.metrics.StatusUpdates.Inc(1)
	log.WithFields(log.Fields{
		"task_id": status.GetTaskID().GetValue(),
		"state":   status.GetState(),
		"reason":  status.Reason,
		"message": status.Message,
	}).Debug("Received task status")
	d.statusWorker.Enqueue(async.JobFunc(func(ctx context.Context) {
		d.handleStatus(ctx, status)
	}))
}

// FrameworkMessage is logged; executors of this framework do not send
// messages.
func (d *Dispatcher) FrameworkMessage(
	ctx context.Context,
	executorID *mesos.ExecutorID,
	agentID *mesos.AgentID,
	data []byte,
) {
	d.metrics.FrameworkMessage.Inc(1)
	log.WithFields(log.Fields{
		"executor_id": executorID.GetValue(),
		"agent_id":    agentID.GetValue(),
		"size":        len(data),
	}).Warn("Ignoring framework message")
}

// Disconnected exits the process. The supervisor restarts it and the new
// process subscribes again with the persisted framework id.
func (d *Dispatcher) Disconnected(ctx context.Context) {
	d.metrics.Disconnected.Inc(1)
	log.Error("Disconnected from master")
	d.exit(ExitDisconnected, "disconnected from master")
}

// AgentLost is logged; the affected tasks receive their own statuses.
func (d *Dispatcher) AgentLost(ctx context.Context, agentID *mesos.AgentID) {
	d.metrics.AgentLost.Inc(1)
	log.WithField("agent_id", agentID.GetValue()).Warn("Agent lost")
}

// ExecutorLost is logged; the affected tasks receive their own statuses.
func (d *Dispatcher) ExecutorLost(
	ctx context.Context,
	executorID *mesos.ExecutorID,
	agentID *mesos.AgentID,
	status int32,
) {
	d.metrics.ExecutorLost.Inc(1)
	log.WithFields(log.Fields{
		"executor_id": executorID.GetValue(),
		"agent_id":    agentID.GetValue(),
		"status":      status,
	}).Warn("Executor lost")
}

// Error exits the process.
func (d *Dispatcher) Error(ctx context.Context, message string) {
	d.metrics.MasterError.Inc(1)
	log.WithField("message", message).Error("Master reported an error")
	d.exit(ExitError, fmt.Sprintf("master error: %s", message))
}

// AwaitOffersProcessed blocks until every offer handed to the dispatcher
// was accepted, declined or dropped. Useful in testing.
func (d *Dispatcher) AwaitOffersProcessed(timeout time.Duration) error {
	return d.processor.awaitOffersProcessed(timeout)
}

// AwaitStatusesProcessed blocks until every queued status was handled. It
// returns right away once the dispatcher is stopped. Useful in testing.
func (d *Dispatcher) AwaitStatusesProcessed() {
	d.statusWorker.WaitUntilProcessed()
}

// Stop the processing loop, the status worker and the revive timer.
func (d *Dispatcher) Stop() {
	d.processor.stop()
	d.statusWorker.Stop()
	d.lifecycleLock.Lock()
	defer d.lifecycleLock.Unlock()
	if d.reviver != nil {
		d.reviver.Stop()
	}
}

var _ mesos.Scheduler = (*Dispatcher)(nil)
