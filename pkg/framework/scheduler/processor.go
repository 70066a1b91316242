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

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/uber/fwcore/pkg/framework/eventclient"
	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/offerbuffer"
	"github.com/uber/fwcore/pkg/framework/reconcile"
	"github.com/uber/fwcore/pkg/framework/revive"
	"github.com/uber/fwcore/pkg/storage"
)

const _awaitPollInterval = 10 * time.Millisecond

// offerProcessor owns the processing loop: it drains the offer buffer,
// drives reconciliation and hands reconciled offers to the client.
type offerProcessor struct {
	cfg           Config
	frameworkName string
	driver        mesos.Driver
	idStore       storage.FrameworkInfoStore
	client        eventclient.Client
	buffer        *offerbuffer.Buffer
	metrics       *Metrics
	exit          Exiter

	// Set by start, read only by the loop goroutine.
	reconciler reconcile.Reconciler
	reviver    *revive.Controller

	// uninstalled is set once the framework was torn down. Later offers are
	// dropped.
	uninstalled atomic.Bool

	inProgressLock sync.Mutex
	inProgress     map[string]struct{}

	lifecycleLock sync.Mutex
	quit          chan struct{}
	done          chan struct{}
}

func newOfferProcessor(
	cfg Config,
	frameworkName string,
	driver mesos.Driver,
	idStore storage.FrameworkInfoStore,
	client eventclient.Client,
	buffer *offerbuffer.Buffer,
	metrics *Metrics,
	exit Exiter,
) *offerProcessor {
	return &offerProcessor{
		cfg:           cfg,
		frameworkName: frameworkName,
		driver:        driver,
		idStore:       idStore,
		client:        client,
		buffer:        buffer,
		metrics:       metrics,
		exit:          exit,
		inProgress:    make(map[string]struct{}),
	}
}

// start launches the loop goroutine. Starting a running processor is a
// no-op.
func (p *offerProcessor) start(
	reconciler reconcile.Reconciler,
	reviver *revive.Controller,
) {
	p.lifecycleLock.Lock()
	defer p.lifecycleLock.Unlock()
	if p.quit != nil {
		return
	}
	p.reconciler = reconciler
	p.reviver = reviver
	p.quit = make(chan struct{})
	p.done = make(chan struct{})
	go p.run(p.quit, p.done)
	log.Info("Offer processor started")
}

// stop the loop and wait for the current tick to return.
func (p *offerProcessor) stop() {
	p.lifecycleLock.Lock()
	if p.quit == nil {
		p.lifecycleLock.Unlock()
		return
	}
	close(p.quit)
	done := p.done
	p.quit = nil
	p.lifecycleLock.Unlock()
	<-done
	log.Info("Offer processor stopped")
}

func (p *offerProcessor) run(quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-quit
		cancel()
	}()

	for {
		select {
		case <-quit:
			return
		default:
		}
		if !p.tick(ctx) {
			return
		}
	}
}

// enqueue hands offers to the loop. Offers not fitting the buffer are
// declined short right away; after teardown every offer is dropped.
func (p *offerProcessor) enqueue(ctx context.Context, offers []*mesos.Offer) {
	if p.uninstalled.Load() {
		p.metrics.OffersDropped.Inc(int64(len(offers)))
		log.WithField("offers", len(offers)).
			Info("Dropping offers received after teardown")
		return
	}
	for _, offer := range offers {
		p.markInProgress(offer)
		if p.buffer.TryEnqueue(offer) {
			continue
		}
		p.metrics.OffersOverflow.Inc(1)
		log.WithField("offer_id", offer.GetID().GetValue()).
			Warn("Offer buffer is full, declining offer")
		p.decline(ctx, []*mesos.Offer{offer}, mesos.DeclineShort)
		// Cleared after the decline so that waiters do not observe an
		// undeclined offer as processed.
		p.clearInProgress([]*mesos.Offer{offer})
	}
}

// rescind forgets an offer still waiting in the buffer.
func (p *offerProcessor) rescind(offerID *mesos.OfferID) {
	p.metrics.OffersRescinded.Inc(1)
	if !p.buffer.Remove(offerID) {
		p.metrics.OffersRescindMissed.Inc(1)
		log.WithField("offer_id", offerID.GetValue()).
			Debug("Rescinded offer is not queued")
		return
	}
	p.inProgressLock.Lock()
	delete(p.inProgress, offerID.GetValue())
	p.metrics.OffersInProgress.Update(float64(len(p.inProgress)))
	p.inProgressLock.Unlock()
}

func (p *offerProcessor) markInProgress(offer *mesos.Offer) {
	p.inProgressLock.Lock()
	defer p.inProgressLock.Unlock()
	p.inProgress[offer.GetID().GetValue()] = struct{}{}
	p.metrics.OffersInProgress.Update(float64(len(p.inProgress)))
}

func (p *offerProcessor) clearInProgress(offers []*mesos.Offer) {
	if len(offers) == 0 {
		return
	}
	p.inProgressLock.Lock()
	defer p.inProgressLock.Unlock()
	for _, offer := range offers {
		delete(p.inProgress, offer.GetID().GetValue())
	}
	p.metrics.OffersInProgress.Update(float64(len(p.inProgress)))
}

func (p *offerProcessor) inProgressCount() int {
	p.inProgressLock.Lock()
	defer p.inProgressLock.Unlock()
	return len(p.inProgress)
}

// awaitOffersProcessed blocks until every enqueued offer was accepted,
// declined or dropped. Useful in testing.
func (p *offerProcessor) awaitOffersProcessed(timeout time.Duration) error {
	deadline := time.After(timeout)
	ticker := time.NewTicker(_awaitPollInterval)
	defer ticker.Stop()
	for {
		n := p.inProgressCount()
		if n == 0 {
			return nil
		}
		select {
		case <-ticker.C:
		case <-deadline:
			return errors.Errorf("%d offers still in progress after %v", n, timeout)
		}
	}
}

// tick runs one iteration of the loop. It returns false if the loop must
// end because processing failed.
func (p *offerProcessor) tick(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.TickPanics.Inc(1)
			log.WithField("panic", fmt.Sprint(r)).
				Error("Offer processing failed")
			p.exit(ExitProcessingFailure, fmt.Sprintf("offer processing failed: %v", r))
			ok = false
		}
	}()

	waitCtx, cancel := context.WithTimeout(ctx, p.cfg.OfferWait)
	offers, _ := p.buffer.TakeAll(waitCtx)
	cancel()
	if ctx.Err() != nil {
		// Stopping. Offers still queued are left to expire or be
		// rescinded by the master.
		p.clearInProgress(offers)
		return true
	}
	defer p.clearInProgress(offers)

	p.metrics.Ticks.Inc(1)
	sw := p.metrics.TickLatency.Start()
	defer sw.Stop()
	p.process(ctx, offers)
	return true
}

// process handles one batch of offers, which may be empty.
func (p *offerProcessor) process(ctx context.Context, offers []*mesos.Offer) {
	if p.uninstalled.Load() {
		p.metrics.OffersDropped.Inc(int64(len(offers)))
		return
	}

	p.reconciler.Reconcile(ctx)
	if !p.reconciler.IsReconciled() {
		if len(offers) > 0 {
			p.metrics.NotReconciled.Inc(1)
			log.WithField("offers", len(offers)).
				Info("Declining offers, reconciliation is in progress")
		}
		p.decline(ctx, offers, mesos.DeclineShort)
		return
	}

	status := p.client.GetClientStatus()
	switch status {
	case eventclient.StatusReserving, eventclient.StatusRunning:
		p.evaluate(ctx, offers)
		p.reviver.Tick(ctx, p.client.PendingWork())
	case eventclient.StatusFinished:
		p.metrics.ClientFinished.Inc(1)
		p.decline(ctx, offers, mesos.DeclineLong)
		p.reviver.Suppress(ctx)
	case eventclient.StatusUninstalled:
		p.uninstall(ctx, offers)
	default:
		log.WithField("client_status", status.String()).
			Error("Unknown client status, declining offers")
		p.decline(ctx, offers, mesos.DeclineShort)
	}
}

// evaluate asks the client for operations on the offers, releases the
// unexpected resources of the unused ones and declines the rest.
func (p *offerProcessor) evaluate(ctx context.Context, offers []*mesos.Offer) {
	result := p.client.Offers(ctx, offers)
	recommendations := result.Recommendations()
	if len(offers) > 0 || len(recommendations) > 0 {
		log.WithFields(log.Fields{
			"offers":          len(offers),
			"outcome":         result.Outcome().String(),
			"recommendations": len(recommendations),
		}).Info("Evaluated offers")
	}

	unused := eventclient.UnusedOffers(offers, recommendations)
	cleanupOutcome := eventclient.UnexpectedResourcesProcessed
	var cleanup []eventclient.OfferRecommendation
	if len(unused) > 0 {
		unexpected := p.client.GetUnexpectedResources(ctx, unused)
		cleanupOutcome = unexpected.Outcome()
		cleanup = cleanupRecommendations(unexpected.OfferResources())
		if len(cleanup) > 0 || cleanupOutcome != eventclient.UnexpectedResourcesProcessed {
			log.WithFields(log.Fields{
				"offers":          len(unused),
				"outcome":         cleanupOutcome.String(),
				"recommendations": len(cleanup),
			}).Info("Evaluated unexpected resources")
		}
	}

	unused = eventclient.UnusedOffers(unused, cleanup)
	policy := mesos.DeclineLong
	if result.Outcome() != eventclient.OfferProcessed ||
		cleanupOutcome != eventclient.UnexpectedResourcesProcessed {
		policy = mesos.DeclineShort
	}
	p.decline(ctx, unused, policy)

	p.metrics.CleanupOperations.Inc(int64(len(cleanup)))
	p.accept(ctx, append(append([]eventclient.OfferRecommendation{}, recommendations...), cleanup...))
}

// cleanupRecommendations converts unexpected resources into DESTROY and
// UNRESERVE operations. Volumes must be destroyed before their
// reservation is released, so every DESTROY precedes every UNRESERVE.
func cleanupRecommendations(resources []eventclient.OfferResources) []eventclient.OfferRecommendation {
	var destroys, unreserves []eventclient.OfferRecommendation
	for _, res := range resources {
		for _, r := range res.Resources {
			if r.HasPersistentVolume() {
				destroys = append(destroys, eventclient.OfferRecommendation{
					Offer: res.Offer,
					Operation: &mesos.Operation{
						Type:    mesos.OperationTypeDestroy,
						Destroy: &mesos.OperationVolumes{Volumes: []*mesos.Resource{r}},
					},
				})
			}
			unreserves = append(unreserves, eventclient.OfferRecommendation{
				Offer: res.Offer,
				Operation: &mesos.Operation{
					Type:      mesos.OperationTypeUnreserve,
					Unreserve: &mesos.OperationResources{Resources: []*mesos.Resource{r}},
				},
			})
		}
	}
	return append(destroys, unreserves...)
}

// accept sends one accept call per offer, keeping the order of the
// operations within each offer.
func (p *offerProcessor) accept(ctx context.Context, recommendations []eventclient.OfferRecommendation) {
	if len(recommendations) == 0 {
		return
	}
	var order []*mesos.OfferID
	operations := make(map[string][]*mesos.Operation)
	for _, rec := range recommendations {
		id := rec.Offer.GetID()
		if _, ok := operations[id.GetValue()]; !ok {
			order = append(order, id)
		}
		operations[id.GetValue()] = append(operations[id.GetValue()], rec.Operation)
	}

	var errs error
	for _, id := range order {
		ops := operations[id.GetValue()]
		err := p.driver.AcceptOffers(
			ctx, []*mesos.OfferID{id}, ops, p.cfg.Decline.Filters(mesos.DeclineShort))
		if err != nil {
			p.metrics.OffersAcceptFail.Inc(1)
			errs = multierr.Append(errs, errors.Wrapf(err, "accept offer %s", id.GetValue()))
			continue
		}
		p.metrics.OffersAccepted.Inc(1)
		p.metrics.Operations.Inc(int64(len(ops)))
	}
	if errs != nil {
		log.WithError(errs).Warn("Failed to accept offers")
		return
	}
	log.WithFields(log.Fields{
		"offers":     len(order),
		"operations": len(recommendations),
	}).Info("Accepted offers")
}

func (p *offerProcessor) decline(
	ctx context.Context,
	offers []*mesos.Offer,
	policy mesos.DeclinePolicy,
) {
	if len(offers) == 0 {
		return
	}
	err := p.driver.DeclineOffers(ctx, mesos.OfferIDs(offers), p.cfg.Decline.Filters(policy))
	if err != nil {
		p.metrics.OffersDeclineFail.Inc(int64(len(offers)))
		log.WithError(err).
			WithFields(log.Fields{"offers": len(offers), "policy": policy.String()}).
			Warn("Failed to decline offers")
		return
	}
	p.metrics.OffersDeclined[policy.String()].Inc(int64(len(offers)))
	log.WithFields(log.Fields{"offers": len(offers), "policy": policy.String()}).
		Debug("Declined offers")
}

// uninstall tears the framework down once the client reports that it is
// uninstalled. A failed teardown is retried on the next tick.
func (p *offerProcessor) uninstall(ctx context.Context, offers []*mesos.Offer) {
	log.Info("Client is uninstalled, tearing down framework")
	if err := p.driver.Teardown(ctx); err != nil {
		p.metrics.TeardownFail.Inc(1)
		log.WithError(err).Error("Failed to tear down framework")
		p.decline(ctx, offers, mesos.DeclineShort)
		return
	}
	p.metrics.Teardown.Inc(1)
	p.uninstalled.Store(true)
	p.metrics.OffersDropped.Inc(int64(len(offers)))

	if err := p.idStore.ClearFrameworkID(ctx, p.frameworkName); err != nil {
		log.WithError(err).Error("Failed to clear framework id after teardown")
	}
	p.client.Unregistered()
	log.Info("Framework uninstall is complete")
}
