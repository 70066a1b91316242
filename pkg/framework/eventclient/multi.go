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

package eventclient

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/revive"
)

const _defaultMaxReservingClients = 1

// MultiplexerConfig controls how offers are shared between clients.
type MultiplexerConfig struct {
	// MaxReservingClients caps the clients growing their footprint at the
	// same time. Others in StatusReserving wait for a slot.
	MaxReservingClients int `yaml:"max_reserving_clients"`
}

// Multiplexer is a Client fanning events out to named sub-clients, e.g. one
// per service hosted by the framework.
type Multiplexer struct {
	sync.RWMutex

	clients      []namedClient
	maxReserving int
	// clients holding a reservation slot, kept across ticks
	reserving map[string]struct{}
	// clients to give offers to, computed by GetClientStatus
	offerTargets []namedClient

	metrics *multiplexerMetrics
}

type namedClient struct {
	name   string
	client Client
}

type multiplexerMetrics struct {
	clients            tally.Gauge
	offerTargets       tally.Gauge
	reservingWaiting   tally.Gauge
	unknownTaskStatus  tally.Counter
	unexpectedOrphaned tally.Counter
}

// NewMultiplexer creates a Multiplexer without clients.
func NewMultiplexer(cfg MultiplexerConfig, parent tally.Scope) *Multiplexer {
	if cfg.MaxReservingClients <= 0 {
		cfg.MaxReservingClients = _defaultMaxReservingClients
	}
	scope := parent.SubScope("multiplexer")
	return &Multiplexer{
		maxReserving: cfg.MaxReservingClients,
		reserving:    make(map[string]struct{}),
		metrics: &multiplexerMetrics{
			clients:            scope.Gauge("clients"),
			offerTargets:       scope.Gauge("offer_targets"),
			reservingWaiting:   scope.Gauge("reserving_waiting"),
			unknownTaskStatus:  scope.Counter("unknown_task_status"),
			unexpectedOrphaned: scope.Counter("unexpected_orphaned_resources"),
		},
	}
}

// AddClient registers a client under a unique name. Clients are consulted
// in the order they were added.
func (m *Multiplexer) AddClient(name string, client Client) error {
	m.Lock()
	defer m.Unlock()
	if m.find(name) != nil {
		return errors.Errorf("client %q already exists", name)
	}
	m.clients = append(m.clients, namedClient{name: name, client: client})
	m.metrics.clients.Update(float64(len(m.clients)))
	log.WithField("client", name).Info("Added client")
	return nil
}

// RemoveClient removes a client, returning false if it did not exist.
func (m *Multiplexer) RemoveClient(name string) bool {
	m.Lock()
	defer m.Unlock()
	for i, c := range m.clients {
		if c.name != name {
			continue
		}
		m.clients = append(m.clients[:i:i], m.clients[i+1:]...)
		delete(m.reserving, name)
		m.metrics.clients.Update(float64(len(m.clients)))
		log.WithField("client", name).Info("Removed client")
		return true
	}
	return false
}

func (m *Multiplexer) find(name string) Client {
	for _, c := range m.clients {
		if c.name == name {
			return c.client
		}
	}
	return nil
}

func (m *Multiplexer) snapshot() []namedClient {
	m.RLock()
	defer m.RUnlock()
	return append([]namedClient(nil), m.clients...)
}

// Registered notifies every client.
func (m *Multiplexer) Registered(reregistered bool) {
	for _, c := range m.snapshot() {
		c.client.Registered(reregistered)
	}
}

// Unregistered notifies every client.
func (m *Multiplexer) Unregistered() {
	for _, c := range m.snapshot() {
		c.client.Unregistered()
	}
}

// GetClientStatus polls every client, picks the clients that get offers on
// this tick and aggregates their status: UNINSTALLED if every client is,
// otherwise RESERVING or RUNNING if any client is, otherwise FINISHED.
func (m *Multiplexer) GetClientStatus() ClientStatus {
	clients := m.snapshot()
	statuses := make([]ClientStatus, len(clients))
	for i, c := range clients {
		statuses[i] = c.client.GetClientStatus()
	}

	m.Lock()
	defer m.Unlock()

	// Release slots of clients that stopped reserving.
	for name := range m.reserving {
		i := indexOf(clients, name)
		if i < 0 || statuses[i] != StatusReserving {
			delete(m.reserving, name)
		}
	}

	var targets []namedClient
	waiting := 0
	anyReserving, anyRunning, allUninstalled := false, false, len(clients) > 0
	for i, c := range clients {
		if statuses[i] != StatusUninstalled {
			allUninstalled = false
		}
		switch statuses[i] {
		case StatusRunning:
			anyRunning = true
			targets = append(targets, c)
		case StatusReserving:
			anyReserving = true
			if _, ok := m.reserving[c.name]; !ok && len(m.reserving) < m.maxReserving {
				m.reserving[c.name] = struct{}{}
				log.WithField("client", c.name).Info("Client may grow its footprint")
			}
			if _, ok := m.reserving[c.name]; ok {
				targets = append(targets, c)
			} else {
				waiting++
			}
		}
	}
	m.offerTargets = targets
	m.metrics.offerTargets.Update(float64(len(targets)))
	m.metrics.reservingWaiting.Update(float64(waiting))

	switch {
	case len(clients) == 0:
		return StatusRunning
	case allUninstalled:
		return StatusUninstalled
	case anyReserving:
		return StatusReserving
	case anyRunning:
		return StatusRunning
	default:
		return StatusFinished
	}
}

func indexOf(clients []namedClient, name string) int {
	for i, c := range clients {
		if c.name == name {
			return i
		}
	}
	return -1
}

// Offers passes the offers left unused by one client on to the next. The
// result is NOT_READY only if every client was not ready.
func (m *Multiplexer) Offers(ctx context.Context, offers []*mesos.Offer) OfferResult {
	m.RLock()
	targets := m.offerTargets
	m.RUnlock()

	if len(targets) == 0 {
		return NotReadyOffers(nil)
	}

	var recommendations []OfferRecommendation
	remaining := offers
	notReady := 0
	for _, c := range targets {
		result := c.client.Offers(ctx, remaining)
		recs := result.Recommendations()
		recommendations = append(recommendations, recs...)
		if len(recs) > 0 {
			// A fresh slice, the previous result may alias remaining.
			remaining = UnusedOffers(remaining, recs)
		}
		if result.Outcome() == OfferNotReady {
			notReady++
		}
		if len(recs) > 0 || result.Outcome() == OfferNotReady {
			log.WithFields(log.Fields{
				"client":          c.name,
				"result":          result.Outcome(),
				"recommendations": len(recs),
				"remaining":       len(remaining),
			}).Info("Client offer result")
		}
	}

	if notReady == len(targets) {
		return NotReadyOffers(recommendations)
	}
	return ProcessedOffers(recommendations)
}

// GetUnexpectedResources asks each client about the reserved resources of
// the offers. A resource reserved for a named client is unexpected if that
// client reports it or no longer exists. A resource without a namespace is
// unexpected only if every client reports it.
func (m *Multiplexer) GetUnexpectedResources(
	ctx context.Context,
	offers []*mesos.Offer,
) UnexpectedResourcesResult {
	clients := m.snapshot()

	views := make(map[string][]*mesos.Offer, len(clients))
	var orphaned []*mesos.Resource
	for _, offer := range offers {
		perClient := make(map[string][]*mesos.Resource)
		for _, r := range offer.Resources {
			if !r.IsReserved() {
				continue
			}
			ns := r.Namespace()
			switch {
			case ns == "":
				for _, c := range clients {
					perClient[c.name] = append(perClient[c.name], r)
				}
			case indexOf(clients, ns) >= 0:
				perClient[ns] = append(perClient[ns], r)
			default:
				orphaned = append(orphaned, r)
			}
		}
		for name, resources := range perClient {
			view := *offer
			view.Resources = resources
			views[name] = append(views[name], &view)
		}
	}

	reported := make(map[*mesos.Resource]int)
	failed := false
	for _, c := range clients {
		view, ok := views[c.name]
		if !ok {
			continue
		}
		result := c.client.GetUnexpectedResources(ctx, view)
		if result.Outcome() == UnexpectedResourcesFailed {
			failed = true
		}
		count := 0
		for _, or := range result.OfferResources() {
			for _, r := range or.Resources {
				reported[r]++
				count++
			}
		}
		log.WithFields(log.Fields{
			"client":     c.name,
			"result":     result.Outcome(),
			"unexpected": count,
		}).Debug("Client cleanup result")
	}

	isOrphaned := make(map[*mesos.Resource]struct{}, len(orphaned))
	for _, r := range orphaned {
		isOrphaned[r] = struct{}{}
	}
	m.metrics.unexpectedOrphaned.Inc(int64(len(orphaned)))

	var unexpected []OfferResources
	for _, offer := range offers {
		var resources []*mesos.Resource
		for _, r := range offer.Resources {
			if _, ok := isOrphaned[r]; ok {
				resources = append(resources, r)
				continue
			}
			n := reported[r]
			if n == 0 {
				continue
			}
			if r.Namespace() != "" || n == len(clients) {
				resources = append(resources, r)
			}
		}
		if len(resources) > 0 {
			unexpected = append(unexpected, OfferResources{Offer: offer, Resources: resources})
		}
	}

	if failed {
		return FailedUnexpectedResources(unexpected)
	}
	return ProcessedUnexpectedResources(unexpected)
}

// Status gives the status to each client until one processes it.
func (m *Multiplexer) Status(ctx context.Context, status *mesos.TaskStatus) TaskStatusResult {
	for _, c := range m.snapshot() {
		if c.client.Status(ctx, status).Outcome() == TaskStatusProcessed {
			return ProcessedTaskStatus()
		}
	}
	m.metrics.unknownTaskStatus.Inc(1)
	log.WithFields(log.Fields{
		"task_id": status.GetTaskID().GetValue(),
		"state":   status.GetState(),
	}).Info("No client owns the task")
	return UnknownTask()
}

// PendingWork returns the pending work of every client, each item name
// prefixed with the client name.
func (m *Multiplexer) PendingWork() []revive.WorkItem {
	var items []revive.WorkItem
	for _, c := range m.snapshot() {
		for _, item := range c.client.PendingWork() {
			items = append(items, revive.WorkItem{
				Name:         c.name + "/" + item.Name,
				RecoveryType: item.RecoveryType,
			})
		}
	}
	return items
}

// HTTPResources returns the resources of every client.
func (m *Multiplexer) HTTPResources() []interface{} {
	var resources []interface{}
	for _, c := range m.snapshot() {
		resources = append(resources, c.client.HTTPResources()...)
	}
	return resources
}
