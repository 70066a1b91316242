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

// Package offerbuffer decouples the master callback goroutine from offer
// processing with a bounded queue.
package offerbuffer

import (
	"container/list"
	"context"
	"sync"

	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/framework/mesos"
)

// DefaultCapacity is used when a non-positive capacity is configured.
const DefaultCapacity = 100

// Buffer is a bounded queue of offers. TryEnqueue and Remove never block;
// TakeAll waits for at least one offer and drains the queue.
type Buffer struct {
	sync.Mutex

	capacity int
	offers   *list.List
	// index locates queued offers by id for rescinds.
	index map[string]*list.Element

	// signal has a buffer of one so an enqueue is never missed by a waiting
	// TakeAll.
	signal chan struct{}

	metrics *Metrics
}

// Metrics of the offer buffer.
type Metrics struct {
	Enqueued  tally.Counter
	Rejected  tally.Counter
	Rescinded tally.Counter
	Drained   tally.Counter
	Size      tally.Gauge
}

// NewMetrics returns a new instance of Metrics.
func NewMetrics(scope tally.Scope) *Metrics {
	return &Metrics{
		Enqueued:  scope.Counter("enqueued"),
		Rejected:  scope.Counter("rejected"),
		Rescinded: scope.Counter("rescinded"),
		Drained:   scope.Counter("drained"),
		Size:      scope.Gauge("size"),
	}
}

// New returns an empty buffer holding at most capacity offers.
func New(capacity int, parent tally.Scope) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		capacity: capacity,
		offers:   list.New(),
		index:    make(map[string]*list.Element),
		signal:   make(chan struct{}, 1),
		metrics:  NewMetrics(parent.SubScope("offer_buffer")),
	}
}

// TryEnqueue adds offer unless the buffer is full, in which case it returns
// false and the offer is not retained. An offer already queued under the
// same id is replaced and always accepted.
func (b *Buffer) TryEnqueue(offer *mesos.Offer) bool {
	b.Lock()
	id := offer.GetID().GetValue()
	if e, ok := b.index[id]; ok {
		// A redelivered offer replaces the queued one in place, even when
		// the buffer is full.
		e.Value = offer
	} else {
		if b.offers.Len() >= b.capacity {
			b.Unlock()
			b.metrics.Rejected.Inc(1)
			return false
		}
		b.index[id] = b.offers.PushBack(offer)
	}
	size := b.offers.Len()
	b.Unlock()

	b.metrics.Enqueued.Inc(1)
	b.metrics.Size.Update(float64(size))
	select {
	case b.signal <- struct{}{}:
	default:
	}
	return true
}

// TakeAll blocks until at least one offer is queued and returns every
// queued offer in arrival order, leaving the buffer empty. It returns nil
// with the context error if ctx ends first.
func (b *Buffer) TakeAll(ctx context.Context) ([]*mesos.Offer, error) {
	for {
		if offers := b.drain(); len(offers) > 0 {
			return offers, nil
		}
		select {
		case <-b.signal:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (b *Buffer) drain() []*mesos.Offer {
	b.Lock()
	defer b.Unlock()
	if b.offers.Len() == 0 {
		return nil
	}
	offers := make([]*mesos.Offer, 0, b.offers.Len())
	for e := b.offers.Front(); e != nil; e = e.Next() {
		offers = append(offers, e.Value.(*mesos.Offer))
	}
	b.offers.Init()
	b.index = make(map[string]*list.Element)
	b.metrics.Drained.Inc(int64(len(offers)))
	b.metrics.Size.Update(0)
	return offers
}

// Remove drops the queued offer with the given id. It returns false if no
// such offer is queued, e.g. because it was already taken.
func (b *Buffer) Remove(offerID *mesos.OfferID) bool {
	b.Lock()
	defer b.Unlock()
	e, ok := b.index[offerID.GetValue()]
	if !ok {
		return false
	}
	b.offers.Remove(e)
	delete(b.index, offerID.GetValue())
	b.metrics.Rescinded.Inc(1)
	b.metrics.Size.Update(float64(b.offers.Len()))
	return true
}

// Len returns the number of queued offers.
func (b *Buffer) Len() int {
	b.Lock()
	defer b.Unlock()
	return b.offers.Len()
}

// Capacity returns the maximum number of queued offers.
func (b *Buffer) Capacity() int {
	return b.capacity
}
