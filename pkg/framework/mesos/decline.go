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

package mesos

import (
	"time"
)

const (
	// ShortDeclineSeconds returns an offer to the pool quickly.
	ShortDeclineSeconds = 5
	// LongDeclineSeconds withholds an offer for two weeks. Only a revive
	// brings it back earlier.
	LongDeclineSeconds = 14 * 24 * 60 * 60
)

// DeclinePolicy is the refuse window applied when declining offers.
type DeclinePolicy int

const (
	// DeclineShort is used when the framework could not evaluate an offer.
	DeclineShort DeclinePolicy = iota
	// DeclineLong is used when the framework evaluated and did not need an
	// offer.
	DeclineLong
)

func (p DeclinePolicy) String() string {
	if p == DeclineLong {
		return "long"
	}
	return "short"
}

// FiltersFor returns the filters for policy with the default windows.
func FiltersFor(p DeclinePolicy) *Filters {
	if p == DeclineLong {
		return &Filters{RefuseSeconds: LongDeclineSeconds}
	}
	return &Filters{RefuseSeconds: ShortDeclineSeconds}
}

// DeclineDurations overrides the refuse windows.
type DeclineDurations struct {
	Short time.Duration `yaml:"short"`
	Long  time.Duration `yaml:"long"`
}

// Filters returns the filters for policy, falling back to the defaults for
// unset windows.
func (d DeclineDurations) Filters(p DeclinePolicy) *Filters {
	switch {
	case p == DeclineLong && d.Long > 0:
		return &Filters{RefuseSeconds: d.Long.Seconds()}
	case p == DeclineShort && d.Short > 0:
		return &Filters{RefuseSeconds: d.Short.Seconds()}
	}
	return FiltersFor(p)
}

// OfferIDs returns the ids of offers.
func OfferIDs(offers []*Offer) []*OfferID {
	ids := make([]*OfferID, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.GetID())
	}
	return ids
}
