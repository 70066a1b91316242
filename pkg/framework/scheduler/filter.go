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
	log "github.com/sirupsen/logrus"

	"github.com/uber/fwcore/pkg/framework/mesos"
)

const _dynamicReservation = "DYNAMIC"

// resourceFilter hides the dynamically reserved resources that were not
// created by this framework, e.g. reservations of another framework made
// against a refined role we are subscribed to.
type resourceFilter struct {
	roles map[string]struct{}
}

func newResourceFilter(roles []string) *resourceFilter {
	f := &resourceFilter{roles: make(map[string]struct{}, len(roles))}
	for _, r := range roles {
		f.roles[r] = struct{}{}
	}
	return f
}

// processable returns whether the resource is usable by the framework.
// Dynamic reservations must be for one of our roles and carry our
// resource id label.
func (f *resourceFilter) processable(r *mesos.Resource) bool {
	if len(f.roles) == 0 || !r.IsReserved() {
		return true
	}
	top := r.Reservations[len(r.Reservations)-1]
	if top.Type != _dynamicReservation {
		return true
	}
	if _, ok := f.roles[top.Role]; !ok {
		return false
	}
	return r.ResourceID() != ""
}

// apply returns offer with the unusable resources removed. The offer is
// returned unchanged if every resource is usable.
func (f *resourceFilter) apply(offer *mesos.Offer) *mesos.Offer {
	var good []*mesos.Resource
	filtered := 0
	for _, r := range offer.Resources {
		if f.processable(r) {
			good = append(good, r)
			continue
		}
		filtered++
		log.WithFields(log.Fields{
			"offer_id": offer.GetID().GetValue(),
			"resource": r.Name,
			"role":     r.Reservations[len(r.Reservations)-1].Role,
		}).Debug("Filtered resource not reserved by this framework")
	}
	if filtered == 0 {
		return offer
	}
	copied := *offer
	copied.Resources = good
	return &copied
}
