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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uber/fwcore/pkg/framework/mesos"
)

func TestResourceFilterProcessable(t *testing.T) {
	f := newResourceFilter([]string{"test-role"})

	unreserved := &mesos.Resource{Name: "cpus", Type: "SCALAR"}
	ours := reservedResource("cpus", "svc")
	otherRole := reservedResource("cpus", "svc")
	otherRole.Reservations[0].Role = "other-role"
	noID := reservedResource("cpus", "svc")
	noID.Reservations[0].Labels = nil
	static := reservedResource("cpus", "svc")
	static.Reservations[0].Type = "STATIC"
	static.Reservations[0].Role = "other-role"

	assert.True(t, f.processable(unreserved))
	assert.True(t, f.processable(ours))
	assert.False(t, f.processable(otherRole))
	assert.False(t, f.processable(noID))
	assert.True(t, f.processable(static))
}

func TestResourceFilterNoRoles(t *testing.T) {
	f := newResourceFilter(nil)
	r := reservedResource("cpus", "svc")
	r.Reservations[0].Role = "other-role"
	assert.True(t, f.processable(r))
}

func TestResourceFilterApply(t *testing.T) {
	f := newResourceFilter([]string{"test-role"})

	offer := newOffer("o1")
	offer.Resources = []*mesos.Resource{reservedResource("cpus", "svc")}
	assert.True(t, offer == f.apply(offer))

	foreign := reservedResource("mem", "svc")
	foreign.Reservations[0].Role = "other-role"
	offer.Resources = append(offer.Resources, foreign)
	filtered := f.apply(offer)
	assert.False(t, offer == filtered)
	assert.Len(t, offer.Resources, 2)
	assert.Equal(t, offer.Resources[:1], filtered.Resources)
	assert.Equal(t, offer.ID, filtered.ID)
}
