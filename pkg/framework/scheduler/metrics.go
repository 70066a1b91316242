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
	"github.com/uber-go/tally/v4"
)

// Metrics is a placeholder for all metrics in the scheduler package.
type Metrics struct {
	Registered       tally.Counter
	RegisteredFail   tally.Counter
	Reregistered     tally.Counter
	Disconnected     tally.Counter
	MasterError      tally.Counter
	FrameworkMessage tally.Counter
	AgentLost        tally.Counter
	ExecutorLost     tally.Counter

	OffersReceived      tally.Counter
	OffersNotReady      tally.Counter
	OffersOverflow      tally.Counter
	OffersDropped       tally.Counter
	OffersRescinded     tally.Counter
	OffersRescindMissed tally.Counter
	OffersInProgress    tally.Gauge

	OffersAccepted    tally.Counter
	OffersAcceptFail  tally.Counter
	Operations        tally.Counter
	CleanupOperations tally.Counter
	OffersDeclined    map[string]tally.Counter
	OffersDeclineFail tally.Counter

	Ticks          tally.Counter
	TickPanics     tally.Counter
	TickLatency    tally.Timer
	NotReconciled  tally.Counter
	ClientFinished tally.Counter
	Teardown       tally.Counter
	TeardownFail   tally.Counter

	StatusUpdates   tally.Counter
	StatusPanics    tally.Counter
	UnknownTasks    tally.Counter
	Kills           tally.Counter
	KillsFail       tally.Counter
	KillsDeduped    tally.Counter
	Acknowledge     tally.Counter
	AcknowledgeFail tally.Counter
}

// NewMetrics returns a new instance of Metrics.
func NewMetrics(scope tally.Scope) *Metrics {
	successScope := scope.Tagged(map[string]string{"result": "success"})
	failScope := scope.Tagged(map[string]string{"result": "fail"})

	offerScope := scope.SubScope("offers")
	offerSuccessScope := offerScope.Tagged(map[string]string{"result": "success"})
	offerFailScope := offerScope.Tagged(map[string]string{"result": "fail"})

	statusScope := scope.SubScope("status")
	statusSuccessScope := statusScope.Tagged(map[string]string{"result": "success"})
	statusFailScope := statusScope.Tagged(map[string]string{"result": "fail"})

	declined := make(map[string]tally.Counter)
	for _, policy := range []string{"short", "long"} {
		declined[policy] = offerSuccessScope.Tagged(
			map[string]string{"policy": policy}).Counter("declined")
	}

	return &Metrics{
		Registered:       successScope.Counter("registered"),
		RegisteredFail:   failScope.Counter("registered"),
		Reregistered:     scope.Counter("reregistered"),
		Disconnected:     scope.Counter("disconnected"),
		MasterError:      scope.Counter("master_error"),
		FrameworkMessage: scope.Counter("framework_message"),
		AgentLost:        scope.Counter("agent_lost"),
		ExecutorLost:     scope.Counter("executor_lost"),

		OffersReceived:      offerScope.Counter("received"),
		OffersNotReady:      offerScope.Counter("not_ready"),
		OffersOverflow:      offerScope.Counter("overflow"),
		OffersDropped:       offerScope.Counter("dropped"),
		OffersRescinded:     offerScope.Counter("rescinded"),
		OffersRescindMissed: offerScope.Counter("rescind_missed"),
		OffersInProgress:    offerScope.Gauge("in_progress"),

		OffersAccepted:    offerSuccessScope.Counter("accepted"),
		OffersAcceptFail:  offerFailScope.Counter("accepted"),
		Operations:        offerScope.Counter("operations"),
		CleanupOperations: offerScope.Counter("cleanup_operations"),
		OffersDeclined:    declined,
		OffersDeclineFail: offerFailScope.Counter("declined"),

		Ticks:          scope.Counter("ticks"),
		TickPanics:     scope.Counter("tick_panics"),
		TickLatency:    scope.Timer("tick_latency"),
		NotReconciled:  scope.Counter("not_reconciled"),
		ClientFinished: scope.Counter("client_finished"),
		Teardown:       successScope.Counter("teardown"),
		TeardownFail:   failScope.Counter("teardown"),

		StatusUpdates:   statusScope.Counter("updates"),
		StatusPanics:    statusScope.Counter("panics"),
		UnknownTasks:    statusScope.Counter("unknown_tasks"),
		Kills:           statusSuccessScope.Counter("kill"),
		KillsFail:       statusFailScope.Counter("kill"),
		KillsDeduped:    statusScope.Counter("kill_deduped"),
		Acknowledge:     statusSuccessScope.Counter("acknowledge"),
		AcknowledgeFail: statusFailScope.Counter("acknowledge"),
	}
}
