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
	"github.com/uber-go/tally/v4"
)

// Metrics tracks calls issued by the driver.
type Metrics struct {
	callSuccess map[CallType]tally.Counter
	callFail    map[CallType]tally.Counter
	callLatency map[CallType]tally.Timer

	FrameworkIDLoadFail tally.Counter
}

// NewMetrics returns a new instance of Metrics.
func NewMetrics(scope tally.Scope) *Metrics {
	successScope := scope.Tagged(map[string]string{"result": "success"})
	failScope := scope.Tagged(map[string]string{"result": "fail"})

	m := &Metrics{
		callSuccess:         make(map[CallType]tally.Counter),
		callFail:            make(map[CallType]tally.Counter),
		callLatency:         make(map[CallType]tally.Timer),
		FrameworkIDLoadFail: failScope.Counter("framework_id_load"),
	}
	for _, t := range []CallType{
		CallTypeSubscribe,
		CallTypeTeardown,
		CallTypeAccept,
		CallTypeDecline,
		CallTypeRevive,
		CallTypeSuppress,
		CallTypeKill,
		CallTypeAcknowledge,
		CallTypeReconcile,
	} {
		tags := map[string]string{"call": string(t)}
		m.callSuccess[t] = successScope.Tagged(tags).Counter("calls")
		m.callFail[t] = failScope.Tagged(tags).Counter("calls")
		m.callLatency[t] = scope.Tagged(tags).Timer("call_latency")
	}
	return m
}
