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

package mhttp

import (
	"github.com/uber-go/tally/v4"
)

// Metrics hold all metrics of the Mesos HTTP transport.
type Metrics struct {
	Running       tally.Gauge
	Subscribe     tally.Counter
	SubscribeFail tally.Counter
	Disconnects   tally.Counter

	Frames           tally.Counter
	ReadLineError    tally.Counter
	FrameLengthError tally.Counter
	LineLengthError  tally.Counter
	RecordIOError    tally.Counter
	HeartbeatTimeout tally.Counter

	Events map[string]tally.Counter

	Calls         tally.Counter
	CallErrors    tally.Counter
	CallLatency   tally.Timer
	NoLeaderError tally.Counter
}

var _eventTypes = []string{
	"SUBSCRIBED", "OFFERS", "RESCIND", "UPDATE",
	"MESSAGE", "FAILURE", "ERROR", "HEARTBEAT", "UNKNOWN",
}

func newMetrics(parent tally.Scope) *Metrics {
	scope := parent.SubScope("mhttp")
	successScope := scope.Tagged(map[string]string{"result": "success"})
	failScope := scope.Tagged(map[string]string{"result": "fail"})

	m := &Metrics{
		Running:       scope.Gauge("running"),
		Subscribe:     successScope.Counter("subscribe"),
		SubscribeFail: failScope.Counter("subscribe"),
		Disconnects:   scope.Counter("disconnects"),

		Frames:           scope.Counter("frames"),
		ReadLineError:    failScope.Counter("read_line"),
		FrameLengthError: failScope.Counter("frame_length"),
		LineLengthError:  failScope.Counter("line_length"),
		RecordIOError:    failScope.Counter("record_io"),
		HeartbeatTimeout: failScope.Counter("heartbeat_timeout"),

		Events: make(map[string]tally.Counter),

		Calls:         successScope.Counter("calls"),
		CallErrors:    failScope.Counter("calls"),
		CallLatency:   scope.Timer("call_latency"),
		NoLeaderError: failScope.Counter("no_leader"),
	}
	for _, t := range _eventTypes {
		m.Events[t] = scope.Tagged(map[string]string{"event": t}).Counter("events")
	}
	return m
}

func (m *Metrics) event(t string) tally.Counter {
	if c, ok := m.Events[t]; ok {
		return c
	}
	return m.Events["UNKNOWN"]
}
