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

package health

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

func gauge(scope tally.TestScope, name string) (float64, bool) {
	g, ok := scope.Snapshot().Gauges()[name+"+"]
	if !ok {
		return 0, false
	}
	return g.Value(), true
}

func TestHeartbeatEmitsReadiness(t *testing.T) {
	defer goleak.VerifyNone(t)

	scope := tally.NewTestScope("", nil)
	clk := clock.NewMock()
	var ready atomic.Bool
	hb := NewHeartbeat(scope, Config{HeartbeatInterval: time.Second}, clk, ready.Load)

	hb.Start()
	hb.Start()
	clk.Add(time.Second)
	assert.Eventually(t, func() bool {
		v, ok := gauge(scope, "health.heartbeat")
		return ok && v == 1
	}, time.Second, 5*time.Millisecond)
	v, _ := gauge(scope, "health.ready")
	assert.Equal(t, float64(0), v)

	ready.Store(true)
	assert.Eventually(t, func() bool {
		clk.Add(time.Second)
		v, _ := gauge(scope, "health.ready")
		return v == 1
	}, time.Second, 5*time.Millisecond)

	hb.Stop()
	hb.Stop()
	assert.Equal(t, int64(1), scope.Snapshot().Counters()["health.init+"].Value())
}

func TestHeartbeatDefaultInterval(t *testing.T) {
	hb := NewHeartbeat(tally.NoopScope, Config{}, clock.NewMock(), nil)
	assert.Equal(t, _defaultHeartbeatInterval, hb.interval)
	hb.Stop()
}
