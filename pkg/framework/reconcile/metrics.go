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

package reconcile

import (
	"github.com/uber-go/tally/v4"
)

// Metrics is a placeholder for all metrics in the reconcile package.
type Metrics struct {
	Start             tally.Counter
	StartFail         tally.Counter
	ReconcileRequest  tally.Counter
	ReconcileFail     tally.Counter
	ReconcileTooSoon  tally.Counter
	ReconcileComplete tally.Counter
	TasksUpdated      tally.Counter
	Unreconciled      tally.Gauge
}

// NewMetrics returns a new instance of Metrics.
func NewMetrics(scope tally.Scope) *Metrics {
	successScope := scope.Tagged(map[string]string{"type": "success"})
	failScope := scope.Tagged(map[string]string{"type": "fail"})
	return &Metrics{
		Start:             successScope.Counter("start"),
		StartFail:         failScope.Counter("start"),
		ReconcileRequest:  successScope.Counter("reconcile_explicitly"),
		ReconcileFail:     failScope.Counter("reconcile_explicitly"),
		ReconcileTooSoon:  scope.Counter("reconcile_too_soon"),
		ReconcileComplete: scope.Counter("reconcile_complete"),
		TasksUpdated:      scope.Counter("tasks_updated"),
		Unreconciled:      scope.Gauge("unreconciled_tasks"),
	}
}
