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

package storage

import (
	"github.com/uber-go/tally/v4"
)

// FrameworkStoreMetrics tracks framework id reads and writes.
type FrameworkStoreMetrics struct {
	FrameworkIDGet       tally.Counter
	FrameworkIDGetFail   tally.Counter
	FrameworkIDSet       tally.Counter
	FrameworkIDSetFail   tally.Counter
	FrameworkIDClear     tally.Counter
	FrameworkIDClearFail tally.Counter
}

// TaskStatusMetrics tracks task status reads and writes.
type TaskStatusMetrics struct {
	TaskStatusGetAll     tally.Counter
	TaskStatusGetAllFail tally.Counter
	TaskStatusGet        tally.Counter
	TaskStatusGetFail    tally.Counter
	TaskStatusNotFound   tally.Counter
	TaskStatusStore      tally.Counter
	TaskStatusStoreFail  tally.Counter
	TaskStatusDelete     tally.Counter
	TaskStatusDeleteFail tally.Counter
}

// Metrics is the struct containing all the counters that track internal
// state of the storage layer.
type Metrics struct {
	FrameworkStoreMetrics *FrameworkStoreMetrics
	TaskStatusMetrics     *TaskStatusMetrics
}

// NewMetrics returns a new Metrics struct, with all metrics initialized and
// rooted at the given tally.Scope.
func NewMetrics(scope tally.Scope) *Metrics {
	frameworkScope := scope.SubScope("framework")
	frameworkSuccess := frameworkScope.Tagged(map[string]string{"result": "success"})
	frameworkFail := frameworkScope.Tagged(map[string]string{"result": "fail"})

	taskScope := scope.SubScope("task_status")
	taskSuccess := taskScope.Tagged(map[string]string{"result": "success"})
	taskFail := taskScope.Tagged(map[string]string{"result": "fail"})

	return &Metrics{
		FrameworkStoreMetrics: &FrameworkStoreMetrics{
			FrameworkIDGet:       frameworkSuccess.Counter("get"),
			FrameworkIDGetFail:   frameworkFail.Counter("get"),
			FrameworkIDSet:       frameworkSuccess.Counter("set"),
			FrameworkIDSetFail:   frameworkFail.Counter("set"),
			FrameworkIDClear:     frameworkSuccess.Counter("clear"),
			FrameworkIDClearFail: frameworkFail.Counter("clear"),
		},
		TaskStatusMetrics: &TaskStatusMetrics{
			TaskStatusGetAll:     taskSuccess.Counter("get_all"),
			TaskStatusGetAllFail: taskFail.Counter("get_all"),
			TaskStatusGet:        taskSuccess.Counter("get"),
			TaskStatusGetFail:    taskFail.Counter("get"),
			TaskStatusNotFound:   taskScope.Counter("not_found"),
			TaskStatusStore:      taskSuccess.Counter("store"),
			TaskStatusStoreFail:  taskFail.Counter("store"),
			TaskStatusDelete:     taskSuccess.Counter("delete"),
			TaskStatusDeleteFail: taskFail.Counter("delete"),
		},
	}
}
