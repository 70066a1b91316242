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

package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/storage"
)

// Store keeps the framework id and task statuses in process memory. State
// does not survive a restart, so it fits tests and throwaway frameworks.
type Store struct {
	sync.RWMutex

	frameworkIDs map[string]string
	statuses     map[string]*mesos.TaskStatus

	metrics *storage.Metrics
}

// NewStore creates an empty in-memory store.
func NewStore(scope tally.Scope) *Store {
	return &Store{
		frameworkIDs: make(map[string]string),
		statuses:     make(map[string]*mesos.TaskStatus),
		metrics:      storage.NewMetrics(scope.SubScope("memstore")),
	}
}

// GetFrameworkID returns the stored framework id, or "".
func (s *Store) GetFrameworkID(ctx context.Context, frameworkName string) (string, error) {
	s.RLock()
	defer s.RUnlock()
	s.metrics.FrameworkStoreMetrics.FrameworkIDGet.Inc(1)
	return s.frameworkIDs[frameworkName], nil
}

// SetFrameworkID stores the framework id.
func (s *Store) SetFrameworkID(ctx context.Context, frameworkName string, frameworkID string) error {
	s.Lock()
	defer s.Unlock()
	s.frameworkIDs[frameworkName] = frameworkID
	s.metrics.FrameworkStoreMetrics.FrameworkIDSet.Inc(1)
	return nil
}

// ClearFrameworkID removes the framework id.
func (s *Store) ClearFrameworkID(ctx context.Context, frameworkName string) error {
	s.Lock()
	defer s.Unlock()
	delete(s.frameworkIDs, frameworkName)
	s.metrics.FrameworkStoreMetrics.FrameworkIDClear.Inc(1)
	return nil
}

// GetTaskStatuses returns all statuses sorted by task id.
func (s *Store) GetTaskStatuses(ctx context.Context) ([]*mesos.TaskStatus, error) {
	s.RLock()
	defer s.RUnlock()
	result := make([]*mesos.TaskStatus, 0, len(s.statuses))
	for _, status := range s.statuses {
		result = append(result, status)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].GetTaskID().GetValue() < result[j].GetTaskID().GetValue()
	})
	s.metrics.TaskStatusMetrics.TaskStatusGetAll.Inc(1)
	return result, nil
}

// GetTaskStatus returns the status of a task, or nil if the task is unknown.
func (s *Store) GetTaskStatus(ctx context.Context, taskID string) (*mesos.TaskStatus, error) {
	s.RLock()
	defer s.RUnlock()
	status, ok := s.statuses[taskID]
	if !ok {
		s.metrics.TaskStatusMetrics.TaskStatusNotFound.Inc(1)
		return nil, nil
	}
	s.metrics.TaskStatusMetrics.TaskStatusGet.Inc(1)
	return status, nil
}

// StoreTaskStatus replaces the status of the task.
func (s *Store) StoreTaskStatus(ctx context.Context, status *mesos.TaskStatus) error {
	taskID := status.GetTaskID().GetValue()
	if taskID == "" {
		s.metrics.TaskStatusMetrics.TaskStatusStoreFail.Inc(1)
		return storage.ErrMissingTaskID
	}
	s.Lock()
	defer s.Unlock()
	s.statuses[taskID] = status
	s.metrics.TaskStatusMetrics.TaskStatusStore.Inc(1)
	return nil
}

// DeleteTaskStatus forgets the task. Deleting an unknown task is a no-op.
func (s *Store) DeleteTaskStatus(ctx context.Context, taskID string) error {
	s.Lock()
	defer s.Unlock()
	delete(s.statuses, taskID)
	s.metrics.TaskStatusMetrics.TaskStatusDelete.Inc(1)
	return nil
}
