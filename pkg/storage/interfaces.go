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
	"context"

	"github.com/pkg/errors"

	"github.com/uber/fwcore/pkg/framework/mesos"
)

// ErrMissingTaskID is returned when storing a status without a task id.
var ErrMissingTaskID = errors.New("task status has no task id")

// FrameworkInfoStore is the interface to store the framework id issued by
// the master.
type FrameworkInfoStore interface {
	// GetFrameworkID returns "" when no id is stored.
	GetFrameworkID(ctx context.Context, frameworkName string) (string, error)
	SetFrameworkID(ctx context.Context, frameworkName string, frameworkID string) error
	ClearFrameworkID(ctx context.Context, frameworkName string) error
}

// TaskStatusStore is the interface to store the last known status of each
// task.
type TaskStatusStore interface {
	GetTaskStatuses(ctx context.Context) ([]*mesos.TaskStatus, error)
	// GetTaskStatus returns nil without error for an unknown task.
	GetTaskStatus(ctx context.Context, taskID string) (*mesos.TaskStatus, error)
	StoreTaskStatus(ctx context.Context, status *mesos.TaskStatus) error
	DeleteTaskStatus(ctx context.Context, taskID string) error
}

// Store combines every store of the framework.
type Store interface {
	FrameworkInfoStore
	TaskStatusStore
}

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks github.com/uber/fwcore/pkg/storage FrameworkInfoStore,TaskStatusStore,Store
