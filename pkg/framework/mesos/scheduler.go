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
	"context"
)

// Scheduler receives the callbacks of the master event stream. Callbacks are
// delivered serially from a single goroutine and must not block it for long.
type Scheduler interface {
	// Registered is invoked when the master accepted a subscription and
	// issued frameworkID.
	Registered(ctx context.Context, frameworkID *FrameworkID, masterInfo *MasterInfo)
	// Reregistered is invoked when the subscription was re-established with a
	// newly elected master.
	Reregistered(ctx context.Context, masterInfo *MasterInfo)
	ResourceOffers(ctx context.Context, offers []*Offer)
	OfferRescinded(ctx context.Context, offerID *OfferID)
	StatusUpdate(ctx context.Context, status *TaskStatus)
	FrameworkMessage(ctx context.Context, executorID *ExecutorID, agentID *AgentID, data []byte)
	// Disconnected is invoked when the event stream ended.
	Disconnected(ctx context.Context)
	AgentLost(ctx context.Context, agentID *AgentID)
	ExecutorLost(ctx context.Context, executorID *ExecutorID, agentID *AgentID, status int32)
	Error(ctx context.Context, message string)
}

//go:generate mockgen -destination=mocks/mock_mesos.go -package=mocks github.com/uber/fwcore/pkg/framework/mesos Driver,SchedulerDriver,Caller,FrameworkIDStore,Scheduler

// Driver issues calls to the master on behalf of the framework.
type Driver interface {
	// ReconcileTasks asks the master for the latest state of the given tasks.
	ReconcileTasks(ctx context.Context, statuses []*TaskStatus) error
	ReviveOffers(ctx context.Context) error
	SuppressOffers(ctx context.Context) error
	KillTask(ctx context.Context, taskID *TaskID, agentID *AgentID) error
	DeclineOffers(ctx context.Context, offerIDs []*OfferID, filters *Filters) error
	AcceptOffers(ctx context.Context, offerIDs []*OfferID, operations []*Operation, filters *Filters) error
	// Acknowledge a status update carrying a uuid.
	Acknowledge(ctx context.Context, status *TaskStatus) error
	// Teardown removes the framework from the master. Every task is killed.
	Teardown(ctx context.Context) error
}
