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

package eventclient

import (
	"context"

	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/revive"
)

// Client receives the framework events and decides what to do with offers
// and task statuses.
type Client interface {
	// Registered is called after every (re)registration with the master.
	Registered(reregistered bool)
	// Unregistered is called after the framework was torn down following
	// StatusUninstalled.
	Unregistered()
	// GetClientStatus is called once per processing tick.
	GetClientStatus() ClientStatus
	// Offers evaluates a batch of offers, which may be empty.
	Offers(ctx context.Context, offers []*mesos.Offer) OfferResult
	// GetUnexpectedResources returns the resources in the unused offers that
	// the client does not own. Processed resources are released right away.
	GetUnexpectedResources(ctx context.Context, offers []*mesos.Offer) UnexpectedResourcesResult
	// Status handles a task status update.
	Status(ctx context.Context, status *mesos.TaskStatus) TaskStatusResult
	// PendingWork returns the work currently waiting for offers.
	PendingWork() []revive.WorkItem
	// HTTPResources returns the handlers to serve on behalf of the client.
	HTTPResources() []interface{}
}

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/uber/fwcore/pkg/framework/eventclient Client
