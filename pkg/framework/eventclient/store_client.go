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
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/revive"
	"github.com/uber/fwcore/pkg/storage"
)

// RecoveryTransient marks work relaunching a task in place.
const RecoveryTransient = "TRANSIENT"

// Endpoint is an HTTP resource served on behalf of a client.
type Endpoint struct {
	Path    string
	Handler http.Handler
}

// StoreClient is a Client that tracks the tasks found in a task status
// store. It owns no reservations and launches nothing: offers are declined
// and statuses of tasks missing from the store are reported unknown.
type StoreClient struct {
	sync.RWMutex

	name  string
	store storage.TaskStatusStore
	// tasks that failed and wait for a relaunch
	recovering map[string]*mesos.TaskStatus
}

// NewStoreClient creates a StoreClient named name.
func NewStoreClient(name string, store storage.TaskStatusStore) *StoreClient {
	return &StoreClient{
		name:       name,
		store:      store,
		recovering: make(map[string]*mesos.TaskStatus),
	}
}

// Registered implements Client.
func (c *StoreClient) Registered(reregistered bool) {
	log.WithFields(log.Fields{
		"client":       c.name,
		"reregistered": reregistered,
	}).Info("Client registered")
}

// Unregistered implements Client.
func (c *StoreClient) Unregistered() {
	log.WithField("client", c.name).Info("Client unregistered")
}

// GetClientStatus implements Client.
func (c *StoreClient) GetClientStatus() ClientStatus {
	return StatusRunning
}

// Offers implements Client.
func (c *StoreClient) Offers(ctx context.Context, offers []*mesos.Offer) OfferResult {
	return ProcessedOffers(nil)
}

// GetUnexpectedResources implements Client.
func (c *StoreClient) GetUnexpectedResources(
	ctx context.Context,
	offers []*mesos.Offer,
) UnexpectedResourcesResult {
	return ProcessedUnexpectedResources(nil)
}

// Status records the status of a known task. A store error is not proof
// that the task is unknown, so the status is then reported processed.
func (c *StoreClient) Status(ctx context.Context, status *mesos.TaskStatus) TaskStatusResult {
	taskID := status.GetTaskID().GetValue()
	logger := log.WithFields(log.Fields{
		"client":  c.name,
		"task_id": taskID,
		"state":   status.GetState(),
	})

	known, err := c.store.GetTaskStatus(ctx, taskID)
	if err != nil {
		logger.WithError(err).Warn("Failed to read task status")
		return ProcessedTaskStatus()
	}
	if known == nil {
		return UnknownTask()
	}

	switch status.GetState() {
	case mesos.TaskFinished, mesos.TaskKilled, mesos.TaskGoneByOperator:
		err = c.store.DeleteTaskStatus(ctx, taskID)
		c.setRecovering(taskID, nil)
	default:
		err = c.store.StoreTaskStatus(ctx, status)
		if status.GetState().IsTerminal() {
			c.setRecovering(taskID, status)
		} else {
			c.setRecovering(taskID, nil)
		}
	}
	if err != nil {
		logger.WithError(err).Warn("Failed to record task status")
	}
	return ProcessedTaskStatus()
}

func (c *StoreClient) setRecovering(taskID string, status *mesos.TaskStatus) {
	c.Lock()
	defer c.Unlock()
	if status == nil {
		delete(c.recovering, taskID)
		return
	}
	c.recovering[taskID] = status
}

// PendingWork returns one item per failed task.
func (c *StoreClient) PendingWork() []revive.WorkItem {
	c.RLock()
	defer c.RUnlock()
	items := make([]revive.WorkItem, 0, len(c.recovering))
	for taskID := range c.recovering {
		items = append(items, revive.WorkItem{
			Name:         taskID,
			RecoveryType: RecoveryTransient,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// HTTPResources serves the pending work as JSON.
func (c *StoreClient) HTTPResources() []interface{} {
	return []interface{}{
		Endpoint{
			Path:    "/v1/" + c.name + "/pending",
			Handler: http.HandlerFunc(c.servePending),
		},
	}
}

func (c *StoreClient) servePending(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.PendingWork()); err != nil {
		log.WithError(err).Warn("Failed to write pending work")
	}
}
