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

package scheduler

import (
	"context"

	"github.com/pborman/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/uber/fwcore/pkg/framework/eventclient"
	"github.com/uber/fwcore/pkg/framework/mesos"
)

// handleStatus runs on the status worker.
func (d *Dispatcher) handleStatus(ctx context.Context, status *mesos.TaskStatus) {
	result := d.client.Status(ctx, status)
	if result.Outcome() == eventclient.TaskUnknown {
		d.metrics.UnknownTasks.Inc(1)
		d.killUnknownTask(ctx, status)
	}
	d.reconciler.Update(status)
	d.acknowledge(ctx, status)
}

// statusKey identifies one delivery of a status. Redeliveries of the same
// update carry the same uuid.
func statusKey(status *mesos.TaskStatus) string {
	key := status.GetTaskID().GetValue() + "/"
	if id := uuid.UUID(status.UUID).String(); id != "" {
		return key + id
	}
	return key + string(status.GetState())
}

// killUnknownTask kills a task the client does not know about, once per
// status update.
func (d *Dispatcher) killUnknownTask(ctx context.Context, status *mesos.TaskStatus) {
	logger := log.WithFields(log.Fields{
		"task_id":  status.GetTaskID().GetValue(),
		"agent_id": status.GetAgentID().GetValue(),
		"state":    status.GetState(),
	})
	if status.GetState().IsTerminal() {
		logger.Debug("Unknown task is already terminal")
		return
	}

	key := statusKey(status)
	if found, _ := d.killed.ContainsOrAdd(key, struct{}{}); found {
		d.metrics.KillsDeduped.Inc(1)
		logger.Debug("Unknown task was already killed for this status")
		return
	}

	err := d.driver.KillTask(ctx, status.GetTaskID(), status.GetAgentID())
	if err != nil {
		d.metrics.KillsFail.Inc(1)
		// Forget the status so that a redelivery retries the kill.
		d.killed.Remove(key)
		logger.WithError(err).Warn("Failed to kill unknown task")
		return
	}
	d.metrics.Kills.Inc(1)
	logger.Info("Killed unknown task")
}

func (d *Dispatcher) acknowledge(ctx context.Context, status *mesos.TaskStatus) {
	if len(status.UUID) == 0 {
		return
	}
	logger := log.WithFields(log.Fields{
		"task_id": status.GetTaskID().GetValue(),
		"uuid":    uuid.UUID(status.UUID).String(),
	})
	if err := d.driver.Acknowledge(ctx, status); err != nil {
		d.metrics.AcknowledgeFail.Inc(1)
		logger.WithError(err).Warn("Failed to acknowledge task status")
		return
	}
	d.metrics.Acknowledge.Inc(1)
	logger.Debug("Acknowledged task status")
}
