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
	"encoding/base64"
	"io/ioutil"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
)

const _defaultRequestTimeout = 10 * time.Second

// Caller sends a call to the current master.
type Caller interface {
	Call(ctx context.Context, streamID string, call *Call) error
}

// FrameworkIDStore persists the framework id across restarts.
type FrameworkIDStore interface {
	GetFrameworkID(ctx context.Context, frameworkName string) (string, error)
	SetFrameworkID(ctx context.Context, frameworkName string, frameworkID string) error
	ClearFrameworkID(ctx context.Context, frameworkName string) error
}

// FrameworkInfoProvider can be used to retrieve the stream id and the
// framework id.
type FrameworkInfoProvider interface {
	GetMesosStreamID(ctx context.Context) string
	GetFrameworkID(ctx context.Context) *FrameworkID
}

// SchedulerDriver extends Driver with the state needed to subscribe.
type SchedulerDriver interface {
	Driver
	FrameworkInfoProvider

	// FrameworkName returns the configured framework name.
	FrameworkName() string
	// PrepareSubscribe builds the SUBSCRIBE call, carrying the persisted
	// framework id if there is one.
	PrepareSubscribe(ctx context.Context) *Call
	// PostSubscribe records the stream id returned by the master.
	PostSubscribe(ctx context.Context, mesosStreamID string)
}

// schedulerDriver implements SchedulerDriver.
type schedulerDriver struct {
	sync.RWMutex

	store   FrameworkIDStore
	caller  Caller
	cfg     *FrameworkConfig
	timeout time.Duration
	metrics *Metrics

	frameworkID   *FrameworkID
	mesosStreamID string
}

// NewSchedulerDriver creates the driver for the Mesos scheduler HTTP API.
func NewSchedulerDriver(
	cfg *Config,
	store FrameworkIDStore,
	caller Caller,
	parent tally.Scope,
) SchedulerDriver {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = _defaultRequestTimeout
	}
	return &schedulerDriver{
		store:   store,
		caller:  caller,
		cfg:     cfg.Framework,
		timeout: timeout,
		metrics: NewMetrics(parent.SubScope("driver")),
	}
}

func (d *schedulerDriver) FrameworkName() string {
	return d.cfg.Name
}

// GetFrameworkID returns the cached framework id, loading it from the store
// on first use.
func (d *schedulerDriver) GetFrameworkID(ctx context.Context) *FrameworkID {
	d.RLock()
	id := d.frameworkID
	d.RUnlock()
	if id != nil {
		return id
	}

	value, err := d.store.GetFrameworkID(ctx, d.cfg.Name)
	if err != nil {
		d.metrics.FrameworkIDLoadFail.Inc(1)
		log.WithError(err).
			WithField("framework_name", d.cfg.Name).
			Error("Failed to load framework id from store")
		return nil
	}
	if value == "" {
		log.WithField("framework_name", d.cfg.Name).
			Debug("No framework id stored")
		return nil
	}
	log.WithFields(log.Fields{
		"framework_id":   value,
		"framework_name": d.cfg.Name,
	}).Debug("Loaded framework id")

	d.Lock()
	defer d.Unlock()
	d.frameworkID = &FrameworkID{Value: value}
	return d.frameworkID
}

// GetMesosStreamID returns the stream id of the current subscription.
func (d *schedulerDriver) GetMesosStreamID(ctx context.Context) string {
	d.RLock()
	defer d.RUnlock()
	return d.mesosStreamID
}

func (d *schedulerDriver) PrepareSubscribe(ctx context.Context) *Call {
	hostname := d.cfg.Hostname
	if hostname == "" {
		if h, err := os.Hostname(); err == nil {
			hostname = h
		} else {
			log.WithError(err).Warn("Failed to get host name")
		}
	}

	info := &FrameworkInfo{
		ID:              d.GetFrameworkID(ctx),
		User:            d.cfg.User,
		Name:            d.cfg.Name,
		Roles:           d.cfg.Roles,
		Principal:       d.cfg.Principal,
		Hostname:        hostname,
		FailoverTimeout: d.cfg.FailoverTimeout,
		Checkpoint:      d.cfg.Checkpoint,
		Capabilities:    d.cfg.Capabilities(),
	}
	if info.ID != nil {
		log.WithFields(log.Fields{
			"framework_id": info.ID.GetValue(),
			"timeout":      d.cfg.FailoverTimeout,
		}).Info("Reregister to Mesos master with previous framework ID")
	} else {
		log.WithField("timeout", d.cfg.FailoverTimeout).
			Info("Register to Mesos without framework ID")
	}
	return &Call{
		FrameworkID: info.ID,
		Type:        CallTypeSubscribe,
		Subscribe:   &CallSubscribe{FrameworkInfo: info},
	}
}

func (d *schedulerDriver) PostSubscribe(ctx context.Context, mesosStreamID string) {
	d.Lock()
	defer d.Unlock()
	d.mesosStreamID = mesosStreamID
	log.WithField("stream_id", mesosStreamID).Info("Subscribed to Mesos master")
}

func (d *schedulerDriver) ReconcileTasks(ctx context.Context, statuses []*TaskStatus) error {
	tasks := make([]*CallReconcileTask, 0, len(statuses))
	for _, s := range statuses {
		tasks = append(tasks, &CallReconcileTask{
			TaskID:  s.GetTaskID(),
			AgentID: s.GetAgentID(),
		})
	}
	return d.send(ctx, &Call{
		Type:      CallTypeReconcile,
		Reconcile: &CallReconcile{Tasks: tasks},
	})
}

func (d *schedulerDriver) ReviveOffers(ctx context.Context) error {
	return d.send(ctx, &Call{
		Type:   CallTypeRevive,
		Revive: &CallRevive{Roles: d.cfg.Roles},
	})
}

func (d *schedulerDriver) SuppressOffers(ctx context.Context) error {
	return d.send(ctx, &Call{
		Type:     CallTypeSuppress,
		Suppress: &CallSuppress{Roles: d.cfg.Roles},
	})
}

func (d *schedulerDriver) KillTask(ctx context.Context, taskID *TaskID, agentID *AgentID) error {
	return d.send(ctx, &Call{
		Type: CallTypeKill,
		Kill: &CallKill{TaskID: taskID, AgentID: agentID},
	})
}

func (d *schedulerDriver) DeclineOffers(
	ctx context.Context,
	offerIDs []*OfferID,
	filters *Filters,
) error {
	if len(offerIDs) == 0 {
		return nil
	}
	return d.send(ctx, &Call{
		Type:    CallTypeDecline,
		Decline: &CallDecline{OfferIDs: offerIDs, Filters: filters},
	})
}

func (d *schedulerDriver) AcceptOffers(
	ctx context.Context,
	offerIDs []*OfferID,
	operations []*Operation,
	filters *Filters,
) error {
	if len(offerIDs) == 0 {
		return nil
	}
	return d.send(ctx, &Call{
		Type: CallTypeAccept,
		Accept: &CallAccept{
			OfferIDs:   offerIDs,
			Operations: operations,
			Filters:    filters,
		},
	})
}

func (d *schedulerDriver) Acknowledge(ctx context.Context, status *TaskStatus) error {
	if len(status.UUID) == 0 {
		return nil
	}
	return d.send(ctx, &Call{
		Type: CallTypeAcknowledge,
		Acknowledge: &CallAcknowledge{
			AgentID: status.GetAgentID(),
			TaskID:  status.GetTaskID(),
			UUID:    status.UUID,
		},
	})
}

// Teardown also forgets the cached framework id.
func (d *schedulerDriver) Teardown(ctx context.Context) error {
	if err := d.send(ctx, &Call{Type: CallTypeTeardown}); err != nil {
		return err
	}
	d.Lock()
	defer d.Unlock()
	d.frameworkID = nil
	return nil
}

func (d *schedulerDriver) send(ctx context.Context, call *Call) error {
	call.FrameworkID = d.GetFrameworkID(ctx)
	if call.FrameworkID == nil {
		d.metrics.callFail[call.Type].Inc(1)
		return errors.Errorf("no framework id for %s call", call.Type)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.caller.Call(ctx, d.GetMesosStreamID(ctx), call)
	d.metrics.callLatency[call.Type].Record(time.Since(start))
	if err != nil {
		d.metrics.callFail[call.Type].Inc(1)
		return errors.Wrapf(err, "%s call failed", call.Type)
	}
	d.metrics.callSuccess[call.Type].Inc(1)
	log.WithField("call", call.Type).Debug("Mesos call sent")
	return nil
}

// GetAuthHeader returns the basic auth header for the configured principal,
// or an empty header when no principal or secret is configured.
func GetAuthHeader(config *Config) (http.Header, error) {
	header := http.Header{}
	username := config.Framework.Principal
	if len(username) == 0 {
		log.Info("No Mesos principal is provided to framework")
		return header, nil
	}
	if len(config.SecretFile) == 0 {
		log.Info("No secret file is provided to framework")
		return header, nil
	}

	buf, err := ioutil.ReadFile(config.SecretFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read secret file")
	}
	password := strings.TrimSpace(string(buf))
	basicAuth := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	header.Add("Authorization", "Basic "+basicAuth)

	log.WithFields(log.Fields{
		"secret_file": config.SecretFile,
		"principal":   username,
	}).Info("Mesos Authorization header loaded for principal")
	return header, nil
}
