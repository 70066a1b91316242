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

// The types in this file mirror the JSON encoding of the Mesos v1
// scheduler API (mesos/v1/mesos.proto and mesos/v1/scheduler/scheduler.proto).
// Only the fields this framework reads or writes are declared.

// FrameworkID identifies a registered framework.
type FrameworkID struct {
	Value string `json:"value"`
}

// GetValue returns the framework id value.
func (f *FrameworkID) GetValue() string {
	if f == nil {
		return ""
	}
	return f.Value
}

// OfferID identifies an offer.
type OfferID struct {
	Value string `json:"value"`
}

// GetValue returns the offer id value.
func (o *OfferID) GetValue() string {
	if o == nil {
		return ""
	}
	return o.Value
}

// AgentID identifies an agent.
type AgentID struct {
	Value string `json:"value"`
}

// GetValue returns the agent id value.
func (a *AgentID) GetValue() string {
	if a == nil {
		return ""
	}
	return a.Value
}

// TaskID identifies a task.
type TaskID struct {
	Value string `json:"value"`
}

// GetValue returns the task id value.
func (t *TaskID) GetValue() string {
	if t == nil {
		return ""
	}
	return t.Value
}

// ExecutorID identifies an executor.
type ExecutorID struct {
	Value string `json:"value"`
}

// GetValue returns the executor id value.
func (e *ExecutorID) GetValue() string {
	if e == nil {
		return ""
	}
	return e.Value
}

// Address is the network address of a master.
type Address struct {
	Hostname string `json:"hostname,omitempty"`
	IP       string `json:"ip,omitempty"`
	Port     int32  `json:"port"`
}

// MasterInfo describes the elected master.
type MasterInfo struct {
	ID       string   `json:"id"`
	IP       uint32   `json:"ip"`
	Port     uint32   `json:"port"`
	Hostname string   `json:"hostname,omitempty"`
	Version  string   `json:"version,omitempty"`
	Address  *Address `json:"address,omitempty"`
}

// GetAddress returns the master address, nil-safe.
func (m *MasterInfo) GetAddress() *Address {
	if m == nil {
		return nil
	}
	return m.Address
}

// Label is a key/value pair attached to reservations.
type Label struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Labels is a list of Label.
type Labels struct {
	Labels []*Label `json:"labels,omitempty"`
}

// ReservationInfo describes one level of a resource's reservation stack.
type ReservationInfo struct {
	Type      string  `json:"type,omitempty"`
	Role      string  `json:"role,omitempty"`
	Principal string  `json:"principal,omitempty"`
	Labels    *Labels `json:"labels,omitempty"`
}

// Scalar is a scalar resource value.
type Scalar struct {
	Value float64 `json:"value"`
}

// Persistence identifies a persistent volume.
type Persistence struct {
	ID        string `json:"id"`
	Principal string `json:"principal,omitempty"`
}

// DiskInfo carries disk specific resource information.
type DiskInfo struct {
	Persistence *Persistence `json:"persistence,omitempty"`
}

// Resource is a single resource carried by an offer.
type Resource struct {
	Name         string             `json:"name"`
	Type         string             `json:"type"`
	Scalar       *Scalar            `json:"scalar,omitempty"`
	Role         string             `json:"role,omitempty"`
	Reservations []*ReservationInfo `json:"reservations,omitempty"`
	Disk         *DiskInfo          `json:"disk,omitempty"`
}

// Reservation labels set by this framework.
const (
	// resourceIDLabel carries the id assigned to a reserved resource.
	resourceIDLabel = "resource_id"
	// namespaceLabel carries the name of the service owning the resource.
	namespaceLabel = "namespace"
)

func (r *Resource) topLabel(key string) string {
	if r == nil || len(r.Reservations) == 0 {
		return ""
	}
	top := r.Reservations[len(r.Reservations)-1]
	if top.Labels == nil {
		return ""
	}
	for _, l := range top.Labels.Labels {
		if l.Key == key {
			return l.Value
		}
	}
	return ""
}

// ResourceID returns the framework assigned reservation id of the resource,
// or an empty string for unreserved resources.
func (r *Resource) ResourceID() string {
	return r.topLabel(resourceIDLabel)
}

// Namespace returns the service the resource was reserved for, or an empty
// string if the reservation carries no namespace.
func (r *Resource) Namespace() string {
	return r.topLabel(namespaceLabel)
}

// IsReserved returns whether the resource carries a reservation.
func (r *Resource) IsReserved() bool {
	return r != nil && len(r.Reservations) > 0
}

// HasPersistentVolume returns whether the resource is a persistent volume.
func (r *Resource) HasPersistentVolume() bool {
	return r != nil && r.Disk != nil && r.Disk.Persistence != nil
}

// Offer is a time bounded grant of resources on one agent.
type Offer struct {
	ID          *OfferID     `json:"id"`
	FrameworkID *FrameworkID `json:"framework_id"`
	AgentID     *AgentID     `json:"agent_id"`
	Hostname    string       `json:"hostname"`
	Resources   []*Resource  `json:"resources,omitempty"`
}

// GetID returns the offer id, nil-safe.
func (o *Offer) GetID() *OfferID {
	if o == nil {
		return nil
	}
	return o.ID
}

// GetAgentID returns the agent id, nil-safe.
func (o *Offer) GetAgentID() *AgentID {
	if o == nil {
		return nil
	}
	return o.AgentID
}

// TaskState is the Mesos state of a task.
type TaskState string

// Task states, as named by the Mesos API.
const (
	TaskStaging        TaskState = "TASK_STAGING"
	TaskStarting       TaskState = "TASK_STARTING"
	TaskRunning        TaskState = "TASK_RUNNING"
	TaskKilling        TaskState = "TASK_KILLING"
	TaskFinished       TaskState = "TASK_FINISHED"
	TaskFailed         TaskState = "TASK_FAILED"
	TaskKilled         TaskState = "TASK_KILLED"
	TaskError          TaskState = "TASK_ERROR"
	TaskLost           TaskState = "TASK_LOST"
	TaskDropped        TaskState = "TASK_DROPPED"
	TaskUnreachable    TaskState = "TASK_UNREACHABLE"
	TaskGone           TaskState = "TASK_GONE"
	TaskGoneByOperator TaskState = "TASK_GONE_BY_OPERATOR"
	TaskUnknown        TaskState = "TASK_UNKNOWN"
)

// IsTerminal returns whether no further status updates are expected for a
// task in this state.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskFinished, TaskFailed, TaskKilled, TaskError, TaskLost,
		TaskDropped, TaskGone, TaskGoneByOperator:
		return true
	}
	return false
}

// TaskStatus is a status update for one task.
type TaskStatus struct {
	TaskID     *TaskID     `json:"task_id"`
	State      TaskState   `json:"state"`
	Message    string      `json:"message,omitempty"`
	Source     string      `json:"source,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	AgentID    *AgentID    `json:"agent_id,omitempty"`
	ExecutorID *ExecutorID `json:"executor_id,omitempty"`
	Timestamp  float64     `json:"timestamp,omitempty"`
	// UUID is set for updates that must be acknowledged.
	UUID []byte `json:"uuid,omitempty"`
}

// GetTaskID returns the task id, nil-safe.
func (s *TaskStatus) GetTaskID() *TaskID {
	if s == nil {
		return nil
	}
	return s.TaskID
}

// GetAgentID returns the agent id, nil-safe.
func (s *TaskStatus) GetAgentID() *AgentID {
	if s == nil {
		return nil
	}
	return s.AgentID
}

// GetState returns the task state, nil-safe.
func (s *TaskStatus) GetState() TaskState {
	if s == nil {
		return ""
	}
	return s.State
}

// Filters are attached to decline and accept calls.
type Filters struct {
	RefuseSeconds float64 `json:"refuse_seconds"`
}
