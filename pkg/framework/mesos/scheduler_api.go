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

// EventType is the type of an event received on the subscription stream.
type EventType string

// Event types sent by the master.
const (
	EventTypeSubscribed EventType = "SUBSCRIBED"
	EventTypeOffers     EventType = "OFFERS"
	EventTypeRescind    EventType = "RESCIND"
	EventTypeUpdate     EventType = "UPDATE"
	EventTypeMessage    EventType = "MESSAGE"
	EventTypeFailure    EventType = "FAILURE"
	EventTypeError      EventType = "ERROR"
	EventTypeHeartbeat  EventType = "HEARTBEAT"
)

// Event is one record of the scheduler event stream.
type Event struct {
	Type       EventType        `json:"type"`
	Subscribed *EventSubscribed `json:"subscribed,omitempty"`
	Offers     *EventOffers     `json:"offers,omitempty"`
	Rescind    *EventRescind    `json:"rescind,omitempty"`
	Update     *EventUpdate     `json:"update,omitempty"`
	Message    *EventMessage    `json:"message,omitempty"`
	Failure    *EventFailure    `json:"failure,omitempty"`
	Error      *EventError      `json:"error,omitempty"`
}

// EventSubscribed is sent once the subscription has been accepted.
type EventSubscribed struct {
	FrameworkID              *FrameworkID `json:"framework_id"`
	HeartbeatIntervalSeconds float64      `json:"heartbeat_interval_seconds,omitempty"`
	MasterInfo               *MasterInfo  `json:"master_info,omitempty"`
}

// EventOffers carries new offers.
type EventOffers struct {
	Offers []*Offer `json:"offers,omitempty"`
}

// EventRescind invalidates an outstanding offer.
type EventRescind struct {
	OfferID *OfferID `json:"offer_id"`
}

// EventUpdate carries a task status update.
type EventUpdate struct {
	Status *TaskStatus `json:"status"`
}

// EventMessage carries an opaque executor message.
type EventMessage struct {
	AgentID    *AgentID    `json:"agent_id"`
	ExecutorID *ExecutorID `json:"executor_id"`
	Data       []byte      `json:"data,omitempty"`
}

// EventFailure reports a lost agent, or a lost executor when ExecutorID is
// set.
type EventFailure struct {
	AgentID    *AgentID    `json:"agent_id,omitempty"`
	ExecutorID *ExecutorID `json:"executor_id,omitempty"`
	Status     int32       `json:"status,omitempty"`
}

// EventError reports an unrecoverable master side error.
type EventError struct {
	Message string `json:"message"`
}

// CallType is the type of a call sent to the master.
type CallType string

// Call types sent by this framework.
const (
	CallTypeSubscribe   CallType = "SUBSCRIBE"
	CallTypeTeardown    CallType = "TEARDOWN"
	CallTypeAccept      CallType = "ACCEPT"
	CallTypeDecline     CallType = "DECLINE"
	CallTypeRevive      CallType = "REVIVE"
	CallTypeSuppress    CallType = "SUPPRESS"
	CallTypeKill        CallType = "KILL"
	CallTypeAcknowledge CallType = "ACKNOWLEDGE"
	CallTypeReconcile   CallType = "RECONCILE"
)

// Call is a request sent to the master.
type Call struct {
	FrameworkID *FrameworkID     `json:"framework_id,omitempty"`
	Type        CallType         `json:"type"`
	Subscribe   *CallSubscribe   `json:"subscribe,omitempty"`
	Accept      *CallAccept      `json:"accept,omitempty"`
	Decline     *CallDecline     `json:"decline,omitempty"`
	Revive      *CallRevive      `json:"revive,omitempty"`
	Suppress    *CallSuppress    `json:"suppress,omitempty"`
	Kill        *CallKill        `json:"kill,omitempty"`
	Acknowledge *CallAcknowledge `json:"acknowledge,omitempty"`
	Reconcile   *CallReconcile   `json:"reconcile,omitempty"`
}

// FrameworkInfo describes this framework on subscription.
type FrameworkInfo struct {
	ID              *FrameworkID  `json:"id,omitempty"`
	User            string        `json:"user"`
	Name            string        `json:"name"`
	Roles           []string      `json:"roles,omitempty"`
	Principal       string        `json:"principal,omitempty"`
	Hostname        string        `json:"hostname,omitempty"`
	FailoverTimeout float64       `json:"failover_timeout,omitempty"`
	Checkpoint      bool          `json:"checkpoint"`
	Capabilities    []*Capability `json:"capabilities,omitempty"`
}

// Capability is a framework capability advertised on subscription.
type Capability struct {
	Type string `json:"type"`
}

// CallSubscribe subscribes the framework.
type CallSubscribe struct {
	FrameworkInfo *FrameworkInfo `json:"framework_info"`
}

// Operation is an offer operation carried by an accept call.
type Operation struct {
	Type      string              `json:"type"`
	Reserve   *OperationResources `json:"reserve,omitempty"`
	Unreserve *OperationResources `json:"unreserve,omitempty"`
	Create    *OperationVolumes   `json:"create,omitempty"`
	Destroy   *OperationVolumes   `json:"destroy,omitempty"`
	Launch    *OperationLaunch    `json:"launch,omitempty"`
}

// Offer operation types used by this framework.
const (
	OperationTypeReserve   = "RESERVE"
	OperationTypeUnreserve = "UNRESERVE"
	OperationTypeCreate    = "CREATE"
	OperationTypeDestroy   = "DESTROY"
	OperationTypeLaunch    = "LAUNCH"
)

// OperationResources is the payload of RESERVE and UNRESERVE operations.
type OperationResources struct {
	Resources []*Resource `json:"resources"`
}

// OperationVolumes is the payload of CREATE and DESTROY operations.
type OperationVolumes struct {
	Volumes []*Resource `json:"volumes"`
}

// TaskInfo is the minimal launch description. Building it is left to the
// event client.
type TaskInfo struct {
	Name      string      `json:"name"`
	TaskID    *TaskID     `json:"task_id"`
	AgentID   *AgentID    `json:"agent_id"`
	Resources []*Resource `json:"resources,omitempty"`
	Data      []byte      `json:"data,omitempty"`
}

// OperationLaunch is the payload of a LAUNCH operation.
type OperationLaunch struct {
	TaskInfos []*TaskInfo `json:"task_infos"`
}

// CallAccept accepts offers with operations.
type CallAccept struct {
	OfferIDs   []*OfferID   `json:"offer_ids"`
	Operations []*Operation `json:"operations,omitempty"`
	Filters    *Filters     `json:"filters,omitempty"`
}

// CallDecline declines offers.
type CallDecline struct {
	OfferIDs []*OfferID `json:"offer_ids"`
	Filters  *Filters   `json:"filters,omitempty"`
}

// CallRevive removes all declined-offer filters.
type CallRevive struct {
	Roles []string `json:"roles,omitempty"`
}

// CallSuppress stops offers until the next revive.
type CallSuppress struct {
	Roles []string `json:"roles,omitempty"`
}

// CallKill kills a task.
type CallKill struct {
	TaskID  *TaskID  `json:"task_id"`
	AgentID *AgentID `json:"agent_id,omitempty"`
}

// CallAcknowledge acknowledges a status update.
type CallAcknowledge struct {
	AgentID *AgentID `json:"agent_id"`
	TaskID  *TaskID  `json:"task_id"`
	UUID    []byte   `json:"uuid"`
}

// CallReconcileTask is one task of an explicit reconcile call.
type CallReconcileTask struct {
	TaskID  *TaskID  `json:"task_id"`
	AgentID *AgentID `json:"agent_id,omitempty"`
}

// CallReconcile asks the master for the latest state of the listed tasks,
// or of all tasks when the list is empty.
type CallReconcile struct {
	Tasks []*CallReconcileTask `json:"tasks,omitempty"`
}
