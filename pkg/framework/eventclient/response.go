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
	"github.com/uber/fwcore/pkg/framework/mesos"
)

// ClientStatus tells the dispatcher what a client needs.
type ClientStatus int

const (
	// StatusReserving means the client is growing its footprint.
	StatusReserving ClientStatus = iota + 1
	// StatusRunning means the client launches into its existing footprint.
	StatusRunning
	// StatusFinished means the client is done and should be uninstalled.
	StatusFinished
	// StatusUninstalled means the client released everything and can be
	// torn down.
	StatusUninstalled
)

func (s ClientStatus) String() string {
	switch s {
	case StatusReserving:
		return "RESERVING"
	case StatusRunning:
		return "RUNNING"
	case StatusFinished:
		return "FINISHED"
	case StatusUninstalled:
		return "UNINSTALLED"
	}
	return "UNKNOWN"
}

// OfferRecommendation is an operation to apply to one offer.
type OfferRecommendation struct {
	Offer     *mesos.Offer
	Operation *mesos.Operation
}

// OfferResources pairs an offer with some of its resources.
type OfferResources struct {
	Offer     *mesos.Offer
	Resources []*mesos.Resource
}

// OfferOutcome is the result tag of an OfferResult.
type OfferOutcome int

const (
	// OfferNotReady means the client could not evaluate the offers, unused
	// offers are declined for a short time.
	OfferNotReady OfferOutcome = iota + 1
	// OfferProcessed means unused offers are of no interest and are
	// declined for a long time.
	OfferProcessed
)

func (o OfferOutcome) String() string {
	if o == OfferNotReady {
		return "NOT_READY"
	}
	return "PROCESSED"
}

// OfferResult is the answer to a batch of offers. Offers not referenced by
// a recommendation are unused.
type OfferResult struct {
	outcome         OfferOutcome
	recommendations []OfferRecommendation
}

// NotReadyOffers builds a NOT_READY OfferResult.
func NotReadyOffers(recommendations []OfferRecommendation) OfferResult {
	return OfferResult{
		outcome:         OfferNotReady,
		recommendations: copyRecommendations(recommendations),
	}
}

// ProcessedOffers builds a PROCESSED OfferResult.
func ProcessedOffers(recommendations []OfferRecommendation) OfferResult {
	return OfferResult{
		outcome:         OfferProcessed,
		recommendations: copyRecommendations(recommendations),
	}
}

// Outcome returns the result tag.
func (r OfferResult) Outcome() OfferOutcome { return r.outcome }

// Recommendations returns the operations to apply. The slice must not be
// modified.
func (r OfferResult) Recommendations() []OfferRecommendation { return r.recommendations }

func copyRecommendations(recs []OfferRecommendation) []OfferRecommendation {
	if len(recs) == 0 {
		return nil
	}
	return append([]OfferRecommendation(nil), recs...)
}

// UnexpectedResourcesOutcome is the result tag of an
// UnexpectedResourcesResult.
type UnexpectedResourcesOutcome int

const (
	// UnexpectedResourcesFailed means the resources must not be released
	// yet, unused offers are declined for a short time.
	UnexpectedResourcesFailed UnexpectedResourcesOutcome = iota + 1
	// UnexpectedResourcesProcessed means the resources can be released.
	UnexpectedResourcesProcessed
)

func (o UnexpectedResourcesOutcome) String() string {
	if o == UnexpectedResourcesFailed {
		return "FAILED"
	}
	return "PROCESSED"
}

// UnexpectedResourcesResult lists resources a client does not recognize as
// its own.
type UnexpectedResourcesResult struct {
	outcome   UnexpectedResourcesOutcome
	resources []OfferResources
}

// FailedUnexpectedResources builds a FAILED UnexpectedResourcesResult.
func FailedUnexpectedResources(resources []OfferResources) UnexpectedResourcesResult {
	return UnexpectedResourcesResult{
		outcome:   UnexpectedResourcesFailed,
		resources: copyOfferResources(resources),
	}
}

// ProcessedUnexpectedResources builds a PROCESSED UnexpectedResourcesResult.
func ProcessedUnexpectedResources(resources []OfferResources) UnexpectedResourcesResult {
	return UnexpectedResourcesResult{
		outcome:   UnexpectedResourcesProcessed,
		resources: copyOfferResources(resources),
	}
}

// Outcome returns the result tag.
func (r UnexpectedResourcesResult) Outcome() UnexpectedResourcesOutcome { return r.outcome }

// OfferResources returns the unexpected resources grouped by offer. The
// slice must not be modified.
func (r UnexpectedResourcesResult) OfferResources() []OfferResources { return r.resources }

func copyOfferResources(resources []OfferResources) []OfferResources {
	if len(resources) == 0 {
		return nil
	}
	return append([]OfferResources(nil), resources...)
}

// TaskStatusOutcome is the result tag of a TaskStatusResult.
type TaskStatusOutcome int

const (
	// TaskUnknown means no client owns the task, the dispatcher kills it.
	TaskUnknown TaskStatusOutcome = iota + 1
	// TaskStatusProcessed means a client handled the status.
	TaskStatusProcessed
)

func (o TaskStatusOutcome) String() string {
	if o == TaskUnknown {
		return "UNKNOWN_TASK"
	}
	return "PROCESSED"
}

// TaskStatusResult is the answer to a task status update.
type TaskStatusResult struct {
	outcome TaskStatusOutcome
}

// UnknownTask builds an UNKNOWN_TASK TaskStatusResult.
func UnknownTask() TaskStatusResult {
	return TaskStatusResult{outcome: TaskUnknown}
}

// ProcessedTaskStatus builds a PROCESSED TaskStatusResult.
func ProcessedTaskStatus() TaskStatusResult {
	return TaskStatusResult{outcome: TaskStatusProcessed}
}

// Outcome returns the result tag.
func (r TaskStatusResult) Outcome() TaskStatusOutcome { return r.outcome }

// UnusedOffers returns the offers not referenced by any recommendation, in
// their original order. The input slice is left untouched.
func UnusedOffers(offers []*mesos.Offer, recommendations []OfferRecommendation) []*mesos.Offer {
	used := make(map[string]struct{}, len(recommendations))
	for _, rec := range recommendations {
		used[rec.Offer.GetID().GetValue()] = struct{}{}
	}
	unused := make([]*mesos.Offer, 0, len(offers))
	for _, offer := range offers {
		if _, ok := used[offer.GetID().GetValue()]; !ok {
			unused = append(unused, offer)
		}
	}
	return unused
}
