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

package revive

import (
	"github.com/uber-go/tally/v4"
)

// Metrics tracks revive and suppress decisions.
type Metrics struct {
	Revive         tally.Counter
	ReviveFail     tally.Counter
	ReviveThrottle tally.Counter
	Suppress       tally.Counter
	SuppressFail   tally.Counter
	NewWorkItems   tally.Counter
	PendingWork    tally.Gauge

	TokensAcquired tally.Counter
	TokensDenied   tally.Counter
	TokensRefilled tally.Counter
	Tokens         tally.Gauge
}

// NewMetrics returns a new instance of Metrics.
func NewMetrics(scope tally.Scope) *Metrics {
	successScope := scope.Tagged(map[string]string{"result": "success"})
	failScope := scope.Tagged(map[string]string{"result": "fail"})
	bucketScope := scope.SubScope("token_bucket")
	return &Metrics{
		Revive:         successScope.Counter("revive"),
		ReviveFail:     failScope.Counter("revive"),
		ReviveThrottle: scope.Counter("revive_throttled"),
		Suppress:       successScope.Counter("suppress"),
		SuppressFail:   failScope.Counter("suppress"),
		NewWorkItems:   scope.Counter("new_work_items"),
		PendingWork:    scope.Gauge("pending_work_items"),

		TokensAcquired: bucketScope.Counter("acquired"),
		TokensDenied:   bucketScope.Counter("denied"),
		TokensRefilled: bucketScope.Counter("refilled"),
		Tokens:         bucketScope.Gauge("tokens"),
	}
}
