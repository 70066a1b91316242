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
	"time"
)

const (
	_defaultCapacity           = 256
	_defaultRefillInterval     = 256 * time.Second
	_defaultMinAcquireInterval = 5 * time.Second
)

// BucketConfig sizes the revive token bucket.
type BucketConfig struct {
	// Capacity is the maximum and initial number of tokens.
	Capacity int `yaml:"capacity"`
	// RefillInterval is the period of the timer adding one token.
	RefillInterval time.Duration `yaml:"refill_interval"`
	// MinAcquireInterval is the minimum spacing between two grants.
	MinAcquireInterval time.Duration `yaml:"min_acquire_interval"`
}

func (c BucketConfig) withDefaults() BucketConfig {
	if c.Capacity <= 0 {
		c.Capacity = _defaultCapacity
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = _defaultRefillInterval
	}
	if c.MinAcquireInterval <= 0 {
		c.MinAcquireInterval = _defaultMinAcquireInterval
	}
	return c
}

// Config for the revive controller.
type Config struct {
	Bucket BucketConfig `yaml:"token_bucket"`
	// DisableSuppression keeps offers flowing when there is no pending work.
	DisableSuppression bool `yaml:"disable_suppression"`
}
