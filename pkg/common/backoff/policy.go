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

package backoff

import (
	"time"
)

// Policy computes successive delays.
type Policy interface {
	// Initial returns the first delay.
	Initial() time.Duration
	// Next returns the delay that follows current.
	Next(current time.Duration) time.Duration
}

// NewExponentialPolicy returns a policy starting at base, multiplying by
// multiplier on every step and never exceeding max.
func NewExponentialPolicy(
	base time.Duration,
	multiplier float64,
	max time.Duration,
) Policy {
	if multiplier < 1 {
		multiplier = 1
	}
	if max < base {
		max = base
	}
	return &exponentialPolicy{
		base:       base,
		multiplier: multiplier,
		max:        max,
	}
}

type exponentialPolicy struct {
	base       time.Duration
	multiplier float64
	max        time.Duration
}

func (p *exponentialPolicy) Initial() time.Duration {
	return p.base
}

func (p *exponentialPolicy) Next(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * p.multiplier)
	// Overflow shows up as a non-increasing value.
	if next > p.max || next < current {
		return p.max
	}
	return next
}

// Retrier walks a Policy one attempt at a time.
type Retrier interface {
	NextBackOff() time.Duration
	Reset()
}

// NewRetrier is used for creating a new instance of Retrier.
func NewRetrier(policy Policy) Retrier {
	return &retrierImpl{policy: policy}
}

type retrierImpl struct {
	policy  Policy
	current time.Duration
}

// NextBackOff returns the next delay interval.
func (r *retrierImpl) NextBackOff() time.Duration {
	if r.current == 0 {
		r.current = r.policy.Initial()
	} else {
		r.current = r.policy.Next(r.current)
	}
	return r.current
}

// Reset starts again from the initial delay.
func (r *retrierImpl) Reset() {
	r.current = 0
}
