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

package reconcile

import (
	"time"
)

const (
	_defaultBaseBackoff = 4 * time.Second
	_defaultMultiplier  = 2
	_defaultMaxBackoff  = 30 * time.Second
)

// Config controls the explicit reconciliation backoff.
type Config struct {
	// BaseBackoff is the wait after the first reconcile request.
	BaseBackoff time.Duration `yaml:"base_backoff"`
	// Multiplier grows the wait after each request.
	Multiplier float64 `yaml:"multiplier"`
	// MaxBackoff caps the wait between two requests.
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

func (c Config) withDefaults() Config {
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = _defaultBaseBackoff
	}
	if c.Multiplier < 1 {
		c.Multiplier = _defaultMultiplier
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = _defaultMaxBackoff
	}
	return c
}
