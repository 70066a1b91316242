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
	"time"

	"github.com/uber/fwcore/pkg/framework/eventclient"
	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/reconcile"
	"github.com/uber/fwcore/pkg/framework/revive"
)

const (
	_defaultOfferBufferSize     = 100
	_defaultOfferWait           = 5 * time.Second
	_defaultReadyTimeout        = 600 * time.Second
	_defaultKilledTaskCacheSize = 1024
)

// Config is the framework scheduler configuration.
type Config struct {
	// OfferBufferSize bounds the offers waiting for the processing loop.
	// Offers beyond it are declined short.
	OfferBufferSize int `yaml:"offer_buffer_size"`

	// OfferWait is how long one processing tick waits for offers.
	OfferWait time.Duration `yaml:"offer_wait"`

	// ReadyTimeout is how long AwaitReady waits for MarkReady.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`

	// KilledTaskCacheSize bounds the statuses remembered to avoid killing
	// an unknown task twice for the same update.
	KilledTaskCacheSize int `yaml:"killed_task_cache_size"`

	// Roles the framework subscribed with. Dynamic reservations for other
	// roles are removed from offers. No filtering happens when empty.
	Roles []string `yaml:"roles"`

	Decline   mesos.DeclineDurations        `yaml:"decline"`
	Reconcile reconcile.Config              `yaml:"reconcile"`
	Revive    revive.Config                 `yaml:"revive"`
	Clients   eventclient.MultiplexerConfig `yaml:"clients"`
}

func (c Config) withDefaults() Config {
	if c.OfferBufferSize <= 0 {
		c.OfferBufferSize = _defaultOfferBufferSize
	}
	if c.OfferWait <= 0 {
		c.OfferWait = _defaultOfferWait
	}
	if c.ReadyTimeout <= 0 {
		c.ReadyTimeout = _defaultReadyTimeout
	}
	if c.KilledTaskCacheSize <= 0 {
		c.KilledTaskCacheSize = _defaultKilledTaskCacheSize
	}
	return c
}
