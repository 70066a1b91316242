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
	"time"
)

// Config for Mesos specific configuration.
type Config struct {
	Framework *FrameworkConfig `yaml:"framework" validate:"nonnil"`
	// ZkPath is either zk://host1,host2/path or a static host:port of the
	// master.
	ZkPath   string `yaml:"zk_path" validate:"nonzero"`
	Encoding string `yaml:"encoding"`

	// SecretFile holds the secret of Framework.Principal for basic auth.
	SecretFile string `yaml:"secret_file"`

	// RequestTimeout bounds every outbound call.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// FrameworkConfig for framework specific configuration.
type FrameworkConfig struct {
	User                      string   `yaml:"user" validate:"nonzero"`
	Name                      string   `yaml:"name" validate:"nonzero"`
	Roles                     []string `yaml:"roles"`
	Principal                 string   `yaml:"principal"`
	Hostname                  string   `yaml:"hostname"`
	FailoverTimeout           float64  `yaml:"failover_timeout"`
	Checkpoint                bool     `yaml:"checkpoint"`
	GPUSupported              bool     `yaml:"gpu_supported"`
	TaskKillingStateSupported bool     `yaml:"task_killing_state"`
	PartitionAwareSupported   bool     `yaml:"partition_aware"`
}

// Capabilities returns the capabilities advertised on subscription.
func (c *FrameworkConfig) Capabilities() []*Capability {
	caps := []*Capability{
		{Type: "RESERVATION_REFINEMENT"},
	}
	if len(c.Roles) > 0 {
		caps = append(caps, &Capability{Type: "MULTI_ROLE"})
	}
	if c.GPUSupported {
		caps = append(caps, &Capability{Type: "GPU_RESOURCES"})
	}
	if c.TaskKillingStateSupported {
		caps = append(caps, &Capability{Type: "TASK_KILLING_STATE"})
	}
	if c.PartitionAwareSupported {
		caps = append(caps, &Capability{Type: "PARTITION_AWARE"})
	}
	return caps
}
