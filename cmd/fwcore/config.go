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

package main

import (
	"github.com/uber/fwcore/pkg/common/health"
	"github.com/uber/fwcore/pkg/common/logging"
	"github.com/uber/fwcore/pkg/common/metrics"
	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/scheduler"
	storage_config "github.com/uber/fwcore/pkg/storage/config"
)

// Config holds all config to run a fwcore framework scheduler.
type Config struct {
	Logging   logging.Config        `yaml:"logging"`
	Metrics   metrics.Config        `yaml:"metrics"`
	Health    health.Config         `yaml:"health"`
	Mesos     mesos.Config          `yaml:"mesos"`
	Framework scheduler.Config      `yaml:"framework"`
	Storage   storage_config.Config `yaml:"storage"`

	// HTTPPort serves health, metrics, logging level and the client
	// resources.
	HTTPPort int `yaml:"http_port" validate:"nonzero"`
}
