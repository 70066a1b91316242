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

package metrics

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cactus/go-statsd-client/v5/statsd"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	tallyprom "github.com/uber-go/tally/v4/prometheus"
	tallystatsd "github.com/uber-go/tally/v4/statsd"
)

const (
	// HealthPath serves the liveness probe.
	HealthPath = "/health"
	// MetricsPath serves prometheus exposition when enabled.
	MetricsPath = "/metrics"

	_defaultFlushInterval = time.Second
)

// Config contains the metrics configuration.
type Config struct {
	Prometheus *PrometheusConfig `yaml:"prometheus"`
	Statsd     *StatsdConfig     `yaml:"statsd"`

	// FlushInterval is how often the root scope reports.
	FlushInterval time.Duration `yaml:"flush_interval"`

	// RuntimeMetrics enables the go runtime collector.
	RuntimeMetrics *RuntimeConfig `yaml:"runtime_metrics"`
}

// PrometheusConfig enables the prometheus reporter.
type PrometheusConfig struct {
	Enable bool `yaml:"enable"`
}

// StatsdConfig enables the statsd reporter.
type StatsdConfig struct {
	Enable   bool   `yaml:"enable"`
	Endpoint string `yaml:"endpoint"`
}

// RuntimeConfig configures the runtime collector.
type RuntimeConfig struct {
	Enabled         bool          `yaml:"enabled"`
	CollectInterval time.Duration `yaml:"collect_interval"`
}

// ReadyFunc reports whether the process is ready to serve.
type ReadyFunc func() bool

// InitMetricScope initializes a root scope and its closer, with a http
// server mux carrying the health endpoint and, when prometheus is enabled,
// the metrics exposition endpoint.
func InitMetricScope(
	cfg *Config,
	rootMetricScope string,
	ready ReadyFunc,
) (tally.Scope, io.Closer, *http.ServeMux, error) {
	mux := http.NewServeMux()
	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = _defaultFlushInterval
	}

	opts := tally.ScopeOptions{
		Prefix:    rootMetricScope,
		Tags:      map[string]string{},
		Separator: ".",
	}

	switch {
	case cfg.Prometheus != nil && cfg.Prometheus.Enable:
		// tally panics if scope name contains "-", hence force convert to "_"
		opts.Prefix = strings.Replace(rootMetricScope, "-", "_", -1)
		opts.Separator = tallyprom.DefaultSeparator
		opts.SanitizeOptions = &tallyprom.DefaultSanitizerOpts
		reporter := tallyprom.NewReporter(tallyprom.Options{})
		opts.CachedReporter = reporter
		log.WithField("path", MetricsPath).Info("Setting up prometheus metrics handler")
		mux.Handle(MetricsPath, reporter.HTTPHandler())
	case cfg.Statsd != nil && cfg.Statsd.Enable:
		log.WithField("endpoint", cfg.Statsd.Endpoint).
			Info("Metrics configured with statsd endpoint")
		c, err := statsd.NewClientWithConfig(&statsd.ClientConfig{
			Address: cfg.Statsd.Endpoint,
		})
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "unable to setup statsd client")
		}
		opts.Reporter = tallystatsd.NewReporter(c, tallystatsd.Options{})
	default:
		log.Warn("No metrics backends configured, using a noop reporter")
		opts.Reporter = tally.NullStatsReporter
	}

	mux.HandleFunc(HealthPath, healthHandler(ready))

	scope, closer := tally.NewRootScope(opts, interval)
	return scope, closer, mux, nil
}

func healthHandler(ready ReadyFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if ready == nil || ready() {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `\(★ω★)/`)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, `(╥﹏╥)`)
	}
}
