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

package mhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/framework/mesos"
)

// ErrNoLeader represents no leader is available for outbound.
type ErrNoLeader string

func (e ErrNoLeader) Error() string {
	return fmt.Sprintf("%s has no active leader", string(e))
}

type outboundConfig struct {
	keepAlive       time.Duration
	maxConnsPerHost int
	headers         http.Header
}

var defaultConfig = outboundConfig{
	keepAlive:       30 * time.Second,
	maxConnsPerHost: 16,
}

// OutboundOption customizes the behavior of a Mesos HTTP outbound.
type OutboundOption func(*outboundConfig)

// KeepAlive specifies the keep-alive period for the network connection. If
// zero, keep-alives are disabled.
//
// Defaults to 30 seconds.
func KeepAlive(t time.Duration) OutboundOption {
	return func(c *outboundConfig) {
		c.keepAlive = t
	}
}

// MaxConnectionsPerHost defines the max connections per host.
func MaxConnectionsPerHost(conns int) OutboundOption {
	return func(c *outboundConfig) {
		c.maxConnsPerHost = conns
	}
}

// WithOutboundHeaders adds headers, like authorization, to every call.
func WithOutboundHeaders(h http.Header) OutboundOption {
	return func(c *outboundConfig) {
		c.headers = h
	}
}

// Outbound posts calls to the leading master. It implements mesos.Caller.
type Outbound struct {
	client   *http.Client
	detector mesos.MasterDetector
	headers  http.Header
	metrics  *Metrics
}

// NewOutbound builds a new HTTP outbound.
func NewOutbound(
	parent tally.Scope,
	detector mesos.MasterDetector,
	opts ...OutboundOption,
) *Outbound {
	cfg := defaultConfig
	for _, o := range opts {
		o(&cfg)
	}
	return &Outbound{
		client: &http.Client{Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   MesosHTTPConnTimeout,
				KeepAlive: cfg.keepAlive,
			}).DialContext,
			MaxConnsPerHost: cfg.maxConnsPerHost,
		}},
		detector: detector,
		headers:  cfg.headers,
		metrics:  newMetrics(parent),
	}
}

// Call implements mesos.Caller.
func (o *Outbound) Call(ctx context.Context, streamID string, call *mesos.Call) error {
	hostPort := o.detector.HostPort()
	if len(hostPort) == 0 {
		o.metrics.NoLeaderError.Inc(1)
		return ErrNoLeader("mesos")
	}

	body, err := json.Marshal(call)
	if err != nil {
		return errors.Wrap(err, "failed to marshal call")
	}

	u := url.URL{Scheme: "http", Host: hostPort, Path: ServicePath}
	req, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req = req.WithContext(ctx)
	for k, v := range o.headers {
		for _, vv := range v {
			req.Header.Set(k, vv)
		}
	}
	req.Header.Set("Content-Type", _contentType)
	req.Header.Set("Accept", _contentType)
	if streamID != "" {
		req.Header.Set(StreamIDHeader, streamID)
	}

	start := time.Now()
	resp, err := o.client.Do(req)
	o.metrics.CallLatency.Record(time.Since(start))
	if err != nil {
		o.metrics.CallErrors.Inc(1)
		return errors.Wrapf(err, "failed to POST %s to %s", call.Type, hostPort)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		o.metrics.CallErrors.Inc(1)
		respBody, _ := ioutil.ReadAll(resp.Body)
		return errors.Errorf(
			"%s call rejected by master (status=%d): %s",
			call.Type,
			resp.StatusCode,
			bytes.TrimSpace(respBody))
	}
	// Drain so the connection can be reused.
	ioutil.ReadAll(resp.Body)
	o.metrics.Calls.Inc(1)
	return nil
}
