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
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"

	"github.com/uber/fwcore/pkg/framework/mesos"
)

const (
	// MesosHTTPConnTimeout is the mesos connection timeout
	MesosHTTPConnTimeout = 30 * time.Second

	// MesosHTTPConnKeepAlive is the mesos connection keep alive
	MesosHTTPConnKeepAlive = 30 * time.Second

	// StreamIDHeader carries the id of a subscription.
	StreamIDHeader = "Mesos-Stream-Id"

	// ServicePath is the path of the scheduler API on the master.
	ServicePath = "/api/v1/scheduler"

	_contentType = "application/json"

	_leaderPollInterval = 100 * time.Millisecond

	// The stream is considered dead after this many heartbeats are missed.
	_missedHeartbeats = 5
)

// Subscriber builds the SUBSCRIBE call and records its result.
type Subscriber interface {
	PrepareSubscribe(ctx context.Context) *mesos.Call
	PostSubscribe(ctx context.Context, mesosStreamID string)
}

// Inbound subscribes to the leading master and dispatches the event stream
// to a mesos.Scheduler.
type Inbound interface {
	// Start subscribes and starts dispatching. It returns once the
	// subscription was accepted.
	Start(ctx context.Context) error
	// Stop closes the stream without reporting a disconnect.
	Stop()
	IsRunning() bool
}

// InboundOption is an option for a Mesos HTTP inbound.
type InboundOption func(*inbound)

// WithInboundHeaders adds headers, like authorization, to the subscription.
func WithInboundHeaders(h http.Header) InboundOption {
	return func(i *inbound) { i.defaultHeaders = h }
}

// WithInboundClient overrides the http client used for the stream.
func WithInboundClient(c *http.Client) InboundOption {
	return func(i *inbound) { i.client = c }
}

// NewInbound builds a new Mesos HTTP inbound.
func NewInbound(
	parent tally.Scope,
	detector mesos.MasterDetector,
	subscriber Subscriber,
	scheduler mesos.Scheduler,
	opts ...InboundOption,
) Inbound {
	i := &inbound{
		detector:   detector,
		subscriber: subscriber,
		scheduler:  scheduler,
		metrics:    newMetrics(parent),
		client: &http.Client{Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   MesosHTTPConnTimeout,
				KeepAlive: MesosHTTPConnKeepAlive,
			}).DialContext,
		}},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type inbound struct {
	sync.Mutex

	detector       mesos.MasterDetector
	subscriber     Subscriber
	scheduler      mesos.Scheduler
	metrics        *Metrics
	client         *http.Client
	defaultHeaders http.Header

	hostPort string
	running  atomic.Bool
	stopped  atomic.Bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func (i *inbound) Start(ctx context.Context) error {
	i.Lock()
	defer i.Unlock()

	if i.running.Load() {
		return errors.New("inbound already running")
	}

	hostPort, err := i.waitForLeader(ctx)
	if err != nil {
		i.metrics.SubscribeFail.Inc(1)
		return err
	}
	i.hostPort = hostPort

	// The stream outlives ctx, which only bounds the subscription.
	streamCtx, cancel := context.WithCancel(context.Background())
	resp, err := i.subscribe(ctx, streamCtx, cancel, hostPort)
	if err != nil {
		cancel()
		i.metrics.SubscribeFail.Inc(1)
		return err
	}
	i.metrics.Subscribe.Inc(1)

	i.stopped.Store(false)
	i.running.Store(true)
	i.metrics.Running.Update(1)
	i.cancel = cancel
	i.done = make(chan struct{})
	go i.loop(streamCtx, cancel, resp.Body, i.done)
	return nil
}

func (i *inbound) Stop() {
	i.Lock()
	defer i.Unlock()

	if !i.running.Load() {
		return
	}
	log.WithField("hostport", i.hostPort).Info("mInbound stopping")
	i.stopped.Store(true)
	i.cancel()
	<-i.done
	log.Info("mInbound stopped")
}

func (i *inbound) IsRunning() bool {
	return i.running.Load()
}

func (i *inbound) waitForLeader(ctx context.Context) (string, error) {
	for {
		if hostPort := i.detector.HostPort(); hostPort != "" {
			return hostPort, nil
		}
		select {
		case <-time.After(_leaderPollInterval):
		case <-ctx.Done():
			i.metrics.NoLeaderError.Inc(1)
			return "", errors.Wrap(ctx.Err(), "no Mesos leader detected")
		}
	}
}

func (i *inbound) subscribe(
	ctx context.Context,
	streamCtx context.Context,
	cancel context.CancelFunc,
	hostPort string,
) (*http.Response, error) {
	body, err := json.Marshal(i.subscriber.PrepareSubscribe(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal subscribe call")
	}

	u := url.URL{Scheme: "http", Host: hostPort, Path: ServicePath}
	req, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build subscribe request")
	}
	req = req.WithContext(streamCtx)
	for k, v := range i.defaultHeaders {
		for _, vv := range v {
			req.Header.Set(k, vv)
		}
	}
	req.Header.Set("Content-Type", _contentType)
	req.Header.Set("Accept", _contentType)

	// Abort the request if ctx ends before the response headers arrive.
	stopAbort := context.AfterFunc(ctx, cancel)
	resp, err := i.client.Do(req)
	if !stopAbort() {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, errors.Wrap(ctx.Err(), "subscribe timed out")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to POST subscribe request to master")
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		respBody, _ := ioutil.ReadAll(resp.Body)
		return nil, errors.Errorf(
			"failed to subscribe to master (status=%d): %s",
			resp.StatusCode,
			respBody)
	}

	streamID := resp.Header.Get(StreamIDHeader)
	if streamID == "" {
		resp.Body.Close()
		return nil, errors.New("subscribe response carries no stream id")
	}
	i.subscriber.PostSubscribe(ctx, streamID)
	log.WithFields(log.Fields{
		"hostport":  hostPort,
		"stream_id": streamID,
	}).Info("Subscribed to Mesos master")
	return resp, nil
}

func (i *inbound) loop(
	ctx context.Context,
	cancel context.CancelFunc,
	body io.ReadCloser,
	done chan<- struct{},
) {
	defer close(done)
	defer cancel()
	defer body.Close()

	err := i.readEvents(ctx, cancel, body)

	i.running.Store(false)
	i.metrics.Running.Update(0)
	if i.stopped.Load() {
		return
	}
	log.WithError(err).
		WithField("hostport", i.hostPort).
		Error("Mesos event stream ended")
	i.metrics.Disconnects.Inc(1)
	i.scheduler.Disconnected(ctx)
}

func (i *inbound) readEvents(
	ctx context.Context,
	cancel context.CancelFunc,
	body io.Reader,
) error {
	var watchdog *time.Timer
	var heartbeatTimeout time.Duration
	defer func() {
		if watchdog != nil {
			watchdog.Stop()
		}
	}()

	reader := newRecordReader(body)
	for {
		frame, err := reader.Next()
		if err != nil {
			switch errors.Cause(err) {
			case errFrameLength, errFrameSize:
				i.metrics.FrameLengthError.Inc(1)
			case io.ErrUnexpectedEOF:
				i.metrics.LineLengthError.Inc(1)
			default:
				i.metrics.ReadLineError.Inc(1)
			}
			return err
		}
		i.metrics.Frames.Inc(1)
		if watchdog != nil {
			watchdog.Reset(heartbeatTimeout)
		}

		var event mesos.Event
		if err := json.Unmarshal(frame, &event); err != nil {
			i.metrics.RecordIOError.Inc(1)
			return errors.Wrap(err, "failed to decode event")
		}

		if event.Type == mesos.EventTypeSubscribed && event.Subscribed != nil &&
			event.Subscribed.HeartbeatIntervalSeconds > 0 && watchdog == nil {
			heartbeatTimeout = time.Duration(
				event.Subscribed.HeartbeatIntervalSeconds*
					float64(time.Second)) * _missedHeartbeats
			watchdog = time.AfterFunc(heartbeatTimeout, func() {
				log.WithField("timeout", heartbeatTimeout).
					Error("Mesos heartbeats missed, closing stream")
				i.metrics.HeartbeatTimeout.Inc(1)
				cancel()
			})
		}
		i.dispatch(ctx, &event)
	}
}

// dispatch translates one event into a Scheduler callback.
func (i *inbound) dispatch(ctx context.Context, event *mesos.Event) {
	i.metrics.event(string(event.Type)).Inc(1)

	switch event.Type {
	case mesos.EventTypeSubscribed:
		if event.Subscribed == nil {
			break
		}
		i.scheduler.Registered(ctx, event.Subscribed.FrameworkID, event.Subscribed.MasterInfo)
	case mesos.EventTypeOffers:
		if event.Offers == nil {
			break
		}
		i.scheduler.ResourceOffers(ctx, event.Offers.Offers)
	case mesos.EventTypeRescind:
		if event.Rescind == nil {
			break
		}
		i.scheduler.OfferRescinded(ctx, event.Rescind.OfferID)
	case mesos.EventTypeUpdate:
		if event.Update == nil {
			break
		}
		i.scheduler.StatusUpdate(ctx, event.Update.Status)
	case mesos.EventTypeMessage:
		if event.Message == nil {
			break
		}
		i.scheduler.FrameworkMessage(
			ctx,
			event.Message.ExecutorID,
			event.Message.AgentID,
			event.Message.Data)
	case mesos.EventTypeFailure:
		if event.Failure == nil {
			break
		}
		if event.Failure.ExecutorID != nil {
			i.scheduler.ExecutorLost(
				ctx,
				event.Failure.ExecutorID,
				event.Failure.AgentID,
				event.Failure.Status)
		} else {
			i.scheduler.AgentLost(ctx, event.Failure.AgentID)
		}
	case mesos.EventTypeError:
		var msg string
		if event.Error != nil {
			msg = event.Error.Message
		}
		i.scheduler.Error(ctx, msg)
	case mesos.EventTypeHeartbeat:
		log.Debug("Received Mesos heartbeat")
	default:
		log.WithField("type", event.Type).Warn("Unknown Mesos event type")
	}
}
