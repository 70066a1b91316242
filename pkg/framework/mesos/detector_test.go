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
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samuel/go-zookeeper/zk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/uber/fwcore/pkg/common/backoff"
)

type fakeZKConn struct {
	sync.Mutex
	children []string
	data     map[string][]byte
	err      error
	attempts int
	watch    chan zk.Event
	closed   bool
}

func newFakeZKConn() *fakeZKConn {
	return &fakeZKConn{data: make(map[string][]byte)}
}

func (c *fakeZKConn) ChildrenW(path string) ([]string, *zk.Stat, <-chan zk.Event, error) {
	c.Lock()
	defer c.Unlock()
	c.attempts++
	if c.err != nil {
		return nil, nil, nil, c.err
	}
	c.watch = make(chan zk.Event, 1)
	return append([]string(nil), c.children...), &zk.Stat{}, c.watch, nil
}

func (c *fakeZKConn) Get(path string) ([]byte, *zk.Stat, error) {
	c.Lock()
	defer c.Unlock()
	d, ok := c.data[path]
	if !ok {
		return nil, nil, zk.ErrNoNode
	}
	return d, &zk.Stat{}, nil
}

func (c *fakeZKConn) failures(err error) {
	c.Lock()
	defer c.Unlock()
	c.err = err
}

func (c *fakeZKConn) attemptCount() int {
	c.Lock()
	defer c.Unlock()
	return c.attempts
}

func (c *fakeZKConn) Close() {
	c.Lock()
	defer c.Unlock()
	c.closed = true
}

func (c *fakeZKConn) setMasters(t *testing.T, masters map[string]*MasterInfo) {
	c.Lock()
	c.children = nil
	for name, info := range masters {
		b, err := json.Marshal(info)
		require.NoError(t, err)
		c.children = append(c.children, name)
		c.data["/mesos/"+name] = b
	}
	watch := c.watch
	c.Unlock()
	if watch != nil {
		watch <- zk.Event{Type: zk.EventNodeChildrenChanged}
	}
}

func TestParseZKPath(t *testing.T) {
	servers, path, err := ParseZKPath("zk://h1:2181,h2:2181/mesos")
	require.NoError(t, err)
	assert.Equal(t, []string{"h1:2181", "h2:2181"}, servers)
	assert.Equal(t, "/mesos", path)

	_, _, err = ParseZKPath("h1:2181/mesos")
	assert.Error(t, err)
	_, _, err = ParseZKPath("zk://h1:2181")
	assert.Error(t, err)
	_, _, err = ParseZKPath("zk:///mesos")
	assert.Error(t, err)
}

func TestSelectLeader(t *testing.T) {
	assert.Equal(t, "json.info_0000000003", selectLeader([]string{
		"log_replicas",
		"json.info_0000000007",
		"json.info_0000000003",
		"info_0000000001",
		"json.info_bogus",
	}))
	assert.Empty(t, selectLeader([]string{"log_replicas"}))
}

func TestMasterHostPort(t *testing.T) {
	assert.Equal(t, "10.0.0.1:5050", masterHostPort(&MasterInfo{
		Address: &Address{IP: "10.0.0.1", Port: 5050},
	}))
	assert.Equal(t, "master:5050", masterHostPort(&MasterInfo{
		Address: &Address{Hostname: "master", Port: 5050},
	}))
	// 10.0.0.1 in network byte order.
	assert.Equal(t, "10.0.0.1:5050", masterHostPort(&MasterInfo{IP: 0x0100000a, Port: 5050}))
	assert.Empty(t, masterHostPort(&MasterInfo{}))
}

func TestNewDetectorStatic(t *testing.T) {
	d, stop, err := NewDetector("master:5050")
	require.NoError(t, err)
	defer stop()
	assert.Equal(t, "master:5050", d.HostPort())

	_, _, err = NewDetector("master")
	assert.Error(t, err)
}

func TestZKDetectorFollowsLeader(t *testing.T) {
	defer goleak.VerifyNone(t)

	conn := newFakeZKConn()
	conn.children = []string{"json.info_0000000002"}
	b, err := json.Marshal(&MasterInfo{Address: &Address{IP: "10.0.0.2", Port: 5050}})
	require.NoError(t, err)
	conn.data["/mesos/json.info_0000000002"] = b

	d := newZKDetector(conn, "/mesos")
	d.start()
	assert.Eventually(t, func() bool { return d.HostPort() == "10.0.0.2:5050" },
		time.Second, 5*time.Millisecond)

	conn.setMasters(t, map[string]*MasterInfo{
		"json.info_0000000003": {Address: &Address{IP: "10.0.0.3", Port: 5050}},
	})
	assert.Eventually(t, func() bool { return d.HostPort() == "10.0.0.3:5050" },
		time.Second, 5*time.Millisecond)

	conn.setMasters(t, nil)
	assert.Eventually(t, func() bool { return d.HostPort() == "" },
		time.Second, 5*time.Millisecond)

	d.Stop()
	d.Stop()
	assert.True(t, conn.closed)
}

func TestZKDetectorStopsWhileRetrying(t *testing.T) {
	defer goleak.VerifyNone(t)

	conn := newFakeZKConn()
	conn.err = errors.New("no connection")
	d := newZKDetector(conn, "/mesos")
	d.start()
	d.Stop()
	assert.Empty(t, d.HostPort())
}

func TestZKDetectorBacksOffUntilConnected(t *testing.T) {
	defer goleak.VerifyNone(t)

	conn := newFakeZKConn()
	conn.err = errors.New("no connection")
	conn.children = []string{"json.info_0000000001"}
	b, err := json.Marshal(&MasterInfo{Address: &Address{IP: "10.0.0.1", Port: 5050}})
	require.NoError(t, err)
	conn.data["/mesos/json.info_0000000001"] = b

	d := newZKDetector(conn, "/mesos")
	d.retrier = backoff.NewRetrier(
		backoff.NewExponentialPolicy(time.Millisecond, 2, 4*time.Millisecond))
	d.start()

	assert.Eventually(t, func() bool { return conn.attemptCount() >= 3 },
		time.Second, time.Millisecond)
	assert.Empty(t, d.HostPort())

	conn.failures(nil)
	assert.Eventually(t, func() bool { return d.HostPort() == "10.0.0.1:5050" },
		time.Second, time.Millisecond)

	d.Stop()
	// a successful detection starts the next failure streak from the base delay
	assert.Equal(t, time.Millisecond, d.retrier.NextBackOff())
}
