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
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samuel/go-zookeeper/zk"
	log "github.com/sirupsen/logrus"

	"github.com/uber/fwcore/pkg/common/backoff"
)

const (
	zkPathPrefix = "zk://"

	// Mesos masters register ephemeral sequential znodes with this prefix.
	masterInfoPrefix = "json.info_"

	_defaultZKSessionTimeout = 10 * time.Second
	_retryBase               = time.Second
	_retryMultiplier         = 2
	_retryMax                = 30 * time.Second
)

// MasterDetector finds where the leading Mesos master is.
type MasterDetector interface {
	// HostPort returns the cached leader address, or "" if unknown.
	HostPort() string
}

// staticDetector always returns the same address.
type staticDetector string

func (s staticDetector) HostPort() string { return string(s) }

// NewDetector returns a ZooKeeper backed detector for zk:// paths, or a
// static detector for a plain host:port.
func NewDetector(zkPath string) (MasterDetector, func(), error) {
	if !strings.HasPrefix(zkPath, zkPathPrefix) {
		if _, _, err := net.SplitHostPort(zkPath); err != nil {
			return nil, nil, errors.Wrapf(err, "invalid master address %q", zkPath)
		}
		return staticDetector(zkPath), func() {}, nil
	}
	d, err := NewZKDetector(zkPath, _defaultZKSessionTimeout)
	if err != nil {
		return nil, nil, err
	}
	return d, d.Stop, nil
}

// ParseZKPath splits zk://host1:2181,host2:2181/mesos into its servers and
// znode path.
func ParseZKPath(zkPath string) ([]string, string, error) {
	if !strings.HasPrefix(zkPath, zkPathPrefix) {
		return nil, "", fmt.Errorf("zkPath must start with %s", zkPathPrefix)
	}
	rest := strings.TrimPrefix(zkPath, zkPathPrefix)
	idx := strings.Index(rest, "/")
	if idx <= 0 {
		return nil, "", fmt.Errorf("zkPath %q has no servers or no path", zkPath)
	}
	servers := strings.Split(rest[:idx], ",")
	path := strings.TrimSuffix(rest[idx:], "/")
	if path == "" {
		path = "/"
	}
	return servers, path, nil
}

// zkConn is the subset of *zk.Conn used for detection.
type zkConn interface {
	ChildrenW(path string) ([]string, *zk.Stat, <-chan zk.Event, error)
	Get(path string) ([]byte, *zk.Stat, error)
	Close()
}

// ZKDetector watches the master znodes and caches the leader address.
type ZKDetector struct {
	sync.RWMutex

	conn     zkConn
	path     string
	hostPort string
	retrier  backoff.Retrier

	stopOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

// NewZKDetector connects to ZooKeeper and starts watching for the leader.
func NewZKDetector(zkPath string, sessionTimeout time.Duration) (*ZKDetector, error) {
	servers, path, err := ParseZKPath(zkPath)
	if err != nil {
		return nil, err
	}
	conn, _, err := zk.Connect(servers, sessionTimeout, zk.WithLogInfo(false))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to zookeeper")
	}
	d := newZKDetector(conn, path)
	d.start()
	return d, nil
}

func newZKDetector(conn zkConn, path string) *ZKDetector {
	return &ZKDetector{
		conn: conn,
		path: path,
		retrier: backoff.NewRetrier(
			backoff.NewExponentialPolicy(_retryBase, _retryMultiplier, _retryMax)),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// HostPort implements MasterDetector.
func (d *ZKDetector) HostPort() string {
	d.RLock()
	defer d.RUnlock()
	return d.hostPort
}

// Stop the watch loop and close the connection.
func (d *ZKDetector) Stop() {
	d.stopOnce.Do(func() {
		close(d.quit)
		<-d.done
		d.conn.Close()
	})
}

func (d *ZKDetector) start() {
	go d.watch()
}

func (d *ZKDetector) watch() {
	defer close(d.done)
	for {
		events, err := d.detect()
		if err != nil {
			delay := d.retrier.NextBackOff()
			log.WithError(err).WithFields(log.Fields{
				"path":  d.path,
				"retry": delay,
			}).Warn("Failed to detect Mesos leader")
			select {
			case <-time.After(delay):
				continue
			case <-d.quit:
				return
			}
		}
		d.retrier.Reset()
		select {
		case <-events:
		case <-d.quit:
			return
		}
	}
}

// detect reads the current leader and returns the watch for the next change.
func (d *ZKDetector) detect() (<-chan zk.Event, error) {
	children, _, events, err := d.conn.ChildrenW(d.path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list master znodes")
	}

	leader := selectLeader(children)
	if leader == "" {
		d.setHostPort("")
		log.WithField("path", d.path).Warn("No Mesos master registered")
		return events, nil
	}

	data, _, err := d.conn.Get(d.path + "/" + leader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read master znode %s", leader)
	}
	var info MasterInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, errors.Wrapf(err, "failed to parse master info in %s", leader)
	}
	d.setHostPort(masterHostPort(&info))
	return events, nil
}

func (d *ZKDetector) setHostPort(hostPort string) {
	d.Lock()
	defer d.Unlock()
	if d.hostPort != hostPort {
		log.WithFields(log.Fields{
			"old_leader": d.hostPort,
			"new_leader": hostPort,
		}).Info("Mesos leader changed")
	}
	d.hostPort = hostPort
}

// selectLeader returns the master znode with the lowest sequence number.
func selectLeader(children []string) string {
	type candidate struct {
		name string
		seq  int64
	}
	var candidates []candidate
	for _, c := range children {
		if !strings.HasPrefix(c, masterInfoPrefix) {
			continue
		}
		seq, err := strconv.ParseInt(strings.TrimPrefix(c, masterInfoPrefix), 10, 64)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{name: c, seq: seq})
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].seq < candidates[j].seq
	})
	return candidates[0].name
}

// masterHostPort prefers the address field and falls back to the packed ip.
func masterHostPort(info *MasterInfo) string {
	if addr := info.GetAddress(); addr != nil && addr.Port != 0 {
		host := addr.IP
		if host == "" {
			host = addr.Hostname
		}
		if host != "" {
			return net.JoinHostPort(host, strconv.Itoa(int(addr.Port)))
		}
	}
	if info.IP == 0 || info.Port == 0 {
		return ""
	}
	// The ip is stored in network byte order.
	ip := net.IPv4(byte(info.IP), byte(info.IP>>8), byte(info.IP>>16), byte(info.IP>>24))
	return net.JoinHostPort(ip.String(), strconv.Itoa(int(info.Port)))
}
