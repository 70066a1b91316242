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

package zkstore

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samuel/go-zookeeper/zk"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/storage"
)

const (
	_frameworksNode = "frameworks"
	_tasksNode      = "tasks"

	// any version matches in Set and Delete
	_anyVersion = -1
)

// Config for the ZooKeeper store.
type Config struct {
	Servers        []string      `yaml:"servers" validate:"min=1"`
	Root           string        `yaml:"root" validate:"nonzero"`
	SessionTimeout time.Duration `yaml:"session_timeout"`
}

// zkConn is the subset of *zk.Conn used by the store.
type zkConn interface {
	Get(path string) ([]byte, *zk.Stat, error)
	Set(path string, data []byte, version int32) (*zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
	Delete(path string, version int32) error
	Children(path string) ([]string, *zk.Stat, error)
	Close()
}

// Store persists the framework id and task statuses under a ZooKeeper root:
//
//	<root>/frameworks/<framework name>  framework id
//	<root>/tasks/<escaped task id>      JSON task status
type Store struct {
	conn    zkConn
	root    string
	metrics *storage.Metrics
}

// NewStore connects to ZooKeeper and makes sure the store layout exists.
func NewStore(cfg *Config, scope tally.Scope) (*Store, error) {
	timeout := cfg.SessionTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	conn, _, err := zk.Connect(cfg.Servers, timeout, zk.WithLogInfo(false))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to zookeeper")
	}
	s := newStore(conn, cfg.Root, scope)
	if err := s.init(); err != nil {
		conn.Close()
		return nil, err
	}
	log.WithFields(log.Fields{
		"servers": cfg.Servers,
		"root":    cfg.Root,
	}).Info("ZooKeeper store ready")
	return s, nil
}

func newStore(conn zkConn, root string, scope tally.Scope) *Store {
	return &Store{
		conn:    conn,
		root:    "/" + strings.Trim(root, "/"),
		metrics: storage.NewMetrics(scope.SubScope("zkstore")),
	}
}

func (s *Store) init() error {
	for _, p := range []string{
		path.Join(s.root, _frameworksNode),
		path.Join(s.root, _tasksNode),
	} {
		if err := s.ensurePath(p); err != nil {
			return err
		}
	}
	return nil
}

// ensurePath creates every missing node along p.
func (s *Store) ensurePath(p string) error {
	cur := ""
	for _, part := range strings.Split(strings.Trim(p, "/"), "/") {
		cur += "/" + part
		_, err := s.conn.Create(cur, nil, 0, zk.WorldACL(zk.PermAll))
		if err != nil && err != zk.ErrNodeExists {
			return errors.Wrapf(err, "failed to create %s", cur)
		}
	}
	return nil
}

// put writes data to p, creating the node when missing.
func (s *Store) put(p string, data []byte) error {
	_, err := s.conn.Set(p, data, _anyVersion)
	if err != zk.ErrNoNode {
		return err
	}
	_, err = s.conn.Create(p, data, 0, zk.WorldACL(zk.PermAll))
	if err == zk.ErrNodeExists {
		_, err = s.conn.Set(p, data, _anyVersion)
	}
	return err
}

func (s *Store) frameworkPath(name string) string {
	return path.Join(s.root, _frameworksNode, url.PathEscape(name))
}

func (s *Store) taskPath(taskID string) string {
	return path.Join(s.root, _tasksNode, url.PathEscape(taskID))
}

// Close the ZooKeeper session.
func (s *Store) Close() error {
	s.conn.Close()
	return nil
}

// GetFrameworkID returns the stored framework id, or "".
func (s *Store) GetFrameworkID(ctx context.Context, frameworkName string) (string, error) {
	data, _, err := s.conn.Get(s.frameworkPath(frameworkName))
	if err == zk.ErrNoNode {
		s.metrics.FrameworkStoreMetrics.FrameworkIDGet.Inc(1)
		return "", nil
	}
	if err != nil {
		s.metrics.FrameworkStoreMetrics.FrameworkIDGetFail.Inc(1)
		return "", errors.Wrap(err, "failed to read framework id")
	}
	s.metrics.FrameworkStoreMetrics.FrameworkIDGet.Inc(1)
	return string(data), nil
}

// SetFrameworkID stores the framework id.
func (s *Store) SetFrameworkID(ctx context.Context, frameworkName string, frameworkID string) error {
	if err := s.put(s.frameworkPath(frameworkName), []byte(frameworkID)); err != nil {
		s.metrics.FrameworkStoreMetrics.FrameworkIDSetFail.Inc(1)
		return errors.Wrap(err, "failed to write framework id")
	}
	s.metrics.FrameworkStoreMetrics.FrameworkIDSet.Inc(1)
	return nil
}

// ClearFrameworkID removes the framework id.
func (s *Store) ClearFrameworkID(ctx context.Context, frameworkName string) error {
	err := s.conn.Delete(s.frameworkPath(frameworkName), _anyVersion)
	if err != nil && err != zk.ErrNoNode {
		s.metrics.FrameworkStoreMetrics.FrameworkIDClearFail.Inc(1)
		return errors.Wrap(err, "failed to clear framework id")
	}
	s.metrics.FrameworkStoreMetrics.FrameworkIDClear.Inc(1)
	return nil
}

// GetTaskStatuses returns all statuses sorted by task id. A task deleted
// while listing is skipped.
func (s *Store) GetTaskStatuses(ctx context.Context) ([]*mesos.TaskStatus, error) {
	children, _, err := s.conn.Children(path.Join(s.root, _tasksNode))
	if err != nil {
		s.metrics.TaskStatusMetrics.TaskStatusGetAllFail.Inc(1)
		return nil, errors.Wrap(err, "failed to list tasks")
	}
	sort.Strings(children)

	result := make([]*mesos.TaskStatus, 0, len(children))
	for _, child := range children {
		taskID, err := url.PathUnescape(child)
		if err != nil {
			log.WithField("node", child).Warn("Skipping malformed task node")
			continue
		}
		status, err := s.GetTaskStatus(ctx, taskID)
		if err != nil {
			s.metrics.TaskStatusMetrics.TaskStatusGetAllFail.Inc(1)
			return nil, err
		}
		if status != nil {
			result = append(result, status)
		}
	}
	s.metrics.TaskStatusMetrics.TaskStatusGetAll.Inc(1)
	return result, nil
}

// GetTaskStatus returns the status of a task, or nil if the task is unknown.
func (s *Store) GetTaskStatus(ctx context.Context, taskID string) (*mesos.TaskStatus, error) {
	data, _, err := s.conn.Get(s.taskPath(taskID))
	if err == zk.ErrNoNode {
		s.metrics.TaskStatusMetrics.TaskStatusNotFound.Inc(1)
		return nil, nil
	}
	if err != nil {
		s.metrics.TaskStatusMetrics.TaskStatusGetFail.Inc(1)
		return nil, errors.Wrapf(err, "failed to read status of task %s", taskID)
	}
	status := &mesos.TaskStatus{}
	if err := json.Unmarshal(data, status); err != nil {
		s.metrics.TaskStatusMetrics.TaskStatusGetFail.Inc(1)
		return nil, errors.Wrapf(err, "failed to decode status of task %s", taskID)
	}
	s.metrics.TaskStatusMetrics.TaskStatusGet.Inc(1)
	return status, nil
}

// StoreTaskStatus replaces the status of the task.
func (s *Store) StoreTaskStatus(ctx context.Context, status *mesos.TaskStatus) error {
	taskID := status.GetTaskID().GetValue()
	if taskID == "" {
		s.metrics.TaskStatusMetrics.TaskStatusStoreFail.Inc(1)
		return storage.ErrMissingTaskID
	}
	data, err := json.Marshal(status)
	if err != nil {
		s.metrics.TaskStatusMetrics.TaskStatusStoreFail.Inc(1)
		return errors.Wrap(err, "failed to encode task status")
	}
	if err := s.put(s.taskPath(taskID), data); err != nil {
		s.metrics.TaskStatusMetrics.TaskStatusStoreFail.Inc(1)
		return errors.Wrapf(err, "failed to write status of task %s", taskID)
	}
	s.metrics.TaskStatusMetrics.TaskStatusStore.Inc(1)
	return nil
}

// DeleteTaskStatus forgets the task. Deleting an unknown task is a no-op.
func (s *Store) DeleteTaskStatus(ctx context.Context, taskID string) error {
	err := s.conn.Delete(s.taskPath(taskID), _anyVersion)
	if err != nil && err != zk.ErrNoNode {
		s.metrics.TaskStatusMetrics.TaskStatusDeleteFail.Inc(1)
		return errors.Wrapf(err, "failed to delete status of task %s", taskID)
	}
	s.metrics.TaskStatusMetrics.TaskStatusDelete.Inc(1)
	return nil
}
