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

package async

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

type WorkerTestSuite struct {
	suite.Suite
	worker *Worker
	panics atomic.Int32
}

func (suite *WorkerTestSuite) SetupTest() {
	suite.panics.Store(0)
	suite.worker = NewWorker("test", func(interface{}) { suite.panics.Inc() })
}

func (suite *WorkerTestSuite) TearDownTest() {
	suite.worker.Stop()
	goleak.VerifyNone(suite.T())
}

func TestWorker(t *testing.T) {
	suite.Run(t, new(WorkerTestSuite))
}

func (suite *WorkerTestSuite) TestRunsInOrder() {
	var mu sync.Mutex
	var seen []int
	for i := 0; i < 100; i++ {
		i := i
		suite.worker.Enqueue(JobFunc(func(context.Context) {
			mu.Lock()
			seen = append(seen, i)
			mu.Unlock()
		}))
	}
	suite.worker.Start()
	suite.worker.WaitUntilProcessed()

	suite.Len(seen, 100)
	for i, v := range seen {
		suite.Equal(i, v)
	}
}

func (suite *WorkerTestSuite) TestJobsNeverOverlap() {
	var running, maxRunning atomic.Int32
	suite.worker.Start()
	for i := 0; i < 50; i++ {
		suite.worker.Enqueue(JobFunc(func(context.Context) {
			n := running.Inc()
			if n > maxRunning.Load() {
				maxRunning.Store(n)
			}
			running.Dec()
		}))
	}
	suite.worker.WaitUntilProcessed()
	suite.Equal(int32(1), maxRunning.Load())
}

func (suite *WorkerTestSuite) TestPanicIsRecovered() {
	var ran atomic.Bool
	suite.worker.Start()
	suite.worker.Enqueue(JobFunc(func(context.Context) { panic("boom") }))
	suite.worker.Enqueue(JobFunc(func(context.Context) { ran.Store(true) }))
	suite.worker.WaitUntilProcessed()

	suite.True(ran.Load())
	suite.Equal(int32(1), suite.panics.Load())
}

func (suite *WorkerTestSuite) TestStopAndRestart() {
	suite.worker.Start()
	suite.worker.Start()
	suite.worker.Stop()
	suite.worker.Stop()

	var ran atomic.Bool
	suite.worker.Enqueue(JobFunc(func(context.Context) { ran.Store(true) }))
	suite.Equal(1, suite.worker.Pending())
	suite.worker.Start()
	suite.worker.WaitUntilProcessed()
	suite.True(ran.Load())
}

func (suite *WorkerTestSuite) TestStopWithBacklogReleasesWaiters() {
	started := make(chan struct{})
	var ran atomic.Bool
	suite.worker.Start()
	suite.worker.Enqueue(JobFunc(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	}))
	suite.worker.Enqueue(JobFunc(func(context.Context) { ran.Store(true) }))
	<-started

	waited := make(chan struct{})
	go func() {
		suite.worker.WaitUntilProcessed()
		close(waited)
	}()

	suite.worker.Stop()
	<-waited
	suite.worker.WaitUntilProcessed()
	suite.False(ran.Load())
	suite.Equal(1, suite.worker.Pending())

	suite.worker.Start()
	suite.worker.WaitUntilProcessed()
	suite.True(ran.Load())
}

func TestQueueDequeueStops(t *testing.T) {
	q := newQueue()
	stop := make(chan struct{})
	close(stop)
	assert.Nil(t, q.Dequeue(stop))

	q.Enqueue(JobFunc(func(context.Context) {}))
	assert.Nil(t, q.Dequeue(stop))
	assert.Equal(t, 1, q.Len())
	assert.NotNil(t, q.Dequeue(make(chan struct{})))
	assert.Equal(t, 0, q.Len())
}
