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
	"container/list"
	"context"
	"sync"
)

// Job is a unit of work run by a Worker.
type Job interface {
	Run(ctx context.Context)
}

// JobFunc adapts a function to a Job.
type JobFunc func(ctx context.Context)

// Run implements Job.
func (f JobFunc) Run(ctx context.Context) { f(ctx) }

// queue works similar to an unlimited channel. Jobs are added with Enqueue
// and drained in FIFO order with Dequeue.
type queue struct {
	sync.Mutex
	list *list.List

	// signal has a buffer of one so an enqueue is never missed by a waiting
	// Dequeue.
	signal chan struct{}
}

func newQueue() *queue {
	return &queue{
		list:   list.New(),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue the Job. This method returns immediately.
func (q *queue) Enqueue(job Job) {
	q.Lock()
	q.list.PushBack(job)
	q.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Dequeue blocks until a job is available. It returns nil once stop is
// closed, even if jobs remain.
func (q *queue) Dequeue(stop <-chan struct{}) Job {
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		q.Lock()
		if f := q.list.Front(); f != nil {
			q.list.Remove(f)
			q.Unlock()
			return f.Value.(Job)
		}
		q.Unlock()

		select {
		case <-q.signal:
		case <-stop:
			return nil
		}
	}
}

// Len returns the number of queued jobs.
func (q *queue) Len() int {
	q.Lock()
	defer q.Unlock()
	return q.list.Len()
}
