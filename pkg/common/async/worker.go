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
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// PanicHandler is invoked with the recovered value when a job panics.
type PanicHandler func(r interface{})

// Worker runs jobs one at a time, in the order they were enqueued, on a
// single goroutine. Enqueue never blocks; the queue is unbounded.
type Worker struct {
	sync.Mutex

	name    string
	queue   *queue
	onPanic PanicHandler

	// outstanding counts enqueued jobs that have not finished running.
	outstanding int
	idle        *sync.Cond
	stopChan    chan struct{}
	done        chan struct{}
}

// NewWorker returns a stopped worker. onPanic may be nil.
func NewWorker(name string, onPanic PanicHandler) *Worker {
	w := &Worker{
		name:    name,
		queue:   newQueue(),
		onPanic: onPanic,
	}
	w.idle = sync.NewCond(&w.Mutex)
	return w
}

// Enqueue a job. Jobs enqueued before Start run once the worker starts.
func (w *Worker) Enqueue(job Job) {
	w.Lock()
	w.outstanding++
	w.Unlock()
	w.queue.Enqueue(job)
}

// Pending returns the number of jobs not yet picked up.
func (w *Worker) Pending() int {
	return w.queue.Len()
}

// WaitUntilProcessed blocks until every enqueued job has run, or until the
// worker is not running. Jobs left queued by Stop do not keep it blocked.
// Useful in testing.
func (w *Worker) WaitUntilProcessed() {
	w.Lock()
	defer w.Unlock()
	for w.outstanding > 0 && w.stopChan != nil {
		w.idle.Wait()
	}
}

// Start the worker goroutine. Calling Start on a running worker is a no-op.
func (w *Worker) Start() {
	w.Lock()
	defer w.Unlock()
	if w.stopChan != nil {
		return
	}
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	go w.run(w.stopChan, w.done)
}

// Stop the worker and wait for the running job, if any, to return. Jobs
// still queued are kept and run if the worker is started again.
func (w *Worker) Stop() {
	w.Lock()
	if w.stopChan == nil {
		w.Unlock()
		return
	}
	close(w.stopChan)
	done := w.done
	w.stopChan = nil
	w.idle.Broadcast()
	w.Unlock()
	<-done
}

func (w *Worker) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-stop
		cancel()
	}()

	for {
		job := w.queue.Dequeue(stop)
		if job == nil {
			return
		}
		w.runJob(ctx, job)
	}
}

func (w *Worker) runJob(ctx context.Context, job Job) {
	defer w.finished()
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"worker": w.name,
				"panic":  fmt.Sprint(r),
			}).Error("Recovered from panic in worker job")
			if w.onPanic != nil {
				w.onPanic(r)
			}
		}
	}()
	job.Run(ctx)
}

func (w *Worker) finished() {
	w.Lock()
	defer w.Unlock()
	w.outstanding--
	if w.outstanding == 0 {
		w.idle.Broadcast()
	}
}
