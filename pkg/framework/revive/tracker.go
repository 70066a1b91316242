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

package revive

import (
	"sync"
)

// WorkSnapshotTracker diffs successive work sets. It only keeps books: the
// owner decides what to do about new work.
type WorkSnapshotTracker struct {
	sync.Mutex

	previous WorkSet
	// snapshot before the last update, for Rollback
	prior   WorkSet
	newWork bool
}

// NewWorkSnapshotTracker starts from an empty work set.
func NewWorkSnapshotTracker() *WorkSnapshotTracker {
	return &WorkSnapshotTracker{
		previous: WorkSet{},
		prior:    WorkSet{},
	}
}

// UpdateWorkSet records the current work and returns the items that were
// not in the previous set. Any new item raises the new-work flag.
func (t *WorkSnapshotTracker) UpdateWorkSet(items []WorkItem) []WorkItem {
	t.Lock()
	defer t.Unlock()

	current := NewWorkSet(items...)
	newItems := current.Difference(t.previous)
	if len(newItems) > 0 {
		t.newWork = true
	}
	t.prior = t.previous
	t.previous = current
	return newItems
}

// HasNewWork returns and clears the new-work flag.
func (t *WorkSnapshotTracker) HasNewWork() bool {
	t.Lock()
	defer t.Unlock()
	newWork := t.newWork
	t.newWork = false
	return newWork
}

// Rollback forgets the last update, so items it reported as new are
// reported again by the next update if they are still present.
func (t *WorkSnapshotTracker) Rollback() {
	t.Lock()
	defer t.Unlock()
	t.previous = t.prior
}

// Reset forgets all known work, so everything in the next update is new.
func (t *WorkSnapshotTracker) Reset() {
	t.Lock()
	defer t.Unlock()
	t.previous = WorkSet{}
	t.prior = WorkSet{}
	t.newWork = false
}
