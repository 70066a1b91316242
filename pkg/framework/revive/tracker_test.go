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
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	_itemA = WorkItem{Name: "pod-0:[server]"}
	_itemB = WorkItem{Name: "pod-1:[server]"}
	// same step as A, now recovering a failed task
	_itemARecovery = WorkItem{Name: "pod-0:[server]", RecoveryType: "TRANSIENT"}
)

func TestWorkItemEquality(t *testing.T) {
	a := WorkItem{Name: "pod-0:[server]"}
	assert.Equal(t, _itemA, a)
	assert.NotEqual(t, _itemA, _itemARecovery)
	assert.Len(t, NewWorkSet(a, _itemA, _itemARecovery), 2)
	assert.Equal(t, "pod-0:[server][TRANSIENT]", _itemARecovery.String())
	assert.Equal(t, "pod-0:[server]", _itemA.String())
}

func TestWorkSetDifference(t *testing.T) {
	current := NewWorkSet(_itemB, _itemA, _itemARecovery)
	previous := NewWorkSet(_itemA)

	assert.Equal(t, []WorkItem{_itemARecovery, _itemB}, current.Difference(previous))
	assert.Empty(t, previous.Difference(current))
	assert.Equal(t, []WorkItem{_itemA, _itemARecovery, _itemB}, current.Items())
}

func TestTrackerSequence(t *testing.T) {
	tracker := NewWorkSnapshotTracker()

	steps := []struct {
		items   []WorkItem
		newWork bool
	}{
		{nil, false},
		{[]WorkItem{_itemA}, true},
		{[]WorkItem{_itemA}, false},
		{[]WorkItem{_itemA, _itemB}, true},
		{nil, false},
	}
	for i, step := range steps {
		tracker.UpdateWorkSet(step.items)
		assert.Equal(t, step.newWork, tracker.HasNewWork(), "step %d", i)
		// the flag is one-shot
		assert.False(t, tracker.HasNewWork(), "step %d", i)
	}
}

func TestTrackerFlagSticksUntilRead(t *testing.T) {
	tracker := NewWorkSnapshotTracker()
	assert.Equal(t, []WorkItem{_itemA}, tracker.UpdateWorkSet([]WorkItem{_itemA}))
	assert.Empty(t, tracker.UpdateWorkSet([]WorkItem{_itemA}))
	assert.True(t, tracker.HasNewWork())
}

func TestTrackerRollback(t *testing.T) {
	tracker := NewWorkSnapshotTracker()
	tracker.UpdateWorkSet([]WorkItem{_itemA})
	tracker.HasNewWork()

	assert.Equal(t, []WorkItem{_itemB}, tracker.UpdateWorkSet([]WorkItem{_itemA, _itemB}))
	tracker.Rollback()

	// B is still pending and is reported again.
	assert.Equal(t, []WorkItem{_itemB}, tracker.UpdateWorkSet([]WorkItem{_itemA, _itemB}))
	tracker.Rollback()

	// B went away before it was handled: nothing new.
	assert.Empty(t, tracker.UpdateWorkSet([]WorkItem{_itemA}))
}

func TestTrackerReset(t *testing.T) {
	tracker := NewWorkSnapshotTracker()
	tracker.UpdateWorkSet([]WorkItem{_itemA})
	tracker.Reset()
	assert.False(t, tracker.HasNewWork())

	assert.Equal(t, []WorkItem{_itemA}, tracker.UpdateWorkSet([]WorkItem{_itemA}))
	assert.True(t, tracker.HasNewWork())
}
