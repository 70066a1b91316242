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
	"fmt"
	"sort"
)

// WorkItem is a value snapshot of one unit of pending work. Two items are
// the same work iff both fields match.
type WorkItem struct {
	// Name identifies the work, e.g. a step or task name.
	Name string `json:"name"`
	// RecoveryType is set when the work recovers a failed task.
	RecoveryType string `json:"recovery_type,omitempty"`
}

func (w WorkItem) String() string {
	if w.RecoveryType == "" {
		return w.Name
	}
	return fmt.Sprintf("%s[%s]", w.Name, w.RecoveryType)
}

// WorkSet is a set of work items.
type WorkSet map[WorkItem]struct{}

// NewWorkSet builds a set, dropping duplicates.
func NewWorkSet(items ...WorkItem) WorkSet {
	s := make(WorkSet, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Contains returns whether item is in the set.
func (s WorkSet) Contains(item WorkItem) bool {
	_, ok := s[item]
	return ok
}

// Difference returns the items of s missing from other, sorted.
func (s WorkSet) Difference(other WorkSet) []WorkItem {
	var diff []WorkItem
	for item := range s {
		if !other.Contains(item) {
			diff = append(diff, item)
		}
	}
	sortItems(diff)
	return diff
}

// Items returns the items, sorted.
func (s WorkSet) Items() []WorkItem {
	items := make([]WorkItem, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sortItems(items)
	return items
}

func sortItems(items []WorkItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].RecoveryType < items[j].RecoveryType
	})
}
