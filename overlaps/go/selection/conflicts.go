// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package selection

import (
	"fmt"
	"math"

	"github.com/biogo/store/interval"

	log "github.com/golang/glog"
)

// candidate is an interval of the model stored in the interval tree.
type candidate struct {
	Interval
	group int
	index int64
	uid   uintptr
}

// Overlap is the half-open overlap test used by the tree to prune subtrees. Every pair
// violating an exclusion constraint overlaps in this sense, so querying the tree never
// misses a conflict; the exact relation is applied to the results.
func (c candidate) Overlap(r interval.IntRange) bool {
	return int64(r.Start) < c.End && c.Start < int64(r.End)
}

func (c candidate) ID() uintptr { return c.uid }

// Range widens zero-length intervals by one since the tree rejects empty ranges. At
// math.MaxInt64 the range is widened downwards; such an interval conflicts with none.
func (c candidate) Range() interval.IntRange {
	if c.Start == c.End {
		if c.End == math.MaxInt64 {
			return interval.IntRange{Start: int(c.Start) - 1, End: int(c.End)}
		}
		return interval.IntRange{Start: int(c.Start), End: int(c.End) + 1}
	}
	return interval.IntRange{Start: int(c.Start), End: int(c.End)}
}

// ConflictIndex lists, for every interval of a model, the selector values of the other
// groups that the exclusion constraints forbid together with it.
type ConflictIndex struct {
	// base[g] is the position of the first interval of group g in with.
	base []int
	// with[base[g]+k][h] holds the values of x_h in conflict with x_g == k.
	with  [][]Domain
	pairs int64
}

// With returns the selector values of group `h` that conflict with value `k` of the
// selector of group `g`.
func (ci *ConflictIndex) With(g int, k int64, h int) Domain {
	return ci.with[ci.base[g]+int(k)][h]
}

// NumPairs returns the number of conflicting pairs of intervals.
func (ci *ConflictIndex) NumPairs() int64 {
	return ci.pairs
}

// Conflicts returns the conflict index of the model. It is computed on first use.
func (m *Model) Conflicts() (*ConflictIndex, error) {
	m.conflictsOnce.Do(func() {
		m.conflicts, m.conflictsErr = newConflictIndex(m)
	})
	return m.conflicts, m.conflictsErr
}

func newConflictIndex(m *Model) (*ConflictIndex, error) {
	n := len(m.groups)
	ci := &ConflictIndex{base: make([]int, n)}
	var all []candidate
	for g, group := range m.groups {
		ci.base[g] = len(all)
		for k, iv := range group {
			all = append(all, candidate{Interval: iv, group: g, index: int64(k), uid: uintptr(len(all))})
		}
	}

	tree := &interval.IntTree{}
	for _, c := range all {
		if err := tree.Insert(c, false); err != nil {
			return nil, fmt.Errorf("indexing interval %v of group %d: %w", c.Interval, c.group, err)
		}
	}

	ci.with = make([][]Domain, len(all))
	for _, c := range all {
		values := make([][]int64, n)
		for _, o := range tree.Get(c) {
			other := o.(candidate)
			if other.group == c.group || !c.Overlaps(other.Interval) {
				continue
			}
			values[other.group] = append(values[other.group], other.index)
			ci.pairs++
		}
		ci.with[c.uid] = make([]Domain, n)
		for h, v := range values {
			ci.with[c.uid][h] = FromValues(v)
		}
	}
	ci.pairs /= 2

	log.V(1).Infof("Indexed %d intervals, %d conflicting pairs", len(all), ci.pairs)
	return ci, nil
}
