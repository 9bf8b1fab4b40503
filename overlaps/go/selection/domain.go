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
	"sort"
	"strings"
)

// ClosedInterval stores the closed interval `[start,end]`. If the `Start` is greater
// than the `End`, the interval is considered empty.
type ClosedInterval struct {
	Start int64
	End   int64
}

// Domain stores an ordered list of ClosedIntervals. It is used for the value sets of
// selector and endpoint variables. A Domain is a value: every narrowing operation
// returns a new Domain and leaves the receiver untouched, so a search can keep the
// domains of enclosing branches around without copying them.
type Domain struct {
	intervals []ClosedInterval
}

// joinIntervals sorts the intervals in domain and combines two consecutive intervals
// if they overlap or the start of the second is exactly one more than the end of the first.
// If an interval's `start` is greater than its `end`, then the interval is considered empty.
func (d *Domain) joinIntervals() {
	var itvs []ClosedInterval
	for _, v := range d.intervals {
		if v.Start <= v.End {
			itvs = append(itvs, v)
		}
	}
	d.intervals = itvs
	if len(d.intervals) == 0 {
		return
	}
	sort.Slice(d.intervals, func(i, j int) bool {
		if d.intervals[i].Start != d.intervals[j].Start {
			return d.intervals[i].Start < d.intervals[j].Start
		}
		return d.intervals[i].End < d.intervals[j].End
	})
	joined := []ClosedInterval{d.intervals[0]}
	for i := 1; i < len(d.intervals); i++ {
		last := &joined[len(joined)-1]
		if last.End+1 >= d.intervals[i].Start {
			if last.End < d.intervals[i].End {
				last.End = d.intervals[i].End
			}
		} else {
			joined = append(joined, d.intervals[i])
		}
	}
	d.intervals = joined
}

// NewEmptyDomain creates an empty Domain.
func NewEmptyDomain() Domain {
	return Domain{}
}

// NewSingleDomain creates a new singleton domain `[val]`.
func NewSingleDomain(val int64) Domain {
	return Domain{[]ClosedInterval{{val, val}}}
}

// NewDomain creates a new domain of a single interval `[left,right]`.
// If `left > right`, an empty domain is returned.
func NewDomain(left, right int64) Domain {
	if left > right {
		return NewEmptyDomain()
	}
	return Domain{[]ClosedInterval{{left, right}}}
}

// FromValues creates a new domain from `values`. `values` need not be
// sorted and can repeat.
func FromValues(values []int64) Domain {
	var d Domain
	for _, v := range values {
		d.intervals = append(d.intervals, ClosedInterval{v, v})
	}
	d.joinIntervals()
	return d
}

// FromIntervals creates a domain from the union of the set of unordered `intervals`.
// If an interval's `start` is greater than its `end`, the interval is considered empty.
func FromIntervals(intervals []ClosedInterval) Domain {
	itvs := make([]ClosedInterval, len(intervals))
	copy(itvs, intervals)
	domain := Domain{itvs}
	domain.joinIntervals()
	return domain
}

// FlattenedIntervals returns the flattened list of interval bounds of the domain.
// For example, if Domain d is equal to `[0,2][5,5][9,10]` will return `[0,2,5,5,9,10]`.
func (d Domain) FlattenedIntervals() []int64 {
	var result []int64
	for _, i := range d.intervals {
		result = append(result, i.Start, i.End)
	}
	return result
}

// Min returns the minimum value of the domain, and returns false if no minimum exists,
// i.e. if the domain is empty.
func (d Domain) Min() (int64, bool) {
	if len(d.intervals) == 0 {
		return 0, false
	}
	return d.intervals[0].Start, true
}

// Max returns the maximum value of the domain, and returns false if no maximum exists,
// i.e. if the domain is empty.
func (d Domain) Max() (int64, bool) {
	if len(d.intervals) == 0 {
		return 0, false
	}
	return d.intervals[len(d.intervals)-1].End, true
}

// IsEmpty reports whether the domain holds no value.
func (d Domain) IsEmpty() bool {
	return len(d.intervals) == 0
}

// Size returns the number of values in the domain.
func (d Domain) Size() int64 {
	var n int64
	for _, i := range d.intervals {
		n += i.End - i.Start + 1
	}
	return n
}

// Contains reports whether `v` belongs to the domain.
func (d Domain) Contains(v int64) bool {
	k := sort.Search(len(d.intervals), func(i int) bool { return d.intervals[i].End >= v })
	return k < len(d.intervals) && d.intervals[k].Start <= v
}

// Values returns the values of the domain in ascending order.
func (d Domain) Values() []int64 {
	values := make([]int64, 0, d.Size())
	for _, i := range d.intervals {
		for v := i.Start; v <= i.End; v++ {
			values = append(values, v)
		}
	}
	return values
}

// Remove returns the domain without `v`.
func (d Domain) Remove(v int64) Domain {
	k := sort.Search(len(d.intervals), func(i int) bool { return d.intervals[i].End >= v })
	if k == len(d.intervals) || d.intervals[k].Start > v {
		return d
	}
	itv := d.intervals[k]
	result := make([]ClosedInterval, 0, len(d.intervals)+1)
	result = append(result, d.intervals[:k]...)
	if itv.Start < v {
		result = append(result, ClosedInterval{itv.Start, v - 1})
	}
	if v < itv.End {
		result = append(result, ClosedInterval{v + 1, itv.End})
	}
	result = append(result, d.intervals[k+1:]...)
	if len(result) == 0 {
		return NewEmptyDomain()
	}
	return Domain{result}
}

// Difference returns the values of `d` that are not in `o`.
func (d Domain) Difference(o Domain) Domain {
	var result []ClosedInterval
	j := 0
	for _, itv := range d.intervals {
		start := itv.Start
		for j < len(o.intervals) && o.intervals[j].End < start {
			j++
		}
		for k := j; k < len(o.intervals) && o.intervals[k].Start <= itv.End && start <= itv.End; k++ {
			if o.intervals[k].Start > start {
				result = append(result, ClosedInterval{start, o.intervals[k].Start - 1})
			}
			start = o.intervals[k].End + 1
		}
		if start <= itv.End {
			result = append(result, ClosedInterval{start, itv.End})
		}
	}
	return Domain{result}
}

// String returns the domain in the `[0,2][5,5]` form.
func (d Domain) String() string {
	var sb strings.Builder
	for _, i := range d.intervals {
		fmt.Fprintf(&sb, "[%d,%d]", i.Start, i.End)
	}
	return sb.String()
}
