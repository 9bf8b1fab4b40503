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

package search

import (
	"fmt"
	"time"

	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
	spb "google.golang.org/protobuf/types/known/structpb"
)

// Status is the outcome of a search.
type Status int32

const (
	// Unknown is the status of a search that did not run.
	Unknown Status = iota
	// AllSolutions means the search space was exhausted and at least one solution found.
	AllSolutions
	// Infeasible means the search space was exhausted without finding any solution.
	Infeasible
	// LimitReached means the search stopped on its solution limit, its time limit or an
	// interrupt. The solutions found so far are returned.
	LimitReached
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "UNKNOWN"
	case AllSolutions:
		return "ALL_SOLUTIONS"
	case Infeasible:
		return "INFEASIBLE"
	case LimitReached:
		return "LIMIT_REACHED"
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// Solution is one valid assignment: the selected index and the selected interval of
// every group, in group order.
type Solution struct {
	Selectors []int64
	Intervals []selection.Interval
}

// SolutionSet is the ordered list of solutions of a search.
type SolutionSet []Solution

// Intervals returns the selected intervals of every solution.
func (s SolutionSet) Intervals() [][]selection.Interval {
	ivs := make([][]selection.Interval, len(s))
	for i, sol := range s {
		ivs[i] = sol.Intervals
	}
	return ivs
}

// Response holds the result of a search.
type Response struct {
	Status    Status
	Solutions SolutionSet
	// NumBranches counts the values tried for all selectors.
	NumBranches int64
	// NumConflicts counts the values rejected by a constraint.
	NumConflicts int64
	WallTime     time.Duration
}

// Proto returns the response as a Struct proto with the fields `status`, `solutions`
// (lists of `[start, end]` pairs), `selectors`, `num_branches`, `num_conflicts` and
// `wall_time`. Numbers are stored as float64 and are exact up to 2^53 in absolute
// value.
func (r *Response) Proto() (*spb.Struct, error) {
	solutions := make([]any, len(r.Solutions))
	selectors := make([]any, len(r.Solutions))
	for i, sol := range r.Solutions {
		solutions[i] = selection.IntervalsAsList(sol.Intervals)
		xs := make([]any, len(sol.Selectors))
		for g, x := range sol.Selectors {
			xs[g] = x
		}
		selectors[i] = xs
	}
	s, err := spb.NewStruct(map[string]any{
		"status":        r.Status.String(),
		"solutions":     solutions,
		"selectors":     selectors,
		"num_branches":  r.NumBranches,
		"num_conflicts": r.NumConflicts,
		"wall_time":     r.WallTime.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("exporting response: %w", err)
	}
	return s, nil
}
