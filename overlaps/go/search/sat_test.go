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
	"math/rand"
	"testing"

	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
)

func TestSatOracle_Extendable(t *testing.T) {
	m := buildModel(t,
		selection.Group{{Start: 0, End: 3}, {Start: 4, End: 6}},
		selection.Group{{Start: 1, End: 2}, {Start: 7, End: 9}},
		selection.Group{{Start: 5, End: 8}, {Start: 10, End: 12}})
	ci, err := m.Conflicts()
	if err != nil {
		t.Fatalf("Conflicts() returned with unexpected error %v", err)
	}
	o := newSatOracle(m, ci)

	testCases := []struct {
		selectors []int64
		g         int
		want      bool
	}{
		{selectors: []int64{0, -1, -1}, g: 0, want: true},
		{selectors: []int64{1, -1, -1}, g: 0, want: true},
		{selectors: []int64{0, 0, -1}, g: 1, want: false},
		{selectors: []int64{0, 1, -1}, g: 1, want: true},
		{selectors: []int64{1, 1, -1}, g: 1, want: true},
		{selectors: []int64{0, 1, 0}, g: 2, want: false},
		{selectors: []int64{1, 0, 1}, g: 2, want: true},
	}
	for _, test := range testCases {
		if got := o.extendable(test.selectors, test.g); got != test.want {
			t.Errorf("extendable(%v, %d) = %v, want %v", test.selectors, test.g, got, test.want)
		}
	}
}

// noSolutionGroups has no solution since every interval of the second group conflicts
// with the only interval of the third, which forward checking only finds once x_1 is
// assigned.
var noSolutionGroups = []selection.Group{
	{{Start: 0, End: 1}, {Start: 5, End: 6}},
	{{Start: 8, End: 16}, {Start: 9, End: 18}},
	{{Start: 14, End: 18}},
}

func TestSatOracle_NoSolution(t *testing.T) {
	m := buildModel(t, noSolutionGroups...)
	ci, err := m.Conflicts()
	if err != nil {
		t.Fatalf("Conflicts() returned with unexpected error %v", err)
	}
	o := newSatOracle(m, ci)
	if o.feasible {
		t.Errorf("newSatOracle(%v).feasible = true, want false", noSolutionGroups)
	}
	for _, selectors := range [][]int64{{0, -1, -1}, {1, -1, -1}, {1, 0, -1}} {
		if o.extendable(selectors, 0) {
			t.Errorf("extendable(%v, 0) = true, want false", selectors)
		}
	}
}

func TestSearch_SatLookaheadNoSolution(t *testing.T) {
	res, err := SearchWithParameters(buildModel(t, noSolutionGroups...), &Parameters{Strategy: SatLookahead})
	if err != nil {
		t.Fatalf("SearchWithParameters() returned with unexpected error %v", err)
	}
	if res.Status != Infeasible {
		t.Errorf("SearchWithParameters() returned status = %v, want %v", res.Status, Infeasible)
	}
	if len(res.Solutions) != 0 {
		t.Errorf("SearchWithParameters() returned solutions %v, want none", res.Solutions.Intervals())
	}
	// Both values of x_0 are rejected without going deeper.
	if res.NumBranches != 2 || res.NumConflicts != 2 {
		t.Errorf("SearchWithParameters() took %d branches and %d conflicts, want 2 and 2", res.NumBranches, res.NumConflicts)
	}
}

// Every branch kept by SatLookahead leads to a solution, so it never backtracks from a
// group after the first without recording one.
func TestSearch_SatLookaheadDeadEnds(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for iter := 0; iter < 100; iter++ {
		groups := randomGroups(r)
		res, err := SearchWithParameters(buildModel(t, groups...), &Parameters{Strategy: SatLookahead})
		if err != nil {
			t.Fatalf("SearchWithParameters() returned with unexpected error %v", err)
		}
		if res.Status == Infeasible {
			continue
		}
		// Values tried minus values rejected is the number of nodes kept. Each kept node
		// at depth n is a solution and each kept inner node has a kept child.
		kept := res.NumBranches - res.NumConflicts
		if limit := int64(len(res.Solutions) * len(groups)); kept > limit {
			t.Errorf("groups %v: %d branches kept for %d solutions, want at most %d", groups, kept, len(res.Solutions), limit)
		}
	}
}
