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

// Package search enumerates every assignment of a selection.Model that satisfies all
// of its constraints.
//
// The search is a depth-first branching on the selectors `x_0, ..., x_{n-1}` in that
// order, trying the values of each domain in ascending order. Solutions are therefore
// produced in lexicographic order of the selector tuple, the last group varying
// fastest.
package search

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/golang/glog"
	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
)

// ErrInvalidParameters holds the error when the search parameters are out of range.
var ErrInvalidParameters = errors.New("invalid search parameters")

// deadlineCheckPeriod is the number of branches between two reads of the clock.
const deadlineCheckPeriod = 256

// Search enumerates all solutions of the model `m`.
func Search(m *selection.Model) (*Response, error) {
	return SearchWithParameters(m, nil)
}

// SearchWithParameters enumerates the solutions of the model `m` within the limits of
// `params`. A nil `params` means no limit and the LazyPairwise strategy.
func SearchWithParameters(m *selection.Model, params *Parameters) (*Response, error) {
	return SearchInterruptibleWithParameters(m, params, nil)
}

// SearchInterruptibleWithParameters enumerates the solutions of the model `m` within the
// limits of `params`. The search can be interrupted by triggering the `interrupt`, in
// which case the solutions found so far are returned with the LimitReached status.
//
// It returns an error wrapping selection.ErrUnsatisfiableModel if the model is nil or
// structurally invalid, and an error wrapping ErrInvalidParameters if `params` is out
// of range. Finding no solution is not an error: the Infeasible status reports it.
func SearchInterruptibleWithParameters(m *selection.Model, params *Parameters, interrupt <-chan struct{}) (*Response, error) {
	if m == nil {
		return nil, fmt.Errorf("nil model: %w", selection.ErrUnsatisfiableModel)
	}
	if err := m.Validate(); err != nil {
		log.Errorf("Refusing to search an invalid model: %v", err)
		return nil, err
	}
	var p Parameters
	if params != nil {
		p = *params
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	s := newSearcher(m, p)
	if p.Strategy != LazyPairwise {
		conflicts, err := m.Conflicts()
		if err != nil {
			return nil, fmt.Errorf("building the conflict index failed: %w", err)
		}
		s.conflicts = conflicts
		if p.Strategy == SatLookahead {
			s.oracle = newSatOracle(m, conflicts)
		}
	}

	solveDone := make(chan struct{})
	defer close(solveDone)
	// Wait for either the search to finish or the search to be interrupted.
	if interrupt != nil {
		go func() {
			select {
			case <-interrupt:
				s.interrupted.Store(true)
			case <-solveDone:
			}
		}()
		// An interrupt closed before the call must stop the search before its first
		// branch, whatever the scheduling of the goroutine above.
		select {
		case <-interrupt:
			s.interrupted.Store(true)
		default:
		}
	}

	log.V(1).Infof("Searching %d groups with the %v strategy, max %d solutions, max time %v", m.NumGroups(), p.Strategy, p.MaxSolutions, p.MaxTime)
	start := time.Now()
	if p.MaxTime > 0 {
		s.deadline = start.Add(p.MaxTime)
	}
	s.branch(0)
	s.res.WallTime = time.Since(start)

	switch {
	case s.stopped:
		s.res.Status = LimitReached
	case len(s.res.Solutions) == 0:
		s.res.Status = Infeasible
	default:
		s.res.Status = AllSolutions
	}
	log.V(1).Infof("Search finished with status %v: %d solutions, %d branches, %d conflicts in %v",
		s.res.Status, len(s.res.Solutions), s.res.NumBranches, s.res.NumConflicts, s.res.WallTime)
	return s.res, nil
}

// searcher holds the state of one search. It is owned by the calling goroutine, except
// for `interrupted` which is set by the interrupt watcher.
type searcher struct {
	m      *selection.Model
	params Parameters

	// selectors[g] is the value of x_g, or -1 while unassigned.
	selectors []int64
	// domains[g] is the live domain of x_g. LazyPairwise never narrows it.
	domains   []selection.Domain
	conflicts *selection.ConflictIndex
	oracle    *satOracle

	deadline    time.Time
	interrupted atomic.Bool
	stopped     bool

	res *Response
}

func newSearcher(m *selection.Model, p Parameters) *searcher {
	n := m.NumGroups()
	s := &searcher{
		m:         m,
		params:    p,
		selectors: make([]int64, n),
		domains:   make([]selection.Domain, n),
		res:       &Response{},
	}
	for g := 0; g < n; g++ {
		s.selectors[g] = -1
		s.domains[g] = m.Vars(g).Selector.Domain()
	}
	return s
}

// shouldStop reports whether a limit has been reached.
func (s *searcher) shouldStop() bool {
	if s.stopped {
		return true
	}
	if s.interrupted.Load() {
		log.V(1).Info("Search interrupted")
		s.stopped = true
	} else if !s.deadline.IsZero() && s.res.NumBranches%deadlineCheckPeriod == 0 && time.Now().After(s.deadline) {
		log.V(1).Infof("Search reached its time limit of %v", s.params.MaxTime)
		s.stopped = true
	}
	return s.stopped
}

// branch tries every value of x_g in ascending order and recurses on the next group.
func (s *searcher) branch(g int) {
	if g == len(s.selectors) {
		s.record()
		return
	}
	for _, v := range s.domains[g].Values() {
		if s.shouldStop() {
			break
		}
		s.res.NumBranches++
		s.selectors[g] = v
		if !s.consistent(g) {
			s.res.NumConflicts++
			continue
		}
		saved, ok := s.narrow(g, v)
		if ok && s.oracle != nil && g+1 < len(s.selectors) && !s.oracle.extendable(s.selectors, g) {
			if log.V(2) {
				log.Infof("Pruned x_%d=%d: no solution extends the assignment", g, v)
			}
			ok = false
		}
		if !ok {
			s.res.NumConflicts++
			copy(s.domains[g+1:], saved)
			continue
		}
		s.branch(g + 1)
		if saved != nil {
			copy(s.domains[g+1:], saved)
		}
	}
	s.selectors[g] = -1
}

// consistent checks the constraints decided by the assignment of x_g: its domain bound,
// its element constraints, and the exclusions against every group assigned before it.
// Pairs with unassigned groups are left for later.
func (s *searcher) consistent(g int) bool {
	for _, c := range s.m.GroupConstraints(g) {
		if holds, _ := s.m.Eval(c, s.selectors); !holds {
			return false
		}
	}
	for j := 0; j < g; j++ {
		a, b := s.m.Exclusions(j, g)
		for _, c := range []selection.Constraint{a, b} {
			if holds, _ := s.m.Eval(c, s.selectors); !holds {
				if log.V(2) {
					log.Infof("Pruned x_%d=%d: %s violated with x_%d=%d", g, s.selectors[g], c.Name(), j, s.selectors[j])
				}
				return false
			}
		}
	}
	return true
}

// narrow removes from the domains of the groups after `g` the values in conflict with
// x_g == v. It returns the domains before narrowing, and false if one became empty.
// With the LazyPairwise strategy it does nothing.
func (s *searcher) narrow(g int, v int64) ([]selection.Domain, bool) {
	if s.conflicts == nil {
		return nil, true
	}
	saved := append([]selection.Domain(nil), s.domains[g+1:]...)
	for h := g + 1; h < len(s.domains); h++ {
		s.domains[h] = s.domains[h].Difference(s.conflicts.With(g, v, h))
		if s.domains[h].IsEmpty() {
			if log.V(2) {
				log.Infof("Pruned x_%d=%d: no value left for x_%d", g, v, h)
			}
			return saved, false
		}
	}
	return saved, true
}

func (s *searcher) record() {
	sol := Solution{
		Selectors: append([]int64(nil), s.selectors...),
		Intervals: make([]selection.Interval, len(s.selectors)),
	}
	for g, v := range s.selectors {
		sol.Intervals[g] = s.m.Interval(g, v)
	}
	s.res.Solutions = append(s.res.Solutions, sol)
	if log.V(2) {
		log.Infof("Solution %d: %v", len(s.res.Solutions), sol.Intervals)
	}
	if s.params.MaxSolutions > 0 && int64(len(s.res.Solutions)) >= s.params.MaxSolutions {
		log.V(1).Infof("Search reached its limit of %d solutions", s.params.MaxSolutions)
		s.stopped = true
	}
}

// SolutionValue returns the value of `v` in the solution `sol`.
func SolutionValue(sol Solution, v selection.IntVar) int64 {
	g := v.Group()
	switch v.Kind() {
	case selection.StartVar:
		return sol.Intervals[g].Start
	case selection.EndVar:
		return sol.Intervals[g].End
	}
	return sol.Selectors[g]
}
