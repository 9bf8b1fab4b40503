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
	"strings"
	"time"
)

// Strategy selects how much pruning the search does at each branch.
type Strategy int32

const (
	// LazyPairwise checks the exclusion constraints between two groups once both
	// selectors are assigned.
	LazyPairwise Strategy = iota
	// ForwardChecking also removes, after each assignment, the values of the groups not
	// yet assigned that conflict with it, and backtracks as soon as one group has no
	// value left. It finds the same solutions in the same order with fewer branches.
	ForwardChecking
	// SatLookahead does the pruning of ForwardChecking and also asks a SAT solver,
	// after each assignment, whether the assigned prefix extends to a solution. Every
	// branch it keeps leads to at least one solution.
	SatLookahead
)

func (s Strategy) String() string {
	switch s {
	case LazyPairwise:
		return "LAZY_PAIRWISE"
	case ForwardChecking:
		return "FORWARD_CHECKING"
	case SatLookahead:
		return "SAT_LOOKAHEAD"
	}
	return fmt.Sprintf("Strategy(%d)", int32(s))
}

// ParseStrategy returns the strategy named `s`. It accepts the String form and the
// short names `lazy`, `forward` and `sat`, ignoring case.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "lazy", "lazy_pairwise":
		return LazyPairwise, nil
	case "forward", "forward_checking":
		return ForwardChecking, nil
	case "sat", "sat_lookahead":
		return SatLookahead, nil
	}
	return LazyPairwise, fmt.Errorf("unknown strategy %q: %w", s, ErrInvalidParameters)
}

// Parameters holds the limits and the strategy of a search. The zero value searches
// for all solutions without any limit using LazyPairwise.
type Parameters struct {
	// MaxSolutions stops the search once that many solutions are found. Zero means no
	// limit.
	MaxSolutions int64
	// MaxTime stops the search once it has run that long. Zero means no limit.
	MaxTime time.Duration
	// Strategy selects the pruning done at each branch.
	Strategy Strategy
}

func (p Parameters) validate() error {
	if p.MaxSolutions < 0 {
		return fmt.Errorf("MaxSolutions = %d must not be negative: %w", p.MaxSolutions, ErrInvalidParameters)
	}
	if p.MaxTime < 0 {
		return fmt.Errorf("MaxTime = %v must not be negative: %w", p.MaxTime, ErrInvalidParameters)
	}
	switch p.Strategy {
	case LazyPairwise, ForwardChecking, SatLookahead:
	default:
		return fmt.Errorf("unknown strategy %v: %w", p.Strategy, ErrInvalidParameters)
	}
	return nil
}
