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

// The search_with_limits_sample command is an example of setting a solution limit and a
// time limit on the search.
package main

import (
	"fmt"
	"time"

	log "github.com/golang/glog"
	"github.com/ortools-contrib/overlaps/overlaps/go/search"
	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
)

func searchWithLimitsSample() error {
	b := selection.NewBuilder()

	// Five groups of four pairwise disjoint intervals: every combination is a solution.
	for g := int64(0); g < 5; g++ {
		var group selection.Group
		for k := int64(0); k < 4; k++ {
			start := 100*g + 10*k
			group = append(group, selection.Interval{Start: start, End: start + 5})
		}
		b.AddGroup(group...)
	}

	m, err := b.Model()
	if err != nil {
		return fmt.Errorf("failed to instantiate the selection model: %w", err)
	}

	// Stops after 10 solutions or 10 seconds, whichever comes first.
	params := &search.Parameters{
		MaxSolutions: 10,
		MaxTime:      10 * time.Second,
		Strategy:     search.ForwardChecking,
	}

	response, err := search.SearchWithParameters(m, params)
	if err != nil {
		return fmt.Errorf("failed to search the model: %w", err)
	}

	fmt.Printf("Status: %v\n", response.Status)
	for i, sol := range response.Solutions {
		fmt.Printf("Solution %v: %v\n", i, sol.Intervals)
	}
	fmt.Printf("Branches: %v, conflicts: %v\n", response.NumBranches, response.NumConflicts)

	return nil
}

func main() {
	if err := searchWithLimitsSample(); err != nil {
		log.Exitf("searchWithLimitsSample returned with error: %v", err)
	}
}
