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

// [START program]
// The reduce_overlaps_sample command enumerates every way of picking one interval per
// group so that no two picked intervals overlap.
package main

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/ortools-contrib/overlaps/overlaps/go/search"
	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
)

func reduceOverlapsSample() error {
	b := selection.NewBuilder()

	a := b.AddGroup(selection.Interval{Start: 0, End: 3}, selection.Interval{Start: 4, End: 6})
	c := b.AddGroup(selection.Interval{Start: 1, End: 2}, selection.Interval{Start: 7, End: 9})

	m, err := b.Model()
	if err != nil {
		return fmt.Errorf("failed to instantiate the selection model: %w", err)
	}

	response, err := search.Search(m)
	if err != nil {
		return fmt.Errorf("failed to search the model: %w", err)
	}

	fmt.Printf("Status: %v\n", response.Status)
	for i, sol := range response.Solutions {
		fmt.Printf("Solution %v: %v = %v (%v, %v), %v = %v (%v, %v)\n", i,
			a.Selector.Name(), search.SolutionValue(sol, a.Selector),
			search.SolutionValue(sol, a.Start), search.SolutionValue(sol, a.End),
			c.Selector.Name(), search.SolutionValue(sol, c.Selector),
			search.SolutionValue(sol, c.Start), search.SolutionValue(sol, c.End))
	}

	fmt.Println("Number of solutions found: ", len(response.Solutions))

	return nil
}

func main() {
	if err := reduceOverlapsSample(); err != nil {
		log.Exitf("reduceOverlapsSample returned with error: %v", err)
	}
}

// [END program]
