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

// The interrupt_search_sample command is an example of stopping a long search from
// another goroutine, here on SIGINT or after one second.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/golang/glog"
	"github.com/ortools-contrib/overlaps/overlaps/go/search"
	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
)

func interruptSearchSample() error {
	var groups []selection.Group
	for g := int64(0); g < 10; g++ {
		var group selection.Group
		for k := int64(0); k < 10; k++ {
			start := 1000*g + 10*k
			group = append(group, selection.Interval{Start: start, End: start + 5})
		}
		groups = append(groups, group)
	}
	// The last group overlaps every other interval, so the search only learns that the
	// model is infeasible after trying all 10^10 combinations of the first groups.
	groups = append(groups, selection.Group{{Start: -1, End: 100000}})

	m, err := selection.Build(groups)
	if err != nil {
		return fmt.Errorf("failed to instantiate the selection model: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	interrupt := make(chan struct{})
	go func() {
		select {
		case <-sigs:
		case <-time.After(time.Second):
		}
		close(interrupt)
	}()

	response, err := search.SearchInterruptibleWithParameters(m, nil, interrupt)
	if err != nil {
		return fmt.Errorf("failed to search the model: %w", err)
	}

	fmt.Printf("Status: %v\n", response.Status)
	fmt.Printf("Solutions found before the interrupt: %v\n", len(response.Solutions))
	fmt.Printf("Branches: %v, conflicts: %v, wall time: %v\n", response.NumBranches, response.NumConflicts, response.WallTime)

	return nil
}

func main() {
	if err := interruptSearchSample(); err != nil {
		log.Exitf("interruptSearchSample returned with error: %v", err)
	}
}
