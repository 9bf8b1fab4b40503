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

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
	"gopkg.in/yaml.v3"
)

// groupsFile is the layout of an input file:
//
//	groups:
//	  - [[0, 3], [4, 6]]
//	  - [[1, 2], [7, 9]]
//
// JSON input with the same layout is accepted too.
type groupsFile struct {
	Groups [][][]int64 `yaml:"groups"`
}

// loadGroups reads the groups of intervals from `r`.
func loadGroups(r io.Reader) ([]selection.Group, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f groupsFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input")
		}
		return nil, fmt.Errorf("decoding groups: %w", err)
	}

	groups := make([]selection.Group, len(f.Groups))
	for g, group := range f.Groups {
		for k, pair := range group {
			if len(pair) != 2 {
				return nil, fmt.Errorf("interval %d of group %d has %d bounds, want [start, end]", k, g, len(pair))
			}
			groups[g] = append(groups[g], selection.Interval{Start: pair[0], End: pair[1]})
		}
	}
	return groups, nil
}
