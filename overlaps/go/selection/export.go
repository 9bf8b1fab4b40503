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

	spb "google.golang.org/protobuf/types/known/structpb"
)

// IntervalsAsList returns the intervals as a list of `[start, end]` pairs, the layout
// used by the exported protos. Struct protos hold numbers as float64, so endpoints
// beyond 2^53 in absolute value are rounded once converted.
func IntervalsAsList(ivs []Interval) []any {
	list := make([]any, len(ivs))
	for i, iv := range ivs {
		list[i] = []any{iv.Start, iv.End}
	}
	return list
}

func int64sAsList(values []int64) []any {
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = v
	}
	return list
}

// Proto returns the model as a Struct proto with the fields `groups`, `bounds`,
// `variables` and `constraints`. Domains are flattened as in Domain.FlattenedIntervals.
// Numbers are stored as float64 and are exact up to 2^53 in absolute value.
func (m *Model) Proto() (*spb.Struct, error) {
	groups := make([]any, len(m.groups))
	for g, group := range m.groups {
		groups[g] = IntervalsAsList(group)
	}

	vars := make([]any, len(m.vars))
	for i, v := range m.vars {
		vars[i] = map[string]any{
			"name":   v.name,
			"kind":   v.kind.String(),
			"group":  int64(v.group),
			"domain": int64sAsList(v.domain.FlattenedIntervals()),
		}
	}

	cts := make([]any, len(m.constraints))
	for i, ct := range m.constraints {
		ctVars := make([]any, len(ct.vars))
		for j, ind := range ct.vars {
			ctVars[j] = int64(ind)
		}
		cts[i] = map[string]any{
			"name": ct.name,
			"kind": ct.kind.String(),
			"vars": ctVars,
		}
	}

	s, err := spb.NewStruct(map[string]any{
		"groups":      groups,
		"bounds":      []any{m.lo, m.hi},
		"variables":   vars,
		"constraints": cts,
	})
	if err != nil {
		return nil, fmt.Errorf("exporting model: %w", err)
	}
	return s, nil
}
