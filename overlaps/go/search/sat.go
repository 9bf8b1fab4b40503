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
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	log "github.com/golang/glog"
	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
)

// satOracle answers whether a partial assignment of the selectors extends to a solution.
//
// The model is encoded with one boolean `b_{g,k}` per interval, true when x_g == k:
//   - one clause `b_{g,0} || ... || b_{g,len-1}` per group,
//   - one clause `!b_{g,k} || !b_{h,l}` per conflicting pair of intervals.
//
// At-most-one clauses are not needed: clearing the extra true literals of a model of
// this formula keeps every clause satisfied, so both formulas are satisfiable together.
type satOracle struct {
	g *gini.Gini
	// base[g] is the variable of b_{g,0} minus one.
	base []int
	// feasible is false when the formula has no model at all. gini must not be asked
	// to solve such a formula again under assumptions.
	feasible bool
}

func newSatOracle(m *selection.Model, ci *selection.ConflictIndex) *satOracle {
	n := m.NumGroups()
	o := &satOracle{g: gini.New(), base: make([]int, n)}
	next := 0
	for g := 0; g < n; g++ {
		o.base[g] = next
		next += len(m.Group(g))
	}

	var clauses int
	for g := 0; g < n; g++ {
		values := m.Vars(g).Selector.Domain().Values()
		for _, k := range values {
			o.g.Add(o.lit(g, k))
		}
		o.g.Add(z.LitNull)
		clauses++

		for _, k := range values {
			for h := g + 1; h < n; h++ {
				for _, l := range ci.With(g, k, h).Values() {
					o.g.Add(o.lit(g, k).Not())
					o.g.Add(o.lit(h, l).Not())
					o.g.Add(z.LitNull)
					clauses++
				}
			}
		}
	}
	o.feasible = o.g.Solve() == 1
	log.V(1).Infof("Encoded %d groups as %d boolean variables and %d clauses, feasible: %v", n, next, clauses, o.feasible)
	return o
}

func (o *satOracle) lit(g int, k int64) z.Lit {
	return z.Var(o.base[g] + int(k) + 1).Pos()
}

// extendable reports whether the values of x_0, ..., x_g in `selectors` are part of a
// solution.
func (o *satOracle) extendable(selectors []int64, g int) bool {
	if !o.feasible {
		return false
	}
	for i := 0; i <= g; i++ {
		o.g.Assume(o.lit(i, selectors[i]))
	}
	return o.g.Solve() == 1
}
