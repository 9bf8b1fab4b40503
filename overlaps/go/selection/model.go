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

// Package selection builds the decision model of the interval selection problem:
// pick exactly one interval from every group so that no two picked intervals overlap.
//
// The `Builder` struct collects the groups and produces an immutable `Model`.
// For every group `i` the model holds a selector variable `x_i` with domain
// `[0, len(group_i)-1]` and two endpoint variables `start_i` and `end_i` whose
// domain is the span of all interval endpoints. The endpoint variables are not
// decisions: they are bound to the selected interval by element constraints.
// The `IntVar` and `Constraint` structs are references to the variables and
// constraints of a model.
package selection

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/golang/glog"
)

var (
	// ErrInvalidInput holds the error when the groups given to the builder are malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsatisfiableModel holds the error when a model is structurally unable to have
	// any assignment, e.g. a selector variable with an empty domain.
	ErrUnsatisfiableModel = errors.New("unsatisfiable model")
	// ErrModelFinalized holds the error when a group is added after the model was built.
	ErrModelFinalized = errors.New("model already built")
)

// Interval is a candidate interval. `Start` must not be greater than `End`; an
// interval with `Start == End` is a legal zero-length interval.
type Interval struct {
	Start int64
	End   int64
}

// String returns the interval in the `(start, end)` form.
func (iv Interval) String() string {
	return fmt.Sprintf("(%d, %d)", iv.Start, iv.End)
}

// startsInside reports whether the start of `iv` lies strictly inside `(o.Start, o.End)`.
func (iv Interval) startsInside(o Interval) bool {
	return o.Start < iv.Start && iv.Start < o.End
}

// Overlaps reports whether one of the two intervals starts strictly inside the other.
// Intervals that only touch, i.e. `iv.End == o.Start`, do not overlap. Neither do two
// intervals with the same start, since that start is inside neither open span.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.startsInside(o) || o.startsInside(iv)
}

// Group is an ordered, non-empty list of candidate intervals. Exactly one of them is
// selected in every assignment.
type Group []Interval

type (
	// VarIndex is the index of a variable in the model.
	VarIndex int32
	// ConstrIndex is the index of a constraint in the model.
	ConstrIndex int32
)

// VarKind tells what a variable stands for.
type VarKind int32

const (
	// SelectorVar is the index of the selected interval in its group.
	SelectorVar VarKind = iota
	// StartVar is the start of the selected interval.
	StartVar
	// EndVar is the end of the selected interval.
	EndVar
)

func (k VarKind) String() string {
	switch k {
	case SelectorVar:
		return "SELECTOR"
	case StartVar:
		return "START"
	case EndVar:
		return "END"
	}
	return fmt.Sprintf("VarKind(%d)", int32(k))
}

// ConstraintKind tells which relation a constraint enforces.
type ConstraintKind int32

const (
	// SelectorBound enforces `x_i < len(group_i)`.
	SelectorBound ConstraintKind = iota
	// ElementStart enforces `start_i == group_i[x_i].Start`.
	ElementStart
	// ElementEnd enforces `end_i == group_i[x_i].End`.
	ElementEnd
	// Exclusion enforces that `start_i` is not strictly inside `(start_j, end_j)`.
	Exclusion
)

func (k ConstraintKind) String() string {
	switch k {
	case SelectorBound:
		return "SELECTOR_BOUND"
	case ElementStart:
		return "ELEMENT_START"
	case ElementEnd:
		return "ELEMENT_END"
	case Exclusion:
		return "EXCLUSION"
	}
	return fmt.Sprintf("ConstraintKind(%d)", int32(k))
}

type variable struct {
	name   string
	kind   VarKind
	group  int
	domain Domain
}

// constraint stores the groups it relates. For an exclusion, `group` is the group
// whose start must stay out of the span of group `other`. For the other kinds
// `other` equals `group`.
type constraint struct {
	name  string
	kind  ConstraintKind
	group int
	other int
	vars  []VarIndex
}

// IntVar is a reference to an integer variable in the model.
type IntVar struct {
	ind VarIndex
	m   *Model
}

// Name returns the name of the variable.
func (i IntVar) Name() string {
	return i.m.vars[i.ind].name
}

// Domain returns the domain of the variable.
func (i IntVar) Domain() Domain {
	return i.m.vars[i.ind].domain
}

// Index returns the index of the variable.
func (i IntVar) Index() VarIndex {
	return i.ind
}

// Kind returns what the variable stands for.
func (i IntVar) Kind() VarKind {
	return i.m.vars[i.ind].kind
}

// Group returns the index of the group the variable belongs to.
func (i IntVar) Group() int {
	return i.m.vars[i.ind].group
}

// String returns a short string describing the variable, e.g. `x_0(0..3)`.
func (i IntVar) String() string {
	out := ""
	domain := i.Domain().FlattenedIntervals()
	for n := 0; n < len(domain); n += 2 {
		if n != 0 {
			out += ", "
		}
		if domain[n] == domain[n+1] {
			out += fmt.Sprintf("%d", domain[n])
		} else {
			out += fmt.Sprintf("%d..%d", domain[n], domain[n+1])
		}
	}
	return fmt.Sprintf("%s(%s)", i.Name(), out)
}

// GroupVars holds the three variables of a group.
type GroupVars struct {
	Selector IntVar
	Start    IntVar
	End      IntVar
}

// Constraint is a reference to a constraint in the model.
type Constraint struct {
	ind ConstrIndex
	m   *Model
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.m.constraints[c.ind].name
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// Kind returns the relation enforced by the constraint.
func (c Constraint) Kind() ConstraintKind {
	return c.m.constraints[c.ind].kind
}

// Groups returns the groups related by the constraint. Both values are equal for
// the constraints that concern a single group.
func (c Constraint) Groups() (int, int) {
	ct := c.m.constraints[c.ind]
	return ct.group, ct.other
}

// Vars returns the variables the constraint is posted on.
func (c Constraint) Vars() []IntVar {
	var vars []IntVar
	for _, ind := range c.m.constraints[c.ind].vars {
		vars = append(vars, IntVar{ind: ind, m: c.m})
	}
	return vars
}

// Model is the immutable result of a Builder. It is safe for concurrent use.
type Model struct {
	groups      []Group
	vars        []variable
	constraints []constraint
	lo, hi      int64

	conflictsOnce sync.Once
	conflicts     *ConflictIndex
	conflictsErr  error
}

// NumGroups returns the number of groups, i.e. the number of selector variables.
func (m *Model) NumGroups() int {
	return len(m.groups)
}

// Group returns a copy of the `i`th group.
func (m *Model) Group(i int) Group {
	return append(Group(nil), m.groups[i]...)
}

// Interval returns the interval selected by value `k` of the selector of group `g`.
func (m *Model) Interval(g int, k int64) Interval {
	return m.groups[g][k]
}

// Endpoints returns the values the element constraints give to `start_g` and
// `end_g` when the selector of group `g` is `k`.
func (m *Model) Endpoints(g int, k int64) (int64, int64) {
	iv := m.groups[g][k]
	return iv.Start, iv.End
}

// Vars returns the variables of group `g`.
func (m *Model) Vars(g int) GroupVars {
	base := VarIndex(3 * g)
	return GroupVars{
		Selector: IntVar{ind: base, m: m},
		Start:    IntVar{ind: base + 1, m: m},
		End:      IntVar{ind: base + 2, m: m},
	}
}

// NumVars returns the number of variables of the model.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// Var returns the variable at index `ind`.
func (m *Model) Var(ind VarIndex) IntVar {
	return IntVar{ind: ind, m: m}
}

// Constraints returns all constraints of the model in emission order.
func (m *Model) Constraints() []Constraint {
	cts := make([]Constraint, len(m.constraints))
	for i := range m.constraints {
		cts[i] = Constraint{ind: ConstrIndex(i), m: m}
	}
	return cts
}

// GroupConstraints returns the constraints posted on group `g` alone: its selector
// bound and its two element constraints.
func (m *Model) GroupConstraints(g int) []Constraint {
	ind := ConstrIndex(3 * g)
	return []Constraint{{ind: ind, m: m}, {ind: ind + 1, m: m}, {ind: ind + 2, m: m}}
}

// Bounds returns the smallest and the largest endpoint over all groups. It is the
// domain of every endpoint variable.
func (m *Model) Bounds() (int64, int64) {
	return m.lo, m.hi
}

// Exclusions returns the two exclusion constraints posted between groups `i` and `j`:
// the first keeps the start of `i` out of the span of `j`, the second keeps the start
// of `j` out of the span of `i`.
func (m *Model) Exclusions(i, j int) (Constraint, Constraint) {
	if i > j {
		a, b := m.Exclusions(j, i)
		return b, a
	}
	n := len(m.groups)
	pair := i*n - i*(i+1)/2 + (j - i - 1)
	ind := ConstrIndex(3*n + 2*pair)
	return Constraint{ind: ind, m: m}, Constraint{ind: ind + 1, m: m}
}

// Eval evaluates constraint `c` under the partial assignment `selectors`, where a
// negative value marks an unassigned selector. It returns whether the constraint
// holds and whether its value is decided: a constraint is only decided once all the
// selectors it depends on are assigned.
func (m *Model) Eval(c Constraint, selectors []int64) (holds, decided bool) {
	ct := m.constraints[c.ind]
	x := selectors[ct.group]
	if x < 0 {
		return true, false
	}
	inGroup := x < int64(len(m.groups[ct.group]))
	switch ct.kind {
	case SelectorBound:
		return inGroup, true
	case ElementStart, ElementEnd:
		if !inGroup {
			return false, true
		}
		target := m.vars[ct.vars[0]]
		start, end := m.Endpoints(ct.group, x)
		if ct.kind == ElementStart {
			return target.domain.Contains(start), true
		}
		return target.domain.Contains(end), true
	case Exclusion:
		y := selectors[ct.other]
		if y < 0 {
			return true, false
		}
		if !inGroup || y >= int64(len(m.groups[ct.other])) {
			return false, true
		}
		return !m.groups[ct.group][x].startsInside(m.groups[ct.other][y]), true
	}
	return false, true
}

// Validate returns an error wrapping ErrUnsatisfiableModel if the model cannot have
// any assignment by construction. Models returned by a Builder always validate.
func (m *Model) Validate() error {
	n := len(m.groups)
	if n == 0 {
		return fmt.Errorf("model has no groups: %w", ErrUnsatisfiableModel)
	}
	if len(m.vars) != 3*n {
		return fmt.Errorf("model has %d variables for %d groups: %w", len(m.vars), n, ErrUnsatisfiableModel)
	}
	if want := 3*n + n*(n-1); len(m.constraints) != want {
		return fmt.Errorf("model has %d constraints, want %d: %w", len(m.constraints), want, ErrUnsatisfiableModel)
	}
	for g, group := range m.groups {
		vars := m.Vars(g)
		sel := vars.Selector.Domain()
		if sel.IsEmpty() {
			return fmt.Errorf("selector %v has an empty domain: %w", vars.Selector.Name(), ErrUnsatisfiableModel)
		}
		if lo, _ := sel.Min(); lo < 0 {
			return fmt.Errorf("selector %v has a negative value: %w", vars.Selector, ErrUnsatisfiableModel)
		}
		if hi, _ := sel.Max(); hi >= int64(len(group)) {
			return fmt.Errorf("selector %v exceeds group %d of size %d: %w", vars.Selector, g, len(group), ErrUnsatisfiableModel)
		}
		for _, iv := range group {
			if !vars.Start.Domain().Contains(iv.Start) || !vars.End.Domain().Contains(iv.End) {
				return fmt.Errorf("endpoints of %v are outside %v or %v: %w", iv, vars.Start, vars.End, ErrUnsatisfiableModel)
			}
		}
	}
	return nil
}

// Builder collects interval groups and builds a Model.
type Builder struct {
	m     *Model
	built bool
	// The first and only the first error is reported in Model.
	err error
}

// NewBuilder creates and returns a new Builder.
func NewBuilder() *Builder {
	return &Builder{m: &Model{}}
}

// setErrorf records the error built from `format` and `sentinel` if no error was
// recorded yet.
func (b *Builder) setErrorf(sentinel error, format string, a ...any) {
	args := make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = sentinel
	err := fmt.Errorf(format+": %w", args...)
	log.Errorf("%v", err)
	if b.err == nil {
		b.err = err
	}
}

// AddGroup adds a group of candidate intervals and returns its variables. The group
// is copied. The domain of the endpoint variables is only known once all groups are
// added, so it is set by Model.
func (b *Builder) AddGroup(intervals ...Interval) GroupVars {
	if b.built {
		b.setErrorf(ErrModelFinalized, "cannot add group %v", intervals)
		return GroupVars{}
	}
	g := len(b.m.groups)
	if len(intervals) == 0 {
		b.setErrorf(ErrInvalidInput, "group %d is empty", g)
	}
	for k, iv := range intervals {
		if iv.Start > iv.End {
			b.setErrorf(ErrInvalidInput, "interval %d %v of group %d has start > end", k, iv, g)
		}
	}
	b.m.groups = append(b.m.groups, append(Group(nil), intervals...))
	b.m.vars = append(b.m.vars,
		variable{name: fmt.Sprintf("x_%d", g), kind: SelectorVar, group: g, domain: NewDomain(0, int64(len(intervals))-1)},
		variable{name: fmt.Sprintf("start_%d", g), kind: StartVar, group: g},
		variable{name: fmt.Sprintf("end_%d", g), kind: EndVar, group: g},
	)
	return b.m.Vars(g)
}

// Model finalizes and returns the model. It returns an error wrapping ErrInvalidInput
// if any group was empty or held an interval whose start is greater than its end, or
// if no group was added. Further calls return the same model, unless a group was added
// after the first call: the builder then keeps returning an error wrapping
// ErrModelFinalized.
func (b *Builder) Model() (*Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return b.m, nil
	}
	m := b.m
	n := len(m.groups)
	if n == 0 {
		b.setErrorf(ErrInvalidInput, "no group was added")
		return nil, b.err
	}

	m.lo, m.hi = m.groups[0][0].Start, m.groups[0][0].End
	for _, group := range m.groups {
		for _, iv := range group {
			m.lo = min(m.lo, iv.Start)
			m.hi = max(m.hi, iv.End)
		}
	}
	for g := 0; g < n; g++ {
		vars := m.Vars(g)
		m.vars[vars.Start.ind].domain = NewDomain(m.lo, m.hi)
		m.vars[vars.End.ind].domain = NewDomain(m.lo, m.hi)
	}

	for g := 0; g < n; g++ {
		vars := m.Vars(g)
		x, s, e := vars.Selector.Name(), vars.Start.Name(), vars.End.Name()
		m.constraints = append(m.constraints,
			constraint{
				name: fmt.Sprintf("%s < %d", x, len(m.groups[g])), kind: SelectorBound,
				group: g, other: g, vars: []VarIndex{vars.Selector.ind},
			},
			constraint{
				name: fmt.Sprintf("%s == element(group_%d, 2*%s)", s, g, x), kind: ElementStart,
				group: g, other: g, vars: []VarIndex{vars.Start.ind, vars.Selector.ind},
			},
			constraint{
				name: fmt.Sprintf("%s == element(group_%d, 2*%s+1)", e, g, x), kind: ElementEnd,
				group: g, other: g, vars: []VarIndex{vars.End.ind, vars.Selector.ind},
			},
		)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.constraints = append(m.constraints, exclusion(m, i, j), exclusion(m, j, i))
		}
	}
	b.built = true

	log.V(1).Infof("Built model with %d groups, %d variables and %d constraints, endpoints in [%d, %d]", n, len(m.vars), len(m.constraints), m.lo, m.hi)
	return m, nil
}

// exclusion returns the constraint keeping `start_i` out of `(start_j, end_j)`.
func exclusion(m *Model, i, j int) constraint {
	vi, vj := m.Vars(i), m.Vars(j)
	return constraint{
		name:  fmt.Sprintf("!(%s > %s && %s < %s)", vi.Start.Name(), vj.Start.Name(), vi.Start.Name(), vj.End.Name()),
		kind:  Exclusion,
		group: i,
		other: j,
		vars:  []VarIndex{vi.Start.ind, vj.Start.ind, vj.End.ind},
	}
}

// Build builds the model of `groups`. It is a shorthand for adding every group to a
// new Builder and calling Model.
func Build(groups []Group) (*Model, error) {
	b := NewBuilder()
	for _, g := range groups {
		b.AddGroup(g...)
	}
	return b.Model()
}
