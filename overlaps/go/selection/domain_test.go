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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDomain_NewEmptyDomain(t *testing.T) {
	got := NewEmptyDomain()
	want := Domain{}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Domain{}, ClosedInterval{})); diff != "" {
		t.Errorf("NewEmptyDomain() returned with unexpected diff (-want+got);\n%s", diff)
	}
}

func TestDomain_NewSingleDomain(t *testing.T) {
	got := NewSingleDomain(-1)
	want := Domain{[]ClosedInterval{{-1, -1}}}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Domain{}, ClosedInterval{})); diff != "" {
		t.Errorf("NewSingleDomain(-1) returned with unexpected diff (-want+got);\n%s", diff)
	}
}

func TestDomain_NewDomain(t *testing.T) {
	testCases := []struct {
		left  int64
		right int64
		want  Domain
	}{
		{
			left:  0,
			right: 3,
			want:  Domain{[]ClosedInterval{{0, 3}}},
		},
		{
			left:  0,
			right: -1,
			want:  Domain{},
		},
	}

	for _, test := range testCases {
		got := NewDomain(test.left, test.right)
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(Domain{}, ClosedInterval{})); diff != "" {
			t.Errorf("NewDomain(%v, %v) returned with unexpected diff (-want+got);\n%s", test.left, test.right, diff)
		}
	}
}

func TestDomain_FromValues(t *testing.T) {
	testCases := []struct {
		values []int64
		want   Domain
	}{
		{
			values: []int64{},
			want:   Domain{},
		},
		{
			values: []int64{4},
			want:   Domain{[]ClosedInterval{{4, 4}}},
		},
		{
			values: []int64{1, 1, 3, 1, 2, 3, 2, 3},
			want:   Domain{[]ClosedInterval{{1, 3}}},
		},
		{
			values: []int64{1, 2, 3, 5, 4, 6, 10, 12, 11, 15, 8},
			want:   Domain{[]ClosedInterval{{1, 6}, {8, 8}, {10, 12}, {15, 15}}},
		},
	}

	for _, test := range testCases {
		got := FromValues(test.values)
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(Domain{}, ClosedInterval{})); diff != "" {
			t.Errorf("FromValues(%v) returned with unexpected diff (-want+got);\n%s", test.values, diff)
		}
	}
}

func TestDomain_FromIntervals(t *testing.T) {
	testCases := []struct {
		intervals []ClosedInterval
		want      Domain
	}{
		{
			intervals: []ClosedInterval{{0, 1}, {0, 10}, {-4, -2}},
			want:      Domain{[]ClosedInterval{{-4, -2}, {0, 10}}},
		},
		{
			intervals: []ClosedInterval{{0, 10}, {11, 5}},
			want:      Domain{[]ClosedInterval{{0, 10}}},
		},
		{
			intervals: []ClosedInterval{{5, 6}, {0, 4}},
			want:      Domain{[]ClosedInterval{{0, 6}}},
		},
	}

	for _, test := range testCases {
		got := FromIntervals(test.intervals)
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(Domain{}, ClosedInterval{})); diff != "" {
			t.Errorf("FromIntervals(%v) returned with unexpected diff (-want+got);\n%s", test.intervals, diff)
		}
	}
}

func TestDomain_MinMax(t *testing.T) {
	d := Domain{[]ClosedInterval{{-1, 1}, {3, 3}, {5, 10}}}

	if got, ok := d.Min(); got != -1 || !ok {
		t.Errorf("Min() returned with unexpected value (%v, %v), want (%v, %v)", got, ok, -1, true)
	}
	if got, ok := d.Max(); got != 10 || !ok {
		t.Errorf("Max() returned with unexpected value (%v, %v), want (%v, %v)", got, ok, 10, true)
	}

	empty := NewEmptyDomain()
	if got, ok := empty.Min(); got != 0 || ok {
		t.Errorf("Min() returned with unexpected value (%v, %v), want (%v, %v)", got, ok, 0, false)
	}
	if got, ok := empty.Max(); got != 0 || ok {
		t.Errorf("Max() returned with unexpected value (%v, %v), want (%v, %v)", got, ok, 0, false)
	}
}

func TestDomain_ContainsSizeValues(t *testing.T) {
	d := Domain{[]ClosedInterval{{0, 1}, {3, 5}}}

	for v, want := range map[int64]bool{-1: false, 0: true, 1: true, 2: false, 3: true, 5: true, 6: false} {
		if got := d.Contains(v); got != want {
			t.Errorf("Contains(%v) = %v, want %v", v, got, want)
		}
	}
	if got, want := d.Size(), int64(5); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
	if diff := cmp.Diff([]int64{0, 1, 3, 4, 5}, d.Values()); diff != "" {
		t.Errorf("Values() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if got, want := d.String(), "[0,1][3,5]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !NewEmptyDomain().IsEmpty() || d.IsEmpty() {
		t.Errorf("IsEmpty() returned with unexpected value")
	}
}

func TestDomain_Remove(t *testing.T) {
	d := Domain{[]ClosedInterval{{0, 1}, {3, 5}}}
	testCases := []struct {
		v    int64
		want Domain
	}{
		{
			v:    0,
			want: Domain{[]ClosedInterval{{1, 1}, {3, 5}}},
		},
		{
			v:    4,
			want: Domain{[]ClosedInterval{{0, 1}, {3, 3}, {5, 5}}},
		},
		{
			v:    2,
			want: d,
		},
		{
			v:    9,
			want: d,
		},
	}

	for _, test := range testCases {
		got := d.Remove(test.v)
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(Domain{}, ClosedInterval{})); diff != "" {
			t.Errorf("Remove(%v) returned with unexpected diff (-want+got);\n%s", test.v, diff)
		}
	}
	if diff := cmp.Diff(Domain{[]ClosedInterval{{0, 1}, {3, 5}}}, d, cmp.AllowUnexported(Domain{}, ClosedInterval{})); diff != "" {
		t.Errorf("Remove() modified its receiver (-want+got);\n%s", diff)
	}
	if got := NewSingleDomain(2).Remove(2); !got.IsEmpty() {
		t.Errorf("NewSingleDomain(2).Remove(2) = %v, want empty", got)
	}
}

func TestDomain_Difference(t *testing.T) {
	testCases := []struct {
		d    Domain
		o    Domain
		want Domain
	}{
		{
			d:    NewDomain(0, 10),
			o:    Domain{[]ClosedInterval{{2, 3}, {5, 5}}},
			want: Domain{[]ClosedInterval{{0, 1}, {4, 4}, {6, 10}}},
		},
		{
			d:    NewDomain(0, 10),
			o:    NewEmptyDomain(),
			want: NewDomain(0, 10),
		},
		{
			d:    Domain{[]ClosedInterval{{0, 2}, {5, 7}}},
			o:    NewDomain(1, 6),
			want: Domain{[]ClosedInterval{{0, 0}, {7, 7}}},
		},
		{
			d:    NewDomain(0, 2),
			o:    NewDomain(0, 2),
			want: Domain{},
		},
		{
			d:    Domain{[]ClosedInterval{{3, 4}, {8, 9}}},
			o:    Domain{[]ClosedInterval{{0, 1}, {5, 6}, {10, 12}}},
			want: Domain{[]ClosedInterval{{3, 4}, {8, 9}}},
		},
	}

	for _, test := range testCases {
		got := test.d.Difference(test.o)
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(Domain{}, ClosedInterval{})); diff != "" {
			t.Errorf("%v.Difference(%v) returned with unexpected diff (-want+got);\n%s", test.d, test.o, diff)
		}
	}
}
