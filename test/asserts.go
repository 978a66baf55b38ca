// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package test supplies the small set of assertion helpers used across this
// module's test suite, in place of a third-party assertion library.
package test

import (
	"math"
	"reflect"
	"testing"
)

func isSuccess(val interface{}) bool {
	if val == nil {
		return true
	}
	switch v := val.(type) {
	case bool:
		return v
	case error:
		return v == nil
	default:
		return false
	}
}

// ExpectSuccess fails the test unless val is true, a nil error, or nil.
func ExpectSuccess(t *testing.T, val interface{}) {
	t.Helper()
	if !isSuccess(val) {
		t.Fatalf("expected success, got %v", val)
	}
}

// ExpectFailure fails the test unless val is false or a non-nil error.
func ExpectFailure(t *testing.T, val interface{}) {
	t.Helper()
	if isSuccess(val) {
		t.Fatalf("expected failure, got %v", val)
	}
}

// ExpectEquality fails the test unless want and got are deeply equal.
func ExpectEquality(t *testing.T, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// ExpectInequality fails the test if want and got are deeply equal.
func ExpectInequality(t *testing.T, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		t.Fatalf("expected %v to differ from %v", want, got)
	}
}

func asFloat(val interface{}) float64 {
	return reflect.ValueOf(val).Convert(reflect.TypeOf(float64(0))).Float()
}

// ExpectApproximate fails the test unless got is within tolerance (a
// fraction of want's magnitude) of want.
func ExpectApproximate(t *testing.T, want, got interface{}, tolerance float64) {
	t.Helper()
	w := asFloat(want)
	g := asFloat(got)
	allowed := tolerance * math.Abs(w)
	if allowed == 0 {
		allowed = tolerance
	}
	if math.Abs(w-g) > allowed {
		t.Fatalf("expected %v to be within %v%% of %v, got %v", got, tolerance*100, want, got)
	}
}
