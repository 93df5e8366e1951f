// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	t.Parallel()

	s := Sine(1)
	for _, tc := range []struct{ t, want float64 }{
		{0, 0},
		{0.25, 1},
		{0.5, 0},
		{0.75, -1},
	} {
		if got := s(tc.t); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Sine(1)(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestSquare(t *testing.T) {
	t.Parallel()

	s := Square(2)
	for _, tc := range []struct{ t, want float64 }{
		{0, 1},
		{0.1, 1},
		{0.3, -1},
		{0.5, 1},
		{-0.1, -1},
	} {
		if got := s(tc.t); got != tc.want {
			t.Errorf("Square(2)(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestSilence(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0, 1, 1e9} {
		if got := Silence(v); got != 0 {
			t.Errorf("Silence(%v) = %v", v, got)
		}
	}
}
