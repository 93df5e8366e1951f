// SPDX-License-Identifier: EPL-2.0

package stream

import "math"

// Signal maps a time in seconds to a sample value. Values in [-1, 1] stay
// well inside int16 after Headroom scaling; larger values saturate.
type Signal func(t float64) float64

// Sine returns sin(2*pi*freq*t).
func Sine(freq float64) Signal {
	w := 2 * math.Pi * freq
	return func(t float64) float64 {
		return math.Sin(w * t)
	}
}

// Square returns +1 for the first half of each cycle and -1 for the second.
func Square(freq float64) Signal {
	return func(t float64) float64 {
		_, frac := math.Modf(t * freq)
		if frac < 0 {
			frac++
		}
		if frac < 0.5 {
			return 1
		}
		return -1
	}
}

func Silence(float64) float64 { return 0 }
