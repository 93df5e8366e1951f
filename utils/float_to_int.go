// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// ScaleToInt16 multiplies v by scale and truncates toward zero.
// Results outside the int16 range saturate instead of wrapping; NaN maps to 0.
func ScaleToInt16(v, scale float64) int16 {
	x := v * scale
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt16:
		return math.MaxInt16
	case x <= math.MinInt16:
		return math.MinInt16
	}

	return int16(x)
}
