// math/stats.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

// RMS returns the root mean square of the given values. NaN values are
// skipped; if no value is defined the result is NaN.
func RMS(v []float64) float64 {
	var sum float64
	n := 0
	for _, x := range v {
		if gomath.IsNaN(x) {
			continue
		}
		sum += Sqr(x)
		n++
	}
	if n == 0 {
		return gomath.NaN()
	}
	return gomath.Sqrt(sum / float64(n))
}
