// math/core.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

func Degrees(r float64) float64 {
	return r * 180 / gomath.Pi
}

func Radians(d float64) float64 {
	return d / 180 * gomath.Pi
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}

// RoundDecimals rounds v to the given number of decimal places, with ties
// going to the even neighbor. A negative number of decimals rounds to
// tens, hundreds, etc.; RoundDecimals(149.9, -2) is 100.
//
// The scale-then-round order matters: it reproduces the values the
// reference tooling writes, which are in turn used as join keys.
func RoundDecimals(v float64, decimals int) float64 {
	if decimals >= 0 {
		s := gomath.Pow(10, float64(decimals))
		return gomath.RoundToEven(v*s) / s
	}
	s := gomath.Pow(10, float64(-decimals))
	return gomath.RoundToEven(v/s) * s
}

// RoundToMultiple rounds v to the nearest multiple of step (ties to even
// multiples). A non-positive step returns v unchanged.
func RoundToMultiple(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return gomath.RoundToEven(v/step) * step
}
