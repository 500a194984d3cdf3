// grape/format.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package grape

import (
	gomath "math"
	"strconv"
	"strings"
)

// Null values are written as empty cells. Floating-point columns use NaN
// to represent null and string columns use the empty string.

// FormatFloat returns the shortest representation of v that parses back to
// the same value. Integral values keep a trailing ".0" so that the reader
// sees a real-valued column, and very large or small magnitudes use
// exponential notation.
func FormatFloat(v float64) string {
	if gomath.IsNaN(v) {
		return ""
	}
	if gomath.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return e
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatBool writes booleans the way the simulation engine's table reader
// expects them.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// FormatFlag writes booleans that are stored as integer columns.
func FormatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Null returns a NaN, the null value for floating-point columns.
func Null() float64 {
	return gomath.NaN()
}
