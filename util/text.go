// util/text.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	gomath "math"
	"strconv"
	"strings"
)

// Atof parses a floating point value, ignoring leading and trailing
// whitespace. NaN and infinities are rejected, as are values that
// overflow a float64.
func Atof(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
		return 0, &strconv.NumError{Func: "Atof", Num: s, Err: strconv.ErrSyntax}
	}
	return v, nil
}

// Atoi parses an integer, ignoring leading and trailing whitespace.
// Integral floating point values such as "2.0" are accepted since
// spreadsheet exports often write counts that way.
func Atoi(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := Atof(s)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, &strconv.NumError{Func: "Atoi", Num: s, Err: strconv.ErrSyntax}
	}
	return int(f), nil
}
