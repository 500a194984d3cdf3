// math/math_test.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"math"
	"testing"
)

func TestVectorHeading(t *testing.T) {
	tests := []struct {
		name     string
		vector   Point2
		expected float64
	}{
		{"north", Point2{0, 100}, 0},
		{"northeast", Point2{1, 1}, 45},
		{"east", Point2{100, 0}, 90},
		{"southeast", Point2{1, -1}, 135},
		{"south", Point2{0, -100}, 180},
		{"southwest", Point2{-1, -1}, 225},
		{"west", Point2{-100, 0}, 270},
		{"northwest", Point2{-1, 1}, 315},
		{"zero", Point2{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := VectorHeading(tt.vector)
			if Abs(result-tt.expected) > 1e-9 {
				t.Errorf("VectorHeading(%v) = %f, expected %f", tt.vector, result, tt.expected)
			}
			if result < 0 || result >= 360 {
				t.Errorf("VectorHeading(%v) = %f, not in [0,360)", tt.vector, result)
			}
		})
	}
}

func TestRoundDecimals(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		expected float64
	}{
		{1.234, 2, 1.23},
		{1.236, 2, 1.24},
		{249.99, 0, 250},
		{0.5, 0, 0},
		{1.5, 0, 2},
		{2.5, 0, 2},
		{149.9, -2, 100},
		{150, -2, 200},
		{250, -2, 200},
		{-27049, -2, -27000},
		{-27051, -2, -27100},
		{-1333.2, -2, -1300},
	}

	for _, tt := range tests {
		if r := RoundDecimals(tt.v, tt.decimals); r != tt.expected {
			t.Errorf("RoundDecimals(%v, %d) = %v, expected %v", tt.v, tt.decimals, r, tt.expected)
		}
	}
}

func TestRoundToMultiple(t *testing.T) {
	if r := RoundToMultiple(-11949.7, 100); r != -11900 {
		t.Errorf("got %v, expected -11900", r)
	}
	if r := RoundToMultiple(12.3, 0); r != 12.3 {
		t.Errorf("non-positive step should be a no-op, got %v", r)
	}
}

func TestUnitConversions(t *testing.T) {
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"lbf to N", PoundsForceToNewtons(1000), 4448.2208522727},
		{"lb to kg", PoundsToKilograms(2.204623), 1},
		{"m to ft", MetersToFeet(0.3048), 1},
		{"ft to m", FeetToMeters(1000), 304.8},
		{"m/s to kt", MetersPerSecondToKnots(1852.0 / 3600.0), 1},
		{"kt to m/s", KnotsToMetersPerSecond(20), 10.288888888888889},
		{"mmHg to Pa", MmHgToPascals(760), 101325.01443540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 1e-6 {
				t.Errorf("got %.10f, expected %.10f", tt.got, tt.expected)
			}
		})
	}
}

func TestRMS(t *testing.T) {
	if r := RMS([]float64{1, -1, 2, -2}); math.Abs(r-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("RMS = %f, expected %f", r, math.Sqrt(2.5))
	}
	if r := RMS([]float64{1, math.NaN(), -1, 2, -2}); math.Abs(r-1.5811388300841898) > 1e-12 {
		t.Errorf("RMS with NaN = %f, expected 1.5811", r)
	}
	if r := RMS(nil); !math.IsNaN(r) {
		t.Errorf("RMS of nothing = %f, expected NaN", r)
	}
	if r := RMS([]float64{math.NaN()}); !math.IsNaN(r) {
		t.Errorf("RMS of only NaN = %f, expected NaN", r)
	}
}

func TestPoint2(t *testing.T) {
	a, b := Point2{3, 4}, Point2{0, 0}
	if d := Distance2d(a, b); d != 5 {
		t.Errorf("Distance2d = %f, expected 5", d)
	}
	if !b.IsOrigin() || a.IsOrigin() {
		t.Errorf("IsOrigin mismatch")
	}
	if c := Cross2d(Point2{100, 0}, Point2{0, 1}); c != 100 {
		t.Errorf("Cross2d = %f, expected 100", c)
	}
	if s := Add2d(a, Scale2d(Sub2d(b, a), 2)); s != (Point2{-3, -4}) {
		t.Errorf("Add2d/Scale2d/Sub2d = %v", s)
	}
}
