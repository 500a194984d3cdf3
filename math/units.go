// math/units.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// The conversion factors are variables rather than constants so that the
// compound factors (e.g. standard gravity over pounds per kilogram) are
// computed with float64 arithmetic, matching the reference values bit for
// bit rather than Go's exact constant arithmetic.
var (
	StandardGravity        = 9.80665       // m/s^2
	PoundsPerKilogram      = 2.204623      // lb/kg
	MetersPerFoot          = 0.3048        // m/ft
	MetersPerNauticalMile  = 1852.0        // m/NM
	SecondsPerHour         = 3600.0        // s/h
	PascalsPerMmHg         = 133.322387415 // Pa/mmHg
	CelsiusToKelvin        = 273.15
	ISASeaLevelTemperature = 288.15   // K
	ISASeaLevelCelsius     = 15.0     // degC
	ISASeaLevelPressure    = 101325.0 // Pa
)

// PoundsForceToNewtons converts a force in lbf to N.
func PoundsForceToNewtons(lbf float64) float64 {
	return lbf * (StandardGravity / PoundsPerKilogram)
}

// PoundsToKilograms converts a mass in lb to kg.
func PoundsToKilograms(lb float64) float64 {
	return lb / PoundsPerKilogram
}

func MetersToFeet(m float64) float64 {
	return m / MetersPerFoot
}

func FeetToMeters(ft float64) float64 {
	return ft * MetersPerFoot
}

// MetersPerSecondToKnots converts a speed in m/s to kt.
func MetersPerSecondToKnots(ms float64) float64 {
	return ms / (MetersPerNauticalMile / SecondsPerHour)
}

// KnotsToMetersPerSecond converts a speed in kt to m/s.
func KnotsToMetersPerSecond(kt float64) float64 {
	return kt * MetersPerNauticalMile / SecondsPerHour
}

// MmHgToPascals converts a pressure in millimeters of mercury to Pa.
func MmHgToPascals(mmHg float64) float64 {
	return mmHg * PascalsPerMmHg
}
