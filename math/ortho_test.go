// math/ortho_test.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"errors"
	"math"
	"testing"
)

func TestOrthographicRoundTrip(t *testing.T) {
	centers := [][2]float64{{0, 0}, {-73.77, 40.63}, {151.18, -33.94}, {0, 89.5}, {10, -89.9}}
	offsets := [][2]float64{
		{0, 0}, {0.1, 0.05}, {-0.3, 0.2}, {1, -1}, {10, 5}, {-25, 20}, {40, -30}, {75, 10},
	}

	for _, c := range centers {
		o, err := NewOrthographic(c[0], c[1])
		if err != nil {
			t.Fatalf("NewOrthographic(%v): %v", c, err)
		}

		for _, d := range offsets {
			lon, lat := c[0]+d[0], Clamp(c[1]+d[1], -90, 90)
			x, y, err := o.Forward(lon, lat)
			if errors.Is(err, ErrProjectionDomain) {
				// Offsets near the poles may land on the far side.
				continue
			} else if err != nil {
				t.Fatalf("Forward(%f, %f): %v", lon, lat, err)
			}

			ilon, ilat, err := o.Inverse(x, y)
			if err != nil {
				t.Errorf("center %v: Inverse(%f, %f): %v", c, x, y, err)
				continue
			}
			if math.Abs(ilat-lat) > 1e-6 {
				t.Errorf("center %v: latitude %f round-tripped to %f", c, lat, ilat)
			}
			// Longitude is meaningless at the poles.
			if math.Abs(lat) < 89.999 {
				dlon := math.Mod(ilon-lon+540, 360) - 180
				if math.Abs(dlon) > 1e-6 {
					t.Errorf("center %v: longitude %f round-tripped to %f", c, lon, ilon)
				}
			}
		}
	}
}

func TestOrthographicKnownValues(t *testing.T) {
	o, err := NewOrthographic(0, 0)
	if err != nil {
		t.Fatal(err)
	}

	// One degree of longitude along the equator is a degree of the
	// equatorial circle, shortened by the orthographic foreshortening.
	x, y, err := o.Forward(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-WGS84.A*math.Sin(Radians(1))) > 1e-6 || math.Abs(y) > 1e-9 {
		t.Errorf("Forward(1, 0) = (%f, %f)", x, y)
	}

	if lon, lat, err := o.Inverse(0, 0); err != nil || lon != 0 || lat != 0 {
		t.Errorf("Inverse(0, 0) = (%f, %f, %v), expected the center", lon, lat, err)
	}

	// North is +y and east is +x.
	if x, y, _ := o.Forward(0.5, 0.5); x <= 0 || y <= 0 {
		t.Errorf("Forward(0.5, 0.5) = (%f, %f), expected the first quadrant", x, y)
	}
	if x, y, _ := o.Forward(-0.5, -0.5); x >= 0 || y >= 0 {
		t.Errorf("Forward(-0.5, -0.5) = (%f, %f), expected the third quadrant", x, y)
	}
}

func TestOrthographicDomain(t *testing.T) {
	o, err := NewOrthographic(0, 0)
	if err != nil {
		t.Fatal(err)
	}

	forward := [][2]float64{
		{180, 0},          // antipode
		{120, 10},         // far side
		{math.NaN(), 0},   // garbage
		{0, math.Inf(1)},  // garbage
		{0, 91},           // not a latitude
	}
	for _, p := range forward {
		if _, _, err := o.Forward(p[0], p[1]); !errors.Is(err, ErrProjectionDomain) {
			t.Errorf("Forward(%v): expected ErrProjectionDomain, got %v", p, err)
		}
	}

	inverse := [][2]float64{
		{7e6, 0},
		{5e6, 5e6},
		{math.NaN(), 0},
	}
	for _, p := range inverse {
		if _, _, err := o.Inverse(p[0], p[1]); !errors.Is(err, ErrProjectionDomain) {
			t.Errorf("Inverse(%v): expected ErrProjectionDomain, got %v", p, err)
		}
	}

	if _, err := NewOrthographic(0, 95); !errors.Is(err, ErrProjectionDomain) {
		t.Errorf("expected invalid center to be rejected, got %v", err)
	}
}

func TestOrthographicInverseRadius(t *testing.T) {
	o, err := NewOrthographic(0, 0)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		lon, lat float64
		ok       bool
	}{
		{lon: 60, lat: 0, ok: true},
		{lon: 84, lat: 0, ok: true},
		{lon: 0, lat: -84, ok: true},
		{lon: 50, lat: 60, ok: true},
		{lon: 86, lat: 0},
		{lon: 0, lat: 87.5},
		{lon: 89.9999, lat: 0},
		{lon: 85, lat: 40},
	}
	for _, test := range tests {
		x, y, err := o.Forward(test.lon, test.lat)
		if err != nil {
			t.Fatalf("Forward(%f, %f): %v", test.lon, test.lat, err)
		}
		lon, lat, err := o.Inverse(x, y)
		if !test.ok {
			if !errors.Is(err, ErrProjectionDomain) {
				t.Errorf("Inverse of (%f, %f): expected ErrProjectionDomain, got (%f, %f, %v)",
					test.lon, test.lat, lon, lat, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Inverse of (%f, %f): %v", test.lon, test.lat, err)
		} else if math.Abs(lon-test.lon) > 1e-9 || math.Abs(lat-test.lat) > 1e-9 {
			t.Errorf("(%f, %f) round-tripped to (%.12f, %.12f)", test.lon, test.lat, lon, lat)
		}
	}
}

func TestOrthographicCenter(t *testing.T) {
	o, err := NewOrthographic(-3.5, 52.25)
	if err != nil {
		t.Fatal(err)
	}
	x, y, err := o.Forward(-3.5, 52.25)
	if err != nil || math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("center projects to (%g, %g, %v), expected the origin", x, y, err)
	}
}
