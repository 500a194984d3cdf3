// math/ortho.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"errors"
	"fmt"
	gomath "math"
)

var ErrProjectionDomain = errors.New("coordinate outside projection domain")

///////////////////////////////////////////////////////////////////////////
// Ellipsoid

type Ellipsoid struct {
	A float64 // semi-major axis, meters
	F float64 // flattening
}

var WGS84 = Ellipsoid{A: 6378137, F: 1 / 298.257223563}

// E2 returns the square of the first eccentricity.
func (e Ellipsoid) E2() float64 {
	return e.F * (2 - e.F)
}

// primeVertical returns the radius of curvature in the prime vertical, nu.
func (e Ellipsoid) primeVertical(sinPhi float64) float64 {
	return e.A / gomath.Sqrt(1-e.E2()*sinPhi*sinPhi)
}

// meridional returns the radius of curvature in the meridian, rho.
func (e Ellipsoid) meridional(sinPhi float64) float64 {
	w := 1 - e.E2()*sinPhi*sinPhi
	return e.A * (1 - e.E2()) / (w * gomath.Sqrt(w))
}

///////////////////////////////////////////////////////////////////////////
// Orthographic

// Orthographic is the ellipsoidal orthographic projection (EPSG method
// 9840) centered at a fixed geodetic point. x is east and y is north of
// the center, in meters. It is equivalent to the east and north components
// of the local tangent plane coordinates of a point on the ellipsoid
// surface.
type Orthographic struct {
	ell              Ellipsoid
	lon0, lat0       float64 // degrees
	lam0             float64 // radians
	sinPhi0, cosPhi0 float64
	nu0              float64
}

const (
	// Points whose cosine of angular distance from the center is below
	// -orthoHorizonEpsilon are on the far side of the earth.
	orthoHorizonEpsilon = 1e-10
	orthoMaxIterations  = 50
	orthoTolerance      = 1e-14 // radians
	orthoResidual       = 1e-6  // meters
)

// OrthoInverseMaxDistance is the largest angle, in degrees, between the
// surface normals at the center and at a point that Inverse returns.
// Beyond it the projection flattens toward the horizon and (x, y) no
// longer pins down the geodetic position.
const OrthoInverseMaxDistance = 85

var orthoInverseMinCos = gomath.Cos(Radians(OrthoInverseMaxDistance))

// NewOrthographic returns an orthographic projection on the WGS84
// ellipsoid centered at (lon0, lat0), given in degrees.
func NewOrthographic(lon0, lat0 float64) (*Orthographic, error) {
	return NewOrthographicEllipsoid(WGS84, lon0, lat0)
}

func NewOrthographicEllipsoid(ell Ellipsoid, lon0, lat0 float64) (*Orthographic, error) {
	if !IsFinite(lon0) || !IsFinite(lat0) || Abs(lat0) > 90 {
		return nil, fmt.Errorf("projection center (%g, %g): %w", lon0, lat0, ErrProjectionDomain)
	}

	phi0 := Radians(lat0)
	sinPhi0, cosPhi0 := gomath.Sincos(phi0)
	return &Orthographic{
		ell:     ell,
		lon0:    lon0,
		lat0:    lat0,
		lam0:    Radians(lon0),
		sinPhi0: sinPhi0,
		cosPhi0: cosPhi0,
		nu0:     ell.primeVertical(sinPhi0),
	}, nil
}

// Forward projects the geodetic point (lon, lat), in degrees, to local
// (x, y) in meters. Points on the hemisphere not visible from the center
// return an error wrapping ErrProjectionDomain.
func (o *Orthographic) Forward(lon, lat float64) (float64, float64, error) {
	if !IsFinite(lon) || !IsFinite(lat) || Abs(lat) > 90 {
		return 0, 0, fmt.Errorf("(%g, %g): %w", lon, lat, ErrProjectionDomain)
	}

	sinPhi, cosPhi := gomath.Sincos(Radians(lat))
	sinDl, cosDl := gomath.Sincos(Radians(lon) - o.lam0)

	if o.sinPhi0*sinPhi+o.cosPhi0*cosPhi*cosDl < -orthoHorizonEpsilon {
		return 0, 0, fmt.Errorf("(%g, %g) is beyond the horizon of (%g, %g): %w", lon, lat,
			o.lon0, o.lat0, ErrProjectionDomain)
	}

	x, y := o.forward(sinPhi, cosPhi, sinDl, cosDl)
	return x, y, nil
}

func (o *Orthographic) forward(sinPhi, cosPhi, sinDl, cosDl float64) (float64, float64) {
	e2 := o.ell.E2()
	nu := o.ell.primeVertical(sinPhi)
	x := nu * cosPhi * sinDl
	y := nu*(sinPhi*o.cosPhi0-cosPhi*o.sinPhi0*cosDl) + e2*(o.nu0*o.sinPhi0-nu*sinPhi)*o.cosPhi0
	return x, y
}

// Inverse returns the geodetic (lon, lat), in degrees, of the local point
// (x, y). Points outside the projected disc, and points that would lie
// more than OrthoInverseMaxDistance degrees from the center, return an
// error wrapping ErrProjectionDomain. Within that radius Inverse undoes
// Forward to better than 1e-9 degrees.
//
// The ellipsoidal orthographic has no closed-form inverse; the spherical
// inverse is used as the starting point for Newton iterations on the
// forward equations.
func (o *Orthographic) Inverse(x, y float64) (float64, float64, error) {
	if !IsFinite(x) || !IsFinite(y) {
		return 0, 0, fmt.Errorf("(%g, %g): %w", x, y, ErrProjectionDomain)
	}

	rho := gomath.Hypot(x, y)
	if rho == 0 {
		return o.lon0, o.lat0, nil
	}
	// The largest radius of curvature on the ellipsoid bounds the disc.
	if rho > o.ell.A/gomath.Sqrt(1-o.ell.E2()) {
		return 0, 0, fmt.Errorf("(%g, %g) is outside the projected disc: %w", x, y, ErrProjectionDomain)
	}

	sinc := gomath.Min(rho/o.ell.A, 1)
	cosc := gomath.Sqrt(1 - sinc*sinc)
	phi := gomath.Asin(Clamp(cosc*o.sinPhi0+y*sinc*o.cosPhi0/rho, -1, 1))
	dlam := gomath.Atan2(x*sinc, rho*cosc*o.cosPhi0-y*sinc*o.sinPhi0)

	converged := false
	for range orthoMaxIterations {
		sinPhi, cosPhi := gomath.Sincos(phi)
		sinDl, cosDl := gomath.Sincos(dlam)
		fx, fy := o.forward(sinPhi, cosPhi, sinDl, cosDl)
		rx, ry := fx-x, fy-y

		nu := o.ell.primeVertical(sinPhi)
		mr := o.ell.meridional(sinPhi)
		// Jacobian of (x, y) with respect to (phi, dlam)
		j00 := -mr * sinPhi * sinDl
		j01 := nu * cosPhi * cosDl
		j10 := mr * (cosPhi*o.cosPhi0 + sinPhi*o.sinPhi0*cosDl)
		j11 := nu * cosPhi * o.sinPhi0 * sinDl

		det := j00*j11 - j01*j10
		if det == 0 || !IsFinite(det) {
			break
		}
		dphi := (rx*j11 - ry*j01) / det
		ddlam := (ry*j00 - rx*j10) / det

		phi = Clamp(phi-dphi, -gomath.Pi/2, gomath.Pi/2)
		dlam -= ddlam

		if Abs(dphi) < orthoTolerance && Abs(ddlam) < orthoTolerance {
			converged = true
			break
		}
	}

	sinPhi, cosPhi := gomath.Sincos(phi)
	sinDl, cosDl := gomath.Sincos(dlam)
	if !converged {
		// Newton may stall within rounding noise of the solution; accept
		// the result if it reproduces the input.
		fx, fy := o.forward(sinPhi, cosPhi, sinDl, cosDl)
		if gomath.Hypot(fx-x, fy-y) > orthoResidual {
			return 0, 0, fmt.Errorf("(%g, %g): inverse did not converge: %w", x, y, ErrProjectionDomain)
		}
	}
	if o.sinPhi0*sinPhi+o.cosPhi0*cosPhi*cosDl < orthoInverseMinCos {
		return 0, 0, fmt.Errorf("(%g, %g) is more than %d degrees from the center: %w", x, y,
			OrthoInverseMaxDistance, ErrProjectionDomain)
	}

	lon := o.lon0 + Degrees(dlam)
	if lon > 180 {
		lon -= 360
	} else if lon < -180 {
		lon += 360
	}
	return lon, Degrees(phi), nil
}
