// reconcile/track.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package reconcile

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/util"
)

var (
	ErrNoThresholdPoint    = errors.New("reference track doesn't pass through the origin")
	ErrNoReferenceSegments = errors.New("no reference segments")
)

// TrackPoint is a point of a reference flight path. Lengths are in
// meters.
type TrackPoint struct {
	CumulativeGroundDistance float64
	X, Y                     float64
	Longitude, Latitude      float64
	Altitude                 float64
}

// ReconstructTrack rebuilds the flight path of a case from the segments
// that the reference calculation reported for one receptor. Segment
// starts are taken in sheet order, followed by the end of the last
// segment. Cumulative distance is measured from the first point at the
// local origin, the runway threshold.
//
// The track is always returned. A non-nil error lists what is wrong with
// it: no segments, no point at the origin (the distances are then left
// relative to the first point), or points that could not be projected.
func ReconstructTrack(segs []doc29.Segment, caseID, receptor string, proj *math.Orthographic) ([]TrackPoint, error) {
	segs = util.FilterSlice(segs, func(s doc29.Segment) bool {
		return s.CaseID == caseID && s.ReceptorID == receptor
	})
	if len(segs) == 0 {
		return nil, fmt.Errorf("%s at %s: %w", caseID, receptor, ErrNoReferenceSegments)
	}

	type vertex struct {
		p      [3]float64 // ft
		length float64    // ft
	}
	verts := util.MapSlice(segs, func(s doc29.Segment) vertex { return vertex{p: s.Start, length: s.LengthFt} })
	verts = append(verts, vertex{p: segs[len(segs)-1].End})

	track := make([]TrackPoint, len(verts))
	cum := 0.0
	for i, v := range verts {
		track[i] = TrackPoint{
			CumulativeGroundDistance: cum,
			X:                        math.FeetToMeters(v.p[0]),
			Y:                        math.FeetToMeters(v.p[1]),
			Altitude:                 math.FeetToMeters(v.p[2]),
		}
		cum += math.FeetToMeters(v.length)
	}

	var errs []error
	if i := findThreshold(track); i == -1 {
		errs = append(errs, fmt.Errorf("%s at %s: %w", caseID, receptor, ErrNoThresholdPoint))
	} else {
		d0 := track[i].CumulativeGroundDistance
		for j := range track {
			track[j].CumulativeGroundDistance -= d0
		}
	}

	for i := range track {
		lon, lat, err := proj.Inverse(track[i].X, track[i].Y)
		if err != nil {
			lon, lat = gomath.NaN(), gomath.NaN()
			errs = append(errs, fmt.Errorf("%s at %s: point %d: %w", caseID, receptor, i, err))
		}
		track[i].Longitude, track[i].Latitude = lon, lat
	}

	return track, errors.Join(errs...)
}

func findThreshold(track []TrackPoint) int {
	for i, p := range track {
		if p.X == 0 && p.Y == 0 {
			return i
		}
	}
	return -1
}
