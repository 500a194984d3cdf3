// generate/runway.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package generate

import (
	"fmt"

	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/grape"
	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/workbook"
)

// RunwayHeading returns the direction from start to end in degrees
// clockwise from north (+y), in [0,360) and rounded to two decimal places.
func RunwayHeading(start, end math.Point2) float64 {
	h := math.RoundDecimals(math.VectorHeading(math.Sub2d(end, start)), 2)
	if h >= 360 {
		// 359.996 and up round to 360
		h -= 360
	}
	return h
}

// runway returns the selected runway along with the projection that all
// of the planar workbook coordinates are converted with. The projection
// is centered at the runway start, whose planar coordinates are taken as
// the center's longitude and latitude.
func (g *Generator) runway(wb workbook.Workbook) (grape.Runway, *math.Orthographic, error) {
	rwys, err := doc29.ReadRunways(wb)
	if err != nil {
		return grape.Runway{}, nil, err
	}

	idx := g.cfg.Runway.Index
	if idx >= len(rwys) {
		return grape.Runway{}, nil, &LookupError{
			Sheet: doc29.SheetRunway,
			What:  fmt.Sprintf("runway index %d with %d runways", idx, len(rwys)),
		}
	}
	if len(rwys) > 1 {
		g.lg.Infof("%s: %d runways; using %q", doc29.SheetRunway, len(rwys), rwys[idx].ID)
	}
	r := rwys[idx]

	proj, err := math.NewOrthographic(r.Start[0], r.Start[1])
	if err != nil {
		return grape.Runway{}, nil, fmt.Errorf("runway %s: %w", r.ID, err)
	}
	lon, lat, err := proj.Inverse(r.Start[0], r.Start[1])
	if err != nil {
		return grape.Runway{}, nil, fmt.Errorf("runway %s: %w", r.ID, err)
	}

	return grape.Runway{
		AirportID: g.cfg.AirportID,
		ID:        "RWY " + r.ID,
		Longitude: lon,
		Latitude:  lat,
		Elevation: g.cfg.Runway.Elevation,
		Length:    math.Distance2d(r.End, r.Start),
		Heading:   RunwayHeading(r.Start, r.End),
		Gradient:  g.cfg.Runway.Gradient,
	}, proj, nil
}
