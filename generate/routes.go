// generate/routes.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package generate

import (
	"fmt"

	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/grape"
	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/util"
)

// KeepRoutePoint reports whether a route point is part of the generated
// route. Departures start at the runway threshold, which the simulation
// adds itself, and arrivals end there.
func KeepRoutePoint(rp doc29.RoutePoint) bool {
	if rp.Operation() == doc29.OperationArrival {
		return rp.P[0] < 0
	}
	return !rp.P.IsOrigin()
}

// routes returns the Routes and Routes Simple rows for the given points.
// Routes that lose all of their points are left out.
func (g *Generator) routes(pts []doc29.RoutePoint, rwy grape.Runway,
	proj *math.Orthographic) ([]grape.Route, []grape.RoutePoint, error) {
	kept := util.FilterSlice(pts, KeepRoutePoint)
	if n := len(pts) - len(kept); n > 0 {
		g.lg.Debugf("%s: dropped %d route points at or past the threshold", doc29.SheetRoutes, n)
	}

	type routeKey struct{ op, id string }
	var keys []routeKey
	var simple []grape.RoutePoint
	for _, rp := range kept {
		lon, lat, err := proj.Inverse(rp.P[0], rp.P[1])
		if err != nil {
			return nil, nil, fmt.Errorf("route %s point %s: %w", rp.RouteID, rp.TrackPoint, err)
		}
		simple = append(simple, grape.RoutePoint{
			AirportID: rwy.AirportID,
			RunwayID:  rwy.ID,
			Operation: rp.Operation(),
			RouteID:   rp.RouteID,
			Longitude: lon,
			Latitude:  lat,
		})
		keys = append(keys, routeKey{op: rp.Operation(), id: rp.RouteID})
	}

	routes := util.MapSlice(util.UniqueSlice(keys), func(k routeKey) grape.Route {
		return grape.Route{
			AirportID: rwy.AirportID,
			RunwayID:  rwy.ID,
			Operation: k.op,
			ID:        k.id,
			Type:      grape.RouteTypeSimple,
		}
	})
	return routes, simple, nil
}
