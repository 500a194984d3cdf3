// generate/flights.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package generate

import (
	"errors"
	"fmt"

	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/grape"
	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/util"
)

// opKey identifies the per-operation data of an aircraft.
type opKey struct {
	aircraft  string
	operation string
}

// Flights returns one flight for each pair of route and aircraft, in
// route-major order. The weight and profile of each flight are the first
// ones in the workbook for the aircraft and operation; they are null when
// there is none.
func Flights(routes []grape.Route, fleet []grape.Aircraft, weights []doc29.Weight,
	profiles []doc29.ProfileKey, time string) []grape.Flight {
	wt := util.IndexFirst(weights, func(w doc29.Weight) opKey {
		return opKey{aircraft: w.AircraftID, operation: w.Operation}
	})
	prof := util.IndexFirst(profiles, func(p doc29.ProfileKey) opKey {
		return opKey{aircraft: p.AircraftID, operation: p.Operation}
	})

	flights := make([]grape.Flight, 0, len(routes)*len(fleet))
	for _, r := range routes {
		for _, a := range fleet {
			f := grape.Flight{
				ID:            a.ID + r.ID,
				AirportID:     r.AirportID,
				RunwayID:      r.RunwayID,
				Operation:     r.Operation,
				RouteID:       r.ID,
				Time:          time,
				Count:         1,
				FleetID:       a.ID,
				Weight:        grape.Null(),
				TakeoffThrust: 1,
				ClimbThrust:   1,
			}
			k := opKey{aircraft: a.ID, operation: r.Operation}
			if w, ok := wt[k]; ok {
				f.Weight = math.PoundsToKilograms(w.WeightLb)
			}
			if p, ok := prof[k]; ok {
				f.Doc29ProfileID = p.ID()
			}
			flights = append(flights, f)
		}
	}
	return flights
}

// ValidateFlightIDs returns an error wrapping ErrDuplicateFlightID for
// each id that is used by more than one flight.
func ValidateFlightIDs(flights []grape.Flight) error {
	count := make(map[string]int)
	for _, f := range flights {
		count[f.ID]++
	}

	var errs []error
	for _, id := range util.SortedMapKeys(count) {
		if n := count[id]; n > 1 {
			errs = append(errs, fmt.Errorf("%q used by %d flights: %w", id, n, ErrDuplicateFlightID))
		}
	}
	return errors.Join(errs...)
}

// scenarioOperations lists every flight in the scenario.
func (g *Generator) scenarioOperations(flights []grape.Flight) []grape.ScenarioOperation {
	return util.MapSlice(flights, func(f grape.Flight) grape.ScenarioOperation {
		return grape.ScenarioOperation{
			ScenarioID:  g.cfg.ScenarioID,
			OperationID: f.ID,
			Operation:   f.Operation,
			Type:        grape.OperationTypeFlight,
		}
	})
}
