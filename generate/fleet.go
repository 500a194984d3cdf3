// generate/fleet.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package generate

import (
	"slices"

	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/grape"
	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/util"
)

// fleet converts the aircraft sheet to fleet entries. Aircraft with an
// excluded power parameter (by default, shaft horsepower) are dropped.
func (g *Generator) fleet(ac []doc29.Aircraft) []grape.Aircraft {
	excluded := g.cfg.Fleet.ExcludedPowerParameters
	kept := util.FilterSlice(ac, func(a doc29.Aircraft) bool {
		return !slices.Contains(excluded, a.PowerParameter)
	})
	for _, a := range ac {
		if slices.Contains(excluded, a.PowerParameter) {
			g.lg.Infof("%s: excluding aircraft %q with power parameter %q", doc29.SheetAircraft, a.ID,
				a.PowerParameter)
		}
	}

	return util.MapSlice(kept, func(a doc29.Aircraft) grape.Aircraft {
		return grape.Aircraft{
			ID:                          a.ID,
			EngineCount:                 a.EngineCount,
			MaximumSeaLevelStaticThrust: math.PoundsForceToNewtons(a.StaticThrustLbf),
			EngineBreakpointTemperature: g.cfg.Fleet.EngineBreakpointTemperature,
			Doc29PerformanceID:          a.ID,
			Doc29NoiseID:                a.NPDID,
		}
	})
}
