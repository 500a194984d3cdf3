// generate/runs.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package generate

import (
	"fmt"

	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/grape"
	"github.com/grape-tools/doc29/math"
)

func (g *Generator) airport() grape.Airport {
	return grape.Airport{
		ID:                        g.cfg.AirportID,
		Longitude:                 g.cfg.Airport.Longitude,
		Latitude:                  g.cfg.Airport.Latitude,
		Elevation:                 g.cfg.Airport.Elevation,
		ReferenceTemperature:      g.cfg.Airport.ReferenceTemperature,
		ReferenceSeaLevelPressure: g.cfg.Airport.ReferenceSeaLevelPressure,
	}
}

// performanceRun uses a local Cartesian system centered at the runway.
func (g *Generator) performanceRun(rwy grape.Runway) grape.PerformanceRun {
	pc := g.cfg.Performance
	return grape.PerformanceRun{
		ScenarioID:                          g.cfg.ScenarioID,
		ID:                                  g.cfg.PerformanceRunID,
		CoordinateSystemType:                pc.CoordinateSystemType,
		CoordinateSystemLongitude0:          rwy.Longitude,
		CoordinateSystemLatitude0:           rwy.Latitude,
		SegmentationSpeedDeltaThreshold:     math.KnotsToMetersPerSecond(pc.SegmentationSpeedDeltaKnots),
		FlightsPerformanceModel:             pc.PerformanceModel,
		FlightsDoc29LowAltitudeSegmentation: pc.LowAltitudeSegmentation,
		Tracks4DCalculatePerformance:        pc.Tracks4DCalculatePerformance,
		FuelFlowModel:                       pc.FuelFlowModel,
		FuelFlowLTOAltitudeCorrection:       pc.FuelFlowLTOAltitudeCorrection,
	}
}

// Atmosphere converts measured conditions to deviations from the standard
// atmosphere. The pressure deviation is rounded to the nearest 100 Pa.
func (g *Generator) Atmosphere(m doc29.Meteorology, time string) grape.Atmosphere {
	return grape.Atmosphere{
		ScenarioID:       g.cfg.ScenarioID,
		PerformanceRunID: g.cfg.PerformanceRunID,
		Time:             time,
		TemperatureDelta: m.TemperatureC - math.ISASeaLevelCelsius,
		PressureDelta:    math.RoundDecimals(math.MmHgToPascals(m.PressureMmHg)-math.ISASeaLevelPressure, -2),
		WindSpeed:        m.HeadwindMPS,
		WindDirection:    grape.Null(),
		RelativeHumidity: m.HumidityPct / 100,
	}
}

// atmosphere returns the conditions of the first meteorological entry;
// the simulation takes a single set of conditions per run.
func (g *Generator) atmosphere(met []doc29.Meteorology, time string) (grape.Atmosphere, error) {
	if len(met) == 0 {
		return grape.Atmosphere{}, &LookupError{Sheet: doc29.SheetMeteorological, What: "no conditions given"}
	}
	if len(met) > 1 {
		g.lg.Infof("%s: %d entries; using the first", doc29.SheetMeteorological, len(met))
	}
	return g.Atmosphere(met[0], time), nil
}

func (g *Generator) noiseRuns() []grape.NoiseRun {
	nc := g.cfg.Noise
	run := func(id, receptors string) grape.NoiseRun {
		return grape.NoiseRun{
			ScenarioID:             g.cfg.ScenarioID,
			PerformanceRunID:       g.cfg.PerformanceRunID,
			ID:                     id,
			NoiseModel:             nc.Model,
			AtmosphericAbsorption:  nc.AtmosphericAbsorption,
			ReceptorSetType:        receptors,
			SaveSingleEventMetrics: nc.SaveSingleEventMetrics,
		}
	}
	return []grape.NoiseRun{
		run(g.cfg.NoiseRunPointsID, grape.ReceptorSetPoints),
		run(g.cfg.NoiseRunGridID, grape.ReceptorSetGrid),
	}
}

func (g *Generator) pointReceptors(rcv []doc29.Receptor, proj *math.Orthographic) ([]grape.PointReceptor, error) {
	var pr []grape.PointReceptor
	for _, r := range rcv {
		lon, lat, err := proj.Inverse(r.P[0], r.P[1])
		if err != nil {
			return nil, fmt.Errorf("receptor %s: %w", r.ID, err)
		}
		pr = append(pr, grape.PointReceptor{
			ScenarioID:       g.cfg.ScenarioID,
			PerformanceRunID: g.cfg.PerformanceRunID,
			NoiseRunID:       g.cfg.NoiseRunPointsID,
			ID:               r.ID,
			Longitude:        lon,
			Latitude:         lat,
			AltitudeMSL:      r.HeightM,
		})
	}
	return pr, nil
}

func (g *Generator) gridReceptors(proj *math.Orthographic) (grape.GridReceptors, error) {
	gc := g.cfg.Grid
	lon, lat, err := proj.Inverse(gc.Origin[0], gc.Origin[1])
	if err != nil {
		return grape.GridReceptors{}, fmt.Errorf("grid origin: %w", err)
	}
	return grape.GridReceptors{
		ScenarioID:           g.cfg.ScenarioID,
		PerformanceRunID:     g.cfg.PerformanceRunID,
		NoiseRunID:           g.cfg.NoiseRunGridID,
		ReferenceLocation:    gc.ReferenceLocation,
		ReferenceLongitude:   lon,
		ReferenceLatitude:    lat,
		ReferenceAltitudeMSL: gc.ReferenceAltitude,
		HorizontalSpacing:    gc.HorizontalSpacing,
		VerticalSpacing:      gc.VerticalSpacing,
		HorizontalCount:      gc.HorizontalCount,
		VerticalCount:        gc.VerticalCount,
		GridRotation:         gc.Rotation,
	}, nil
}
