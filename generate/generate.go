// generate/generate.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package generate converts the Doc 29 validation workbook to the input
// tables of a GRAPE study and the ANP database files that go with them.
package generate

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/grape-tools/doc29/config"
	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/grape"
	"github.com/grape-tools/doc29/log"
	"github.com/grape-tools/doc29/util"
	"github.com/grape-tools/doc29/workbook"

)

// Generator holds the settings of a conversion. Now gives the time that
// is stamped on the flights and the atmosphere; it may be replaced to get
// reproducible output.
type Generator struct {
	cfg *config.RunConfig
	lg  *log.Logger
	Now func() time.Time
}

// New returns a Generator using a private copy of cfg.
func New(cfg *config.RunConfig, lg *log.Logger) *Generator {
	return &Generator{
		cfg: cfg.Clone(),
		lg:  lg,
		Now: time.Now,
	}
}

// Output is the complete result of a conversion, held in memory until it
// is written.
type Output struct {
	Tables []*grape.Table
}

// Table returns the table with the given directory and name, or nil.
func (o *Output) Table(dir, name string) *grape.Table {
	for _, t := range o.Tables {
		if t.Dir == dir && t.Name == name {
			return t
		}
	}
	return nil
}

// Generate reads the workbook and builds all of the output tables. Any
// missing sheet or column, unparsable cell, or missing required value
// fails the whole conversion.
func (g *Generator) Generate(wb workbook.Workbook) (*Output, error) {
	now := g.Now().Format(grape.TimeFormat)

	g.lg.Info("generating runway and routes")
	rwy, proj, err := g.runway(wb)
	if err != nil {
		return nil, err
	}
	pts, err := doc29.ReadRoutePoints(wb)
	if err != nil {
		return nil, err
	}
	routes, simple, err := g.routes(pts, rwy, proj)
	if err != nil {
		return nil, err
	}

	g.lg.Info("generating fleet and flights")
	ac, err := doc29.ReadAircraft(wb)
	if err != nil {
		return nil, err
	}
	fleet := g.fleet(ac)
	weights, err := doc29.ReadWeights(wb)
	if err != nil {
		return nil, err
	}
	profiles, err := doc29.ReadProfileKeys(wb)
	if err != nil {
		return nil, err
	}
	flights := Flights(routes, fleet, weights, profiles, now)
	if err := ValidateFlightIDs(flights); err != nil {
		g.lg.Warnf("%v", err)
	}
	for _, f := range flights {
		if f.Doc29ProfileID == "" {
			g.lg.Warnf("flight %s: no %s profile for %s", f.ID, f.Operation, f.FleetID)
		}
	}

	g.lg.Info("generating runs and receptors")
	met, err := doc29.ReadMeteorology(wb)
	if err != nil {
		return nil, err
	}
	atm, err := g.atmosphere(met, now)
	if err != nil {
		return nil, err
	}
	rcv, err := doc29.ReadReceptors(wb)
	if err != nil {
		return nil, err
	}
	points, err := g.pointReceptors(rcv, proj)
	if err != nil {
		return nil, err
	}
	grid, err := g.gridReceptors(proj)
	if err != nil {
		return nil, err
	}

	dir := grape.InputTablesDir
	out := &Output{
		Tables: []*grape.Table{
			grape.NewTable(dir, grape.TableAirports, grape.AirportsHeader, []grape.Airport{g.airport()}),
			grape.NewTable(dir, grape.TableRunways, grape.RunwaysHeader, []grape.Runway{rwy}),
			grape.NewTable(dir, grape.TableRoutes, grape.RoutesHeader, routes),
			grape.NewTable(dir, grape.TableRoutesSimple, grape.RoutesSimpleHeader, simple),
			grape.NewTable(dir, grape.TableFleet, grape.FleetHeader, fleet),
			grape.NewTable(dir, grape.TableFlights, grape.FlightsHeader, flights),
			grape.NewTable(dir, grape.TableScenarios, grape.ScenariosHeader,
				[]grape.Scenario{{ID: g.cfg.ScenarioID}}),
			grape.NewTable(dir, grape.TableScenariosOperations, grape.ScenariosOperationsHeader,
				g.scenarioOperations(flights)),
			grape.NewTable(dir, grape.TablePerformanceRuns, grape.PerformanceRunsHeader,
				[]grape.PerformanceRun{g.performanceRun(rwy)}),
			grape.NewTable(dir, grape.TablePerformanceAtmospheres, grape.PerformanceAtmospheresHeader,
				[]grape.Atmosphere{atm}),
			grape.NewTable(dir, grape.TableNoiseRuns, grape.NoiseRunsHeader, g.noiseRuns()),
			grape.NewTable(dir, grape.TableNoisePointReceptors, grape.NoisePointReceptorsHeader, points),
			grape.NewTable(dir, grape.TableNoiseGridReceptors, grape.NoiseGridReceptorsHeader,
				[]grape.GridReceptors{grid}),
		},
	}

	g.lg.Info("generating ANP tables")
	anp, err := g.anpTables(wb)
	if err != nil {
		return nil, err
	}
	out.Tables = append(out.Tables, anp...)

	g.lg.Info("generated", "tables", len(out.Tables), "routes", len(routes), "flights", len(flights),
		"receptors", len(points))
	return out, nil
}

// Write encodes every table and then stores them one at a time, in table
// order. Nothing is stored if any table fails to encode; a failed store
// stops the write.
func (o *Output) Write(ctx context.Context, sb util.StorageBackend) error {
	encoded := make([][]byte, len(o.Tables))
	for i, t := range o.Tables {
		b, err := t.Bytes()
		if err != nil {
			return fmt.Errorf("%s: %w", t.Path(), err)
		}
		encoded[i] = b
	}

	for i, t := range o.Tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := sb.Store(t.Path(), bytes.NewReader(encoded[i])); err != nil {
			return fmt.Errorf("%s: %w", t.Path(), err)
		}
	}
	return nil
}
