// generate/anp.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package generate

import (
	"fmt"
	gomath "math"
	"slices"
	"strings"

	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/grape"
	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/util"
	"github.com/grape-tools/doc29/workbook"
)

// ANP file names, without the .csv extension.
const (
	ANPAircraft           = "Aircraft"
	ANPJetCoefficients    = "Jet_engine_coefficients"
	ANPPropCoefficients   = "Propeller_engine_coefficients"
	ANPAeroCoefficients   = "Aerodynamic_coefficients"
	ANPDefaultWeights     = "Default_weights"
	ANPFixedPointProfiles = "Default_fixed_point_profiles"
	ANPApproachSteps      = "Default_approach_procedural_steps"
	ANPDepartureSteps     = "Default_departure_procedural_steps"
	ANPNPD                = "NPD_data"
	ANPSpectralClasses    = "Spectral_classes"
)

// PowerParameterCNT is the ANP name of the corrected net thrust power
// parameter.
const PowerParameterCNT = "CNT (lb)"

var (
	ApproachStepsHeader = []string{"ACFT_ID", "Profile_ID", "Step Number", "Step Type", "Flap_ID",
		"Start Altitude(ft)", "Start CAS (kt)", "Descent Angle (deg)", "Touchdown Roll (ft)", "Distance (ft)",
		"Start Thrust"}
	DepartureStepsHeader = []string{"ACFT_ID", "Profile_ID", "Stage Length", "Step Number", "Step Type",
		"Thrust Rating", "Flap_ID", "End Point Altitude (ft)", "Rate of Climb (ft/min)", "End Point CAS (kt)",
		"Accel Percentage (%)"}
)

// anpTables returns the ANP database files that the simulation imports
// the aircraft data from. Procedural profiles aren't part of the
// validation, so their files only have headers.
func (g *Generator) anpTables(wb workbook.Workbook) ([]*grape.Table, error) {
	var tables []*grape.Table

	ac, err := anpAircraft(wb)
	if err != nil {
		return nil, err
	}
	tables = append(tables, ac)

	for _, c := range []struct{ sheet, name string }{
		{doc29.SheetJetCoeffs, ANPJetCoefficients},
		{doc29.SheetPropCoeffs, ANPPropCoefficients},
		{doc29.SheetAeroCoeffs, ANPAeroCoefficients},
		{doc29.SheetDefaultWeights, ANPDefaultWeights},
	} {
		t, err := copySheet(wb, c.sheet, c.name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	prof, err := anpProfiles(wb)
	if err != nil {
		return nil, err
	}
	tables = append(tables,
		prof,
		&grape.Table{Dir: grape.ANPDir, Name: ANPApproachSteps, Header: ApproachStepsHeader},
		&grape.Table{Dir: grape.ANPDir, Name: ANPDepartureSteps, Header: DepartureStepsHeader})

	npd, err := copySheet(wb, doc29.SheetNPD, ANPNPD)
	if err != nil {
		return nil, err
	}
	tables = append(tables, npd)

	classes, err := anpSpectralClasses(wb)
	if err != nil {
		return nil, err
	}
	tables = append(tables, classes)

	g.lg.Debugf("%d ANP tables", len(tables))
	return tables, nil
}

// copySheet returns a sheet's contents as an ANP table. Short rows are
// padded to the width of the header; cells past the end of the header get
// placeholder column names.
func copySheet(wb workbook.Workbook, sheet, name string) (*grape.Table, error) {
	s, err := wb.Sheet(sheet)
	if err != nil {
		return nil, err
	}

	header := slices.Clone(s.Header)
	for _, r := range s.Rows {
		for len(header) < len(r) {
			header = append(header, fmt.Sprintf("Unnamed: %d", len(header)))
		}
	}

	rows := util.MapSlice(s.Rows, func(r []string) []string {
		row := make([]string, len(header))
		copy(row, r)
		return row
	})
	return &grape.Table{Dir: grape.ANPDir, Name: name, Header: header, Rows: rows}, nil
}

// insertColumn inserts a column filled with v at index i, or at the end
// if the table has fewer than i columns.
func insertColumn(t *grape.Table, i int, name, v string) {
	i = min(i, len(t.Header))
	t.Header = util.InsertSliceElement(t.Header, i, name)
	for j := range t.Rows {
		t.Rows[j] = util.InsertSliceElement(t.Rows[j], i, v)
	}
}

func anpAircraft(wb workbook.Workbook) (*grape.Table, error) {
	t, err := copySheet(wb, doc29.SheetAircraft, ANPAircraft)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(t.Header, doc29.ColPowerParameter) {
		return nil, &workbook.SchemaError{Sheet: doc29.SheetAircraft, Column: doc29.ColPowerParameter,
			Err: workbook.ErrMissingColumn}
	}

	insertColumn(t, 5, doc29.ColOwnerCategory, "NA")
	insertColumn(t, 10, doc29.ColNoiseChapter, "NA")

	pp := slices.Index(t.Header, doc29.ColPowerParameter)
	for _, r := range t.Rows {
		if r[pp] == doc29.PowerCorrectedThrust {
			r[pp] = PowerParameterCNT
		}
	}
	return t, nil
}

// anpProfiles converts the fixed point profiles to the units of the ANP
// database: distances and altitudes in feet, with altitudes rounded to
// whole feet, and true airspeed in knots.
func anpProfiles(wb workbook.Workbook) (*grape.Table, error) {
	t, err := copySheet(wb, doc29.SheetProfiles, ANPFixedPointProfiles)
	if err != nil {
		return nil, err
	}
	s, err := wb.Sheet(doc29.SheetProfiles)
	if err != nil {
		return nil, err
	}
	c, err := s.Columns(doc29.ColAircraftID, doc29.ColDistanceM, doc29.ColAltitudeM, doc29.ColTASMetersPerSec)
	if err != nil {
		return nil, err
	}

	conversions := []struct {
		from, to string
		convert  func(float64) float64
	}{
		{doc29.ColDistanceM, doc29.ColDistanceFt, math.MetersToFeet},
		{doc29.ColAltitudeM, doc29.ColAltitudeFt, func(m float64) float64 {
			return gomath.RoundToEven(math.MetersToFeet(m))
		}},
		{doc29.ColTASMetersPerSec, doc29.ColTASKnots, math.MetersPerSecondToKnots},
	}

	id := slices.Index(t.Header, doc29.ColAircraftID)
	for i, r := range t.Rows {
		r[id] = strings.TrimSpace(r[id])

		for _, cv := range conversions {
			v, ok, err := c.OptionalFloat(i, cv.from)
			if err != nil {
				return nil, err
			}
			if ok {
				r[slices.Index(t.Header, cv.from)] = grape.FormatFloat(cv.convert(v))
			}
		}
	}
	for _, cv := range conversions {
		t.Header[slices.Index(t.Header, cv.from)] = cv.to
	}
	return t, nil
}

func anpSpectralClasses(wb workbook.Workbook) (*grape.Table, error) {
	t, err := copySheet(wb, doc29.SheetSpectralClass, ANPSpectralClasses)
	if err != nil {
		return nil, err
	}
	om := slices.Index(t.Header, doc29.ColSpectralOperation)
	if om == -1 {
		return nil, &workbook.SchemaError{Sheet: doc29.SheetSpectralClass, Column: doc29.ColSpectralOperation,
			Err: workbook.ErrMissingColumn}
	}
	for _, r := range t.Rows {
		r[om] = strings.TrimSpace(r[om])
	}
	return t, nil
}
