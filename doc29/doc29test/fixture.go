// doc29/doc29test/fixture.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package doc29test provides a small but complete validation workbook for
// tests. It has one jet aircraft (JETF) flying four routes (AC, AS, DC,
// DS) from runway 09, a propeller aircraft that is excluded from the
// fleet, two receptors, and reference results for the four JETF cases.
package doc29test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"slices"

	"github.com/grape-tools/doc29/workbook"
)

var AircraftHeader = []string{"Aircraft Identifier", "Description", "Engine Type", "Number of Engines",
	"Weight Class", "Maximum Gross Weight Takeoff (lb)", "Maximum Gross Weight Land (lb)",
	"Maximum Land Distance (ft)", "Maximum Sea Level Static Thrust (lb)", "NPD Identifier", "Power Parameter",
	"Approach Spectral Class ID", "Departure Spectral Class ID", "Lateral Directivity Identifier"}

// Sheets returns fresh copies of all of the fixture's sheets, so callers
// may modify them.
func Sheets() []*workbook.Sheet {
	return []*workbook.Sheet{
		workbook.NewSheet("A-1_Aircraft", slices.Clone(AircraftHeader),
			[]string{"JETF", "Jet fixture", "Jet", "2", "Large", "150000", "130000", "5000", "25000", "JETF_NPD",
				"Corrected_Net_Thrust_(lb)", "101", "102", "Wing"},
			[]string{"PROPF", "Propeller fixture", "Turboprop", "2", "Small", "20000", "19000", "3000", "1500",
				"PROPF_NPD", "Shaft_Horse_Power_(%)", "201", "202", "Fuselage"}),
		workbook.NewSheet("A-2_Jet_Coefficients",
			[]string{"Aircraft Identifier", "Thrust Rating", "E (lb)", "F (lb/kt)"},
			[]string{"JETF", "MaxTakeoff", "24000", "-20.5"},
			[]string{"JETF", "MaxClimb", "21000", "-18.25"}),
		workbook.NewSheet("A-3_Propeller_Coefficients",
			[]string{"Aircraft Identifier", "Thrust Rating", "Propeller Efficiency", "Installed Net Propulsive Power (hp)"},
			[]string{"PROPF", "MaxTakeoff", "0.8", "1400"}),
		workbook.NewSheet("A-4_Aerodynamic_Coefficients",
			[]string{"Aircraft Identifier", "Op Type", "Flap_ID", "B", "C", "D", "R"},
			[]string{"JETF", "A", "D-30", "", "", "0.44", "0.11"},
			[]string{"JETF", "D", "T-05", "0.009", "0.56", "", "0.07"}),
		workbook.NewSheet("A-5_Default_Weights",
			[]string{"Aircraft Identifier", "Operation", "Weight (lb)"},
			[]string{"JETF", "A", "120000"},
			[]string{"JETF", "D", "140000"},
			[]string{"JETF", "D", "150000"}),
		workbook.NewSheet("A-6_Fixed_Point_Profiles",
			[]string{"Aircraft Identifier", "Operation mode", "Profile identifier", "Stage Length", "Point number",
				"Distance (m)", "Altitude (m)", "True Airspeed (m/s)", "Corrected Net Thrust per Engine (lb)"},
			[]string{"JETF", "A", "DEFAULT", "1", "1", "-10000", "500", "80", "5000"},
			[]string{"JETF", "A", "DEFAULT", "1", "2", "0", "15.24", "70", "3000"},
			[]string{" JETF ", "D", "DEFAULT", "1", "1", "0", "0", "0", "20000"},
			[]string{" JETF ", "D", "DEFAULT", "1", "2", "3048", "304.8", "92.6", "18000"},
			[]string{"JETF", "D", "DEFAULT", "2.0", "1", "0", "0", "0", "20000"}),
		workbook.NewSheet("A-7_NPD_Curves",
			[]string{"NPD_ID", "Noise Metric", "Op Mode", "Power Setting", "L_200ft", "L_400ft"},
			[]string{"JETF_NPD", "SEL", "A", "5000", "95.1", "90.3"},
			[]string{"JETF_NPD", "SEL", "D", "20000", "101.7", "97.2"}),
		workbook.NewSheet("A-8_Spectral_Class",
			[]string{"Spectral Class ID", "Operation Mode", "Description", "50", "63"},
			[]string{"101", " Approach ", "2 jet", "60.1", "62.3"},
			[]string{"102", "Departure  ", "2 jet", "58.4", "61.0"}),
		workbook.NewSheet("A-9_Meteorological",
			[]string{"Temperature (degC)", "Pressure (mmHg)", "Headwind (m/s)", "Elevation (m)", "Humidity (%)"},
			[]string{"15", "765", "4.1", "0", "70"},
			[]string{"25", "740", "0", "0", "50"}),
		workbook.NewSheet("A-10_Runway",
			[]string{"Runway Identifier", "SOR X coordinate (m)", "SOR Y coordinate (m)", "End X coordinate (m)",
				"End Y coordinate (m)"},
			[]string{"09", "0", "0", "3000", "0"}),
		workbook.NewSheet("A-11_Routes",
			[]string{"route_ID", "Track Points", "X coordinate (m)", "Y coordinate (m)"},
			[]string{"AC", "1", "-10000", "500"},
			[]string{"AC", "2", "-5000", "0"},
			[]string{"AC", "3", "0", "0"},
			[]string{"AC", "4", "1000", "0"},
			[]string{"AS", "1", "-8000", "0"},
			[]string{"AS", "2", "-4000", "0"},
			[]string{"DC", "1", "0", "0"},
			[]string{"DC", "2", "3000", "0"},
			[]string{"DC", "3", "8000", "2000"},
			[]string{"DS", "1", "0", "0"},
			[]string{"DS", "2", "5000", "0"},
			[]string{"DS", "3", "10000", "0"},
			[]string{"DX", "1", "0", "0"}),
		workbook.NewSheet("A-12_Receptors",
			[]string{"receptor_ID", "X coordinate (m)", "Y coordinate (m)", "Height (m)"},
			[]string{"R01", "6500", "-450", "1.2"},
			[]string{"R02", "-6500", "450", "1.2"}),
		workbook.NewSheet("B-1_SEL_Results",
			[]string{"case_ID", "receptor_ID", "SEL(dB)"},
			[]string{"JETFAC", "R01", "78.4"},
			[]string{"JETFAC", "R02", "90.2"},
			[]string{"JETFDC", "R01", "95.5"},
			[]string{"JETFDC", "R02", "70.3"}),
		workbook.NewSheet("B-2_Segment_Results",
			[]string{"case_ID", "receptor_ID", "segment_ID", "segment_start_x(ft)", "segment_start_y(ft)",
				"segment_start_z(ft)", "segment_end_x(ft)", "segment_end_y(ft)", "segment_end_z(ft)",
				"segment_length(ft)"},
			[]string{"JETFAC", "R02", "1", "-20000", "0", "1000", "-10000", "0", "500", "10000"},
			[]string{"JETFAC", "R02", "2", "-10000", "0", "500", "0", "0", "50", "10000"},
			[]string{"JETFAC", "R02", "3", "0", "0", "50", "5000", "0", "0", "5000"},
			[]string{"JETFAC", "R01", "1", "-20000", "0", "1000", "0", "0", "50", "20000"},
			[]string{"JETFAS", "R02", "1", "-20000", "0", "1000", "-10000", "0", "500", "10000"},
			[]string{"JETFDC", "R01", "1", "0", "0", "0", "10000", "0", "0", "10000"},
			[]string{"JETFDC", "R01", "2", "10000", "0", "0", "20000", "0", "1000", "10050"}),
		workbook.NewSheet("B-3_Grid_Results",
			[]string{"case_ID", "grid_x(m)", "grid_y(m)", "SEL(dB)"},
			[]string{"JETFAC", "-27000", "-12000", "60"},
			[]string{"JETFAC", "-26900", "-12000", "61"},
			[]string{"JETFDC", "0", "0", "88"}),
	}
}

// Workbook returns the fixture as an in-memory workbook.
func Workbook() workbook.MemWorkbook {
	return workbook.NewMemWorkbook(Sheets()...)
}

// WriteDir writes each of the fixture's sheets to a CSV file in dir, so
// that it can be opened with workbook.OpenDir.
func WriteDir(dir string) error {
	for _, s := range Sheets() {
		if err := writeSheet(filepath.Join(dir, s.Name+".csv"), s); err != nil {
			return err
		}
	}
	return nil
}

func writeSheet(fn string, s *workbook.Sheet) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.Header); err != nil {
		return err
	}
	if err := w.WriteAll(s.Rows); err != nil {
		return err
	}
	return f.Close()
}
