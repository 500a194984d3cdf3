// doc29/sheets.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package doc29 reads the data sheets of the ECAC Doc 29 validation
// workbook into typed records.
package doc29

// Sheet names
const (
	SheetAircraft       = "A-1_Aircraft"
	SheetJetCoeffs      = "A-2_Jet_Coefficients"
	SheetPropCoeffs     = "A-3_Propeller_Coefficients"
	SheetAeroCoeffs     = "A-4_Aerodynamic_Coefficients"
	SheetDefaultWeights = "A-5_Default_Weights"
	SheetProfiles       = "A-6_Fixed_Point_Profiles"
	SheetNPD            = "A-7_NPD_Curves"
	SheetSpectralClass  = "A-8_Spectral_Class"
	SheetMeteorological = "A-9_Meteorological"
	SheetRunway         = "A-10_Runway"
	SheetRoutes         = "A-11_Routes"
	SheetReceptors      = "A-12_Receptors"
	SheetSELResults     = "B-1_SEL_Results"
	SheetSegmentResults = "B-2_Segment_Results"
	SheetGridResults    = "B-3_Grid_Results"
)

// Column names, grouped by sheet.
const (
	ColAircraftID      = "Aircraft Identifier"
	ColEngineCount     = "Number of Engines"
	ColStaticThrust    = "Maximum Sea Level Static Thrust (lb)"
	ColNPDID           = "NPD Identifier"
	ColPowerParameter  = "Power Parameter"
	ColOwnerCategory   = "Owner Category"
	ColNoiseChapter    = "Noise Chapter"
	ColWeightOperation = "Operation"
	ColWeight          = "Weight (lb)"

	ColProfileOperation = "Operation mode"
	ColProfileID        = "Profile identifier"
	ColStageLength      = "Stage Length"
	ColDistanceM        = "Distance (m)"
	ColAltitudeM        = "Altitude (m)"
	ColTASMetersPerSec  = "True Airspeed (m/s)"
	ColDistanceFt       = "Distance (ft)"
	ColAltitudeFt       = "Altitude (ft)"
	ColTASKnots         = "True Airspeed (kts)"

	ColSpectralOperation = "Operation Mode"

	ColTemperature = "Temperature (degC)"
	ColPressure    = "Pressure (mmHg)"
	ColHeadwind    = "Headwind (m/s)"
	ColElevation   = "Elevation (m)"
	ColHumidity    = "Humidity (%)"

	ColRunwayID = "Runway Identifier"
	ColSORX     = "SOR X coordinate (m)"
	ColSORY     = "SOR Y coordinate (m)"
	ColEndX     = "End X coordinate (m)"
	ColEndY     = "End Y coordinate (m)"

	ColRouteID    = "route_ID"
	ColTrackPoint = "Track Points"
	ColX          = "X coordinate (m)"
	ColY          = "Y coordinate (m)"

	ColReceptorID = "receptor_ID"
	ColHeight     = "Height (m)"

	ColCaseID    = "case_ID"
	ColSEL       = "SEL(dB)"
	ColSegmentID = "segment_ID"
	ColSegStartX = "segment_start_x(ft)"
	ColSegStartY = "segment_start_y(ft)"
	ColSegStartZ = "segment_start_z(ft)"
	ColSegEndX   = "segment_end_x(ft)"
	ColSegEndY   = "segment_end_y(ft)"
	ColSegEndZ   = "segment_end_z(ft)"
	ColSegLength = "segment_length(ft)"
	ColGridX     = "grid_x(m)"
	ColGridY     = "grid_y(m)"
)

// Power parameter values that get special treatment.
const (
	PowerShaftHorsePower = "Shaft_Horse_Power_(%)"
	PowerCorrectedThrust = "Corrected_Net_Thrust_(lb)"
)

const (
	OperationArrival   = "Arrival"
	OperationDeparture = "Departure"
)

// NormalizeOperation maps the single-letter operation codes used in the
// workbook to full operation names; anything else is returned unchanged.
func NormalizeOperation(op string) string {
	switch op {
	case "A":
		return OperationArrival
	case "D":
		return OperationDeparture
	default:
		return op
	}
}
