// doc29/readers.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package doc29

import (
	"strconv"

	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/util"
	"github.com/grape-tools/doc29/workbook"
)

// Each reader validates that all of the columns it needs are present
// before parsing any rows; the first missing sheet or column or
// unparsable cell is returned as an error and no records are returned.

// columns fetches the named sheet and validates its columns.
func columns(wb workbook.Workbook, sheet string, names ...string) (*workbook.Sheet, workbook.Columns, error) {
	s, err := wb.Sheet(sheet)
	if err != nil {
		return nil, workbook.Columns{}, err
	}
	c, err := s.Columns(names...)
	if err != nil {
		return nil, workbook.Columns{}, err
	}
	return s, c, nil
}

// floats parses the named numeric columns of a row, stopping at the first
// error.
func floats(c workbook.Columns, row int, dst []*float64, cols ...string) error {
	for i, col := range cols {
		v, err := c.Float(row, col)
		if err != nil {
			return err
		}
		*dst[i] = v
	}
	return nil
}

// normalizeInteger returns integral numbers without a fractional part so
// that identifiers built from them match however the sheet was exported.
func normalizeInteger(s string) string {
	if v, err := util.Atoi(s); err == nil {
		return strconv.Itoa(v)
	}
	return s
}

///////////////////////////////////////////////////////////////////////////
// Aircraft

type Aircraft struct {
	ID              string
	EngineCount     int
	StaticThrustLbf float64
	NPDID           string
	PowerParameter  string
}

func ReadAircraft(wb workbook.Workbook) ([]Aircraft, error) {
	s, c, err := columns(wb, SheetAircraft, ColAircraftID, ColEngineCount, ColStaticThrust, ColNPDID,
		ColPowerParameter)
	if err != nil {
		return nil, err
	}

	var ac []Aircraft
	for i := range s.Len() {
		a := Aircraft{
			ID:             c.String(i, ColAircraftID),
			NPDID:          c.String(i, ColNPDID),
			PowerParameter: c.String(i, ColPowerParameter),
		}
		if a.EngineCount, err = c.Int(i, ColEngineCount); err != nil {
			return nil, err
		}
		if a.StaticThrustLbf, err = c.Float(i, ColStaticThrust); err != nil {
			return nil, err
		}
		ac = append(ac, a)
	}
	return ac, nil
}

///////////////////////////////////////////////////////////////////////////
// Default weights

type Weight struct {
	AircraftID string
	Operation  string // Arrival or Departure
	WeightLb   float64
}

func ReadWeights(wb workbook.Workbook) ([]Weight, error) {
	s, c, err := columns(wb, SheetDefaultWeights, ColAircraftID, ColWeightOperation, ColWeight)
	if err != nil {
		return nil, err
	}

	var w []Weight
	for i := range s.Len() {
		wt := Weight{
			AircraftID: c.String(i, ColAircraftID),
			Operation:  NormalizeOperation(c.String(i, ColWeightOperation)),
		}
		if wt.WeightLb, err = c.Float(i, ColWeight); err != nil {
			return nil, err
		}
		w = append(w, wt)
	}
	return w, nil
}

///////////////////////////////////////////////////////////////////////////
// Fixed point profiles

// ProfileKey identifies a fixed point profile; each profile has many
// points in the sheet.
type ProfileKey struct {
	AircraftID  string
	Operation   string // Arrival or Departure
	ProfileID   string
	StageLength string
}

// ID returns the profile identifier used in the generated tables: the
// profile id followed by the stage length.
func (k ProfileKey) ID() string {
	return k.ProfileID + " " + k.StageLength
}

// ReadProfileKeys returns the distinct profiles in the order in which they
// first appear in the sheet.
func ReadProfileKeys(wb workbook.Workbook) ([]ProfileKey, error) {
	s, c, err := columns(wb, SheetProfiles, ColAircraftID, ColProfileOperation, ColProfileID, ColStageLength,
		ColDistanceM, ColAltitudeM, ColTASMetersPerSec)
	if err != nil {
		return nil, err
	}

	var keys []ProfileKey
	for i := range s.Len() {
		keys = append(keys, ProfileKey{
			AircraftID:  c.String(i, ColAircraftID),
			Operation:   NormalizeOperation(c.Raw(i, ColProfileOperation)),
			ProfileID:   c.Raw(i, ColProfileID),
			StageLength: normalizeInteger(c.String(i, ColStageLength)),
		})
	}
	return util.UniqueSlice(keys), nil
}

///////////////////////////////////////////////////////////////////////////
// Meteorology

type Meteorology struct {
	TemperatureC float64
	PressureMmHg float64
	HeadwindMPS  float64
	ElevationM   float64
	HumidityPct  float64
}

func ReadMeteorology(wb workbook.Workbook) ([]Meteorology, error) {
	s, c, err := columns(wb, SheetMeteorological, ColTemperature, ColPressure, ColHeadwind, ColElevation,
		ColHumidity)
	if err != nil {
		return nil, err
	}

	var m []Meteorology
	for i := range s.Len() {
		var mt Meteorology
		if err := floats(c, i,
			[]*float64{&mt.TemperatureC, &mt.PressureMmHg, &mt.HeadwindMPS, &mt.ElevationM, &mt.HumidityPct},
			ColTemperature, ColPressure, ColHeadwind, ColElevation, ColHumidity); err != nil {
			return nil, err
		}
		m = append(m, mt)
	}
	return m, nil
}

///////////////////////////////////////////////////////////////////////////
// Runways

// Runway positions are planar (x, y) in meters.
type Runway struct {
	ID    string
	Start math.Point2
	End   math.Point2
}

func ReadRunways(wb workbook.Workbook) ([]Runway, error) {
	s, c, err := columns(wb, SheetRunway, ColRunwayID, ColSORX, ColSORY, ColEndX, ColEndY)
	if err != nil {
		return nil, err
	}

	var rwys []Runway
	for i := range s.Len() {
		r := Runway{ID: c.String(i, ColRunwayID)}
		if err := floats(c, i, []*float64{&r.Start[0], &r.Start[1], &r.End[0], &r.End[1]},
			ColSORX, ColSORY, ColEndX, ColEndY); err != nil {
			return nil, err
		}
		rwys = append(rwys, r)
	}
	return rwys, nil
}

///////////////////////////////////////////////////////////////////////////
// Routes

type RoutePoint struct {
	RouteID    string
	TrackPoint string
	P          math.Point2
}

// Operation returns Arrival for routes whose id starts with "A" and
// Departure for all others.
func (rp RoutePoint) Operation() string {
	if len(rp.RouteID) > 0 && rp.RouteID[0] == 'A' {
		return OperationArrival
	}
	return OperationDeparture
}

func ReadRoutePoints(wb workbook.Workbook) ([]RoutePoint, error) {
	s, c, err := columns(wb, SheetRoutes, ColRouteID, ColTrackPoint, ColX, ColY)
	if err != nil {
		return nil, err
	}

	var pts []RoutePoint
	for i := range s.Len() {
		rp := RoutePoint{
			RouteID:    c.String(i, ColRouteID),
			TrackPoint: c.String(i, ColTrackPoint),
		}
		if err := floats(c, i, []*float64{&rp.P[0], &rp.P[1]}, ColX, ColY); err != nil {
			return nil, err
		}
		pts = append(pts, rp)
	}
	return pts, nil
}

///////////////////////////////////////////////////////////////////////////
// Receptors

type Receptor struct {
	ID      string
	P       math.Point2
	HeightM float64
}

func ReadReceptors(wb workbook.Workbook) ([]Receptor, error) {
	s, c, err := columns(wb, SheetReceptors, ColReceptorID, ColX, ColY, ColHeight)
	if err != nil {
		return nil, err
	}

	var rcv []Receptor
	for i := range s.Len() {
		r := Receptor{ID: c.String(i, ColReceptorID)}
		if err := floats(c, i, []*float64{&r.P[0], &r.P[1], &r.HeightM}, ColX, ColY, ColHeight); err != nil {
			return nil, err
		}
		rcv = append(rcv, r)
	}
	return rcv, nil
}

///////////////////////////////////////////////////////////////////////////
// Reference results

type SELResult struct {
	CaseID     string
	ReceptorID string
	SEL        float64 // dB
}

func ReadSELResults(wb workbook.Workbook) ([]SELResult, error) {
	s, c, err := columns(wb, SheetSELResults, ColCaseID, ColReceptorID, ColSEL)
	if err != nil {
		return nil, err
	}

	var res []SELResult
	for i := range s.Len() {
		r := SELResult{
			CaseID:     c.String(i, ColCaseID),
			ReceptorID: c.String(i, ColReceptorID),
		}
		if r.SEL, err = c.Float(i, ColSEL); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

// Segment is a straight flight path segment from the reference noise
// calculation. Coordinates are in feet.
type Segment struct {
	CaseID     string
	ReceptorID string
	SegmentID  string
	Start      [3]float64
	End        [3]float64
	LengthFt   float64
}

func ReadSegments(wb workbook.Workbook) ([]Segment, error) {
	s, c, err := columns(wb, SheetSegmentResults, ColCaseID, ColReceptorID, ColSegmentID,
		ColSegStartX, ColSegStartY, ColSegStartZ, ColSegEndX, ColSegEndY, ColSegEndZ, ColSegLength)
	if err != nil {
		return nil, err
	}

	var segs []Segment
	for i := range s.Len() {
		sg := Segment{
			CaseID:     c.String(i, ColCaseID),
			ReceptorID: c.String(i, ColReceptorID),
			SegmentID:  c.String(i, ColSegmentID),
		}
		if err := floats(c, i,
			[]*float64{&sg.Start[0], &sg.Start[1], &sg.Start[2], &sg.End[0], &sg.End[1], &sg.End[2], &sg.LengthFt},
			ColSegStartX, ColSegStartY, ColSegStartZ, ColSegEndX, ColSegEndY, ColSegEndZ, ColSegLength); err != nil {
			return nil, err
		}
		segs = append(segs, sg)
	}
	return segs, nil
}

// GridResult is a reference SEL value at a planar grid point, in meters.
type GridResult struct {
	CaseID string
	P      math.Point2
	SEL    float64
}

func ReadGridResults(wb workbook.Workbook) ([]GridResult, error) {
	s, c, err := columns(wb, SheetGridResults, ColCaseID, ColGridX, ColGridY, ColSEL)
	if err != nil {
		return nil, err
	}

	var res []GridResult
	for i := range s.Len() {
		r := GridResult{CaseID: c.String(i, ColCaseID)}
		if err := floats(c, i, []*float64{&r.P[0], &r.P[1], &r.SEL}, ColGridX, ColGridY, ColSEL); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}
