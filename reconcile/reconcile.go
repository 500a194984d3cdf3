// reconcile/reconcile.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package reconcile compares the flight paths and noise levels computed
// by a GRAPE study with the reference results of the validation
// workbook.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	gomath "math"

	"github.com/grape-tools/doc29/config"
	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/log"
	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/report"
	"github.com/grape-tools/doc29/results"
	"github.com/grape-tools/doc29/workbook"
)

var (
	ErrDuplicateKey    = errors.New("computed values collide on key")
	ErrMissingReceptor = errors.New("receptor not in study")
)

// Reference holds the parts of the validation workbook that computed
// results are compared with.
type Reference struct {
	Receptors []doc29.Receptor
	SELs      []doc29.SELResult
	Segments  []doc29.Segment
	Grid      []doc29.GridResult
}

func ReadReference(wb workbook.Workbook) (*Reference, error) {
	var ref Reference
	var err error
	if ref.Receptors, err = doc29.ReadReceptors(wb); err != nil {
		return nil, err
	}
	if ref.SELs, err = doc29.ReadSELResults(wb); err != nil {
		return nil, err
	}
	if ref.Segments, err = doc29.ReadSegments(wb); err != nil {
		return nil, err
	}
	if ref.Grid, err = doc29.ReadGridResults(wb); err != nil {
		return nil, err
	}
	return &ref, nil
}

// LoadStudy reads the outputs of the configured performance run; the study
// file is closed before it returns.
func LoadStudy(ctx context.Context, cfg *config.RunConfig, path string) (*results.Results, error) {
	st, err := results.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return st.Load(ctx, cfg.ScenarioID, cfg.PerformanceRunID)
}

///////////////////////////////////////////////////////////////////////////
// Report

// Column names shared by several sections.
const (
	ColReceptor    = "receptor"
	ColSELDoc29    = "sel doc29"
	ColSELGrape    = "sel grape"
	ColDiff        = "diff"
	ColType        = "type"
	ColRMSE        = "root mean squared error"
	ColCumDistance = "cumulative_ground_distance"
)

// Report is the outcome of a validation: where the receptors were placed
// and, for each case, the reference and computed tracks and noise levels.
type Report struct {
	Points *report.Table
	Cases  []*CaseReport

	// Warnings holds problems with the study's receptors: ones that could
	// not be placed and reference receptors that it lacks.
	Warnings []error
}

type CaseReport struct {
	ID       string
	Receptor string

	ReferenceTrack *report.Table
	ComputedTrack  *report.Table
	PointSEL       *report.Table
	GridSEL        *report.Table
	RMSE           *report.Table

	PointsRMSE float64 // dB
	GridRMSE   float64 // dB

	// Warnings describes missing or ambiguous data that did not prevent
	// the case from being reported.
	Warnings []error
}

// Tables returns all of the report's sections in order, followed by a
// table of warnings if there were any.
func (r *Report) Tables() []*report.Table {
	t := []*report.Table{r.Points}
	warn := report.NewTable("Warnings", "case", "warning")
	for _, w := range r.Warnings {
		warn.AddRow(r.Points.Name, w.Error())
	}
	for _, c := range r.Cases {
		t = append(t, c.ReferenceTrack, c.ComputedTrack, c.PointSEL, c.GridSEL, c.RMSE)
		for _, w := range c.Warnings {
			warn.AddRow(c.ID, w.Error())
		}
	}
	if warn.Len() > 0 {
		t = append(t, warn)
	}
	return t
}

///////////////////////////////////////////////////////////////////////////
// Reconciler

// Reconciler compares computed results with the reference ones in a
// projection centered on the validation origin.
type Reconciler struct {
	cfg  *config.RunConfig
	lg   *log.Logger
	proj *math.Orthographic
}

func New(cfg *config.RunConfig, lg *log.Logger) (*Reconciler, error) {
	proj, err := math.NewOrthographic(cfg.ValidationOrigin[0], cfg.ValidationOrigin[1])
	if err != nil {
		return nil, fmt.Errorf("validation origin: %w", err)
	}
	return &Reconciler{cfg: cfg.Clone(), lg: lg, proj: proj}, nil
}

// placedReceptor is a receptor of the study with its position in the
// validation projection, rounded to the configured granularity.
type placedReceptor struct {
	results.Receptor
	X, Y float64
}

// project returns NaN coordinates for positions that can't be projected.
func (r *Reconciler) project(lon, lat float64) (float64, float64, error) {
	x, y, err := r.proj.Forward(lon, lat)
	if err != nil {
		return gomath.NaN(), gomath.NaN(), err
	}
	return x, y, nil
}

func (r *Reconciler) placeReceptors(rcv []results.Receptor, noiseRun string) ([]placedReceptor, []error) {
	var placed []placedReceptor
	var errs []error
	for _, rc := range rcv {
		if rc.NoiseRunID != noiseRun {
			continue
		}
		x, y, err := r.project(rc.Longitude, rc.Latitude)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s receptor %s: %w", noiseRun, rc.ID, err))
		}
		placed = append(placed, placedReceptor{
			Receptor: rc,
			X:        math.RoundToMultiple(x, r.cfg.ReceptorRounding),
			Y:        math.RoundToMultiple(y, r.cfg.ReceptorRounding),
		})
	}
	return placed, errs
}

// index maps each value to its key. When several values share a key the
// first is kept and the others are reported.
func index[K comparable, V any](s []V, key func(V) K, what string) (map[K]V, []error) {
	m := make(map[K]V, len(s))
	var errs []error
	for _, v := range s {
		k := key(v)
		if _, ok := m[k]; ok {
			errs = append(errs, fmt.Errorf("%s %v: %w", what, k, ErrDuplicateKey))
			continue
		}
		m[k] = v
	}
	return m, errs
}

func (r *Reconciler) warn(errs []error) {
	for _, err := range errs {
		r.lg.Warnf("%v", err)
	}
}

// Reconcile builds the validation report. Values that are missing from
// the study are NaN; every configured case is reported.
func (r *Reconciler) Reconcile(ref *Reference, res *results.Results) *Report {
	rep := &Report{}
	pointRcv, errs := r.placeReceptors(res.Receptors, r.cfg.NoiseRunPointsID)
	rep.Warnings = append(rep.Warnings, errs...)
	gridRcv, errs := r.placeReceptors(res.Receptors, r.cfg.NoiseRunGridID)
	rep.Warnings = append(rep.Warnings, errs...)

	rep.Points, errs = r.pointsSummary(ref.Receptors, pointRcv)
	rep.Warnings = append(rep.Warnings, errs...)
	r.warn(rep.Warnings)

	for _, cs := range r.cfg.Cases {
		cr := r.reconcileCase(cs, ref, res, gridRcv)
		r.lg.Infof("%s: points RMSE %.3f dB, grid RMSE %.3f dB, %d warnings", cs.ID, cr.PointsRMSE,
			cr.GridRMSE, len(cr.Warnings))
		rep.Cases = append(rep.Cases, cr)
	}
	return rep
}

func (r *Reconciler) pointsSummary(ref []doc29.Receptor, placed []placedReceptor) (*report.Table, []error) {
	t := report.NewTable("Points", ColReceptor, "x", "y", "altitude_msl", "longitude", "latitude",
		"x grape", "y grape", "altitude_msl grape")

	byID, errs := index(placed, func(p placedReceptor) string { return p.ID }, "point receptor")

	for _, rc := range ref {
		p, ok := byID[rc.ID]
		if !ok {
			nan := gomath.NaN()
			errs = append(errs, fmt.Errorf("%s receptor %s: %w", r.cfg.NoiseRunPointsID, rc.ID,
				ErrMissingReceptor))
			t.AddRow(rc.ID, rc.P[0], rc.P[1], rc.HeightM, nan, nan, nan, nan, nan)
			continue
		}
		t.AddRow(rc.ID, rc.P[0], rc.P[1], rc.HeightM, p.Longitude, p.Latitude, p.X, p.Y, p.AltitudeMSL)
	}
	return t, errs
}

func (r *Reconciler) reconcileCase(cs config.Case, ref *Reference, res *results.Results,
	gridRcv []placedReceptor) *CaseReport {
	cr := &CaseReport{ID: cs.ID, Receptor: cs.Receptor}
	lg := r.lg.With("case", cs.ID)
	warn := func(errs ...error) {
		for _, err := range errs {
			lg.Warnf("%v", err)
		}
		cr.Warnings = append(cr.Warnings, errs...)
	}

	track, err := ReconstructTrack(ref.Segments, cs.ID, cs.Receptor, r.proj)
	if err != nil {
		warn(unjoin(err)...)
	}
	cr.ReferenceTrack = report.NewTable(cs.ID+" reference track", ColCumDistance, "x", "y", "longitude",
		"latitude", "altitude")
	for _, p := range track {
		cr.ReferenceTrack.AddRow(p.CumulativeGroundDistance, p.X, p.Y, p.Longitude, p.Latitude, p.Altitude)
	}

	var errs []error
	cr.ComputedTrack, errs = r.computedTrack(cs.ID, res.Points)
	warn(errs...)

	var pointDiffs, gridDiffs []float64
	cr.PointSEL, pointDiffs, errs = r.pointSEL(cs.ID, ref.SELs, res.SingleEvents)
	warn(errs...)
	cr.GridSEL, gridDiffs, errs = r.gridSEL(cs.ID, ref.Grid, res.SingleEvents, gridRcv)
	warn(errs...)

	cr.PointsRMSE, cr.GridRMSE = math.RMS(pointDiffs), math.RMS(gridDiffs)
	cr.RMSE = report.NewTable(cs.ID+" RMSE", ColType, ColRMSE)
	cr.RMSE.AddRow("points", cr.PointsRMSE)
	cr.RMSE.AddRow("grid", cr.GridRMSE)

	return cr
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

func (r *Reconciler) computedTrack(caseID string, pts []results.PerformancePoint) (*report.Table, []error) {
	t := report.NewTable(caseID+" computed track", ColCumDistance+" grape", "x grape", "y grape",
		"longitude grape", "latitude grape", "altitude grape", "point_origin", "flight_phase")

	var errs []error
	for _, p := range pts {
		if p.OperationID != caseID {
			continue
		}
		x, y, err := r.project(p.Longitude, p.Latitude)
		if err != nil {
			errs = append(errs, fmt.Errorf("computed point %d: %w", p.PointNumber, err))
		}
		t.AddRow(p.CumulativeGroundDistance, math.RoundDecimals(x, 2), math.RoundDecimals(y, 2), p.Longitude,
			p.Latitude, p.AltitudeMSL, p.PointOrigin, p.FlightPhase)
	}
	if t.Len() == 0 {
		errs = append(errs, fmt.Errorf("%s: no computed flight path", caseID))
	}
	return t, errs
}

// pointSEL matches the reference levels of a case with the computed ones
// by receptor.
func (r *Reconciler) pointSEL(caseID string, ref []doc29.SELResult, evs []results.SingleEvent) (*report.Table,
	[]float64, []error) {
	t := report.NewTable(caseID+" point SEL", ColReceptor, ColSELDoc29, ColSELGrape, ColDiff)

	var caseEvents []results.SingleEvent
	for _, e := range evs {
		if e.NoiseRunID == r.cfg.NoiseRunPointsID && e.OperationID == caseID {
			caseEvents = append(caseEvents, e)
		}
	}
	byReceptor, errs := index(caseEvents, func(e results.SingleEvent) string { return e.ReceptorID },
		"point single event")

	var diffs []float64
	for _, s := range ref {
		if s.CaseID != caseID {
			continue
		}
		grape := gomath.NaN()
		if e, ok := byReceptor[s.ReceptorID]; ok {
			grape = e.ExposureDB
		}
		diff := grape - s.SEL
		t.AddRow(s.ReceptorID, s.SEL, grape, diff)
		diffs = append(diffs, diff)
	}
	return t, diffs, errs
}

type gridEvent struct {
	placedReceptor
	sel float64
}

// gridSEL matches the reference grid levels of a case with the computed
// ones at the grid receptor with the same rounded position.
func (r *Reconciler) gridSEL(caseID string, ref []doc29.GridResult, evs []results.SingleEvent,
	gridRcv []placedReceptor) (*report.Table, []float64, []error) {
	t := report.NewTable(caseID+" grid SEL", "id", "x", "y", "longitude", "latitude", ColSELDoc29, ColSELGrape,
		ColDiff)

	rcvByID, errs := index(gridRcv, func(p placedReceptor) string { return p.ID }, "grid receptor")

	var joined []gridEvent
	for _, e := range evs {
		if e.NoiseRunID != r.cfg.NoiseRunGridID || e.OperationID != caseID {
			continue
		}
		if rc, ok := rcvByID[e.ReceptorID]; ok {
			joined = append(joined, gridEvent{placedReceptor: rc, sel: e.ExposureDB})
		}
	}
	byPosition, perrs := index(joined, func(g gridEvent) [2]float64 { return [2]float64{g.X, g.Y} },
		"grid position")
	errs = append(errs, perrs...)

	var diffs []float64
	for _, g := range ref {
		if g.CaseID != caseID {
			continue
		}
		nan := gomath.NaN()
		ge, ok := byPosition[[2]float64{g.P[0], g.P[1]}]
		if !ok {
			t.AddRow("", g.P[0], g.P[1], nan, nan, g.SEL, nan, nan)
			diffs = append(diffs, nan)
			continue
		}
		diff := ge.sel - g.SEL
		t.AddRow(ge.ID, g.P[0], g.P[1], ge.Longitude, ge.Latitude, g.SEL, ge.sel, diff)
		diffs = append(diffs, diff)
	}
	return t, diffs, errs
}
