// results/results_test.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package results

import (
	"context"
	"database/sql"
	"errors"
	gomath "math"
	"path/filepath"
	"testing"
)

var studySchema = []string{
	`CREATE TABLE performance_run_output_points (
		scenario_id TEXT, performance_run_id TEXT, operation_id TEXT, operation TEXT, operation_type TEXT,
		point_number INTEGER, point_origin TEXT, flight_phase TEXT, cumulative_ground_distance REAL,
		longitude REAL, latitude REAL, altitude_msl REAL, true_airspeed REAL, ground_speed REAL,
		corrected_net_thrust_per_engine REAL, bank_angle REAL, fuel_flow_per_engine REAL)`,
	`CREATE TABLE noise_run_output_receptors (
		scenario_id TEXT, performance_run_id TEXT, noise_run_id TEXT, id TEXT,
		longitude REAL, latitude REAL, altitude_msl REAL)`,
	`CREATE TABLE noise_run_output_single_event (
		scenario_id TEXT, performance_run_id TEXT, noise_run_id TEXT, receptor_id TEXT,
		operation_id TEXT, operation TEXT, operation_type TEXT, maximum_db REAL, exposure_db REAL)`,
}

var studyRows = []string{
	// Inserted out of order; reads are ordered by operation and point.
	`INSERT INTO performance_run_output_points VALUES
		('S', 'P', 'JETFDC', 'Departure', 'Flight', 2, 'Track', 'Climb', 1000, 0.01, 0, 10, 0, 0, 0, 0, 0),
		('S', 'P', 'JETFAC', 'Arrival', 'Flight', 1, 'Track', 'Approach', -5000, -0.05, 0, 250, 0, 0, 0, 0, 0),
		('S', 'P', 'JETFDC', 'Departure', 'Flight', 1, 'Track', 'TakeoffRoll', 0, 0, 0, 0, 0, 0, 0, 0, 0),
		('S', 'P', 'JETFAC', 'Arrival', 'Flight', 2, 'Track', 'Landing', 0, 0, 0, NULL, 0, 0, 0, 0, 0),
		('S', 'Other', 'JETFAC', 'Arrival', 'Flight', 1, 'Track', 'Approach', 0, 0, 0, 0, 0, 0, 0, 0, 0)`,
	`INSERT INTO noise_run_output_receptors VALUES
		('S', 'P', 'Noise Points', 'R01', 0.05, -0.004, 1.2),
		('S', 'P', 'Noise Grid', '0', -0.24, -0.1, 0)`,
	`INSERT INTO noise_run_output_single_event VALUES
		('S', 'P', 'Noise Points', 'R01', 'JETFAC', 'Arrival', 'Flight', 70.5, 78.1),
		('S', 'P', 'Noise Grid', '0', 'JETFAC', 'Arrival', 'Flight', NULL, 60.4),
		('T', 'P', 'Noise Points', 'R01', 'JETFAC', 'Arrival', 'Flight', 1, 1)`,
}

func makeStudy(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "study.grp")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for _, stmt := range append(studySchema, studyRows...) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	return path
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.grp"))
	if !errors.Is(err, ErrNoStudy) {
		t.Errorf("expected ErrNoStudy, got %v", err)
	}
}

func TestReadOnly(t *testing.T) {
	s, err := Open(makeStudy(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.db.Exec(`DELETE FROM noise_run_output_receptors`); err == nil {
		t.Errorf("expected write to a read-only study to fail")
	}
}

func TestPerformancePoints(t *testing.T) {
	s, err := Open(makeStudy(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	pts, err := s.PerformancePoints(context.Background(), "S", "P")
	if err != nil {
		t.Fatal(err)
	}

	expect := []struct {
		op    string
		n     int
		phase string
		dist  float64
	}{
		{"JETFAC", 1, "Approach", -5000},
		{"JETFAC", 2, "Landing", 0},
		{"JETFDC", 1, "TakeoffRoll", 0},
		{"JETFDC", 2, "Climb", 1000},
	}
	if len(pts) != len(expect) {
		t.Fatalf("expected %d points, got %d: %+v", len(expect), len(pts), pts)
	}
	for i, e := range expect {
		p := pts[i]
		if p.OperationID != e.op || p.PointNumber != e.n || p.FlightPhase != e.phase ||
			p.CumulativeGroundDistance != e.dist {
			t.Errorf("point %d: expected %+v, got %+v", i, e, p)
		}
	}
	if pts[0].Operation != "Arrival" || pts[0].PointOrigin != "Track" || pts[0].Longitude != -0.05 {
		t.Errorf("unexpected first point %+v", pts[0])
	}
	if !gomath.IsNaN(pts[1].AltitudeMSL) {
		t.Errorf("expected NULL altitude to read as NaN, got %f", pts[1].AltitudeMSL)
	}
}

func TestReceptorsAndSingleEvents(t *testing.T) {
	s, err := Open(makeStudy(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	r, err := s.Load(context.Background(), "S", "P")
	if err != nil {
		t.Fatal(err)
	}

	if len(r.Receptors) != 2 {
		t.Fatalf("expected 2 receptors, got %+v", r.Receptors)
	}
	for _, rc := range r.Receptors {
		if rc.ID == "R01" && (rc.NoiseRunID != "Noise Points" || rc.AltitudeMSL != 1.2 || rc.Latitude != -0.004) {
			t.Errorf("unexpected receptor %+v", rc)
		}
	}

	if len(r.SingleEvents) != 2 {
		t.Fatalf("expected 2 single events, got %+v", r.SingleEvents)
	}
	for _, e := range r.SingleEvents {
		switch e.ReceptorID {
		case "R01":
			if e.MaximumDB != 70.5 || e.ExposureDB != 78.1 || e.OperationID != "JETFAC" {
				t.Errorf("unexpected event %+v", e)
			}
		case "0":
			if !gomath.IsNaN(e.MaximumDB) || e.ExposureDB != 60.4 || e.NoiseRunID != "Noise Grid" {
				t.Errorf("unexpected event %+v", e)
			}
		default:
			t.Errorf("unexpected receptor %q", e.ReceptorID)
		}
	}
	if len(r.Points) != 4 {
		t.Errorf("expected 4 points, got %d", len(r.Points))
	}
}

func TestMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.grp")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(studySchema[1]); err != nil {
		t.Fatal(err)
	}
	db.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.PerformancePoints(context.Background(), "S", "P"); err == nil {
		t.Errorf("expected an error for a study without performance output")
	}
	if rcv, err := s.Receptors(context.Background(), "S", "P"); err != nil || len(rcv) != 0 {
		t.Errorf("expected no receptors and no error, got %v, %v", rcv, err)
	}
}
