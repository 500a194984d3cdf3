// results/results.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package results reads the outputs of performance and noise runs from a
// GRAPE study file.
package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	gomath "math"
	"net/url"
	"os"

	_ "modernc.org/sqlite"
)

var ErrNoStudy = errors.New("study file not found")

const (
	TablePerformancePoints = "performance_run_output_points"
	TableNoiseReceptors    = "noise_run_output_receptors"
	TableSingleEvents      = "noise_run_output_single_event"
)

// PerformancePoint is a single point of a computed flight path.
// Undefined numeric values are NaN.
type PerformancePoint struct {
	OperationID              string
	Operation                string
	PointNumber              int
	PointOrigin              string
	FlightPhase              string
	CumulativeGroundDistance float64 // m
	Longitude                float64
	Latitude                 float64
	AltitudeMSL              float64 // m
}

// Receptor is a receptor as it was placed by a noise run.
type Receptor struct {
	NoiseRunID  string
	ID          string
	Longitude   float64
	Latitude    float64
	AltitudeMSL float64 // m
}

type SingleEvent struct {
	NoiseRunID  string
	ReceptorID  string
	OperationID string
	MaximumDB   float64
	ExposureDB  float64
}

// Store is a read-only handle to a study file.
type Store struct {
	db *sql.DB
}

// Open opens the study at path read-only. It is an error if the file does
// not exist; the driver would otherwise create an empty database.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoStudy)
		}
		return nil, err
	}

	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func nullFloat(f sql.NullFloat64) float64 {
	if !f.Valid {
		return gomath.NaN()
	}
	return f.Float64
}

// query runs q with the scenario and performance run ids as its
// parameters and calls scan for each row.
func (s *Store) query(ctx context.Context, table, q string, scan func(*sql.Rows) error, args ...any) error {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("%s: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}
	return nil
}

// PerformancePoints returns the computed flight paths of the given
// performance run, ordered by operation and point number.
func (s *Store) PerformancePoints(ctx context.Context, scenario, perfRun string) ([]PerformancePoint, error) {
	const q = `SELECT operation_id, operation, point_number, point_origin, flight_phase,
		cumulative_ground_distance, longitude, latitude, altitude_msl
		FROM ` + TablePerformancePoints + `
		WHERE scenario_id = ? AND performance_run_id = ?
		ORDER BY operation_id, point_number`

	var pts []PerformancePoint
	err := s.query(ctx, TablePerformancePoints, q, func(rows *sql.Rows) error {
		var p PerformancePoint
		var op, origin, phase sql.NullString
		var dist, lon, lat, alt sql.NullFloat64
		if err := rows.Scan(&p.OperationID, &op, &p.PointNumber, &origin, &phase, &dist, &lon, &lat, &alt); err != nil {
			return err
		}
		p.Operation, p.PointOrigin, p.FlightPhase = op.String, origin.String, phase.String
		p.CumulativeGroundDistance = nullFloat(dist)
		p.Longitude, p.Latitude, p.AltitudeMSL = nullFloat(lon), nullFloat(lat), nullFloat(alt)
		pts = append(pts, p)
		return nil
	}, scenario, perfRun)
	return pts, err
}

// Receptors returns the receptors of every noise run of the given
// performance run.
func (s *Store) Receptors(ctx context.Context, scenario, perfRun string) ([]Receptor, error) {
	const q = `SELECT noise_run_id, id, longitude, latitude, altitude_msl
		FROM ` + TableNoiseReceptors + `
		WHERE scenario_id = ? AND performance_run_id = ?`

	var rcv []Receptor
	err := s.query(ctx, TableNoiseReceptors, q, func(rows *sql.Rows) error {
		var r Receptor
		var lon, lat, alt sql.NullFloat64
		if err := rows.Scan(&r.NoiseRunID, &r.ID, &lon, &lat, &alt); err != nil {
			return err
		}
		r.Longitude, r.Latitude, r.AltitudeMSL = nullFloat(lon), nullFloat(lat), nullFloat(alt)
		rcv = append(rcv, r)
		return nil
	}, scenario, perfRun)
	return rcv, err
}

// SingleEvents returns the single event metrics of every noise run of the
// given performance run.
func (s *Store) SingleEvents(ctx context.Context, scenario, perfRun string) ([]SingleEvent, error) {
	const q = `SELECT noise_run_id, receptor_id, operation_id, maximum_db, exposure_db
		FROM ` + TableSingleEvents + `
		WHERE scenario_id = ? AND performance_run_id = ?`

	var evs []SingleEvent
	err := s.query(ctx, TableSingleEvents, q, func(rows *sql.Rows) error {
		var e SingleEvent
		var lmax, sel sql.NullFloat64
		if err := rows.Scan(&e.NoiseRunID, &e.ReceptorID, &e.OperationID, &lmax, &sel); err != nil {
			return err
		}
		e.MaximumDB, e.ExposureDB = nullFloat(lmax), nullFloat(sel)
		evs = append(evs, e)
		return nil
	}, scenario, perfRun)
	return evs, err
}

// Results holds everything that is read from a study for validation.
type Results struct {
	Points       []PerformancePoint
	Receptors    []Receptor
	SingleEvents []SingleEvent
}

// Load reads all of the outputs of the given performance run.
func (s *Store) Load(ctx context.Context, scenario, perfRun string) (*Results, error) {
	var r Results
	var err error
	if r.Points, err = s.PerformancePoints(ctx, scenario, perfRun); err != nil {
		return nil, err
	}
	if r.Receptors, err = s.Receptors(ctx, scenario, perfRun); err != nil {
		return nil, err
	}
	if r.SingleEvents, err = s.SingleEvents(ctx, scenario, perfRun); err != nil {
		return nil, err
	}
	return &r, nil
}
