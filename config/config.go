// config/config.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grape-tools/doc29/math"
	"github.com/grape-tools/doc29/util"

	"github.com/brunoga/deep"
	"github.com/goforj/godump"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig     = errors.New("invalid run configuration")
	ErrUnknownConfigType = errors.New("unknown configuration file type")
)

// RunConfig holds every identifier and constant that the generation and
// validation pipelines embed in their outputs. A RunConfig is passed
// explicitly to each stage; stages take their own copy with Clone.
type RunConfig struct {
	AirportID        string `json:"airport_id" yaml:"airport_id"`
	ScenarioID       string `json:"scenario_id" yaml:"scenario_id"`
	PerformanceRunID string `json:"performance_run_id" yaml:"performance_run_id"`
	NoiseRunPointsID string `json:"noise_run_points_id" yaml:"noise_run_points_id"`
	NoiseRunGridID   string `json:"noise_run_grid_id" yaml:"noise_run_grid_id"`

	Airport     AirportConfig     `json:"airport" yaml:"airport"`
	Runway      RunwayConfig      `json:"runway" yaml:"runway"`
	Fleet       FleetConfig       `json:"fleet" yaml:"fleet"`
	Grid        GridConfig        `json:"grid" yaml:"grid"`
	Performance PerformanceConfig `json:"performance" yaml:"performance"`
	Noise       NoiseConfig       `json:"noise" yaml:"noise"`

	// Cases lists the reference operations that are compared, in report
	// order, with the receptor whose segment results give each one's
	// reference track.
	Cases []Case `json:"cases" yaml:"cases"`

	// ValidationOrigin is the (longitude, latitude) center of the
	// projection used when reading results back.
	ValidationOrigin [2]float64 `json:"validation_origin" yaml:"validation_origin"`
	// ReceptorRounding is the granularity, in meters, to which projected
	// receptor positions are rounded before grid results are matched.
	ReceptorRounding float64 `json:"receptor_rounding" yaml:"receptor_rounding"`
}

type AirportConfig struct {
	Longitude                 float64 `json:"longitude" yaml:"longitude"`
	Latitude                  float64 `json:"latitude" yaml:"latitude"`
	Elevation                 float64 `json:"elevation" yaml:"elevation"`
	ReferenceTemperature      float64 `json:"reference_temperature" yaml:"reference_temperature"`
	ReferenceSeaLevelPressure float64 `json:"reference_sea_level_pressure" yaml:"reference_sea_level_pressure"`
}

type RunwayConfig struct {
	// Index selects the row of the runway sheet that is used.
	Index     int     `json:"index" yaml:"index"`
	Elevation float64 `json:"elevation" yaml:"elevation"`
	Gradient  float64 `json:"gradient" yaml:"gradient"`
}

type FleetConfig struct {
	EngineBreakpointTemperature float64 `json:"engine_breakpoint_temperature" yaml:"engine_breakpoint_temperature"`
	// Aircraft whose power parameter is listed here are left out of the
	// fleet.
	ExcludedPowerParameters []string `json:"excluded_power_parameters" yaml:"excluded_power_parameters"`
}

type GridConfig struct {
	// Origin is the local (x, y) of the grid reference point, in meters,
	// in the generation projection.
	Origin            [2]float64 `json:"origin" yaml:"origin"`
	ReferenceLocation string     `json:"reference_location" yaml:"reference_location"`
	ReferenceAltitude float64    `json:"reference_altitude_msl" yaml:"reference_altitude_msl"`
	HorizontalSpacing float64    `json:"horizontal_spacing" yaml:"horizontal_spacing"`
	VerticalSpacing   float64    `json:"vertical_spacing" yaml:"vertical_spacing"`
	HorizontalCount   int        `json:"horizontal_count" yaml:"horizontal_count"`
	VerticalCount     int        `json:"vertical_count" yaml:"vertical_count"`
	Rotation          float64    `json:"grid_rotation" yaml:"grid_rotation"`
}

type PerformanceConfig struct {
	CoordinateSystemType string `json:"coordinate_system_type" yaml:"coordinate_system_type"`
	// SegmentationSpeedDeltaKnots is converted to m/s when written.
	SegmentationSpeedDeltaKnots   float64 `json:"segmentation_speed_delta_kts" yaml:"segmentation_speed_delta_kts"`
	PerformanceModel              string  `json:"flights_performance_model" yaml:"flights_performance_model"`
	LowAltitudeSegmentation       bool    `json:"flights_doc29_low_altitude_segmentation" yaml:"flights_doc29_low_altitude_segmentation"`
	Tracks4DCalculatePerformance  bool    `json:"tracks_4d_calculate_performance" yaml:"tracks_4d_calculate_performance"`
	FuelFlowModel                 string  `json:"fuel_flow_model" yaml:"fuel_flow_model"`
	FuelFlowLTOAltitudeCorrection bool    `json:"fuel_flow_lto_altitude_correction" yaml:"fuel_flow_lto_altitude_correction"`
}

type NoiseConfig struct {
	Model                  string `json:"noise_model" yaml:"noise_model"`
	AtmosphericAbsorption  string `json:"atmospheric_absorption" yaml:"atmospheric_absorption"`
	SaveSingleEventMetrics bool   `json:"save_single_event_metrics" yaml:"save_single_event_metrics"`
}

type Case struct {
	ID       string `json:"id" yaml:"id"`
	Receptor string `json:"receptor" yaml:"receptor"`
}

// Default returns the configuration that reproduces the reference
// validation study.
func Default() *RunConfig {
	return &RunConfig{
		AirportID:        "Reference Airport",
		ScenarioID:       "Reference Scenario",
		PerformanceRunID: "Performance",
		NoiseRunPointsID: "Noise Points",
		NoiseRunGridID:   "Noise Grid",
		Airport: AirportConfig{
			ReferenceTemperature:      math.ISASeaLevelTemperature,
			ReferenceSeaLevelPressure: math.ISASeaLevelPressure,
		},
		Runway: RunwayConfig{
			Index:     0,
			Elevation: 1,
			Gradient:  0,
		},
		Fleet: FleetConfig{
			EngineBreakpointTemperature: 303.15, // 30C
			ExcludedPowerParameters:     []string{"Shaft_Horse_Power_(%)"},
		},
		Grid: GridConfig{
			Origin:            [2]float64{-27000, -12000},
			ReferenceLocation: "Bottom Left",
			HorizontalSpacing: 100,
			VerticalSpacing:   100,
			HorizontalCount:   471,
			VerticalCount:     141,
		},
		Performance: PerformanceConfig{
			CoordinateSystemType:          "Local Cartesian",
			SegmentationSpeedDeltaKnots:   20,
			PerformanceModel:              "Doc29",
			LowAltitudeSegmentation:       true,
			Tracks4DCalculatePerformance:  true,
			FuelFlowModel:                 "None",
			FuelFlowLTOAltitudeCorrection: true,
		},
		Noise: NoiseConfig{
			Model:                  "Doc29",
			AtmosphericAbsorption:  "None",
			SaveSingleEventMetrics: true,
		},
		Cases: []Case{
			{ID: "JETFAC", Receptor: "R02"},
			{ID: "JETFAS", Receptor: "R02"},
			{ID: "JETFDC", Receptor: "R01"},
			{ID: "JETFDS", Receptor: "R01"},
		},
		ReceptorRounding: 100,
	}
}

// Load reads a configuration file and overlays it on Default(); fields
// that the file doesn't mention keep their default values. The format is
// chosen from the file extension: .json, .yaml, or .yml.
func Load(path string) (*RunConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, c)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownConfigType)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault returns Default() if path is empty and the result of
// Load(path) otherwise.
func LoadOrDefault(path string) (*RunConfig, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Environment variables read by the command-line tools.
const (
	EnvConfig   = "DOC29_CONFIG"
	EnvLogLevel = "DOC29_LOGLEVEL"
	EnvLogDir   = "DOC29_LOGDIR"
)

// FromEnv loads the configuration file named by DOC29_CONFIG, if set.
func FromEnv() (*RunConfig, error) {
	return LoadOrDefault(os.Getenv(EnvConfig))
}

// Validate checks the configuration for consistency, reporting every
// problem it finds. The returned error wraps ErrInvalidConfig.
func (c *RunConfig) Validate() error {
	var e util.ErrorLogger

	e.Push("identifiers")
	for _, id := range [][2]string{
		{"airport_id", c.AirportID},
		{"scenario_id", c.ScenarioID},
		{"performance_run_id", c.PerformanceRunID},
		{"noise_run_points_id", c.NoiseRunPointsID},
		{"noise_run_grid_id", c.NoiseRunGridID},
	} {
		if strings.TrimSpace(id[1]) == "" {
			e.ErrorString("%s must not be empty", id[0])
		}
	}
	if c.NoiseRunPointsID != "" && c.NoiseRunPointsID == c.NoiseRunGridID {
		e.ErrorString("point and grid noise runs must have different ids")
	}
	e.Pop()

	e.Push("airport")
	if c.Airport.Latitude < -90 || c.Airport.Latitude > 90 {
		e.ErrorString("latitude %f out of range", c.Airport.Latitude)
	}
	if c.Airport.ReferenceTemperature <= 0 {
		e.ErrorString("reference_temperature must be positive")
	}
	if c.Airport.ReferenceSeaLevelPressure <= 0 {
		e.ErrorString("reference_sea_level_pressure must be positive")
	}
	e.Pop()

	e.Push("runway")
	if c.Runway.Index < 0 {
		e.ErrorString("index %d must not be negative", c.Runway.Index)
	}
	e.Pop()

	e.Push("grid")
	if c.Grid.HorizontalSpacing <= 0 || c.Grid.VerticalSpacing <= 0 {
		e.ErrorString("spacing must be positive")
	}
	if c.Grid.HorizontalCount <= 0 || c.Grid.VerticalCount <= 0 {
		e.ErrorString("counts must be positive")
	}
	if c.Grid.ReferenceLocation == "" {
		e.ErrorString("reference_location must not be empty")
	}
	e.Pop()

	e.Push("cases")
	if len(c.Cases) == 0 {
		e.ErrorString("at least one case must be given")
	}
	seen := make(map[string]struct{})
	for i, cs := range c.Cases {
		if cs.ID == "" || cs.Receptor == "" {
			e.ErrorString("case %d: id and receptor must both be given", i)
		}
		if _, ok := seen[cs.ID]; ok {
			e.ErrorString("%s: repeated case", cs.ID)
		}
		seen[cs.ID] = struct{}{}
	}
	e.Pop()

	if lat := c.ValidationOrigin[1]; lat < -90 || lat > 90 {
		e.ErrorString("validation_origin: latitude %f out of range", lat)
	}
	if c.ReceptorRounding <= 0 {
		e.ErrorString("receptor_rounding must be positive")
	}

	return e.Err(ErrInvalidConfig)
}

// Clone returns a deep copy of the configuration.
func (c *RunConfig) Clone() *RunConfig {
	return deep.MustCopy(c)
}

// Dump returns a human-readable rendering of the configuration for debug
// logging.
func (c *RunConfig) Dump() string {
	return godump.DumpStr(c)
}
