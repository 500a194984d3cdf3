// grape/tables.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package grape

// Table names; each is written to "<name>.csv" in InputTablesDir.
const (
	TableAirports               = "Airports"
	TableRunways                = "Runways"
	TableRoutes                 = "Routes"
	TableRoutesSimple           = "Routes Simple"
	TableFleet                  = "Fleet"
	TableFlights                = "Flights"
	TableScenarios              = "Scenarios"
	TableScenariosOperations    = "Scenarios Operations"
	TablePerformanceRuns        = "Performance Runs"
	TablePerformanceAtmospheres = "Performance Runs Atmospheres"
	TableNoiseRuns              = "Noise Runs"
	TableNoisePointReceptors    = "Noise Runs Point Receptors"
	TableNoiseGridReceptors     = "Noise Runs Grid Receptors"
)

// TimeFormat is the layout of the time columns.
const TimeFormat = "2006-01-02 15:04:05"

const (
	RouteTypeSimple     = "Simple"
	OperationTypeFlight = "Flight"
	ReceptorSetPoints   = "Points"
	ReceptorSetGrid     = "Grid"
)

///////////////////////////////////////////////////////////////////////////
// Airports and runways

type Airport struct {
	ID                        string
	Longitude, Latitude       float64
	Elevation                 float64
	ReferenceTemperature      float64
	ReferenceSeaLevelPressure float64
}

var AirportsHeader = []string{"id", "longitude", "latitude", "elevation", "reference_temperature",
	"reference_sea_level_pressure"}

func (a Airport) Record() []string {
	return []string{a.ID, FormatFloat(a.Longitude), FormatFloat(a.Latitude), FormatFloat(a.Elevation),
		FormatFloat(a.ReferenceTemperature), FormatFloat(a.ReferenceSeaLevelPressure)}
}

type Runway struct {
	AirportID           string
	ID                  string
	Longitude, Latitude float64
	Elevation           float64
	Length              float64
	Heading             float64
	Gradient            float64
}

var RunwaysHeader = []string{"airport_id", "id", "longitude", "latitude", "elevation", "length", "heading",
	"gradient"}

func (r Runway) Record() []string {
	return []string{r.AirportID, r.ID, FormatFloat(r.Longitude), FormatFloat(r.Latitude),
		FormatFloat(r.Elevation), FormatFloat(r.Length), FormatFloat(r.Heading), FormatFloat(r.Gradient)}
}

///////////////////////////////////////////////////////////////////////////
// Routes

type Route struct {
	AirportID string
	RunwayID  string
	Operation string
	ID        string
	Type      string
}

var RoutesHeader = []string{"airport_id", "runway_id", "operation", "id", "type"}

func (r Route) Record() []string {
	return []string{r.AirportID, r.RunwayID, r.Operation, r.ID, r.Type}
}

type RoutePoint struct {
	AirportID           string
	RunwayID            string
	Operation           string
	RouteID             string
	Longitude, Latitude float64
}

var RoutesSimpleHeader = []string{"airport_id", "runway_id", "operation", "route_id", "longitude", "latitude"}

func (r RoutePoint) Record() []string {
	return []string{r.AirportID, r.RunwayID, r.Operation, r.RouteID, FormatFloat(r.Longitude),
		FormatFloat(r.Latitude)}
}

///////////////////////////////////////////////////////////////////////////
// Fleet and flights

type Aircraft struct {
	ID                          string
	EngineCount                 int
	MaximumSeaLevelStaticThrust float64 // N
	EngineBreakpointTemperature float64 // K
	Doc29PerformanceID          string
	SFIID                       string
	LTOEngineID                 string
	Doc29NoiseID                string
	Doc29NoiseArrivalDeltaDB    float64
	Doc29NoiseDepartureDeltaDB  float64
}

var FleetHeader = []string{"id", "engine_count", "maximum_sea_level_static_thrust",
	"engine_breakpoint_temperature", "doc29_performance_id", "sfi_id", "lto_engine_id", "doc29_noise_id",
	"doc29_noise_arrival_delta_db", "doc29_noise_departure_delta_db"}

func (a Aircraft) Record() []string {
	return []string{a.ID, FormatInt(a.EngineCount), FormatFloat(a.MaximumSeaLevelStaticThrust),
		FormatFloat(a.EngineBreakpointTemperature), a.Doc29PerformanceID, a.SFIID, a.LTOEngineID, a.Doc29NoiseID,
		FormatFloat(a.Doc29NoiseArrivalDeltaDB), FormatFloat(a.Doc29NoiseDepartureDeltaDB)}
}

type Flight struct {
	ID             string
	AirportID      string
	RunwayID       string
	Operation      string
	RouteID        string
	Time           string
	Count          int
	FleetID        string
	Weight         float64 // kg; NaN if unknown
	Doc29ProfileID string  // empty if unknown
	TakeoffThrust  float64
	ClimbThrust    float64
}

var FlightsHeader = []string{"id", "airport_id", "runway_id", "operation", "route_id", "time", "count",
	"fleet_id", "weight", "doc29_profile_id", "takeoff_thrust", "climb_thrust"}

func (f Flight) Record() []string {
	return []string{f.ID, f.AirportID, f.RunwayID, f.Operation, f.RouteID, f.Time, FormatInt(f.Count),
		f.FleetID, FormatFloat(f.Weight), f.Doc29ProfileID, FormatFloat(f.TakeoffThrust),
		FormatFloat(f.ClimbThrust)}
}

///////////////////////////////////////////////////////////////////////////
// Scenarios

type Scenario struct {
	ID string
}

var ScenariosHeader = []string{"id"}

func (s Scenario) Record() []string { return []string{s.ID} }

type ScenarioOperation struct {
	ScenarioID  string
	OperationID string
	Operation   string
	Type        string
}

var ScenariosOperationsHeader = []string{"scenario_id", "operation_id", "operation", "type"}

func (s ScenarioOperation) Record() []string {
	return []string{s.ScenarioID, s.OperationID, s.Operation, s.Type}
}

///////////////////////////////////////////////////////////////////////////
// Performance runs

// PerformanceRun holds the settings of a performance run. The altitude
// and distance filters and the minimum 4D track points are always null.
type PerformanceRun struct {
	ScenarioID                                  string
	ID                                          string
	CoordinateSystemType                        string
	CoordinateSystemLongitude0                  float64
	CoordinateSystemLatitude0                   float64
	SegmentationSpeedDeltaThreshold             float64 // m/s
	FlightsPerformanceModel                     string
	FlightsDoc29LowAltitudeSegmentation         bool
	Tracks4DCalculatePerformance                bool
	Tracks4DRecalculateCumulativeGroundDistance bool
	Tracks4DRecalculateGroundspeed              bool
	Tracks4DRecalculateFuelFlow                 bool
	FuelFlowModel                               string
	FuelFlowLTOAltitudeCorrection               bool
}

var PerformanceRunsHeader = []string{"scenario_id", "id", "coordinate_system_type",
	"coordinate_system_longitude_0", "coordinate_system_latitude_0", "filter_minimum_altitude",
	"filter_maximum_altitude", "filter_minimum_cumulative_ground_distance",
	"filter_maximum_cumulative_ground_distance", "filter_ground_distance_threshold",
	"segmentation_speed_delta_threshold", "flights_performance_model", "flights_doc29_low_altitude_segmentation",
	"tracks_4d_calculate_performance", "tracks_4d_minimum_points", "tracks_4d_recalculate_cumulative_ground_distance",
	"tracks_4d_recalculate_groundspeed", "tracks_4d_recalculate_fuel_flow", "fuel_flow_model",
	"fuel_flow_lto_altitude_correction"}

func (p PerformanceRun) Record() []string {
	return []string{p.ScenarioID, p.ID, p.CoordinateSystemType,
		FormatFloat(p.CoordinateSystemLongitude0), FormatFloat(p.CoordinateSystemLatitude0),
		"", "", "", "", "", // filters
		FormatFloat(p.SegmentationSpeedDeltaThreshold), p.FlightsPerformanceModel,
		FormatFlag(p.FlightsDoc29LowAltitudeSegmentation),
		FormatBool(p.Tracks4DCalculatePerformance), "", // minimum points
		FormatFlag(p.Tracks4DRecalculateCumulativeGroundDistance), FormatFlag(p.Tracks4DRecalculateGroundspeed),
		FormatFlag(p.Tracks4DRecalculateFuelFlow), p.FuelFlowModel, FormatFlag(p.FuelFlowLTOAltitudeCorrection)}
}

// Atmosphere gives the deviations from the standard atmosphere for a
// performance run.
type Atmosphere struct {
	ScenarioID       string
	PerformanceRunID string
	Time             string
	TemperatureDelta float64 // K
	PressureDelta    float64 // Pa
	WindSpeed        float64 // m/s, headwind
	WindDirection    float64 // NaN for a constant headwind
	RelativeHumidity float64 // 0-1
}

var PerformanceAtmospheresHeader = []string{"scenario_id", "performance_run_id", "time", "temperature_delta",
	"pressure_delta", "wind_speed", "wind_direction", "relative_humidity"}

func (a Atmosphere) Record() []string {
	return []string{a.ScenarioID, a.PerformanceRunID, a.Time, FormatFloat(a.TemperatureDelta),
		FormatFloat(a.PressureDelta), FormatFloat(a.WindSpeed), FormatFloat(a.WindDirection),
		FormatFloat(a.RelativeHumidity)}
}

///////////////////////////////////////////////////////////////////////////
// Noise runs

type NoiseRun struct {
	ScenarioID             string
	PerformanceRunID       string
	ID                     string
	NoiseModel             string
	AtmosphericAbsorption  string
	ReceptorSetType        string
	SaveSingleEventMetrics bool
}

var NoiseRunsHeader = []string{"scenario_id", "performance_run_id", "id", "noise_model",
	"atmospheric_absorption", "receptor_set_type", "save_single_event_metrics"}

func (n NoiseRun) Record() []string {
	return []string{n.ScenarioID, n.PerformanceRunID, n.ID, n.NoiseModel, n.AtmosphericAbsorption,
		n.ReceptorSetType, FormatFlag(n.SaveSingleEventMetrics)}
}

type PointReceptor struct {
	ScenarioID          string
	PerformanceRunID    string
	NoiseRunID          string
	ID                  string
	Longitude, Latitude float64
	AltitudeMSL         float64
}

var NoisePointReceptorsHeader = []string{"scenario_id", "performance_run_id", "noise_run_id", "id",
	"longitude", "latitude", "altitude_msl"}

func (p PointReceptor) Record() []string {
	return []string{p.ScenarioID, p.PerformanceRunID, p.NoiseRunID, p.ID, FormatFloat(p.Longitude),
		FormatFloat(p.Latitude), FormatFloat(p.AltitudeMSL)}
}

type GridReceptors struct {
	ScenarioID           string
	PerformanceRunID     string
	NoiseRunID           string
	ReferenceLocation    string
	ReferenceLongitude   float64
	ReferenceLatitude    float64
	ReferenceAltitudeMSL float64
	HorizontalSpacing    float64
	VerticalSpacing      float64
	HorizontalCount      int
	VerticalCount        int
	GridRotation         float64
}

var NoiseGridReceptorsHeader = []string{"scenario_id", "performance_run_id", "noise_run_id",
	"reference_location", "reference_longitude", "reference_latitude", "reference_altitude_msl",
	"horizontal_spacing", "vertical_spacing", "horizontal_count", "vertical_count", "grid_rotation"}

func (g GridReceptors) Record() []string {
	return []string{g.ScenarioID, g.PerformanceRunID, g.NoiseRunID, g.ReferenceLocation,
		FormatFloat(g.ReferenceLongitude), FormatFloat(g.ReferenceLatitude), FormatFloat(g.ReferenceAltitudeMSL),
		FormatFloat(g.HorizontalSpacing), FormatFloat(g.VerticalSpacing), FormatInt(g.HorizontalCount),
		FormatInt(g.VerticalCount), FormatFloat(g.GridRotation)}
}
