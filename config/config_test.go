// config/config_test.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default configuration is invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *RunConfig)
		substr string
	}{
		{
			name:   "empty scenario",
			modify: func(c *RunConfig) { c.ScenarioID = " " },
			substr: "scenario_id must not be empty",
		},
		{
			name:   "same noise runs",
			modify: func(c *RunConfig) { c.NoiseRunGridID = c.NoiseRunPointsID },
			substr: "different ids",
		},
		{
			name:   "negative runway",
			modify: func(c *RunConfig) { c.Runway.Index = -1 },
			substr: "runway: index -1",
		},
		{
			name:   "zero spacing",
			modify: func(c *RunConfig) { c.Grid.VerticalSpacing = 0 },
			substr: "grid: spacing must be positive",
		},
		{
			name:   "no cases",
			modify: func(c *RunConfig) { c.Cases = nil },
			substr: "at least one case",
		},
		{
			name:   "repeated case",
			modify: func(c *RunConfig) { c.Cases = append(c.Cases, Case{ID: "JETFAC", Receptor: "R01"}) },
			substr: "JETFAC: repeated case",
		},
		{
			name:   "rounding",
			modify: func(c *RunConfig) { c.ReceptorRounding = 0 },
			substr: "receptor_rounding",
		},
		{
			name:   "origin",
			modify: func(c *RunConfig) { c.ValidationOrigin = [2]float64{0, 91} },
			substr: "validation_origin",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := Default()
			test.modify(c)
			err := c.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), test.substr) {
				t.Errorf("error %q doesn't mention %q", err.Error(), test.substr)
			}
		})
	}
}

func TestValidateReportsEverything(t *testing.T) {
	c := Default()
	c.AirportID = ""
	c.Grid.HorizontalCount = 0
	c.ReceptorRounding = -5

	err := c.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, s := range []string{"airport_id", "counts must be positive", "receptor_rounding"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q doesn't mention %q", err.Error(), s)
		}
	}
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestLoadJSON(t *testing.T) {
	fn := writeFile(t, "run.json", `{
  "scenario_id": "Validation",
  "runway": {"index": 1},
  "cases": [{"id": "JETFAC", "receptor": "R03"}],
  "receptor_rounding": 50
}`)

	c, err := Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	if c.ScenarioID != "Validation" {
		t.Errorf("scenario id %q", c.ScenarioID)
	}
	if c.AirportID != "Reference Airport" {
		t.Errorf("airport id default lost: %q", c.AirportID)
	}
	if c.Runway.Index != 1 || c.Runway.Elevation != 1 {
		t.Errorf("runway %+v", c.Runway)
	}
	if len(c.Cases) != 1 || c.Cases[0].Receptor != "R03" {
		t.Errorf("cases %+v", c.Cases)
	}
	if c.ReceptorRounding != 50 {
		t.Errorf("rounding %f", c.ReceptorRounding)
	}
}

func TestLoadYAML(t *testing.T) {
	fn := writeFile(t, "run.yaml", `
performance_run_id: Perf
grid:
  horizontal_count: 10
  vertical_count: 20
noise:
  atmospheric_absorption: SAE ARP 5534
`)

	c, err := Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	if c.PerformanceRunID != "Perf" || c.ScenarioID != "Reference Scenario" {
		t.Errorf("ids %q %q", c.PerformanceRunID, c.ScenarioID)
	}
	if c.Grid.HorizontalCount != 10 || c.Grid.VerticalCount != 20 {
		t.Errorf("grid %+v", c.Grid)
	}
	if c.Noise.AtmosphericAbsorption != "SAE ARP 5534" {
		t.Errorf("noise %+v", c.Noise)
	}
	if len(c.Cases) != 4 {
		t.Errorf("default cases lost: %+v", c.Cases)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(writeFile(t, "run.toml", "x = 1")); !errors.Is(err, ErrUnknownConfigType) {
		t.Errorf("expected ErrUnknownConfigType, got %v", err)
	}
	if _, err := Load(writeFile(t, "bad.json", `{"receptor_rounding": -1}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Load(writeFile(t, "broken.json", `{"scenario_id": `)); err == nil {
		t.Errorf("expected a parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}

	if c, err := LoadOrDefault(""); err != nil || c.ScenarioID != "Reference Scenario" {
		t.Errorf("LoadOrDefault(\"\") = %v, %v", c, err)
	}
}

func TestClone(t *testing.T) {
	c := Default()
	d := c.Clone()

	c.Cases[0].Receptor = "R99"
	c.Fleet.ExcludedPowerParameters[0] = "something else"
	c.Grid.Origin[0] = 0

	if d.Cases[0].Receptor != "R02" {
		t.Errorf("clone shares cases with the original")
	}
	if d.Fleet.ExcludedPowerParameters[0] != "Shaft_Horse_Power_(%)" {
		t.Errorf("clone shares excluded power parameters with the original")
	}
	if d.Grid.Origin[0] != -27000 {
		t.Errorf("clone shares grid origin with the original")
	}

	if s := d.Dump(); !strings.Contains(s, "Reference Scenario") {
		t.Errorf("Dump() doesn't include the scenario id: %s", s)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvConfig, "")
	if c, err := FromEnv(); err != nil || c.AirportID != "Reference Airport" {
		t.Errorf("expected defaults without %s, got %v, %v", EnvConfig, c, err)
	}

	t.Setenv(EnvConfig, writeFile(t, "env.yaml", "airport_id: Elsewhere\n"))
	if c, err := FromEnv(); err != nil || c.AirportID != "Elsewhere" {
		t.Errorf("expected the file named by %s to be loaded, got %v, %v", EnvConfig, c, err)
	}
}
