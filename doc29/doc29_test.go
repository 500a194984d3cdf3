// doc29/doc29_test.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package doc29_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/grape-tools/doc29/doc29"
	"github.com/grape-tools/doc29/doc29/doc29test"
	"github.com/grape-tools/doc29/workbook"
)

func TestNormalizeOperation(t *testing.T) {
	tests := []struct{ in, want string }{
		{"A", "Arrival"},
		{"D", "Departure"},
		{"Arrival", "Arrival"},
		{"a", "a"},
		{"", ""},
	}
	for _, test := range tests {
		if got := doc29.NormalizeOperation(test.in); got != test.want {
			t.Errorf("NormalizeOperation(%q) = %q, expected %q", test.in, got, test.want)
		}
	}
}

func TestReadAircraft(t *testing.T) {
	ac, err := doc29.ReadAircraft(doc29test.Workbook())
	if err != nil {
		t.Fatal(err)
	}
	if len(ac) != 2 {
		t.Fatalf("expected 2 aircraft, got %d", len(ac))
	}
	want := doc29.Aircraft{ID: "JETF", EngineCount: 2, StaticThrustLbf: 25000, NPDID: "JETF_NPD",
		PowerParameter: doc29.PowerCorrectedThrust}
	if ac[0] != want {
		t.Errorf("got %+v, expected %+v", ac[0], want)
	}
	if ac[1].PowerParameter != doc29.PowerShaftHorsePower {
		t.Errorf("PROPF power parameter %q", ac[1].PowerParameter)
	}
}

func TestReadWeights(t *testing.T) {
	w, err := doc29.ReadWeights(doc29test.Workbook())
	if err != nil {
		t.Fatal(err)
	}
	if len(w) != 3 {
		t.Fatalf("expected 3 weights, got %d", len(w))
	}
	if w[0].Operation != doc29.OperationArrival || w[1].Operation != doc29.OperationDeparture {
		t.Errorf("operations not normalized: %+v", w)
	}
	if w[1].WeightLb != 140000 {
		t.Errorf("weight %f", w[1].WeightLb)
	}
}

func TestReadProfileKeys(t *testing.T) {
	keys, err := doc29.ReadProfileKeys(doc29test.Workbook())
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.AircraftID + "/" + k.Operation + "/" + k.ID()
	}
	expected := []string{"JETF/Arrival/DEFAULT 1", "JETF/Departure/DEFAULT 1", "JETF/Departure/DEFAULT 2"}
	if !slices.Equal(ids, expected) {
		t.Errorf("got %q, expected %q", ids, expected)
	}
}

func TestReadGeometry(t *testing.T) {
	wb := doc29test.Workbook()

	rwys, err := doc29.ReadRunways(wb)
	if err != nil {
		t.Fatal(err)
	}
	if len(rwys) != 1 || rwys[0].ID != "09" || rwys[0].End[0] != 3000 {
		t.Errorf("unexpected runways %+v", rwys)
	}

	pts, err := doc29.ReadRoutePoints(wb)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 13 {
		t.Fatalf("expected 13 route points, got %d", len(pts))
	}
	if pts[0].Operation() != doc29.OperationArrival || pts[6].Operation() != doc29.OperationDeparture {
		t.Errorf("route operations: %s %s", pts[0].Operation(), pts[6].Operation())
	}
	if !pts[2].P.IsOrigin() || pts[0].P.IsOrigin() {
		t.Errorf("IsOrigin")
	}

	rcv, err := doc29.ReadReceptors(wb)
	if err != nil {
		t.Fatal(err)
	}
	if len(rcv) != 2 || rcv[1].ID != "R02" || rcv[1].P[0] != -6500 || rcv[1].HeightM != 1.2 {
		t.Errorf("unexpected receptors %+v", rcv)
	}

	met, err := doc29.ReadMeteorology(wb)
	if err != nil {
		t.Fatal(err)
	}
	if len(met) != 2 || met[0].PressureMmHg != 765 || met[0].HumidityPct != 70 {
		t.Errorf("unexpected meteorology %+v", met)
	}
}

func TestReadResults(t *testing.T) {
	wb := doc29test.Workbook()

	sel, err := doc29.ReadSELResults(wb)
	if err != nil {
		t.Fatal(err)
	}
	if len(sel) != 4 || sel[1] != (doc29.SELResult{CaseID: "JETFAC", ReceptorID: "R02", SEL: 90.2}) {
		t.Errorf("unexpected SEL results %+v", sel)
	}

	segs, err := doc29.ReadSegments(wb)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 7 {
		t.Fatalf("expected 7 segments, got %d", len(segs))
	}
	if s := segs[1]; s.Start != [3]float64{-10000, 0, 500} || s.End != [3]float64{0, 0, 50} || s.LengthFt != 10000 {
		t.Errorf("unexpected segment %+v", s)
	}

	grid, err := doc29.ReadGridResults(wb)
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 3 || grid[2].CaseID != "JETFDC" || grid[2].SEL != 88 {
		t.Errorf("unexpected grid results %+v", grid)
	}
}

func TestSchemaErrors(t *testing.T) {
	t.Run("MissingSheet", func(t *testing.T) {
		wb := doc29test.Workbook()
		delete(wb, doc29.SheetRunway)
		_, err := doc29.ReadRunways(wb)
		if !errors.Is(err, workbook.ErrMissingSheet) {
			t.Errorf("expected ErrMissingSheet, got %v", err)
		}
	})

	t.Run("MissingColumn", func(t *testing.T) {
		wb := doc29test.Workbook()
		s := wb[doc29.SheetReceptors]
		s.Header[3] = "Height (ft)"
		_, err := doc29.ReadReceptors(wb)
		var se *workbook.SchemaError
		if !errors.As(err, &se) || !errors.Is(err, workbook.ErrMissingColumn) {
			t.Fatalf("expected a missing column SchemaError, got %v", err)
		}
		if se.Sheet != doc29.SheetReceptors || se.Column != doc29.ColHeight {
			t.Errorf("unexpected SchemaError %+v", se)
		}
	})

	t.Run("BadCell", func(t *testing.T) {
		wb := doc29test.Workbook()
		wb[doc29.SheetSegmentResults].Rows[4][9] = "n/a"
		_, err := doc29.ReadSegments(wb)
		var ce *workbook.CellError
		if !errors.As(err, &ce) {
			t.Fatalf("expected a CellError, got %v", err)
		}
		if ce.Column != doc29.ColSegLength || ce.Row != 6 {
			t.Errorf("unexpected CellError %+v", ce)
		}
		if !workbook.IsSchemaError(err) {
			t.Errorf("IsSchemaError should hold for %v", err)
		}
	})

	t.Run("NonFiniteCell", func(t *testing.T) {
		for i, v := range []string{"NaN", "Inf", "+Inf", "-inf"} {
			wb := doc29test.Workbook()
			wb[doc29.SheetDefaultWeights].Rows[i%2][2] = v
			w, err := doc29.ReadWeights(wb)
			var ce *workbook.CellError
			if !errors.As(err, &ce) || !errors.Is(err, workbook.ErrBadCell) {
				t.Fatalf("%q: expected a CellError, got %v, %v", v, w, err)
			}
			if ce.Column != doc29.ColWeight || ce.Row != i%2+2 || ce.Value != v {
				t.Errorf("%q: unexpected CellError %+v", v, ce)
			}
		}
	})

	t.Run("ProfilesNeedConversionColumns", func(t *testing.T) {
		wb := doc29test.Workbook()
		wb[doc29.SheetProfiles].Header[7] = "True Airspeed (kts)"
		if _, err := doc29.ReadProfileKeys(wb); !errors.Is(err, workbook.ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})
}
