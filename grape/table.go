// grape/table.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package grape defines the input tables of the GRAPE simulation engine
// and writes them as CSV files.
package grape

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"

	"github.com/grape-tools/doc29/util"
)

// Directories of the output folder that tables are written to.
const (
	InputTablesDir = "Input Tables"
	ANPDir         = "ANP"
)

// Record is implemented by the row types of the input tables.
type Record interface {
	Record() []string
}

// Table is a fully rendered table: a fixed header followed by rows of
// formatted cells.
type Table struct {
	Dir    string
	Name   string
	Header []string
	Rows   [][]string
}

// NewTable renders the given records into a table.
func NewTable[R Record](dir, name string, header []string, records []R) *Table {
	return &Table{
		Dir:    dir,
		Name:   name,
		Header: header,
		Rows:   util.MapSlice(records, func(r R) []string { return r.Record() }),
	}
}

// Path returns the slash-separated path of the table's file relative to
// the output folder.
func (t *Table) Path() string {
	return path.Join(t.Dir, t.Name+".csv")
}

func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for i, r := range t.Rows {
		if len(r) != len(t.Header) {
			return fmt.Errorf("%s: row %d has %d cells, header has %d", t.Name, i, len(r), len(t.Header))
		}
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// Bytes returns the table's CSV encoding.
func (t *Table) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Column returns the values of the named column, or nil if the table has
// no such column.
func (t *Table) Column(name string) []string {
	for i, h := range t.Header {
		if h == name {
			return util.MapSlice(t.Rows, func(r []string) string { return r[i] })
		}
	}
	return nil
}
