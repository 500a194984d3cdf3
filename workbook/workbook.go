// workbook/workbook.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package workbook provides read access to the named data sheets of a
// spreadsheet workbook. The shipped implementation reads a directory of
// per-sheet CSV exports, optionally zstd-compressed.
package workbook

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/grape-tools/doc29/util"

	lru "github.com/hashicorp/golang-lru/v2"
)

type Workbook interface {
	Sheet(name string) (*Sheet, error)
	Close() error
}

// Sheet is a parsed sheet: a header row and the data rows that follow it.
// Header names are trimmed of surrounding whitespace; cells are stored as
// found.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ParseSheet reads a sheet in CSV form. Rows with no non-empty cells are
// skipped.
func ParseSheet(name string, r io.Reader) (*Sheet, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && string(b) == "\ufeff" {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	s := &Sheet{Name: name}
	for _, rec := range records {
		if s.Header == nil {
			if isBlank(rec) {
				continue
			}
			s.Header = util.MapSlice(rec, strings.TrimSpace)
			continue
		}
		if !isBlank(rec) {
			s.Rows = append(s.Rows, rec)
		}
	}
	return s, nil
}

func isBlank(rec []string) bool {
	return !slices.ContainsFunc(rec, func(s string) bool { return strings.TrimSpace(s) != "" })
}

// NewSheet returns a sheet with the given header and rows; it is mostly
// useful for tests.
func NewSheet(name string, header []string, rows ...[]string) *Sheet {
	return &Sheet{Name: name, Header: header, Rows: rows}
}

func (s *Sheet) Len() int { return len(s.Rows) }

// Columns returns accessors for the named columns, failing with a
// *SchemaError if any of them are missing. If a column name appears more
// than once in the header, the first one is used.
func (s *Sheet) Columns(names ...string) (Columns, error) {
	c := Columns{sheet: s, index: make(map[string]int)}
	for _, n := range names {
		i := slices.Index(s.Header, n)
		if i == -1 {
			return Columns{}, &SchemaError{Sheet: s.Name, Column: n, Err: ErrMissingColumn}
		}
		c.index[n] = i
	}
	return c, nil
}

// Columns gives typed access to the cells of a validated set of columns.
// Rows are indexed from 0 for the first data row. Asking for a column that
// wasn't passed to Sheet.Columns is a programming error and panics.
type Columns struct {
	sheet *Sheet
	index map[string]int
}

func (c Columns) cell(row int, col string) string {
	i, ok := c.index[col]
	if !ok {
		panic(fmt.Sprintf("%s: column %q was not requested", c.sheet.Name, col))
	}
	if r := c.sheet.Rows[row]; i < len(r) {
		return r[i]
	}
	return ""
}

func (c Columns) cellError(row int, col, value string, err error) error {
	return &CellError{Sheet: c.sheet.Name, Column: col, Row: row + 2, Value: value, Err: err}
}

// String returns the cell contents, trimmed of surrounding whitespace.
func (c Columns) String(row int, col string) string {
	return strings.TrimSpace(c.cell(row, col))
}

// Raw returns the cell contents as found in the sheet.
func (c Columns) Raw(row int, col string) string {
	return c.cell(row, col)
}

func (c Columns) Float(row int, col string) (float64, error) {
	s := c.cell(row, col)
	v, err := util.Atof(s)
	if err != nil {
		return 0, c.cellError(row, col, s, err)
	}
	return v, nil
}

// OptionalFloat is like Float but an empty cell returns ok == false rather
// than an error.
func (c Columns) OptionalFloat(row int, col string) (v float64, ok bool, err error) {
	s := c.cell(row, col)
	if strings.TrimSpace(s) == "" {
		return 0, false, nil
	}
	v, err = c.Float(row, col)
	return v, err == nil, err
}

func (c Columns) Int(row int, col string) (int, error) {
	s := c.cell(row, col)
	v, err := util.Atoi(s)
	if err != nil {
		return 0, c.cellError(row, col, s, err)
	}
	return v, nil
}

///////////////////////////////////////////////////////////////////////////
// DirWorkbook

// DirWorkbook reads sheet X from X.csv or X.csv.zst in its directory.
// Parsed sheets are kept in a small LRU cache.
type DirWorkbook struct {
	dir   string
	cache *lru.Cache[string, *Sheet]
}

const sheetCacheSize = 8

func OpenDir(dir string) (*DirWorkbook, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}

	cache, err := lru.New[string, *Sheet](sheetCacheSize)
	if err != nil {
		return nil, err
	}
	return &DirWorkbook{dir: dir, cache: cache}, nil
}

func (w *DirWorkbook) Sheet(name string) (*Sheet, error) {
	if s, ok := w.cache.Get(name); ok {
		return s, nil
	}

	base := filepath.Join(w.dir, name+".csv")
	fn := util.FindResource(base, base+".zst")
	if fn == "" {
		return nil, &SchemaError{Sheet: name, Err: ErrMissingSheet}
	}

	r, err := util.OpenResource(fn)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	s, err := ParseSheet(name, r)
	if err != nil {
		return nil, err
	}
	w.cache.Add(name, s)
	return s, nil
}

func (w *DirWorkbook) Close() error {
	w.cache.Purge()
	return nil
}

///////////////////////////////////////////////////////////////////////////
// MemWorkbook

// MemWorkbook is a Workbook backed by sheets held in memory.
type MemWorkbook map[string]*Sheet

func NewMemWorkbook(sheets ...*Sheet) MemWorkbook {
	m := make(MemWorkbook)
	for _, s := range sheets {
		m[s.Name] = s
	}
	return m
}

func (m MemWorkbook) Sheet(name string) (*Sheet, error) {
	if s, ok := m[name]; ok {
		return s, nil
	}
	return nil, &SchemaError{Sheet: name, Err: ErrMissingSheet}
}

func (m MemWorkbook) Close() error { return nil }

// IsSchemaError reports whether err is caused by the workbook not having
// the expected structure or contents.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrMissingSheet) || errors.Is(err, ErrMissingColumn) || errors.Is(err, ErrBadCell)
}
