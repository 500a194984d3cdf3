// workbook/errors.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package workbook

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSheet  = errors.New("missing sheet")
	ErrMissingColumn = errors.New("missing column")
	ErrBadCell       = errors.New("invalid cell value")
)

// SchemaError reports a sheet or column that a reader requires but the
// workbook doesn't have.
type SchemaError struct {
	Sheet  string
	Column string // empty for a missing sheet
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s: %q: %v", e.Sheet, e.Column, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// CellError reports a cell that couldn't be parsed. Row is the
// spreadsheet row number, counting the header as row 1.
type CellError struct {
	Sheet  string
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s: row %d: %q: %q: %v", e.Sheet, e.Row, e.Column, e.Value, ErrBadCell)
}

func (e *CellError) Unwrap() []error { return []error{ErrBadCell, e.Err} }
