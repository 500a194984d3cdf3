// report/report.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package report holds tabular validation results and writes them as
// text, JSON, or msgpack, optionally zstd-compressed.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"
	"path"
	"strings"
	"text/tabwriter"

	"github.com/grape-tools/doc29/grape"
	"github.com/grape-tools/doc29/util"

	"github.com/iancoleman/orderedmap"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrRowWidth      = errors.New("row width doesn't match header")
	ErrUnknownColumn = errors.New("unknown column")
)

// Table is a named section of a report. Cells are strings, ints, or
// float64s; NaN marks a missing value.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

func NewTable(name string, header ...string) *Table {
	return &Table{Name: name, Header: header}
}

func (t *Table) AddRow(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) Len() int { return len(t.Rows) }

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Float returns the given cell as a float64; missing and non-numeric
// cells are NaN.
func (t *Table) Float(row int, col string) (float64, error) {
	c := t.Column(col)
	if c == -1 {
		return 0, fmt.Errorf("%s: %q: %w", t.Name, col, ErrUnknownColumn)
	}
	switch v := t.Rows[row][c].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return gomath.NaN(), nil
	}
}

func (t *Table) String(row int, col string) (string, error) {
	c := t.Column(col)
	if c == -1 {
		return "", fmt.Errorf("%s: %q: %w", t.Name, col, ErrUnknownColumn)
	}
	return formatCell(t.Rows[row][c]), nil
}

func (t *Table) check() error {
	for i, r := range t.Rows {
		if len(r) != len(t.Header) {
			return fmt.Errorf("%s: row %d: %d cells, %d columns: %w", t.Name, i, len(r), len(t.Header), ErrRowWidth)
		}
	}
	return nil
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return grape.FormatFloat(c)
	case int:
		return grape.FormatInt(c)
	default:
		return fmt.Sprint(c)
	}
}

///////////////////////////////////////////////////////////////////////////
// Encodings

type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	return [...]string{"text", "json", "msgpack"}[f]
}

// FormatForPath chooses the encoding from the file extension. A trailing
// .zst requests compression of the underlying encoding; anything that is
// not .json or .msgpack is written as text.
func FormatForPath(p string) (Format, bool) {
	p = strings.ToLower(p)
	compressed := strings.HasSuffix(p, ".zst")
	p = strings.TrimSuffix(p, ".zst")

	switch path.Ext(p) {
	case ".json":
		return FormatJSON, compressed
	case ".msgpack":
		return FormatMsgpack, compressed
	default:
		return FormatText, compressed
	}
}

// Encode renders the tables in the given format.
func Encode(tables []*Table, f Format) ([]byte, error) {
	for _, t := range tables {
		if err := t.check(); err != nil {
			return nil, err
		}
	}

	switch f {
	case FormatJSON:
		return encodeJSON(tables)
	case FormatMsgpack:
		return encodeMsgpack(tables)
	default:
		return encodeText(tables)
	}
}

// encodeText writes each table under its name with aligned columns.
func encodeText(tables []*Table) ([]byte, error) {
	var buf bytes.Buffer
	for i, t := range tables {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[%s]\n", t.Name)

		var tb bytes.Buffer
		tw := tabwriter.NewWriter(&tb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
		for _, r := range t.Rows {
			fmt.Fprintln(tw, strings.Join(util.MapSlice(r, formatCell), "\t"))
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
		// Missing trailing values leave padding behind.
		for line := range strings.Lines(tb.String()) {
			buf.WriteString(strings.TrimRight(line, " \n"))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

// jsonCell maps NaN to null, which JSON can represent.
func jsonCell(v any) any {
	if f, ok := v.(float64); ok && !(gomath.IsNaN(f) || gomath.IsInf(f, 0)) {
		return f
	} else if ok {
		return nil
	}
	return v
}

// encodeJSON writes an object keyed by table name, in report order, whose
// values are arrays of row objects with keys in column order.
func encodeJSON(tables []*Table) ([]byte, error) {
	doc := orderedmap.New()
	doc.SetEscapeHTML(false)
	for _, t := range tables {
		rows := make([]*orderedmap.OrderedMap, 0, len(t.Rows))
		for _, r := range t.Rows {
			row := orderedmap.New()
			row.SetEscapeHTML(false)
			for i, h := range t.Header {
				row.Set(h, jsonCell(r[i]))
			}
			rows = append(rows, row)
		}
		doc.Set(t.Name, rows)
	}
	return json.MarshalIndent(doc, "", "  ")
}

type msgpackTable struct {
	Name   string   `msgpack:"name"`
	Header []string `msgpack:"header"`
	Rows   [][]any  `msgpack:"rows"`
}

func encodeMsgpack(tables []*Table) ([]byte, error) {
	mt := util.MapSlice(tables, func(t *Table) msgpackTable {
		return msgpackTable{Name: t.Name, Header: t.Header, Rows: t.Rows}
	})
	return msgpack.Marshal(mt)
}

// DecodeMsgpack reads tables written with FormatMsgpack.
func DecodeMsgpack(b []byte) ([]*Table, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.UseLooseInterfaceDecoding(true)

	var mt []msgpackTable
	if err := dec.Decode(&mt); err != nil {
		return nil, err
	}
	return util.MapSlice(mt, func(t msgpackTable) *Table {
		for _, r := range t.Rows {
			for i, c := range r {
				switch v := c.(type) {
				case int64:
					r[i] = int(v)
				case uint64:
					r[i] = int(v)
				}
			}
		}
		return &Table{Name: t.Name, Header: t.Header, Rows: t.Rows}
	}), nil
}

///////////////////////////////////////////////////////////////////////////

// Write encodes the tables in the format chosen by name's extension and
// stores the result under name.
func Write(sb util.StorageBackend, name string, tables []*Table) error {
	f, compressed := FormatForPath(name)
	b, err := Encode(tables, f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if compressed {
		if b, err = util.CompressZstd(b); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if _, err := sb.Store(name, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
