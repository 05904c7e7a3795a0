// Package parser loads bounded windows of delimited files into typed rows.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
	"github.com/Zedyas/zen-data-explorer/internal/profile"
)

// DefaultMaxRows bounds how many rows a window holds when the caller does
// not say otherwise.
const DefaultMaxRows = 10000

// Window is a bounded, typed slice of a delimited file.
type Window struct {
	Columns []dataset.Column
	Rows    []dataset.Row
	// Truncated is set when the file had more rows than the window holds.
	Truncated bool
}

// ResultSet converts the window into the result shape the rest of the
// system consumes.
func (w *Window) ResultSet() dataset.ResultSet {
	return dataset.ResultSet{Columns: dataset.Names(w.Columns), Rows: w.Rows}
}

// Schema returns the inferred column types by name.
func (w *Window) Schema() dataset.Schema {
	return dataset.SchemaOf(w.Columns)
}

// LoadCSV reads up to maxRows data rows from a .csv or .tsv file. maxRows
// at or below zero means DefaultMaxRows.
func LoadCSV(path string, maxRows int) (*Window, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	delim := ','
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		delim = '\t'
	}
	return Load(f, delim, maxRows)
}

// Load reads a delimited stream: first record is the header, every later
// record is one row. Cell typing happens after the whole window is read so
// a column's type reflects all of its values.
func Load(r io.Reader, delim rune, maxRows int) (*Window, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	names := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "column_" + strconv.Itoa(i+1)
		}
		names[i] = h
	}

	var (
		raw       [][]string
		truncated bool
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(raw)+2, err)
		}
		if len(raw) == maxRows {
			truncated = true
			break
		}
		raw = append(raw, rec)
	}

	w := &Window{Truncated: truncated}
	for i, name := range names {
		typ := inferType(raw, i)
		w.Columns = append(w.Columns, dataset.Column{Name: name, Type: typ})
	}
	for _, rec := range raw {
		row := make(dataset.Row, len(names))
		for i, name := range names {
			var cell string
			if i < len(rec) {
				cell = rec[i]
			}
			row[name] = typedValue(cell, w.Columns[i].Type)
		}
		w.Rows = append(w.Rows, row)
	}
	return w, nil
}

// inferType picks the most specific type every non-missing value of the
// column satisfies: boolean, then integer, then float, then date, falling
// back to string. A column with no values stays string.
func inferType(raw [][]string, col int) dataset.ColumnType {
	seen := 0
	isBool, isInt, isFloat, isDate := true, true, true, true
	for _, rec := range raw {
		if col >= len(rec) {
			continue
		}
		s := strings.TrimSpace(rec[col])
		if s == "" {
			continue
		}
		seen++
		if isBool {
			_, isBool = profile.ParseBoolean(s)
		}
		if isInt {
			_, err := strconv.ParseInt(s, 10, 64)
			isInt = err == nil
		}
		if isFloat {
			_, isFloat = profile.ParseNumeric(s)
		}
		if isDate {
			_, isDate = profile.ParseDate(s)
		}
		if !isBool && !isInt && !isFloat && !isDate {
			return dataset.TypeString
		}
	}
	if seen == 0 {
		return dataset.TypeString
	}
	switch {
	case isBool:
		return dataset.TypeBoolean
	case isInt:
		return dataset.TypeInteger
	case isFloat:
		return dataset.TypeFloat
	case isDate:
		return dataset.TypeDate
	default:
		return dataset.TypeString
	}
}

// typedValue converts one raw cell to the column's native representation.
// Blank cells become nil; a value the column type cannot absorb degrades to
// nil rather than failing.
func typedValue(cell string, typ dataset.ColumnType) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	switch typ {
	case dataset.TypeBoolean:
		if b, ok := profile.ParseBoolean(s); ok {
			return b
		}
	case dataset.TypeInteger:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case dataset.TypeFloat:
		if f, ok := profile.ParseNumeric(s); ok {
			return f
		}
	case dataset.TypeDate, dataset.TypeString:
		return s
	}
	return nil
}
