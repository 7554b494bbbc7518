// Package ingest implements the spreadsheet import pipeline:
// parse the uploaded workbook into raw rows, validate them fail-fast,
// then normalize each row into a canonical core.Transaction.
package ingest

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"finanzas/internal/core"
)

// Required header columns, case-sensitive as written by the exporting
// spreadsheet.
const (
	ColType        = "tipo"
	ColAmount      = "monto"
	ColDescription = "descripcion"
	ColDate        = "fecha"
)

type (
	// Cell is one raw spreadsheet cell. Numeric is set when the raw
	// value parses as a number, which is how date serials and numeric
	// amounts are told apart from text.
	Cell struct {
		Value   string
		Numeric bool
	}

	// RawRow maps a header column name to its cell. Rows only live for
	// the duration of one import: created here, consumed by
	// Validate/Normalize, then discarded.
	RawRow map[string]Cell
)

// Float returns the cell value as a number. The second return is false
// for non-numeric cells.
func (c Cell) Float() (float64, bool) {
	if !c.Numeric {
		return 0, false
	}
	f, err := strconv.ParseFloat(c.Value, 64)
	return f, err == nil
}

func newCell(raw string) Cell {
	raw = strings.TrimSpace(raw)
	_, err := strconv.ParseFloat(raw, 64)
	return Cell{Value: raw, Numeric: raw != "" && err == nil}
}

// ParseWorkbook decodes an uploaded xlsx file into raw rows. The first
// sheet is read; its first row is the header. Descriptions are cleaned
// to printable ASCII on the way in. A file that cannot be decoded as a
// spreadsheet fails with *ParseError.
func ParseWorkbook(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(RawRow, len(header))
		empty := true
		for i, name := range header {
			if name == "" {
				continue
			}
			var raw string
			if i < len(cells) {
				raw = cells[i]
			}
			if name == ColDescription {
				raw = core.CleanText(raw)
			}
			c := newCell(raw)
			if c.Value != "" {
				empty = false
			}
			row[name] = c
		}
		if empty {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
