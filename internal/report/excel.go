package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Transacciones"

// WriteXLSX renders the document as a spreadsheet: title, period,
// blank separator, header row, then one row per transaction.
func WriteXLSX(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	set := func(row int, values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(exportSheet, cell, &values)
	}

	if err := set(1, []interface{}{doc.Title}); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	if err := set(2, []interface{}{doc.Period}); err != nil {
		return fmt.Errorf("write period: %w", err)
	}
	if err := set(4, []interface{}{"Fecha", "Tipo", "Descripción", "Monto"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range doc.Rows {
		values := []interface{}{row.Date, row.Type, row.Description, row.Amount}
		if err := set(5+i, values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
