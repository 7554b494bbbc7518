package ingest

import (
	"strings"

	"finanzas/internal/core"
)

var requiredColumns = []string{ColType, ColAmount, ColDescription, ColDate}

// Validate checks the whole batch before anything is persisted.
// The policy is fail-fast and all-or-nothing: the first failing row
// aborts the import, no further errors are collected, nothing is
// written.
func Validate(rows []RawRow) error {
	if len(rows) == 0 {
		return ErrEmptyFile
	}

	// Structural check against the first row's column set.
	for _, col := range requiredColumns {
		if _, ok := rows[0][col]; !ok {
			return &MissingColumnError{Column: col}
		}
	}

	for i, row := range rows {
		n := i + 1 // 1-based, as the user counts rows

		tipo := strings.ToLower(strings.TrimSpace(row[ColType].Value))
		if tipo != "ingreso" && tipo != "gasto" {
			return &InvalidTypeError{Row: n, Value: row[ColType].Value}
		}

		if !validAmount(row[ColAmount]) {
			return &InvalidAmountError{Row: n, Value: row[ColAmount].Value}
		}

		if strings.TrimSpace(row[ColDescription].Value) == "" {
			return &EmptyDescriptionError{Row: n}
		}

		if err := validDate(row[ColDate]); err != nil {
			return &InvalidDateError{Row: n, Value: row[ColDate].Value}
		}
	}
	return nil
}

// validAmount accepts a numeric cell or numeric-like text such as
// "200,50" or "$500".
func validAmount(c Cell) bool {
	if c.Numeric {
		return true
	}
	_, err := core.ParseAmount(c.Value)
	return err == nil
}

// validDate accepts a spreadsheet date serial or a D/M/YYYY string
// whose day/month/year round-trip exactly.
func validDate(c Cell) error {
	if serial, ok := c.Float(); ok {
		_, err := core.FromSerial(serial)
		return err
	}
	_, err := core.ParseDMY(c.Value)
	return err
}
