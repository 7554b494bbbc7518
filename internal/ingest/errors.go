package ingest

import (
	"errors"
	"fmt"
)

// ErrEmptyFile reports an import file with a header but no data rows,
// or no usable rows at all. An empty import is a validation failure,
// never a silent success.
var ErrEmptyFile = errors.New("import file has no data rows")

// ParseError wraps a failure to decode the uploaded file as a
// spreadsheet. It is terminal: the import is abandoned, not retried.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read spreadsheet: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingColumnError reports a header row lacking a required column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// InvalidTypeError reports a row whose tipo is neither ingreso nor
// gasto. Row indices are 1-based, matching what the user sees in the
// spreadsheet body.
type InvalidTypeError struct {
	Row   int
	Value string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("row %d: invalid type %q (must be 'ingreso' or 'gasto')", e.Row, e.Value)
}

// InvalidAmountError reports a row whose monto is not numeric.
type InvalidAmountError struct {
	Row   int
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("row %d: invalid amount %q", e.Row, e.Value)
}

// EmptyDescriptionError reports a row with a blank descripcion.
type EmptyDescriptionError struct {
	Row int
}

func (e *EmptyDescriptionError) Error() string {
	return fmt.Sprintf("row %d: empty description", e.Row)
}

// InvalidDateError reports a fecha that is neither a spreadsheet date
// serial nor a valid D/M/YYYY string.
type InvalidDateError struct {
	Row   int
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("row %d: invalid date %q (use D/M/YYYY or a spreadsheet date)", e.Row, e.Value)
}

// NormalizeError reports a coercion failure after validation passed.
// The row is identified best-effort by its description; the whole
// import is abandoned.
type NormalizeError struct {
	Description string
	Err         error
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("row %q: %v", e.Description, e.Err)
}

func (e *NormalizeError) Unwrap() error { return e.Err }
