package ingest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

// Normalize converts one validated row into a canonical transaction.
// Coercion can still fail here (the amount re-check is deliberate even
// though validation already passed); such a failure aborts the whole
// import rather than skipping the row.
func Normalize(row RawRow) (core.Transaction, error) {
	desc := row[ColDescription].Value

	amount, err := coerceAmount(row[ColAmount])
	if err != nil {
		return core.Transaction{}, &NormalizeError{Description: desc, Err: err}
	}

	date, err := coerceDate(row[ColDate])
	if err != nil {
		return core.Transaction{}, &NormalizeError{Description: desc, Err: err}
	}

	tx := core.Transaction{
		ID:          NewID(),
		Type:        core.ParseType(row[ColType].Value),
		Amount:      amount,
		Description: desc,
		Date:        date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, &NormalizeError{Description: desc, Err: err}
	}
	return tx, nil
}

// NormalizeAll normalizes every row before the caller persists any of
// them, keeping the import all-or-nothing.
func NormalizeAll(rows []RawRow) ([]core.Transaction, error) {
	txs := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := Normalize(row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// NewID returns an identifier unique within the process: a UUIDv7,
// which embeds the current time plus a random component. Collisions do
// not occur for imports of ordinary spreadsheet sizes.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

func coerceAmount(c Cell) (decimal.Decimal, error) {
	if c.Numeric {
		d, err := decimal.NewFromString(c.Value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", core.ErrInvalidAmount, c.Value)
		}
		return d, nil
	}
	d, err := core.ParseAmount(c.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", core.ErrInvalidAmount, c.Value)
	}
	return d, nil
}

func coerceDate(c Cell) (core.Date, error) {
	if serial, ok := c.Float(); ok {
		return core.FromSerial(serial)
	}
	return core.ParseDMY(c.Value)
}
