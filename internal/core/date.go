package core

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// excelEpochOffset is the number of days between the spreadsheet date
// epoch (1899-12-30, serial 0) and the Unix epoch.
const excelEpochOffset = 25569

var dmyPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// Date is a calendar date with no time-of-day semantics. It is always
// UTC-anchored so the rendered ISO form does not drift with the local
// timezone of the machine doing the conversion.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC calendar date.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return NewDate(y, int(m), d)
}

// ISO renders the date as YYYY-MM-DD. ISO strings compare
// lexicographically in chronological order, which the aggregator and
// the range filter rely on.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Localized renders the date as DD-MM-YYYY for reports.
func (d Date) Localized() string {
	return d.Format("02-01-2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	parsed, err := ParseISO(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseISO parses a YYYY-MM-DD string. Date portions of RFC3339
// timestamps are accepted too, since remote backends sometimes return
// full timestamps.
func ParseISO(s string) (Date, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// ParseDMY parses D/M/YYYY or DD/MM/YYYY. The parsed calendar date must
// round-trip exactly: 31/02/2024 normalizes to a March date and is
// therefore rejected, while 29/02/2024 (leap year) is accepted.
func ParseDMY(s string) (Date, error) {
	m := dmyPattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	d := NewDate(year, month, day)
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return Date{}, fmt.Errorf("%w: %q does not exist", ErrInvalidDate, s)
	}
	return d, nil
}

// FromSerial converts a spreadsheet numeric date serial (days since the
// 1899-12-30 epoch) to a Date. The conversion is UTC-anchored so the
// resulting calendar date is stable regardless of the importing
// machine's timezone.
func FromSerial(serial float64) (Date, error) {
	seconds := (serial - excelEpochOffset) * 86400
	t := time.Unix(int64(seconds), 0).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return Date{}, fmt.Errorf("%w: serial %v out of range", ErrInvalidDate, serial)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day()), nil
}
