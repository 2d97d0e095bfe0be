package domain

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for calendar dates (ISO-8601, day granularity).
const DateFormat = "2006-01-02"

// Date represents a calendar date with no time component.
// The zero value means "no date" (e.g. an open-ended transaction).
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns a normalized Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a Date from its ISO YYYY-MM-DD representation.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", s, DateFormat, err)
	}
	return DateOf(t), nil
}

// MustParseDate is like ParseDate but panics on error. Test helper.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// YearMonth projects the date onto its calendar month, discarding the day.
func (d Date) YearMonth() YearMonth { return YearMonth{Year: d.Year, Month: d.Month} }

// String formats the date as YYYY-MM-DD. Lexicographic order of the
// resulting strings equals chronological order.
func (d Date) String() string { return d.time().Format(DateFormat) }

// MarshalJSON encodes the date as a "YYYY-MM-DD" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" JSON string. An empty string
// decodes to the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	s = s[1 : len(s)-1]
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// YearMonth identifies a calendar month. Comparisons are year first,
// then month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Before reports whether ym is strictly before x.
func (ym YearMonth) Before(x YearMonth) bool {
	if ym.Year != x.Year {
		return ym.Year < x.Year
	}
	return ym.Month < x.Month
}

// After reports whether ym is strictly after x.
func (ym YearMonth) After(x YearMonth) bool { return x.Before(ym) }
