// Copyright (c) 2024 Neomantra Corp

package dbz

import "time"

// Date is a calendar date with no time-of-day or timezone component,
// as packed into a DBZ metadata YYYYMMDD field.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DecodeDate unpacks a YYYYMMDD-encoded uint32 into a Date, validating
// that the month is in [1,12] and that the day is a real day of that
// year/month (rejecting e.g. June 31st).
func DecodeDate(raw uint32) (Date, error) {
	year := raw / 10000
	remaining := raw % 10000
	rawMonth := remaining / 100
	day := int(remaining % 100)

	if rawMonth < 1 || rawMonth > 12 {
		return Date{}, &ErrInvalidDate{Raw: raw, Reason: "month"}
	}
	month := time.Month(rawMonth)

	t := time.Date(int(year), month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != int(year) || t.Month() != month || t.Day() != day {
		return Date{}, &ErrInvalidDate{Raw: raw, Reason: "day"}
	}
	return Date{Year: int(year), Month: month, Day: day}, nil
}

// NewDate constructs a Date from its calendar components without
// validation; callers constructing dates for encoding are expected to
// pass real calendar values.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// EncodeYMD packs a Date back into its YYYYMMDD uint32 representation.
func (d Date) EncodeYMD() uint32 {
	return uint32(d.Year)*10000 + uint32(d.Month)*100 + uint32(d.Day)
}

// Time returns the Date as a UTC midnight time.Time.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DateFromTime truncates a time.Time to a Date in its own location.
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Compare returns -1, 0, or 1 as d is before, equal to, or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
