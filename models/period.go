package models

import (
	customerrors "clinic-staffing/errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a calendar month.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// String formats the period as YYYY-MM, the layout of the clinic's CSV exports.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Valid reports whether the month is within January..December.
func (p Period) Valid() bool {
	return p.Month >= time.January && p.Month <= time.December
}

// MonthNames are the Indonesian month names used by the front end.
var MonthNames = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return MonthNames[m-1]
}

// ParseMonth accepts a month number (1-12), an Indonesian month name or an
// English month name.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: %d", customerrors.ErrInvalidPeriod, n)
		}
		return time.Month(n), nil
	}
	for i, name := range MonthNames {
		if strings.EqualFold(name, s) || strings.EqualFold(time.Month(i+1).String(), s) {
			return time.Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", customerrors.ErrInvalidPeriod, s)
}

// ParsePeriod parses a YYYY-MM value.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, fmt.Errorf("%w: %v", customerrors.ErrInvalidPeriod, err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}
