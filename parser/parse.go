package parser

import (
	customerrors "clinic-staffing/errors"
	"clinic-staffing/models"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Column names used by the clinic's exports.
const (
	ColumnPeriod      = "bulan_tahun"
	ColumnVisits      = "jumlah_kunjungan_per_bulan"
	ColumnForecast    = "prediksi"
	ColumnPredictMean = "predicted_mean"
)

// ParseMonthlyVisits reads a visit export and returns the visit totals per
// month, ordered by period. Several rows may share a month (one per day or per
// room); their counts are summed.
// Lines starting with '#' are comments. The first other line is the header and
// must contain the bulan_tahun and jumlah_kunjungan_per_bulan columns, in any
// position.
func ParseMonthlyVisits(r io.Reader) ([]models.MonthlyVisits, error) {
	totals := make(map[models.Period]int)

	err := readRows(r, []string{ColumnPeriod}, []string{ColumnVisits}, func(line int, record []string, period models.Period, value string) error {
		count, err := strconv.Atoi(value)
		if err != nil {
			return &customerrors.ParseError{
				Line:   line,
				Record: record,
				Err:    fmt.Errorf("%w: %v", customerrors.ErrInvalidCount, err),
			}
		}
		if count < 0 {
			return &customerrors.ParseError{
				Line:   line,
				Record: record,
				Err:    fmt.Errorf("%w: %d is negative", customerrors.ErrInvalidCount, count),
			}
		}
		totals[period] += count
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sortedVisits(totals), nil
}

// ParseForecast reads an exported model forecast. The value column is either
// prediksi or predicted_mean. Predictions are truncated toward zero to whole
// patients.
func ParseForecast(r io.Reader) ([]models.MonthlyVisits, error) {
	points := make(map[models.Period]int)

	err := readRows(r, []string{ColumnPeriod}, []string{ColumnForecast, ColumnPredictMean}, func(line int, record []string, period models.Period, value string) error {
		predicted, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(predicted) || math.IsInf(predicted, 0) {
			return &customerrors.ParseError{
				Line:   line,
				Record: record,
				Err:    fmt.Errorf("%w: %q", customerrors.ErrInvalidForecast, value),
			}
		}
		if _, exists := points[period]; exists {
			return &customerrors.ParseError{
				Line:   line,
				Record: record,
				Err:    fmt.Errorf("%w: duplicate period %s", customerrors.ErrInvalidForecast, period),
			}
		}
		points[period] = int(predicted)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sortedVisits(points), nil
}

type rowFunc func(line int, record []string, period models.Period, value string) error

// readRows locates the period and value columns in the header and hands every
// data row to fn. periodNames and valueNames list accepted header aliases.
func readRows(r io.Reader, periodNames, valueNames []string, fn rowFunc) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	periodIdx, valueIdx := -1, -1
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		// Handle comments
		if len(record) > 0 && strings.HasPrefix(strings.TrimSpace(record[0]), "#") {
			continue
		}

		if periodIdx < 0 {
			periodIdx = columnIndex(record, periodNames)
			valueIdx = columnIndex(record, valueNames)
			if periodIdx < 0 || valueIdx < 0 {
				return &customerrors.ParseError{
					Line:   lineNum,
					Record: record,
					Err:    fmt.Errorf("%w: need %s and %s", customerrors.ErrMissingColumn, strings.Join(periodNames, "|"), strings.Join(valueNames, "|")),
				}
			}
			continue
		}

		if len(record) <= max(periodIdx, valueIdx) {
			return &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    customerrors.ErrInvalidFieldCount,
			}
		}

		rawPeriod := strings.TrimSpace(record[periodIdx])
		value := strings.TrimSpace(record[valueIdx])
		if rawPeriod == "" || value == "" {
			return &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    customerrors.ErrEmptyRecord,
			}
		}

		period, err := models.ParsePeriod(rawPeriod)
		if err != nil {
			return &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", customerrors.ErrInvalidMonth, err),
			}
		}

		if err := fn(lineNum, record, period, value); err != nil {
			return err
		}
	}

	if periodIdx < 0 {
		return &customerrors.ParseError{
			Line: lineNum,
			Err:  fmt.Errorf("%w: no header row", customerrors.ErrMissingColumn),
		}
	}
	return nil
}

func columnIndex(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func sortedVisits(byPeriod map[models.Period]int) []models.MonthlyVisits {
	out := make([]models.MonthlyVisits, 0, len(byPeriod))
	for p, c := range byPeriod {
		out = append(out, models.MonthlyVisits{Period: p, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period.Year != out[j].Period.Year {
			return out[i].Period.Year < out[j].Period.Year
		}
		return out[i].Period.Month < out[j].Period.Month
	})
	return out
}
