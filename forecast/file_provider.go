package forecast

import (
	customerrors "clinic-staffing/errors"
	"clinic-staffing/models"
	"clinic-staffing/parser"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileProvider reads forecasts and visit history from CSV exports in Dir:
//
//	forecast_dokter_<type>.csv   model output (bulan_tahun, prediksi)
//	data_dokter_<type><year>.csv recorded visits (bulan_tahun, jumlah_kunjungan_per_bulan)
//
// Files are read on every call so a refreshed export is picked up without a
// restart.
type FileProvider struct {
	Dir string
}

// NewFileProvider returns a provider reading from dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

// ForecastFile returns the path of the forecast export for t.
func (p *FileProvider) ForecastFile(t models.PractitionerType) string {
	return filepath.Join(p.Dir, fmt.Sprintf("forecast_dokter_%s.csv", t))
}

// HistoryFile returns the path of the visit export for t and year.
func (p *FileProvider) HistoryFile(t models.PractitionerType, year int) string {
	return filepath.Join(p.Dir, fmt.Sprintf("data_dokter_%s%d.csv", t, year))
}

// Forecast implements Provider.
func (p *FileProvider) Forecast(ctx context.Context, t models.PractitionerType, period models.Period) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", customerrors.ErrForecastUnavailable, err)
	}
	if !period.Valid() {
		return 0, fmt.Errorf("%w: %s", customerrors.ErrInvalidPeriod, period)
	}

	points, err := readFile(p.ForecastFile(t), parser.ParseForecast)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", customerrors.ErrForecastUnavailable, t.Label(), err)
	}
	for _, pt := range points {
		if pt.Period == period {
			return pt.Count, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s forecast for %s", customerrors.ErrForecastUnavailable, t.Label(), period)
}

// HistoricalMonthlyTotals implements Provider.
func (p *FileProvider) HistoricalMonthlyTotals(ctx context.Context, t models.PractitionerType, year int) ([]models.MonthlyVisits, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", customerrors.ErrHistoryUnavailable, err)
	}

	visits, err := readFile(p.HistoryFile(t, year), parser.ParseMonthlyVisits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %d: %w", customerrors.ErrHistoryUnavailable, t.Label(), year, err)
	}

	// An export may spill into neighbouring years; keep the requested one.
	out := visits[:0]
	for _, v := range visits {
		if v.Period.Year == year {
			out = append(out, v)
		}
	}
	return out, nil
}

func readFile(path string, parse func(io.Reader) ([]models.MonthlyVisits, error)) ([]models.MonthlyVisits, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parse(file)
}
