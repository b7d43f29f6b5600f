// Package planner turns a forecast or a manually entered patient count into a
// staffing report.
package planner

import (
	customerrors "clinic-staffing/errors"
	"clinic-staffing/forecast"
	"clinic-staffing/metrics"
	"clinic-staffing/models"
	"clinic-staffing/staffing"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Planner combines the forecast provider with the staffing calculation.
type Planner struct {
	provider       forecast.Provider
	log            *zap.Logger
	comparisonYear int
}

// New returns a Planner. Forecasts are compared against the visits recorded in
// comparisonYear.
func New(provider forecast.Provider, log *zap.Logger, comparisonYear int) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		provider:       provider,
		log:            log,
		comparisonYear: comparisonYear,
	}
}

// Plan builds the report for a selection: forecast staffing, the comparison
// with recorded visits and, when sel.ManualPatients is set, the manual entry.
//
// A provider failure on the forecast is returned as an error wrapping
// ErrForecastUnavailable. A failed comparison does not fail the plan; it is
// recorded in Report.ComparisonError.
func (p *Planner) Plan(ctx context.Context, sel models.Selection) (*models.Report, error) {
	start := time.Now()
	defer func() {
		metrics.PlanDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	profile, err := staffing.Profile(sel.Type)
	if err != nil {
		return nil, err
	}
	if !sel.Period.Valid() {
		return nil, fmt.Errorf("%w: %s", customerrors.ErrInvalidPeriod, sel.Period)
	}

	patients, err := p.provider.Forecast(ctx, sel.Type, sel.Period)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("forecast").Inc()
		p.log.Warn("forecast unavailable",
			zap.String("practitioner", string(sel.Type)),
			zap.Stringer("period", sel.Period),
			zap.Error(err),
		)
		if !errors.Is(err, customerrors.ErrForecastUnavailable) && !errors.Is(err, customerrors.ErrInvalidPeriod) {
			err = fmt.Errorf("%w: %w", customerrors.ErrForecastUnavailable, err)
		}
		return nil, err
	}
	metrics.ForecastPatients.WithLabelValues(string(sel.Type)).Set(float64(patients))

	result, err := p.compute(profile, metrics.PathForecast, patients)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		PractitionerType: sel.Type,
		Period:           sel.Period,
		ForecastPatients: patients,
		Forecast:         result,
	}

	comparison, err := p.Compare(ctx, sel.Type, sel.Period.Month, patients)
	if err != nil {
		p.log.Warn("comparison skipped",
			zap.String("practitioner", string(sel.Type)),
			zap.Int("year", p.comparisonYear),
			zap.Error(err),
		)
		report.ComparisonError = err.Error()
	} else {
		report.Comparison = comparison
	}

	if sel.ManualPatients != nil {
		manual, err := p.compute(profile, metrics.PathManual, *sel.ManualPatients)
		if err != nil {
			return nil, err
		}
		report.Manual = &models.ManualEntry{Patients: *sel.ManualPatients, Staffing: manual}
	}

	p.log.Info("staffing planned",
		zap.String("practitioner", string(sel.Type)),
		zap.Stringer("period", sel.Period),
		zap.Int("forecast_patients", patients),
		zap.Int("required_doctors", result.RequiredDoctors),
	)
	return report, nil
}

// Manual computes staffing for an operator-entered patient count. It does not
// use the forecast provider, so it keeps working when forecasts are missing.
func (p *Planner) Manual(t models.PractitionerType, patients int) (models.StaffingResult, error) {
	profile, err := staffing.Profile(t)
	if err != nil {
		return models.StaffingResult{}, err
	}
	return p.compute(profile, metrics.PathManual, patients)
}

// Compare looks up the visits recorded for month in the comparison year. A
// month missing from the records is an ErrInvalidInput.
func (p *Planner) Compare(ctx context.Context, t models.PractitionerType, month time.Month, forecastPatients int) (*models.Comparison, error) {
	history, err := p.provider.HistoricalMonthlyTotals(ctx, t, p.comparisonYear)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("history").Inc()
		if !errors.Is(err, customerrors.ErrHistoryUnavailable) {
			err = fmt.Errorf("%w: %w", customerrors.ErrHistoryUnavailable, err)
		}
		return nil, err
	}

	for _, v := range history {
		if v.Period.Month == month {
			return &models.Comparison{
				Year:           p.comparisonYear,
				ActualPatients: v.Count,
				Difference:     forecastPatients - v.Count,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s visits recorded for %s %d",
		customerrors.ErrInvalidInput, t.Label(), models.MonthName(month), p.comparisonYear)
}

func (p *Planner) compute(profile models.PractitionerProfile, path string, patients int) (models.StaffingResult, error) {
	practitioner := string(profile.Type)

	result, err := staffing.Compute(patients, profile)
	if err != nil {
		switch {
		case errors.Is(err, customerrors.ErrInvalidConfiguration):
			metrics.RejectedTotal.WithLabelValues(practitioner, "invalid_configuration").Inc()
			p.log.Error("staffing profile is misconfigured",
				zap.String("practitioner", practitioner),
				zap.Error(err),
			)
		default:
			metrics.RejectedTotal.WithLabelValues(practitioner, "invalid_input").Inc()
		}
		return models.StaffingResult{}, err
	}

	metrics.CalculationsTotal.WithLabelValues(practitioner, path).Inc()
	metrics.RequiredDoctors.WithLabelValues(practitioner, path).Set(float64(result.RequiredDoctors))
	return result, nil
}
