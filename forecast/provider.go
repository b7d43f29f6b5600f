// Package forecast supplies predicted and recorded monthly visit counts.
package forecast

import (
	"clinic-staffing/models"
	"context"
)

// Provider is the source of patient counts for the planner.
type Provider interface {
	// Forecast returns the predicted patient count for one month.
	Forecast(ctx context.Context, t models.PractitionerType, period models.Period) (int, error)
	// HistoricalMonthlyTotals returns the recorded visits of a year, ordered by month.
	HistoricalMonthlyTotals(ctx context.Context, t models.PractitionerType, year int) ([]models.MonthlyVisits, error)
}
