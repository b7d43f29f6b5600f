package models

import "math"

// PractitionerProfile is the static workload configuration for one practice line.
type PractitionerProfile struct {
	Type                        PractitionerType `json:"type"`
	MinutesPerPatient           float64          `json:"minutes_per_patient"`
	SupportingTaskHoursPerMonth float64          `json:"supporting_task_hours_per_month"`
}

// WorkforceConstant is the working time available to one staff member per month.
type WorkforceConstant struct {
	TotalWorkingMinutesPerMonth float64 `json:"total_working_minutes_per_month"`
}

// StandardWorkingMinutesPerMonth is the clinic's fixed monthly working time (WKT).
const StandardWorkingMinutesPerMonth = 9590.0

// StandardWorkforce must not be modified.
var StandardWorkforce = WorkforceConstant{TotalWorkingMinutesPerMonth: StandardWorkingMinutesPerMonth}

// StaffingResult is the outcome of one staffing calculation.
type StaffingResult struct {
	RequiredDoctors    int     `json:"required_doctors"`
	OptimalWeeklyHours float64 `json:"optimal_weekly_hours"`
}

// RoundedWeeklyHours returns the optimal weekly hours rounded for display.
// Halves round to even, the same way the clinic's reports always printed them.
func (r StaffingResult) RoundedWeeklyHours() int {
	return int(math.RoundToEven(r.OptimalWeeklyHours))
}

// MonthlyVisits is the recorded visit total for a single month.
type MonthlyVisits struct {
	Period Period `json:"period"`
	Count  int    `json:"count"`
}

// Selection carries everything the operator picked for one planning request.
// ManualPatients is nil when no manual count was entered.
type Selection struct {
	Type           PractitionerType
	Period         Period
	ManualPatients *int
}

// Report is the planning outcome presented to the operator. ForecastError is
// set instead of the forecast fields when only the manual entry could be
// computed.
type Report struct {
	PractitionerType PractitionerType
	Period           Period
	ForecastPatients int
	Forecast         StaffingResult
	ForecastError    string
	Comparison       *Comparison
	ComparisonError  string
	Manual           *ManualEntry
}

// Comparison holds the forecast against the actual visits of the same month
// in the reference year.
type Comparison struct {
	Year           int `json:"year"`
	ActualPatients int `json:"actual_patients"`
	// Difference is forecast minus actual.
	Difference int `json:"difference"`
}

// ManualEntry is the staffing for an operator-entered patient count.
type ManualEntry struct {
	Patients int
	Staffing StaffingResult
}
