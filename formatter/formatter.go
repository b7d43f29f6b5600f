package formatter

import (
	"clinic-staffing/models"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ReportData holds prepared report data used by all formatters
type ReportData struct {
	PractitionerType string             `json:"practitioner_type"`
	Label            string             `json:"label"`
	Period           string             `json:"period"`
	MonthName        string             `json:"month_name"`
	Forecast         *StaffingData      `json:"forecast,omitempty"`
	ForecastError    string             `json:"forecast_error,omitempty"`
	Comparison       *models.Comparison `json:"comparison,omitempty"`
	ComparisonError  string             `json:"comparison_error,omitempty"`
	Manual           *StaffingData      `json:"manual,omitempty"`
}

// StaffingData is one staffing calculation with its input count
type StaffingData struct {
	Patients           int     `json:"patients"`
	RequiredDoctors    int     `json:"required_doctors"`
	OptimalWeeklyHours float64 `json:"optimal_weekly_hours"`
	RoundedWeeklyHours int     `json:"optimal_weekly_hours_rounded"`
}

// NewStaffingData pairs a result with the patient count it was computed from.
func NewStaffingData(patients int, result models.StaffingResult) *StaffingData {
	return &StaffingData{
		Patients:           patients,
		RequiredDoctors:    result.RequiredDoctors,
		OptimalWeeklyHours: result.OptimalWeeklyHours,
		RoundedWeeklyHours: result.RoundedWeeklyHours(),
	}
}

// PrepareReportData extracts and organizes report data for formatting
func PrepareReportData(report *models.Report) *ReportData {
	data := &ReportData{
		PractitionerType: string(report.PractitionerType),
		Label:            report.PractitionerType.Label(),
		Period:           report.Period.String(),
		MonthName:        models.MonthName(report.Period.Month),
		ForecastError:    report.ForecastError,
		Comparison:       report.Comparison,
		ComparisonError:  report.ComparisonError,
	}
	if report.ForecastError == "" {
		data.Forecast = NewStaffingData(report.ForecastPatients, report.Forecast)
	}
	if report.Manual != nil {
		data.Manual = NewStaffingData(report.Manual.Patients, report.Manual.Staffing)
	}
	return data
}

// FormatText returns the text representation of the report
func FormatText(report *models.Report) string {
	data := PrepareReportData(report)
	var sb strings.Builder

	if data.Forecast != nil {
		sb.WriteString(fmt.Sprintf("Prediksi Pasien (%s) untuk %s %d: %d pasien\n",
			data.Label, data.MonthName, report.Period.Year, data.Forecast.Patients))

		if data.Comparison != nil {
			sb.WriteString(fmt.Sprintf("Jumlah Pasien %d untuk %s: %d pasien\n",
				data.Comparison.Year, data.MonthName, data.Comparison.ActualPatients))
			sb.WriteString(fmt.Sprintf("Perbandingan Prediksi dan Realitas: %d pasien\n", data.Comparison.Difference))
		} else if data.ComparisonError != "" {
			sb.WriteString(fmt.Sprintf("  ⚠️  Perbandingan tidak tersedia: %s\n", data.ComparisonError))
		}

		sb.WriteString(fmt.Sprintf("Kebutuhan SDM (%s): %d dokter\n", data.Label, data.Forecast.RequiredDoctors))
		sb.WriteString(fmt.Sprintf("Waktu Optimal per Minggu: %d jam\n", data.Forecast.RoundedWeeklyHours))
	} else {
		sb.WriteString(fmt.Sprintf("  ⚠️  Prediksi (%s) untuk %s %d tidak tersedia: %s\n",
			data.Label, data.MonthName, report.Period.Year, data.ForecastError))
	}

	if data.Manual != nil {
		sb.WriteString(fmt.Sprintf("Kebutuhan SDM Manual (%s, %d pasien): %d dokter\n",
			data.Label, data.Manual.Patients, data.Manual.RequiredDoctors))
		sb.WriteString(fmt.Sprintf("Waktu Optimal per Minggu (Manual): %d jam\n", data.Manual.RoundedWeeklyHours))
	}

	return sb.String()
}

// FormatJSON returns the JSON representation of the report
func FormatJSON(report *models.Report) string {
	data := PrepareReportData(report)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the report, one row per
// calculation path
func FormatCSV(report *models.Report) string {
	data := PrepareReportData(report)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{
		"Practitioner", "Period", "Path", "Patients", "Required Doctors",
		"Optimal Weekly Hours", "Actual Patients", "Difference", "Note",
	})

	if data.Forecast != nil {
		row := staffingRow(data, "forecast", data.Forecast)
		if data.Comparison != nil {
			row = append(row,
				fmt.Sprintf("%d", data.Comparison.ActualPatients),
				fmt.Sprintf("%d", data.Comparison.Difference),
				"",
			)
		} else {
			row = append(row, "", "", data.ComparisonError)
		}
		writer.Write(row)
	} else {
		writer.Write([]string{
			data.PractitionerType, data.Period, "forecast", "", "", "", "", "", data.ForecastError,
		})
	}

	if data.Manual != nil {
		writer.Write(append(staffingRow(data, "manual", data.Manual), "", "", ""))
	}

	writer.Flush()
	return sb.String()
}

func staffingRow(data *ReportData, path string, s *StaffingData) []string {
	return []string{
		data.PractitionerType,
		data.Period,
		path,
		fmt.Sprintf("%d", s.Patients),
		fmt.Sprintf("%d", s.RequiredDoctors),
		fmt.Sprintf("%d", s.RoundedWeeklyHours),
	}
}
