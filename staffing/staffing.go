// Package staffing converts a monthly patient count into a doctor headcount
// using the workload (BKT) and supporting task standard (STP) method.
package staffing

import (
	customerrors "clinic-staffing/errors"
	"clinic-staffing/models"
	"fmt"
	"math"
)

// weeksPerMonth is the number of working weeks the monthly time is spread over.
const weeksPerMonth = 4

// Compute is ComputeStaffing bound to the clinic's standard working time.
// Both the forecast and the manual entry paths go through it.
func Compute(patientCount int, profile models.PractitionerProfile) (models.StaffingResult, error) {
	return ComputeStaffing(patientCount, profile, models.StandardWorkforce)
}

// ComputeStaffing calculates the doctors required to serve patientCount
// patients in a month and the optimal weekly hours per doctor.
//
//	BKT = patients * minutes per patient
//	FTP = supporting hours / working minutes * 100
//	STP = 1 / (1 - FTP/100)
//	doctors = ceil(BKT / (working minutes * STP))
//	weekly hours = working minutes * STP / 4 / 60
//
// Configuration is validated before the patient count, so a broken profile is
// reported as ErrInvalidConfiguration even when the input is also wrong.
func ComputeStaffing(patientCount int, profile models.PractitionerProfile, workforce models.WorkforceConstant) (models.StaffingResult, error) {
	stp, err := supportingTaskMultiplier(profile, workforce)
	if err != nil {
		return models.StaffingResult{}, err
	}
	if patientCount < 0 {
		return models.StaffingResult{}, fmt.Errorf("%w: patient count %d is negative", customerrors.ErrInvalidInput, patientCount)
	}

	totalWorkload := float64(patientCount) * profile.MinutesPerPatient
	available := workforce.TotalWorkingMinutesPerMonth * stp

	return models.StaffingResult{
		RequiredDoctors:    int(math.Ceil(totalWorkload / available)),
		OptimalWeeklyHours: weeklyHours(available),
	}, nil
}

// OptimalWeeklyHours returns the weekly hours for a profile. It does not depend
// on the patient count.
func OptimalWeeklyHours(profile models.PractitionerProfile, workforce models.WorkforceConstant) (float64, error) {
	stp, err := supportingTaskMultiplier(profile, workforce)
	if err != nil {
		return 0, err
	}
	return weeklyHours(workforce.TotalWorkingMinutesPerMonth * stp), nil
}

func weeklyHours(availableMinutes float64) float64 {
	return availableMinutes / weeksPerMonth / 60
}

// supportingTaskMultiplier validates the profile and workforce constant and
// returns the STP multiplier.
func supportingTaskMultiplier(profile models.PractitionerProfile, workforce models.WorkforceConstant) (float64, error) {
	wkt := workforce.TotalWorkingMinutesPerMonth
	if !isFinite(wkt) || wkt <= 0 {
		return 0, fmt.Errorf("%w: total working minutes per month must be positive, got %v", customerrors.ErrInvalidConfiguration, wkt)
	}
	if !isFinite(profile.MinutesPerPatient) || profile.MinutesPerPatient <= 0 {
		return 0, fmt.Errorf("%w: minutes per patient must be positive, got %v", customerrors.ErrInvalidConfiguration, profile.MinutesPerPatient)
	}
	if !isFinite(profile.SupportingTaskHoursPerMonth) || profile.SupportingTaskHoursPerMonth < 0 {
		return 0, fmt.Errorf("%w: supporting task hours must not be negative, got %v", customerrors.ErrInvalidConfiguration, profile.SupportingTaskHoursPerMonth)
	}

	ftp := (profile.SupportingTaskHoursPerMonth / wkt) * 100
	if ftp >= 100 {
		return 0, fmt.Errorf("%w: supporting tasks take %.2f%% of working time", customerrors.ErrInvalidConfiguration, ftp)
	}
	return 1 / (1 - (ftp / 100)), nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
