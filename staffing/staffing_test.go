package staffing_test

import (
	customerrors "clinic-staffing/errors"
	"clinic-staffing/models"
	"clinic-staffing/staffing"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProfile(t *testing.T, pt models.PractitionerType) models.PractitionerProfile {
	t.Helper()
	p, err := staffing.Profile(pt)
	require.NoError(t, err)
	return p
}

func TestComputeStaffing(t *testing.T) {
	gp := mustProfile(t, models.GeneralPractitioner)
	dentist := mustProfile(t, models.Dentist)

	tests := map[string]struct {
		patients        int
		profile         models.PractitionerProfile
		expectedDoctors int
		expectedHours   float64
		roundedHours    int
	}{
		"GP_500Patients": {
			// BKT = 7500, available = 9590 * 9590/9480 ~ 9701.28
			patients:        500,
			profile:         gp,
			expectedDoctors: 1,
			expectedHours:   40.42198488045007,
			roundedHours:    40,
		},
		"GP_ZeroPatients": {
			patients:        0,
			profile:         gp,
			expectedDoctors: 0,
			expectedHours:   40.42198488045007,
			roundedHours:    40,
		},
		"GP_JustBelowSecondDoctor": {
			// 646 * 15 = 9690 < 9701.28
			patients:        646,
			profile:         gp,
			expectedDoctors: 1,
			expectedHours:   40.42198488045007,
			roundedHours:    40,
		},
		"GP_JustAboveSecondDoctor": {
			// 647 * 15 = 9705 > 9701.28
			patients:        647,
			profile:         gp,
			expectedDoctors: 2,
			expectedHours:   40.42198488045007,
			roundedHours:    40,
		},
		"Dentist_1000Patients": {
			// BKT = 20000, available ~ 9711.52, ratio ~ 2.059
			patients:        1000,
			profile:         dentist,
			expectedDoctors: 3,
			expectedHours:   40.46466913058782,
			roundedHours:    40,
		},
		"Dentist_486Patients": {
			patients:        486,
			profile:         dentist,
			expectedDoctors: 2,
			expectedHours:   40.46466913058782,
			roundedHours:    40,
		},
		"NoSupportingTasks": {
			patients:        640,
			profile:         models.PractitionerProfile{MinutesPerPatient: 15},
			expectedDoctors: 2,
			expectedHours:   9590.0 / 4 / 60,
			roundedHours:    40,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := staffing.ComputeStaffing(tt.patients, tt.profile, models.StandardWorkforce)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedDoctors, got.RequiredDoctors)
			assert.InDelta(t, tt.expectedHours, got.OptimalWeeklyHours, 1e-9)
			assert.Equal(t, tt.roundedHours, got.RoundedWeeklyHours())
		})
	}
}

func TestComputeStaffing_Errors(t *testing.T) {
	gp := mustProfile(t, models.GeneralPractitioner)

	tests := map[string]struct {
		patients      int
		profile       models.PractitionerProfile
		workforce     models.WorkforceConstant
		expectedError error
	}{
		"NegativePatients": {
			patients:      -1,
			profile:       gp,
			workforce:     models.StandardWorkforce,
			expectedError: customerrors.ErrInvalidInput,
		},
		"SupportingTimeEqualsWorkingTime": {
			patients:      10,
			profile:       models.PractitionerProfile{MinutesPerPatient: 15, SupportingTaskHoursPerMonth: 9590},
			workforce:     models.StandardWorkforce,
			expectedError: customerrors.ErrInvalidConfiguration,
		},
		"SupportingTimeExceedsWorkingTime": {
			patients:      10,
			profile:       models.PractitionerProfile{MinutesPerPatient: 15, SupportingTaskHoursPerMonth: 12000},
			workforce:     models.StandardWorkforce,
			expectedError: customerrors.ErrInvalidConfiguration,
		},
		"NegativeSupportingTime": {
			patients:      10,
			profile:       models.PractitionerProfile{MinutesPerPatient: 15, SupportingTaskHoursPerMonth: -5},
			workforce:     models.StandardWorkforce,
			expectedError: customerrors.ErrInvalidConfiguration,
		},
		"ZeroMinutesPerPatient": {
			patients:      10,
			profile:       models.PractitionerProfile{SupportingTaskHoursPerMonth: 110},
			workforce:     models.StandardWorkforce,
			expectedError: customerrors.ErrInvalidConfiguration,
		},
		"NaNMinutesPerPatient": {
			patients:      10,
			profile:       models.PractitionerProfile{MinutesPerPatient: math.NaN(), SupportingTaskHoursPerMonth: 110},
			workforce:     models.StandardWorkforce,
			expectedError: customerrors.ErrInvalidConfiguration,
		},
		"ZeroWorkingMinutes": {
			patients:      10,
			profile:       gp,
			workforce:     models.WorkforceConstant{},
			expectedError: customerrors.ErrInvalidConfiguration,
		},
		"NegativeWorkingMinutes": {
			patients:      10,
			profile:       gp,
			workforce:     models.WorkforceConstant{TotalWorkingMinutesPerMonth: -9590},
			expectedError: customerrors.ErrInvalidConfiguration,
		},
		"ConfigurationReportedBeforeInput": {
			patients:      -1,
			profile:       models.PractitionerProfile{MinutesPerPatient: 15, SupportingTaskHoursPerMonth: 9590},
			workforce:     models.StandardWorkforce,
			expectedError: customerrors.ErrInvalidConfiguration,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := staffing.ComputeStaffing(tt.patients, tt.profile, tt.workforce)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expectedError), "got %v, want %v", err, tt.expectedError)
			assert.Equal(t, models.StaffingResult{}, got)
		})
	}
}

func TestCompute_UsesStandardWorkforce(t *testing.T) {
	gp := mustProfile(t, models.GeneralPractitioner)

	viaCompute, err := staffing.Compute(500, gp)
	require.NoError(t, err)
	viaExplicit, err := staffing.ComputeStaffing(500, gp, models.StandardWorkforce)
	require.NoError(t, err)

	assert.Equal(t, viaExplicit, viaCompute)
}

func TestComputeStaffing_Deterministic(t *testing.T) {
	dentist := mustProfile(t, models.Dentist)

	first, err := staffing.Compute(1234, dentist)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := staffing.Compute(1234, dentist)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeStaffing_Monotonic(t *testing.T) {
	for _, profile := range staffing.Profiles() {
		t.Run(string(profile.Type), func(t *testing.T) {
			previous := 0
			for patients := 0; patients <= 5000; patients++ {
				got, err := staffing.Compute(patients, profile)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, got.RequiredDoctors, 0)
				if got.RequiredDoctors < previous {
					t.Fatalf("required doctors dropped from %d to %d at %d patients", previous, got.RequiredDoctors, patients)
				}
				previous = got.RequiredDoctors
			}
		})
	}
}

func TestOptimalWeeklyHours_IndependentOfPatients(t *testing.T) {
	for _, profile := range staffing.Profiles() {
		hours, err := staffing.OptimalWeeklyHours(profile, models.StandardWorkforce)
		require.NoError(t, err)

		for _, patients := range []int{0, 1, 500, 10000} {
			got, err := staffing.Compute(patients, profile)
			require.NoError(t, err)
			assert.Equal(t, hours, got.OptimalWeeklyHours, fmt.Sprintf("%s with %d patients", profile.Type, patients))
		}
	}
}

func TestOptimalWeeklyHours_InvalidConfiguration(t *testing.T) {
	_, err := staffing.OptimalWeeklyHours(
		models.PractitionerProfile{MinutesPerPatient: 15, SupportingTaskHoursPerMonth: 9590},
		models.StandardWorkforce,
	)
	assert.ErrorIs(t, err, customerrors.ErrInvalidConfiguration)
}

func TestProfile(t *testing.T) {
	gp, err := staffing.Profile(models.GeneralPractitioner)
	require.NoError(t, err)
	assert.Equal(t, 15.0, gp.MinutesPerPatient)
	assert.Equal(t, 110.0, gp.SupportingTaskHoursPerMonth)

	dentist, err := staffing.Profile(models.Dentist)
	require.NoError(t, err)
	assert.Equal(t, 20.0, dentist.MinutesPerPatient)
	assert.Equal(t, 120.0, dentist.SupportingTaskHoursPerMonth)

	_, err = staffing.Profile("bedah")
	assert.ErrorIs(t, err, customerrors.ErrUnknownPractitioner)

	assert.Len(t, staffing.Profiles(), 2)
}
