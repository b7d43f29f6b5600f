package staffing

import (
	customerrors "clinic-staffing/errors"
	"clinic-staffing/models"
	"fmt"
)

// profiles is read-only after init.
var profiles = map[models.PractitionerType]models.PractitionerProfile{
	models.GeneralPractitioner: {
		Type:                        models.GeneralPractitioner,
		MinutesPerPatient:           15,
		SupportingTaskHoursPerMonth: 110,
	},
	models.Dentist: {
		Type:                        models.Dentist,
		MinutesPerPatient:           20,
		SupportingTaskHoursPerMonth: 120,
	},
}

// Profile looks up the workload profile of a practice line.
func Profile(t models.PractitionerType) (models.PractitionerProfile, error) {
	p, ok := profiles[t]
	if !ok {
		return models.PractitionerProfile{}, fmt.Errorf("%w: %q", customerrors.ErrUnknownPractitioner, t)
	}
	return p, nil
}

// Profiles returns every profile in display order.
func Profiles() []models.PractitionerProfile {
	out := make([]models.PractitionerProfile, 0, len(models.PractitionerTypes))
	for _, t := range models.PractitionerTypes {
		out = append(out, profiles[t])
	}
	return out
}
