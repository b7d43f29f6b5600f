package models

import (
	customerrors "clinic-staffing/errors"
	"fmt"
	"strings"
)

// PractitionerType selects a practice line. The values double as the file
// slugs used by the clinic's data exports.
type PractitionerType string

const (
	GeneralPractitioner PractitionerType = "umum"
	Dentist             PractitionerType = "gigi"
)

// PractitionerTypes lists the supported practice lines in display order.
var PractitionerTypes = []PractitionerType{GeneralPractitioner, Dentist}

// Label returns the name shown to the operator.
func (t PractitionerType) Label() string {
	switch t {
	case GeneralPractitioner:
		return "Dokter Umum"
	case Dentist:
		return "Dokter Gigi"
	default:
		return string(t)
	}
}

// ParsePractitionerType accepts the slug, the Indonesian label or an English name.
func ParsePractitionerType(s string) (PractitionerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "umum", "dokter umum", "gp", "general", "general practitioner":
		return GeneralPractitioner, nil
	case "gigi", "dokter gigi", "dentist", "dental":
		return Dentist, nil
	default:
		return "", fmt.Errorf("%w: %q", customerrors.ErrUnknownPractitioner, s)
	}
}
