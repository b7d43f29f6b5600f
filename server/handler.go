package server

import (
	customerrors "clinic-staffing/errors"
	"clinic-staffing/formatter"
	"clinic-staffing/models"
	"clinic-staffing/planner"
	"clinic-staffing/staffing"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ManualRequest is the body of the manual staffing endpoint.
type ManualRequest struct {
	PractitionerType string `json:"practitioner_type" validate:"required"`
	Patients         *int   `json:"patients" validate:"required"`
}

// ProfileResponse describes one practice line.
type ProfileResponse struct {
	models.PractitionerProfile
	Label              string  `json:"label"`
	OptimalWeeklyHours float64 `json:"optimal_weekly_hours"`
}

// Handler serves the staffing API.
type Handler struct {
	planner      *planner.Planner
	log          *zap.Logger
	validate     *validator.Validate
	forecastYear int
}

// NewHandler returns a Handler. forecastYear is used when a request names no year.
func NewHandler(p *planner.Planner, log *zap.Logger, forecastYear int) *Handler {
	return &Handler{
		planner:      p,
		log:          log,
		validate:     validator.New(),
		forecastYear: forecastYear,
	}
}

// ListProfiles returns the workload profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	var out []ProfileResponse
	for _, p := range staffing.Profiles() {
		hours, err := staffing.OptimalWeeklyHours(p, models.StandardWorkforce)
		if err != nil {
			writeError(h.log, w, err)
			return
		}
		out = append(out, ProfileResponse{
			PractitionerProfile: p,
			Label:               p.Type.Label(),
			OptimalWeeklyHours:  hours,
		})
	}
	writeSuccess(w, http.StatusOK, "profiles", out)
}

// Forecast returns the planning report for ?type=&month=[&year=][&manual=].
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	sel, err := h.selectionFromQuery(r)
	if err != nil {
		writeError(h.log, w, err)
		return
	}

	report, err := h.planner.Plan(r.Context(), sel)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "staffing forecast", formatter.PrepareReportData(report))
}

// Manual computes staffing for a patient count entered by the operator.
func (h *Handler) Manual(w http.ResponseWriter, r *http.Request) {
	var req ManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.log, w, fmt.Errorf("%w: %v", customerrors.ErrInvalidInput, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(h.log, w, fmt.Errorf("%w: %v", customerrors.ErrInvalidInput, err))
		return
	}

	t, err := models.ParsePractitionerType(req.PractitionerType)
	if err != nil {
		writeError(h.log, w, err)
		return
	}

	result, err := h.planner.Manual(t, *req.Patients)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "manual staffing", formatter.NewStaffingData(*req.Patients, result))
}

func (h *Handler) selectionFromQuery(r *http.Request) (models.Selection, error) {
	q := r.URL.Query()

	t, err := models.ParsePractitionerType(q.Get("type"))
	if err != nil {
		return models.Selection{}, err
	}
	month, err := models.ParseMonth(q.Get("month"))
	if err != nil {
		return models.Selection{}, err
	}

	sel := models.Selection{
		Type:   t,
		Period: models.Period{Year: h.forecastYear, Month: month},
	}
	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return models.Selection{}, fmt.Errorf("%w: year %q", customerrors.ErrInvalidPeriod, raw)
		}
		sel.Period.Year = year
	}
	if raw := q.Get("manual"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.Selection{}, fmt.Errorf("%w: manual patient count %q is not a number", customerrors.ErrInvalidInput, raw)
		}
		sel.ManualPatients = &n
	}
	return sel, nil
}
