// Package metrics provides Prometheus observability metrics for the staffing planner.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// Calculation paths.
const (
	PathForecast = "forecast"
	PathManual   = "manual"
)

// =============================================================================
// BUSINESS METRICS
// =============================================================================

// CalculationsTotal counts successful staffing calculations.
var CalculationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "calculations_total",
	Help:      "Successful staffing calculations by practitioner type and path",
}, []string{"practitioner", "path"})

// RejectedTotal counts calculations refused because of bad input or configuration.
var RejectedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "rejected_total",
	Help:      "Staffing calculations rejected, by reason (invalid_input, invalid_configuration)",
}, []string{"practitioner", "reason"})

// RequiredDoctors holds the latest headcount per practitioner type and path.
var RequiredDoctors = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "required_doctors",
	Help:      "Most recently calculated number of required doctors",
}, []string{"practitioner", "path"})

// ForecastPatients holds the latest forecast patient count per practitioner type.
var ForecastPatients = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "forecast_patients",
	Help:      "Most recently forecast monthly patient count",
}, []string{"practitioner"})

// =============================================================================
// OPERATIONAL METRICS
// =============================================================================

// ProviderErrorsTotal counts forecast provider failures by operation.
var ProviderErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "forecast",
	Name:      "errors_total",
	Help:      "Forecast provider failures by operation (forecast, history)",
}, []string{"operation"})

// PlanDurationSeconds tracks time to build a planning report.
var PlanDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "planner",
	Name:      "duration_seconds",
	Help:      "Time taken to build a planning report",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// HTTPRequestsTotal counts API requests by route and status code.
var HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by route pattern and status code",
}, []string{"route", "code"})
