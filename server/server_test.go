package server_test

import (
	"clinic-staffing/config"
	customerrors "clinic-staffing/errors"
	"clinic-staffing/forecast"
	"clinic-staffing/planner"
	"clinic-staffing/server"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"forecast_dokter_umum.csv": "bulan_tahun,prediksi\n2025-01,500.6\n2025-02,455\n",
		"forecast_dokter_gigi.csv": "bulan_tahun,prediksi\n2025-01,1000\n",
		"data_dokter_umum2024.csv": "bulan_tahun,jumlah_kunjungan_per_bulan\n2024-01,470\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.App.MaxRequests = 1000
	log := zap.NewNop()
	p := planner.New(forecast.NewFileProvider(dir), log, cfg.Data.ComparisonYear)
	h := server.NewHandler(p, log, cfg.Data.ForecastYear)

	ts := httptest.NewServer(server.NewRouter(cfg, h, log))
	t.Cleanup(ts.Close)
	return ts
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func TestForecastEndpoint(t *testing.T) {
	ts := newTestServer(t)

	tests := map[string]struct {
		query        string
		expectedCode int
		contains     []string
	}{
		"GeneralPractitioner_January": {
			query:        "type=umum&month=Januari",
			expectedCode: http.StatusOK,
			contains: []string{
				`"patients":500`,
				`"required_doctors":1`,
				`"optimal_weekly_hours_rounded":40`,
				`"actual_patients":470`,
				`"difference":30`,
			},
		},
		"Dentist_WithManual": {
			query:        "type=dentist&month=1&manual=486",
			expectedCode: http.StatusOK,
			contains: []string{
				`"required_doctors":3`,
				`"manual":{"patients":486,"required_doctors":2`,
				`"comparison_error":"historical data unavailable`,
			},
		},
		"ComparisonMonthMissing": {
			query:        "type=umum&month=2",
			expectedCode: http.StatusOK,
			contains:     []string{`"comparison_error":"invalid input`},
		},
		"ForecastMissing": {
			query:        "type=gigi&month=Juli",
			expectedCode: http.StatusServiceUnavailable,
		},
		"UnknownType": {
			query:        "type=bedah&month=1",
			expectedCode: http.StatusBadRequest,
		},
		"BadMonth": {
			query:        "type=umum&month=13",
			expectedCode: http.StatusBadRequest,
		},
		"BadManual": {
			query:        "type=umum&month=1&manual=lima",
			expectedCode: http.StatusBadRequest,
		},
		"NegativeManual": {
			query:        "type=umum&month=1&manual=-1",
			expectedCode: http.StatusBadRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/v1/staffing/forecast?" + tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			env := decode(t, resp)
			assert.Equal(t, tt.expectedCode == http.StatusOK, env.Success, env.Message)
			for _, s := range tt.contains {
				assert.Contains(t, string(env.Data), s)
			}
		})
	}
}

func TestManualEndpoint(t *testing.T) {
	ts := newTestServer(t)

	tests := map[string]struct {
		body         string
		expectedCode int
		contains     []string
	}{
		"GeneralPractitioner": {
			body:         `{"practitioner_type":"umum","patients":500}`,
			expectedCode: http.StatusOK,
			contains:     []string{`"patients":500`, `"required_doctors":1`},
		},
		"DentistByLabel": {
			body:         `{"practitioner_type":"Dokter Gigi","patients":1000}`,
			expectedCode: http.StatusOK,
			contains:     []string{`"required_doctors":3`},
		},
		"ZeroPatients": {
			body:         `{"practitioner_type":"gigi","patients":0}`,
			expectedCode: http.StatusOK,
			contains:     []string{`"required_doctors":0`},
		},
		"NegativePatients": {
			body:         `{"practitioner_type":"umum","patients":-3}`,
			expectedCode: http.StatusBadRequest,
		},
		"NonNumericPatients": {
			body:         `{"practitioner_type":"umum","patients":"banyak"}`,
			expectedCode: http.StatusBadRequest,
		},
		"MissingPatients": {
			body:         `{"practitioner_type":"umum"}`,
			expectedCode: http.StatusBadRequest,
		},
		"UnknownType": {
			body:         `{"practitioner_type":"bedah","patients":3}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/staffing/manual", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			env := decode(t, resp)
			for _, s := range tt.contains {
				assert.Contains(t, string(env.Data), s)
			}
		})
	}
}

func TestProfilesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/profiles")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	var profiles []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &profiles))
	require.Len(t, profiles, 2)
	assert.Equal(t, "umum", profiles[0]["type"])
	assert.Equal(t, 15.0, profiles[0]["minutes_per_patient"])
	assert.Equal(t, "Dokter Gigi", profiles[1]["label"])
	assert.InDelta(t, 40.46, profiles[1]["optimal_weekly_hours"], 0.01)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	warm, err := http.Get(ts.URL + "/api/v1/staffing/forecast?type=umum&month=1")
	require.NoError(t, err)
	warm.Body.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "staffing_calculations_total")
	assert.Contains(t, string(body), `http_requests_total{code="200",route="/api/v1/staffing/forecast"}`)
}

func TestStatusFor(t *testing.T) {
	tests := map[error]int{
		customerrors.ErrInvalidInput:         http.StatusBadRequest,
		customerrors.ErrUnknownPractitioner:  http.StatusBadRequest,
		customerrors.ErrInvalidPeriod:        http.StatusBadRequest,
		customerrors.ErrForecastUnavailable:  http.StatusServiceUnavailable,
		customerrors.ErrHistoryUnavailable:   http.StatusServiceUnavailable,
		customerrors.ErrInvalidConfiguration: http.StatusInternalServerError,
		io.ErrUnexpectedEOF:                  http.StatusInternalServerError,
	}

	for err, code := range tests {
		t.Run(err.Error(), func(t *testing.T) {
			assert.Equal(t, code, server.StatusFor(fmt.Errorf("wrapped: %w", err)))
		})
	}
}
