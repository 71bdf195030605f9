package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/payroll-report/internal/parser"
	"github.com/garyjia/payroll-report/internal/report"
	"github.com/garyjia/payroll-report/internal/service"
)

const (
	marketingCSV = "id,email,name,department,hours_worked,hourly_rate\n" +
		"1,alice@example.com,Alice Johnson,Marketing,160,50\n"
	designCSV = "id,name,email,department,hours_worked,salary\n" +
		"3,Carol Williams,carol@example.com,Design,170,60\n" +
		"2,Bob Smith,bob@example.com,Design,150,40\n"
	noRateCSV = "id,name,email,department,hours_worked\n" +
		"1,Alice Johnson,alice@example.com,Marketing,160\n"
)

type upload struct {
	name    string
	content string
}

func newTestServer(t *testing.T, cfg ServerConfig) (*Server, service.ReportService) {
	t.Helper()
	logger := zap.NewNop()
	registry, err := report.NewDefaultRegistry()
	require.NoError(t, err)
	svc := service.NewReportService(parser.NewParser(logger), registry, logger)

	server, err := NewServer(cfg, svc, logger)
	require.NoError(t, err)
	return server, svc
}

func multipartRequest(t *testing.T, target string, uploads ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, u := range uploads {
		part, err := w.CreateFormFile(FilesField, u.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(u.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestServer_HealthCheck(t *testing.T) {
	s, _ := newTestServer(t, DefaultServerConfig())

	t.Run("reports healthy with a request id", func(t *testing.T) {
		rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, "healthy", resp.Data.(map[string]interface{})["status"])

		_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("propagates incoming request id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, id)

		rec := serve(s, req)

		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces malformed request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")

		rec := serve(s, req)

		assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
	})
}

func TestServer_ListReportTypes(t *testing.T) {
	s, _ := newTestServer(t, DefaultServerConfig())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"types":["payout"]}}`, rec.Body.String())
}

func TestServer_GenerateReport(t *testing.T) {
	s, svc := newTestServer(t, DefaultServerConfig())

	t.Run("returns the payout report for uploaded files", func(t *testing.T) {
		req := multipartRequest(t, "/api/reports/payout",
			upload{name: "marketing.csv", content: marketingCSV},
			upload{name: "design.csv", content: designCSV})

		rec := serve(s, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		want, err := svc.GenerateFromSources(context.Background(), []parser.Source{
			{Name: "marketing.csv", Content: []byte(marketingCSV)},
			{Name: "design.csv", Content: []byte(designCSV)},
		}, "payout")
		require.NoError(t, err)
		assert.Equal(t, want, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"total_payout": 24200.0`)
	})

	t.Run("rejects a request without files", func(t *testing.T) {
		rec := serve(s, multipartRequest(t, "/api/reports/payout"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "no files uploaded", resp.Error)
	})

	t.Run("rejects a non multipart body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/reports/payout", strings.NewReader(marketingCSV))
		req.Header.Set("Content-Type", "text/csv")

		rec := serve(s, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown report type is not found", func(t *testing.T) {
		req := multipartRequest(t, "/api/reports/unsupported", upload{name: "marketing.csv", content: marketingCSV})

		rec := serve(s, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "unsupported report type: unsupported. Supported types: payout", resp.Error)
	})

	t.Run("parse failure names the upload", func(t *testing.T) {
		req := multipartRequest(t, "/api/reports/payout",
			upload{name: "marketing.csv", content: marketingCSV},
			upload{name: "norate.csv", content: noRateCSV})

		rec := serve(s, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "norate.csv")
		assert.Contains(t, resp.Error, "hourly rate column")
	})

	t.Run("empty upload yields an empty report", func(t *testing.T) {
		rec := serve(s, multipartRequest(t, "/api/reports/payout", upload{name: "empty.csv", content: ""}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "{\n  \"departments\": [],\n  \"total_payout\": 0.0\n}", rec.Body.String())
	})
}

func TestServer_UploadLimit(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.MaxUploadBytes = 64
	s, _ := newTestServer(t, cfg)

	req := multipartRequest(t, "/api/reports/payout", upload{name: "design.csv", content: designCSV})

	rec := serve(s, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "upload exceeds 64 bytes", decodeResponse(t, rec).Error)
}

func TestServer_Metrics(t *testing.T) {
	s, _ := newTestServer(t, DefaultServerConfig())

	serve(s, multipartRequest(t, "/api/reports/payout", upload{name: "design.csv", content: designCSV}))
	serve(s, multipartRequest(t, "/api/reports/payout", upload{name: "norate.csv", content: noRateCSV}))
	serve(s, multipartRequest(t, "/api/reports/missing", upload{name: "design.csv", content: designCSV}))

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `payroll_reports_total{outcome="success",report_type="payout"} 1`)
	assert.Contains(t, body, `payroll_reports_total{outcome="value",report_type="payout"} 1`)
	assert.Contains(t, body, `payroll_reports_total{outcome="unsupported_type",report_type="unknown"} 1`)
	assert.Contains(t, body, "payroll_records_parsed_total 2")
	assert.Contains(t, body, `payroll_report_duration_seconds_count{report_type="payout"} 2`)
}

func TestServer_Address(t *testing.T) {
	s, _ := newTestServer(t, ServerConfig{Host: "127.0.0.1", Port: 9000})

	assert.Equal(t, "127.0.0.1:9000", s.Address())
	assert.NoError(t, s.Stop())
}
