package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/payroll-report/internal/metrics"
	"github.com/garyjia/payroll-report/internal/parser"
	"github.com/garyjia/payroll-report/internal/report"
	"github.com/garyjia/payroll-report/internal/service"
	"github.com/garyjia/payroll-report/pkg/utils"
)

// FilesField is the multipart field holding timesheet uploads
const FilesField = "files"

// unknownReportType is the metrics label for any unregistered type
const unknownReportType = "unknown"

// Handlers contains all HTTP request handlers
type Handlers struct {
	reportService  service.ReportService
	metrics        *metrics.Metrics
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	reportService service.ReportService,
	m *metrics.Metrics,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		reportService:  reportService,
		metrics:        m,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ReportTypesResponse lists the report types the server can build
type ReportTypesResponse struct {
	Types []string `json:"types"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// ListReportTypes handles GET /api/reports
func (h *Handlers) ListReportTypes(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ReportTypesResponse{Types: h.reportService.ReportTypes()},
	})
}

// GenerateReport handles POST /api/reports/:type. Uploaded files are
// parsed in form order and the report document is returned verbatim.
func (h *Handlers) GenerateReport(c *gin.Context) {
	start := time.Now()
	reportType := c.Param("type")

	if !slices.Contains(h.reportService.ReportTypes(), reportType) {
		err := &report.UnsupportedTypeError{Requested: reportType, Supported: h.reportService.ReportTypes()}
		h.fail(c, unknownReportType, metrics.OutcomeUnsupported, start, http.StatusNotFound, err.Error())
		return
	}

	tooLargeMsg := fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes)
	if c.Request.ContentLength > h.maxUploadBytes {
		h.fail(c, reportType, metrics.OutcomeBadRequest, start, http.StatusRequestEntityTooLarge, tooLargeMsg)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, reportType, metrics.OutcomeBadRequest, start, http.StatusRequestEntityTooLarge, tooLargeMsg)
			return
		}
		h.fail(c, reportType, metrics.OutcomeBadRequest, start, http.StatusBadRequest, "invalid multipart form")
		return
	}

	uploads := form.File[FilesField]
	if len(uploads) == 0 {
		h.fail(c, reportType, metrics.OutcomeBadRequest, start, http.StatusBadRequest, "no files uploaded")
		return
	}

	sources, err := readUploads(uploads)
	if err != nil {
		h.logger.Warn("Failed to read upload",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		h.fail(c, reportType, metrics.OutcomeBadRequest, start, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	ctx := c.Request.Context()
	records, err := h.reportService.LoadSources(ctx, sources)
	if err != nil {
		h.fail(c, reportType, service.Classify(err).String(), start, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.metrics.AddRecords(len(records))

	out, err := h.reportService.Generate(records, reportType)
	if err != nil {
		status := http.StatusUnprocessableEntity
		outcome := service.Classify(err).String()
		if errors.Is(err, report.ErrUnsupportedType) {
			status = http.StatusNotFound
			outcome = metrics.OutcomeUnsupported
		}
		h.fail(c, reportType, outcome, start, status, err.Error())
		return
	}

	h.metrics.ObserveReport(reportType, metrics.OutcomeSuccess, time.Since(start))
	h.logger.Info("Report served",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("report_type", reportType),
		zap.Int("file_count", len(sources)),
		zap.Int("record_count", len(records)))

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(out))
}

func (h *Handlers) fail(c *gin.Context, reportType, outcome string, start time.Time, status int, msg string) {
	h.metrics.ObserveReport(reportType, outcome, time.Since(start))
	h.logger.Info("Report request rejected",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("report_type", reportType),
		zap.Int("status", status),
		zap.String("error", msg))

	c.JSON(status, Response{
		Success: false,
		Error:   msg,
	})
}

// readUploads loads every upload into memory, labelled by its file name
func readUploads(uploads []*multipart.FileHeader) ([]parser.Source, error) {
	sources := make([]parser.Source, 0, len(uploads))
	for i, fh := range uploads {
		name := utils.SanitizeString(fh.Filename)
		if name == "" {
			name = fmt.Sprintf("upload-%d", i+1)
		}

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		sources = append(sources, parser.Source{Name: name, Content: content})
	}
	return sources, nil
}
