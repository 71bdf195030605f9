// Package service composes the timesheet parser and the report registry
// into the operations the CLI and the HTTP API expose.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/garyjia/payroll-report/internal/models"
	"github.com/garyjia/payroll-report/internal/parser"
	"github.com/garyjia/payroll-report/internal/report"
)

// ReportService parses timesheets and renders reports from them
type ReportService interface {
	LoadRecords(ctx context.Context, paths []string) ([]models.Employee, error)
	LoadSources(ctx context.Context, sources []parser.Source) ([]models.Employee, error)
	Generate(records []models.Employee, reportType string) (string, error)
	GenerateFromFiles(ctx context.Context, paths []string, reportType string) (string, error)
	GenerateFromSources(ctx context.Context, sources []parser.Source, reportType string) (string, error)
	ReportTypes() []string
}

type reportServiceImpl struct {
	parser   *parser.Parser
	registry *report.Registry
	logger   *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(p *parser.Parser, registry *report.Registry, logger *zap.Logger) ReportService {
	return &reportServiceImpl{
		parser:   p,
		registry: registry,
		logger:   logger,
	}
}

// LoadRecords parses paths in order. Failures are returned as *Error.
func (s *reportServiceImpl) LoadRecords(ctx context.Context, paths []string) ([]models.Employee, error) {
	records, err := s.parser.ParseFiles(ctx, paths)
	if err != nil {
		s.logger.Debug("Failed to load timesheets",
			zap.Strings("paths", paths),
			zap.Error(err))
		return nil, wrap(err)
	}
	return records, nil
}

// LoadSources parses in-memory sources in order
func (s *reportServiceImpl) LoadSources(ctx context.Context, sources []parser.Source) ([]models.Employee, error) {
	records, err := s.parser.ParseSources(ctx, sources)
	if err != nil {
		s.logger.Debug("Failed to load uploaded timesheets",
			zap.Int("source_count", len(sources)),
			zap.Error(err))
		return nil, wrap(err)
	}
	return records, nil
}

// Generate renders records with the generator registered for reportType
func (s *reportServiceImpl) Generate(records []models.Employee, reportType string) (string, error) {
	out, err := s.registry.Generate(reportType, records)
	if err != nil {
		s.logger.Debug("Failed to generate report",
			zap.String("report_type", reportType),
			zap.Error(err))
		return "", wrap(err)
	}

	s.logger.Info("Report generated",
		zap.String("report_type", reportType),
		zap.Int("record_count", len(records)))

	return out, nil
}

// GenerateFromFiles is LoadRecords followed by Generate
func (s *reportServiceImpl) GenerateFromFiles(ctx context.Context, paths []string, reportType string) (string, error) {
	records, err := s.LoadRecords(ctx, paths)
	if err != nil {
		return "", err
	}
	return s.Generate(records, reportType)
}

// GenerateFromSources is LoadSources followed by Generate
func (s *reportServiceImpl) GenerateFromSources(ctx context.Context, sources []parser.Source, reportType string) (string, error) {
	records, err := s.LoadSources(ctx, sources)
	if err != nil {
		return "", err
	}
	return s.Generate(records, reportType)
}

// ReportTypes lists the registered report types
func (s *reportServiceImpl) ReportTypes() []string {
	return s.registry.Types()
}
