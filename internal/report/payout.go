package report

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/payroll-report/internal/models"
)

// PayoutReportType is the registry identifier of the payout report
const PayoutReportType = "payout"

// PayoutEntry is one employee line of the payout report
type PayoutEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	HoursWorked Number `json:"hours_worked"`
	HourlyRate  Number `json:"hourly_rate"`
	Payout      Number `json:"payout"`
}

// DepartmentGroup holds the sorted entries of one department and their sum
type DepartmentGroup struct {
	Name            string        `json:"name"`
	Employees       []PayoutEntry `json:"employees"`
	DepartmentTotal Number        `json:"department_total"`
}

// PayoutReport is the payout aggregation over all departments
type PayoutReport struct {
	Departments []DepartmentGroup `json:"departments"`
	TotalPayout Number            `json:"total_payout"`
}

// PayoutOption configures a PayoutGenerator
type PayoutOption func(*PayoutGenerator)

// WithLogger sets the generator logger
func WithLogger(logger *zap.Logger) PayoutOption {
	return func(g *PayoutGenerator) {
		g.logger = logger
	}
}

// PayoutGenerator computes per-department payouts
type PayoutGenerator struct {
	logger *zap.Logger
}

// NewPayoutGenerator creates a new PayoutGenerator
func NewPayoutGenerator(opts ...PayoutOption) *PayoutGenerator {
	g := &PayoutGenerator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the payout report and serializes it as indented JSON
func (g *PayoutGenerator) Generate(records []models.Employee) (string, error) {
	return Encode(g.Build(records))
}

// Build aggregates records into a PayoutReport. Entries are sorted by
// (department, name); totals are accumulated in that order.
func (g *PayoutGenerator) Build(records []models.Employee) *PayoutReport {
	entries := make([]PayoutEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, PayoutEntry{
			ID:          r.ID,
			Name:        r.Name,
			Email:       r.Email,
			Department:  r.Department,
			HoursWorked: Number(r.HoursWorked),
			HourlyRate:  Number(r.HourlyRate),
			Payout:      Number(r.Payout()),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if c := strings.Compare(entries[i].Department, entries[j].Department); c != 0 {
			return c < 0
		}
		return entries[i].Name < entries[j].Name
	})

	report := &PayoutReport{
		Departments: make([]DepartmentGroup, 0),
	}

	groupIndex := make(map[string]int)
	for _, e := range entries {
		idx, ok := groupIndex[e.Department]
		if !ok {
			idx = len(report.Departments)
			groupIndex[e.Department] = idx
			report.Departments = append(report.Departments, DepartmentGroup{
				Name:      e.Department,
				Employees: make([]PayoutEntry, 0),
			})
		}
		report.Departments[idx].Employees = append(report.Departments[idx].Employees, e)
	}

	var total float64
	for i := range report.Departments {
		var subtotal float64
		for _, e := range report.Departments[i].Employees {
			subtotal += float64(e.Payout)
		}
		report.Departments[i].DepartmentTotal = Number(subtotal)
		total += subtotal
	}
	report.TotalPayout = Number(total)

	g.logger.Debug("Payout report built",
		zap.Int("record_count", len(records)),
		zap.Int("department_count", len(report.Departments)),
		zap.Float64("total_payout", total))

	return report
}

// Encode serializes v as two-space indented JSON without HTML escaping
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
