package models

// Employee is one normalized timesheet line
type Employee struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Department  string  `json:"department"`
	HoursWorked float64 `json:"hours_worked"`
	HourlyRate  float64 `json:"hourly_rate"` // Canonical name for hourly_rate, rate or salary columns
}

// Payout returns hours worked multiplied by the hourly rate
func (e Employee) Payout() float64 {
	return e.HoursWorked * e.HourlyRate
}

// Timesheet column names
const (
	ColumnID          = "id"
	ColumnName        = "name"
	ColumnEmail       = "email"
	ColumnDepartment  = "department"
	ColumnHoursWorked = "hours_worked"
	ColumnHourlyRate  = "hourly_rate"
)

// RateColumnAliases lists accepted rate column names in priority order
var RateColumnAliases = []string{ColumnHourlyRate, "rate", "salary"}
