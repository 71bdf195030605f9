package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployee_Payout(t *testing.T) {
	tests := []struct {
		name     string
		employee Employee
		want     float64
	}{
		{
			name:     "whole hours and rate",
			employee: Employee{HoursWorked: 160, HourlyRate: 50},
			want:     8000,
		},
		{
			name:     "fractional values",
			employee: Employee{HoursWorked: 10.5, HourlyRate: 20.25},
			want:     212.625,
		},
		{
			name:     "zero hours",
			employee: Employee{HoursWorked: 0, HourlyRate: 75},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.employee.Payout())
		})
	}
}

func TestRateColumnAliases(t *testing.T) {
	assert.Equal(t, []string{"hourly_rate", "rate", "salary"}, RateColumnAliases)
}
